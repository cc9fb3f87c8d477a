package http

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/3-lines-studio/chartmount/internal/core"
)

// Metrics owns a private registry so that several apps can live in one
// process, which the tests rely on.
type Metrics struct {
	registry      *prometheus.Registry
	pageRenders   *prometheus.CounterVec
	mountFailures *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		pageRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartmount",
			Name:      "page_renders_total",
			Help:      "Pages rendered, by HTTP status.",
		}, []string{"status"}),
		mountFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartmount",
			Name:      "mount_failures_total",
			Help:      "Chart mount failures reported by clients, by stage and runtime.",
		}, []string{"stage", "runtime"}),
	}
	m.registry.MustRegister(
		m.pageRenders,
		m.mountFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) PageRendered(status int) {
	m.pageRenders.WithLabelValues(strconv.Itoa(status)).Inc()
}

func (m *Metrics) MountFailed(f core.MountFailure) {
	m.mountFailures.WithLabelValues(string(f.Stage), string(f.Runtime)).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
