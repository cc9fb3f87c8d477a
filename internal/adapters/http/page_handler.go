package http

import (
	"bytes"
	"html"
	"log/slog"
	"net/http"

	"github.com/3-lines-studio/chartmount/internal/chart"
	"github.com/3-lines-studio/chartmount/internal/config"
	"github.com/3-lines-studio/chartmount/internal/core"
	"github.com/3-lines-studio/chartmount/internal/page"
)

// SpecBuilder returns the chart for one page load.
type SpecBuilder func() (*chart.Spec, error)

// SpecFromConfig builds the default chart sized and placed as cfg says.
func SpecFromConfig(cfg config.Config) SpecBuilder {
	return func() (*chart.Spec, error) {
		return chart.New(
			chart.DefaultCategories(),
			chart.DefaultValues(),
			chart.DefaultTooltip(),
			chart.WithContainer(cfg.Chart.ContainerID, cfg.Chart.ContainerClass),
			chart.WithSize(cfg.Chart.Width, cfg.Chart.Height),
		)
	}
}

type PageHandler struct {
	config  config.Config
	build   SpecBuilder
	metrics *Metrics
	logger  *slog.Logger
	isDev   bool
}

func NewPageHandler(cfg config.Config, build SpecBuilder, metrics *Metrics, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		config:  cfg,
		build:   build,
		metrics: metrics,
		logger:  logger,
		isDev:   cfg.Mode() == core.ModeDev,
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if core.NormalizePath(req.URL.Path) != "/" {
		h.ServeNotFound(w, req)
		return
	}
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	out, err := h.Render()
	if err != nil {
		h.logger.Error("failed to render page", "path", req.URL.Path, "err", err)
		h.serveError(w, err)
		return
	}

	h.metrics.PageRendered(http.StatusOK)
	serveHTML(w, http.StatusOK, []byte(out))
}

// Render builds a fresh spec and renders the home page.
func (h *PageHandler) Render() (string, error) {
	spec, err := h.build()
	if err != nil {
		return "", err
	}
	data, err := page.NewData(h.config, spec)
	if err != nil {
		return "", err
	}
	return page.RenderString(data)
}

// ServeNotFound renders the error view listing a not-found condition.
func (h *PageHandler) ServeNotFound(w http.ResponseWriter, req *http.Request) {
	h.metrics.PageRendered(http.StatusNotFound)
	h.serveAppError(w, core.NewErrorData(h.isDev, core.NotFound), core.NotFound.StatusCode())
}

func (h *PageHandler) serveError(w http.ResponseWriter, err error) {
	h.metrics.PageRendered(http.StatusInternalServerError)
	data := core.NewErrorData(h.isDev, core.Internal)
	data.Message = err.Error()
	h.serveAppError(w, data, http.StatusInternalServerError)
}

func (h *PageHandler) serveAppError(w http.ResponseWriter, data core.ErrorData, status int) {
	var buf bytes.Buffer
	if err := page.RenderError(&buf, data); err != nil {
		message := data.Title
		if data.IsDev && data.Message != "" {
			message = data.Message
		}
		serveHTML(w, status, []byte("<!doctype html><html><body><pre>"+html.EscapeString(message)+"</pre></body></html>"))
		return
	}
	serveHTML(w, status, buf.Bytes())
}

func serveHTML(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
