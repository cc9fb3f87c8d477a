package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/3-lines-studio/chartmount/internal/core"
)

const maxReportBody = 16 << 10

// ReportHandler accepts mount failures posted by the inline script (through
// navigator.sendBeacon) and by the wasm client.
type ReportHandler struct {
	metrics *Metrics
	logger  *slog.Logger
}

func NewReportHandler(metrics *Metrics, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{metrics: metrics, logger: logger}
}

func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	var failure core.MountFailure
	dec := json.NewDecoder(http.MaxBytesReader(w, req.Body, maxReportBody))
	if err := dec.Decode(&failure); err != nil {
		http.Error(w, "malformed mount failure", http.StatusBadRequest)
		return
	}

	failure, err := failure.Normalize()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.metrics.MountFailed(failure)
	h.logger.Warn("chart mount failed in client",
		"stage", failure.Stage,
		"runtime", failure.Runtime,
		"container", failure.Container,
		"message", failure.Message,
		"user_agent", req.UserAgent(),
	)

	w.WriteHeader(http.StatusNoContent)
}
