package http

import (
	"log/slog"
	"net/http"
)

// OptionHandler serves the chart option as plain JSON, without the formatter.
type OptionHandler struct {
	build  SpecBuilder
	logger *slog.Logger
}

func NewOptionHandler(build SpecBuilder, logger *slog.Logger) *OptionHandler {
	return &OptionHandler{build: build, logger: logger}
}

func (h *OptionHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	spec, err := h.build()
	if err != nil {
		h.logger.Error("failed to build chart", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body, err := spec.DataOption()
	if err != nil {
		h.logger.Error("failed to encode chart option", "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(body)
}

func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}
