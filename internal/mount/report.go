package mount

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/3-lines-studio/chartmount/internal/core"
)

type Reporter interface {
	Report(ctx context.Context, failure core.MountFailure)
}

type nopReporter struct{}

func (nopReporter) Report(context.Context, core.MountFailure) {}

// HTTPReporter posts failures as JSON to the server's failure endpoint.
type HTTPReporter struct {
	endpoint string
	client   *http.Client
	logger   *slog.Logger
}

func NewHTTPReporter(endpoint string, client *http.Client) *HTTPReporter {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &HTTPReporter{
		endpoint: endpoint,
		client:   client,
		logger:   slog.Default(),
	}
}

func (r *HTTPReporter) Report(ctx context.Context, failure core.MountFailure) {
	if err := r.post(ctx, failure); err != nil {
		r.logger.Warn("failed to report chart mount failure", "endpoint", r.endpoint, "err", err)
	}
}

func (r *HTTPReporter) post(ctx context.Context, failure core.MountFailure) error {
	body, err := json.Marshal(failure)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}

// LogReporter writes failures to a structured logger.
type LogReporter struct {
	Logger *slog.Logger
}

func (r LogReporter) Report(ctx context.Context, failure core.MountFailure) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.WarnContext(ctx, "chart mount failure",
		"stage", failure.Stage,
		"runtime", failure.Runtime,
		"container", failure.Container,
		"message", failure.Message,
	)
}
