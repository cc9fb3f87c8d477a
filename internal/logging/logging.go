// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/common/promslog"
)

// New returns a logger writing to w at the given level ("debug", "info", "warn",
// "error") and format ("logfmt" or "json").
func New(w io.Writer, levelStr, formatStr string) (*slog.Logger, error) {
	level := promslog.NewLevel()
	if err := level.Set(levelStr); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	format := promslog.NewFormat()
	if err := format.Set(formatStr); err != nil {
		return nil, fmt.Errorf("invalid log format: %w", err)
	}

	return promslog.New(&promslog.Config{
		Level:  level,
		Format: format,
		Style:  promslog.GoKitStyle,
		Writer: w,
	}), nil
}

// Configure builds a logger with New and installs it as the slog default.
func Configure(w io.Writer, levelStr, formatStr string) (*slog.Logger, error) {
	logger, err := New(w, levelStr, formatStr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}
