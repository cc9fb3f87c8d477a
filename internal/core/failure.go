package core

import (
	"errors"
	"fmt"
	"strings"
)

// Stage names the step of a chart mount that failed.
type Stage string

const (
	StageContainer Stage = "container"
	StageLibrary   Stage = "library"
	StageFormatter Stage = "formatter"
	StageRender    Stage = "render"
	StageRuntime   Stage = "runtime"
)

var knownStages = map[Stage]bool{
	StageContainer: true,
	StageLibrary:   true,
	StageFormatter: true,
	StageRender:    true,
	StageRuntime:   true,
}

// MountFailure is what a client reports when it could not render the chart.
// The same shape is posted by the inline mount script and the wasm client.
type MountFailure struct {
	Stage     Stage   `json:"stage"`
	Message   string  `json:"message"`
	Container string  `json:"container,omitempty"`
	Runtime   Runtime `json:"runtime,omitempty"`
}

const maxFailureMessage = 1024

var ErrInvalidFailure = errors.New("invalid mount failure")

// Normalize validates f and clamps free-form fields so that a report can be
// logged and used as a metric label.
func (f MountFailure) Normalize() (MountFailure, error) {
	f.Stage = Stage(strings.ToLower(strings.TrimSpace(string(f.Stage))))
	if !knownStages[f.Stage] {
		return f, fmt.Errorf("%w: unknown stage %q", ErrInvalidFailure, f.Stage)
	}
	if f.Runtime == "" {
		f.Runtime = RuntimeScript
	}
	if !f.Runtime.Valid() {
		return f, fmt.Errorf("%w: unknown runtime %q", ErrInvalidFailure, f.Runtime)
	}
	f.Message = strings.TrimSpace(f.Message)
	if len(f.Message) > maxFailureMessage {
		f.Message = f.Message[:maxFailureMessage]
	}
	return f, nil
}
