// Package mount renders a chart specification into a page after hydration.
//
// A Task performs one render through a Binding to the chart runtime. On js/wasm
// builds NewBinding talks to ECharts through syscall/js; on every other target
// it returns a binding that reports itself as not capable, so the same Task can
// be constructed anywhere and simply does nothing where there is no DOM.
package mount

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/3-lines-studio/chartmount/internal/chart"
	"github.com/3-lines-studio/chartmount/internal/core"
	"github.com/3-lines-studio/chartmount/internal/formatter"
)

var (
	ErrUnsupported        = errors.New("mount: chart rendering is not available in this environment")
	ErrContainerMissing   = errors.New("mount: container element not found")
	ErrLibraryUnavailable = errors.New("mount: chart library is not loaded")
)

// Instance is a chart bound to a container.
type Instance interface {
	SetOption(spec *chart.Spec) error
	Dispose()
}

// Binding is the narrow view of the DOM and the chart library a Task needs.
type Binding interface {
	// Capable reports whether a DOM exists at all.
	Capable() bool
	// Ready returns ErrLibraryUnavailable when the chart library is not loaded.
	Ready() error
	// Existing returns the chart already bound to the container, if any.
	Existing(containerID string) (Instance, bool)
	Init(containerID string, width, height int) (Instance, error)
}

// Builder produces the specification for one render.
type Builder func() (*chart.Spec, error)

// Error attributes a mount failure to a stage.
type Error struct {
	Stage     core.Stage
	Container string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("mount %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Task struct {
	binding  Binding
	build    Builder
	reporter Reporter
	logger   *slog.Logger
	runtime  core.Runtime

	mu      sync.Mutex
	current Instance
}

type TaskOption func(*Task)

func WithReporter(r Reporter) TaskOption {
	return func(t *Task) {
		t.reporter = r
	}
}

func WithLogger(logger *slog.Logger) TaskOption {
	return func(t *Task) {
		t.logger = logger
	}
}

func WithRuntime(r core.Runtime) TaskOption {
	return func(t *Task) {
		t.runtime = r
	}
}

func NewTask(binding Binding, build Builder, opts ...TaskOption) *Task {
	t := &Task{
		binding:  binding,
		build:    build,
		reporter: nopReporter{},
		logger:   slog.Default(),
		runtime:  core.RuntimeWasm,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Run renders once. Runs are serialised, and each run disposes whatever chart is
// bound to the container before creating its own, so the last run wins. If ctx
// is cancelled before the option is applied the new chart is disposed and
// ctx.Err() returned.
func (t *Task) Run(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.binding.Capable() {
		return ErrUnsupported
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	spec, err := t.build()
	if err != nil {
		return &Error{Stage: core.StageRender, Err: fmt.Errorf("build chart: %w", err)}
	}
	id := spec.ContainerID()

	if err := t.binding.Ready(); err != nil {
		return &Error{Stage: core.StageLibrary, Container: id, Err: err}
	}

	if t.current != nil {
		t.current.Dispose()
		t.current = nil
	}
	if existing, ok := t.binding.Existing(id); ok {
		existing.Dispose()
	}

	inst, err := t.binding.Init(id, spec.Width(), spec.Height())
	if err != nil {
		stage := core.StageRender
		if errors.Is(err, ErrContainerMissing) {
			stage = core.StageContainer
		}
		return &Error{Stage: stage, Container: id, Err: err}
	}

	if err := ctx.Err(); err != nil {
		inst.Dispose()
		return err
	}

	if err := inst.SetOption(spec); err != nil {
		inst.Dispose()
		stage := core.StageRender
		if errors.Is(err, formatter.ErrArity) || errors.Is(err, formatter.ErrPayload) || errors.Is(err, formatter.ErrNoScript) {
			stage = core.StageFormatter
		}
		return &Error{Stage: stage, Container: id, Err: err}
	}

	t.current = inst
	return nil
}

// Spawn runs the task on its own goroutine and returns immediately. Failures are
// logged and forwarded to the reporter; the returned channel receives the
// outcome for callers that want it and is closed afterwards.
func (t *Task) Spawn(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		err := t.runRecovered(ctx)
		t.handle(ctx, err)
		done <- err
	}()
	return done
}

func (t *Task) runRecovered(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Error{Stage: core.StageRuntime, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return t.Run(ctx)
}

func (t *Task) handle(ctx context.Context, err error) {
	switch {
	case err == nil:
		t.logger.Debug("chart mounted", "runtime", t.runtime)
		return
	case errors.Is(err, ErrUnsupported):
		t.logger.Debug("chart mount skipped", "reason", err)
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		t.logger.Debug("chart mount discarded", "reason", err)
		return
	}

	failure := core.MountFailure{
		Stage:   core.StageRender,
		Message: err.Error(),
		Runtime: t.runtime,
	}
	var mountErr *Error
	if errors.As(err, &mountErr) {
		failure.Stage = mountErr.Stage
		failure.Container = mountErr.Container
	}

	t.logger.Error("chart mount failed", "stage", failure.Stage, "container", failure.Container, "err", err)
	t.reporter.Report(context.WithoutCancel(ctx), failure)
}
