package mount

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/3-lines-studio/chartmount/internal/chart"
	"github.com/3-lines-studio/chartmount/internal/core"
	"github.com/3-lines-studio/chartmount/internal/formatter"
)

type fakeInstance struct {
	dom      *fakeDOM
	id       string
	disposed bool
	option   *chart.Spec
	failWith error
}

func (i *fakeInstance) SetOption(spec *chart.Spec) error {
	if i.failWith != nil {
		return i.failWith
	}
	i.option = spec
	return nil
}

func (i *fakeInstance) Dispose() {
	i.disposed = true
	if i.dom.charts[i.id] == i {
		delete(i.dom.charts, i.id)
	}
}

// fakeDOM mimics echarts.init/getInstanceByDom against a set of container ids.
type fakeDOM struct {
	capable      bool
	libraryErr   error
	containers   map[string]bool
	charts       map[string]*fakeInstance
	inits        int
	setOptionErr error
}

func newFakeDOM(ids ...string) *fakeDOM {
	d := &fakeDOM{
		capable:    true,
		containers: map[string]bool{},
		charts:     map[string]*fakeInstance{},
	}
	for _, id := range ids {
		d.containers[id] = true
	}
	return d
}

func (d *fakeDOM) Capable() bool { return d.capable }

func (d *fakeDOM) Ready() error { return d.libraryErr }

func (d *fakeDOM) Existing(id string) (Instance, bool) {
	inst, ok := d.charts[id]
	if !ok {
		return nil, false
	}
	return inst, true
}

func (d *fakeDOM) Init(id string, width, height int) (Instance, error) {
	if !d.containers[id] {
		return nil, ErrContainerMissing
	}
	d.inits++
	inst := &fakeInstance{dom: d, id: id, failWith: d.setOptionErr}
	d.charts[id] = inst
	return inst, nil
}

type recordingReporter struct {
	mu       sync.Mutex
	failures []core.MountFailure
}

func (r *recordingReporter) Report(_ context.Context, f core.MountFailure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, f)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func defaultBuild() (*chart.Spec, error) {
	return chart.Default(), nil
}

func TestRunMountsChart(t *testing.T) {
	dom := newFakeDOM("main")
	task := NewTask(dom, defaultBuild, WithLogger(discardLogger()))

	if err := task.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	inst := dom.charts["main"]
	if inst == nil {
		t.Fatal("expected a chart bound to #main")
	}
	if inst.option == nil {
		t.Fatal("expected option to be applied")
	}
	if got := len(inst.option.Categories()); got != 7 {
		t.Errorf("categories = %d, want 7", got)
	}
}

func TestRunTwiceLeavesOneInstance(t *testing.T) {
	dom := newFakeDOM("main")
	task := NewTask(dom, defaultBuild, WithLogger(discardLogger()))

	for i := 0; i < 2; i++ {
		if err := task.Run(context.Background()); err != nil {
			t.Fatalf("Run() #%d error = %v", i+1, err)
		}
	}

	if dom.inits != 2 {
		t.Errorf("inits = %d, want 2", dom.inits)
	}
	if len(dom.charts) != 1 {
		t.Errorf("charts bound = %d, want 1", len(dom.charts))
	}
}

func TestRunDisposesForeignInstance(t *testing.T) {
	dom := newFakeDOM("main")
	foreign := &fakeInstance{dom: dom, id: "main"}
	dom.charts["main"] = foreign

	task := NewTask(dom, defaultBuild, WithLogger(discardLogger()))
	if err := task.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !foreign.disposed {
		t.Error("expected the instance already bound to the container to be disposed")
	}
	if dom.charts["main"] == foreign {
		t.Error("expected a new instance to replace the foreign one")
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*fakeDOM)
		build     Builder
		wantErr   error
		wantStage core.Stage
	}{
		{
			name:    "not capable",
			setup:   func(d *fakeDOM) { d.capable = false },
			wantErr: ErrUnsupported,
		},
		{
			name:      "library missing",
			setup:     func(d *fakeDOM) { d.libraryErr = ErrLibraryUnavailable },
			wantErr:   ErrLibraryUnavailable,
			wantStage: core.StageLibrary,
		},
		{
			name:      "container missing",
			setup:     func(d *fakeDOM) { delete(d.containers, "main") },
			wantErr:   ErrContainerMissing,
			wantStage: core.StageContainer,
		},
		{
			name:      "formatter rejected",
			setup:     func(d *fakeDOM) { d.setOptionErr = formatter.ErrPayload },
			wantErr:   formatter.ErrPayload,
			wantStage: core.StageFormatter,
		},
		{
			name:      "render error",
			setup:     func(d *fakeDOM) { d.setOptionErr = errors.New("boom") },
			wantStage: core.StageRender,
		},
		{
			name: "build error",
			build: func() (*chart.Spec, error) {
				return chart.New(nil, nil, nil)
			},
			wantErr:   chart.ErrEmpty,
			wantStage: core.StageRender,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dom := newFakeDOM("main")
			if tt.setup != nil {
				tt.setup(dom)
			}
			build := tt.build
			if build == nil {
				build = defaultBuild
			}

			err := NewTask(dom, build, WithLogger(discardLogger())).Run(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantStage != "" {
				var mountErr *Error
				if !errors.As(err, &mountErr) {
					t.Fatalf("error %v is not a *mount.Error", err)
				}
				if mountErr.Stage != tt.wantStage {
					t.Errorf("stage = %q, want %q", mountErr.Stage, tt.wantStage)
				}
			}
			if len(dom.charts) != 0 {
				t.Errorf("charts bound = %d, want 0 after a failed mount", len(dom.charts))
			}
		})
	}
}

func TestRunCancelled(t *testing.T) {
	dom := newFakeDOM("main")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewTask(dom, defaultBuild, WithLogger(discardLogger())).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if dom.inits != 0 {
		t.Errorf("inits = %d, want 0", dom.inits)
	}
}

func TestSpawnReportsFailure(t *testing.T) {
	dom := newFakeDOM()
	reporter := &recordingReporter{}
	task := NewTask(dom, defaultBuild,
		WithLogger(discardLogger()),
		WithReporter(reporter),
		WithRuntime(core.RuntimeWasm),
	)

	err := <-task.Spawn(context.Background())
	if !errors.Is(err, ErrContainerMissing) {
		t.Fatalf("error = %v, want ErrContainerMissing", err)
	}

	if len(reporter.failures) != 1 {
		t.Fatalf("reported = %d, want 1", len(reporter.failures))
	}
	got := reporter.failures[0]
	if got.Stage != core.StageContainer {
		t.Errorf("stage = %q, want %q", got.Stage, core.StageContainer)
	}
	if got.Container != "main" {
		t.Errorf("container = %q, want main", got.Container)
	}
	if got.Runtime != core.RuntimeWasm {
		t.Errorf("runtime = %q, want wasm", got.Runtime)
	}
}

func TestSpawnDoesNotReportUnsupported(t *testing.T) {
	reporter := &recordingReporter{}
	task := NewTask(NewBinding(), defaultBuild,
		WithLogger(discardLogger()),
		WithReporter(reporter),
	)

	if err := <-task.Spawn(context.Background()); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("error = %v, want ErrUnsupported", err)
	}
	if len(reporter.failures) != 0 {
		t.Errorf("reported = %d, want 0", len(reporter.failures))
	}
}

func TestSpawnRecoversPanic(t *testing.T) {
	reporter := &recordingReporter{}
	task := NewTask(newFakeDOM("main"), func() (*chart.Spec, error) {
		panic("exploded")
	}, WithLogger(discardLogger()), WithReporter(reporter))

	err := <-task.Spawn(context.Background())
	var mountErr *Error
	if !errors.As(err, &mountErr) || mountErr.Stage != core.StageRuntime {
		t.Fatalf("error = %v, want runtime stage", err)
	}
	if len(reporter.failures) != 1 || reporter.failures[0].Stage != core.StageRuntime {
		t.Errorf("reported = %+v, want one runtime failure", reporter.failures)
	}
}

func TestHTTPReporterPostsFailure(t *testing.T) {
	var got core.MountFailure
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	want := core.MountFailure{
		Stage:     core.StageLibrary,
		Message:   "echarts missing",
		Container: "main",
		Runtime:   core.RuntimeWasm,
	}
	r := NewHTTPReporter(srv.URL, srv.Client())
	if err := r.post(context.Background(), want); err != nil {
		t.Fatalf("post() error = %v", err)
	}
	if got != want {
		t.Errorf("server received %+v, want %+v", got, want)
	}
}

func TestHTTPReporterStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	r := NewHTTPReporter(srv.URL, nil)
	if err := r.post(context.Background(), core.MountFailure{Stage: core.StageRender}); err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestLogReporter(t *testing.T) {
	var buf bytes.Buffer
	r := LogReporter{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	r.Report(context.Background(), core.MountFailure{
		Stage:     core.StageLibrary,
		Message:   "echarts is not loaded",
		Container: "main",
		Runtime:   core.RuntimeWasm,
	})

	out := buf.String()
	for _, want := range []string{"level=WARN", "stage=library", "runtime=wasm", "container=main"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}
