// Package chartmount serves a server-rendered page carrying one ECharts line
// chart. The chart's tooltip formatter is written in Go and handed to the
// browser either as generated JavaScript or, with the wasm runtime, as a Go
// function called through syscall/js.
package chartmount

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	fsadapter "github.com/3-lines-studio/chartmount/internal/adapters/fs"
	httpadapter "github.com/3-lines-studio/chartmount/internal/adapters/http"
	"github.com/3-lines-studio/chartmount/internal/config"
	"github.com/3-lines-studio/chartmount/internal/core"
	"github.com/3-lines-studio/chartmount/internal/page"
)

type Config = config.Config

type SpecBuilder = httpadapter.SpecBuilder

type App struct {
	config  config.Config
	logger  *slog.Logger
	metrics *httpadapter.Metrics
	static  fs.FS
	files   fsadapter.FileSystem
	build   SpecBuilder

	page   *httpadapter.PageHandler
	assets http.Handler
	report http.Handler
	option http.Handler
}

type Option func(*App)

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithSpecBuilder replaces the chart built for every page load.
func WithSpecBuilder(build SpecBuilder) Option {
	return func(a *App) {
		a.build = build
	}
}

// WithStatic replaces the embedded stylesheet filesystem.
func WithStatic(static fs.FS) Option {
	return func(a *App) {
		a.static = static
	}
}

// WithFileSystem replaces the filesystem Export writes to.
func WithFileSystem(files fsadapter.FileSystem) Option {
	return func(a *App) {
		a.files = files
	}
}

func New(cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	app := &App{
		config:  cfg,
		logger:  slog.Default(),
		metrics: httpadapter.NewMetrics(),
		static:  page.Static(),
		files:   fsadapter.NewOSFileSystem(),
		build:   httpadapter.SpecFromConfig(cfg),
	}
	for _, opt := range opts {
		opt(app)
	}

	isDev := cfg.Mode() == core.ModeDev
	app.page = httpadapter.NewPageHandler(cfg, app.build, app.metrics, app.logger)
	app.assets = httpadapter.NewAssetHandler(
		app.static,
		page.DevStaticDir,
		cfg.Chart.WasmDir,
		[]string{page.WasmFile, page.WasmExecFile},
		isDev,
	)
	app.report = httpadapter.NewReportHandler(app.metrics, app.logger)
	app.option = httpadapter.NewOptionHandler(app.build, app.logger)

	app.logger.Debug("chartmount app created", "mode", cfg.Mode(), "runtime", cfg.Chart.Runtime)
	return app, nil
}

type router interface {
	http.Handler
	Handle(pattern string, handler http.Handler)
}

type mounter interface {
	Mount(pattern string, handler http.Handler)
}

type notFounder interface {
	NotFound(handler http.HandlerFunc)
}

// Wrap registers the app's routes on api. With a chi router unmatched paths
// get the not-found view through NotFound; with http.ServeMux the page handler
// is the catch-all and renders the same view itself.
func (a *App) Wrap(api router) http.Handler {
	if api == nil {
		panic("chartmount: nil router passed to Wrap; use app.Handler()")
	}

	api.Handle("/", a.page)
	api.Handle(core.ReportPath, a.report)
	api.Handle(core.OptionPath, a.option)
	if a.config.Server.MetricsListen == "" {
		api.Handle("/metrics", a.metrics.Handler())
	}
	api.Handle("/healthz", http.HandlerFunc(httpadapter.HealthHandler))

	if m, ok := api.(mounter); ok {
		m.Mount(core.AssetPrefix[:len(core.AssetPrefix)-1], a.assets)
	} else {
		api.Handle(core.AssetPrefix, a.assets)
	}

	if nf, ok := api.(notFounder); ok {
		nf.NotFound(a.page.ServeNotFound)
	}

	return api
}

// Handler returns the app on a fresh chi router with request ids, request
// logging and panic recovery.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httpadapter.RequestLogger(a.logger))
	r.Use(middleware.Recoverer)
	return a.Wrap(r)
}

func (a *App) Config() config.Config {
	return a.config
}

// MetricsHandler serves the app's metrics. Wrap registers it at /metrics unless
// server.metricsListen asks for a separate listener.
func (a *App) MetricsHandler() http.Handler {
	return a.metrics.Handler()
}
