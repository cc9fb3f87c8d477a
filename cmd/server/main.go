package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/3-lines-studio/chartmount"
	"github.com/3-lines-studio/chartmount/internal/config"
	"github.com/3-lines-studio/chartmount/internal/logging"
)

func main() {
	var configPath = flag.String("config", "", "Path to the YAML config file (default $CONFIG_PATH or "+config.DefaultPath+")")
	var listen = flag.String("listen", "", "Listen address, overrides server.listen (e.g. :8080)")
	var logLevel = flag.String("log-level", "", "Log level: debug, info, warn, error")
	var dev = flag.Bool("dev", false, "Serve assets from disk and show error details")
	flag.Parse()

	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg.ApplyEnv()
	if *listen != "" {
		cfg.Server.Listen = *listen
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *dev {
		cfg.Server.Dev = true
	}

	logger, err := logging.Configure(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatal(err.Error())
	}

	app, err := chartmount.New(cfg, chartmount.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	servers := []*http.Server{{
		Addr:    cfg.Server.Listen,
		Handler: app.Handler(),
	}}
	if cfg.Server.MetricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.MetricsHandler())
		servers = append(servers, &http.Server{Addr: cfg.Server.MetricsListen, Handler: mux})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(servers))
	for _, server := range servers {
		go func() {
			slog.Info("serving chartmount", "listen", server.Addr, "mode", cfg.Mode(), "runtime", cfg.Chart.Runtime)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	select {
	case err := <-errCh:
		slog.Error("server failed", "err", err)
		os.Exit(1)
	case <-ctx.Done():
		slog.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	failed := false
	for _, server := range servers {
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "listen", server.Addr, "err", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
