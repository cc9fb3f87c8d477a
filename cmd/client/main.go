//go:build js && wasm

// Command client is the wasm runtime of the chart mount. The page loads it
// after the echarts script and passes its settings as window.chartmountConfig.
package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/3-lines-studio/chartmount/internal/chart"
	"github.com/3-lines-studio/chartmount/internal/core"
	"github.com/3-lines-studio/chartmount/internal/logging"
	"github.com/3-lines-studio/chartmount/internal/mount"
)

func readConfig() core.MountConfig {
	cfg := core.MountConfig{
		ContainerID:    chart.DefaultContainerID,
		ContainerClass: chart.DefaultContainerClass,
		Width:          chart.DefaultWidth,
		Height:         chart.DefaultHeight,
		ReportURL:      core.ReportPath,
	}

	raw := js.Global().Get("chartmountConfig")
	if raw.IsUndefined() || raw.IsNull() {
		return cfg
	}
	text := js.Global().Get("JSON").Call("stringify", raw).String()
	if err := json.Unmarshal([]byte(text), &cfg); err != nil {
		slog.Warn("ignoring malformed chartmountConfig", "err", err)
	}
	return cfg
}

func main() {
	logger, err := logging.Configure(os.Stderr, "info", "logfmt")
	if err != nil {
		logger = slog.Default()
	}

	cfg := readConfig()
	build := func() (*chart.Spec, error) {
		return chart.New(
			chart.DefaultCategories(),
			chart.DefaultValues(),
			chart.DefaultTooltip(),
			chart.WithContainer(cfg.ContainerID, cfg.ContainerClass),
			chart.WithSize(cfg.Width, cfg.Height),
		)
	}

	var reporter mount.Reporter = mount.LogReporter{Logger: logger}
	if cfg.ReportURL != "" {
		reporter = mount.NewHTTPReporter(cfg.ReportURL, nil)
	}

	task := mount.NewTask(mount.NewBinding(), build,
		mount.WithLogger(logger),
		mount.WithRuntime(core.RuntimeWasm),
		mount.WithReporter(reporter),
	)

	remount := js.FuncOf(func(this js.Value, args []js.Value) any {
		task.Spawn(context.Background())
		return nil
	})
	js.Global().Set("chartmount", map[string]any{"remount": remount})

	<-task.Spawn(context.Background())

	// The tooltip formatter and remount callbacks live in this process.
	select {}
}
