package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/3-lines-studio/chartmount"
	"github.com/3-lines-studio/chartmount/internal/adapters/cli"
	"github.com/3-lines-studio/chartmount/internal/config"
	"github.com/3-lines-studio/chartmount/internal/logging"
)

func main() {
	var configPath = flag.String("config", "", "Path to the YAML config file")
	flag.Parse()

	output := cli.NewOutput()
	output.PrintHeader("chartmount export")

	if flag.NArg() != 1 {
		output.PrintError("Missing output directory argument")
		fmt.Println()
		output.PrintStep("Usage: chartmount-export [-config file] <dir>")
		output.PrintStep("Example: chartmount-export ./dist/site")
		os.Exit(1)
	}
	dir := flag.Arg(0)

	path := *configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(path)
	if err != nil {
		output.PrintError("Failed to load config: %v", err)
		os.Exit(1)
	}
	cfg.ApplyEnv()

	logger, err := logging.New(io.Discard, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}

	app, err := chartmount.New(cfg, chartmount.WithLogger(logger))
	if err != nil {
		output.PrintError("Failed to create app: %v", err)
		os.Exit(1)
	}

	written, err := app.Export(dir)
	if err != nil {
		output.PrintError("Export failed: %v", err)
		os.Exit(1)
	}

	output.PrintSuccess("Exported %d files", len(written))
	for _, path := range written {
		output.PrintFile(path)
	}
}
