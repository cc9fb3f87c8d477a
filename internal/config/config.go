package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/3-lines-studio/chartmount/internal/core"
)

const (
	DefaultPath      = "configs/chartmount.yaml"
	DefaultScriptURL = "https://cdn.jsdelivr.net/npm/echarts@5.4.2/dist/echarts.min.js"
)

type Config struct {
	Server struct {
		Listen          string        `yaml:"listen"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
		// MetricsListen moves /metrics off the public router when set.
		MetricsListen string `yaml:"metricsListen"`
		Dev           bool   `yaml:"dev"`
	} `yaml:"server"`
	Page struct {
		Title        string `yaml:"title"`
		Heading      string `yaml:"heading"`
		Stylesheet   string `yaml:"stylesheet"`
		StylesheetID string `yaml:"stylesheetId"`
	} `yaml:"page"`
	Chart struct {
		ScriptURL      string       `yaml:"scriptUrl"`
		ContainerID    string       `yaml:"containerId"`
		ContainerClass string       `yaml:"containerClass"`
		Width          int          `yaml:"width"`
		Height         int          `yaml:"height"`
		Runtime        core.Runtime `yaml:"runtime"`
		// WasmDir holds chartmount.wasm and wasm_exec.js for the wasm runtime.
		WasmDir string `yaml:"wasmDir"`
	} `yaml:"chart"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

func Default() Config {
	var c Config
	c.Server.Listen = ":8080"
	c.Server.ShutdownTimeout = 5 * time.Second
	c.Page.Title = "Welcome to chartmount"
	c.Page.Heading = "Welcome to chartmount!"
	c.Page.Stylesheet = "/pkg/chartmount.css"
	c.Page.StylesheetID = "chartmount"
	c.Chart.ScriptURL = DefaultScriptURL
	c.Chart.ContainerID = "main"
	c.Chart.ContainerClass = "chart"
	c.Chart.Width = 600
	c.Chart.Height = 600
	c.Chart.Runtime = core.RuntimeScript
	c.Chart.WasmDir = "dist/wasm"
	c.Log.Level = "info"
	c.Log.Format = "logfmt"
	return c
}

// Load reads path on top of Default. A missing file is not an error when path is
// the default location, so the server runs without any configuration.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		path = DefaultPath
	}

	file, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultPath {
			return config, nil
		}
		return config, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.UnmarshalStrict(file, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return config, nil
}

// ApplyEnv overrides fields from CHARTMOUNT_* environment variables.
func (c *Config) ApplyEnv() {
	if os.Getenv("CHARTMOUNT_DEV") == "1" {
		c.Server.Dev = true
	}
	if listen := os.Getenv("CHARTMOUNT_LISTEN"); listen != "" {
		c.Server.Listen = listen
	}
	if listen := os.Getenv("CHARTMOUNT_METRICS_LISTEN"); listen != "" {
		c.Server.MetricsListen = listen
	}
	if runtime := os.Getenv("CHARTMOUNT_RUNTIME"); runtime != "" {
		c.Chart.Runtime = core.Runtime(runtime)
	}
}

func (c Config) Mode() core.Mode {
	if c.Server.Dev {
		return core.ModeDev
	}
	return core.ModeProd
}

func (c Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
		return fmt.Errorf("invalid server.listen %q: %w", c.Server.Listen, err)
	}
	if c.Server.MetricsListen != "" {
		if _, _, err := net.SplitHostPort(c.Server.MetricsListen); err != nil {
			return fmt.Errorf("invalid server.metricsListen %q: %w", c.Server.MetricsListen, err)
		}
		if c.Server.MetricsListen == c.Server.Listen {
			return fmt.Errorf("server.metricsListen must differ from server.listen %q", c.Server.Listen)
		}
	}
	if c.Page.Title == "" {
		return fmt.Errorf("page.title cannot be empty")
	}
	if err := core.ValidateAssetPath(c.Page.Stylesheet); err != nil {
		return fmt.Errorf("invalid page.stylesheet: %w", err)
	}
	if c.Chart.ContainerID == "" {
		return fmt.Errorf("chart.containerId cannot be empty")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart dimensions must be positive, got %dx%d", c.Chart.Width, c.Chart.Height)
	}
	if !c.Chart.Runtime.Valid() {
		return fmt.Errorf("invalid chart.runtime %q: want %q or %q", c.Chart.Runtime, core.RuntimeScript, core.RuntimeWasm)
	}
	u, err := url.Parse(c.Chart.ScriptURL)
	if err != nil || c.Chart.ScriptURL == "" {
		return fmt.Errorf("invalid chart.scriptUrl %q", c.Chart.ScriptURL)
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid chart.scriptUrl scheme %q", u.Scheme)
	}
	return nil
}
