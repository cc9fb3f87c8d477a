package page

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"path"
	"strings"

	"github.com/3-lines-studio/chartmount/internal/chart"
	"github.com/3-lines-studio/chartmount/internal/config"
	"github.com/3-lines-studio/chartmount/internal/core"
)

const (
	WasmFile     = "chartmount.wasm"
	WasmExecFile = "wasm_exec.js"
)

// Data feeds page.html.
type Data struct {
	Title        string
	Heading      string
	Stylesheet   string
	StylesheetID string
	ScriptURL    string
	Container    template.HTML
	Wasm         bool
	WasmExecURL  string
	Mount        core.MountConfig
	Option       template.JS
}

// NewData builds the shell for spec. The script runtime needs the option with
// the formatter inlined; the wasm runtime builds its own spec in the browser.
func NewData(cfg config.Config, spec *chart.Spec) (Data, error) {
	var container bytes.Buffer
	if err := chart.NewContainerRenderer(spec).Render(&container); err != nil {
		return Data{}, fmt.Errorf("failed to render chart container: %w", err)
	}

	data := Data{
		Title:        cfg.Page.Title,
		Heading:      cfg.Page.Heading,
		Stylesheet:   cfg.Page.Stylesheet,
		StylesheetID: cfg.Page.StylesheetID,
		ScriptURL:    cfg.Chart.ScriptURL,
		Container:    template.HTML(container.String()),
		Wasm:         cfg.Chart.Runtime == core.RuntimeWasm,
		Mount: core.MountConfig{
			ContainerID:    spec.ContainerID(),
			ContainerClass: spec.ContainerClass(),
			Width:          spec.Width(),
			Height:         spec.Height(),
			ReportURL:      core.ReportPath,
			WasmURL:        AssetURL(WasmFile),
		},
	}

	if data.Wasm {
		data.WasmExecURL = AssetURL(WasmExecFile)
		return data, nil
	}

	option, err := spec.ScriptOption()
	if err != nil {
		return Data{}, fmt.Errorf("failed to build chart option: %w", err)
	}
	data.Option = option
	return data, nil
}

func AssetURL(name string) string {
	return path.Join(core.AssetPrefix, strings.TrimPrefix(name, "/"))
}

func Render(w io.Writer, data Data) error {
	return PageTemplate.Execute(w, data)
}

func RenderString(data Data) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func RenderError(w io.Writer, data core.ErrorData) error {
	return ErrorTemplate.Execute(w, data)
}
