package chart

import (
	"encoding/json"
	"fmt"
	"html/template"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/3-lines-studio/chartmount/internal/formatter"
)

// Line builds the go-echarts model of s. formatterJS, when not empty, becomes the
// tooltip formatter.
func (s *Spec) Line(formatterJS string) *charts.Line {
	tooltip := opts.Tooltip{
		Show:    opts.Bool(true),
		Trigger: "axis",
		AxisPointer: &opts.AxisPointer{
			Type: "shadow",
			Label: &opts.Label{
				Show:            opts.Bool(true),
				BackgroundColor: "#ccc",
				BorderColor:     "#aaa",
				BorderWidth:     1,
				Color:           "#222",
			},
		},
	}
	if formatterJS != "" {
		tooltip.Formatter = opts.FuncOpts(formatterJS)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			ChartID: s.containerID,
			Width:   strconv.Itoa(s.width) + "px",
			Height:  strconv.Itoa(s.height) + "px",
		}),
		charts.WithTooltipOpts(tooltip),
		// JSON() skips Validate, which is what copies SetXAxis data onto the axis.
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: s.Categories()}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	)

	data := make([]opts.LineData, len(s.values))
	for i, v := range s.values {
		data[i] = opts.LineData{Value: v}
	}
	line.SetXAxis(s.Categories()).AddSeries(s.seriesName, data)

	// ECharts hands params[i].data to the formatter; plain numbers keep that a
	// number instead of a {value: n} object.
	line.MultiSeries[0].Data = s.Values()

	return line
}

// ScriptOption renders the option as a JavaScript object literal with the tooltip
// formatter inlined. The tooltip must implement formatter.Scripter.
func (s *Spec) ScriptOption() (template.JS, error) {
	var fn string
	if s.tooltip != nil {
		var err error
		fn, err = formatter.Script(s.tooltip)
		if err != nil {
			return "", err
		}
	}

	raw := string(s.Line(fn).JSONNotEscaped())
	inlined, err := inlineFuncs(strings.TrimSpace(raw))
	if err != nil {
		return "", err
	}

	return template.JS(strings.ReplaceAll(inlined, "</", "<\\/")), nil
}

// DataOption renders the option as JSON without functions.
func (s *Spec) DataOption() ([]byte, error) {
	return json.Marshal(s.Line("").JSON())
}

// go-echarts marks function sources as "__f__<source>__f__" strings.
var funcPattern = regexp.MustCompile(`"__f__((?:[^"\\]|\\.)*)__f__"`)

// inlineFuncs replaces every marked function string with its decoded source so
// that quotes inside the function survive JSON encoding.
func inlineFuncs(raw string) (string, error) {
	var decodeErr error
	out := funcPattern.ReplaceAllStringFunc(raw, func(match string) string {
		inner := funcPattern.FindStringSubmatch(match)[1]
		var src string
		if err := json.Unmarshal([]byte(`"`+inner+`"`), &src); err != nil {
			decodeErr = fmt.Errorf("chart: failed to decode function source: %w", err)
			return match
		}
		return src
	})
	return out, decodeErr
}
