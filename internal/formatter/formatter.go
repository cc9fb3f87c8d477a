// Package formatter defines the tooltip formatter contract shared by Go code and
// the ECharts runtime.
//
// ECharts calls a tooltip formatter with three positional arguments: the trigger
// payload, an asynchronous ticket and a callback. A Tooltip receives the same
// three values, typed. Formatters that can also describe themselves as JavaScript
// implement Scripter so the server can inline them into a chart option.
package formatter

import (
	"errors"
	"strings"
)

// Arity is the number of arguments the ECharts tooltip trigger passes to a
// formatter.
const Arity = 3

var (
	ErrArity        = errors.New("formatter: wrong number of arguments")
	ErrPayload      = errors.New("formatter: malformed trigger payload")
	ErrNotEvaluable = errors.New("formatter: source formatter cannot run outside the chart runtime")
	ErrNoScript     = errors.New("formatter: formatter has no script form")
)

// Param is one entry of an axis-trigger payload.
type Param struct {
	ComponentType string `json:"componentType,omitempty"`
	SeriesType    string `json:"seriesType,omitempty"`
	SeriesIndex   int    `json:"seriesIndex"`
	SeriesName    string `json:"seriesName,omitempty"`
	Name          string `json:"name,omitempty"`
	DataIndex     int    `json:"dataIndex"`
	Data          any    `json:"data"`
	Value         any    `json:"value,omitempty"`
	Color         any    `json:"color,omitempty"`
	AxisValue     any    `json:"axisValue,omitempty"`
}

// Payload is what the axis trigger hands to a formatter: one Param per series
// under the pointer.
type Payload []Param

// Callback lets a formatter deliver text asynchronously for a ticket.
type Callback func(ticket string, text string)

type Tooltip interface {
	Format(params Payload, ticket string, callback Callback) (string, error)
}

// Scripter is implemented by formatters that have a JavaScript function form.
type Scripter interface {
	Script() (string, error)
}

// Func adapts a Go function to Tooltip. It has no script form and is only
// usable where Go code runs next to the chart, such as the wasm client.
type Func func(params Payload, ticket string, callback Callback) (string, error)

func (f Func) Format(params Payload, ticket string, callback Callback) (string, error) {
	return f(params, ticket, callback)
}

// Script returns the JavaScript form of t, or ErrNoScript.
func Script(t Tooltip) (string, error) {
	s, ok := t.(Scripter)
	if !ok {
		return "", ErrNoScript
	}
	return s.Script()
}

// paramNames is the parameter list every generated script declares.
var paramNames = []string{"params", "ticket", "callback"}

func signature() string {
	return "function (" + strings.Join(paramNames, ", ") + ")"
}
