//go:build js && wasm

package mount

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/3-lines-studio/chartmount/internal/chart"
	"github.com/3-lines-studio/chartmount/internal/formatter"
)

type jsBinding struct {
	global js.Value
}

// NewBinding returns a binding to window.echarts and the page document.
func NewBinding() Binding {
	return &jsBinding{global: js.Global()}
}

func present(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

func (b *jsBinding) Capable() bool {
	return present(b.global.Get("document"))
}

func (b *jsBinding) echarts() js.Value {
	return b.global.Get("echarts")
}

func (b *jsBinding) Ready() error {
	e := b.echarts()
	if !present(e) || e.Get("init").Type() != js.TypeFunction {
		return ErrLibraryUnavailable
	}
	return nil
}

func (b *jsBinding) element(id string) (js.Value, bool) {
	el := b.global.Get("document").Call("getElementById", id)
	return el, present(el)
}

func (b *jsBinding) Existing(containerID string) (Instance, bool) {
	el, ok := b.element(containerID)
	if !ok {
		return nil, false
	}
	inst := b.echarts().Call("getInstanceByDom", el)
	if !present(inst) {
		return nil, false
	}
	return &jsInstance{value: inst, json: b.global.Get("JSON")}, true
}

func (b *jsBinding) Init(containerID string, width, height int) (inst Instance, err error) {
	el, ok := b.element(containerID)
	if !ok {
		return nil, fmt.Errorf("%w: #%s", ErrContainerMissing, containerID)
	}
	defer recoverJS(&err)

	v := b.echarts().Call("init", el, js.Null(), map[string]any{
		"width":  width,
		"height": height,
	})
	return &jsInstance{value: v, json: b.global.Get("JSON")}, nil
}

type jsInstance struct {
	value js.Value
	json  js.Value
	funcs []js.Func
}

func (i *jsInstance) SetOption(spec *chart.Spec) (err error) {
	defer recoverJS(&err)

	raw, err := spec.DataOption()
	if err != nil {
		return err
	}
	option := i.json.Call("parse", string(raw))

	if t := spec.Tooltip(); t != nil {
		bridge := formatter.NewBridge(t)
		fn := js.FuncOf(func(this js.Value, args []js.Value) any {
			return i.format(bridge, args)
		})
		i.funcs = append(i.funcs, fn)
		option.Get("tooltip").Set("formatter", fn)
	}

	i.value.Call("setOption", option)
	return nil
}

// format converts the runtime's arguments for the bridge. Errors and panics
// never reach ECharts; the tooltip falls back to empty text.
func (i *jsInstance) format(bridge *formatter.Bridge, args []js.Value) (out any) {
	console := js.Global().Get("console")
	defer func() {
		if r := recover(); r != nil {
			console.Call("error", "chartmount: tooltip formatter panicked:", fmt.Sprint(r))
			out = ""
		}
	}()

	converted := make([]any, len(args))
	if len(args) > 0 {
		payload := i.json.Call("stringify", args[0])
		if payload.Type() == js.TypeString {
			converted[0] = payload.String()
		}
	}
	if len(args) > 1 && args[1].Type() == js.TypeString {
		converted[1] = args[1].String()
	}
	if len(args) > 2 && args[2].Type() == js.TypeFunction {
		cb := args[2]
		converted[2] = formatter.Callback(func(ticket, text string) {
			cb.Invoke(ticket, text)
		})
	}

	text, err := bridge.Invoke(converted...)
	if err != nil {
		console.Call("warn", "chartmount: tooltip formatter rejected its arguments:", err.Error())
		return ""
	}
	return text
}

func (i *jsInstance) Dispose() {
	if present(i.value) && i.value.Get("dispose").Type() == js.TypeFunction {
		func() {
			var err error
			defer recoverJS(&err)
			i.value.Call("dispose")
		}()
	}
	for _, fn := range i.funcs {
		fn.Release()
	}
	i.funcs = nil
}

func recoverJS(err *error) {
	r := recover()
	if r == nil {
		return
	}
	var jsErr js.Error
	if e, ok := r.(error); ok && errors.As(e, &jsErr) {
		*err = fmt.Errorf("chart runtime: %w", jsErr)
		return
	}
	panic(r)
}
