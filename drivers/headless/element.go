package headless

import (
	"strings"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/atdiar/zui-filepond/dom"
)

// prelude provides the browser globals widget scripts reach for.
const prelude = `
globalThis.window = globalThis;
globalThis.self = globalThis;
if (typeof CustomEvent === 'undefined') {
	globalThis.CustomEvent = function CustomEvent(type, init) {
		init = init || {};
		this.type = String(type);
		this.detail = init.detail === undefined ? null : init.detail;
		this.bubbles = !!init.bubbles;
		this.cancelable = !!init.cancelable;
	};
}
`

// settleSource hands the outcome of a value, promise or not, to Go callbacks.
const settleSource = `(function (value, resolve, reject) {
	Promise.resolve(value).then(resolve, reject);
})`

func (r *Runtime) install(vm *goja.Runtime) error {
	r.installConsole(vm)
	if _, err := vm.RunScript("prelude.js", prelude); err != nil {
		return err
	}
	v, err := vm.RunScript("settle.js", settleSource)
	if err != nil {
		return err
	}
	settle, _ := goja.AssertFunction(v)
	r.settle = settle
	return nil
}

// installConsole routes console output to the logger.
func (r *Runtime) installConsole(vm *goja.Runtime) {
	logger := r.logger.Named("console")
	console := vm.NewObject()
	level := func(log func(string, ...zap.Field)) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			parts := make([]string, len(call.Arguments))
			for i, arg := range call.Arguments {
				parts[i] = arg.String()
			}
			log(strings.Join(parts, " "))
			return goja.Undefined()
		}
	}
	_ = console.Set("log", level(logger.Info))
	_ = console.Set("info", level(logger.Info))
	_ = console.Set("debug", level(logger.Debug))
	_ = console.Set("warn", level(logger.Warn))
	_ = console.Set("error", level(logger.Error))
	_ = vm.Set("console", console)
}

// element builds the JavaScript view of a dom element: its tag name, attribute
// accessors and dispatchEvent. Views are cached so that a widget comparing
// elements by identity sees the same object twice.
func (r *Runtime) element(el *dom.Element) *goja.Object {
	if o, ok := r.elements[el]; ok {
		return o
	}
	vm := r.vm
	o := vm.NewObject()
	_ = o.Set("tagName", strings.ToUpper(el.TagName()))
	_ = o.Set("getAttribute", func(call goja.FunctionCall) goja.Value {
		v, ok := el.Attr(call.Argument(0).String())
		if !ok {
			return goja.Null()
		}
		return vm.ToValue(v)
	})
	_ = o.Set("hasAttribute", func(call goja.FunctionCall) goja.Value {
		return vm.ToValue(el.HasAttribute(call.Argument(0).String()))
	})
	_ = o.Set("setAttribute", func(call goja.FunctionCall) goja.Value {
		el.SetAttribute(call.Argument(0).String(), call.Argument(1).String())
		return goja.Undefined()
	})
	_ = o.Set("removeAttribute", func(call goja.FunctionCall) goja.Value {
		el.RemoveAttribute(call.Argument(0).String())
		return goja.Undefined()
	})
	_ = o.Set("dispatchEvent", func(call goja.FunctionCall) goja.Value {
		evt := call.Argument(0).ToObject(vm)
		eventType := evt.Get("type").String()
		var detail any
		if d := evt.Get("detail"); !isNullish(d) {
			detail = d.Export()
		}
		bubbles := false
		if b := evt.Get("bubbles"); b != nil {
			bubbles = b.ToBoolean()
		}
		return vm.ToValue(el.DispatchEvent(eventType, detail, bubbles))
	})
	_ = o.DefineAccessorProperty("parentElement", vm.ToValue(func(goja.FunctionCall) goja.Value {
		p := el.Parent()
		if p == nil {
			return goja.Null()
		}
		return r.element(p)
	}), nil, goja.FLAG_FALSE, goja.FLAG_TRUE)

	r.elements[el] = o
	return o
}

// forget drops the cached view of el.
func (r *Runtime) forget(el *dom.Element) {
	delete(r.elements, el)
}

func isNullish(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}
