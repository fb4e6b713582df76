package headless

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"

	filepond "github.com/atdiar/zui-filepond"
	"github.com/atdiar/zui-filepond/dom"
)

// instance is a widget instance living in the runtime. It calls the instance
// methods by name, so that a widget missing one reports ErrUnsupported instead
// of failing to load.
type instance struct {
	rt      *Runtime
	obj     *goja.Object
	element *dom.Element
}

func (p *instance) call(name string, args ...any) (goja.Value, error) {
	fn, ok := goja.AssertFunction(p.obj.Get(name))
	if !ok {
		return nil, fmt.Errorf("%w: %s", filepond.ErrUnsupported, name)
	}
	values := make([]goja.Value, len(args))
	for i, a := range args {
		values[i] = p.rt.toJS(a)
	}
	return fn(p.obj, values...)
}

func (p *instance) async(name string, args ...any) filepond.Future {
	v, err := p.call(name, args...)
	if err != nil {
		return filepond.Rejected(err)
	}
	return &future{rt: p.rt, value: v}
}

func (p *instance) SetOptions(opts filepond.Options) error {
	_, err := p.call("setOptions", opts)
	return err
}

// Destroy destroys the widget and drops the JavaScript view of its element.
func (p *instance) Destroy() error {
	_, err := p.call("destroy")
	p.rt.forget(p.element)
	return err
}

func (p *instance) AddFile(source any, opts filepond.Options) filepond.Future {
	return p.async("addFile", source, opts)
}

func (p *instance) AddFiles(sources []any, opts filepond.Options) filepond.Future {
	return p.async("addFiles", sources, opts)
}

func (p *instance) RemoveFile(query any, opts filepond.Options) error {
	_, err := p.call("removeFile", query, opts)
	return err
}

func (p *instance) RemoveFiles(queries []any, opts filepond.Options) error {
	_, err := p.call("removeFiles", queries, opts)
	return err
}

func (p *instance) ProcessFile(query any) filepond.Future {
	return p.async("processFile", query)
}

func (p *instance) ProcessFiles(queries ...any) filepond.Future {
	return p.async("processFiles", queries...)
}

func (p *instance) PrepareFile(query any) filepond.Future {
	return p.async("prepareFile", query)
}

func (p *instance) PrepareFiles(queries ...any) filepond.Future {
	return p.async("prepareFiles", queries...)
}

func (p *instance) GetFile(query any) (filepond.File, bool, error) {
	v, err := p.call("getFile", query)
	if err != nil {
		return filepond.File{}, false, err
	}
	f, ok := fileOf(v)
	return f, ok, nil
}

func (p *instance) GetFiles() ([]filepond.File, error) {
	v, err := p.call("getFiles")
	if err != nil {
		return nil, err
	}
	return p.rt.filesOf(v), nil
}

func (p *instance) MoveFile(query any, index int) error {
	_, err := p.call("moveFile", query, index)
	return err
}

func (p *instance) Sort(compare func(a, b filepond.File) int) error {
	if compare == nil {
		return errors.New("sort: nil compare function")
	}
	vm := p.rt.vm
	fn := vm.ToValue(func(call goja.FunctionCall) goja.Value {
		a, _ := fileOf(call.Argument(0))
		b, _ := fileOf(call.Argument(1))
		return vm.ToValue(compare(a, b))
	})
	_, err := p.call("sort", fn)
	return err
}

func (p *instance) Browse() error {
	_, err := p.call("browse")
	return err
}

// Status reads the status property of the widget.
func (p *instance) Status() (filepond.Status, error) {
	v := p.obj.Get("status")
	if isNullish(v) {
		return 0, fmt.Errorf("%w: status", filepond.ErrUnsupported)
	}
	return filepond.Status(v.ToInteger()), nil
}

// future settles once the widget promise (or plain value) does, on a later
// job of the loop.
type future struct {
	rt    *Runtime
	value goja.Value
}

func (f *future) Then(resolve func(any), reject func(error)) {
	vm := f.rt.vm
	ok := vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if resolve != nil {
			resolve(f.rt.export(call.Argument(0)))
		}
		return goja.Undefined()
	})
	ko := vm.ToValue(func(call goja.FunctionCall) goja.Value {
		if reject != nil {
			reject(rejection(call.Argument(0)))
		}
		return goja.Undefined()
	})
	if _, err := f.rt.settle(goja.Undefined(), f.value, ok, ko); err != nil && reject != nil {
		reject(err)
	}
}

// RejectionError is the reason of a rejected widget promise.
type RejectionError struct {
	Reason any
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("widget promise rejected: %v", e.Reason)
}

func rejection(v goja.Value) error {
	if isNullish(v) {
		return &RejectionError{}
	}
	if obj, ok := v.(*goja.Object); ok {
		if msg := obj.Get("message"); !isNullish(msg) {
			return &RejectionError{Reason: msg.String()}
		}
	}
	return &RejectionError{Reason: v.Export()}
}
