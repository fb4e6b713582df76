//go:build js && wasm

package browser

import (
	"fmt"
	sysjs "syscall/js"

	js "github.com/atdiar/particleui/drivers/js/compat"

	filepond "github.com/atdiar/zui-filepond"
)

type instance struct {
	v js.Value
}

func (p *instance) call(name string, args ...any) (v js.Value, err error) {
	if p.v.Get(name).Type() != sysjs.TypeFunction {
		return js.Undefined(), fmt.Errorf("%w: %s", filepond.ErrUnsupported, name)
	}
	values := make([]any, len(args))
	for i, a := range args {
		values[i] = jsValue(a)
	}
	defer catch(&err)
	return p.v.Call(name, values...), nil
}

func (p *instance) async(name string, args ...any) filepond.Future {
	v, err := p.call(name, args...)
	if err != nil {
		return filepond.Rejected(err)
	}
	return promise{v}
}

func (p *instance) SetOptions(opts filepond.Options) error {
	_, err := p.call("setOptions", opts)
	return err
}

func (p *instance) Destroy() error {
	_, err := p.call("destroy")
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
	return filesOf(v), nil
}

func (p *instance) MoveFile(query any, index int) error {
	_, err := p.call("moveFile", query, index)
	return err
}

// Sort sorts the files in place. The comparison callback only lives for the
// duration of the call.
func (p *instance) Sort(compare func(a, b filepond.File) int) error {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		a, _ := fileOf(args[0])
		b, _ := fileOf(args[1])
		return compare(a, b)
	})
	defer cb.Release()
	_, err := p.call("sort", cb.Value)
	return err
}

func (p *instance) Browse() error {
	_, err := p.call("browse")
	return err
}

func (p *instance) Status() (filepond.Status, error) {
	v := p.v.Get("status")
	if v.Type() != sysjs.TypeNumber {
		return 0, fmt.Errorf("%w: status", filepond.ErrUnsupported)
	}
	return filepond.Status(v.Int()), nil
}

// promise settles with a widget promise, or immediately with a plain value.
type promise struct {
	v js.Value
}

func (p promise) Then(resolve func(any), reject func(error)) {
	var ok, ko js.Func
	release := func() {
		ok.Release()
		ko.Release()
	}
	ok = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		defer release()
		if resolve != nil {
			resolve(export(arg(args)))
		}
		return nil
	})
	ko = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		defer release()
		if reject != nil {
			reject(rejection(arg(args)))
		}
		return nil
	})
	js.Global().Get("Promise").Call("resolve", p.v).Call("then", ok, ko)
}

func arg(args []js.Value) js.Value {
	if len(args) == 0 {
		return js.Undefined()
	}
	return args[0]
}

// RejectionError is the reason of a rejected widget promise.
type RejectionError struct {
	Reason any
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("widget promise rejected: %v", e.Reason)
}

func rejection(v js.Value) error {
	if v.Type() == sysjs.TypeObject {
		if msg := v.Get("message"); msg.Truthy() {
			return &RejectionError{Reason: msg.String()}
		}
	}
	return &RejectionError{Reason: goValue(v)}
}
