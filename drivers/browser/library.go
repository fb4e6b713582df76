//go:build js && wasm

package browser

import (
	"fmt"
	sysjs "syscall/js"

	js "github.com/atdiar/particleui/drivers/js/compat"

	filepond "github.com/atdiar/zui-filepond"
)

// Library is the FilePond library object of the page.
type Library struct {
	pond js.Value
}

// FilePond returns the library loaded as window.FilePond.
func FilePond() (Library, error) {
	v := js.Global().Get("FilePond")
	if !v.Truthy() {
		return Library{}, filepond.ErrNoLibrary
	}
	return Library{v}, nil
}

func (l Library) Supported() bool {
	if !l.pond.Truthy() || l.pond.Get("supported").Type() != sysjs.TypeFunction {
		return false
	}
	return l.pond.Call("supported").Truthy()
}

func (l Library) Create(input filepond.Input, opts filepond.Options) (inst filepond.Instance, err error) {
	el, ok := input.(Element)
	if !ok {
		return nil, filepond.ErrForeignElement
	}
	if !l.pond.Truthy() {
		return nil, filepond.ErrNoLibrary
	}
	defer catch(&err)
	v := l.pond.Call("create", el.v, jsValue(opts))
	if !v.Truthy() {
		return nil, fmt.Errorf("FilePond.create returned %s", v.Type())
	}
	return &instance{v}, nil
}

// catch turns a JavaScript exception thrown by a Call into an error.
func catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if e, ok := r.(js.Error); ok {
		*err = e
		return
	}
	panic(r)
}
