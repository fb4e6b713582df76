//go:build js && wasm

// Package browser runs a component against the real DOM and the FilePond
// library loaded in the page, from a WebAssembly build.
package browser

import (
	"errors"

	js "github.com/atdiar/particleui/drivers/js/compat"
)

var ErrNotFound = errors.New("no such element")

// Element is a DOM element of the page. It implements filepond.Host and
// filepond.Input.
type Element struct {
	v js.Value
}

// Wrap returns the Element for a DOM node.
func Wrap(v js.Value) Element { return Element{v} }

// GetElementByID looks an element of the document up.
func GetElementByID(id string) (Element, error) {
	v := js.Global().Get("document").Call("getElementById", id)
	if !v.Truthy() {
		return Element{}, ErrNotFound
	}
	return Element{v}, nil
}

// JSValue returns the underlying DOM node.
func (e Element) JSValue() js.Value { return e.v }

func (e Element) Attr(name string) (string, bool) {
	if !e.v.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return e.v.Call("getAttribute", name).String(), true
}

func (e Element) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

// QuerySelector returns the first descendant matching selector.
func (e Element) QuerySelector(selector string) (Element, error) {
	v := e.v.Call("querySelector", selector)
	if !v.Truthy() {
		return Element{}, ErrNotFound
	}
	return Element{v}, nil
}

// Listen adds a DOM event listener. The detail of custom events is converted
// to Go values. Removing the listener releases its callback.
func (e Element) Listen(eventType string, fn func(eventType string, detail any)) (remove func()) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) == 0 {
			fn(eventType, nil)
			return nil
		}
		evt := args[0]
		fn(evt.Get("type").String(), goValue(evt.Get("detail")))
		return nil
	})
	e.v.Call("addEventListener", eventType, cb)

	var removed bool
	return func() {
		if removed {
			return
		}
		removed = true
		e.v.Call("removeEventListener", eventType, cb)
		cb.Release()
	}
}
