//go:build js && wasm

package browser

import (
	sysjs "syscall/js"

	js "github.com/atdiar/particleui/drivers/js/compat"

	filepond "github.com/atdiar/zui-filepond"
)

// jsValue converts Go values handed to the widget. Named map and slice types
// of package filepond are unwrapped, which js.ValueOf does not do.
func jsValue(v any) js.Value {
	switch t := v.(type) {
	case nil:
		return js.Undefined()
	case js.Value:
		return t
	case filepond.Options:
		if t == nil {
			return js.Undefined()
		}
		return object(t)
	case map[string]any:
		return object(t)
	case filepond.Files:
		if t == nil {
			return js.Undefined()
		}
		return array(t)
	case []any:
		return array(t)
	case filepond.File:
		return js.ValueOf(t.ID)
	case int64:
		return js.ValueOf(float64(t))
	default:
		return js.ValueOf(v)
	}
}

func object(m map[string]any) js.Value {
	o := js.Global().Get("Object").New()
	for k, v := range m {
		o.Set(k, jsValue(v))
	}
	return o
}

func array(l []any) js.Value {
	a := js.Global().Get("Array").New(len(l))
	for i, v := range l {
		a.SetIndex(i, jsValue(v))
	}
	return a
}

// goValue converts a JavaScript value to plain Go values. Functions and other
// host objects that are not plain data stay js.Value.
func goValue(v js.Value) any {
	switch v.Type() {
	case sysjs.TypeUndefined, sysjs.TypeNull:
		return nil
	case sysjs.TypeBoolean:
		return v.Bool()
	case sysjs.TypeNumber:
		return v.Float()
	case sysjs.TypeString:
		return v.String()
	case sysjs.TypeObject:
		if js.Global().Get("Array").Call("isArray", v).Bool() {
			l := make([]any, v.Length())
			for i := range l {
				l[i] = goValue(v.Index(i))
			}
			return l
		}
		if !isPlain(v) {
			return v
		}
		keys := js.Global().Get("Object").Call("keys", v)
		m := make(map[string]any, keys.Length())
		for i := 0; i < keys.Length(); i++ {
			k := keys.Index(i).String()
			m[k] = goValue(v.Get(k))
		}
		return m
	default:
		return v
	}
}

func isPlain(v js.Value) bool {
	proto := js.Global().Get("Object").Call("getPrototypeOf", v)
	return proto.IsNull() || proto.Equal(js.Global().Get("Object").Get("prototype"))
}

// fileOf reads a widget file item. Items expose their fields as getters.
func fileOf(v js.Value) (filepond.File, bool) {
	if v.Type() != sysjs.TypeObject || !v.Get("id").Truthy() {
		return filepond.File{}, false
	}
	return filepond.File{
		ID:       v.Get("id").String(),
		ServerID: str(v.Get("serverId")),
		Filename: str(v.Get("filename")),
		Type:     str(v.Get("fileType")),
		Size:     int64(number(v.Get("fileSize"))),
		Status:   filepond.FileStatus(number(v.Get("status"))),
		Origin:   filepond.FileOrigin(number(v.Get("origin"))),
	}, true
}

func filesOf(v js.Value) []filepond.File {
	if v.Type() != sysjs.TypeObject {
		return nil
	}
	files := make([]filepond.File, 0, v.Length())
	for i := 0; i < v.Length(); i++ {
		if f, ok := fileOf(v.Index(i)); ok {
			files = append(files, f)
		}
	}
	return files
}

func export(v js.Value) any {
	if f, ok := fileOf(v); ok {
		return f
	}
	if js.Global().Get("Array").Call("isArray", v).Bool() {
		if files := filesOf(v); v.Length() > 0 && len(files) == v.Length() {
			return files
		}
	}
	return goValue(v)
}

func str(v js.Value) string {
	if v.Type() != sysjs.TypeString {
		return ""
	}
	return v.String()
}

func number(v js.Value) float64 {
	if v.Type() != sysjs.TypeNumber {
		return 0
	}
	return v.Float()
}
