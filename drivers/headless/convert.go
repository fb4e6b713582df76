package headless

import (
	"strconv"

	"github.com/dop251/goja"

	filepond "github.com/atdiar/zui-filepond"
)

// toJS converts Go values handed to the widget. Option bags are turned into
// plain objects, with nil entries left undefined, and file snapshots into
// their id.
func (r *Runtime) toJS(v any) goja.Value {
	vm := r.vm
	switch t := v.(type) {
	case nil:
		return goja.Undefined()
	case goja.Value:
		return t
	case filepond.Options:
		if t == nil {
			return goja.Undefined()
		}
		return r.object(t)
	case map[string]any:
		return r.object(t)
	case filepond.Files:
		if t == nil {
			return goja.Undefined()
		}
		return r.array(t)
	case []any:
		return r.array(t)
	case filepond.File:
		return vm.ToValue(t.ID)
	default:
		return vm.ToValue(v)
	}
}

func (r *Runtime) object(m map[string]any) *goja.Object {
	o := r.vm.NewObject()
	for k, v := range m {
		_ = o.Set(k, r.toJS(v))
	}
	return o
}

func (r *Runtime) array(l []any) *goja.Object {
	values := make([]any, len(l))
	for i, v := range l {
		values[i] = r.toJS(v)
	}
	return r.vm.NewArray(values...)
}

// fileOf reads a widget file item. Anything without an id is not one.
func fileOf(v goja.Value) (filepond.File, bool) {
	obj, ok := v.(*goja.Object)
	if !ok || obj == nil {
		return filepond.File{}, false
	}
	id := str(obj.Get("id"))
	if id == "" {
		return filepond.File{}, false
	}
	return filepond.File{
		ID:       id,
		ServerID: str(obj.Get("serverId")),
		Filename: str(obj.Get("filename")),
		Type:     str(obj.Get("fileType")),
		Size:     integer(obj.Get("fileSize")),
		Status:   filepond.FileStatus(integer(obj.Get("status"))),
		Origin:   filepond.FileOrigin(integer(obj.Get("origin"))),
	}, true
}

// filesOf reads an array of file items, skipping anything else.
func (r *Runtime) filesOf(v goja.Value) []filepond.File {
	if isNullish(v) {
		return nil
	}
	obj := v.ToObject(r.vm)
	n := int(integer(obj.Get("length")))
	files := make([]filepond.File, 0, n)
	for i := 0; i < n; i++ {
		if f, ok := fileOf(obj.Get(strconv.Itoa(i))); ok {
			files = append(files, f)
		}
	}
	return files
}

// export converts the outcome of an asynchronous widget operation: file items
// become filepond.File, arrays of them []filepond.File.
func (r *Runtime) export(v goja.Value) any {
	if isNullish(v) {
		return nil
	}
	if f, ok := fileOf(v); ok {
		return f
	}
	if obj, ok := v.(*goja.Object); ok && obj.ClassName() == "Array" {
		n := int(integer(obj.Get("length")))
		if files := r.filesOf(v); n > 0 && len(files) == n {
			return files
		}
	}
	return v.Export()
}

func str(v goja.Value) string {
	if isNullish(v) {
		return ""
	}
	return v.String()
}

func integer(v goja.Value) int64 {
	if isNullish(v) {
		return 0
	}
	return v.ToInteger()
}
