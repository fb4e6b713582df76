package filepond

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// fallbackAttributes are copied from the host, or from the options, onto the
// fallback input so that it keeps working without the widget.
var fallbackAttributes = []string{
	"id",
	"name",
	"class",
	"multiple",
	"required",
	"disabled",
	"capture",
	"accept",
}

// FallbackAttributes returns the names of the attributes eligible for copy onto
// the fallback input.
func FallbackAttributes() []string {
	return append([]string(nil), fallbackAttributes...)
}

// synthesizeAttributes copies each allow-listed attribute onto input. A value
// explicitly set on the host wins, even when empty; otherwise the option of the
// same name is used. Falsy values are skipped.
func synthesizeAttributes(host Host, input Input, opts Options) []string {
	var copied []string
	for _, name := range fallbackAttributes {
		var value any
		if v, ok := host.Attr(name); ok {
			value = v
		} else {
			value = opts[name]
		}
		if !truthy(value) {
			continue
		}
		input.SetAttribute(name, attributeString(value))
		copied = append(copied, name)
	}
	return copied
}

// truthy follows the usual scripting-language notion of truthiness: zero
// values, NaN and nil are false, everything else (empty lists included) is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Pointer, reflect.Interface, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// attributeString converts an option value the way a DOM attribute setter
// stringifies it.
func attributeString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case fmt.Stringer:
		return t.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			item := rv.Index(i).Interface()
			if item != nil {
				parts[i] = attributeString(item)
			}
		}
		return strings.Join(parts, ",")
	case reflect.Map, reflect.Struct:
		return "[object Object]"
	}
	return fmt.Sprint(v)
}
