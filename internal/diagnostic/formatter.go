package diagnostic

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

const placeholder = "%%"

var valuePrinter = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
	MaxDepth:                4,
}

// Formatter renders a message whose %% placeholders are replaced by
// string forms of its objects. Rendering never panics: a String method
// that panics is reported inline instead.
type Formatter struct {
	message string
	objects []any
}

// Of creates a Formatter. The number of objects must match the number of
// %% placeholders in message.
func Of(message string, objects ...any) Formatter {
	return Formatter{message: message, objects: objects}
}

// Format returns the rendered message.
func (f Formatter) Format() string {
	parts := strings.Split(f.message, placeholder)
	if len(parts)-1 != len(f.objects) {
		panic(fmt.Sprintf("formatter: %d placeholders but %d objects in %q",
			len(parts)-1, len(f.objects), f.message))
	}

	var sb strings.Builder
	for i, part := range parts {
		sb.WriteString(part)
		if i < len(f.objects) {
			sb.WriteString(stringify(f.objects[i]))
		}
	}

	return sb.String()
}

func stringify(obj any) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("[%T]-throws %v", obj, r)
		}
	}()

	if v, ok := obj.(reflect.Value); ok {
		if !v.IsValid() {
			return "nil"
		}
		if !v.CanInterface() {
			return "[" + v.Type().String() + "]"
		}
		obj = v.Interface()
	}

	switch o := obj.(type) {
	case nil:
		return "nil"
	case string:
		return o
	case reflect.Type:
		return o.String()
	case error:
		return o.Error()
	case fmt.Stringer:
		return o.String()
	}

	return valuePrinter.Sprint(obj)
}
