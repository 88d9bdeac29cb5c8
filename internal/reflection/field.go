package reflection

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unsafe"
)

// MarkerTag is the struct tag key holding field markers, e.g. `verify:"transient"`.
const MarkerTag = "verify"

// MarkerTransient excludes a field from the equality contract.
const MarkerTransient = "transient"

var ErrNotAPointer = errors.New("static field must be registered by a non-nil pointer")

// Field describes a single field of a struct type or a package-level variable.
type Field struct {
	Name      string            // Go field name
	Type      reflect.Type      // Declared type
	Declaring reflect.Type      // Struct type that declares the field
	Tag       reflect.StructTag // Raw struct tag
	Index     []int             // Index path from the root struct

	static reflect.Value // addressable package-level variable, invalid for struct fields
}

// NewStaticField describes the package-level variable ptr points to.
// declaring is the type the variable belongs to logically.
func NewStaticField(declaring reflect.Type, name string, ptr any) (Field, error) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return Field{}, fmt.Errorf("%w: %s", ErrNotAPointer, name)
	}

	return Field{
		Name:      name,
		Type:      v.Type().Elem(),
		Declaring: declaring,
		static:    v.Elem(),
	}, nil
}

// IsStatic reports whether the field is a package-level variable.
func (f Field) IsStatic() bool {
	return f.static.IsValid()
}

// IsEmbedded reports whether the field was promoted from an embedded struct.
func (f Field) IsEmbedded() bool {
	return len(f.Index) > 1
}

// IsTransient reports whether the field carries the transient marker.
func (f Field) IsTransient() bool {
	return f.HasMarker(MarkerTransient)
}

// HasMarker reports whether the verify tag lists marker.
func (f Field) HasMarker(marker string) bool {
	return slices.Contains(Markers(f.Tag), marker)
}

// Markers splits the verify tag of tag into its comma separated entries.
func Markers(tag reflect.StructTag) []string {
	raw, ok := tag.Lookup(MarkerTag)
	if !ok || raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}

// String returns "Declaring.Name".
func (f Field) String() string {
	if f.Declaring == nil {
		return f.Name
	}

	return f.Declaring.Name() + "." + f.Name
}

// Value returns the field of obj as a readable and settable value.
// obj is a pointer to the struct or an addressable struct value;
// it is ignored for static fields.
func (f Field) Value(obj reflect.Value) reflect.Value {
	if f.IsStatic() {
		return f.static
	}

	for obj.Kind() == reflect.Pointer {
		obj = obj.Elem()
	}

	return Settable(obj.FieldByIndex(f.Index))
}

// Settable returns v in a form that can be read and written regardless of
// export status. v must be addressable.
func Settable(v reflect.Value) reflect.Value {
	if v.CanSet() {
		return v
	}

	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}
