package accessor

import (
	"fmt"
	"reflect"

	"equals-verifier/internal/prefab"
	"equals-verifier/internal/reflection"
	"equals-verifier/primitive"
)

// FieldAccessor gives access to one field of one object.
type FieldAccessor struct {
	object reflect.Value // *T, may be invalid for static fields
	field  reflection.Field
}

// NewFieldAccessor returns an accessor for field of object, a pointer to the
// struct that has the field.
func NewFieldAccessor(object reflect.Value, field reflection.Field) *FieldAccessor {
	return &FieldAccessor{object: object, field: field}
}

// Object returns the pointer the accessor works on.
func (a *FieldAccessor) Object() reflect.Value {
	return a.object
}

// Field returns the field descriptor.
func (a *FieldAccessor) Field() reflection.Field {
	return a.field
}

func (a *FieldAccessor) FieldName() string {
	return a.field.Name
}

func (a *FieldAccessor) FieldType() reflect.Type {
	return a.field.Type
}

func (a *FieldAccessor) FieldIsStatic() bool {
	return a.field.IsStatic()
}

func (a *FieldAccessor) FieldIsTransient() bool {
	return a.field.IsTransient()
}

// FieldIsPrimitive reports whether the field cannot hold nil.
func (a *FieldAccessor) FieldIsPrimitive() bool {
	return primitive.IsPrimitive(a.field.Type)
}

// Get returns a detached copy of the current value.
func (a *FieldAccessor) Get() reflect.Value {
	out := reflect.New(a.field.Type).Elem()
	out.Set(a.slot())
	return out
}

// Set overwrites the field. An invalid value sets the zero value.
func (a *FieldAccessor) Set(value reflect.Value) error {
	if !value.IsValid() {
		a.slot().SetZero()
		return nil
	}

	if !value.Type().AssignableTo(a.field.Type) {
		return fmt.Errorf("cannot assign %s to field %s of type %s", value.Type(), a.field, a.field.Type)
	}

	a.slot().Set(value)
	return nil
}

// DefaultField sets an instance field to its zero value. Static fields are
// left alone; see DefaultStaticField.
func (a *FieldAccessor) DefaultField() {
	if a.field.IsStatic() {
		return
	}

	a.slot().SetZero()
}

// DefaultStaticField sets a static field to its zero value. The caller saves
// and restores the previous value.
func (a *FieldAccessor) DefaultStaticField() {
	if !a.field.IsStatic() {
		return
	}

	a.slot().SetZero()
}

// CopyTo copies the field into the same field of dst. dst points to the
// same struct type, to an anonymous variant of it or to a subtype that
// embeds it first. Static fields are shared and are not copied.
func (a *FieldAccessor) CopyTo(dst reflect.Value) error {
	if a.field.IsStatic() {
		return nil
	}

	base, err := BaseOf(dst, a.rootType())
	if err != nil {
		return err
	}

	a.field.Value(base).Set(a.slot())
	return nil
}

// ChangeField replaces the current value with the other member of the
// field's prefab tuple, resolving interface types against enclosing.
// The new value never equals the previous one.
func (a *FieldAccessor) ChangeField(values *prefab.Values, enclosing prefab.TypeTag) error {
	tag := prefab.FieldTag(a.field.Type, enclosing)

	other, err := values.GiveOther(tag, a.slot())
	if err != nil {
		return fmt.Errorf("field %s: %w", a.field, err)
	}

	a.slot().Set(other)
	return nil
}

func (a *FieldAccessor) slot() reflect.Value {
	return a.field.Value(a.object)
}

func (a *FieldAccessor) rootType() reflect.Type {
	if a.object.IsValid() {
		return a.object.Type().Elem()
	}

	return a.field.Declaring
}

// BaseOf returns the addressable struct of type base held by ptr: the
// pointee itself, or the first field of an anonymous variant or subtype.
func BaseOf(ptr reflect.Value, base reflect.Type) (reflect.Value, error) {
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return reflect.Value{}, fmt.Errorf("copy target must be a non-nil pointer, got %s", ptr.Kind())
	}

	target := ptr.Elem()
	for target.Type() != base {
		if target.Kind() != reflect.Struct || target.NumField() == 0 {
			return reflect.Value{}, fmt.Errorf("%s does not hold %s", ptr.Type(), base)
		}
		target = target.Field(0)
	}

	return target, nil
}
