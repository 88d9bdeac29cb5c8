package accessor

import (
	"errors"
	"fmt"
	"reflect"

	"equals-verifier/internal/prefab"
	"equals-verifier/internal/reflection"
)

var ErrNotStructPointer = errors.New("object accessor needs a non-nil pointer to a struct")

// ObjectAccessor owns one instance of a struct type. Copies are built by
// raw allocation and field-by-field assignment.
type ObjectAccessor struct {
	object reflect.Value // *T
	typ    reflect.Type  // T
	inst   *reflection.Instantiator
}

// Of returns an accessor for obj, a non-nil pointer to a struct.
func Of(obj any) (*ObjectAccessor, error) {
	return OfValue(reflect.ValueOf(obj))
}

// OfValue is Of for a reflect.Value.
func OfValue(ptr reflect.Value) (*ObjectAccessor, error) {
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() || ptr.Elem().Kind() != reflect.Struct {
		return nil, ErrNotStructPointer
	}

	inst, err := reflection.InstantiatorOf(ptr.Type().Elem())
	if err != nil {
		return nil, err
	}

	return &ObjectAccessor{object: ptr, typ: inst.Type(), inst: inst}, nil
}

// New allocates a zero instance of t and returns an accessor for it.
func New(t reflect.Type) (*ObjectAccessor, error) {
	inst, err := reflection.InstantiatorOf(t)
	if err != nil {
		return nil, err
	}

	return &ObjectAccessor{object: inst.Instantiate(), typ: t, inst: inst}, nil
}

// Get returns the owned pointer.
func (o *ObjectAccessor) Get() reflect.Value {
	return o.object
}

// Type returns the struct type of the owned instance.
func (o *ObjectAccessor) Type() reflect.Type {
	return o.typ
}

// Copy returns a pointer to an independent duplicate of the instance.
func (o *ObjectAccessor) Copy() reflect.Value {
	return o.copyInto(o.inst.Instantiate())
}

// CopyIntoSubclass returns a pointer to a new instance of sub carrying the
// state of the owned instance in its embedded base. sub must embed the
// owned type as its first field.
func (o *ObjectAccessor) CopyIntoSubclass(sub reflect.Type) (reflect.Value, error) {
	dst, err := reflection.InstantiateSubtype(sub, o.typ)
	if err != nil {
		return reflect.Value{}, err
	}

	return o.copyInto(dst), nil
}

// CopyIntoAnonymousSubclass returns a pointer to a new anonymous variant,
// see reflection.AnonymousVariant, carrying the state of the instance.
func (o *ObjectAccessor) CopyIntoAnonymousSubclass() reflect.Value {
	return o.copyInto(o.inst.InstantiateAnonymousVariant())
}

func (o *ObjectAccessor) copyInto(dst reflect.Value) reflect.Value {
	for _, field := range reflection.FieldsOf(o.typ) {
		if err := o.FieldAccessorFor(field).CopyTo(dst); err != nil {
			// dst comes from the instantiator and always holds o.typ
			panic(err)
		}
	}

	return dst
}

// Scramble flips every instance field, promoted ones included, to the other
// member of its prefab tuple.
func (o *ObjectAccessor) Scramble(values *prefab.Values, enclosing prefab.TypeTag) error {
	return o.scramble(reflection.FieldsOf(o.typ), values, enclosing)
}

// ShallowScramble is Scramble restricted to the fields the type declares
// itself.
func (o *ObjectAccessor) ShallowScramble(values *prefab.Values, enclosing prefab.TypeTag) error {
	return o.scramble(reflection.FieldsOfIgnoringEmbedded(o.typ), values, enclosing)
}

func (o *ObjectAccessor) scramble(fields []reflection.Field, values *prefab.Values, enclosing prefab.TypeTag) error {
	for _, field := range fields {
		if _, err := o.WithChangedField(field, values, enclosing); err != nil {
			return fmt.Errorf("scramble %s: %w", o.typ, err)
		}
	}

	return nil
}

// FieldAccessorFor returns an accessor for field of the owned instance.
func (o *ObjectAccessor) FieldAccessorFor(field reflection.Field) *FieldAccessor {
	return NewFieldAccessor(o.object, field)
}

// WithDefaultedField sets field to its zero value in place and returns o.
func (o *ObjectAccessor) WithDefaultedField(field reflection.Field) *ObjectAccessor {
	o.FieldAccessorFor(field).DefaultField()
	return o
}

// WithChangedField flips field in place and returns o.
func (o *ObjectAccessor) WithChangedField(field reflection.Field, values *prefab.Values, enclosing prefab.TypeTag) (*ObjectAccessor, error) {
	if err := o.FieldAccessorFor(field).ChangeField(values, enclosing); err != nil {
		return nil, err
	}

	return o, nil
}
