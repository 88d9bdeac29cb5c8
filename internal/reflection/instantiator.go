package reflection

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNotStruct  = errors.New("type is not a struct")
	ErrNotSubtype = errors.New("type does not embed the base type as its first field")
)

// VariantFieldName is the name of the single field of an anonymous variant.
const VariantFieldName = "Base"

// Instantiator allocates zeroed instances of a struct type. No constructor
// function of the type is ever called.
type Instantiator struct {
	typ reflect.Type
}

// InstantiatorOf returns an Instantiator for struct type t.
func InstantiatorOf(t reflect.Type) (*Instantiator, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", ErrNotStruct, t)
	}

	return &Instantiator{typ: t}, nil
}

// Type returns the instantiated type.
func (i *Instantiator) Type() reflect.Type {
	return i.typ
}

// Instantiate returns a pointer to a new zero value.
func (i *Instantiator) Instantiate() reflect.Value {
	return reflect.New(i.typ)
}

// InstantiateAnonymousVariant returns a pointer to a new zero value of the
// anonymous variant of the type, see AnonymousVariant.
func (i *Instantiator) InstantiateAnonymousVariant() reflect.Value {
	return reflect.New(AnonymousVariant(i.typ))
}

// AnonymousVariant returns struct{ Base t }: a type holding exactly the
// state of t under a different runtime type.
func AnonymousVariant(t reflect.Type) reflect.Type {
	return reflect.StructOf([]reflect.StructField{
		{Name: VariantFieldName, Type: t},
	})
}

// InstantiateSubtype returns a pointer to a new zero value of sub, which must
// be a struct whose first field embeds base by value.
func InstantiateSubtype(sub, base reflect.Type) (reflect.Value, error) {
	if err := CheckSubtype(sub, base); err != nil {
		return reflect.Value{}, err
	}

	return reflect.New(sub), nil
}

// CheckSubtype validates that sub embeds base as its first field.
func CheckSubtype(sub, base reflect.Type) error {
	if sub == nil || sub.Kind() != reflect.Struct || sub.NumField() == 0 {
		return fmt.Errorf("%w: %v", ErrNotSubtype, sub)
	}

	first := sub.Field(0)
	if !first.Anonymous || first.Type != base {
		return fmt.Errorf("%w: %v does not embed %v", ErrNotSubtype, sub, base)
	}

	return nil
}
