package fieldchecks

import (
	"reflect"

	"equals-verifier/internal/accessor"
	"equals-verifier/internal/config"
	"equals-verifier/internal/diagnostic"
	"equals-verifier/internal/prefab"
	"equals-verifier/internal/reflection"
)

// FieldCheck verifies one aspect of the contract for a single field.
// reference and changed point at the same field of two equal objects.
// A violation is returned as a *diagnostic.Failure.
type FieldCheck interface {
	Execute(reference, changed *accessor.FieldAccessor) error
}

// probe gives checks the methods under test of a configuration.
type probe struct {
	config *config.Configuration
}

func (p probe) equal(a, b reflect.Value) bool {
	return p.config.Contract().Equal(a, b)
}

func (p probe) hash(obj reflect.Value) int64 {
	return p.config.HashInitializer().InitializedHashCode(obj)
}

func (p probe) equalName() string {
	return p.config.Contract().EqualName()
}

func (p probe) hashName() string {
	return p.config.Contract().HashName()
}

// flip changes the field to the other member of its prefab tuple.
func (p probe) flip(fa *accessor.FieldAccessor) error {
	if err := fa.ChangeField(p.config.Values(), p.config.TypeTag()); err != nil {
		return precondition(fa.Field(), err)
	}

	return nil
}

// stateless reports whether field can hold only one value, e.g. a mutex.
func (p probe) stateless(field reflection.Field) bool {
	tuple, err := p.config.Values().GiveTuple(prefab.FieldTag(field.Type, p.config.TypeTag()))
	return err == nil && tuple.Stateless()
}

// copyOf returns an independent duplicate of the object behind fa.
func copyOf(fa *accessor.FieldAccessor) (*accessor.ObjectAccessor, error) {
	oa, err := accessor.OfValue(fa.Object())
	if err != nil {
		return nil, err
	}

	return accessor.OfValue(oa.Copy())
}

func precondition(field reflection.Field, err error) error {
	return diagnostic.Fail(
		diagnostic.CategoryPrecondition,
		field.Name,
		diagnostic.Of("cannot build values for field %%: %%", field.Name, err),
		err,
	)
}
