package fieldchecks

import (
	"equals-verifier/internal/accessor"
	"equals-verifier/internal/annotations"
	"equals-verifier/internal/config"
	"equals-verifier/internal/diagnostic"
	"equals-verifier/internal/prefab"
	"equals-verifier/options"
)

// ReflexivityFieldCheck flips the field on both objects and verifies that
// the reference equals itself, an independent copy of itself, and a copy
// in which the field is nil on both sides.
type ReflexivityFieldCheck struct {
	probe
}

func NewReflexivityFieldCheck(cfg *config.Configuration) *ReflexivityFieldCheck {
	return &ReflexivityFieldCheck{probe: probe{config: cfg}}
}

func (c *ReflexivityFieldCheck) Execute(reference, changed *accessor.FieldAccessor) error {
	if err := c.flip(changed); err != nil {
		return err
	}
	if err := c.flip(reference); err != nil {
		return err
	}

	obj := reference.Object()
	if !c.equal(obj, obj) {
		return c.fail(reference, diagnostic.Of(
			"object does not equal itself after changing field %%: %%",
			reference.FieldName(), obj))
	}

	if !c.config.IsSuppressed(options.WarningIdentityEquals) {
		if err := c.checkValueReflexivity(reference); err != nil {
			return err
		}
	}

	if !c.config.IsSuppressed(options.WarningNullFields) {
		return c.checkNilReflexivity(reference)
	}

	return nil
}

// checkValueReflexivity compares two objects whose field holds equal but
// separately built values.
func (c *ReflexivityFieldCheck) checkValueReflexivity(reference *accessor.FieldAccessor) error {
	field := reference.Field()
	tuple, err := c.config.Values().GiveTuple(prefab.FieldTag(field.Type, c.config.TypeTag()))
	if err != nil {
		return precondition(field, err)
	}

	left, err := copyOf(reference)
	if err != nil {
		return err
	}
	right, err := copyOf(reference)
	if err != nil {
		return err
	}

	if err := left.FieldAccessorFor(field).Set(tuple.Red); err != nil {
		return precondition(field, err)
	}
	if err := right.FieldAccessorFor(field).Set(tuple.RedCopy); err != nil {
		return precondition(field, err)
	}

	if !c.equal(left.Get(), right.Get()) {
		return c.fail(reference, diagnostic.Of(
			"object does not equal an identical copy of itself: %%\n"+
				"If this is intentional, suppress %%.",
			left.Get(), options.WarningIdentityEquals))
	}

	return nil
}

// checkNilReflexivity compares two copies whose field is nil.
func (c *ReflexivityFieldCheck) checkNilReflexivity(reference *accessor.FieldAccessor) error {
	field := reference.Field()
	if reference.FieldIsPrimitive() || c.config.IsNonnull(field.Name) ||
		annotations.FieldIsNonnull(field, c.config.AnnotationCache()) {
		return nil
	}

	left, err := copyOf(reference)
	if err != nil {
		return err
	}
	right, err := copyOf(reference)
	if err != nil {
		return err
	}

	left.WithDefaultedField(field)
	right.WithDefaultedField(field)

	if !c.equal(left.Get(), right.Get()) {
		return c.fail(reference, diagnostic.Of(
			"object does not equal an identical copy of itself when field %% is nil.",
			field.Name))
	}

	return nil
}

func (c *ReflexivityFieldCheck) fail(reference *accessor.FieldAccessor, f diagnostic.Formatter) error {
	return diagnostic.Fail(diagnostic.CategoryReflexivity, reference.FieldName(), f, nil)
}
