package fieldchecks

import (
	"reflect"

	"equals-verifier/internal/accessor"
	"equals-verifier/internal/annotations"
	"equals-verifier/internal/common"
	"equals-verifier/internal/config"
	"equals-verifier/internal/diagnostic"
	"equals-verifier/internal/reflection"
	"equals-verifier/options"
)

// NullPointerFieldCheck sets a field to nil and verifies that Equal and
// Hash cope with it. Fields that cannot hold nil, or that are declared
// non-nil by configuration or annotation, are skipped.
type NullPointerFieldCheck struct {
	probe
}

func NewNullPointerFieldCheck(cfg *config.Configuration) *NullPointerFieldCheck {
	return &NullPointerFieldCheck{probe: probe{config: cfg}}
}

func (c *NullPointerFieldCheck) Execute(reference, changed *accessor.FieldAccessor) (err error) {
	field := reference.Field()
	if c.config.IsSuppressed(options.WarningNullFields) || c.config.IsNonnull(field.Name) {
		return nil
	}
	if reference.FieldIsPrimitive() {
		return nil
	}
	if annotations.FieldIsNonnull(field, c.config.AnnotationCache()) {
		return nil
	}

	if reference.FieldIsStatic() {
		saved := reference.Get()
		defer func() {
			if restoreErr := reference.Set(saved); err == nil {
				err = restoreErr
			}
		}()

		reference.DefaultStaticField()
		return c.performTests(field, reference.Object(), changed.Object())
	}

	referenceCopy, err := copyOf(reference)
	if err != nil {
		return err
	}
	changedCopy, err := copyOf(changed)
	if err != nil {
		return err
	}

	changedCopy.WithDefaultedField(field)
	err = c.performTests(field, referenceCopy.Get(), changedCopy.Get())

	reference.DefaultField()
	return err
}

func (c *NullPointerFieldCheck) performTests(field reflection.Field, reference, changed reflect.Value) error {
	if err := c.handle(c.equalName(), field, func() { c.equal(reference, changed) }); err != nil {
		return err
	}

	if err := c.handle(c.equalName(), field, func() { c.equal(changed, reference) }); err != nil {
		return err
	}

	return c.handle(c.hashName(), field, func() { c.hash(changed) })
}

func (c *NullPointerFieldCheck) handle(method string, field reflection.Field, fn func()) error {
	fault := diagnostic.Capture(fn)
	if fault == nil {
		return nil
	}

	switch fault.Kind() {
	case diagnostic.FaultNilDereference:
		if delegates(field.Type) {
			return abstractDelegation(method, field, fault)
		}
		return nilDereference(method, field, fault)

	case diagnostic.FaultTypeAssertion:
		return typeMismatch(field, fault)

	default:
		return otherFault(method, field, fault)
	}
}

// delegates reports whether a call through a nil value of t reaches no code.
func delegates(t reflect.Type) bool {
	return t.Kind() == reflect.Interface || t.Kind() == reflect.Func
}

func nilDereference(method string, field reflection.Field, fault *diagnostic.Fault) error {
	f := diagnostic.Of(
		"%% panics with a nil dereference on field %%.",
		method, field.Name)
	return diagnostic.Fail(diagnostic.CategoryNullDereference, field.Name, f, fault)
}

func abstractDelegation(method string, field reflection.Field, fault *diagnostic.Fault) error {
	f := diagnostic.Of(
		"%% calls through field %% while it is nil.\n"+
			"Suppress %% to disable this check.",
		method, field.Name, options.WarningNullFields)
	return diagnostic.Fail(diagnostic.CategoryAbstractDelegation, field.Name, f, fault)
}

func typeMismatch(field reflection.Field, fault *diagnostic.Fault) error {
	f := diagnostic.Of(
		"a type assertion failed. Consider using WithPrefabFactory for %%.",
		common.SimpleName(field.Type))
	return diagnostic.Fail(diagnostic.CategoryTypeMismatch, field.Name, f, fault)
}

func otherFault(method string, field reflection.Field, fault *diagnostic.Fault) error {
	f := diagnostic.Of(
		"%% panics with %% when field %% is nil.",
		method, fault.TypeName(), field.Name)
	return diagnostic.Fail(diagnostic.CategoryOtherFault, field.Name, f, fault)
}
