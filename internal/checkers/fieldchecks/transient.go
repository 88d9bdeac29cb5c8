package fieldchecks

import (
	"equals-verifier/internal/accessor"
	"equals-verifier/internal/annotations"
	"equals-verifier/internal/config"
	"equals-verifier/internal/diagnostic"
	"equals-verifier/options"
)

// TransientFieldsCheck fails when a field marked transient, by tag or by
// annotation, changes the outcome of Equal. Fields that are not transient
// may or may not matter; that is not judged here.
type TransientFieldsCheck struct {
	probe
}

func NewTransientFieldsCheck(cfg *config.Configuration) *TransientFieldsCheck {
	return &TransientFieldsCheck{probe: probe{config: cfg}}
}

func (c *TransientFieldsCheck) Execute(reference, changed *accessor.FieldAccessor) error {
	if c.config.IsSuppressed(options.WarningTransientFields) {
		return nil
	}

	if err := c.flip(changed); err != nil {
		return err
	}

	equalsChanged := !c.equal(reference.Object(), changed.Object())
	fieldIsTransient := reference.FieldIsTransient() || c.config.AnnotationCache().HasAnnotation(
		c.config.Type(), reference.Field(), annotations.Transient)

	if equalsChanged && fieldIsTransient {
		f := diagnostic.Of(
			"transient field %% should not be included in the %%/%% contract.",
			reference.FieldName(), c.equalName(), c.hashName())
		return diagnostic.Fail(diagnostic.CategoryContractViolation, reference.FieldName(), f, nil)
	}

	return c.flip(reference)
}
