package fieldchecks

import (
	"equals-verifier/internal/accessor"
	"equals-verifier/internal/annotations"
	"equals-verifier/internal/config"
	"equals-verifier/internal/diagnostic"
	"equals-verifier/options"
)

// SignificantFieldCheck changes one field and verifies that Equal and Hash
// agree on whether it matters.
type SignificantFieldCheck struct {
	probe
}

func NewSignificantFieldCheck(cfg *config.Configuration) *SignificantFieldCheck {
	return &SignificantFieldCheck{probe: probe{config: cfg}}
}

func (c *SignificantFieldCheck) Execute(reference, changed *accessor.FieldAccessor) error {
	field := reference.Field()
	if field.Name == c.config.CachedHashField() || c.stateless(field) {
		return nil
	}

	if err := c.flip(changed); err != nil {
		return err
	}

	ref, chg := reference.Object(), changed.Object()
	equalsChanged := !c.equal(ref, chg)
	hashChanged := c.hash(ref) != c.hash(chg)

	if hashChanged && !equalsChanged {
		return c.fail(field.Name, diagnostic.Of(
			"%% relies on %%, but %% does not.\nObjects are equal but have different hashes: %% and %%",
			c.hashName(), field.Name, c.equalName(), ref, chg))
	}

	if equalsChanged && !hashChanged && !c.config.IsSuppressed(options.WarningStrictHashcode) {
		return c.fail(field.Name, diagnostic.Of(
			"%% relies on %%, but %% does not.\nSuppress %% to allow this.",
			c.equalName(), field.Name, c.hashName(), options.WarningStrictHashcode))
	}

	transient := reference.FieldIsTransient() || c.config.AnnotationCache().HasAnnotation(
		c.config.Type(), field, annotations.Transient)
	if !equalsChanged && !transient && !c.config.IsSuppressed(options.WarningAllFieldsShouldBeUsed) {
		return c.fail(field.Name, diagnostic.Of(
			"%% does not use %%, or it is stateless.\nSuppress %% to allow this.",
			c.equalName(), field.Name, options.WarningAllFieldsShouldBeUsed))
	}

	return c.flip(reference)
}

func (c *SignificantFieldCheck) fail(field string, f diagnostic.Formatter) error {
	return diagnostic.Fail(diagnostic.CategorySignificance, field, f, nil)
}
