package fieldchecks

import (
	"equals-verifier/internal/accessor"
	"equals-verifier/internal/config"
	"equals-verifier/internal/diagnostic"
)

// HashConsistencyFieldCheck changes the field on both objects and verifies
// that equal objects still hash alike.
type HashConsistencyFieldCheck struct {
	probe
}

func NewHashConsistencyFieldCheck(cfg *config.Configuration) *HashConsistencyFieldCheck {
	return &HashConsistencyFieldCheck{probe: probe{config: cfg}}
}

func (c *HashConsistencyFieldCheck) Execute(reference, changed *accessor.FieldAccessor) error {
	if err := c.flip(reference); err != nil {
		return err
	}
	if err := c.flip(changed); err != nil {
		return err
	}

	ref, chg := reference.Object(), changed.Object()
	if !c.equal(ref, chg) {
		return nil
	}

	if h1, h2 := c.hash(ref), c.hash(chg); h1 != h2 {
		f := diagnostic.Of(
			"%% is inconsistent after changing field %%: equal objects hash to %% and %%.",
			c.hashName(), reference.FieldName(), h1, h2)
		return diagnostic.Fail(diagnostic.CategoryHashConsistency, reference.FieldName(), f, nil)
	}

	return nil
}
