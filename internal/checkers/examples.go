package checkers

import (
	"equals-verifier/internal/config"
	"equals-verifier/internal/diagnostic"
	"equals-verifier/internal/prefab"
	"equals-verifier/options"
)

// ExamplesChecker probes whole objects before any field is touched.
type ExamplesChecker struct {
	config *config.Configuration
}

func NewExamplesChecker(cfg *config.Configuration) *ExamplesChecker {
	return &ExamplesChecker{config: cfg}
}

func (c *ExamplesChecker) Name() string { return "examples" }

func (c *ExamplesChecker) Check() error {
	red, black, redCopy, err := instances(c.config)
	if err != nil {
		return err
	}

	return guard("", func() error {
		ct := c.config.Contract()
		hash := c.config.HashInitializer()

		if !ct.Equal(red, red) {
			return fail(diagnostic.CategoryReflexivity, "object does not equal itself: %%", red)
		}

		if !c.config.IsSuppressed(options.WarningIdentityEquals) && !ct.Equal(red, redCopy) {
			return fail(diagnostic.CategoryReflexivity,
				"object does not equal an identical copy of itself: %%\nIf this is intentional, suppress %%.",
				red, options.WarningIdentityEquals)
		}

		if ct.Equal(red, redCopy) {
			if h1, h2 := hash.InitializedHashCode(red), hash.InitializedHashCode(redCopy); h1 != h2 {
				return fail(diagnostic.CategoryHashConsistency,
					"equal objects have different hashes %% and %%: %%", h1, h2, red)
			}
		}

		if !prefab.SameValue(red, black) && ct.Equal(red, black) &&
			!c.config.IsSuppressed(options.WarningAllFieldsShouldBeUsed) {
			return fail(diagnostic.CategorySignificance,
				"%% is true for objects that differ in every field: %% and %%", ct.EqualName(), red, black)
		}

		if ct.AcceptsNil() && !c.config.IsSuppressed(options.WarningNullFields) {
			return c.checkNilArgument()
		}

		return nil
	})
}

func (c *ExamplesChecker) checkNilArgument() error {
	red, _, _, err := instances(c.config)
	if err != nil {
		return err
	}

	ct := c.config.Contract()

	var equal bool
	if fault := diagnostic.Capture(func() { equal = ct.EqualNil(red) }); fault != nil {
		f := diagnostic.Of("%% panics when passed nil.", ct.EqualName())
		return diagnostic.Fail(diagnostic.CategoryNullDereference, "", f, fault)
	}

	if equal {
		return fail(diagnostic.CategoryNullDereference, "%% returns true for nil.", ct.EqualName())
	}

	return nil
}

func fail(category diagnostic.Category, message string, objects ...any) error {
	return diagnostic.Fail(category, "", diagnostic.Of(message, objects...), nil)
}
