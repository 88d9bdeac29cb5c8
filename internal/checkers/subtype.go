package checkers

import (
	"reflect"

	"equals-verifier/internal/accessor"
	"equals-verifier/internal/common"
	"equals-verifier/internal/config"
	"equals-verifier/internal/contract"
	"equals-verifier/internal/diagnostic"
	"equals-verifier/options"
)

// SubtypeChecker compares the type with types that carry the same state
// under a different runtime type: the anonymous variant struct{ Base T }
// and the registered subtype, if any.
type SubtypeChecker struct {
	config *config.Configuration
}

func NewSubtypeChecker(cfg *config.Configuration) *SubtypeChecker {
	return &SubtypeChecker{config: cfg}
}

func (c *SubtypeChecker) Name() string { return "subtype" }

func (c *SubtypeChecker) Check() error {
	if c.config.IsSuppressed(options.WarningStrictInheritance) {
		return nil
	}

	red, _, _, err := instances(c.config)
	if err != nil {
		return err
	}

	reference, err := accessor.OfValue(red)
	if err != nil {
		return err
	}

	if err := c.checkVariant(reference); err != nil {
		return err
	}

	if sub := c.config.Subtype(); sub != nil {
		return c.checkSubtype(reference, sub)
	}

	return nil
}

func (c *SubtypeChecker) checkVariant(reference *accessor.ObjectAccessor) error {
	ct := c.config.Contract()
	variant := reference.CopyIntoAnonymousSubclass()

	var equal bool
	if fault := diagnostic.Capture(func() { equal = ct.Equal(reference.Get(), variant) }); fault != nil {
		f := diagnostic.Of(
			"%% panics when passed a value of another type with the same state: %%",
			ct.EqualName(), fault)
		return diagnostic.Fail(diagnostic.CategorySymmetry, "", f, fault)
	}

	if equal {
		f := diagnostic.Of(
			"%% is true for %%, which is not a %%.\nSuppress %% if this is intentional.",
			ct.EqualName(), variant.Type().Elem(), common.SimpleName(ct.Type()), options.WarningStrictInheritance)
		return diagnostic.Fail(diagnostic.CategorySymmetry, "", f, nil)
	}

	return nil
}

func (c *SubtypeChecker) checkSubtype(reference *accessor.ObjectAccessor, sub reflect.Type) error {
	subValue, err := reference.CopyIntoSubclass(sub)
	if err != nil {
		return err
	}

	subContract, err := contract.Resolve(sub)
	if err != nil {
		f := diagnostic.Of("subtype %% has no usable methods: %%", sub, err)
		return diagnostic.Fail(diagnostic.CategorySignature, "", f, err)
	}

	ct := c.config.Contract()

	return guard("", func() error {
		forward := subContract.Equal(subValue, reference.Get())

		// A typed parameter cannot receive the subtype at all; only the
		// promoted method on the subtype side is observable.
		if ct.Param().Kind() != reflect.Interface {
			if !forward {
				return fail(diagnostic.CategorySymmetry,
					"%% does not equal the %% it embeds: %%", sub, common.SimpleName(ct.Type()), subValue)
			}
			return nil
		}

		backward := ct.Equal(reference.Get(), subValue)
		if forward != backward {
			return fail(diagnostic.CategorySymmetry,
				"%% is not symmetric with subtype %%: %% but %%.\nSuppress %% if subtypes never meet %%.",
				ct.EqualName(), sub,
				verdict("subtype", forward, "base"), verdict("base", backward, "subtype"),
				options.WarningStrictInheritance, common.SimpleName(ct.Type()))
		}

		return nil
	})
}

func verdict(left string, equal bool, right string) string {
	if equal {
		return left + " equals " + right
	}

	return left + " does not equal " + right
}
