package checkers

import (
	"log/slog"
	"reflect"

	"equals-verifier/internal/common"
	"equals-verifier/internal/config"
	"equals-verifier/internal/diagnostic"
)

// Checker verifies one part of the contract.
type Checker interface {
	Name() string
	Check() error
}

// Checkers returns the checkers of a run in execution order.
func Checkers(cfg *config.Configuration) []Checker {
	return []Checker{
		NewSignatureChecker(cfg),
		NewExamplesChecker(cfg),
		NewFieldsChecker(cfg),
		NewSubtypeChecker(cfg),
	}
}

// Run verifies the type of cfg and returns the first *diagnostic.Failure.
func Run(cfg *config.Configuration) error {
	logger := cfg.Logger()
	typeName := common.SimpleName(cfg.Type())

	for _, c := range Checkers(cfg) {
		logger.Debug("running checker", slog.String("checker", c.Name()))

		if err := c.Check(); err != nil {
			f, ok := diagnostic.AsFailure(err)
			if !ok {
				f = diagnostic.Fail(diagnostic.CategoryPrecondition, "", diagnostic.Of("%%", err), err)
			}
			f = f.WithType(typeName)

			logger.Info("verification failed",
				slog.String("checker", c.Name()),
				slog.String("category", f.Category.Code()),
				slog.String("field", f.Field))
			return f
		}
	}

	logger.Debug("verification passed")
	return nil
}

// guard runs fn and converts a panic it did not expect into a failure.
func guard(field string, fn func() error) (err error) {
	fault := diagnostic.Capture(func() { err = fn() })
	if fault == nil {
		return err
	}

	f := diagnostic.Of("unexpected panic %%: %%", fault.TypeName(), fault)
	return diagnostic.Fail(diagnostic.CategoryOtherFault, field, f, fault)
}

// instances returns fresh pointers holding the red, black and red copy
// values of the type under test.
func instances(cfg *config.Configuration) (red, black, redCopy reflect.Value, err error) {
	tuple, err := cfg.Values().GiveTuple(cfg.TypeTag())
	if err != nil {
		f := diagnostic.Of("cannot build instances of %%: %%", cfg.TypeTag(), err)
		return red, black, redCopy, diagnostic.Fail(diagnostic.CategoryPrecondition, "", f, err)
	}

	point := func(v reflect.Value) reflect.Value {
		p := reflect.New(cfg.Type())
		p.Elem().Set(v)
		return p
	}

	return point(tuple.Red), point(tuple.Black), point(tuple.RedCopy), nil
}
