package checkers

import (
	"log/slog"

	"equals-verifier/internal/accessor"
	"equals-verifier/internal/checkers/fieldchecks"
	"equals-verifier/internal/common"
	"equals-verifier/internal/config"
	"equals-verifier/internal/reflection"
)

// FieldsChecker runs every field check against every field. Each check
// owns the outer loop, so all fields pass the nil probe before any of them
// is probed for transience. Package-level variables only get the nil probe.
type FieldsChecker struct {
	config *config.Configuration
	checks []fieldchecks.FieldCheck
	static fieldchecks.FieldCheck
	logger *slog.Logger
}

func NewFieldsChecker(cfg *config.Configuration) *FieldsChecker {
	nullPointer := fieldchecks.NewNullPointerFieldCheck(cfg)

	return &FieldsChecker{
		config: cfg,
		checks: []fieldchecks.FieldCheck{
			nullPointer,
			fieldchecks.NewTransientFieldsCheck(cfg),
			fieldchecks.NewReflexivityFieldCheck(cfg),
			fieldchecks.NewSignificantFieldCheck(cfg),
			fieldchecks.NewHashConsistencyFieldCheck(cfg),
		},
		static: nullPointer,
		logger: cfg.Logger().With(slog.String("checker", "fields")),
	}
}

func (c *FieldsChecker) Name() string { return "fields" }

func (c *FieldsChecker) Check() error {
	fields := reflection.FieldsOf(c.config.Type())
	if common.IsEmpty(fields) {
		c.logger.Debug("type has no fields")
	}

	for _, check := range c.checks {
		for _, field := range fields {
			if err := c.execute(check, field); err != nil {
				return err
			}
		}
	}

	for _, field := range c.config.StaticFields() {
		if err := c.execute(c.static, field); err != nil {
			return err
		}
	}

	return nil
}

// execute runs check on a fresh pair of equal red instances.
func (c *FieldsChecker) execute(check fieldchecks.FieldCheck, field reflection.Field) error {
	reference, changed, _, err := instances(c.config)
	if err != nil {
		return err
	}

	c.logger.Debug("checking field",
		slog.String("field", field.Name),
		slog.String("check", checkName(check)))

	return guard(field.Name, func() error {
		return check.Execute(
			accessor.NewFieldAccessor(reference, field),
			accessor.NewFieldAccessor(changed, field),
		)
	})
}

func checkName(check fieldchecks.FieldCheck) string {
	switch check.(type) {
	case *fieldchecks.NullPointerFieldCheck:
		return "null_pointer"
	case *fieldchecks.TransientFieldsCheck:
		return "transient"
	case *fieldchecks.ReflexivityFieldCheck:
		return "reflexivity"
	case *fieldchecks.SignificantFieldCheck:
		return "significant"
	case *fieldchecks.HashConsistencyFieldCheck:
		return "hash_consistency"
	default:
		return common.UnknownStr
	}
}
