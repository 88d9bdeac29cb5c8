// Package verifier checks that the Equal and Hash methods of a struct type
// honour their contract.
//
//	func TestCustomer(t *testing.T) {
//		verifier.For[store.Customer]().
//			WithNonnullFields("Address").
//			AssertVerified(t)
//	}
package verifier

import (
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"equals-verifier/internal/analyze"
	"equals-verifier/internal/annotations"
	"equals-verifier/internal/checkers"
	"equals-verifier/internal/common"
	"equals-verifier/internal/config"
	"equals-verifier/internal/contract"
	"equals-verifier/internal/diagnostic"
	"equals-verifier/internal/prefab"
	"equals-verifier/internal/reflection"
	"equals-verifier/options"
)

// Verifier configures and runs the verification of T. The With methods
// record options; errors they meet surface from Verify.
type Verifier[T any] struct {
	tag  prefab.TypeTag
	opts []config.Option
	errs []error
}

// For starts the verification of T.
func For[T any]() *Verifier[T] {
	return &Verifier[T]{tag: prefab.TypeFor[T]()}
}

func (v *Verifier[T]) with(opt config.Option) *Verifier[T] {
	v.opts = append(v.opts, opt)
	return v
}

// WithNonnullFields declares fields that Equal and Hash may dereference
// without a nil check.
func (v *Verifier[T]) WithNonnullFields(names ...string) *Verifier[T] {
	return v.with(config.WithNonnullFields(names...))
}

// Suppress disables the checks guarded by warnings.
func (v *Verifier[T]) Suppress(warnings ...options.WarningEnum) *Verifier[T] {
	var all options.WarningEnum
	for _, w := range warnings {
		all |= w
	}

	return v.with(config.Suppress(all))
}

// WithPrefabValues supplies two unequal values for the type of red. Use it
// for types the verifier cannot build, such as recursive ones.
func (v *Verifier[T]) WithPrefabValues(red, black any) *Verifier[T] {
	return v.with(config.WithPrefabValues(reflect.TypeOf(red), red, black))
}

// WithPrefabFactory supplies values for t through f.
func (v *Verifier[T]) WithPrefabFactory(t reflect.Type, f prefab.Factory) *Verifier[T] {
	return v.with(config.WithPrefabFactory(t, f))
}

// WithPrefabBinding makes the verifier fill fields of interface type iface
// with values of impl.
func (v *Verifier[T]) WithPrefabBinding(iface, impl reflect.Type) *Verifier[T] {
	return v.with(config.WithPrefabBinding(iface, impl))
}

// WithCachedHash declares that field memoizes the hash and that calculate,
// a func(T) or func(*T) returning an integer, computes it.
func (v *Verifier[T]) WithCachedHash(field string, calculate any) *Verifier[T] {
	return v.with(config.WithCachedHash(field, calculate))
}

// WithStaticField registers the package-level variable ptr points to as
// state that Equal or Hash read.
func (v *Verifier[T]) WithStaticField(name string, ptr any) *Verifier[T] {
	return v.with(config.WithStaticField(name, ptr))
}

// WithSubtype registers a struct that embeds T as its first field.
func (v *Verifier[T]) WithSubtype(sub reflect.Type) *Verifier[T] {
	return v.with(config.WithSubtype(sub))
}

// WithAnnotationSource adds directives from src.
func (v *Verifier[T]) WithAnnotationSource(src annotations.Source) *Verifier[T] {
	return v.with(config.WithAnnotationSource(src))
}

// WithDirectives loads the packages matching patterns and reads their
// //verify: directives.
func (v *Verifier[T]) WithDirectives(patterns ...string) *Verifier[T] {
	index, err := analyze.NewAnalyzer("").LoadPackages(patterns...)
	if err != nil {
		v.errs = append(v.errs, err)
		return v
	}

	return v.with(config.WithAnnotationSource(index))
}

// WithSettingsFile applies the settings in path and in the environment,
// see config.LoadSettings. An empty path reads the environment only.
func (v *Verifier[T]) WithSettingsFile(path string) *Verifier[T] {
	s, err := config.LoadSettings(path)
	if err != nil {
		v.errs = append(v.errs, err)
		return v
	}

	return v.with(config.WithSettings(s))
}

// WithLogger sets the logger of the run.
func (v *Verifier[T]) WithLogger(logger *slog.Logger) *Verifier[T] {
	return v.with(config.WithLogger(logger))
}

// Verify runs all checks and returns the first failure, a
// *diagnostic.Failure, or nil.
func (v *Verifier[T]) Verify() error {
	if err := errors.Join(v.errs...); err != nil {
		return precondition(v.tag.Type(), err)
	}

	cfg, err := config.Build(v.tag, v.opts...)
	if err != nil {
		if errors.Is(err, contract.ErrNoEqualMethod) || errors.Is(err, contract.ErrNoHashMethod) {
			f := diagnostic.Fail(diagnostic.CategorySignature, "", diagnostic.Of("%%", err), err)
			return f.WithType(common.SimpleName(v.tag.Type()))
		}
		return precondition(v.tag.Type(), err)
	}

	return checkers.Run(cfg)
}

// Report runs Verify and summarizes the outcome.
func (v *Verifier[T]) Report() *diagnostic.Report {
	t := v.tag.Type()

	var fields []string
	for _, f := range reflection.FieldsOf(t) {
		fields = append(fields, f.Name)
	}

	return diagnostic.NewReport(common.SimpleName(t), fields, v.Verify())
}

// WriteReport runs Verify and writes the report to w as YAML.
func (v *Verifier[T]) WriteReport(w io.Writer) error {
	data, err := v.Report().Marshal()
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}

// AssertVerified fails t when Verify reports a failure.
func (v *Verifier[T]) AssertVerified(t testing.TB) {
	t.Helper()

	r := v.Report()
	if r.Verified {
		return
	}

	var sb strings.Builder
	if err := r.Write(&sb, false); err != nil {
		sb.WriteString(err.Error())
	}
	require.Fail(t, strings.TrimSpace(sb.String()))
}

func precondition(t reflect.Type, err error) error {
	f := diagnostic.Fail(diagnostic.CategoryPrecondition, "", diagnostic.Of("%%", err), err)
	return f.WithType(common.SimpleName(t))
}
