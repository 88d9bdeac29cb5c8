// Package config holds the immutable configuration of one verification run
// and the settings file that can feed it.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"
	"sort"

	"equals-verifier/internal/annotations"
	"equals-verifier/internal/contract"
	"equals-verifier/internal/prefab"
	"equals-verifier/internal/reflection"
	"equals-verifier/options"
)

var ErrUnknownField = errors.New("type does not contain field")

// Configuration is shared read-only by all checks of a run.
type Configuration struct {
	typeTag    prefab.TypeTag
	contract   *contract.Contract
	values     *prefab.Values
	cache      *annotations.Cache
	nonnull    []string
	suppressed options.WarningEnum
	hash       contract.HashInitializer
	cachedHash string
	statics    []reflection.Field
	subtype    reflect.Type
	logger     *slog.Logger
}

// TypeTag returns the tag of the type under test.
func (c *Configuration) TypeTag() prefab.TypeTag {
	return c.typeTag
}

// Type returns the struct type under test.
func (c *Configuration) Type() reflect.Type {
	return c.typeTag.Type()
}

func (c *Configuration) Contract() *contract.Contract {
	return c.contract
}

func (c *Configuration) Values() *prefab.Values {
	return c.values
}

func (c *Configuration) AnnotationCache() *annotations.Cache {
	return c.cache
}

// NonnullFields returns the field names declared non-nil, sorted.
func (c *Configuration) NonnullFields() []string {
	return slices.Clone(c.nonnull)
}

// IsNonnull reports whether name was declared non-nil.
func (c *Configuration) IsNonnull(name string) bool {
	_, found := slices.BinarySearch(c.nonnull, name)
	return found
}

// Suppressed returns the suppressed warnings.
func (c *Configuration) Suppressed() options.WarningEnum {
	return c.suppressed
}

// IsSuppressed reports whether w is suppressed.
func (c *Configuration) IsSuppressed(w options.WarningEnum) bool {
	return c.suppressed.Has(w)
}

// HashInitializer returns the hash computation strategy.
func (c *Configuration) HashInitializer() contract.HashInitializer {
	return c.hash
}

// CachedHashField returns the name of the field memoizing the hash, if any.
func (c *Configuration) CachedHashField() string {
	return c.cachedHash
}

// StaticFields returns the registered package-level variables.
func (c *Configuration) StaticFields() []reflection.Field {
	return slices.Clone(c.statics)
}

// Subtype returns the registered subtype, or nil.
func (c *Configuration) Subtype() reflect.Type {
	return c.subtype
}

func (c *Configuration) Logger() *slog.Logger {
	return c.logger
}

// builder collects options before the configuration is frozen.
type builder struct {
	typ             reflect.Type
	nonnull         map[string]struct{}
	suppressed      options.WarningEnum
	values          *prefab.Values
	valueOps        []func(*prefab.Values) error
	cacheOpts       []annotations.Option
	cachedHashField string
	cachedHashCalc  any
	statics         []reflection.Field
	subtype         reflect.Type
	logger          *slog.Logger
}

// Option configures a run.
type Option func(*builder) error

// Build validates the options and returns the configuration for tag, which
// must denote a struct type with equality and hash methods.
func Build(tag prefab.TypeTag, opts ...Option) (*Configuration, error) {
	if tag.IsZero() {
		return nil, fmt.Errorf("%w: missing type", reflection.ErrNotStruct)
	}

	b := &builder{
		typ:     tag.Type(),
		nonnull: make(map[string]struct{}),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	c, err := contract.Resolve(b.typ)
	if err != nil {
		return nil, err
	}

	if b.logger == nil {
		b.logger = slog.Default()
	}
	logger := b.logger.With(slog.String("component", "verifier"), slog.String("type", b.typ.String()))

	values := b.values
	if values == nil {
		values = prefab.New(prefab.WithLogger(logger))
	}
	for _, op := range b.valueOps {
		if err := op(values); err != nil {
			return nil, err
		}
	}

	cfg := &Configuration{
		typeTag:    tag,
		contract:   c,
		values:     values,
		cache:      annotations.NewCache(append(b.cacheOpts, annotations.WithLogger(logger))...),
		suppressed: b.suppressed,
		hash:       c,
		statics:    b.statics,
		subtype:    b.subtype,
		logger:     logger,
	}

	for name := range b.nonnull {
		if !b.hasField(name) {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, b.typ, name)
		}
		cfg.nonnull = append(cfg.nonnull, name)
	}
	sort.Strings(cfg.nonnull)

	if b.cachedHashCalc != nil {
		h, err := contract.NewCachedHash(c, b.cachedHashField, b.cachedHashCalc)
		if err != nil {
			return nil, err
		}
		cfg.hash = h
		cfg.cachedHash = h.FieldName()
	}

	return cfg, nil
}

func (b *builder) hasField(name string) bool {
	for _, f := range reflection.FieldsOf(b.typ) {
		if f.Name == name {
			return true
		}
	}

	return slices.ContainsFunc(b.statics, func(f reflection.Field) bool { return f.Name == name })
}

// WithNonnullFields declares fields that are never nil.
func WithNonnullFields(names ...string) Option {
	return func(b *builder) error {
		for _, name := range names {
			b.nonnull[name] = struct{}{}
		}
		return nil
	}
}

// Suppress disables the checks guarded by warnings.
func Suppress(warnings options.WarningEnum) Option {
	return func(b *builder) error {
		b.suppressed |= warnings
		return nil
	}
}

// WithValues replaces the value catalog. Prefab options apply to it.
func WithValues(values *prefab.Values) Option {
	return func(b *builder) error {
		b.values = values
		return nil
	}
}

// WithPrefabValues registers red and black samples for t.
func WithPrefabValues(t reflect.Type, red, black any) Option {
	return func(b *builder) error {
		b.valueOps = append(b.valueOps, func(v *prefab.Values) error {
			return v.Add(t, red, black, red)
		})
		return nil
	}
}

// WithPrefabFactory registers a factory for t, typically a generic
// container whose samples depend on its arguments.
func WithPrefabFactory(t reflect.Type, f prefab.Factory) Option {
	return func(b *builder) error {
		b.valueOps = append(b.valueOps, func(v *prefab.Values) error {
			v.AddFactory(t, f)
			return nil
		})
		return nil
	}
}

// WithPrefabBinding makes impl the substitute for interface type iface.
func WithPrefabBinding(iface, impl reflect.Type) Option {
	return func(b *builder) error {
		b.valueOps = append(b.valueOps, func(v *prefab.Values) error {
			return v.Bind(iface, prefab.Of(impl))
		})
		return nil
	}
}

// WithAnnotationSource adds external directives, usually an
// *analyze.DirectiveIndex.
func WithAnnotationSource(src annotations.Source) Option {
	return func(b *builder) error {
		b.cacheOpts = append(b.cacheOpts, annotations.WithSource(src))
		return nil
	}
}

// WithTypeAnnotation annotates the type under test.
func WithTypeAnnotation(anns ...annotations.Annotation) Option {
	return func(b *builder) error {
		b.cacheOpts = append(b.cacheOpts, annotations.WithTypeAnnotation(b.typ, anns...))
		return nil
	}
}

// WithFieldAnnotation annotates field of the type under test.
func WithFieldAnnotation(field string, anns ...annotations.Annotation) Option {
	return func(b *builder) error {
		b.cacheOpts = append(b.cacheOpts, annotations.WithFieldAnnotation(b.typ, field, anns...))
		return nil
	}
}

// WithCachedHash declares that field memoizes the hash and calculate
// recomputes it, see contract.ParseCalculator for accepted shapes.
func WithCachedHash(field string, calculate any) Option {
	return func(b *builder) error {
		b.cachedHashField = field
		b.cachedHashCalc = calculate
		return nil
	}
}

// WithStaticField registers the package-level variable ptr points to as a
// static field of the type under test.
func WithStaticField(name string, ptr any) Option {
	return func(b *builder) error {
		f, err := reflection.NewStaticField(b.typ, name, ptr)
		if err != nil {
			return err
		}
		b.statics = append(b.statics, f)
		return nil
	}
}

// WithSubtype registers a struct embedding the type under test first.
func WithSubtype(sub reflect.Type) Option {
	return func(b *builder) error {
		if err := reflection.CheckSubtype(sub, b.typ); err != nil {
			return err
		}
		b.subtype = sub
		return nil
	}
}

// WithLogger sets the logger of the run.
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) error {
		b.logger = logger
		return nil
	}
}
