package annotations

import (
	"log/slog"
	"reflect"
	"slices"

	"equals-verifier/internal/reflection"
)

// Source supplies annotations kept outside the type, by directive name.
// *analyze.DirectiveIndex implements it.
type Source interface {
	TypeDirectives(t reflect.Type) []string
	FieldDirectives(t reflect.Type, field string) []string
}

type set map[Annotation]struct{}

func (s set) add(anns ...Annotation) {
	for _, a := range anns {
		s[a] = struct{}{}
	}
}

func (s set) has(a Annotation) bool {
	_, ok := s[a]
	return ok
}

type entry struct {
	typ    set
	fields map[string]set
	// visible holds the index of the field each name selects in Go; a
	// promoted field is shadowed by a shallower one of the same name.
	visible map[string][]int
}

type fieldKey struct {
	typ   reflect.Type
	field string
}

// Cache records which annotations each type and field has. A type is
// populated on first use together with every struct it embeds; populated
// entries are never invalidated.
//
// Cache is not safe for concurrent use.
type Cache struct {
	entries     map[reflect.Type]*entry
	sources     []Source
	extraTypes  map[reflect.Type][]Annotation
	extraFields map[fieldKey][]Annotation
	logger      *slog.Logger
}

// Option configures a Cache.
type Option func(*Cache)

// WithSource adds a source of external directives.
func WithSource(src Source) Option {
	return func(c *Cache) {
		if src != nil {
			c.sources = append(c.sources, src)
		}
	}
}

// WithTypeAnnotation annotates type t.
func WithTypeAnnotation(t reflect.Type, anns ...Annotation) Option {
	return func(c *Cache) {
		c.extraTypes[t] = append(c.extraTypes[t], anns...)
	}
}

// WithFieldAnnotation annotates field of type t.
func WithFieldAnnotation(t reflect.Type, field string, anns ...Annotation) Option {
	return func(c *Cache) {
		key := fieldKey{typ: t, field: field}
		c.extraFields[key] = append(c.extraFields[key], anns...)
	}
}

// WithLogger sets the logger unknown directives are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache creates an empty cache.
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		entries:     make(map[reflect.Type]*entry),
		extraTypes:  make(map[reflect.Type][]Annotation),
		extraFields: make(map[fieldKey][]Annotation),
		logger:      slog.Default().With(slog.String("component", "annotations")),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HasTypeAnnotation reports whether type t carries ann.
func (c *Cache) HasTypeAnnotation(t reflect.Type, ann Annotation) bool {
	return c.entry(t).typ.has(ann)
}

// HasFieldAnnotation reports whether the field named field of t carries ann.
// Fields promoted from embedded structs are fields of t as well.
func (c *Cache) HasFieldAnnotation(t reflect.Type, field string, ann Annotation) bool {
	e := c.entry(t)

	anns, ok := e.fields[field]
	if !ok {
		// not a struct field, e.g. a static field registered for t
		anns = make(set)
		anns.add(c.external(t, field, nil)...)
		e.fields[field] = anns
	}

	return anns.has(ann)
}

// HasAnnotation reports whether field of root carries ann. The answer for
// a shadowed promoted field comes from its declaring struct only, so its
// annotations never leak onto the field that shadows it.
func (c *Cache) HasAnnotation(root reflect.Type, field reflection.Field, ann Annotation) bool {
	if field.IsStatic() || field.Declaring == nil {
		return c.HasFieldAnnotation(root, field.Name, ann)
	}

	if index, ok := c.entry(root).visible[field.Name]; ok && slices.Equal(index, field.Index) {
		return c.HasFieldAnnotation(root, field.Name, ann)
	}

	return c.HasFieldAnnotation(field.Declaring, field.Name, ann)
}

// IsPopulated reports whether t has been populated.
func (c *Cache) IsPopulated(t reflect.Type) bool {
	_, ok := c.entries[t]
	return ok
}

func (c *Cache) entry(t reflect.Type) *entry {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if e, ok := c.entries[t]; ok {
		return e
	}

	var q queue
	q.Needs(t)
	for next, ok := q.Next(); ok; next, ok = q.Next() {
		c.populate(next, &q)
	}

	return c.entries[t]
}

func (c *Cache) populate(t reflect.Type, q *queue) {
	e := &entry{typ: make(set), fields: make(map[string]set), visible: make(map[string][]int)}
	e.typ.add(c.extraTypes[t]...)

	for _, src := range c.sources {
		e.typ.add(c.parse(t, "", src.TypeDirectives(t))...)
	}

	for _, field := range reflection.FieldsOf(t) {
		if field.Declaring != t && !c.IsPopulated(field.Declaring) {
			q.Needs(field.Declaring)
		}

		if index, ok := e.visible[field.Name]; ok && len(index) <= len(field.Index) {
			continue
		}

		e.visible[field.Name] = field.Index
		anns := make(set)
		anns.add(fromTag(field.Tag)...)
		anns.add(c.external(t, field.Name, &field)...)
		e.fields[field.Name] = anns
	}

	c.entries[t] = e
	c.logger.Debug("populated annotations", "type", t.String(), "fields", len(e.fields))
}

// external collects extras and source directives for a field. For a
// promoted field both t and the declaring struct are consulted.
func (c *Cache) external(t reflect.Type, name string, field *reflection.Field) []Annotation {
	owners := []reflect.Type{t}
	if field != nil && field.Declaring != t {
		owners = append(owners, field.Declaring)
	}

	var out []Annotation
	for _, owner := range owners {
		out = append(out, c.extraFields[fieldKey{typ: owner, field: name}]...)

		for _, src := range c.sources {
			out = append(out, c.parse(owner, name, src.FieldDirectives(owner, name))...)
		}
	}

	return out
}

func (c *Cache) parse(t reflect.Type, field string, directives []string) []Annotation {
	var out []Annotation

	for _, d := range directives {
		a, ok := ParseAnnotation(d)
		if !ok {
			c.logger.Warn("ignoring unknown directive", "type", t.String(), "field", field, "directive", d)
			continue
		}
		out = append(out, a)
	}

	return out
}
