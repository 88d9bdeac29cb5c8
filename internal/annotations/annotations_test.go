package annotations

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equals-verifier/internal/reflection"
)

type audit struct {
	CreatedBy *string `validate:"required,email"`
	touched   int     `gorm:"column:touched;-"`
}

type account struct {
	audit
	Name  *string `verify:"nonnull"`
	Note  *string `verify:"nullable"`
	Cache int     `verify:"transient"`
	Owner *string
}

type label struct {
	Name string `verify:"transient"`
	Kind string `verify:"transient"`
}

type badge struct {
	label
	Name string
}

type strict struct {
	A *string
	B *string
}

// fakeSource serves directives the way the analyze index does.
type fakeSource struct {
	types  map[reflect.Type][]string
	fields map[reflect.Type]map[string][]string
}

func (s fakeSource) TypeDirectives(t reflect.Type) []string { return s.types[t] }

func (s fakeSource) FieldDirectives(t reflect.Type, field string) []string {
	return s.fields[t][field]
}

func fieldOf(t *testing.T, typ reflect.Type, name string) reflection.Field {
	t.Helper()

	for _, f := range reflection.FieldsOf(typ) {
		if f.Name == name {
			return f
		}
	}

	require.FailNow(t, "no such field", name)
	return reflection.Field{}
}

func ExampleParseAnnotation() {
	for _, s := range []string{"nonnull", " Transient", "nullable", "final"} {
		a, ok := ParseAnnotation(s)
		fmt.Println(a, ok)
	}

	// Output:
	// nonnull true
	// transient true
	// nullable true
	// unknown false
}

func TestFromTag(t *testing.T) {
	tests := []struct {
		tag  reflect.StructTag
		want []Annotation
	}{
		{tag: `verify:"nonnull"`, want: []Annotation{Nonnull}},
		{tag: `verify:"nonnull, transient"`, want: []Annotation{Nonnull, Transient}},
		{tag: `verify:"bogus"`},
		{tag: `gorm:"-"`, want: []Annotation{Transient}},
		{tag: `gorm:"column:x;-"`, want: []Annotation{Transient}},
		{tag: `gorm:"-:migration"`},
		{tag: `validate:"required"`, want: []Annotation{Nonnull}},
		{tag: `binding:"omitempty,required"`, want: []Annotation{Nonnull}},
		{tag: `json:"-"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			assert.Equal(t, tt.want, fromTag(tt.tag))
		})
	}
}

func TestCache_StructTags(t *testing.T) {
	typ := reflect.TypeFor[account]()
	c := NewCache()

	assert.True(t, c.HasFieldAnnotation(typ, "Name", Nonnull))
	assert.True(t, c.HasFieldAnnotation(typ, "Note", Nullable))
	assert.True(t, c.HasFieldAnnotation(typ, "Cache", Transient))
	assert.False(t, c.HasFieldAnnotation(typ, "Owner", Nonnull))
	assert.False(t, c.HasTypeAnnotation(typ, Nonnull))

	// promoted fields belong to the root type too
	assert.True(t, c.HasFieldAnnotation(typ, "CreatedBy", Nonnull))
	assert.True(t, c.HasFieldAnnotation(typ, "touched", Transient))

	assert.True(t, c.IsPopulated(typ))
	assert.True(t, c.IsPopulated(reflect.TypeFor[audit]()), "embedded structs are populated along")
	assert.False(t, c.HasFieldAnnotation(typ, "Missing", Nonnull))
}

func TestCache_ShadowedFields(t *testing.T) {
	typ := reflect.TypeFor[badge]()
	c := NewCache()

	assert.False(t, c.HasFieldAnnotation(typ, "Name", Transient), "badge.Name shadows label.Name")
	assert.True(t, c.HasFieldAnnotation(typ, "Kind", Transient))

	var outer, inner reflection.Field
	for _, f := range reflection.FieldsOf(typ) {
		if f.Name != "Name" {
			continue
		}
		if f.Declaring == typ {
			outer = f
		} else {
			inner = f
		}
	}
	require.NotNil(t, outer.Type)
	require.NotNil(t, inner.Type)

	assert.False(t, c.HasAnnotation(typ, outer, Transient))
	assert.True(t, c.HasAnnotation(typ, inner, Transient))
	assert.True(t, c.HasAnnotation(typ, fieldOf(t, typ, "Kind"), Transient))
}

func TestCache_Sources(t *testing.T) {
	typ := reflect.TypeFor[strict]()
	src := fakeSource{
		types: map[reflect.Type][]string{typ: {"nonnull"}},
		fields: map[reflect.Type]map[string][]string{
			typ: {"B": {"nullable", "unknown"}, "Global": {"transient"}},
		},
	}

	c := NewCache(WithSource(src), WithSource(nil))

	assert.True(t, c.HasTypeAnnotation(typ, Nonnull))
	assert.True(t, c.HasFieldAnnotation(typ, "B", Nullable))
	assert.True(t, c.HasFieldAnnotation(typ, "Global", Transient), "non-field names reach package variables")

	assert.True(t, FieldIsNonnull(fieldOf(t, typ, "A"), c), "type default applies")
	assert.False(t, FieldIsNonnull(fieldOf(t, typ, "B"), c), "nullable overrides the default")
}

func TestCache_Extras(t *testing.T) {
	typ := reflect.TypeFor[strict]()
	c := NewCache(
		WithFieldAnnotation(typ, "A", Nonnull),
		WithTypeAnnotation(reflect.TypeFor[audit](), Nonnull),
	)

	assert.True(t, FieldIsNonnull(fieldOf(t, typ, "A"), c))
	assert.False(t, FieldIsNonnull(fieldOf(t, typ, "B"), c))

	created := fieldOf(t, reflect.TypeFor[account](), "CreatedBy")
	assert.True(t, FieldIsNonnull(created, c), "the declaring struct decides")
}

func TestCache_PopulatedOnce(t *testing.T) {
	typ := reflect.TypeFor[strict]()
	calls := 0
	src := countingSource{calls: &calls}

	c := NewCache(WithSource(src))
	c.HasTypeAnnotation(typ, Nonnull)
	c.HasFieldAnnotation(typ, "A", Nonnull)
	c.HasTypeAnnotation(typ, Transient)
	first := calls

	c.HasFieldAnnotation(typ, "B", Nullable)
	c.HasTypeAnnotation(reflect.PointerTo(typ), Nonnull)
	assert.Equal(t, first, calls)
}

type countingSource struct{ calls *int }

func (s countingSource) TypeDirectives(reflect.Type) []string {
	*s.calls++
	return nil
}

func (s countingSource) FieldDirectives(reflect.Type, string) []string {
	*s.calls++
	return nil
}

func TestFieldIsNonnull_StaticField(t *testing.T) {
	var global *string

	static, err := reflection.NewStaticField(reflect.TypeFor[strict](), "global", &global)
	require.NoError(t, err)

	c := NewCache(WithFieldAnnotation(reflect.TypeFor[strict](), "global", Nonnull))
	assert.True(t, FieldIsNonnull(static, c))

	unowned := reflection.Field{Name: "x"}
	assert.False(t, FieldIsNonnull(unowned, c))
}

func TestQueue(t *testing.T) {
	var q queue

	q.Needs(reflect.TypeFor[int]())
	q.Needs(reflect.TypeFor[int]())
	q.Needs(reflect.TypeFor[string]())

	first, ok := q.Next()
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[int](), first)

	second, ok := q.Next()
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[string](), second)

	_, ok = q.Next()
	assert.False(t, ok, "duplicates are handed out once")

	q.Needs(reflect.TypeFor[int]())
	_, ok = q.Next()
	assert.False(t, ok, "done types are not queued again")
}
