package accessor_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equals-verifier/internal/accessor"
	"equals-verifier/internal/prefab"
	"equals-verifier/internal/reflection"
)

type Named struct{ Label string }

type person struct {
	Named
	Name  *string
	Age   int
	Tags  []string
	cache int `verify:"transient"`
}

type employee struct {
	person
	Badge int
}

type unrelated struct{ Age int }

var counter = 42

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

func personType() reflect.Type { return reflect.TypeFor[person]() }

func TestFieldAccessor_GetSet(t *testing.T) {
	p := &person{Age: 5}
	fa := accessor.NewFieldAccessor(reflect.ValueOf(p), fieldOf(t, personType(), "Age"))

	got := fa.Get()
	require.NoError(t, fa.Set(reflect.ValueOf(7)))
	assert.Equal(t, int64(5), got.Int(), "Get returns a detached value")
	assert.Equal(t, 7, p.Age)

	require.Error(t, fa.Set(reflect.ValueOf("seven")))
	assert.Equal(t, 7, p.Age)

	require.NoError(t, fa.Set(reflect.Value{}))
	assert.Zero(t, p.Age)
}

func TestFieldAccessor_Unexported(t *testing.T) {
	p := &person{cache: 3}
	fa := accessor.NewFieldAccessor(reflect.ValueOf(p), fieldOf(t, personType(), "cache"))

	assert.Equal(t, int64(3), fa.Get().Int())
	assert.True(t, fa.FieldIsTransient())
	assert.True(t, fa.FieldIsPrimitive())

	require.NoError(t, fa.Set(reflect.ValueOf(9)))
	assert.Equal(t, 9, p.cache)
}

func TestFieldAccessor_Predicates(t *testing.T) {
	obj := reflect.ValueOf(&person{})

	name := accessor.NewFieldAccessor(obj, fieldOf(t, personType(), "Name"))
	assert.Equal(t, "Name", name.FieldName())
	assert.False(t, name.FieldIsPrimitive())
	assert.False(t, name.FieldIsStatic())
	assert.False(t, name.FieldIsTransient())
	assert.Equal(t, obj, name.Object())

	label := accessor.NewFieldAccessor(obj, fieldOf(t, personType(), "Label"))
	assert.True(t, label.Field().IsEmbedded())
	assert.Equal(t, reflect.TypeFor[string](), label.FieldType())
}

func TestFieldAccessor_DefaultField(t *testing.T) {
	name := "ada"
	p := &person{Name: &name, Tags: []string{"x"}}

	accessor.NewFieldAccessor(reflect.ValueOf(p), fieldOf(t, personType(), "Name")).DefaultField()
	accessor.NewFieldAccessor(reflect.ValueOf(p), fieldOf(t, personType(), "Tags")).DefaultField()

	assert.Nil(t, p.Name)
	assert.Nil(t, p.Tags)
}

func TestFieldAccessor_StaticField(t *testing.T) {
	static, err := reflection.NewStaticField(personType(), "counter", &counter)
	require.NoError(t, err)

	fa := accessor.NewFieldAccessor(reflect.ValueOf(&person{}), static)
	assert.True(t, fa.FieldIsStatic())

	saved := fa.Get()
	defer func() { require.NoError(t, fa.Set(saved)) }()

	fa.DefaultField()
	assert.Equal(t, 42, counter, "DefaultField leaves static fields alone")

	fa.DefaultStaticField()
	assert.Zero(t, counter)

	require.NoError(t, fa.Set(saved))
	assert.Equal(t, 42, counter)

	require.NoError(t, fa.CopyTo(reflect.ValueOf(&person{})))
}

func TestFieldAccessor_CopyTo(t *testing.T) {
	src := &person{Named: Named{Label: "l"}, Age: 30}
	label := fieldOf(t, personType(), "Label")
	age := fieldOf(t, personType(), "Age")

	t.Run("same type", func(t *testing.T) {
		dst := &person{}
		require.NoError(t, accessor.NewFieldAccessor(reflect.ValueOf(src), age).CopyTo(reflect.ValueOf(dst)))
		require.NoError(t, accessor.NewFieldAccessor(reflect.ValueOf(src), label).CopyTo(reflect.ValueOf(dst)))
		assert.Equal(t, 30, dst.Age)
		assert.Equal(t, "l", dst.Label)
	})

	t.Run("subtype", func(t *testing.T) {
		dst := &employee{}
		require.NoError(t, accessor.NewFieldAccessor(reflect.ValueOf(src), age).CopyTo(reflect.ValueOf(dst)))
		assert.Equal(t, 30, dst.Age)
		assert.Zero(t, dst.Badge)
	})

	t.Run("anonymous variant", func(t *testing.T) {
		dst := reflect.New(reflection.AnonymousVariant(personType()))
		require.NoError(t, accessor.NewFieldAccessor(reflect.ValueOf(src), age).CopyTo(dst))
		assert.Equal(t, int64(30), dst.Elem().Field(0).FieldByName("Age").Int())
	})

	t.Run("incompatible", func(t *testing.T) {
		err := accessor.NewFieldAccessor(reflect.ValueOf(src), age).CopyTo(reflect.ValueOf(&unrelated{}))
		require.Error(t, err)
		err = accessor.NewFieldAccessor(reflect.ValueOf(src), age).CopyTo(reflect.ValueOf(person{}))
		require.Error(t, err)
	})
}

func TestFieldAccessor_ChangeField(t *testing.T) {
	values := prefab.New()
	tag := prefab.Of(personType())
	p := &person{}
	fa := accessor.NewFieldAccessor(reflect.ValueOf(p), fieldOf(t, personType(), "Age"))

	red, err := values.GiveRed(prefab.TypeFor[int]())
	require.NoError(t, err)
	black, err := values.GiveBlack(prefab.TypeFor[int]())
	require.NoError(t, err)

	require.NoError(t, fa.ChangeField(values, tag))
	assert.Equal(t, red.Interface(), p.Age)

	require.NoError(t, fa.ChangeField(values, tag))
	assert.Equal(t, black.Interface(), p.Age)

	require.NoError(t, fa.ChangeField(values, tag))
	assert.Equal(t, red.Interface(), p.Age)
}

func TestObjectAccessor_Of(t *testing.T) {
	for _, bad := range []any{nil, person{}, (*person)(nil), new(int)} {
		_, err := accessor.Of(bad)
		require.ErrorIs(t, err, accessor.ErrNotStructPointer)
	}

	oa, err := accessor.Of(&person{})
	require.NoError(t, err)
	assert.Equal(t, personType(), oa.Type())
}

func TestObjectAccessor_Copy(t *testing.T) {
	name := "ada"
	original := &person{Named: Named{"n"}, Name: &name, Age: 36, cache: 1}
	oa, err := accessor.Of(original)
	require.NoError(t, err)

	cp := oa.Copy().Interface().(*person)
	assert.NotSame(t, original, cp)
	assert.Equal(t, *original, *cp)

	cp.Age = 1
	assert.Equal(t, 36, original.Age)
}

func TestObjectAccessor_CopyIntoSubclass(t *testing.T) {
	original := &person{Named: Named{"n"}, Age: 36}
	oa, err := accessor.Of(original)
	require.NoError(t, err)

	sub, err := oa.CopyIntoSubclass(reflect.TypeFor[employee]())
	require.NoError(t, err)

	e := sub.Interface().(*employee)
	assert.Equal(t, *original, e.person)

	_, err = oa.CopyIntoSubclass(reflect.TypeFor[unrelated]())
	require.ErrorIs(t, err, reflection.ErrNotSubtype)
}

func TestObjectAccessor_CopyIntoAnonymousSubclass(t *testing.T) {
	original := &person{Age: 36, cache: 2}
	oa, err := accessor.Of(original)
	require.NoError(t, err)

	variant := oa.CopyIntoAnonymousSubclass()
	assert.NotEqual(t, reflect.TypeFor[*person](), variant.Type())
	assert.Equal(t, *original, variant.Elem().Field(0).Interface())
}

func TestObjectAccessor_Scramble(t *testing.T) {
	values := prefab.New()
	tag := prefab.Of(personType())

	t.Run("deep", func(t *testing.T) {
		oa, err := accessor.New(personType())
		require.NoError(t, err)
		require.NoError(t, oa.Scramble(values, tag))

		p := oa.Get().Interface().(*person)
		assert.NotEmpty(t, p.Label)
		assert.NotNil(t, p.Name)
		assert.NotZero(t, p.Age)
		assert.NotEmpty(t, p.Tags)
		assert.NotZero(t, p.cache)
	})

	t.Run("shallow", func(t *testing.T) {
		oa, err := accessor.New(personType())
		require.NoError(t, err)
		require.NoError(t, oa.ShallowScramble(values, tag))

		p := oa.Get().Interface().(*person)
		assert.Empty(t, p.Label, "promoted fields are skipped")
		assert.NotZero(t, p.Age)
	})

	t.Run("two scrambles differ from one", func(t *testing.T) {
		once, err := accessor.New(personType())
		require.NoError(t, err)
		twice, err := accessor.New(personType())
		require.NoError(t, err)

		require.NoError(t, once.Scramble(values, tag))
		require.NoError(t, twice.Scramble(values, tag))
		require.NoError(t, twice.Scramble(values, tag))

		assert.NotEqual(t, once.Get().Elem().Interface(), twice.Get().Elem().Interface())
	})
}

func TestObjectAccessor_ScrambleFailure(t *testing.T) {
	type opaque struct{ R interface{ Read() } }

	oa, err := accessor.New(reflect.TypeFor[opaque]())
	require.NoError(t, err)

	err = oa.Scramble(prefab.New(), prefab.TypeFor[opaque]())
	require.ErrorIs(t, err, prefab.ErrNoPrefabValues)
}

func TestObjectAccessor_WithChanges(t *testing.T) {
	values := prefab.New()
	oa, err := accessor.Of(&person{Age: 3, Tags: []string{"a"}})
	require.NoError(t, err)

	same := oa.WithDefaultedField(fieldOf(t, personType(), "Tags"))
	assert.Same(t, oa, same)
	assert.Nil(t, oa.Get().Interface().(*person).Tags)

	_, err = oa.WithChangedField(fieldOf(t, personType(), "Age"), values, prefab.Of(personType()))
	require.NoError(t, err)
	assert.NotEqual(t, 3, oa.Get().Interface().(*person).Age)
}
