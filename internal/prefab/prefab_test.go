package prefab

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type status string

type address struct {
	Street string
	number int
	tags   []string
}

type person struct {
	Name    *string
	Age     int
	Home    address
	Born    time.Time
	Labels  map[string]status
	private bool
}

type node struct {
	Value int
	Next  *node
}

type holder struct {
	Content fmt.Stringer
	Any     any
}

type celsius float64

func (c celsius) String() string { return fmt.Sprintf("%.1fC", float64(c)) }

func requireDistinct(t *testing.T, tuple Tuple) {
	t.Helper()
	require.True(t, tuple.Red.IsValid())
	require.True(t, tuple.Black.IsValid())
	require.True(t, tuple.RedCopy.IsValid())
	assert.False(t, SameValue(tuple.Red, tuple.Black), "red and black must differ")
	assert.True(t, SameValue(tuple.Red, tuple.RedCopy), "red copy must equal red")
}

func TestTypeTag(t *testing.T) {
	tag := TypeFor[map[string][]int]()
	require.Len(t, tag.Args(), 2)
	assert.Equal(t, reflect.TypeFor[string](), tag.Args()[0].Type())
	assert.Equal(t, reflect.TypeFor[[]int](), tag.Args()[1].Type())
	assert.Equal(t, reflect.TypeFor[int](), tag.Args()[1].Args()[0].Type())
	assert.Equal(t, "map[string][]int", tag.String())

	assert.True(t, tag.Equal(Of(reflect.TypeFor[map[string][]int]())))
	assert.False(t, tag.Equal(TypeFor[map[string][]string]()))
	assert.True(t, TypeTag{}.IsZero())
	assert.Equal(t, "<nil>", TypeTag{}.String())
}

func TestFieldTag_ResolvesInterfaces(t *testing.T) {
	enclosing := TypeFor[holder](TypeFor[celsius]())
	assert.Equal(t, "prefab.holder<prefab.celsius>", enclosing.String())

	stringer := reflect.TypeFor[fmt.Stringer]()
	assert.Equal(t, reflect.TypeFor[celsius](), FieldTag(stringer, enclosing).Type())
	assert.Equal(t, reflect.TypeFor[celsius](), FieldTag(reflect.TypeFor[[]fmt.Stringer](), enclosing).Args()[0].Type())

	// without arguments the interface stays unresolved
	assert.Equal(t, stringer, FieldTag(stringer, TypeFor[holder]()).Type())
}

func TestGiveTuple_Primitives(t *testing.T) {
	values := New()

	tuple, err := values.GiveTuple(TypeFor[int]())
	require.NoError(t, err)
	assert.Equal(t, 1, tuple.Red.Interface())
	assert.Equal(t, 2, tuple.Black.Interface())
	requireDistinct(t, tuple)

	tuple, err = values.GiveTuple(TypeFor[status]())
	require.NoError(t, err)
	assert.Equal(t, status("one"), tuple.Red.Interface())
	requireDistinct(t, tuple)

	for _, tag := range []TypeTag{
		TypeFor[time.Time](),
		TypeFor[time.Duration](),
		TypeFor[uuid.UUID](),
		TypeFor[error](),
		TypeFor[*time.Location](),
		TypeFor[reflect.Type](),
		TypeFor[complex128](),
	} {
		t.Run(tag.String(), func(t *testing.T) {
			tuple, err := values.GiveTuple(tag)
			require.NoError(t, err)
			requireDistinct(t, tuple)
			assert.Equal(t, tag.Type(), tuple.Red.Type())
		})
	}
}

func TestGiveTuple_Composites(t *testing.T) {
	values := New()

	for _, tag := range []TypeTag{
		TypeFor[*string](),
		TypeFor[[]int](),
		TypeFor[[]byte](),
		TypeFor[[3]bool](),
		TypeFor[map[string]int](),
		TypeFor[map[status][]*int](),
		TypeFor[chan int](),
		TypeFor[<-chan int](),
		TypeFor[func(int) error](),
		TypeFor[any](),
		TypeFor[[]any](),
	} {
		t.Run(tag.String(), func(t *testing.T) {
			tuple, err := values.GiveTuple(tag)
			require.NoError(t, err)
			assert.False(t, SameValue(tuple.Red, tuple.Black))
			assert.Equal(t, tag.Type(), tuple.Red.Type())
			assert.Equal(t, tag.Type(), tuple.Black.Type())
		})
	}
}

func TestGiveTuple_PointerCopyIsIndependent(t *testing.T) {
	tuple, err := New().GiveTuple(TypeFor[*string]())
	require.NoError(t, err)

	assert.NotEqual(t, tuple.Red.Pointer(), tuple.RedCopy.Pointer())
	assert.True(t, SameValue(tuple.Red, tuple.RedCopy))
}

func TestGiveTuple_Fallback(t *testing.T) {
	values := New()

	tuple, err := values.GiveTuple(TypeFor[person]())
	require.NoError(t, err)
	requireDistinct(t, tuple)

	red := tuple.Red.Interface().(person)
	black := tuple.Black.Interface().(person)
	require.NotNil(t, red.Name)
	assert.Equal(t, "one", *red.Name)
	assert.Equal(t, "two", *black.Name)
	assert.Equal(t, 1, red.Home.number)
	assert.Equal(t, []string{"one"}, red.Home.tags)
	assert.True(t, red.private)
	assert.False(t, black.private)
	assert.Equal(t, map[string]status{"one": "one"}, red.Labels)
}

func TestGiveTuple_ZeroSized(t *testing.T) {
	tuple, err := New().GiveTuple(TypeFor[struct{}]())
	require.NoError(t, err)
	assert.True(t, SameValue(tuple.Red, tuple.Black))

	tuple, err = New().GiveTuple(TypeFor[[0]int]())
	require.NoError(t, err)
	assert.Equal(t, 0, tuple.Red.Len())
}

func TestGiveTuple_Synchronization(t *testing.T) {
	type guarded struct {
		mu sync.Mutex
		n  int
	}

	values := New()

	for _, typ := range []reflect.Type{
		reflect.TypeFor[sync.Mutex](),
		reflect.TypeFor[sync.RWMutex](),
		reflect.TypeFor[sync.Once](),
		reflect.TypeFor[sync.WaitGroup](),
	} {
		tuple, err := values.GiveTuple(Of(typ))
		require.NoError(t, err)
		assert.True(t, tuple.Stateless(), typ.String())
		assert.True(t, tuple.Red.IsZero(), typ.String())
	}

	tuple, err := values.GiveTuple(TypeFor[guarded]())
	require.NoError(t, err)
	assert.False(t, tuple.Stateless())
	assert.True(t, tuple.Red.FieldByName("mu").IsZero())
	assert.True(t, tuple.Black.FieldByName("mu").IsZero())

	tuple, err = values.GiveTuple(TypeFor[atomic.Int64]())
	require.NoError(t, err)
	assert.False(t, tuple.Stateless())
	assert.Equal(t, int64(1), tuple.Red.Addr().Interface().(*atomic.Int64).Load())
	assert.Equal(t, int64(2), tuple.Black.Addr().Interface().(*atomic.Int64).Load())
}

func TestGiveTuple_Recursion(t *testing.T) {
	_, err := New().GiveTuple(TypeFor[node]())

	var recursion *RecursionError
	require.ErrorAs(t, err, &recursion)
	assert.Contains(t, err.Error(), "prefab.node")
	assert.Contains(t, err.Error(), "*prefab.node")
}

func TestGiveTuple_RecursionBrokenByPrefab(t *testing.T) {
	values := New()
	require.NoError(t, AddFor(values, &node{Value: 1}, &node{Value: 2}, &node{Value: 1}))

	tuple, err := values.GiveTuple(TypeFor[node]())
	require.NoError(t, err)
	requireDistinct(t, tuple)
}

func TestGiveTuple_Interfaces(t *testing.T) {
	values := New()

	_, err := values.GiveTuple(TypeFor[fmt.Stringer]())
	assert.ErrorIs(t, err, ErrNoPrefabValues)

	// resolved through the enclosing arguments
	tuple, err := values.GiveTuple(TypeFor[holder](TypeFor[celsius]()))
	require.NoError(t, err)
	red := tuple.Red.Interface().(holder)
	assert.Equal(t, celsius(0.5), red.Content)
	assert.Equal(t, celsius(0.5), red.Any, "empty interfaces take the first argument as well")

	require.NoError(t, values.Bind(reflect.TypeFor[fmt.Stringer](), TypeFor[celsius]()))
	tuple, err = values.GiveTuple(TypeFor[fmt.Stringer]())
	require.NoError(t, err)
	requireDistinct(t, tuple)
	assert.Equal(t, reflect.Interface, tuple.Red.Kind())

	assert.Error(t, values.Bind(reflect.TypeFor[int](), TypeFor[celsius]()))
	assert.Error(t, values.Bind(reflect.TypeFor[error](), TypeFor[celsius]()))
}

func TestAdd_Validation(t *testing.T) {
	values := New()

	assert.Error(t, values.Add(reflect.TypeFor[int](), 1, 1, 1))
	assert.Error(t, values.Add(reflect.TypeFor[int](), 1, "two", 1))
	assert.Error(t, values.Add(reflect.TypeFor[*int](), (*int)(nil), new(int), new(int)))
	assert.Error(t, values.Add(nil, 1, 2, 1))
	assert.Error(t, AddFor[error](values, nil, errors.New("x"), nil))

	require.NoError(t, AddFor(values, 10, 20, 10))
	red, err := values.GiveRed(TypeFor[int]())
	require.NoError(t, err)
	assert.Equal(t, 10, red.Interface())
}

func TestAddFactory(t *testing.T) {
	values := New()
	calls := 0
	values.AddFactory(reflect.TypeFor[address](), FactoryFunc(func(tag TypeTag, _ *Values, _ TypeStack) (Tuple, error) {
		calls++
		return Tuple{
			Red:     reflect.ValueOf(address{Street: "a"}),
			Black:   reflect.ValueOf(address{Street: "b"}),
			RedCopy: reflect.ValueOf(address{Street: "a"}),
		}, nil
	}))

	black, err := values.GiveBlack(TypeFor[address]())
	require.NoError(t, err)
	assert.Equal(t, "b", black.Interface().(address).Street)

	_, err = values.GiveRedCopy(TypeFor[address]())
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "tuples are cached")
}

func TestAddFactory_WrongType(t *testing.T) {
	values := New()
	values.AddFactory(reflect.TypeFor[address](), FactoryFunc(func(TypeTag, *Values, TypeStack) (Tuple, error) {
		v := reflect.ValueOf(1)
		return Tuple{Red: v, Black: v, RedCopy: v}, nil
	}))

	_, err := values.GiveTuple(TypeFor[address]())
	assert.ErrorContains(t, err, "wrong type")
}

func TestGiveOther(t *testing.T) {
	values := New()
	tag := TypeFor[string]()

	other, err := values.GiveOther(tag, reflect.ValueOf("one"))
	require.NoError(t, err)
	assert.Equal(t, "two", other.Interface())

	other, err = values.GiveOther(tag, reflect.ValueOf("two"))
	require.NoError(t, err)
	assert.Equal(t, "one", other.Interface())

	other, err = values.GiveOther(tag, reflect.ValueOf(""))
	require.NoError(t, err)
	assert.Equal(t, "one", other.Interface())

	var boxed any = 1
	other, err = values.GiveOther(TypeFor[any](), reflect.ValueOf(&boxed).Elem())
	require.NoError(t, err)
	assert.Equal(t, 2, other.Interface())
}

func TestSameValue(t *testing.T) {
	f := func() {}
	g := func() {}

	assert.True(t, SameValue(reflect.ValueOf(f), reflect.ValueOf(f)))
	assert.False(t, SameValue(reflect.ValueOf(f), reflect.ValueOf(g)))
	assert.True(t, SameValue(reflect.Value{}, reflect.Value{}))
	assert.False(t, SameValue(reflect.ValueOf(1), reflect.Value{}))
	assert.False(t, SameValue(reflect.ValueOf(1), reflect.ValueOf(int64(1))))
	assert.True(t, SameValue(reflect.ValueOf([]int{1}), reflect.ValueOf([]int{1})))
}

func TestTypeStack(t *testing.T) {
	var stack TypeStack
	pushed := stack.Push(TypeFor[int]())

	assert.Empty(t, stack)
	assert.True(t, pushed.Contains(TypeFor[int]()))
	assert.False(t, pushed.Contains(TypeFor[string]()))
}
