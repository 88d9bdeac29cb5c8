package prefab

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"equals-verifier/primitive"
)

// Values is the prefab value catalog. It is not safe for concurrent use.
type Values struct {
	cache     map[tagKey]Tuple
	factories map[reflect.Type]Factory
	bindings  map[reflect.Type]TypeTag
	logger    *slog.Logger
}

// Option configures Values.
type Option func(*Values)

// WithLogger sets the logger used to trace value synthesis.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Values) {
		if logger != nil {
			v.logger = logger
		}
	}
}

// New returns a catalog preloaded with values for well-known types.
func New(opts ...Option) *Values {
	v := &Values{
		cache:     make(map[tagKey]Tuple),
		factories: make(map[reflect.Type]Factory),
		bindings:  make(map[reflect.Type]TypeTag),
		logger:    slog.Default().With(slog.String("component", "prefab")),
	}

	for _, opt := range opts {
		opt(v)
	}

	addStaticValues(v)
	return v
}

// Add registers caller-supplied values for t. red and black must not be
// equal and all three must be assignable to t.
func (v *Values) Add(t reflect.Type, red, black, redCopy any) error {
	if t == nil {
		return errors.New("prefab values need a type")
	}

	tuple := Tuple{}
	for i, raw := range []any{red, black, redCopy} {
		value, err := typed(t, raw)
		if err != nil {
			return err
		}

		switch i {
		case 0:
			tuple.Red = value
		case 1:
			tuple.Black = value
		default:
			tuple.RedCopy = value
		}
	}

	if SameValue(tuple.Red, tuple.Black) {
		return fmt.Errorf("prefab values for %s: red and black must not be equal", t)
	}

	v.cache[Of(t).key()] = tuple
	return nil
}

// AddFor is the generic form of Values.Add.
func AddFor[T any](v *Values, red, black, redCopy T) error {
	return v.Add(reflect.TypeFor[T](), red, black, redCopy)
}

// AddFactory registers f as the source of values for t.
func (v *Values) AddFactory(t reflect.Type, f Factory) {
	v.factories[t] = f
}

// Bind makes impl the concrete substitute for interface type iface.
func (v *Values) Bind(iface reflect.Type, impl TypeTag) error {
	if iface == nil || iface.Kind() != reflect.Interface {
		return fmt.Errorf("bind %v: not an interface type", iface)
	}
	if impl.IsZero() || !impl.typ.Implements(iface) {
		return fmt.Errorf("bind %v: %s does not implement it", iface, impl)
	}

	v.bindings[iface] = impl
	return nil
}

// addStateless registers the zero value of t as red, black and red copy.
func (v *Values) addStateless(t reflect.Type) {
	zero := reflect.New(t).Elem()
	v.put(Tuple{Red: zero, Black: zero, RedCopy: zero})
}

func (v *Values) put(tuple Tuple) {
	v.cache[Of(tuple.Red.Type()).key()] = tuple
}

// GiveTuple returns the tuple for tag, building it if necessary.
func (v *Values) GiveTuple(tag TypeTag) (Tuple, error) {
	return v.Realize(tag, nil)
}

// GiveRed returns the red value for tag.
func (v *Values) GiveRed(tag TypeTag) (reflect.Value, error) {
	tuple, err := v.GiveTuple(tag)
	return tuple.Red, err
}

// GiveBlack returns the black value for tag.
func (v *Values) GiveBlack(tag TypeTag) (reflect.Value, error) {
	tuple, err := v.GiveTuple(tag)
	return tuple.Black, err
}

// GiveRedCopy returns the red copy value for tag.
func (v *Values) GiveRedCopy(tag TypeTag) (reflect.Value, error) {
	tuple, err := v.GiveTuple(tag)
	return tuple.RedCopy, err
}

// GiveOther returns black when current equals red and red otherwise, so
// the result never equals current.
func (v *Values) GiveOther(tag TypeTag, current reflect.Value) (reflect.Value, error) {
	tuple, err := v.GiveTuple(tag)
	if err != nil {
		return reflect.Value{}, err
	}

	if SameValue(current, tuple.Red) {
		return tuple.Black, nil
	}

	return tuple.Red, nil
}

// Realize returns the tuple for tag. stack lists the tags whose synthesis
// is in progress; factories pass on the stack they received.
func (v *Values) Realize(tag TypeTag, stack TypeStack) (Tuple, error) {
	if tag.IsZero() {
		return Tuple{}, fmt.Errorf("%w: missing type", ErrNoPrefabValues)
	}

	key := tag.key()
	if tuple, ok := v.cache[key]; ok {
		return tuple, nil
	}

	if stack.Contains(tag) {
		return Tuple{}, &RecursionError{Stack: stack.Push(tag)}
	}

	tuple, err := v.create(tag, stack.Push(tag))
	if err != nil {
		return Tuple{}, err
	}

	for _, value := range []reflect.Value{tuple.Red, tuple.Black, tuple.RedCopy} {
		if !value.IsValid() || value.Type() != tag.typ {
			return Tuple{}, fmt.Errorf("prefab values for %s have the wrong type", tag)
		}
	}

	v.cache[key] = tuple
	return tuple, nil
}

func (v *Values) create(tag TypeTag, stack TypeStack) (Tuple, error) {
	t := tag.typ

	if f, ok := v.factories[t]; ok {
		return f.CreateValues(tag, v, stack)
	}

	if red, black, ok := primitive.Samples(t); ok {
		return Tuple{Red: red, Black: black, RedCopy: red}, nil
	}

	if t.Size() == 0 && (t.Kind() == reflect.Struct || t.Kind() == reflect.Array) {
		zero := reflect.New(t).Elem()
		return Tuple{Red: zero, Black: zero, RedCopy: zero}, nil
	}

	if t.Kind() == reflect.Interface {
		return v.createInterface(tag, stack)
	}

	f := kindFactory(t.Kind())
	if f == nil {
		return Tuple{}, fmt.Errorf("%w for %s", ErrNoPrefabValues, tag)
	}

	return f.CreateValues(tag, v, stack)
}

func (v *Values) createInterface(tag TypeTag, stack TypeStack) (Tuple, error) {
	t := tag.typ

	impl, ok := v.bindings[t]
	if !ok {
		if t.NumMethod() > 0 {
			return Tuple{}, fmt.Errorf("%w for interface %s", ErrNoPrefabValues, tag)
		}
		impl = Of(reflect.TypeFor[int]())
	}

	concrete, err := v.Realize(impl, stack)
	if err != nil {
		return Tuple{}, err
	}

	return Tuple{
		Red:     boxed(t, concrete.Red),
		Black:   boxed(t, concrete.Black),
		RedCopy: boxed(t, concrete.RedCopy),
	}, nil
}

func boxed(iface reflect.Type, value reflect.Value) reflect.Value {
	out := reflect.New(iface).Elem()
	out.Set(value)
	return out
}

func typed(t reflect.Type, raw any) (reflect.Value, error) {
	value := reflect.ValueOf(raw)
	if !value.IsValid() {
		return reflect.Value{}, fmt.Errorf("prefab values for %s must not be nil", t)
	}

	if primitive.Nilable(value.Type()) && value.IsNil() {
		return reflect.Value{}, fmt.Errorf("prefab values for %s must not be nil", t)
	}

	if !value.Type().AssignableTo(t) {
		return reflect.Value{}, fmt.Errorf("prefab value of type %s is not assignable to %s", value.Type(), t)
	}

	if value.Type() != t {
		value = boxed(t, value)
	}

	return value, nil
}
