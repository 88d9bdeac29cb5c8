package prefab

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unsafe"
)

var ErrNoPrefabValues = errors.New("no prefab values available; supply them with WithPrefabValues")

// Tuple holds the sample values of one type. Red and Black are never equal;
// RedCopy is equal to Red but built independently where the type allows it.
type Tuple struct {
	Red, Black, RedCopy reflect.Value
}

// Factory builds the Tuple of a TypeTag. Implementations obtain the tuples of
// element types through values.Realize, passing stack along.
type Factory interface {
	CreateValues(tag TypeTag, values *Values, stack TypeStack) (Tuple, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(tag TypeTag, values *Values, stack TypeStack) (Tuple, error)

func (f FactoryFunc) CreateValues(tag TypeTag, values *Values, stack TypeStack) (Tuple, error) {
	return f(tag, values, stack)
}

// Stateless reports whether the type has a single value, so no field of
// that type can change the outcome of Equal. Zero-size types and
// synchronization primitives are stateless.
func (t Tuple) Stateless() bool {
	return SameValue(t.Red, t.Black)
}

// TypeStack lists the tags currently being synthesized, outermost first.
type TypeStack []TypeTag

// Contains reports whether tag is already being synthesized.
func (s TypeStack) Contains(tag TypeTag) bool {
	for _, t := range s {
		if t.Equal(tag) {
			return true
		}
	}

	return false
}

// Push returns a new stack with tag on top. s is left untouched.
func (s TypeStack) Push(tag TypeTag) TypeStack {
	out := make(TypeStack, len(s), len(s)+1)
	copy(out, s)
	return append(out, tag)
}

// RecursionError reports a type that contains itself without a way to stop.
type RecursionError struct {
	Stack TypeStack
}

func (e *RecursionError) Error() string {
	names := make([]string, len(e.Stack))
	for i, tag := range e.Stack {
		names[i] = tag.String()
	}

	return fmt.Sprintf("recursive data structure: add prefab values for one of the following types: %s",
		strings.Join(names, ", "))
}

// SameValue reports whether a and b hold equal values. Interfaces are
// compared by their dynamic values; functions, channels and unsafe pointers
// compare by identity, everything else deeply.
func SameValue(a, b reflect.Value) bool {
	a, b = unwrap(a), unwrap(b)
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}

	switch a.Kind() {
	case reflect.Func:
		return closure(a) == closure(b)
	case reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	}

	return reflect.DeepEqual(a.Interface(), b.Interface())
}

// closure returns the word a func value is made of. Unlike Value.Pointer it
// tells apart closures that share code, such as those built by MakeFunc.
func closure(v reflect.Value) unsafe.Pointer {
	if v.IsNil() {
		return nil
	}

	p := reflect.New(v.Type())
	p.Elem().Set(v)
	return *(*unsafe.Pointer)(p.UnsafePointer())
}

func unwrap(v reflect.Value) reflect.Value {
	if v.IsValid() && v.Kind() == reflect.Interface {
		if v.IsNil() {
			return reflect.Value{}
		}
		return v.Elem()
	}

	return v
}
