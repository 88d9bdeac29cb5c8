// Package contract locates and invokes the equality and hash methods of
// the type under test.
package contract

import (
	"errors"
	"fmt"
	"reflect"

	"equals-verifier/internal/reflection"
	"equals-verifier/primitive"
)

var (
	ErrNoEqualMethod = errors.New("type has no Equal(other) bool or Equals(other) bool method")
	ErrNoHashMethod  = errors.New("type has no Hash() or HashCode() method returning an integer")
)

var (
	equalNames = []string{"Equal", "Equals"}
	hashNames  = []string{"Hash", "HashCode"}
)

type method struct {
	name      string
	onPointer bool         // only in the method set of *T
	param     reflect.Type // parameter of the equality method
}

// Contract binds the equality and hash methods of a struct type.
type Contract struct {
	typ   reflect.Type
	equal method
	hash  method
}

// Resolve finds the equality and hash methods of t.
func Resolve(t reflect.Type) (*Contract, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %v", reflection.ErrNotStruct, t)
	}

	c := &Contract{typ: t}

	var ok bool
	if c.equal, ok = lookup(t, equalNames, isEqualSignature); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoEqualMethod, t)
	}
	if c.hash, ok = lookup(t, hashNames, isHashSignature); !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHashMethod, t)
	}

	c.equal.param = methodType(t, c.equal).In(1)
	return c, nil
}

func lookup(t reflect.Type, names []string, valid func(reflect.Type) bool) (method, bool) {
	for _, name := range names {
		if m, ok := t.MethodByName(name); ok && valid(m.Type) {
			return method{name: name}, true
		}
		if m, ok := reflect.PointerTo(t).MethodByName(name); ok && valid(m.Type) {
			return method{name: name, onPointer: true}, true
		}
	}

	return method{}, false
}

func methodType(t reflect.Type, m method) reflect.Type {
	if m.onPointer {
		t = reflect.PointerTo(t)
	}

	found, _ := t.MethodByName(m.name)
	return found.Type
}

// method types include the receiver as first input
func isEqualSignature(mt reflect.Type) bool {
	return mt.NumIn() == 2 && mt.NumOut() == 1 && mt.Out(0).Kind() == reflect.Bool
}

func isHashSignature(mt reflect.Type) bool {
	return mt.NumIn() == 1 && mt.NumOut() == 1 && primitive.Underlying(mt.Out(0)).IsInteger()
}

// Type returns the struct type the contract belongs to.
func (c *Contract) Type() reflect.Type {
	return c.typ
}

// EqualName returns the name of the equality method.
func (c *Contract) EqualName() string {
	return c.equal.name
}

// Param returns the parameter type of the equality method.
func (c *Contract) Param() reflect.Type {
	return c.equal.param
}

// HashName returns the name of the hash method.
func (c *Contract) HashName() string {
	return c.hash.name
}

// Equal calls receiver.Equal(other). receiver is a *T; other is a pointer to
// a T, to a variant of T or to any other struct. When other cannot be passed
// to a typed parameter the objects are reported unequal without a call.
// Panics raised by the method propagate to the caller.
func (c *Contract) Equal(receiver, other reflect.Value) bool {
	arg, ok := c.argument(other)
	if !ok {
		return false
	}

	out := c.bind(receiver, c.equal).Call([]reflect.Value{arg})
	return out[0].Bool()
}

// AcceptsNil reports whether nil can be passed to the equality method.
func (c *Contract) AcceptsNil() bool {
	switch c.equal.param.Kind() {
	case reflect.Pointer, reflect.Interface:
		return true
	default:
		return false
	}
}

// EqualNil calls receiver.Equal(nil). It returns false without a call when
// the parameter cannot hold nil.
func (c *Contract) EqualNil(receiver reflect.Value) bool {
	if !c.AcceptsNil() {
		return false
	}

	out := c.bind(receiver, c.equal).Call([]reflect.Value{reflect.Zero(c.equal.param)})
	return out[0].Bool()
}

// Hash calls receiver.Hash(). Panics propagate to the caller.
func (c *Contract) Hash(receiver reflect.Value) int64 {
	return asInt64(c.bind(receiver, c.hash).Call(nil)[0])
}

// InitializedHashCode makes Contract the plain hash strategy.
func (c *Contract) InitializedHashCode(obj reflect.Value) int64 {
	return c.Hash(obj)
}

func (c *Contract) bind(receiver reflect.Value, m method) reflect.Value {
	if !m.onPointer {
		receiver = receiver.Elem()
	}

	return receiver.MethodByName(m.name)
}

// argument shapes other for the equality parameter. Interface parameters
// get the same shape as the receiver: a value for value receivers and a
// pointer for pointer receivers.
func (c *Contract) argument(other reflect.Value) (reflect.Value, bool) {
	param := c.equal.param
	candidates := []reflect.Value{other, other.Elem()}
	if param.Kind() == reflect.Interface && !c.equal.onPointer {
		candidates[0], candidates[1] = candidates[1], candidates[0]
	}

	for _, candidate := range candidates {
		if candidate.Type().AssignableTo(param) {
			return candidate, true
		}
	}

	return reflect.Value{}, false
}
