package prefab

import (
	"reflect"
	"strings"
)

// TypeTag identifies a type together with its resolved argument types.
//
// For pointers, slices, arrays and channels the single argument is the
// element tag; maps carry the key and element tags. For structs the
// arguments are concrete substitutes for interface-typed fields: a field
// whose type is an interface resolves to the first argument implementing it.
type TypeTag struct {
	typ  reflect.Type
	args []TypeTag
}

// Of returns a TypeTag for t. Without explicit args, element tags of
// composite types are derived from t.
func Of(t reflect.Type, args ...TypeTag) TypeTag {
	if len(args) > 0 {
		return TypeTag{typ: t, args: args}
	}

	return resolve(t, TypeTag{})
}

// TypeFor is Of(reflect.TypeFor[T](), args...).
func TypeFor[T any](args ...TypeTag) TypeTag {
	return Of(reflect.TypeFor[T](), args...)
}

// FieldTag returns the tag of a field of type t declared inside enclosing,
// resolving interface types against the arguments of enclosing.
func FieldTag(t reflect.Type, enclosing TypeTag) TypeTag {
	return resolve(t, enclosing)
}

func resolve(t reflect.Type, enclosing TypeTag) TypeTag {
	switch t.Kind() {
	case reflect.Interface:
		for _, arg := range enclosing.args {
			if arg.typ != nil && arg.typ.Kind() != reflect.Interface && arg.typ.Implements(t) {
				return arg
			}
		}
		return TypeTag{typ: t}

	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		return TypeTag{typ: t, args: []TypeTag{resolve(t.Elem(), enclosing)}}

	case reflect.Map:
		return TypeTag{typ: t, args: []TypeTag{resolve(t.Key(), enclosing), resolve(t.Elem(), enclosing)}}
	}

	return TypeTag{typ: t}
}

// Type returns the tagged type.
func (t TypeTag) Type() reflect.Type {
	return t.typ
}

// Args returns the argument tags. The slice must not be modified.
func (t TypeTag) Args() []TypeTag {
	return t.args
}

// IsZero reports whether t tags no type.
func (t TypeTag) IsZero() bool {
	return t.typ == nil
}

// Equal reports whether t and other describe the same type and arguments.
func (t TypeTag) Equal(other TypeTag) bool {
	if t.typ != other.typ || len(t.args) != len(other.args) {
		return false
	}

	for i := range t.args {
		if !t.args[i].Equal(other.args[i]) {
			return false
		}
	}

	return true
}

// String returns e.g. "store.Order" or "store.Box<int>" when arguments
// were given explicitly.
func (t TypeTag) String() string {
	if t.typ == nil {
		return "<nil>"
	}

	var sb strings.Builder
	sb.WriteString(t.typ.String())
	if t.explicitArgs() {
		sb.WriteString("<")
		for i, arg := range t.args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg.String())
		}
		sb.WriteString(">")
	}

	return sb.String()
}

// explicitArgs reports whether the arguments carry information beyond what
// the type itself already says.
func (t TypeTag) explicitArgs() bool {
	if len(t.args) == 0 {
		return false
	}

	return !t.Equal(resolve(t.typ, TypeTag{}))
}

type tagKey struct {
	typ  reflect.Type
	args string
}

// key ignores implied arguments, so Of(*T) and the tag of a *T field agree.
func (t TypeTag) key() tagKey {
	if !t.explicitArgs() {
		return tagKey{typ: t.typ}
	}

	var sb strings.Builder
	t.writeArgs(&sb)
	return tagKey{typ: t.typ, args: sb.String()}
}

func (t TypeTag) writeArgs(sb *strings.Builder) {
	for _, arg := range t.args {
		sb.WriteString(arg.typ.PkgPath())
		sb.WriteByte('.')
		sb.WriteString(arg.typ.String())
		if len(arg.args) > 0 {
			sb.WriteByte('<')
			arg.writeArgs(sb)
			sb.WriteByte('>')
		}
		sb.WriteByte(';')
	}
}
