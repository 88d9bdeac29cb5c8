package primitive

import (
	"reflect"
	"time"
)

//go:generate go tool stringer -type=KindEnum -output=kind_string.go

type KindEnum int

const (
	_ KindEnum = iota // skip zero value, use it as a default (invalid) value for KindEnum

	KindBool
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUintptr
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindString
	KindTime
	KindDuration
	KindPrimitiveEnum // named type over any bool, number or string kind

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

func (k KindEnum) IsInteger() bool {
	switch k {
	default:
		return false
	case KindInt, KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint, KindUint8, KindUint16, KindUint32, KindUint64, KindUintptr:
		return true
	}
}

// FromReflectType returns the kind of a basic type, or zero when rtype is not
// one. Named types over a basic kind report KindPrimitiveEnum.
func FromReflectType(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	// check if true primitive type
	switch rtype {
	case reflect.TypeFor[time.Time]():
		return KindTime
	case reflect.TypeFor[time.Duration]():
		return KindDuration
	}

	kind := fromReflectKind(rtype.Kind())
	if kind == 0 {
		return 0
	}

	// predeclared types have no package path
	if rtype.PkgPath() != "" {
		return KindPrimitiveEnum
	}

	return kind
}

// Underlying returns the basic kind behind rtype, looking through named types.
func Underlying(rtype reflect.Type) KindEnum {
	if rtype == nil {
		return 0
	}

	return fromReflectKind(rtype.Kind())
}

func fromReflectKind(kind reflect.Kind) KindEnum {
	switch kind {
	default:
		return 0
	case reflect.Bool:
		return KindBool
	case reflect.Int:
		return KindInt
	case reflect.Int8:
		return KindInt8
	case reflect.Int16:
		return KindInt16
	case reflect.Int32:
		return KindInt32
	case reflect.Int64:
		return KindInt64
	case reflect.Uint:
		return KindUint
	case reflect.Uint8:
		return KindUint8
	case reflect.Uint16:
		return KindUint16
	case reflect.Uint32:
		return KindUint32
	case reflect.Uint64:
		return KindUint64
	case reflect.Uintptr:
		return KindUintptr
	case reflect.Float32:
		return KindFloat32
	case reflect.Float64:
		return KindFloat64
	case reflect.Complex64:
		return KindComplex64
	case reflect.Complex128:
		return KindComplex128
	case reflect.String:
		return KindString
	}
}

// Nilable reports whether a value of rtype can be nil.
func Nilable(rtype reflect.Type) bool {
	switch rtype.Kind() {
	default:
		return false
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	}
}

// IsPrimitive reports whether rtype can never be nil, so its zero value
// is an ordinary member of its domain rather than an absent value.
func IsPrimitive(rtype reflect.Type) bool {
	return !Nilable(rtype)
}
