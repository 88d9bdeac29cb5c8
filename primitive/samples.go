package primitive

import (
	"reflect"
	"time"
)

// Pair is a red/black couple of distinct sample values of one basic kind.
type Pair struct {
	Red, Black any
}

var samples = map[KindEnum]Pair{
	KindBool:       {true, false},
	KindInt:        {1, 2},
	KindInt8:       {int8(1), int8(2)},
	KindInt16:      {int16(1), int16(2)},
	KindInt32:      {int32(1), int32(2)},
	KindInt64:      {int64(1), int64(2)},
	KindUint:       {uint(1), uint(2)},
	KindUint8:      {uint8(1), uint8(2)},
	KindUint16:     {uint16(1), uint16(2)},
	KindUint32:     {uint32(1), uint32(2)},
	KindUint64:     {uint64(1), uint64(2)},
	KindUintptr:    {uintptr(1), uintptr(2)},
	KindFloat32:    {float32(0.5), float32(1.0)},
	KindFloat64:    {0.5, 1.0},
	KindComplex64:  {complex64(1 + 1i), complex64(2 + 2i)},
	KindComplex128: {1 + 1i, 2 + 2i},
	KindString:     {"one", "two"},
	KindTime: {
		time.Date(2020, time.January, 1, 12, 0, 0, 0, time.UTC),
		time.Date(2021, time.February, 2, 13, 0, 0, 0, time.UTC),
	},
	KindDuration: {time.Second, time.Minute},
}

// Samples returns red and black values converted to rtype.
// The returned values are not addressable.
func Samples(rtype reflect.Type) (red, black reflect.Value, ok bool) {
	kind := FromReflectType(rtype)
	if kind == KindPrimitiveEnum {
		kind = Underlying(rtype)
	}

	pair, ok := samples[kind]
	if !ok {
		return reflect.Value{}, reflect.Value{}, false
	}

	red = reflect.ValueOf(pair.Red)
	black = reflect.ValueOf(pair.Black)
	if red.Type() != rtype {
		red = red.Convert(rtype)
		black = black.Convert(rtype)
	}

	return red, black, true
}
