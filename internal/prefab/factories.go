package prefab

import (
	"fmt"
	"reflect"

	"equals-verifier/internal/reflection"
)

func kindFactory(kind reflect.Kind) Factory {
	switch kind {
	case reflect.Pointer:
		return FactoryFunc(pointerValues)
	case reflect.Slice:
		return FactoryFunc(sliceValues)
	case reflect.Array:
		return FactoryFunc(arrayValues)
	case reflect.Map:
		return FactoryFunc(mapValues)
	case reflect.Chan:
		return FactoryFunc(chanValues)
	case reflect.Func:
		return FactoryFunc(funcValues)
	case reflect.Struct:
		return FactoryFunc(fallbackValues)
	default:
		return nil
	}
}

func argTag(tag TypeTag, i int, fallback reflect.Type) TypeTag {
	if i < len(tag.args) {
		return tag.args[i]
	}

	return Of(fallback)
}

func pointerValues(tag TypeTag, values *Values, stack TypeStack) (Tuple, error) {
	elem, err := values.Realize(argTag(tag, 0, tag.typ.Elem()), stack)
	if err != nil {
		return Tuple{}, err
	}

	point := func(v reflect.Value) reflect.Value {
		p := reflect.New(tag.typ.Elem())
		p.Elem().Set(v)
		return p
	}

	return Tuple{Red: point(elem.Red), Black: point(elem.Black), RedCopy: point(elem.RedCopy)}, nil
}

func sliceValues(tag TypeTag, values *Values, stack TypeStack) (Tuple, error) {
	elem, err := values.Realize(argTag(tag, 0, tag.typ.Elem()), stack)
	if err != nil {
		return Tuple{}, err
	}

	single := func(v reflect.Value) reflect.Value {
		s := reflect.MakeSlice(tag.typ, 1, 1)
		s.Index(0).Set(v)
		return s
	}

	return Tuple{Red: single(elem.Red), Black: single(elem.Black), RedCopy: single(elem.RedCopy)}, nil
}

func arrayValues(tag TypeTag, values *Values, stack TypeStack) (Tuple, error) {
	elem, err := values.Realize(argTag(tag, 0, tag.typ.Elem()), stack)
	if err != nil {
		return Tuple{}, err
	}

	filled := func(v reflect.Value) reflect.Value {
		a := reflect.New(tag.typ).Elem()
		for i := range a.Len() {
			a.Index(i).Set(v)
		}
		return a
	}

	return Tuple{Red: filled(elem.Red), Black: filled(elem.Black), RedCopy: filled(elem.RedCopy)}, nil
}

func mapValues(tag TypeTag, values *Values, stack TypeStack) (Tuple, error) {
	key, err := values.Realize(argTag(tag, 0, tag.typ.Key()), stack)
	if err != nil {
		return Tuple{}, err
	}

	elem, err := values.Realize(argTag(tag, 1, tag.typ.Elem()), stack)
	if err != nil {
		return Tuple{}, err
	}

	single := func(k, v reflect.Value) reflect.Value {
		m := reflect.MakeMapWithSize(tag.typ, 1)
		m.SetMapIndex(k, v)
		return m
	}

	return Tuple{
		Red:     single(key.Red, elem.Red),
		Black:   single(key.Black, elem.Black),
		RedCopy: single(key.RedCopy, elem.RedCopy),
	}, nil
}

func chanValues(tag TypeTag, _ *Values, _ TypeStack) (Tuple, error) {
	both := reflect.ChanOf(reflect.BothDir, tag.typ.Elem())

	red := reflect.MakeChan(both, 0).Convert(tag.typ)
	black := reflect.MakeChan(both, 0).Convert(tag.typ)

	return Tuple{Red: red, Black: black, RedCopy: red}, nil
}

func funcValues(tag TypeTag, _ *Values, _ TypeStack) (Tuple, error) {
	t := tag.typ
	zeros := func([]reflect.Value) []reflect.Value {
		out := make([]reflect.Value, t.NumOut())
		for i := range out {
			out[i] = reflect.Zero(t.Out(i))
		}
		return out
	}

	red := reflect.MakeFunc(t, zeros)
	black := reflect.MakeFunc(t, zeros)

	return Tuple{Red: red, Black: black, RedCopy: red}, nil
}

// fallbackValues synthesizes three instances of an unknown struct without
// calling any constructor and fills every field with its own sample values.
func fallbackValues(tag TypeTag, values *Values, stack TypeStack) (Tuple, error) {
	inst, err := reflection.InstantiatorOf(tag.typ)
	if err != nil {
		return Tuple{}, err
	}

	values.logger.Debug("synthesizing fallback values", "type", tag.String())

	red := inst.Instantiate().Elem()
	black := inst.Instantiate().Elem()
	redCopy := inst.Instantiate().Elem()

	for _, field := range reflection.FieldsOf(tag.typ) {
		tuple, err := values.Realize(FieldTag(field.Type, tag), stack)
		if err != nil {
			return Tuple{}, fmt.Errorf("field %s: %w", field, err)
		}

		field.Value(red).Set(tuple.Red)
		field.Value(black).Set(tuple.Black)
		field.Value(redCopy).Set(tuple.RedCopy)
	}

	return Tuple{Red: red, Black: black, RedCopy: redCopy}, nil
}
