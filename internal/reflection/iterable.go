package reflection

import (
	"reflect"
	"sync"
)

type cacheKey struct {
	typ     reflect.Type
	shallow bool
}

var fieldCache sync.Map // map[cacheKey][]Field

// FieldsOf returns the fields of struct type t: first the fields t declares
// itself in declaration order, then the fields promoted from each embedded
// struct, recursively, in embedding order. Blank fields are skipped.
// The returned slice is shared and must not be modified.
func FieldsOf(t reflect.Type) []Field {
	return fields(t, false)
}

// FieldsOfIgnoringEmbedded returns only the fields t declares itself.
func FieldsOfIgnoringEmbedded(t reflect.Type) []Field {
	return fields(t, true)
}

func fields(t reflect.Type, shallow bool) []Field {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	key := cacheKey{typ: t, shallow: shallow}
	if cached, ok := fieldCache.Load(key); ok {
		return cached.([]Field)
	}

	var out []Field
	collect(t, nil, shallow, &out)
	fieldCache.Store(key, out)

	return out
}

func collect(t reflect.Type, prefix []int, shallow bool, out *[]Field) {
	var embedded []int

	for i := range t.NumField() {
		sf := t.Field(i)
		if sf.Name == "_" {
			continue
		}

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			embedded = append(embedded, i)
			continue
		}

		*out = append(*out, Field{
			Name:      sf.Name,
			Type:      sf.Type,
			Declaring: t,
			Tag:       sf.Tag,
			Index:     appendIndex(prefix, i),
		})
	}

	if shallow {
		return
	}

	for _, i := range embedded {
		collect(t.Field(i).Type, appendIndex(prefix, i), false, out)
	}
}

func appendIndex(prefix []int, i int) []int {
	index := make([]int, len(prefix)+1)
	copy(index, prefix)
	index[len(prefix)] = i
	return index
}
