// Package prefab is the value catalog: for any type it supplies a Tuple of
// ready-made sample values (red, black and a copy of red) such that red and
// black are never equal.
//
// Values come from, in order: caller-supplied values and factories, the
// static table of well-known types, interface bindings, composition from the
// element types of pointers, slices, arrays, maps, channels and functions,
// and finally field-by-field synthesis of unknown structs.
//
// Key types:
//   - TypeTag: a type together with resolved argument types
//   - Tuple: red, black and red-copy values of one TypeTag
//   - Values: the catalog
//   - Factory: a rule that builds a Tuple for a TypeTag
package prefab
