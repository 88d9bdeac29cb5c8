// Package accessor reads, writes, copies and scrambles the fields of
// synthesized instances without calling any constructor or method of the
// type they belong to.
//
// A FieldAccessor pairs one object with one field; an ObjectAccessor owns a
// whole instance. Both work on pointers to structs so that every mutation
// happens in place with a single reflect.Value.Set.
package accessor
