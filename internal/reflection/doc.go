// Package reflection provides raw, constructor-free access to struct values.
//
// It knows nothing about sample values or contracts. It describes fields
// (Field), enumerates them in a stable order (FieldsOf), reads and writes them
// regardless of export status, and allocates instances without running any
// constructor function (Instantiator).
package reflection
