package annotations

import "equals-verifier/internal/reflection"

// FieldIsNonnull reports whether field is declared non-nil, either directly
// or through a Nonnull default on the struct that declares it. A Nullable
// field is never non-nil.
func FieldIsNonnull(field reflection.Field, cache *Cache) bool {
	if field.Declaring == nil {
		return false
	}

	if cache.HasFieldAnnotation(field.Declaring, field.Name, Nonnull) {
		return true
	}

	if cache.HasFieldAnnotation(field.Declaring, field.Name, Nullable) {
		return false
	}

	return cache.HasTypeAnnotation(field.Declaring, Nonnull)
}

