package common

import (
	"path"
	"reflect"
	"strings"
)

// UnknownStr is the display name used for unrecognized enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// BaseName returns the declared name of t without type arguments,
// e.g. "Pair" for Pair[string,int].
func BaseName(t reflect.Type) string {
	name := t.Name()
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		return name[:idx]
	}

	return name
}

// SimpleName returns a short "alias.Name" form of t for messages.
func SimpleName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}

	return PkgAlias(t.PkgPath()) + "." + t.Name()
}
