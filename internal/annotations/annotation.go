// Package annotations answers which fields and types carry a supported
// annotation. Annotations come from struct tags, from //verify: source
// directives indexed by package analyze, and from caller-supplied extras.
package annotations

import (
	"reflect"
	"strings"

	"equals-verifier/internal/common"
	"equals-verifier/internal/reflection"
)

// Annotation is a supported annotation kind.
type Annotation int

const (
	// Nonnull: the field is never nil, so nil probes are skipped. On a type
	// it is the default for all fields the type declares.
	Nonnull Annotation = iota + 1
	// Nullable overrides a type-level Nonnull for one field.
	Nullable
	// Transient: the field must not take part in equality.
	Transient
)

var annotationNames = [...]string{
	Nonnull:   "nonnull",
	Nullable:  "nullable",
	Transient: "transient",
}

func (a Annotation) String() string {
	if a <= 0 || int(a) >= len(annotationNames) {
		return common.UnknownStr
	}

	return annotationNames[a]
}

// ParseAnnotation returns the annotation named s, case-insensitively.
func ParseAnnotation(s string) (Annotation, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a := Nonnull; a <= Transient; a++ {
		if annotationNames[a] == s {
			return a, true
		}
	}

	return 0, false
}

// tagRule maps a struct tag entry to an annotation.
type tagRule struct {
	key   string
	entry string
	ann   Annotation
}

// tagRules lists the struct tags recognized besides the verify tag itself.
var tagRules = []tagRule{
	{key: "gorm", entry: "-", ann: Transient},
	{key: "validate", entry: "required", ann: Nonnull},
	{key: "binding", entry: "required", ann: Nonnull},
}

// fromTag returns the annotations the struct tag declares.
func fromTag(tag reflect.StructTag) []Annotation {
	var out []Annotation

	for _, marker := range reflection.Markers(tag) {
		if a, ok := ParseAnnotation(marker); ok {
			out = append(out, a)
		}
	}

	for _, rule := range tagRules {
		raw, ok := tag.Lookup(rule.key)
		if !ok {
			continue
		}

		for _, entry := range strings.FieldsFunc(raw, isTagSeparator) {
			if strings.TrimSpace(entry) == rule.entry {
				out = append(out, rule.ann)
				break
			}
		}
	}

	return out
}

func isTagSeparator(r rune) bool {
	return r == ',' || r == ';'
}
