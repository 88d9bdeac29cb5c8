// Package options lists the warnings a verification run can suppress.
package options

import (
	"fmt"
	"strings"
)

// WarningEnum is a set of suppressed warnings.
type WarningEnum int

const (
	WarningNullFields WarningEnum = 1 << iota
	WarningTransientFields
	WarningStrictHashcode
	WarningAllFieldsShouldBeUsed
	WarningIdentityEquals
	WarningStrictInheritance

	WarningAll  WarningEnum = (1 << iota) - 1 // all warnings combined
	WarningNone WarningEnum = 0               // nothing suppressed
)

var warningNames = []struct {
	warning     WarningEnum
	name        string
	description string
}{
	{WarningNullFields, "null_fields", "fields may be nil without Equal or Hash panicking"},
	{WarningTransientFields, "transient_fields", "transient fields may take part in Equal"},
	{WarningStrictHashcode, "strict_hashcode", "Equal may use a field that Hash ignores"},
	{WarningAllFieldsShouldBeUsed, "all_fields_should_be_used", "Equal may ignore a non-transient field"},
	{WarningIdentityEquals, "identity_equals", "an object need not equal an identical copy of itself"},
	{WarningStrictInheritance, "strict_inheritance", "subtypes and variants are not probed"},
}

// AllWarnings returns every single warning in declaration order.
func AllWarnings() []WarningEnum {
	out := make([]WarningEnum, len(warningNames))
	for i, entry := range warningNames {
		out[i] = entry.warning
	}

	return out
}

// Description explains what suppressing a single warning allows.
func (w WarningEnum) Description() string {
	for _, entry := range warningNames {
		if entry.warning == w {
			return entry.description
		}
	}

	return ""
}

// Has reports whether all warnings of other are in w.
func (w WarningEnum) Has(other WarningEnum) bool {
	return other != WarningNone && w&other == other
}

// String lists the names of the warnings in w joined by "|".
func (w WarningEnum) String() string {
	if w == WarningNone {
		return "none"
	}

	var names []string
	for _, entry := range warningNames {
		if w.Has(entry.warning) {
			names = append(names, entry.name)
		}
	}

	if rest := w &^ WarningAll; rest != 0 {
		names = append(names, fmt.Sprintf("WarningEnum(%d)", int(rest)))
	}

	return strings.Join(names, "|")
}

// ParseWarning accepts a warning name in snake, kebab or upper case,
// e.g. "null_fields", "null-fields" or "NULL_FIELDS", and "all".
func ParseWarning(s string) (WarningEnum, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if norm == "all" {
		return WarningAll, nil
	}

	for _, entry := range warningNames {
		if entry.name == norm {
			return entry.warning, nil
		}
	}

	return WarningNone, fmt.Errorf("unknown warning %q", s)
}

// ParseWarnings combines several warning names.
func ParseWarnings(names ...string) (WarningEnum, error) {
	var out WarningEnum

	for _, name := range names {
		w, err := ParseWarning(name)
		if err != nil {
			return WarningNone, err
		}
		out |= w
	}

	return out, nil
}
