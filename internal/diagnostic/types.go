package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Category -linecomment -output=category_string.go

// Category identifies the kind of contract violation a Failure reports.
// String returns the display name.
type Category int

const (
	CategoryUnknown Category = iota // unknown
	// CategoryNullDereference: Equal or Hash dereferences a nil field.
	CategoryNullDereference // Non-nullity
	// CategoryAbstractDelegation: Equal or Hash calls through a nil interface or func field.
	CategoryAbstractDelegation // Abstract delegation
	// CategoryTypeMismatch: a type assertion failed while comparing.
	CategoryTypeMismatch // Generics
	// CategoryOtherFault: any other panic raised by Equal or Hash.
	CategoryOtherFault // Unexpected panic
	// CategoryContractViolation: a field marked transient changes the outcome of Equal.
	CategoryContractViolation // Transient field
	// CategoryReflexivity: an object is not equal to itself or to a copy of itself.
	CategoryReflexivity // Reflexivity
	// CategorySignificance: Equal and Hash disagree on whether a field matters.
	CategorySignificance // Significant fields
	// CategoryHashConsistency: equal objects have different hashes.
	CategoryHashConsistency // Hash
	// CategorySymmetry: a.Equal(b) differs from b.Equal(a).
	CategorySymmetry // Symmetry
	// CategorySignature: the type has no usable Equal or Hash method.
	CategorySignature // Signature
	// CategoryPrecondition: the run could not synthesize the values it needs.
	CategoryPrecondition // Precondition
)

// Code returns a stable identifier for the category.
func (c Category) Code() string {
	switch c {
	case CategoryNullDereference:
		return "NULL_DEREFERENCE"
	case CategoryAbstractDelegation:
		return "ABSTRACT_DELEGATION"
	case CategoryTypeMismatch:
		return "TYPE_MISMATCH"
	case CategoryOtherFault:
		return "OTHER_FAULT"
	case CategoryContractViolation:
		return "CONTRACT_VIOLATION"
	case CategoryReflexivity:
		return "REFLEXIVITY"
	case CategorySignificance:
		return "SIGNIFICANCE"
	case CategoryHashConsistency:
		return "HASH_CONSISTENCY"
	case CategorySymmetry:
		return "SYMMETRY"
	case CategorySignature:
		return "SIGNATURE"
	case CategoryPrecondition:
		return "PRECONDITION"
	default:
		return "UNKNOWN"
	}
}

// Failure is a categorized verification failure.
type Failure struct {
	// Category classifies the violation.
	Category Category
	// Message is the human-readable description.
	Message string
	// TypeName names the type under test (if known).
	TypeName string
	// Field names the offending field (if any).
	Field string
	// Cause is the originating fault, if any.
	Cause error
}

// Fail builds a Failure from a formatted message.
func Fail(category Category, field string, f Formatter, cause error) *Failure {
	return &Failure{
		Category: category,
		Message:  f.Format(),
		Field:    field,
		Cause:    cause,
	}
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return f.String()
}

// Unwrap returns the originating fault.
func (f *Failure) Unwrap() error {
	return f.Cause
}

// WithType returns a copy of f attributed to typeName.
func (f *Failure) WithType(typeName string) *Failure {
	out := *f
	out.TypeName = typeName
	return &out
}

// String returns a formatted failure string.
func (f *Failure) String() string {
	var prefix []string
	if f.TypeName != "" {
		prefix = append(prefix, "["+f.TypeName+"]")
	}

	msg := fmt.Sprintf("%s: %s", f.Category, f.Message)
	if len(prefix) > 0 {
		msg = strings.Join(prefix, " ") + " " + msg
	}

	if f.Cause != nil {
		msg += " (cause: " + f.Cause.Error() + ")"
	}

	return msg
}

// AsFailure extracts a *Failure from err's chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}

	return nil, false
}
