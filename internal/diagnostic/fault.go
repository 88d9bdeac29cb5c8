package diagnostic

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// FaultKind classifies a recovered panic.
type FaultKind int

const (
	FaultOther FaultKind = iota
	FaultNilDereference
	FaultTypeAssertion
)

// Fault is a panic recovered from a probed method.
type Fault struct {
	// Value is what recover returned.
	Value any
}

// Capture runs fn and returns the recovered panic, or nil when fn returns normally.
func Capture(fn func()) (fault *Fault) {
	defer func() {
		if r := recover(); r != nil {
			fault = &Fault{Value: r}
		}
	}()

	fn()
	return nil
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if err, ok := f.Value.(error); ok {
		return err.Error()
	}

	return fmt.Sprintf("panic: %v", f.Value)
}

// Unwrap returns the panic value when it is an error.
func (f *Fault) Unwrap() error {
	err, _ := f.Value.(error)
	return err
}

// TypeName returns the dynamic type of the panic value.
func (f *Fault) TypeName() string {
	return fmt.Sprintf("%T", f.Value)
}

// Kind classifies the panic.
func (f *Fault) Kind() FaultKind {
	err, ok := f.Value.(error)
	if !ok {
		return FaultOther
	}

	var assertion *runtime.TypeAssertionError
	if errors.As(err, &assertion) {
		return FaultTypeAssertion
	}

	var rt runtime.Error
	if errors.As(err, &rt) && strings.Contains(rt.Error(), "nil pointer dereference") {
		return FaultNilDereference
	}

	return FaultOther
}
