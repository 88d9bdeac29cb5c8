package contract

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"runtime"
	"strings"

	"equals-verifier/internal/reflection"
	"equals-verifier/primitive"
)

var (
	ErrNoCachedHashField    = errors.New("cached hash field not found or not an integer")
	ErrCalculatorIsNotAFunc = errors.New("provided hash calculator is not a function")
	ErrIsNotACalculator     = errors.New("provided function is not a recognizable hash calculator")
)

// HashInitializer computes the hash of an object, preparing any state the
// hash method expects to be initialized first.
type HashInitializer interface {
	InitializedHashCode(obj reflect.Value) int64
}

// Calculator is a parsed hash calculation function.
type Calculator struct {
	fn        reflect.Value
	Param     reflect.Type
	Name      string
	onPointer bool
}

// ParseCalculator inspects fn and returns a Calculator for type t.
//
// Supports:
//   - func(obj T) <integer>
//   - func(obj *T) <integer>
func ParseCalculator(t reflect.Type, fn any) (Calculator, error) {
	fnVal := reflect.ValueOf(fn)
	if !fnVal.IsValid() || fnVal.Kind() != reflect.Func || fnVal.IsNil() {
		return Calculator{}, ErrCalculatorIsNotAFunc
	}

	fnType := fnVal.Type()
	if fnType.NumIn() != 1 || fnType.NumOut() != 1 || !primitive.Underlying(fnType.Out(0)).IsInteger() {
		return Calculator{}, ErrIsNotACalculator
	}

	param := fnType.In(0)
	calc := Calculator{fn: fnVal, Param: param, Name: funcName(fnVal)}

	switch param {
	case t:
	case reflect.PointerTo(t):
		calc.onPointer = true
	default:
		return Calculator{}, fmt.Errorf("%w: expects %s, got %s", ErrIsNotACalculator, t, param)
	}

	return calc, nil
}

func funcName(fn reflect.Value) string {
	pc := runtime.FuncForPC(fn.Pointer())
	if pc == nil {
		return "func"
	}

	_, name := path.Split(pc.Name())
	return strings.TrimSuffix(name, "-fm")
}

// Calculate applies the calculator to obj, a *T.
func (c Calculator) Calculate(obj reflect.Value) int64 {
	if !c.onPointer {
		obj = obj.Elem()
	}

	return asInt64(c.fn.Call([]reflect.Value{obj})[0])
}

// CachedHash serves types that memoize their hash in a field. Before the
// hash method runs, the field is recomputed with the calculator so that the
// memoized value always reflects the current state of the object.
type CachedHash struct {
	contract   *Contract
	field      reflection.Field
	calculator Calculator
}

// NewCachedHash returns a CachedHash for the integer field named fieldName.
// calculate is accepted in the shapes listed by ParseCalculator.
func NewCachedHash(c *Contract, fieldName string, calculate any) (*CachedHash, error) {
	calc, err := ParseCalculator(c.Type(), calculate)
	if err != nil {
		return nil, err
	}

	for _, f := range reflection.FieldsOf(c.Type()) {
		if f.Name == fieldName && primitive.Underlying(f.Type).IsInteger() {
			return &CachedHash{contract: c, field: f, calculator: calc}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s.%s", ErrNoCachedHashField, c.Type(), fieldName)
}

// FieldName returns the name of the memoizing field.
func (h *CachedHash) FieldName() string {
	return h.field.Name
}

// InitializedHashCode recomputes the cached field of obj and returns its hash.
func (h *CachedHash) InitializedHashCode(obj reflect.Value) int64 {
	value := h.calculator.Calculate(obj)

	target := h.field.Value(obj)
	if target.CanInt() {
		target.SetInt(value)
	} else {
		target.SetUint(uint64(value))
	}

	return h.contract.Hash(obj)
}

func asInt64(v reflect.Value) int64 {
	if v.CanInt() {
		return v.Int()
	}

	return int64(v.Uint())
}
