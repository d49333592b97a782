package flux

import "fmt"

// Value is a type-erased carrier for a single key or field value. It is
// used wherever the engine must hold or pass around a value without
// knowing its static type ahead of time -- crossing domain and field
// type boundaries during propagation and relation-path resolution.
//
// A zero Value is empty.
type Value struct {
	data    any
	present bool
}

// NewValue wraps v as a present Value.
func NewValue(v any) Value {
	return Value{data: v, present: true}
}

// EmptyValue returns the empty sentinel.
func EmptyValue() Value {
	return Value{}
}

// IsEmpty reports whether the value carries nothing.
func (v Value) IsEmpty() bool {
	return !v.present
}

// Raw returns the wrapped value and whether one is present.
func (v Value) Raw() (any, bool) {
	return v.data, v.present
}

// TypeMismatchError indicates a Value held a different type than the
// caller requested. Per the error taxonomy, this is a fatal structural
// bug (a dependency field registered with the wrong type), not a
// recoverable condition.
type TypeMismatchError struct {
	Want any
	Got  any
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("flux: type mismatch: want %T, got %T", e.Want, e.Got)
}

// ValueAs extracts the value of type T from v. It panics with a
// *TypeMismatchError if v is present but not of type T; an empty Value
// yields the zero T and ok == false.
func ValueAs[T any](v Value) (T, bool) {
	var zero T
	if !v.present {
		return zero, false
	}
	typed, ok := v.data.(T)
	if !ok {
		panic(&TypeMismatchError{Want: zero, Got: v.data})
	}
	return typed, true
}
