// Package optional provides an explicit "maybe" wrapper for scalar
// configuration fields, so that an unset value is distinguishable from an
// explicit zero.
package optional

import (
	"encoding/json"
	"fmt"
)

// Value holds a T that may be absent.
// The zero Value is absent. Values are comparable with == as long as T is.
type Value[T comparable] struct {
	v   T
	set bool
}

// Of returns a present value.
func Of[T comparable](v T) Value[T] {
	return Value[T]{v: v, set: true}
}

// None returns an absent value.
func None[T comparable]() Value[T] {
	return Value[T]{}
}

// FromPtr converts a nullable pointer (as produced by decoders) into a Value.
func FromPtr[T comparable](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}
	return Of(*p)
}

// Get returns the wrapped value and whether it is present.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.set
}

// IsSet reports whether the value is present.
func (o Value[T]) IsSet() bool {
	return o.set
}

// OrElse returns the wrapped value, or def when absent.
func (o Value[T]) OrElse(def T) T {
	if !o.set {
		return def
	}
	return o.v
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Value[T]) Ptr() *T {
	if !o.set {
		return nil
	}
	v := o.v
	return &v
}

// String renders the value, or "null" when absent.
func (o Value[T]) String() string {
	if !o.set {
		return "null"
	}
	return fmt.Sprint(o.v)
}

// MarshalJSON emits null for an absent value.
func (o Value[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// UnmarshalJSON treats null as absent.
func (o *Value[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Of(v)
	return nil
}
