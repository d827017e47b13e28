package domain

import (
	"encoding/json"
)

// Field is an optional value in a partial update. Set records whether the
// caller supplied the field at all; Value is only meaningful when Set is true.
// For pointer types a supplied JSON null yields Set == true and a nil Value,
// which callers treat as "clear this field".
type Field[T any] struct {
	Value T
	Set   bool
}

// Some returns a supplied Field holding v.
func Some[T any](v T) Field[T] {
	return Field[T]{Value: v, Set: true}
}

// Get returns the value and whether it was supplied.
func (f Field[T]) Get() (T, bool) {
	return f.Value, f.Set
}

// Apply writes the value into dst when the field was supplied.
func (f Field[T]) Apply(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}

// UnmarshalJSON marks the field as supplied and decodes the value.
// encoding/json only calls this for keys present in the document.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON encodes the value, or null when the field was not supplied.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
