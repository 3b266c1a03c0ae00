// Package types provides nullable type implementations for handling optional values.
package types

import (
	"bytes"
	"encoding/json"
)

// Nullable defines the interface for types that can represent null/nil values.
// Types implementing this interface can distinguish between a zero value and a null value,
// which is useful for JSON serialization where null has semantic meaning.
type Nullable interface {
	// IsNil returns true if the value is null/nil, false otherwise.
	// This allows distinguishing between a zero value and an explicitly null value.
	IsNil() bool
}

var jsonNull = []byte("null")

// Null is a generic nullable value. A Null[T] with Valid set to false
// serializes to JSON null, which matters for PATCH payloads where sending
// null clears a field and omitting it leaves the field unchanged.
type Null[T any] struct {
	Value T
	Valid bool
}

// From creates a valid Null[T] holding the given value.
func From[T any](v T) Null[T] {
	return Null[T]{Value: v, Valid: true}
}

// NullOf creates a Null[T] representing JSON null.
func NullOf[T any]() Null[T] {
	return Null[T]{}
}

// FromPtr returns a valid Null[T] by pointer, for optional payload fields
// where a nil pointer means the field is omitted entirely.
func FromPtr[T any](v T) *Null[T] {
	n := From(v)
	return &n
}

// NullPtr returns an explicit-null Null[T] by pointer.
func NullPtr[T any]() *Null[T] {
	n := NullOf[T]()
	return &n
}

// IsNil returns true if the value represents null.
func (n Null[T]) IsNil() bool {
	return !n.Valid
}

// Get returns the held value and whether it is valid.
func (n Null[T]) Get() (T, bool) {
	return n.Value, n.Valid
}

// Set assigns a value and marks it valid.
func (n *Null[T]) Set(v T) {
	n.Value = v
	n.Valid = true
}

// Clear marks the value as null.
func (n *Null[T]) Clear() {
	var zero T
	n.Value = zero
	n.Valid = false
}

// MarshalJSON implements json.Marshaler. Invalid values marshal to null.
func (n Null[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON implements json.Unmarshaler. A JSON null yields an invalid value.
func (n *Null[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		n.Clear()
		return nil
	}
	if err := json.Unmarshal(data, &n.Value); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

var _ Nullable = Null[string]{}
var _ json.Marshaler = Null[string]{}
var _ json.Unmarshaler = (*Null[string])(nil)
