package plantree

import (
	"encoding/json"
	"strings"
)

// Field is a JSON value that remembers whether it was present in the payload and whether it
// was an explicit null. Absent means "keep", null means "clear", a value means "set".
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a Field carrying v.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a Field that explicitly clears the attribute.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		var zero T
		f.Null = true
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// Ptr resolves the field against the current value of a nullable attribute.
func (f Field[T]) Ptr(current *T) *T {
	if !f.Set {
		return current
	}
	if f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// Or resolves the field against the current value of a required attribute. Null keeps the
// current value since required attributes cannot be cleared.
func (f Field[T]) Or(current T) T {
	if !f.Set || f.Null {
		return current
	}
	return f.Value
}

// Boolish is a completion flag that accepts a JSON boolean or the strings "true"/"false".
// Any other representation leaves it unset.
type Boolish struct {
	Set   bool
	Value bool
}

// BoolOf returns a Boolish carrying v.
func BoolOf(v bool) Boolish {
	return Boolish{Set: true, Value: v}
}

func (b *Boolish) UnmarshalJSON(data []byte) error {
	*b = Boolish{}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	switch v := raw.(type) {
	case bool:
		*b = BoolOf(v)
	case string:
		if parsed, ok := ParseBoolish(v); ok {
			*b = BoolOf(parsed)
		}
	}
	return nil
}

// ParseBoolish parses the literal strings "true" and "false" (as sent by form encoded clients).
func ParseBoolish(s string) (value bool, ok bool) {
	switch strings.TrimSpace(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
