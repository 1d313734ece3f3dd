package model

import "encoding/json"

// Nullable is a JSON field that can be absent, null, or hold a value.
// Set is true whenever the key was present in the document.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Null returns a present-but-null field.
func Null[T any]() Nullable[T] { return Nullable[T]{Set: true} }

// Some returns a present field holding v.
func Some[T any](v T) Nullable[T] { return Nullable[T]{Set: true, Value: &v} }

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if string(data) == "null" {
		n.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	n.Value = &v
	return nil
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*n.Value)
}
