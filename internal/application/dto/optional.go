package dto

import "encoding/json"

// Optional distingue en un payload parcial un campo ausente, presente con valor
// y presente con null. Solo los campos presentes se aplican en un PATCH.
type Optional[T any] struct {
	Value T
	Set   bool
	Null  bool
}

// Some construye un Optional presente con valor.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// UnmarshalJSON solo se invoca cuando la clave aparece en el JSON, incluido null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		var zero T
		o.Value = zero
		o.Null = true
		return nil
	}
	o.Null = false
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON emite null cuando el campo no tiene valor.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Get devuelve el valor y si debe aplicarse.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set && !o.Null
}

// IsNull informa si el campo llegó explícitamente como null.
func (o Optional[T]) IsNull() bool {
	return o.Set && o.Null
}

// ValidationValue expone el valor al validador como puntero, de modo que `omitempty`
// solo omita los campos ausentes y no los presentes con valor cero ("" o 0).
func (o Optional[T]) ValidationValue() any {
	if v, ok := o.Get(); ok {
		return &v
	}
	return nil
}
