package valueobjects

import (
	"bytes"
	"encoding/json"
)

// Field representa um campo de PATCH distinguindo três estados:
// ausente do payload, enviado como null e enviado com valor.
type Field[T any] struct {
	present bool
	null    bool
	value   T
}

// Set cria um Field com valor
func Set[T any](v T) Field[T] {
	return Field[T]{present: true, value: v}
}

// Null cria um Field explicitamente nulo
func Null[T any]() Field[T] {
	return Field[T]{present: true, null: true}
}

// IsPresent informa se o campo veio no payload (inclusive como null)
func (f Field[T]) IsPresent() bool {
	return f.present
}

// IsNull informa se o campo veio como null
func (f Field[T]) IsNull() bool {
	return f.present && f.null
}

// Get retorna o valor quando presente e não nulo
func (f Field[T]) Get() (T, bool) {
	if !f.present || f.null {
		var zero T
		return zero, false
	}
	return f.value, true
}

// Ptr retorna nil para null e ponteiro para o valor caso contrário
func (f Field[T]) Ptr() *T {
	if v, ok := f.Get(); ok {
		return &v
	}
	return nil
}

// UnmarshalJSON só é chamado quando a chave existe no JSON
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.present = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.null = true
		return nil
	}
	f.null = false
	return json.Unmarshal(data, &f.value)
}

// MarshalJSON serializa null ou o valor
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if v, ok := f.Get(); ok {
		return json.Marshal(v)
	}
	return []byte("null"), nil
}

// ValidationValue expõe o valor ao validator; ausente e null viram nil
func (f Field[T]) ValidationValue() interface{} {
	if v, ok := f.Get(); ok {
		return v
	}
	return nil
}
