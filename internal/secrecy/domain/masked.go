package domain

import "encoding/json"

// Masker is implemented by any T that can be partially, safely displayed.
// ApiKey implements it by returning its first three UUID characters plus
// "***" (see client/domain.ApiKey.Mask).
type Masker interface {
	Mask() string
}

// Masked wraps a value that must appear only partially in logs and in
// default JSON responses, but occasionally needs to round-trip in full (for
// example, writing an ApiKey to storage). String, GoString, and the default
// JSON encoding all call T.Mask(), as does ExposeMasked; Expose and
// MarshalFull return the value itself for the few call sites that need it.
type Masked[T Masker] struct {
	value T
}

// NewMasked wraps value in a Masked holder.
func NewMasked[T Masker](value T) Masked[T] {
	return Masked[T]{value: value}
}

// Expose returns the wrapped value in full. Named distinctly from
// ExposeMasked so call sites make an explicit choice between the masked and
// full forms.
func (m Masked[T]) Expose() T {
	return m.value
}

// ExposeMasked returns the masked string form, i.e. what String() renders.
// Kept as a named accessor (rather than relying on fmt) so call sites that
// need the mask are explicit about it.
func (m Masked[T]) ExposeMasked() string {
	return m.value.Mask()
}

// String implements fmt.Stringer, rendering the masked form.
func (m Masked[T]) String() string {
	return m.value.Mask()
}

// GoString implements fmt.GoStringer, rendering the masked form.
func (m Masked[T]) GoString() string {
	return m.value.Mask()
}

// MarshalJSON renders the masked form by default — the safe choice for any
// response or log sink that serializes via encoding/json.
func (m Masked[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.value.Mask())
}

// MarshalFull serializes the full underlying value, bypassing the mask, for
// call sites where the raw value must round-trip through JSON. The
// repositories persist an ApiKey through Expose, not through this method.
func (m Masked[T]) MarshalFull() ([]byte, error) {
	return json.Marshal(m.value)
}

// UnmarshalJSON reads a T from the wire and wraps it.
func (m *Masked[T]) UnmarshalJSON(data []byte) error {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	m.value = value
	return nil
}

// Equal reports whether two Masked[T] wrap equal values.
func (m Masked[T]) Equal(other Masked[T], eq func(a, b T) bool) bool {
	return eq(m.value, other.value)
}
