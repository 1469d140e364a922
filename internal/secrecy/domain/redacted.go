package domain

import "encoding/json"

const redactedPlaceholder = "[REDACTED]"

// Redacted wraps a value whose textual form must never leak into logs, debug
// output, or serialized responses. Every default rendering path — String,
// GoString, and JSON marshaling — yields the literal "[REDACTED]" regardless
// of what T actually holds. The only way to get the real value back out is
// the explicit Expose accessor.
type Redacted[T any] struct {
	value T
}

// NewRedacted wraps value in a Redacted holder.
func NewRedacted[T any](value T) Redacted[T] {
	return Redacted[T]{value: value}
}

// Expose returns the wrapped value. This is the single sanctioned way to read
// a Redacted's contents; every other accessor on this type hides it.
func (r Redacted[T]) Expose() T {
	return r.value
}

// String implements fmt.Stringer and always renders the redaction placeholder.
func (r Redacted[T]) String() string {
	return redactedPlaceholder
}

// GoString implements fmt.GoStringer so that %#v also redacts.
func (r Redacted[T]) GoString() string {
	return redactedPlaceholder
}

// MarshalJSON always serializes to the redaction placeholder string.
func (r Redacted[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(redactedPlaceholder)
}

// UnmarshalJSON reads a T from the wire and rewraps it. The placeholder is
// not treated specially: for a string T, "[REDACTED]" is read back as that
// literal string. A Redacted field is never round-tripped through JSON in
// this service — it exists only to prevent accidental outbound disclosure.
func (r *Redacted[T]) UnmarshalJSON(data []byte) error {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	r.value = value
	return nil
}

// Equal reports whether two Redacted[T] hold equal bytes. Provided instead of
// relying on == because T is frequently []byte, which is not comparable.
func (r Redacted[T]) Equal(other Redacted[T], eq func(a, b T) bool) bool {
	return eq(r.value, other.value)
}

// ZeroBytes zeroizes the wrapped value in place when T is []byte. It is a
// no-op for any other T. Callers that hold a Redacted[[]byte] secret should
// defer this at the point the secret's scope ends.
func (r *Redacted[T]) ZeroBytes() {
	if b, ok := any(r.value).([]byte); ok {
		Zero(b)
	}
}
