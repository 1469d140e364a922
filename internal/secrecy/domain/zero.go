// Package domain provides generic secret-hygiene wrappers used throughout the
// custodial signing service: Redacted, which hides a value behind the literal
// "[REDACTED]" in every textual or JSON form, and Masked, which renders a
// caller-supplied partial view instead.
package domain

// Zero overwrites a byte slice with zeros in place. Used to best-effort scrub
// key material and other secret bytes once their scope ends; Go has no
// destructors, so callers must call this explicitly (see DESIGN.md).
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
