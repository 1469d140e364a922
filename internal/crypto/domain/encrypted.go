package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encrypted holds the nonce and ciphertext produced by an AES-256-GCM seal.
// Its canonical textual form is "<nonce>:<ciphertext>", each segment
// URL-safe, no-padding base64 encoded.
type Encrypted struct {
	Nonce      []byte
	Ciphertext []byte
}

// String renders the canonical "<nonce>:<ciphertext>" form.
func (e Encrypted) String() string {
	return base64.RawURLEncoding.EncodeToString(e.Nonce) + ":" + base64.RawURLEncoding.EncodeToString(e.Ciphertext)
}

// ParseEncrypted parses the canonical "<nonce>:<ciphertext>" form produced
// by Encrypted.String. It requires exactly one separator and two non-empty,
// validly encoded segments.
func ParseEncrypted(s string) (Encrypted, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Encrypted{}, ErrBase64
	}

	nonce, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return Encrypted{}, fmt.Errorf("%w: %w", ErrBase64, err)
	}

	ciphertext, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Encrypted{}, fmt.Errorf("%w: %w", ErrBase64, err)
	}

	return Encrypted{Nonce: nonce, Ciphertext: ciphertext}, nil
}
