package domain

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	secrecy "github.com/allisson/signvault/internal/secrecy/domain"
)

const aes256KeySize = 32

// ErrInvalidKeyLength indicates a key string decoded to something other than
// 32 bytes. It wraps ErrBase64, so it also matches errors.Is(err, ErrBase64).
var ErrInvalidKeyLength = fmt.Errorf("invalid key length: %w", ErrBase64)

// Aes256Key is a 32-byte AES-256-GCM key. Its bytes are held behind a
// Redacted wrapper so a stray %v or JSON marshal never leaks key material.
type Aes256Key struct {
	key secrecy.Redacted[[]byte]
}

// GenerateAes256Key produces a fresh random 256-bit key, e.g. for a
// per-secret data key in the envelope encryption hierarchy.
func GenerateAes256Key() (Aes256Key, error) {
	raw := make([]byte, aes256KeySize)
	if _, err := rand.Read(raw); err != nil {
		return Aes256Key{}, fmt.Errorf("%w: %w", ErrAeadFailure, err)
	}
	return Aes256Key{key: secrecy.NewRedacted(raw)}, nil
}

// Aes256KeyFromString decodes a URL-safe-no-pad base64 string into a
// 256-bit key, e.g. the static master key loaded at startup.
func Aes256KeyFromString(s string) (Aes256Key, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return Aes256Key{}, fmt.Errorf("%w: %w", ErrBase64, err)
	}
	if len(raw) != aes256KeySize {
		return Aes256Key{}, fmt.Errorf("%w: key must be %d bytes, got %d", ErrInvalidKeyLength, aes256KeySize, len(raw))
	}
	return Aes256Key{key: secrecy.NewRedacted(raw)}, nil
}

// String renders the key as URL-safe-no-pad base64. Used only to persist a
// freshly generated key (e.g. writing out a new master key); the value is
// otherwise kept behind Redacted.
func (k Aes256Key) String() string {
	return base64.RawURLEncoding.EncodeToString(k.key.Expose())
}

// Zero overwrites the underlying key bytes in place. Callers should defer
// this once the key's scope ends.
func (k *Aes256Key) Zero() {
	k.key.ZeroBytes()
}

func (k Aes256Key) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(k.key.Expose())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAeadFailure, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAeadFailure, err)
	}
	return gcm, nil
}

// Encrypt seals plaintext with a freshly generated random nonce.
func (k Aes256Key) Encrypt(plaintext string) (Encrypted, error) {
	gcm, err := k.gcm()
	if err != nil {
		return Encrypted{}, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return Encrypted{}, fmt.Errorf("%w: %w", ErrAeadFailure, err)
	}

	ciphertext := gcm.Seal(nil, nonce, []byte(plaintext), nil)
	return Encrypted{Nonce: nonce, Ciphertext: ciphertext}, nil
}

// Decrypt opens an Encrypted value and validates the recovered plaintext is
// valid UTF-8.
func (k Aes256Key) Decrypt(e Encrypted) (string, error) {
	gcm, err := k.gcm()
	if err != nil {
		return "", err
	}

	plaintext, err := gcm.Open(nil, e.Nonce, e.Ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAeadFailure, err)
	}

	if !utf8.Valid(plaintext) {
		return "", ErrUtf8
	}

	return string(plaintext), nil
}
