// Package domain defines the envelope cipher primitives used by the custodial
// signing service: a static master key and per-secret AES-256-GCM
// encryption, plus the error kinds shared with the RSA-2048 signing
// identities defined in internal/user/domain.
package domain

import (
	"github.com/allisson/signvault/internal/errors"
)

// Cryptographic operation errors.
var (
	// ErrInvalidSignature indicates an HMAC signature did not match the
	// canonical request message.
	ErrInvalidSignature = errors.Wrap(errors.ErrUnauthorized, "invalid signature")

	// ErrBase64 indicates a ciphertext or key string was not valid
	// URL-safe-no-pad base64, or did not split into exactly a nonce and a
	// ciphertext segment. Never the caller's fault — surfaces as 500, not
	// 422, since the only source of this string is prior encryption or
	// storage, both internal.
	ErrBase64 = errors.Wrap(errors.ErrInternal, "invalid base64 encoding")

	// ErrAeadFailure indicates AES-256-GCM seal or open failed — most
	// commonly a tampered or truncated ciphertext on decrypt. Surfaces as
	// 500: a failing AEAD tag on stored ciphertext is a data-integrity
	// fault, not bad caller input.
	ErrAeadFailure = errors.Wrap(errors.ErrInternal, "aead seal/open failed")

	// ErrUtf8 indicates decrypted plaintext bytes were not valid UTF-8.
	// Surfaces as 500 for the same reason as ErrAeadFailure.
	ErrUtf8 = errors.Wrap(errors.ErrInternal, "plaintext is not valid utf-8")

	// ErrRsa indicates an RSA key generation or PKCS#1 v1.5 sign operation
	// failed. Surfaces as 500.
	ErrRsa = errors.Wrap(errors.ErrInternal, "rsa operation failed")

	// ErrRsaPkcs8 indicates a PKCS#8 PEM private key failed to parse.
	// Surfaces as 500.
	ErrRsaPkcs8 = errors.Wrap(errors.ErrInternal, "invalid pkcs#8 private key")

	// ErrRsaPkcs8Spki indicates a PKIX PEM public key failed to parse.
	// Surfaces as 500.
	ErrRsaPkcs8Spki = errors.Wrap(errors.ErrInternal, "invalid pkix public key")

	// ErrEnv indicates the master key file named by the environment could
	// not be read or did not hold a valid key. Fatal at
	// process startup, never reaches HandleErrorGin.
	ErrEnv = errors.Wrap(errors.ErrInternal, "invalid environment configuration")
)
