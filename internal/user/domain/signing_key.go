package domain

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"fmt"

	cryptodomain "github.com/allisson/signvault/internal/crypto/domain"
)

const rsaKeyBits = 2048

// SigningKey is a user's RSA-2048 signing identity. It lives in memory only
// during generation and immediately after an envelope decryption for
// signing; it is never persisted in the clear.
type SigningKey struct {
	private *rsa.PrivateKey
}

// GenerateSigningKey draws a fresh RSA-2048 private key from the OS RNG.
func GenerateSigningKey() (SigningKey, error) {
	private, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return SigningKey{}, fmt.Errorf("%w: %w", cryptodomain.ErrRsa, err)
	}
	return SigningKey{private: private}, nil
}

// PublicKeyPEM PEM-encodes the public key as PKCS#8/PKIX SPKI with LF line
// endings (pem.Encode already emits LF only).
func (k SigningKey) PublicKeyPEM() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(&k.private.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptodomain.ErrRsaPkcs8Spki, err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// PrivateKeyPEM serializes the private key as PKCS#8 PEM with LF line
// endings.
func (k SigningKey) PrivateKeyPEM() ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(k.private)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cryptodomain.ErrRsaPkcs8, err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// SigningKeyFromPrivateKeyPEM parses a PKCS#8 PEM private key.
func SigningKeyFromPrivateKeyPEM(pemBytes []byte) (SigningKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return SigningKey{}, cryptodomain.ErrRsaPkcs8
	}

	key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return SigningKey{}, fmt.Errorf("%w: %w", cryptodomain.ErrRsaPkcs8, err)
	}

	private, ok := key.(*rsa.PrivateKey)
	if !ok {
		return SigningKey{}, cryptodomain.ErrRsaPkcs8
	}

	return SigningKey{private: private}, nil
}

// SignMessage produces a PKCS#1 v1.5 SHA-256 signature over message,
// rendered as a hex string. The signature is opaque to callers — only the
// round trip through VerifySignature is guaranteed.
func (k SigningKey) SignMessage(message string) (string, error) {
	digest := sha256.Sum256([]byte(message))
	signature, err := rsa.SignPKCS1v15(rand.Reader, k.private, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("%w: %w", cryptodomain.ErrRsa, err)
	}
	return hex.EncodeToString(signature), nil
}

// VerifySignature verifies a hex-encoded PKCS#1 v1.5 SHA-256 signature
// produced by SignMessage, given the corresponding PKIX public key PEM.
func VerifySignature(publicKeyPEM []byte, message, signature string) error {
	block, _ := pem.Decode(publicKeyPEM)
	if block == nil {
		return cryptodomain.ErrRsaPkcs8Spki
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return fmt.Errorf("%w: %w", cryptodomain.ErrRsaPkcs8Spki, err)
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return cryptodomain.ErrRsaPkcs8Spki
	}

	sig, err := hex.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("%w: %w", cryptodomain.ErrRsa, err)
	}

	digest := sha256.Sum256([]byte(message))
	if err := rsa.VerifyPKCS1v15(rsaPub, crypto.SHA256, digest[:], sig); err != nil {
		return fmt.Errorf("%w: %w", cryptodomain.ErrRsa, err)
	}

	return nil
}
