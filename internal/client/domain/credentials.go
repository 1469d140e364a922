package domain

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	cryptodomain "github.com/allisson/signvault/internal/crypto/domain"
	secrecy "github.com/allisson/signvault/internal/secrecy/domain"
)

// Credentials is a client's API key plus its HMAC shared secret, held in
// memory only during generation and immediately after decryption.
type Credentials struct {
	ApiKey secrecy.Masked[ApiKey]
	Secret secrecy.Redacted[string]
}

// EncryptedCredentials is the persisted form of Credentials: the api_key in
// the clear (it is a public identifier) plus the secret and its data key,
// both envelope-encrypted under the master key.
type EncryptedCredentials struct {
	ApiKey           secrecy.Masked[ApiKey]
	EncryptedSecret  string
	EncryptedDataKey string
}

// GenerateCredentials draws a fresh 32-byte random secret (encoded as the
// HMAC key) and a fresh random API key.
func GenerateCredentials() (Credentials, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return Credentials{}, fmt.Errorf("%w: %w", cryptodomain.ErrAeadFailure, err)
	}
	secret := base64.RawURLEncoding.EncodeToString(raw)

	return Credentials{
		ApiKey: secrecy.NewMasked(NewApiKey()),
		Secret: secrecy.NewRedacted(secret),
	}, nil
}

// Encrypt envelope-encrypts the secret under a freshly generated data key,
// itself encrypted under the master key.
func (c Credentials) Encrypt(masterKey cryptodomain.MasterKey) (EncryptedCredentials, error) {
	dataKey, err := cryptodomain.GenerateAes256Key()
	if err != nil {
		return EncryptedCredentials{}, err
	}
	defer dataKey.Zero()

	encryptedSecret, err := dataKey.Encrypt(c.Secret.Expose())
	if err != nil {
		return EncryptedCredentials{}, err
	}

	encryptedDataKey, err := masterKey.Encrypt(dataKey.String())
	if err != nil {
		return EncryptedCredentials{}, err
	}

	return EncryptedCredentials{
		ApiKey:           c.ApiKey,
		EncryptedSecret:  encryptedSecret.String(),
		EncryptedDataKey: encryptedDataKey.String(),
	}, nil
}

// Decrypt reverses Encrypt: decrypt the data key under the master key, then
// use it to decrypt the secret.
func (e EncryptedCredentials) Decrypt(masterKey cryptodomain.MasterKey) (Credentials, error) {
	encryptedDataKey, err := cryptodomain.ParseEncrypted(e.EncryptedDataKey)
	if err != nil {
		return Credentials{}, err
	}

	dataKeyString, err := masterKey.Decrypt(encryptedDataKey)
	if err != nil {
		return Credentials{}, err
	}

	dataKey, err := cryptodomain.Aes256KeyFromString(dataKeyString)
	if err != nil {
		return Credentials{}, err
	}
	defer dataKey.Zero()

	encryptedSecret, err := cryptodomain.ParseEncrypted(e.EncryptedSecret)
	if err != nil {
		return Credentials{}, err
	}

	secret, err := dataKey.Decrypt(encryptedSecret)
	if err != nil {
		return Credentials{}, err
	}

	return Credentials{
		ApiKey: e.ApiKey,
		Secret: secrecy.NewRedacted(secret),
	}, nil
}

// CheckAuthentication verifies an HMAC-SHA256 signature over message,
// computed with the shared secret as key. The signature is decoded with
// STANDARD base64 — deliberately mismatched against the URL-safe-no-pad
// encoding of the secret itself.
func (c Credentials) CheckAuthentication(message, signature string) error {
	decoded, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return cryptodomain.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(c.Secret.Expose()))
	if _, err := mac.Write([]byte(message)); err != nil {
		return cryptodomain.ErrInvalidSignature
	}
	expected := mac.Sum(nil)

	if !hmac.Equal(decoded, expected) {
		return cryptodomain.ErrInvalidSignature
	}

	return nil
}
