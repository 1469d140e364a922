package domain

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptodomain "github.com/allisson/signvault/internal/crypto/domain"
)

func testMasterKey(t *testing.T) cryptodomain.MasterKey {
	t.Helper()
	key, err := cryptodomain.GenerateAes256Key()
	require.NoError(t, err)
	return cryptodomain.MasterKey{Aes256Key: key}
}

func TestCredentials_EncryptDecryptRoundTrip(t *testing.T) {
	masterKey := testMasterKey(t)

	creds, err := GenerateCredentials()
	require.NoError(t, err)

	encrypted, err := creds.Encrypt(masterKey)
	require.NoError(t, err)
	assert.Equal(t, creds.ApiKey, encrypted.ApiKey)

	decrypted, err := encrypted.Decrypt(masterKey)
	require.NoError(t, err)

	assert.Equal(t, creds.ApiKey.Expose(), decrypted.ApiKey.Expose())
	assert.Equal(t, creds.Secret.Expose(), decrypted.Secret.Expose())
}

func TestCredentials_CheckAuthentication(t *testing.T) {
	creds, err := GenerateCredentials()
	require.NoError(t, err)

	message := "1700000000POST/wallet/register"
	mac := hmac.New(sha256.New, []byte(creds.Secret.Expose()))
	_, err = mac.Write([]byte(message))
	require.NoError(t, err)
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	require.NoError(t, creds.CheckAuthentication(message, signature))
}

func TestCredentials_CheckAuthentication_RejectsFlippedSignatureBit(t *testing.T) {
	creds, err := GenerateCredentials()
	require.NoError(t, err)

	message := "1700000000POST/wallet/register"
	mac := hmac.New(sha256.New, []byte(creds.Secret.Expose()))
	_, err = mac.Write([]byte(message))
	require.NoError(t, err)
	tag := mac.Sum(nil)
	tag[0] ^= 0xFF
	signature := base64.StdEncoding.EncodeToString(tag)

	err = creds.CheckAuthentication(message, signature)
	assert.ErrorIs(t, err, cryptodomain.ErrInvalidSignature)
}

func TestCredentials_CheckAuthentication_RejectsFlippedMessageBit(t *testing.T) {
	creds, err := GenerateCredentials()
	require.NoError(t, err)

	message := "1700000000POST/wallet/register"
	mac := hmac.New(sha256.New, []byte(creds.Secret.Expose()))
	_, err = mac.Write([]byte(message))
	require.NoError(t, err)
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	err = creds.CheckAuthentication(message+"x", signature)
	assert.ErrorIs(t, err, cryptodomain.ErrInvalidSignature)
}

func TestCredentials_CheckAuthentication_RejectsMalformedSignature(t *testing.T) {
	creds, err := GenerateCredentials()
	require.NoError(t, err)

	err = creds.CheckAuthentication("message", "not-base64!!")
	assert.ErrorIs(t, err, cryptodomain.ErrInvalidSignature)
}
