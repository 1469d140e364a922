package domain

import cryptodomain "github.com/allisson/signvault/internal/crypto/domain"

// User is a registered signing identity. Its owning client is a storage
// concern (the users table's client_id foreign key, populated by the
// repository from the api key at registration time) and is not part of the
// in-memory domain model.
type User struct {
	ID         UserId
	SigningKey SigningKey
}

// NewUser generates a fresh RSA signing key and derives the user's id from
// its public key.
func NewUser() (User, error) {
	signingKey, err := GenerateSigningKey()
	if err != nil {
		return User{}, err
	}

	publicKeyPEM, err := signingKey.PublicKeyPEM()
	if err != nil {
		return User{}, err
	}

	return User{
		ID:         NewUserId(publicKeyPEM),
		SigningKey: signingKey,
	}, nil
}

// EncryptedUser is the persisted form of a User.
type EncryptedUser struct {
	ID                  UserId
	EncryptedPrivateKey string
	EncryptedDataKey    string
}

// Encrypt envelope-encrypts the PKCS#8 PEM private key under a freshly
// generated data key, itself encrypted under the master key.
func (u User) Encrypt(masterKey cryptodomain.MasterKey) (EncryptedUser, error) {
	dataKey, err := cryptodomain.GenerateAes256Key()
	if err != nil {
		return EncryptedUser{}, err
	}
	defer dataKey.Zero()

	privateKeyPEM, err := u.SigningKey.PrivateKeyPEM()
	if err != nil {
		return EncryptedUser{}, err
	}

	encryptedPrivateKey, err := dataKey.Encrypt(string(privateKeyPEM))
	if err != nil {
		return EncryptedUser{}, err
	}

	encryptedDataKey, err := masterKey.Encrypt(dataKey.String())
	if err != nil {
		return EncryptedUser{}, err
	}

	return EncryptedUser{
		ID:                  u.ID,
		EncryptedPrivateKey: encryptedPrivateKey.String(),
		EncryptedDataKey:    encryptedDataKey.String(),
	}, nil
}

// Decrypt reverses Encrypt: recover the data key under the master key, then
// decrypt and parse the PKCS#8 PEM private key.
func (e EncryptedUser) Decrypt(masterKey cryptodomain.MasterKey) (User, error) {
	encryptedDataKey, err := cryptodomain.ParseEncrypted(e.EncryptedDataKey)
	if err != nil {
		return User{}, err
	}

	dataKeyString, err := masterKey.Decrypt(encryptedDataKey)
	if err != nil {
		return User{}, err
	}

	dataKey, err := cryptodomain.Aes256KeyFromString(dataKeyString)
	if err != nil {
		return User{}, err
	}
	defer dataKey.Zero()

	encryptedPrivateKey, err := cryptodomain.ParseEncrypted(e.EncryptedPrivateKey)
	if err != nil {
		return User{}, err
	}

	privateKeyPEM, err := dataKey.Decrypt(encryptedPrivateKey)
	if err != nil {
		return User{}, err
	}

	signingKey, err := SigningKeyFromPrivateKeyPEM([]byte(privateKeyPEM))
	if err != nil {
		return User{}, err
	}

	return User{
		ID:         e.ID,
		SigningKey: signingKey,
	}, nil
}
