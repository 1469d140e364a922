package domain

import cryptodomain "github.com/allisson/signvault/internal/crypto/domain"

// Client is a named API consumer, created once by an operator and never
// renamed or deleted.
type Client struct {
	ID          ClientId
	Name        string
	Credentials Credentials
}

// NewClient derives the client's id from name and generates fresh
// credentials.
func NewClient(name string) (Client, error) {
	credentials, err := GenerateCredentials()
	if err != nil {
		return Client{}, err
	}

	return Client{
		ID:          NewClientId(name),
		Name:        name,
		Credentials: credentials,
	}, nil
}

// Encrypt envelope-encrypts the client's credentials under the master key.
func (c Client) Encrypt(masterKey cryptodomain.MasterKey) (EncryptedClient, error) {
	encryptedCredentials, err := c.Credentials.Encrypt(masterKey)
	if err != nil {
		return EncryptedClient{}, err
	}

	return EncryptedClient{
		ID:          c.ID,
		Name:        c.Name,
		Credentials: encryptedCredentials,
	}, nil
}

// EncryptedClient is the persisted form of a Client.
type EncryptedClient struct {
	ID          ClientId
	Name        string
	Credentials EncryptedCredentials
}

// Decrypt reverses Encrypt.
func (e EncryptedClient) Decrypt(masterKey cryptodomain.MasterKey) (Client, error) {
	credentials, err := e.Credentials.Decrypt(masterKey)
	if err != nil {
		return Client{}, err
	}

	return Client{
		ID:          e.ID,
		Name:        e.Name,
		Credentials: credentials,
	}, nil
}
