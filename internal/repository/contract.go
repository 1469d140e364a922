// Package repository defines the storage contract the custodial signing
// core depends on: the row shapes it persists and reloads, and the queries
// it requires of the collaborator that backs them.
package repository

import (
	"context"

	"github.com/google/uuid"

	clientdomain "github.com/allisson/signvault/internal/client/domain"
	userdomain "github.com/allisson/signvault/internal/user/domain"
)

// ClientRepository is the storage collaborator the admin plane and the
// request-authentication pipeline depend on.
type ClientRepository interface {
	// Create persists the client row and its credentials row atomically.
	Create(ctx context.Context, client clientdomain.EncryptedClient) error

	// FindByID looks up a client by id. A nil, nil return means "not found";
	// it is not an error.
	FindByID(ctx context.Context, id clientdomain.ClientId) (*clientdomain.EncryptedClient, error)

	// GetCredentialsByApiKey looks up the credentials row for a given API
	// key, e.g. during request authentication.
	GetCredentialsByApiKey(ctx context.Context, apiKey uuid.UUID) (*clientdomain.EncryptedCredentials, error)
}

// UserRepository is the storage collaborator the wallet plane depends on.
type UserRepository interface {
	// RegisterUser persists user linked to the client identified by apiKey.
	// Fails with ErrUserNotCreated if no such client exists.
	RegisterUser(ctx context.Context, apiKey uuid.UUID, user userdomain.EncryptedUser) error

	// GetUser looks up a user by id. A nil, nil return means "not found".
	GetUser(ctx context.Context, id userdomain.UserId) (*userdomain.EncryptedUser, error)

	// DeleteUser removes a user by id. Deleting an id that does not exist
	// is not an error.
	DeleteUser(ctx context.Context, id userdomain.UserId) error
}

// FindClientByName derives a client's id from its name via the UUIDv5 rule
// and delegates to repo.FindByID. Go interfaces have no default-method
// mechanism, so this is a free function keyed on ClientRepository rather
// than an interface method with a body.
func FindClientByName(ctx context.Context, repo ClientRepository, name string) (*clientdomain.EncryptedClient, error) {
	id := clientdomain.NewClientId(name)
	return repo.FindByID(ctx, id)
}
