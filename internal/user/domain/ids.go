package domain

import (
	"github.com/google/uuid"
)

// userIdNamespace is the fixed UUIDv5 namespace for deriving a UserId from a
// user's public-key PEM bytes.
var userIdNamespace = uuid.MustParse("7a1c3e5b-8d2f-4c9a-1122-334455667788")

// UserId uniquely and deterministically identifies a user. It is a pure
// function of the user's public-key PEM bytes.
type UserId uuid.UUID

// NewUserId derives the deterministic id for a given public-key PEM.
func NewUserId(publicKeyPEM []byte) UserId {
	return UserId(uuid.NewSHA1(userIdNamespace, publicKeyPEM))
}

// String renders the id in canonical UUID form.
func (u UserId) String() string {
	return uuid.UUID(u).String()
}

// ParseUserId parses a canonical UUID string into a UserId, e.g. a path
// parameter on the wallet routes.
func ParseUserId(s string) (UserId, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UserId{}, err
	}
	return UserId(id), nil
}
