package repository

import (
	"github.com/google/uuid"

	secrecy "github.com/allisson/signvault/internal/secrecy/domain"

	"github.com/allisson/signvault/internal/client/domain"
)

// newMaskedApiKey wraps a raw UUID read back from storage as a
// Masked[ApiKey], mirroring how domain.GenerateCredentials produces one.
func newMaskedApiKey(id uuid.UUID) secrecy.Masked[domain.ApiKey] {
	return secrecy.NewMasked(domain.ApiKeyFromUUID(id))
}
