package requestauth

import (
	"context"

	"github.com/google/uuid"

	cryptodomain "github.com/allisson/signvault/internal/crypto/domain"
	apperrors "github.com/allisson/signvault/internal/errors"
	"github.com/allisson/signvault/internal/metrics"
	"github.com/allisson/signvault/internal/repository"
)

// Authenticator loads a client's encrypted credentials, decrypts them under
// the master key, and verifies an HMAC signature against the decrypted
// secret. It performs a fresh envelope decryption on every call — there is
// no in-memory cache of decrypted secrets.
type Authenticator struct {
	masterKey  cryptodomain.MasterKey
	clientRepo repository.ClientRepository
	metrics    metrics.SigningMetrics
}

// NewAuthenticator builds an Authenticator.
func NewAuthenticator(
	masterKey cryptodomain.MasterKey,
	clientRepo repository.ClientRepository,
	signingMetrics metrics.SigningMetrics,
) *Authenticator {
	return &Authenticator{masterKey: masterKey, clientRepo: clientRepo, metrics: signingMetrics}
}

// Authenticate resolves apiKey to its encrypted credentials, decrypts them,
// and checks signature against message. Returns apperrors.ErrUnauthorized
// when apiKey is unknown or the signature does not verify; returns an
// opaque wrapped error for storage or decryption failures (the caller maps
// those to 500).
func (a *Authenticator) Authenticate(ctx context.Context, apiKey uuid.UUID, message, signature string) error {
	encrypted, err := a.clientRepo.GetCredentialsByApiKey(ctx, apiKey)
	if err != nil {
		a.metrics.RecordAuthenticationFailure(ctx, "storage_error")
		return apperrors.Wrap(err, "lookup credentials by api key")
	}
	if encrypted == nil {
		a.metrics.RecordAuthenticationFailure(ctx, "unknown_api_key")
		return apperrors.ErrUnauthorized
	}

	credentials, err := encrypted.Decrypt(a.masterKey)
	if err != nil {
		a.metrics.RecordAuthenticationFailure(ctx, "storage_error")
		return err
	}

	if err := credentials.CheckAuthentication(message, signature); err != nil {
		if apperrors.Is(err, cryptodomain.ErrInvalidSignature) {
			a.metrics.RecordAuthenticationFailure(ctx, "bad_signature")
			return apperrors.ErrUnauthorized
		}
		return err
	}

	return nil
}
