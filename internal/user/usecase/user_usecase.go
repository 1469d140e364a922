// Package usecase implements the wallet-plane business logic: registering
// user signing identities, signing on their behalf, and revoking them.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	cryptodomain "github.com/allisson/signvault/internal/crypto/domain"
	"github.com/allisson/signvault/internal/metrics"
	"github.com/allisson/signvault/internal/repository"
	"github.com/allisson/signvault/internal/user/domain"
)

// UseCase defines the wallet-plane user operations.
type UseCase interface {
	RegisterUser(ctx context.Context, apiKey uuid.UUID) (*domain.User, error)
	SignMessage(ctx context.Context, userID domain.UserId, message string) (string, error)
	RevokeUser(ctx context.Context, userID domain.UserId) error
}

// UserUseCase orchestrates signing-identity registration, signing, and
// revocation against the envelope encryption layer and the repository
// contract.
type UserUseCase struct {
	masterKey  cryptodomain.MasterKey
	clientRepo repository.ClientRepository
	userRepo   repository.UserRepository
	metrics    metrics.SigningMetrics
}

// NewUserUseCase builds a UserUseCase.
func NewUserUseCase(
	masterKey cryptodomain.MasterKey,
	clientRepo repository.ClientRepository,
	userRepo repository.UserRepository,
	signingMetrics metrics.SigningMetrics,
) *UserUseCase {
	return &UserUseCase{masterKey: masterKey, clientRepo: clientRepo, userRepo: userRepo, metrics: signingMetrics}
}

// RegisterUser generates a fresh RSA signing identity, envelope-encrypts
// it, and asks the repository to persist it linked to the client that owns
// apiKey. The repository resolves apiKey to a client_id internally (it is
// the only collaborator that can join credentials to clients); it fails
// with domain.ErrUserNotCreated if apiKey does not belong to any client.
func (uc *UserUseCase) RegisterUser(ctx context.Context, apiKey uuid.UUID) (*domain.User, error) {
	user, err := domain.NewUser()
	if err != nil {
		return nil, err
	}

	encrypted, err := user.Encrypt(uc.masterKey)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.RegisterUser(ctx, apiKey, encrypted); err != nil {
		return nil, err
	}

	uc.metrics.RecordUserRegistered(ctx)

	return &user, nil
}

// SignMessage loads and decrypts the user's signing identity and signs
// message with it. The identity is discarded once signing completes.
func (uc *UserUseCase) SignMessage(ctx context.Context, userID domain.UserId, message string) (string, error) {
	start := time.Now()

	signature, err := uc.signMessage(ctx, userID, message)

	uc.metrics.RecordSigningDuration(ctx, time.Since(start))
	if err != nil {
		uc.metrics.RecordSigningRequest(ctx, "error")
		return "", err
	}
	uc.metrics.RecordSigningRequest(ctx, "success")

	return signature, nil
}

func (uc *UserUseCase) signMessage(ctx context.Context, userID domain.UserId, message string) (string, error) {
	encrypted, err := uc.userRepo.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	if encrypted == nil {
		return "", domain.ErrUserNotFound
	}

	user, err := encrypted.Decrypt(uc.masterKey)
	if err != nil {
		return "", err
	}

	return user.SigningKey.SignMessage(message)
}

// RevokeUser deletes a user's persisted signing identity.
func (uc *UserUseCase) RevokeUser(ctx context.Context, userID domain.UserId) error {
	if err := uc.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}

	uc.metrics.RecordUserRevoked(ctx)

	return nil
}
