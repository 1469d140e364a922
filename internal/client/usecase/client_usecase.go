// Package usecase implements the admin-plane business logic: creating
// clients and looking them up by name.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	cryptodomain "github.com/allisson/signvault/internal/crypto/domain"
	appValidation "github.com/allisson/signvault/internal/validation"

	"github.com/allisson/signvault/internal/client/domain"
	"github.com/allisson/signvault/internal/metrics"
	"github.com/allisson/signvault/internal/repository"
)

// CreateClientInput is the admin-supplied input for client creation.
type CreateClientInput struct {
	Name string `json:"name"`
}

// UseCase defines the admin-plane client operations.
type UseCase interface {
	CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	GetClientByName(ctx context.Context, name string) (*domain.Client, error)
}

// ClientUseCase orchestrates client creation and lookup against the
// envelope encryption layer and the repository contract.
type ClientUseCase struct {
	masterKey  cryptodomain.MasterKey
	clientRepo repository.ClientRepository
	metrics    metrics.SigningMetrics
}

// NewClientUseCase builds a ClientUseCase.
func NewClientUseCase(
	masterKey cryptodomain.MasterKey,
	clientRepo repository.ClientRepository,
	signingMetrics metrics.SigningMetrics,
) *ClientUseCase {
	return &ClientUseCase{masterKey: masterKey, clientRepo: clientRepo, metrics: signingMetrics}
}

func (uc *ClientUseCase) validateCreateClientInput(input CreateClientInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateClient generates fresh credentials for name, envelope-encrypts
// them, and persists the client. The returned Client carries the
// plaintext credentials — this is the only time they are available in the
// clear, so the caller (the admin handler) must serialize them into the
// response immediately and not retain them.
func (uc *ClientUseCase) CreateClient(ctx context.Context, input CreateClientInput) (*domain.Client, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := uc.validateCreateClientInput(input); err != nil {
		return nil, err
	}

	client, err := domain.NewClient(input.Name)
	if err != nil {
		return nil, err
	}

	encrypted, err := client.Encrypt(uc.masterKey)
	if err != nil {
		return nil, err
	}

	if err := uc.clientRepo.Create(ctx, encrypted); err != nil {
		return nil, err
	}

	uc.metrics.RecordClientCreated(ctx)

	return &client, nil
}

// GetClientByName looks up a client by name and decrypts its credentials.
// The returned Client's Credentials.Secret is still Redacted — the admin
// lookup surface never re-exposes the plaintext secret, only the masked
// API key.
func (uc *ClientUseCase) GetClientByName(ctx context.Context, name string) (*domain.Client, error) {
	encrypted, err := repository.FindClientByName(ctx, uc.clientRepo, name)
	if err != nil {
		return nil, err
	}
	if encrypted == nil {
		return nil, domain.ErrClientNotFound
	}

	client, err := encrypted.Decrypt(uc.masterKey)
	if err != nil {
		return nil, err
	}

	return &client, nil
}
