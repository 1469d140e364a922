package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	clientdomain "github.com/allisson/signvault/internal/client/domain"
	cryptodomain "github.com/allisson/signvault/internal/crypto/domain"
	"github.com/allisson/signvault/internal/metrics"
)

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) Create(ctx context.Context, client clientdomain.EncryptedClient) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *mockClientRepository) FindByID(ctx context.Context, id clientdomain.ClientId) (*clientdomain.EncryptedClient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientdomain.EncryptedClient), args.Error(1)
}

func (m *mockClientRepository) GetCredentialsByApiKey(
	ctx context.Context,
	apiKey uuid.UUID,
) (*clientdomain.EncryptedCredentials, error) {
	args := m.Called(ctx, apiKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientdomain.EncryptedCredentials), args.Error(1)
}

func testMasterKey(t *testing.T) cryptodomain.MasterKey {
	t.Helper()
	key, err := cryptodomain.GenerateAes256Key()
	require.NoError(t, err)
	return cryptodomain.MasterKey{Aes256Key: key}
}

func TestClientUseCase_CreateClient(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := NewClientUseCase(testMasterKey(t), repo, metrics.NewNoOpSigningMetrics())

	client, err := uc.CreateClient(context.Background(), CreateClientInput{Name: "acme"})
	require.NoError(t, err)
	assert.Equal(t, clientdomain.NewClientId("acme"), client.ID)
	assert.NotEmpty(t, client.Credentials.Secret.Expose())

	repo.AssertExpectations(t)
}

func TestClientUseCase_CreateClient_RejectsBlankName(t *testing.T) {
	repo := new(mockClientRepository)
	uc := NewClientUseCase(testMasterKey(t), repo, metrics.NewNoOpSigningMetrics())

	_, err := uc.CreateClient(context.Background(), CreateClientInput{Name: "   "})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestClientUseCase_GetClientByName(t *testing.T) {
	masterKey := testMasterKey(t)
	client, err := clientdomain.NewClient("acme")
	require.NoError(t, err)
	encrypted, err := client.Encrypt(masterKey)
	require.NoError(t, err)

	repo := new(mockClientRepository)
	repo.On("FindByID", mock.Anything, client.ID).Return(&encrypted, nil)

	uc := NewClientUseCase(masterKey, repo, metrics.NewNoOpSigningMetrics())

	found, err := uc.GetClientByName(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, client.ID, found.ID)
}

func TestClientUseCase_GetClientByName_NotFound(t *testing.T) {
	repo := new(mockClientRepository)
	repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	uc := NewClientUseCase(testMasterKey(t), repo, metrics.NewNoOpSigningMetrics())

	_, err := uc.GetClientByName(context.Background(), "ghost")
	assert.ErrorIs(t, err, clientdomain.ErrClientNotFound)
}
