package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/signvault/internal/client/domain"
	secrecy "github.com/allisson/signvault/internal/secrecy/domain"
)

func TestMySQLClientRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLClientRepository(db)
	client := domain.EncryptedClient{
		ID:   domain.NewClientId("acme"),
		Name: "acme",
		Credentials: domain.EncryptedCredentials{
			ApiKey:           secrecy.NewMasked(domain.NewApiKey()),
			EncryptedSecret:  "nonce:ciphertext",
			EncryptedDataKey: "nonce:ciphertext",
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO clients").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO credentials").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), client))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLClientRepository_FindByID_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLClientRepository(db)
	id := domain.NewClientId("acme")
	apiKey := uuid.New()

	rows := sqlmock.NewRows([]string{"id", "name", "api_key", "encrypted_secret", "encrypted_data_key"}).
		AddRow(uuid.UUID(id).String(), "acme", apiKey.String(), "nonce:secret", "nonce:datakey")
	mock.ExpectQuery("SELECT c.id, c.name").WillReturnRows(rows)

	found, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, id, found.ID)
	assert.Equal(t, apiKey, found.Credentials.ApiKey.Expose().UUID())
}

func TestMySQLClientRepository_FindByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLClientRepository(db)

	mock.ExpectQuery("SELECT c.id, c.name").WillReturnError(sqlErrNoRows())

	found, err := repo.FindByID(context.Background(), domain.NewClientId("ghost"))
	require.NoError(t, err)
	assert.Nil(t, found)
}
