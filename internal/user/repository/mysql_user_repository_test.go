package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/signvault/internal/user/domain"
)

func TestMySQLUserRepository_RegisterUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLUserRepository(db)
	user := domain.EncryptedUser{
		ID:                  domain.NewUserId([]byte("pem")),
		EncryptedPrivateKey: "nonce:key",
		EncryptedDataKey:    "nonce:datakey",
	}
	apiKey := uuid.New()

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RegisterUser(context.Background(), apiKey, user))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLUserRepository_GetUser_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLUserRepository(db)
	id := domain.NewUserId([]byte("pem"))

	rows := sqlmock.NewRows([]string{"id", "encrypted_private_key", "encrypted_data_key"}).
		AddRow(uuid.UUID(id).String(), "nonce:key", "nonce:datakey")
	mock.ExpectQuery("SELECT id, encrypted_private_key").WillReturnRows(rows)

	found, err := repo.GetUser(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, id, found.ID)
}

func TestMySQLUserRepository_GetUser_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLUserRepository(db)

	mock.ExpectQuery("SELECT id, encrypted_private_key").WillReturnError(sql.ErrNoRows)

	found, err := repo.GetUser(context.Background(), domain.NewUserId([]byte("pem")))
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestMySQLUserRepository_DeleteUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewMySQLUserRepository(db)
	id := domain.NewUserId([]byte("pem"))

	mock.ExpectExec("DELETE FROM users").WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteUser(context.Background(), id))
	require.NoError(t, mock.ExpectationsWereMet())
}
