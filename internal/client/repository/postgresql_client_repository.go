// Package repository provides SQL-backed implementations of the client
// repository contract, one per supported dialect.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/signvault/internal/client/domain"
	"github.com/allisson/signvault/internal/database"
	apperrors "github.com/allisson/signvault/internal/errors"
)

// PostgreSQLClientRepository persists clients and their credentials to
// PostgreSQL.
type PostgreSQLClientRepository struct {
	db *sql.DB
}

// NewPostgreSQLClientRepository builds a PostgreSQLClientRepository.
func NewPostgreSQLClientRepository(db *sql.DB) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db}
}

// Create inserts the client row and its credentials row inside a single
// transaction, so the two are never observed independently.
func (r *PostgreSQLClientRepository) Create(ctx context.Context, client domain.EncryptedClient) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(err, "begin create client transaction")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO clients (id, name) VALUES ($1, $2)`,
		uuid.UUID(client.ID), client.Name,
	)
	if err != nil {
		_ = tx.Rollback()
		return apperrors.Wrap(err, "insert client")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO credentials (client_id, api_key, encrypted_secret, encrypted_data_key)
		 VALUES ($1, $2, $3, $4)`,
		uuid.UUID(client.ID),
		client.Credentials.ApiKey.Expose().UUID(),
		client.Credentials.EncryptedSecret,
		client.Credentials.EncryptedDataKey,
	)
	if err != nil {
		_ = tx.Rollback()
		return apperrors.Wrap(err, "insert credentials")
	}

	if err := tx.Commit(); err != nil {
		return apperrors.Wrap(err, "commit create client transaction")
	}

	return nil
}

// FindByID looks up a client and its credentials by id. Returns (nil, nil)
// when no such client exists.
func (r *PostgreSQLClientRepository) FindByID(ctx context.Context, id domain.ClientId) (*domain.EncryptedClient, error) {
	querier := database.GetTx(ctx, r.db)

	var (
		client domain.EncryptedClient
		apiKey uuid.UUID
	)

	err := querier.QueryRowContext(ctx,
		`SELECT c.id, c.name, cr.api_key, cr.encrypted_secret, cr.encrypted_data_key
		 FROM clients c JOIN credentials cr ON cr.client_id = c.id
		 WHERE c.id = $1`,
		uuid.UUID(id),
	).Scan(
		(*uuid.UUID)(&client.ID), &client.Name,
		&apiKey, &client.Credentials.EncryptedSecret, &client.Credentials.EncryptedDataKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "find client by id")
	}

	client.Credentials.ApiKey = newMaskedApiKey(apiKey)
	return &client, nil
}

// GetCredentialsByApiKey looks up the credentials row for apiKey. Returns
// (nil, nil) when no client owns that key.
func (r *PostgreSQLClientRepository) GetCredentialsByApiKey(
	ctx context.Context,
	apiKey uuid.UUID,
) (*domain.EncryptedCredentials, error) {
	querier := database.GetTx(ctx, r.db)

	var credentials domain.EncryptedCredentials
	err := querier.QueryRowContext(ctx,
		`SELECT api_key, encrypted_secret, encrypted_data_key FROM credentials WHERE api_key = $1`,
		apiKey,
	).Scan(&apiKey, &credentials.EncryptedSecret, &credentials.EncryptedDataKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "get credentials by api key")
	}

	credentials.ApiKey = newMaskedApiKey(apiKey)
	return &credentials, nil
}
