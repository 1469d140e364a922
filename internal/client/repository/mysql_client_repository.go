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

// MySQLClientRepository persists clients and their credentials to MySQL.
type MySQLClientRepository struct {
	db *sql.DB
}

// NewMySQLClientRepository builds a MySQLClientRepository.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}

// Create inserts the client row and its credentials row inside a single
// transaction, so the two are never observed independently.
func (r *MySQLClientRepository) Create(ctx context.Context, client domain.EncryptedClient) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Wrap(err, "begin create client transaction")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO clients (id, name) VALUES (?, ?)`,
		uuid.UUID(client.ID).String(), client.Name,
	)
	if err != nil {
		_ = tx.Rollback()
		return apperrors.Wrap(err, "insert client")
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO credentials (client_id, api_key, encrypted_secret, encrypted_data_key)
		 VALUES (?, ?, ?, ?)`,
		uuid.UUID(client.ID).String(),
		client.Credentials.ApiKey.Expose().UUID().String(),
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
func (r *MySQLClientRepository) FindByID(ctx context.Context, id domain.ClientId) (*domain.EncryptedClient, error) {
	querier := database.GetTx(ctx, r.db)

	var (
		client       domain.EncryptedClient
		clientIDStr  string
		apiKeyString string
	)

	err := querier.QueryRowContext(ctx,
		`SELECT c.id, c.name, cr.api_key, cr.encrypted_secret, cr.encrypted_data_key
		 FROM clients c JOIN credentials cr ON cr.client_id = c.id
		 WHERE c.id = ?`,
		uuid.UUID(id).String(),
	).Scan(
		&clientIDStr, &client.Name,
		&apiKeyString, &client.Credentials.EncryptedSecret, &client.Credentials.EncryptedDataKey,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "find client by id")
	}

	clientID, err := uuid.Parse(clientIDStr)
	if err != nil {
		return nil, apperrors.Wrap(err, "parse client id")
	}
	apiKey, err := uuid.Parse(apiKeyString)
	if err != nil {
		return nil, apperrors.Wrap(err, "parse api key")
	}

	client.ID = domain.ClientId(clientID)
	client.Credentials.ApiKey = newMaskedApiKey(apiKey)
	return &client, nil
}

// GetCredentialsByApiKey looks up the credentials row for apiKey. Returns
// (nil, nil) when no client owns that key.
func (r *MySQLClientRepository) GetCredentialsByApiKey(
	ctx context.Context,
	apiKey uuid.UUID,
) (*domain.EncryptedCredentials, error) {
	querier := database.GetTx(ctx, r.db)

	var credentials domain.EncryptedCredentials
	var apiKeyString string
	err := querier.QueryRowContext(ctx,
		`SELECT api_key, encrypted_secret, encrypted_data_key FROM credentials WHERE api_key = ?`,
		apiKey.String(),
	).Scan(&apiKeyString, &credentials.EncryptedSecret, &credentials.EncryptedDataKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "get credentials by api key")
	}

	parsed, err := uuid.Parse(apiKeyString)
	if err != nil {
		return nil, apperrors.Wrap(err, "parse api key")
	}

	credentials.ApiKey = newMaskedApiKey(parsed)
	return &credentials, nil
}
