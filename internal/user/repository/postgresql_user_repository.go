// Package repository provides SQL-backed implementations of the user
// repository contract, one per supported dialect.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/allisson/signvault/internal/database"
	apperrors "github.com/allisson/signvault/internal/errors"
	"github.com/allisson/signvault/internal/user/domain"
)

// PostgreSQLUserRepository persists user signing identities to PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository builds a PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{db: db}
}

// RegisterUser inserts a user row linked to the client that owns apiKey,
// resolving client_id via a join on the credentials table. Fails with
// domain.ErrUserNotCreated if apiKey does not belong to any client.
func (r *PostgreSQLUserRepository) RegisterUser(ctx context.Context, apiKey uuid.UUID, user domain.EncryptedUser) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx,
		`INSERT INTO users (id, client_id, encrypted_private_key, encrypted_data_key)
		 SELECT $1, cr.client_id, $2, $3
		 FROM credentials cr WHERE cr.api_key = $4`,
		uuid.UUID(user.ID), user.EncryptedPrivateKey, user.EncryptedDataKey, apiKey,
	)
	if err != nil {
		return apperrors.Wrap(err, "register user")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "register user: rows affected")
	}
	if affected == 0 {
		return domain.ErrUserNotCreated
	}

	return nil
}

// GetUser looks up a user by id. Returns (nil, nil) when no such user
// exists.
func (r *PostgreSQLUserRepository) GetUser(ctx context.Context, id domain.UserId) (*domain.EncryptedUser, error) {
	querier := database.GetTx(ctx, r.db)

	var user domain.EncryptedUser
	err := querier.QueryRowContext(ctx,
		`SELECT id, encrypted_private_key, encrypted_data_key FROM users WHERE id = $1`,
		uuid.UUID(id),
	).Scan((*uuid.UUID)(&user.ID), &user.EncryptedPrivateKey, &user.EncryptedDataKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "get user")
	}

	return &user, nil
}

// DeleteUser removes a user by id. Deleting an id that does not exist is
// not an error.
func (r *PostgreSQLUserRepository) DeleteUser(ctx context.Context, id domain.UserId) error {
	querier := database.GetTx(ctx, r.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, uuid.UUID(id))
	if err != nil {
		return apperrors.Wrap(err, "delete user")
	}

	return nil
}
