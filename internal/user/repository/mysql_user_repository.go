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

// MySQLUserRepository persists user signing identities to MySQL.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository builds a MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// RegisterUser inserts a user row linked to the client that owns apiKey,
// resolving client_id via a join on the credentials table. Fails with
// domain.ErrUserNotCreated if apiKey does not belong to any client.
func (r *MySQLUserRepository) RegisterUser(ctx context.Context, apiKey uuid.UUID, user domain.EncryptedUser) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(ctx,
		`INSERT INTO users (id, client_id, encrypted_private_key, encrypted_data_key)
		 SELECT ?, cr.client_id, ?, ?
		 FROM credentials cr WHERE cr.api_key = ?`,
		uuid.UUID(user.ID).String(), user.EncryptedPrivateKey, user.EncryptedDataKey, apiKey.String(),
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
func (r *MySQLUserRepository) GetUser(ctx context.Context, id domain.UserId) (*domain.EncryptedUser, error) {
	querier := database.GetTx(ctx, r.db)

	var (
		user   domain.EncryptedUser
		idText string
	)
	err := querier.QueryRowContext(ctx,
		`SELECT id, encrypted_private_key, encrypted_data_key FROM users WHERE id = ?`,
		uuid.UUID(id).String(),
	).Scan(&idText, &user.EncryptedPrivateKey, &user.EncryptedDataKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, "get user")
	}

	parsed, err := uuid.Parse(idText)
	if err != nil {
		return nil, apperrors.Wrap(err, "parse user id")
	}
	user.ID = domain.UserId(parsed)

	return &user, nil
}

// DeleteUser removes a user by id. Deleting an id that does not exist is
// not an error.
func (r *MySQLUserRepository) DeleteUser(ctx context.Context, id domain.UserId) error {
	querier := database.GetTx(ctx, r.db)

	_, err := querier.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, uuid.UUID(id).String())
	if err != nil {
		return apperrors.Wrap(err, "delete user")
	}

	return nil
}
