package domain

import "github.com/allisson/signvault/internal/errors"

// ErrUserNotFound indicates no user exists with the requested id.
var ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

// ErrUserNotCreated indicates a user could not be registered because its
// owning client does not exist.
var ErrUserNotCreated = errors.Wrap(errors.ErrInvalidInput, "user not created: client does not exist")
