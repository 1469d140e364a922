package domain

import "github.com/allisson/signvault/internal/errors"

// ErrClientNotFound indicates no client exists with the requested name or id.
var ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")
