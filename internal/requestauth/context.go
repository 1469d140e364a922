package requestauth

import (
	"context"

	"github.com/google/uuid"
)

// apiKeyKey is a context key type for storing the authenticated client's
// API key.
type apiKeyKey struct{}

// WithApiKey stores the authenticated client's API key in the context.
// Called by the authentication middleware after a signature verifies.
func WithApiKey(ctx context.Context, apiKey uuid.UUID) context.Context {
	return context.WithValue(ctx, apiKeyKey{}, apiKey)
}

// GetApiKey retrieves the authenticated client's API key from the context.
// Returns (key, true) if one is present, or (uuid.Nil, false) otherwise.
func GetApiKey(ctx context.Context) (uuid.UUID, bool) {
	apiKey, ok := ctx.Value(apiKeyKey{}).(uuid.UUID)
	return apiKey, ok
}
