package dto

import (
	"github.com/allisson/signvault/internal/client/domain"
)

// CredentialsResponse is the credentials block of a client response. Secret
// is only ever populated on the creation response — every other path
// leaves it at the zero value, which the omitempty tag drops from the JSON
// entirely, rather than silently exposing a previously generated secret.
type CredentialsResponse struct {
	ApiKey string `json:"api_key"`
	Secret string `json:"secret,omitempty"`
}

// ClientResponse is the API representation of a client.
type ClientResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Credentials CredentialsResponse `json:"credentials"`
}

// MapCreatedClientToResponse renders a freshly created client, including
// its plaintext secret. This is the only response shape that ever reveals
// the secret — it is not retrievable afterward.
func MapCreatedClientToResponse(client domain.Client) ClientResponse {
	return ClientResponse{
		ID:   client.ID.String(),
		Name: client.Name,
		Credentials: CredentialsResponse{
			ApiKey: client.Credentials.ApiKey.Expose().String(),
			Secret: client.Credentials.Secret.Expose(),
		},
	}
}

// MapClientToResponse renders an existing client, masking the API key and
// omitting the secret entirely.
func MapClientToResponse(client domain.Client) ClientResponse {
	return ClientResponse{
		ID:   client.ID.String(),
		Name: client.Name,
		Credentials: CredentialsResponse{
			ApiKey: client.Credentials.ApiKey.ExposeMasked(),
		},
	}
}
