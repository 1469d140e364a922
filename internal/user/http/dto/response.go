// Package dto provides data transfer objects for the wallet HTTP layer.
package dto

import "github.com/allisson/signvault/internal/user/domain"

// RegisterUserResponse is the response body for POST /wallet/register.
type RegisterUserResponse struct {
	UserID string `json:"user_id"`
	PubKey string `json:"pub_key"`
}

// MapUserToRegisterResponse renders a freshly registered user's id and PEM
// public key.
func MapUserToRegisterResponse(user domain.User) (RegisterUserResponse, error) {
	pubKeyPEM, err := user.SigningKey.PublicKeyPEM()
	if err != nil {
		return RegisterUserResponse{}, err
	}

	return RegisterUserResponse{
		UserID: user.ID.String(),
		PubKey: string(pubKeyPEM),
	}, nil
}

// SignMessageRequest is the request body for POST /wallet/{user_id}/sign.
type SignMessageRequest struct {
	Message string `json:"message"`
}

// SignMessageResponse is the response body for POST /wallet/{user_id}/sign.
type SignMessageResponse struct {
	Message   string `json:"message"`
	Signature string `json:"signature"`
}
