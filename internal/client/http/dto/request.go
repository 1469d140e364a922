// Package dto provides data transfer objects for the admin client HTTP layer.
package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/signvault/internal/validation"
)

// CreateClientRequest is the request body for POST /admin/client.
type CreateClientRequest struct {
	Name string `json:"name"`
}

// Validate checks that Name is present and non-blank.
func (r *CreateClientRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}
