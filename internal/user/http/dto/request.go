package dto

import (
	validation "github.com/jellydator/validation"

	appValidation "github.com/allisson/signvault/internal/validation"
)

// Validate checks that Message is present and non-blank.
func (r *SignMessageRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}
