// Package httputil provides HTTP utility functions for request and response
// handling shared by the admin and wallet route handlers.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/signvault/internal/errors"
)

// ErrorResponse is a structured error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// HandleErrorGin maps a domain error to an HTTP status code and writes an
// appropriate JSON response. nil/None results are not errors and must be
// turned into apperrors.ErrNotFound (or an error wrapping it) by the caller before
// reaching here.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var errorResponse ErrorResponse

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		errorResponse = ErrorResponse{Error: "not_found", Message: "the requested resource was not found"}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		errorResponse = ErrorResponse{Error: "invalid_input", Message: err.Error()}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		errorResponse = ErrorResponse{Error: "unauthorized", Message: "authentication is required"}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		errorResponse = ErrorResponse{Error: "forbidden", Message: "you don't have permission to access this resource"}

	case apperrors.Is(err, apperrors.ErrInternal):
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{Error: "internal_error", Message: "an internal error occurred"}

	default:
		statusCode = http.StatusInternalServerError
		errorResponse = ErrorResponse{Error: "internal_error", Message: "an internal error occurred"}
	}

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// HandleValidationErrorGin writes a 422 response for input validation
// failures raised before a usecase call (e.g. malformed JSON body).
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
