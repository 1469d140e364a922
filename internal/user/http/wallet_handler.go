// Package http provides HTTP handlers for the wallet-plane signing
// identity operations. Every route here sits behind requestauth.Middleware.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/signvault/internal/httputil"
	"github.com/allisson/signvault/internal/requestauth"
	customValidation "github.com/allisson/signvault/internal/validation"

	"github.com/allisson/signvault/internal/user/domain"
	"github.com/allisson/signvault/internal/user/http/dto"
	"github.com/allisson/signvault/internal/user/usecase"

	apperrors "github.com/allisson/signvault/internal/errors"
)

// WalletHandler handles signing-identity registration, signing, and
// revocation for the client authenticated by requestauth.Middleware.
type WalletHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewWalletHandler builds a WalletHandler.
func NewWalletHandler(userUseCase usecase.UseCase, logger *slog.Logger) *WalletHandler {
	return &WalletHandler{userUseCase: userUseCase, logger: logger}
}

// RegisterUser handles POST /wallet/register. Generates a fresh RSA
// signing identity for the authenticated client and returns its id and
// public key.
func (h *WalletHandler) RegisterUser(c *gin.Context) {
	apiKey, ok := requestauth.GetApiKey(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	user, err := h.userUseCase.RegisterUser(c.Request.Context(), apiKey)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response, err := dto.MapUserToRegisterResponse(*user)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// SignMessage handles POST /wallet/:user_id/sign. Signs the request body's
// message with the user's signing identity and returns the hex-encoded
// signature.
func (h *WalletHandler) SignMessage(c *gin.Context) {
	userID, err := domain.ParseUserId(c.Param("user_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.SignMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	signature, err := h.userUseCase.SignMessage(c.Request.Context(), userID, req.Message)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.SignMessageResponse{Message: req.Message, Signature: signature})
}

// RevokeUser handles DELETE /wallet/:user_id/revoke. Deletes the user's
// persisted signing identity. Returns 204 No Content.
func (h *WalletHandler) RevokeUser(c *gin.Context) {
	userID, err := domain.ParseUserId(c.Param("user_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.userUseCase.RevokeUser(c.Request.Context(), userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
