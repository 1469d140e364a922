// Package http provides HTTP handlers for admin-plane client management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/signvault/internal/client/http/dto"
	"github.com/allisson/signvault/internal/client/usecase"
	"github.com/allisson/signvault/internal/httputil"
	customValidation "github.com/allisson/signvault/internal/validation"
)

// AdminHandler handles operator requests to create and look up clients.
type AdminHandler struct {
	clientUseCase usecase.UseCase
	logger        *slog.Logger
}

// NewAdminHandler builds an AdminHandler.
func NewAdminHandler(clientUseCase usecase.UseCase, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{clientUseCase: clientUseCase, logger: logger}
}

// CreateClient handles POST /admin/client. Returns 201 Created with the
// client's id, name, and freshly generated credentials — the plaintext
// secret is visible in this response only.
func (h *AdminHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	client, err := h.clientUseCase.CreateClient(c.Request.Context(), usecase.CreateClientInput{Name: req.Name})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCreatedClientToResponse(*client))
}

// GetClientByName handles GET /admin/client?name=... Returns 200 OK with
// the client's name and masked API key, or 404 if no client by that name
// exists.
func (h *AdminHandler) GetClientByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("name query parameter is required"), h.logger)
		return
	}

	client, err := h.clientUseCase.GetClientByName(c.Request.Context(), name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClientToResponse(*client))
}
