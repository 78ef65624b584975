package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-platform/internal/api/dto"
	"github.com/spec-kit/social-platform/internal/service"
	apperrors "github.com/spec-kit/social-platform/pkg/util"
)

// AuthHandler exposes the credential verification endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Authenticate handles POST /api/auth.
func (h *AuthHandler) Authenticate(c *fiber.Ctx) error {
	var req dto.AuthenticationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationFailed("invalid payload")
	}

	token, _, err := h.auth.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.AuthenticationResponse{AccessToken: token})
}
