package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/social-platform/internal/api/dto"
	"github.com/spec-kit/social-platform/internal/service"
	apperrors "github.com/spec-kit/social-platform/pkg/util"
)

// UsersHandler exposes registration and profile endpoints.
type UsersHandler struct {
	registration *service.RegistrationService
	users        *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(registration *service.RegistrationService, users *service.UserService) *UsersHandler {
	return &UsersHandler{registration: registration, users: users}
}

// Register handles POST /api/users.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationFailed("invalid payload")
	}

	result, err := h.registration.Register(c.UserContext(), service.RegistrationInput{
		FirstName: req.Firstname,
		LastName:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(dto.RegistrationResponse{
		UserID: result.UserID,
		Token:  result.Token,
	})
}

// Profile handles GET /api/users/:userId.
func (h *UsersHandler) Profile(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}

	return c.JSON(dto.UserProfile{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}
