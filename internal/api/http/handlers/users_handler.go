package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/api/validation"
	"github.com/spec-kit/storefront-service/internal/service"
	apperrors "github.com/spec-kit/storefront-service/pkg/util/errorutil"
)

// UsersHandler exposes identity endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /api/user/create.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", validation.ToDetails(err))
	}

	user, err := h.users.CreateUser(c.UserContext(), service.CreateUserInput{
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return mapServiceError(err)
	}
	return c.Status(http.StatusOK).JSON(dto.NewUserResponse(user))
}

// GetByID handles GET /api/user/id/:id.
func (h *UsersHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid id", map[string]any{"id": "must be an integer"})
	}
	user, err := h.users.GetByID(c.UserContext(), id)
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// GetByUsername handles GET /api/user/:username.
func (h *UsersHandler) GetByUsername(c *fiber.Ctx) error {
	user, err := h.users.GetByUsername(c.UserContext(), c.Params("username"))
	if err != nil {
		return mapServiceError(err)
	}
	return c.JSON(dto.NewUserResponse(user))
}
