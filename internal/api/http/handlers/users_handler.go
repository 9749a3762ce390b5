package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-marketplace/internal/api/dto"
	"github.com/spec-kit/ticket-marketplace/internal/domain"
	"github.com/spec-kit/ticket-marketplace/internal/repository"
	"github.com/spec-kit/ticket-marketplace/internal/service"
	apperrors "github.com/spec-kit/ticket-marketplace/pkg/util"
)

// UsersHandler exposes role-store endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Register handles POST /users. Re-registering an existing email is a
// no-op answered with a "user exists" message.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.UserRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, created, err := h.users.Register(c.UserContext(), req.Email, req.Name)
	if err != nil {
		return err
	}
	if !created {
		return c.JSON(fiber.Map{"message": "user exists"})
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.NewUserResponse(user),
	})
}

// GetRole handles GET /users/:email/role, defaulting to "user" for
// unknown emails.
func (h *UsersHandler) GetRole(c *fiber.Ctx) error {
	role, err := h.users.RoleOf(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(dto.RoleResponse{Role: role})
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponses(users)})
}

// Patch handles PATCH /user/:id. Any subset of name/role/is_fraud is
// applied atomically.
func (h *UsersHandler) Patch(c *fiber.Ctx) error {
	var req dto.UserPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	patch := repository.UserPatch{Name: req.Name, IsFraud: req.IsFraud}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		patch.Role = &role
	}

	user, err := h.users.Patch(c.UserContext(), c.Params("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
