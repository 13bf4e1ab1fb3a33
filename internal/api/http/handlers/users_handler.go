package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/service"
)

// UsersHandler exposes principal endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	sess, err := session(c)
	if err != nil {
		return err
	}
	user, err := h.auth.CurrentUser(c.UserContext(), sess.Users(), p)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	var req dto.UserCreateRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sess, err := session(c)
	if err != nil {
		return err
	}
	user, err := h.auth.CreateUser(c.UserContext(), sess.Users(), p, req.Username, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewUserResponse(user)})
}
