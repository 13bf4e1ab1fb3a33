package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/service"
)

// AuthHandler issues bearer tokens.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Token handles POST /token. Credentials arrive as a form post or JSON.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	sess, err := session(c)
	if err != nil {
		return err
	}

	token, err := h.auth.Login(c.UserContext(), sess.Users(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTokenResponse(token))
}
