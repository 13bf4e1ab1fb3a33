package dto

import (
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

// LoginRequest is accepted as a form post or as JSON.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=150"`
	Password string `json:"password" form:"password" validate:"required,max=128"`
}

// TokenResponse is returned by POST /token.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewTokenResponse wraps an issued token.
func NewTokenResponse(token *domain.Token) TokenResponse {
	return TokenResponse{AccessToken: token.Value, TokenType: "bearer", ExpiresAt: token.ExpiresAt.UTC()}
}

// UserCreateRequest provisions a principal.
type UserCreateRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=admin employee"`
}

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Username: user.Username, Role: user.Role.String(), CreatedAt: user.CreatedAt}
}
