package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/observability"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// TokenVerifier recovers a principal from a bearer token.
type TokenVerifier interface {
	Verify(token string) (Principal, error)
}

// AuthMiddleware validates bearer tokens and stores the principal on the request.
type AuthMiddleware struct {
	tokens  TokenVerifier
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens TokenVerifier, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, logger: logger, metrics: metrics}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return apperrors.NewUnauthorized("not authenticated")
	}

	principal, err := m.tokens.Verify(strings.TrimSpace(parts[1]))
	if err != nil {
		reason := FailureReason(err)
		m.metrics.RecordTokenFailure(reason)
		m.logger.Debug("token rejected", zap.String("reason", reason), zap.Error(err))
		return apperrors.NewAuthenticationError("could not validate credentials", err)
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated principal.
func PrincipalFromContext(c *fiber.Ctx) (Principal, bool) {
	principal, ok := c.Locals(principalKey).(Principal)
	return principal, ok
}
