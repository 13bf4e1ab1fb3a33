package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/observability"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// RequireAction rejects callers the gate would deny for a record-independent action.
// It must run after AuthMiddleware.Handle.
func RequireAction(action Action, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("not authenticated")
		}
		allowed := Authorize(principal, action, nil)
		metrics.RecordDecision(string(action), allowed)
		if !allowed {
			return apperrors.NewForbiddenError("not authorized to perform this action", ErrForbidden)
		}
		return c.Next()
	}
}
