package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/http/handlers"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// sessionMiddleware acquires one repository session per request and releases
// it once the rest of the chain has returned, on every path.
func sessionMiddleware(store repository.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Acquire(c.UserContext())
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		defer sess.Release()
		c.Locals(handlers.SessionKey, sess)
		return c.Next()
	}
}
