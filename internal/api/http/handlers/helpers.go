package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hr-service/internal/api/dto"
	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/repository"
	"github.com/spec-kit/hr-service/internal/service"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

// SessionKey is the fiber Locals key holding the request's repository session.
const SessionKey = "repository_session"

func session(c *fiber.Ctx) (repository.Session, error) {
	sess, ok := c.Locals(SessionKey).(repository.Session)
	if !ok {
		return nil, apperrors.NewInternalError(nil)
	}
	return sess, nil
}

func principal(c *fiber.Ctx) (auth.Principal, error) {
	p, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.Principal{}, apperrors.NewUnauthorized("not authenticated")
	}
	return p, nil
}

func parseID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid id", map[string]any{"id": raw})
	}
	return id, nil
}

func parsePage(c *fiber.Ctx) (service.Page, error) {
	skip, err := queryInt(c, "skip")
	if err != nil {
		return service.Page{}, err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return service.Page{}, err
	}
	return service.NewPage(skip, limit)
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid "+key, map[string]any{key: raw})
	}
	return v, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Validate(out)
}
