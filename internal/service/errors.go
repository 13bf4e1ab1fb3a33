package service

import (
	"errors"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

var constraintMessages = map[string]string{
	"users_username_key":           "username already exists",
	"departments_name_key":         "department name already exists",
	"employees_email_key":          "email already registered",
	"employees_username_key":       "account already linked to another employee",
	"employees_department_id_fkey": "department does not exist",
	"employees_username_fkey":      "username does not match an account",
}

func forbidden() error {
	return apperrors.NewForbiddenError("not authorized to perform this action", auth.ErrForbidden)
}

// mapRepoError converts repository sentinels into API errors for resource.
func mapRepoError(resource string, id int64, err error) error {
	if err == nil {
		return nil
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	var constraint string
	var ce *repository.ConstraintError
	if errors.As(err, &ce) {
		constraint = ce.Constraint
	}
	message, known := constraintMessages[constraint]
	details := map[string]any{}
	if constraint != "" {
		details["constraint"] = constraint
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, map[string]any{"id": id})
	case errors.Is(err, repository.ErrConflict):
		if !known {
			message = resource + " already exists"
		}
		return apperrors.NewConflict(message, details)
	case errors.Is(err, repository.ErrReferenced):
		if !known {
			message = "referenced record does not exist"
		}
		return apperrors.NewValidationError(message, details)
	}
	return apperrors.NewInternalError(err)
}
