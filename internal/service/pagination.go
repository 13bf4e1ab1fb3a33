package service

import apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 1000
)

// Page is a validated skip/limit window.
type Page struct {
	Offset int
	Limit  int
}

// NewPage validates listing parameters. A zero limit selects DefaultPageLimit and
// limits above MaxPageLimit are clamped.
func NewPage(skip, limit int) (Page, error) {
	if skip < 0 {
		return Page{}, apperrors.NewValidationError("skip must not be negative", map[string]any{"skip": skip})
	}
	if limit < 0 {
		return Page{}, apperrors.NewValidationError("limit must not be negative", map[string]any{"limit": limit})
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Page{Offset: skip, Limit: limit}, nil
}
