package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
)

func TestToDomainError(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"domain error passes through", NewConflict("dup", nil), "CONFLICT", http.StatusConflict},
		{"wrapped domain error", fmt.Errorf("ctx: %w", NewForbidden("no")), "FORBIDDEN", http.StatusForbidden},
		{"fiber not found", fiber.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
		{"fiber method not allowed", fiber.ErrMethodNotAllowed, "METHOD_NOT_ALLOWED", http.StatusMethodNotAllowed},
		{"no rows", pgx.ErrNoRows, "NOT_FOUND", http.StatusNotFound},
		{"unknown", cause, "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.HTTPStatus != tt.wantStatus {
				t.Errorf("HTTPStatus = %d, want %d", got.HTTPStatus, tt.wantStatus)
			}
		})
	}

	if ToDomainError(nil) != nil {
		t.Error("ToDomainError(nil) should be nil")
	}
}

func TestCauseIsPreserved(t *testing.T) {
	sentinel := errors.New("sentinel")

	if err := NewAuthenticationError("nope", sentinel); !errors.Is(err, sentinel) {
		t.Errorf("authentication error lost its cause")
	}
	if err := NewForbiddenError("nope", sentinel); !errors.Is(err, sentinel) {
		t.Errorf("forbidden error lost its cause")
	}

	de := ToDomainError(NewAuthenticationError("could not validate credentials", sentinel))
	if de.Message != "could not validate credentials" {
		t.Errorf("Message = %q, cause must not leak into the message", de.Message)
	}
}
