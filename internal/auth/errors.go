package auth

import "errors"

// Sentinel errors for authentication and authorization.
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrTokenMalformed     = errors.New("auth: token malformed")
	ErrInvalidSignature   = errors.New("auth: invalid token signature")
	ErrTokenExpired       = errors.New("auth: token expired")

	// Authorization errors
	ErrForbidden = errors.New("auth: access denied")
)

// FailureReason returns a short label for a token verification error, for logs and metrics.
func FailureReason(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrInvalidSignature):
		return "invalid_signature"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	default:
		return "unknown"
	}
}
