package auth

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/hr-service/internal/domain"
)

const defaultTokenTTL = 60 * time.Minute

// TokenManager handles issuing and validating JWT tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	clock  Clock
	parser *jwt.Parser
}

// NewTokenManager builds a new manager. A nil clock falls back to the system clock.
func NewTokenManager(secret string, ttl time.Duration, clock Clock) *TokenManager {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithStrictDecoding(),
			jwt.WithTimeFunc(clock.Now),
		),
	}
}

// Claims describes JWT payload.
type Claims struct {
	Role domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TTL returns the default lifetime of issued tokens.
func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue builds and signs a token for the subject using the configured TTL.
func (tm *TokenManager) Issue(subject string, role domain.Role) (*domain.Token, error) {
	return tm.IssueWithTTL(subject, role, tm.ttl)
}

// IssueWithTTL builds and signs a token valid for ttl from now.
func (tm *TokenManager) IssueWithTTL(subject string, role domain.Role, ttl time.Duration) (*domain.Token, error) {
	if subject == "" {
		return nil, errors.New("token subject required")
	}
	if !role.Valid() {
		return nil, fmt.Errorf("cannot issue token for role %q", role)
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}

	issuedAt := jwt.NewNumericDate(tm.clock.Now())
	expiresAt := jwt.NewNumericDate(issuedAt.Add(ttl))
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			IssuedAt:  issuedAt,
			ExpiresAt: expiresAt,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return nil, err
	}
	return &domain.Token{
		ID:        claims.ID,
		Value:     tokenString,
		Subject:   subject,
		Role:      role,
		IssuedAt:  issuedAt.Time,
		ExpiresAt: expiresAt.Time,
	}, nil
}

// Verify validates a token and returns the principal it asserts. The signature
// is checked before any claim is decoded; the result is trusted without a
// credential store lookup.
func (tm *TokenManager) Verify(tokenStr string) (Principal, error) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return Principal{}, ErrTokenMalformed
	}

	sig, err := base64.RawURLEncoding.Strict().DecodeString(parts[2])
	if err != nil {
		return Principal{}, ErrInvalidSignature
	}
	signingString := parts[0] + "." + parts[1]
	if err := jwt.SigningMethodHS256.Verify(signingString, sig, tm.secret); err != nil {
		return Principal{}, ErrInvalidSignature
	}

	claims := &Claims{}
	parsed, err := tm.parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return Principal{}, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return Principal{}, ErrInvalidSignature
	default:
		return Principal{}, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if !parsed.Valid {
		return Principal{}, ErrTokenMalformed
	}

	if claims.Subject == "" || !claims.Role.Valid() {
		return Principal{}, ErrTokenMalformed
	}
	return Principal{Username: claims.Subject, Role: claims.Role}, nil
}
