package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hr-service/internal/auth"
	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/events"
	"github.com/spec-kit/hr-service/internal/observability"
	"github.com/spec-kit/hr-service/internal/repository"
	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

const (
	loginResultSuccess = "success"
	loginResultFailure = "failure"
	loginResultLocked  = "locked"
)

// AuthService coordinates login, token issuance and principal provisioning.
type AuthService struct {
	tokens      *auth.TokenManager
	hasher      *auth.PasswordHasher
	attempts    repository.LoginAttemptRepository
	metrics     *observability.Metrics
	logger      *zap.Logger
	events      publisher
	maxFailures int
	lockout     time.Duration
	dummyHash   string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Tokens      *auth.TokenManager
	Hasher      *auth.PasswordHasher
	Attempts    repository.LoginAttemptRepository
	Events      events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
	Clock       auth.Clock
	MaxFailures int
	Lockout     time.Duration
}

// NewAuthService builds the service. Attempts may be nil to disable lockout.
func NewAuthService(deps AuthDependencies) (*AuthService, error) {
	if deps.Tokens == nil || deps.Hasher == nil {
		return nil, errors.New("auth service requires a token manager and a password hasher")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	// Logins for unknown usernames are verified against this hash.
	dummy, err := deps.Hasher.Hash("timing-equalizer-password")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		tokens:      deps.Tokens,
		hasher:      deps.Hasher,
		attempts:    deps.Attempts,
		metrics:     deps.Metrics,
		logger:      logger,
		events:      newPublisher(deps.Events, logger, deps.Clock),
		maxFailures: deps.MaxFailures,
		lockout:     deps.Lockout,
		dummyHash:   dummy,
	}, nil
}

func invalidCredentials() error {
	return apperrors.NewAuthenticationError("incorrect username or password", auth.ErrInvalidCredentials)
}

// Login verifies credentials against users and issues a bearer token. Unknown
// users and wrong passwords produce the same error.
func (s *AuthService) Login(ctx context.Context, users repository.UserRepository, username, password string) (*domain.Token, error) {
	username = strings.TrimSpace(username)

	if s.lockedOut(ctx, username) {
		s.metrics.RecordLogin(loginResultLocked)
		s.logger.Info("login rejected, too many failures", zap.String("username", username))
		return nil, apperrors.NewTooManyRequests("too many failed login attempts, try again later")
	}

	user, err := users.GetByUsername(ctx, username)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		auth.VerifyPassword(password, s.dummyHash)
		return nil, s.loginFailed(ctx, username, "unknown_user")
	default:
		return nil, apperrors.NewInternalError(err)
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, s.loginFailed(ctx, username, "wrong_password")
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if s.attempts != nil {
		if err := s.attempts.Reset(ctx, username); err != nil {
			s.logger.Warn("reset login failures", zap.String("username", username), zap.Error(err))
		}
	}
	s.metrics.RecordLogin(loginResultSuccess)
	s.events.publish(ctx, events.EventLoginSucceeded, auth.Principal{Username: user.Username, Role: user.Role}, user.ID, nil)
	return token, nil
}

func (s *AuthService) lockedOut(ctx context.Context, username string) bool {
	if s.attempts == nil || s.maxFailures <= 0 || username == "" {
		return false
	}
	failures, err := s.attempts.Failures(ctx, username)
	if err != nil {
		s.logger.Warn("read login failures", zap.String("username", username), zap.Error(err))
		return false
	}
	return failures >= int64(s.maxFailures)
}

func (s *AuthService) loginFailed(ctx context.Context, username, reason string) error {
	if s.attempts != nil && username != "" {
		if _, err := s.attempts.RecordFailure(ctx, username, s.lockout); err != nil {
			s.logger.Warn("record login failure", zap.String("username", username), zap.Error(err))
		}
	}
	s.metrics.RecordLogin(loginResultFailure)
	s.logger.Debug("login failed", zap.String("username", username), zap.String("reason", reason))
	s.events.publish(ctx, events.EventLoginFailed, auth.Principal{Username: username}, 0, events.LoginFailedPayload{Reason: reason})
	return invalidCredentials()
}

// CurrentUser loads the account behind an authenticated principal.
func (s *AuthService) CurrentUser(ctx context.Context, users repository.UserRepository, principal auth.Principal) (*domain.User, error) {
	user, err := users.GetByUsername(ctx, principal.Username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewAuthenticationError("could not validate credentials", auth.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return user, nil
}

// CreateUser provisions a new principal. Only admins may do so.
func (s *AuthService) CreateUser(ctx context.Context, users repository.UserRepository, actor auth.Principal, username, password string, role domain.Role) (*domain.User, error) {
	allowed := auth.Authorize(actor, auth.ActionCreate, nil)
	s.metrics.RecordDecision(string(auth.ActionCreate), allowed)
	if !allowed {
		return nil, forbidden()
	}
	user, err := s.provision(ctx, users, username, password, role)
	if err != nil {
		return nil, err
	}
	s.events.publish(ctx, events.EventUserProvisioned, actor, user.ID, events.UserProvisionedPayload{Username: user.Username, Role: user.Role})
	return user, nil
}

// EnsureAdmin creates an admin principal unless username already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, users repository.UserRepository, username, password string) (bool, error) {
	existing, err := users.GetByUsername(ctx, username)
	if err == nil {
		if existing.Role != domain.RoleAdmin {
			s.logger.Warn("bootstrap account exists without admin role", zap.String("username", username))
		}
		return false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return false, err
	}
	user, err := s.provision(ctx, users, username, password, domain.RoleAdmin)
	if err != nil {
		return false, err
	}
	s.events.publish(ctx, events.EventUserProvisioned, auth.Principal{Username: "system"}, user.ID, events.UserProvisionedPayload{Username: user.Username, Role: user.Role})
	return true, nil
}

func (s *AuthService) provision(ctx context.Context, users repository.UserRepository, username, password string, role domain.Role) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError("username required", nil)
	}
	if password == "" {
		return nil, apperrors.NewValidationError("password required", nil)
	}
	if len(password) > auth.MaxPasswordBytes {
		return nil, apperrors.NewValidationError("password too long", map[string]any{"max_bytes": auth.MaxPasswordBytes})
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	user := &domain.User{Username: username, PasswordHash: hash, Role: role}
	if err := users.Create(ctx, user); err != nil {
		return nil, mapRepoError("user", 0, err)
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
