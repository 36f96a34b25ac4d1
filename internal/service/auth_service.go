package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"jobfair/internal/auth"
	"jobfair/internal/cache"
	apperrors "jobfair/internal/errors"
	"jobfair/internal/metrics"
	"jobfair/internal/model"
	"jobfair/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	// Login resolves identifier as a name or an email, verifies password and
	// issues a session token.
	Login(ctx context.Context, identifier, password string) (token string, user *model.User, err error)
	// Logout revokes every token issued to the owner of rawToken so far. An
	// absent or invalid token is not an error.
	Logout(ctx context.Context, rawToken string) error
	// TokenTTL is the lifetime of issued tokens.
	TokenTTL() time.Duration
}

// AuthDeps groups the collaborators of the auth service. Revocations and
// Metrics may be nil.
type AuthDeps struct {
	Users       repository.UserRepository
	Hasher      auth.Hasher
	Tokens      *auth.TokenService
	Identities  cache.IdentityCache
	CacheTTL    time.Duration
	Revocations auth.RevocationStore
	Metrics     *metrics.Metrics
	Logger      logrus.FieldLogger
}

type authService struct {
	AuthDeps
	now func() time.Time
}

// NewAuthService creates a new authentication service.
func NewAuthService(deps AuthDeps) AuthService {
	return &authService{AuthDeps: deps, now: time.Now}
}

func (s *authService) TokenTTL() time.Duration {
	return s.Tokens.TTL()
}

func (s *authService) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	if identifier == "" || password == "" {
		return "", nil, apperrors.Validation(apperrors.MsgMissingFields)
	}

	user, err := s.resolve(ctx, identifier)
	if err != nil {
		if isNotFound(err) {
			s.Metrics.ObserveLogin(metrics.LoginInvalid)
			return "", nil, apperrors.InvalidCredentials()
		}
		s.Metrics.ObserveLogin(metrics.LoginError)
		return "", nil, apperrors.Dependency("resolve identity", err)
	}

	// the password is checked on cache hits too
	if !s.Hasher.Verify(password, user.PasswordHash) {
		s.Metrics.ObserveLogin(metrics.LoginInvalid)
		return "", nil, apperrors.InvalidCredentials()
	}

	token, err := s.Tokens.Issue(auth.IdentityOf(user), s.Tokens.TTL())
	if err != nil {
		s.Metrics.ObserveLogin(metrics.LoginError)
		return "", nil, apperrors.Dependency("issue token", err)
	}

	s.Metrics.ObserveLogin(metrics.LoginSuccess)
	s.Logger.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Info("login succeeded")
	return token, user, nil
}

// resolve reads through the identity cache. Only successful lookups are
// cached.
func (s *authService) resolve(ctx context.Context, identifier string) (*model.User, error) {
	if user, ok := s.Identities.Get(identifier); ok {
		s.Metrics.ObserveIdentityCache(true)
		return user, nil
	}
	s.Metrics.ObserveIdentityCache(false)

	user, err := s.Users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	s.Identities.Set(identifier, user, s.CacheTTL)
	return user, nil
}

func (s *authService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" || s.Revocations == nil {
		return nil
	}
	claims, err := s.Tokens.Verify(rawToken)
	if err != nil {
		s.Logger.WithField("reason", auth.FailureKind(err)).Debug("logout without a valid token")
		return nil
	}
	if err := s.Revocations.RecordLogout(ctx, claims.UserID, s.now()); err != nil {
		return apperrors.Dependency("record logout", err)
	}
	s.Logger.WithField("user_id", claims.UserID).Info("logout recorded")
	return nil
}
