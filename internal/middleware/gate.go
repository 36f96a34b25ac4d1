// Package middleware holds the echo middleware that guards the API: the
// authorization gate and the login rate limiter.
package middleware

import (
	"context"
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"jobfair/internal/auth"
	apperrors "jobfair/internal/errors"
	"jobfair/internal/metrics"
	"jobfair/internal/model"
)

const (
	// IdentityContextKey is where the verified auth.Identity is stored.
	IdentityContextKey = "identity"
	// LegacyCookieName is accepted alongside the configured cookie.
	LegacyCookieName = "authToken"

	gateErrorKey = "gate_error"
)

// Gate authenticates requests from a session cookie or a Bearer header and
// optionally enforces a role. Authenticated and RequireRole share one
// verification step.
type Gate struct {
	tokens      *auth.TokenService
	revocations auth.RevocationStore
	metrics     *metrics.Metrics
	logger      logrus.FieldLogger
	authn       echo.MiddlewareFunc
}

// NewGate builds a gate. A nil revocations store makes tokens fully
// stateless: logout then only clears the cookie.
func NewGate(tokens *auth.TokenService, revocations auth.RevocationStore, cookieName string, m *metrics.Metrics, logger logrus.FieldLogger) *Gate {
	g := &Gate{
		tokens:      tokens,
		revocations: revocations,
		metrics:     m,
		logger:      logger,
	}

	lookup := "cookie:" + cookieName + ",header:" + echo.HeaderAuthorization + ":Bearer "
	if cookieName != LegacyCookieName {
		lookup = "cookie:" + LegacyCookieName + "," + lookup
	}

	g.authn = echojwt.WithConfig(echojwt.Config{
		ContextKey:  IdentityContextKey,
		TokenLookup: lookup,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			claims, err := g.Verify(c.Request().Context(), raw)
			if err != nil {
				c.Set(gateErrorKey, err)
				return nil, err
			}
			return claims.Identity(), nil
		},
		ErrorHandler: g.reject,
	})
	return g
}

// Verify checks signature, expiry and, when enabled, logout revocation.
// Token failures wrap an auth.ErrToken* sentinel; store failures are
// returned as dependency errors.
func (g *Gate) Verify(ctx context.Context, raw string) (*auth.Claims, error) {
	claims, err := g.tokens.Verify(raw)
	if err != nil {
		return nil, err
	}
	if g.revocations != nil {
		if err := g.revocations.Check(ctx, claims); err != nil {
			if errors.Is(err, auth.ErrTokenRevoked) {
				return nil, err
			}
			return nil, apperrors.Dependency("check token revocation", err)
		}
	}
	return claims, nil
}

// reject turns every token failure into the same 401. The failure kind is
// only recorded internally.
func (g *Gate) reject(c echo.Context, _ error) error {
	err, _ := c.Get(gateErrorKey).(error)
	if err == nil {
		err = auth.ErrTokenMissing
	}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind == apperrors.KindDependency {
		return appErr
	}

	kind := auth.FailureKind(err)
	g.metrics.ObserveTokenRejection(kind)
	g.logger.WithFields(logrus.Fields{
		"reason":    kind,
		"path":      c.Path(),
		"remote_ip": c.RealIP(),
	}).Debug("token rejected")
	return apperrors.Unauthenticated()
}

// Authenticated requires a valid session.
func (g *Gate) Authenticated() echo.MiddlewareFunc {
	return g.authn
}

// RequireRole requires a valid session whose role is one of roles.
func (g *Gate) RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return g.authn(func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return apperrors.Unauthenticated()
			}
			if _, ok := allowed[id.Role]; !ok {
				return apperrors.Forbidden()
			}
			return next(c)
		})
	}
}

// SelfOrAdmin allows the request when the path parameter param equals the
// caller's id or the caller is an admin. It must run after the gate.
func SelfOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return apperrors.Unauthenticated()
			}
			if !id.CanAccess(c.Param(param)) {
				return apperrors.Forbidden()
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the identity attached by the gate.
func IdentityFrom(c echo.Context) (auth.Identity, bool) {
	id, ok := c.Get(IdentityContextKey).(auth.Identity)
	return id, ok
}
