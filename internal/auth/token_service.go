package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"jobfair/internal/model"
)

// Verification failures. Verify wraps exactly one of the first three; the
// gate adds the last two. Callers must not reveal which one occurred.
var (
	ErrTokenMalformed        = errors.New("token malformed")
	ErrTokenSignatureInvalid = errors.New("token signature invalid")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenRevoked          = errors.New("token revoked")
	ErrTokenMissing          = errors.New("token missing")
)

// Issue times are compared against logout times stored with millisecond
// precision, so iat and exp carry milliseconds too.
func init() {
	jwt.TimePrecision = time.Millisecond
}

// ErrEmptySecret is returned when the signing secret is not configured.
var ErrEmptySecret = errors.New("signing secret is empty")

// Identity is the verified caller attached to a request.
type Identity struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Role    model.Role `json:"role"`
	StandID string     `json:"standID,omitempty"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// CanAccess reports whether the identity may act on a resource owned by
// ownerID: its own resources, or any resource for an admin.
func (i Identity) CanAccess(ownerID string) bool {
	return i.IsAdmin() || (ownerID != "" && i.ID == ownerID)
}

// IdentityOf builds the token identity of a stored user.
func IdentityOf(u *model.User) Identity {
	return Identity{ID: u.ID, Name: u.Name, Role: u.Role, StandID: u.StandID}
}

// Claims represents JWT claims.
type Claims struct {
	UserID  string     `json:"id"`
	Name    string     `json:"name"`
	Role    model.Role `json:"role"`
	StandID string     `json:"standID,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the caller described by the claims.
func (c *Claims) Identity() Identity {
	return Identity{ID: c.UserID, Name: c.Name, Role: c.Role, StandID: c.StandID}
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a token service. An empty secret is rejected so a
// misconfigured process cannot start with an insecure default.
func NewTokenService(secret string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL is the configured session lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for id that expires ttl from now.
func (s *TokenService) Issue(id Identity, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID:  id.ID,
		Name:    id.Name,
		Role:    id.Role,
		StandID: id.StandID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates signature and expiry and returns the claims. Tokens
// without a subject id or a known role are malformed.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, classify(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenMalformed
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing id claim", ErrTokenMalformed)
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: missing or unknown role claim", ErrTokenMalformed)
	}
	return claims, nil
}

// classify maps a jwt parse error onto one failure kind. A forged token that
// is also expired counts as a signature failure.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrTokenSignatureInvalid, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}

// FailureKind labels a verification error for logs and metrics.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTokenMissing):
		return "missing"
	case errors.Is(err, ErrTokenSignatureInvalid):
		return "signature_invalid"
	case errors.Is(err, ErrTokenExpired):
		return "expired"
	case errors.Is(err, ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, ErrTokenMalformed):
		return "malformed"
	default:
		return "error"
	}
}
