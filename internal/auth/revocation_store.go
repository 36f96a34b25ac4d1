package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"jobfair/internal/repository"
)

// RevocationStore implements logout-based soft revocation: every token
// issued before the subject's last logout is rejected.
type RevocationStore interface {
	RecordLogout(ctx context.Context, userID string, at time.Time) error
	// Check returns nil, an error wrapping ErrTokenRevoked, or a store error.
	Check(ctx context.Context, claims *Claims) error
}

// UserRevocationStore keeps the last logout time on the user record.
type UserRevocationStore struct {
	users repository.UserRepository
}

// Ensure UserRevocationStore implements RevocationStore
var _ RevocationStore = (*UserRevocationStore)(nil)

// NewUserRevocationStore creates a revocation store over the user table.
func NewUserRevocationStore(users repository.UserRepository) *UserRevocationStore {
	return &UserRevocationStore{users: users}
}

// RecordLogout stores at as the user's last logout.
func (s *UserRevocationStore) RecordLogout(ctx context.Context, userID string, at time.Time) error {
	if err := s.users.SetLastLogout(ctx, userID, at); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("record logout: %w", err)
	}
	return nil
}

// Check re-reads the subject on every call. A deleted subject revokes the token.
// Both instants are compared at millisecond precision, the resolution of iat
// and of the stored logout time.
func (s *UserRevocationStore) Check(ctx context.Context, claims *Claims) error {
	last, err := s.users.LastLogout(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: subject no longer exists", ErrTokenRevoked)
		}
		return fmt.Errorf("load last logout: %w", err)
	}
	if last == nil {
		return nil
	}

	var issued time.Time
	if claims.IssuedAt != nil {
		issued = claims.IssuedAt.Time
	}
	if issued.Truncate(time.Millisecond).Before(last.Truncate(time.Millisecond)) {
		return ErrTokenRevoked
	}
	return nil
}
