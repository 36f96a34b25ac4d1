package main

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobfair/internal/auth"
	"jobfair/internal/cache"
	"jobfair/internal/model"
	"jobfair/internal/repository/mocks"
	"jobfair/internal/service"
)

func newSeedUsers(repo *mocks.UserRepository) service.UserService {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return service.NewUserService(repo, auth.NewBcryptHasher(), cache.NewMemoryIdentityCache(4, time.Minute), logger)
}

func TestSeedAccounts_CreatesMissingAdmin(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByEmail", mock.Anything, "admin@jobfair.local").Return(nil, gorm.ErrRecordNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Role == model.RoleAdmin && u.PasswordHash != "" && u.PasswordHash != "pw"
	})).Return(nil).Once()

	created, err := seedAccounts(context.Background(), repo, newSeedUsers(repo), []seedAccount{
		{Name: "admin", Email: "admin@jobfair.local", Password: "pw", Role: model.RoleAdmin},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	repo.AssertExpectations(t)
}

func TestSeedAccounts_SkipsExisting(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByEmail", mock.Anything, "admin@jobfair.local").Return(&model.User{ID: "u-1"}, nil)

	created, err := seedAccounts(context.Background(), repo, newSeedUsers(repo), []seedAccount{
		{Name: "admin", Email: "admin@jobfair.local", Password: "pw", Role: model.RoleAdmin},
	})

	require.NoError(t, err)
	assert.Zero(t, created)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSeedAccounts_LookupFailure(t *testing.T) {
	repo := new(mocks.UserRepository)
	repo.On("FindByEmail", mock.Anything, "admin@jobfair.local").Return(nil, errors.New("connection refused"))

	_, err := seedAccounts(context.Background(), repo, newSeedUsers(repo), []seedAccount{
		{Name: "admin", Email: "admin@jobfair.local", Password: "pw", Role: model.RoleAdmin},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin@jobfair.local")
}
