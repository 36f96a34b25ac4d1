// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"jobfair/internal/model"
	"jobfair/internal/repository"
)

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.CompanyRepository = (*CompanyRepository)(nil)
	_ repository.StandRepository   = (*StandRepository)(nil)
	_ repository.OfferRepository   = (*OfferRepository)(nil)
	_ repository.VideoRepository   = (*VideoRepository)(nil)
	_ repository.FilesRepository   = (*FilesRepository)(nil)
)

// UserRepository is a mock implementation of repository.UserRepository.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) FindByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *UserRepository) SetInformation(ctx context.Context, id string, information bool) error {
	args := m.Called(ctx, id, information)
	return args.Error(0)
}

func (m *UserRepository) SetLastLogout(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *UserRepository) LastLogout(ctx context.Context, id string) (*time.Time, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

// CompanyRepository is a mock implementation of repository.CompanyRepository.
type CompanyRepository struct {
	mock.Mock
}

func (m *CompanyRepository) Create(ctx context.Context, company *model.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *CompanyRepository) Update(ctx context.Context, company *model.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *CompanyRepository) FindByCompanyID(ctx context.Context, companyID string) (*model.Company, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Company), args.Error(1)
}

func (m *CompanyRepository) AddDocuments(ctx context.Context, docs []model.CompanyDocument) error {
	args := m.Called(ctx, docs)
	return args.Error(0)
}

func (m *CompanyRepository) DeleteDocuments(ctx context.Context, companyID string, ids []string) error {
	args := m.Called(ctx, companyID, ids)
	return args.Error(0)
}

// StandRepository is a mock implementation of repository.StandRepository.
type StandRepository struct {
	mock.Mock
}

func (m *StandRepository) Upsert(ctx context.Context, stand *model.Stand) error {
	args := m.Called(ctx, stand)
	return args.Error(0)
}

func (m *StandRepository) FindByID(ctx context.Context, standID string) (*model.Stand, error) {
	args := m.Called(ctx, standID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Stand), args.Error(1)
}

// OfferRepository is a mock implementation of repository.OfferRepository.
type OfferRepository struct {
	mock.Mock
}

func (m *OfferRepository) Create(ctx context.Context, offer *model.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *OfferRepository) Update(ctx context.Context, offer *model.Offer) error {
	args := m.Called(ctx, offer)
	return args.Error(0)
}

func (m *OfferRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *OfferRepository) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Offer), args.Error(1)
}

func (m *OfferRepository) ListByCompany(ctx context.Context, companyID string) ([]model.Offer, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Offer), args.Error(1)
}

func (m *OfferRepository) Search(ctx context.Context, filter model.OfferFilter) ([]model.Offer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Offer), args.Error(1)
}

// VideoRepository is a mock implementation of repository.VideoRepository.
type VideoRepository struct {
	mock.Mock
}

func (m *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	args := m.Called(ctx, video)
	return args.Error(0)
}

func (m *VideoRepository) List(ctx context.Context) ([]model.Video, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Video), args.Error(1)
}

// FilesRepository is a mock implementation of repository.FilesRepository.
type FilesRepository struct {
	mock.Mock
}

func (m *FilesRepository) Find(ctx context.Context, companyID string) (*model.CompanyFiles, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyFiles), args.Error(1)
}

func (m *FilesRepository) Upsert(ctx context.Context, files *model.CompanyFiles) error {
	args := m.Called(ctx, files)
	return args.Error(0)
}
