package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"jobfair/internal/auth"
	apperrors "jobfair/internal/errors"
	"jobfair/internal/model"
	"jobfair/internal/repository/mocks"
)

var (
	acmeCo  = auth.Identity{ID: "co-1", Role: model.RoleCompany}
	otherCo = auth.Identity{ID: "co-2", Role: model.RoleCompany}
	admin   = auth.Identity{ID: "adm", Role: model.RoleAdmin}
)

func TestOfferService_Create(t *testing.T) {
	ctx := context.Background()
	offers := new(mocks.OfferRepository)
	companies := new(mocks.CompanyRepository)
	svc := NewOfferService(offers, companies)

	companies.On("FindByCompanyID", ctx, "co-1").Return(&model.Company{CompanyID: "co-1", Name: "Acme"}, nil)
	companies.On("FindByCompanyID", ctx, "co-2").Return(nil, gorm.ErrRecordNotFound)
	offers.On("Create", ctx, mock.Anything).Return(nil)

	offer, err := svc.Create(ctx, acmeCo, OfferInput{Position: "Go dev", Location: "Madrid", Description: "Build APIs"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", offer.CompanyName)
	assert.Equal(t, "co-1", offer.CompanyID)

	_, err = svc.Create(ctx, otherCo, OfferInput{Position: "Go dev", Location: "Madrid", Description: "x"})
	assertKind(t, err, apperrors.KindNotFound)

	_, err = svc.Create(ctx, acmeCo, OfferInput{Position: "Go dev"})
	assertKind(t, err, apperrors.KindValidation)
}

func TestOfferService_Ownership(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		caller auth.Identity
		kind   apperrors.Kind
	}{
		{"owner", acmeCo, 0},
		{"admin", admin, 0},
		{"other company", otherCo, apperrors.KindAuthorization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offers := new(mocks.OfferRepository)
			svc := NewOfferService(offers, new(mocks.CompanyRepository))
			offers.On("FindByID", ctx, "o1").Return(&model.Offer{ID: "o1", CompanyID: "co-1", Position: "old", Location: "Madrid"}, nil)
			offers.On("Update", ctx, mock.Anything).Return(nil)
			offers.On("Delete", ctx, "o1").Return(nil)

			updated, err := svc.Update(ctx, tt.caller, "o1", OfferUpdate{Position: ptr("new"), Location: ptr("")})
			delErr := svc.Delete(ctx, tt.caller, "o1")

			if tt.kind == 0 {
				require.NoError(t, err)
				require.NoError(t, delErr)
				assert.Equal(t, "new", updated.Position)
				assert.Equal(t, "Madrid", updated.Location)
				return
			}
			assertKind(t, err, tt.kind)
			assertKind(t, delErr, tt.kind)
			offers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			offers.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestOfferService_ListAndSearch(t *testing.T) {
	ctx := context.Background()
	offers := new(mocks.OfferRepository)
	svc := NewOfferService(offers, new(mocks.CompanyRepository))

	filter := model.OfferFilter{Location: "Madrid"}
	offers.On("ListByCompany", ctx, "co-1").Return(nil, nil)
	offers.On("Search", ctx, filter).Return([]model.Offer{{ID: "o1"}}, nil)
	offers.On("FindByID", ctx, "missing").Return(nil, gorm.ErrRecordNotFound)

	own, err := svc.ListByCompany(ctx, "co-1")
	require.NoError(t, err)
	assert.NotNil(t, own)
	assert.Empty(t, own)

	found, err := svc.Search(ctx, filter)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	assertKind(t, svc.Delete(ctx, admin, "missing"), apperrors.KindNotFound)
}
