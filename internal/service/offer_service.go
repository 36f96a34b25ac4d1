package service

import (
	"context"
	"strings"

	"jobfair/internal/auth"
	apperrors "jobfair/internal/errors"
	"jobfair/internal/model"
	"jobfair/internal/repository"
)

const msgOfferFields = "Todos los campos son obligatorios"

// OfferInput is a new job offer.
type OfferInput struct {
	Position      string
	WorkplaceType string
	Location      string
	JobType       string
	Description   string
}

// OfferUpdate is a partial offer update. Nil or empty fields are kept.
type OfferUpdate struct {
	Position      *string
	WorkplaceType *string
	Location      *string
	JobType       *string
	Description   *string
}

// OfferService manages job offers. Only the owning company or an admin may
// change an offer.
type OfferService interface {
	Create(ctx context.Context, owner auth.Identity, in OfferInput) (*model.Offer, error)
	ListByCompany(ctx context.Context, companyID string) ([]model.Offer, error)
	Search(ctx context.Context, filter model.OfferFilter) ([]model.Offer, error)
	Update(ctx context.Context, caller auth.Identity, offerID string, in OfferUpdate) (*model.Offer, error)
	Delete(ctx context.Context, caller auth.Identity, offerID string) error
}

type offerService struct {
	offers    repository.OfferRepository
	companies repository.CompanyRepository
}

// NewOfferService creates a new offer service.
func NewOfferService(offers repository.OfferRepository, companies repository.CompanyRepository) OfferService {
	return &offerService{offers: offers, companies: companies}
}

func (s *offerService) Create(ctx context.Context, owner auth.Identity, in OfferInput) (*model.Offer, error) {
	if strings.TrimSpace(in.Position) == "" || strings.TrimSpace(in.Location) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, apperrors.Validation(msgOfferFields)
	}

	company, err := s.companies.FindByCompanyID(ctx, owner.ID)
	if err != nil {
		return nil, storeError("find company", err, MsgCompanyNotFound)
	}

	offer := &model.Offer{
		Position:      in.Position,
		WorkplaceType: in.WorkplaceType,
		Location:      in.Location,
		JobType:       in.JobType,
		Description:   in.Description,
		CompanyID:     owner.ID,
		CompanyName:   company.Name,
	}
	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, apperrors.Dependency("create offer", err)
	}
	return offer, nil
}

func (s *offerService) ListByCompany(ctx context.Context, companyID string) ([]model.Offer, error) {
	offers, err := s.offers.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, apperrors.Dependency("list offers", err)
	}
	if offers == nil {
		offers = []model.Offer{}
	}
	return offers, nil
}

func (s *offerService) Search(ctx context.Context, filter model.OfferFilter) ([]model.Offer, error) {
	offers, err := s.offers.Search(ctx, filter)
	if err != nil {
		return nil, apperrors.Dependency("search offers", err)
	}
	if offers == nil {
		offers = []model.Offer{}
	}
	return offers, nil
}

func (s *offerService) Update(ctx context.Context, caller auth.Identity, offerID string, in OfferUpdate) (*model.Offer, error) {
	offer, err := s.owned(ctx, caller, offerID)
	if err != nil {
		return nil, err
	}

	setIfNotEmpty(&offer.Position, in.Position)
	setIfNotEmpty(&offer.WorkplaceType, in.WorkplaceType)
	setIfNotEmpty(&offer.Location, in.Location)
	setIfNotEmpty(&offer.JobType, in.JobType)
	setIfNotEmpty(&offer.Description, in.Description)

	if err := s.offers.Update(ctx, offer); err != nil {
		return nil, apperrors.Dependency("update offer", err)
	}
	return offer, nil
}

func (s *offerService) Delete(ctx context.Context, caller auth.Identity, offerID string) error {
	if _, err := s.owned(ctx, caller, offerID); err != nil {
		return err
	}
	if err := s.offers.Delete(ctx, offerID); err != nil {
		return storeError("delete offer", err, MsgOfferNotFound)
	}
	return nil
}

// owned loads an offer the caller may modify.
func (s *offerService) owned(ctx context.Context, caller auth.Identity, offerID string) (*model.Offer, error) {
	offer, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, storeError("find offer", err, MsgOfferNotFound)
	}
	if !caller.CanAccess(offer.CompanyID) {
		return nil, apperrors.Forbidden()
	}
	return offer, nil
}

func setIfNotEmpty(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}
