package repository

import (
	"context"

	"gorm.io/gorm"

	"jobfair/internal/model"
)

// OfferRepository defines offer persistence.
type OfferRepository interface {
	Create(ctx context.Context, offer *model.Offer) error
	Update(ctx context.Context, offer *model.Offer) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*model.Offer, error)
	ListByCompany(ctx context.Context, companyID string) ([]model.Offer, error)
	Search(ctx context.Context, filter model.OfferFilter) ([]model.Offer, error)
}

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository.
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *offerRepository) Update(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

func (r *offerRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Offer{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *offerRepository) FindByID(ctx context.Context, id string) (*model.Offer, error) {
	var offer model.Offer
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) ListByCompany(ctx context.Context, companyID string) ([]model.Offer, error) {
	var offers []model.Offer
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("created_at DESC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// Search matches position and location as substrings and the type fields
// exactly.
func (r *offerRepository) Search(ctx context.Context, filter model.OfferFilter) ([]model.Offer, error) {
	q := r.db.WithContext(ctx).Model(&model.Offer{})
	if filter.Position != "" {
		q = q.Where("position LIKE ?", "%"+filter.Position+"%")
	}
	if filter.Location != "" {
		q = q.Where("location LIKE ?", "%"+filter.Location+"%")
	}
	if filter.JobType != "" {
		q = q.Where("job_type = ?", filter.JobType)
	}
	if filter.WorkplaceType != "" {
		q = q.Where("workplace_type = ?", filter.WorkplaceType)
	}

	var offers []model.Offer
	if err := q.Order("created_at DESC").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}
