package repository

import (
	"context"

	"gorm.io/gorm"

	"jobfair/internal/model"
)

// CompanyRepository defines company profile persistence.
type CompanyRepository interface {
	Create(ctx context.Context, company *model.Company) error
	Update(ctx context.Context, company *model.Company) error
	FindByCompanyID(ctx context.Context, companyID string) (*model.Company, error)
	AddDocuments(ctx context.Context, docs []model.CompanyDocument) error
	DeleteDocuments(ctx context.Context, companyID string, ids []string) error
}

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a new company repository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Omit("Documents").Create(company).Error
}

func (r *companyRepository) Update(ctx context.Context, company *model.Company) error {
	return r.db.WithContext(ctx).Omit("Documents").Save(company).Error
}

// FindByCompanyID loads the profile owned by companyID with its documents.
func (r *companyRepository) FindByCompanyID(ctx context.Context, companyID string) (*model.Company, error) {
	var company model.Company
	err := r.db.WithContext(ctx).
		Preload("Documents", func(db *gorm.DB) *gorm.DB { return db.Order("created_at") }).
		Where("company_id = ?", companyID).
		First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) AddDocuments(ctx context.Context, docs []model.CompanyDocument) error {
	if len(docs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&docs).Error
}

func (r *companyRepository) DeleteDocuments(ctx context.Context, companyID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("company_id = ? AND id IN ?", companyID, ids).
		Delete(&model.CompanyDocument{}).Error
}
