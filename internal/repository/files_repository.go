package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobfair/internal/model"
)

// FilesRepository persists banner and poster references per company.
type FilesRepository interface {
	Find(ctx context.Context, companyID string) (*model.CompanyFiles, error)
	Upsert(ctx context.Context, files *model.CompanyFiles) error
}

type filesRepository struct {
	db *gorm.DB
}

// NewFilesRepository creates a new files repository.
func NewFilesRepository(db *gorm.DB) FilesRepository {
	return &filesRepository{db: db}
}

func (r *filesRepository) Find(ctx context.Context, companyID string) (*model.CompanyFiles, error) {
	var files model.CompanyFiles
	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).First(&files).Error; err != nil {
		return nil, err
	}
	return &files, nil
}

func (r *filesRepository) Upsert(ctx context.Context, files *model.CompanyFiles) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(files).Error
}
