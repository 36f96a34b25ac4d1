package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobfair/internal/model"
)

// StandRepository persists stand assignments.
type StandRepository interface {
	Upsert(ctx context.Context, stand *model.Stand) error
	FindByID(ctx context.Context, standID string) (*model.Stand, error)
}

type standRepository struct {
	db *gorm.DB
}

// NewStandRepository creates a new stand repository.
func NewStandRepository(db *gorm.DB) StandRepository {
	return &standRepository{db: db}
}

func (r *standRepository) Upsert(ctx context.Context, stand *model.Stand) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(stand).Error
}

func (r *standRepository) FindByID(ctx context.Context, standID string) (*model.Stand, error) {
	var stand model.Stand
	if err := r.db.WithContext(ctx).Where("stand_id = ?", standID).First(&stand).Error; err != nil {
		return nil, err
	}
	return &stand, nil
}
