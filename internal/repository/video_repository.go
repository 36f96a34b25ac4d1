package repository

import (
	"context"

	"gorm.io/gorm"

	"jobfair/internal/model"
)

// VideoRepository defines video persistence.
type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	List(ctx context.Context) ([]model.Video, error)
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository creates a new video repository.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) List(ctx context.Context) ([]model.Video, error) {
	var videos []model.Video
	if err := r.db.WithContext(ctx).Order("created_at").Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}
