package service

import (
	"context"
	"strings"

	apperrors "jobfair/internal/errors"
	"jobfair/internal/model"
	"jobfair/internal/repository"
)

// VideoService publishes and lists company videos.
type VideoService interface {
	Add(ctx context.Context, companyID, url string) (*model.Video, error)
	List(ctx context.Context) ([]model.Video, error)
}

type videoService struct {
	repo repository.VideoRepository
}

// NewVideoService creates a new video service.
func NewVideoService(repo repository.VideoRepository) VideoService {
	return &videoService{repo: repo}
}

func (s *videoService) Add(ctx context.Context, companyID, url string) (*model.Video, error) {
	url = strings.TrimSpace(url)
	if url == "" || companyID == "" {
		return nil, apperrors.Validation(apperrors.MsgMissingFields)
	}
	video := &model.Video{URL: url, CompanyID: companyID}
	if err := s.repo.Create(ctx, video); err != nil {
		return nil, apperrors.Dependency("create video", err)
	}
	return video, nil
}

func (s *videoService) List(ctx context.Context) ([]model.Video, error) {
	videos, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Dependency("list videos", err)
	}
	if videos == nil {
		videos = []model.Video{}
	}
	return videos, nil
}
