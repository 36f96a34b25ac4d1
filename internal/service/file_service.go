package service

import (
	"context"

	"github.com/sirupsen/logrus"

	apperrors "jobfair/internal/errors"
	"jobfair/internal/model"
	"jobfair/internal/repository"
	"jobfair/internal/storage"
)

// FileService replaces and serves the banner and poster of a company.
type FileService interface {
	// Replace stores the given uploads, saves the record and only then
	// deletes the objects they replace. At least one upload is required.
	Replace(ctx context.Context, companyID string, banner, poster *Upload) (*model.CompanyFiles, error)
	Get(ctx context.Context, companyID string) (*model.CompanyFiles, error)
}

type fileService struct {
	repo   repository.FilesRepository
	blobs  storage.BlobStore
	logger logrus.FieldLogger
}

// NewFileService creates a new file service.
func NewFileService(repo repository.FilesRepository, blobs storage.BlobStore, logger logrus.FieldLogger) FileService {
	return &fileService{repo: repo, blobs: blobs, logger: logger}
}

func (s *fileService) Replace(ctx context.Context, companyID string, banner, poster *Upload) (*model.CompanyFiles, error) {
	if banner == nil && poster == nil {
		return nil, apperrors.Validation(apperrors.MsgMissingFields)
	}

	files, err := s.repo.Find(ctx, companyID)
	if err != nil {
		if !isNotFound(err) {
			return nil, apperrors.Dependency("find files", err)
		}
		files = &model.CompanyFiles{CompanyID: companyID}
	}

	var uploaded, replaced []string
	put := func(u *Upload, folder string, slot *string) error {
		if u == nil {
			return nil
		}
		key := storage.NewKey(folder+"/"+companyID, u.FileName)
		if err := s.blobs.Put(ctx, key, u.ContentType, u.Body); err != nil {
			return err
		}
		uploaded = append(uploaded, key)
		replaced = append(replaced, *slot)
		*slot = key
		return nil
	}

	if err := put(banner, "banners", &files.BannerKey); err != nil {
		discardBlobs(ctx, s.blobs, s.logger, uploaded...)
		return nil, apperrors.Dependency("upload banner", err)
	}
	if err := put(poster, "posters", &files.PosterKey); err != nil {
		discardBlobs(ctx, s.blobs, s.logger, uploaded...)
		return nil, apperrors.Dependency("upload poster", err)
	}

	if err := s.repo.Upsert(ctx, files); err != nil {
		discardBlobs(ctx, s.blobs, s.logger, uploaded...)
		return nil, apperrors.Dependency("save files", err)
	}
	discardBlobs(ctx, s.blobs, s.logger, replaced...)

	if err := s.presign(ctx, files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *fileService) Get(ctx context.Context, companyID string) (*model.CompanyFiles, error) {
	files, err := s.repo.Find(ctx, companyID)
	if err != nil {
		return nil, storeError("find files", err, MsgFilesNotFound)
	}
	if err := s.presign(ctx, files); err != nil {
		return nil, err
	}
	return files, nil
}

func (s *fileService) presign(ctx context.Context, files *model.CompanyFiles) error {
	var err error
	if files.BannerKey != "" {
		if files.Banner, err = s.blobs.URL(ctx, files.BannerKey); err != nil {
			return apperrors.Dependency("presign banner", err)
		}
	}
	if files.PosterKey != "" {
		if files.Poster, err = s.blobs.URL(ctx, files.PosterKey); err != nil {
			return apperrors.Dependency("presign poster", err)
		}
	}
	return nil
}
