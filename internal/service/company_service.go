package service

import (
	"context"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"jobfair/internal/auth"
	apperrors "jobfair/internal/errors"
	"jobfair/internal/model"
	"jobfair/internal/repository"
	"jobfair/internal/storage"
)

const (
	msgCompanyFields = "Nombre y descripción son obligatorios"
	msgInvalidLinks  = "Cada link debe tener un título y una URL válida"
	msgCompanyExists = "La empresa ya existe"
	msgStandFields   = "Hay que seleccionar un Stand y un Recepcionista"
	msgNoStand       = "El usuario no tiene stand asignado"
)

// Upload is one file received from a multipart form.
type Upload struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// CompanyInput is the profile submitted on creation.
type CompanyInput struct {
	Name                  string
	Description           string
	AdditionalInformation string
	Email                 string
	Sector                string
	Links                 []model.Link
}

// CompanyUpdate holds the mutable profile fields. Nil fields are kept.
type CompanyUpdate struct {
	Description           *string
	AdditionalInformation *string
	Sector                *string
	Links                 *[]model.Link
}

// CompanyService manages company profiles, their documents and stands.
type CompanyService interface {
	Create(ctx context.Context, ownerID string, in CompanyInput) (*model.Company, error)
	Get(ctx context.Context, companyID string) (*model.Company, error)
	Update(ctx context.Context, companyID string, in CompanyUpdate) (*model.Company, error)
	AddDocuments(ctx context.Context, companyID string, uploads []Upload) ([]model.CompanyDocument, error)
	// KeepDocuments deletes every document whose file name is not in keep.
	KeepDocuments(ctx context.Context, companyID string, keep []string) ([]model.CompanyDocument, error)
	SaveStand(ctx context.Context, owner auth.Identity, urlStand, urlRecep string) (*model.Stand, error)
	GetStand(ctx context.Context, standID string) (*model.Stand, error)
}

type companyService struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	stands    repository.StandRepository
	blobs     storage.BlobStore
	logger    logrus.FieldLogger
}

// NewCompanyService creates a new company service.
func NewCompanyService(companies repository.CompanyRepository, users repository.UserRepository, stands repository.StandRepository, blobs storage.BlobStore, logger logrus.FieldLogger) CompanyService {
	return &companyService{
		companies: companies,
		users:     users,
		stands:    stands,
		blobs:     blobs,
		logger:    logger,
	}
}

func validLinks(links []model.Link) bool {
	for _, l := range links {
		if strings.TrimSpace(l.AdditionalButtonTitle) == "" || strings.TrimSpace(l.AdditionalButtonLink) == "" {
			return false
		}
	}
	return true
}

func (s *companyService) Create(ctx context.Context, ownerID string, in CompanyInput) (*model.Company, error) {
	if ownerID == "" {
		return nil, apperrors.Validation(apperrors.MsgMissingFields)
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Description) == "" {
		return nil, apperrors.Validation(msgCompanyFields)
	}
	if !validLinks(in.Links) {
		return nil, apperrors.Validation(msgInvalidLinks)
	}

	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, storeError("find company owner", err, MsgUserNotFound)
	}
	if _, err := s.companies.FindByCompanyID(ctx, ownerID); err == nil {
		return nil, apperrors.Validation(msgCompanyExists)
	} else if !isNotFound(err) {
		return nil, apperrors.Dependency("find company", err)
	}

	links := in.Links
	if links == nil {
		links = []model.Link{}
	}
	company := &model.Company{
		CompanyID:             ownerID,
		Name:                  strings.TrimSpace(in.Name),
		Description:           in.Description,
		AdditionalInformation: in.AdditionalInformation,
		Email:                 in.Email,
		Sector:                in.Sector,
		Links:                 links,
	}
	if err := s.companies.Create(ctx, company); err != nil {
		return nil, apperrors.Dependency("create company", err)
	}
	if err := s.users.SetInformation(ctx, ownerID, true); err != nil {
		return nil, apperrors.Dependency("flag company information", err)
	}
	return company, nil
}

func (s *companyService) Get(ctx context.Context, companyID string) (*model.Company, error) {
	company, err := s.companies.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, storeError("find company", err, MsgCompanyNotFound)
	}
	if err := s.presignDocuments(ctx, company.Documents); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) Update(ctx context.Context, companyID string, in CompanyUpdate) (*model.Company, error) {
	company, err := s.companies.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, storeError("find company", err, MsgCompanyNotFound)
	}

	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			return nil, apperrors.Validation(msgCompanyFields)
		}
		company.Description = *in.Description
	}
	if in.Links != nil {
		if !validLinks(*in.Links) {
			return nil, apperrors.Validation(msgInvalidLinks)
		}
		company.Links = *in.Links
	}
	setIf(&company.AdditionalInformation, in.AdditionalInformation)
	setIf(&company.Sector, in.Sector)

	if err := s.companies.Update(ctx, company); err != nil {
		return nil, apperrors.Dependency("update company", err)
	}
	if err := s.presignDocuments(ctx, company.Documents); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *companyService) AddDocuments(ctx context.Context, companyID string, uploads []Upload) ([]model.CompanyDocument, error) {
	if len(uploads) == 0 {
		return nil, apperrors.Validation(apperrors.MsgMissingFields)
	}
	if _, err := s.companies.FindByCompanyID(ctx, companyID); err != nil {
		return nil, storeError("find company", err, MsgCompanyNotFound)
	}

	docs := make([]model.CompanyDocument, 0, len(uploads))
	for _, u := range uploads {
		key := storage.NewKey("documents/"+companyID, u.FileName)
		if err := s.blobs.Put(ctx, key, u.ContentType, u.Body); err != nil {
			s.discard(ctx, documentKeys(docs)...)
			return nil, apperrors.Dependency("upload document", err)
		}
		docs = append(docs, model.CompanyDocument{
			CompanyID:  companyID,
			FileName:   u.FileName,
			StorageKey: key,
		})
	}

	if err := s.companies.AddDocuments(ctx, docs); err != nil {
		s.discard(ctx, documentKeys(docs)...)
		return nil, apperrors.Dependency("save documents", err)
	}
	if err := s.presignDocuments(ctx, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *companyService) KeepDocuments(ctx context.Context, companyID string, keep []string) ([]model.CompanyDocument, error) {
	if keep == nil {
		return nil, apperrors.Validation(apperrors.MsgMissingFields)
	}
	company, err := s.companies.FindByCompanyID(ctx, companyID)
	if err != nil {
		return nil, storeError("find company", err, MsgCompanyNotFound)
	}

	wanted := make(map[string]struct{}, len(keep))
	for _, name := range keep {
		wanted[name] = struct{}{}
	}

	var kept, dropped []model.CompanyDocument
	for _, doc := range company.Documents {
		if _, ok := wanted[doc.FileName]; ok {
			kept = append(kept, doc)
		} else {
			dropped = append(dropped, doc)
		}
	}

	if len(dropped) > 0 {
		ids := make([]string, len(dropped))
		for i, doc := range dropped {
			ids[i] = doc.ID
		}
		if err := s.companies.DeleteDocuments(ctx, companyID, ids); err != nil {
			return nil, apperrors.Dependency("delete documents", err)
		}
		s.discard(ctx, documentKeys(dropped)...)
	}

	if kept == nil {
		kept = []model.CompanyDocument{}
	}
	if err := s.presignDocuments(ctx, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *companyService) SaveStand(ctx context.Context, owner auth.Identity, urlStand, urlRecep string) (*model.Stand, error) {
	if urlStand == "" || urlRecep == "" {
		return nil, apperrors.Validation(msgStandFields)
	}
	if owner.StandID == "" {
		return nil, apperrors.Validation(msgNoStand)
	}

	stand := &model.Stand{
		StandID:   owner.StandID,
		CompanyID: owner.ID,
		URLStand:  urlStand,
		URLRecep:  urlRecep,
	}
	if err := s.stands.Upsert(ctx, stand); err != nil {
		return nil, apperrors.Dependency("save stand", err)
	}
	return stand, nil
}

func (s *companyService) GetStand(ctx context.Context, standID string) (*model.Stand, error) {
	stand, err := s.stands.FindByID(ctx, standID)
	if err != nil {
		return nil, storeError("find stand", err, MsgStandNotFound)
	}
	return stand, nil
}

func (s *companyService) presignDocuments(ctx context.Context, docs []model.CompanyDocument) error {
	for i := range docs {
		url, err := s.blobs.URL(ctx, docs[i].StorageKey)
		if err != nil {
			return apperrors.Dependency("presign document", err)
		}
		docs[i].URL = url
	}
	return nil
}

// discard removes blobs whose records were never saved or were just
// deleted. Failures leave an orphan object and are only logged.
func (s *companyService) discard(ctx context.Context, keys ...string) {
	discardBlobs(ctx, s.blobs, s.logger, keys...)
}

func discardBlobs(ctx context.Context, blobs storage.BlobStore, logger logrus.FieldLogger, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := blobs.Delete(ctx, key); err != nil {
			logger.WithError(err).WithField("key", key).Warn("delete blob failed")
		}
	}
}

func documentKeys(docs []model.CompanyDocument) []string {
	keys := make([]string, len(docs))
	for i, doc := range docs {
		keys[i] = doc.StorageKey
	}
	return keys
}
