package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "jobfair/internal/errors"
	"jobfair/internal/model"
	"jobfair/internal/service"
)

// CompanyHandler serves company profiles, documents and stands.
type CompanyHandler struct {
	svc service.CompanyService
}

// NewCompanyHandler creates a new company handler.
func NewCompanyHandler(svc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{svc: svc}
}

// CreateCompanyRequest is a new company profile. CompanyID is only read
// when an admin creates the profile on behalf of a co user.
type CreateCompanyRequest struct {
	Name                  string       `json:"name" validate:"required"`
	Description           string       `json:"description" validate:"required"`
	AdditionalInformation string       `json:"additionalInformation"`
	Email                 string       `json:"email" validate:"omitempty,email"`
	Sector                string       `json:"sector"`
	Links                 []model.Link `json:"links" validate:"dive"`
	CompanyID             string       `json:"companyID"`
}

// UpdateCompanyRequest is a partial profile update.
type UpdateCompanyRequest struct {
	Description           *string       `json:"description"`
	AdditionalInformation *string       `json:"additionalInformation"`
	Sector                *string       `json:"sector"`
	Links                 *[]model.Link `json:"links" validate:"omitempty,dive"`
}

// KeepDocumentsRequest lists the file names to keep; the rest are deleted.
type KeepDocumentsRequest struct {
	DocumentsToKeep []string `json:"documentsToKeep" validate:"required"`
}

// StandRequest assigns a stand and a receptionist.
type StandRequest struct {
	URLStand string `json:"urlStand" validate:"required"`
	URLRecep string `json:"urlRecep" validate:"required"`
}

// DocumentsResponse lists the current documents of a company.
type DocumentsResponse struct {
	Message   string                  `json:"message"`
	Documents []model.CompanyDocument `json:"documents"`
}

// CreateCompany godoc
// @Summary Create company profile
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateCompanyRequest true "Company profile"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /company [post]
func (h *CompanyHandler) CreateCompany(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req CreateCompanyRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	owner := id.ID
	if id.IsAdmin() {
		if req.CompanyID == "" {
			return apperrors.Validation(apperrors.MsgMissingFields)
		}
		owner = req.CompanyID
	}

	company, err := h.svc.Create(c.Request().Context(), owner, service.CompanyInput{
		Name:                  req.Name,
		Description:           req.Description,
		AdditionalInformation: req.AdditionalInformation,
		Email:                 req.Email,
		Sector:                req.Sector,
		Links:                 req.Links,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "Empresa añadida con éxito", ID: company.ID})
}

// GetOwnCompany godoc
// @Summary Get the caller's company
// @Tags company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Company
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /company [get]
func (h *CompanyHandler) GetOwnCompany(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	company, err := h.svc.Get(c.Request().Context(), id.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// GetCompany godoc
// @Summary Get company by owner id
// @Tags company
// @Produce json
// @Security BearerAuth
// @Param id path string true "Owner user ID"
// @Success 200 {object} model.Company
// @Failure 404 {object} errors.ErrorResponse
// @Router /company/{id} [get]
func (h *CompanyHandler) GetCompany(c echo.Context) error {
	company, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// UpdateCompany godoc
// @Summary Update company profile
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Owner user ID"
// @Param request body UpdateCompanyRequest true "Fields to change"
// @Success 200 {object} model.Company
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /company/{id} [put]
func (h *CompanyHandler) UpdateCompany(c echo.Context) error {
	var req UpdateCompanyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	company, err := h.svc.Update(c.Request().Context(), c.Param("id"), service.CompanyUpdate{
		Description:           req.Description,
		AdditionalInformation: req.AdditionalInformation,
		Sector:                req.Sector,
		Links:                 req.Links,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, company)
}

// AddDocuments godoc
// @Summary Upload company documents
// @Tags company
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Owner user ID"
// @Param documents formData file true "Documents"
// @Success 201 {object} DocumentsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /company/{id}/documents [post]
func (h *CompanyHandler) AddDocuments(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.Validation(apperrors.MsgMissingFields)
	}
	uploads, closeAll, err := openUploads(form.File["documents"])
	if err != nil {
		return err
	}
	defer closeAll()

	docs, err := h.svc.AddDocuments(c.Request().Context(), c.Param("id"), uploads)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, DocumentsResponse{Message: "Documentos añadidos correctamente", Documents: docs})
}

// KeepDocuments godoc
// @Summary Keep only the listed documents
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Owner user ID"
// @Param request body KeepDocumentsRequest true "File names to keep"
// @Success 200 {object} DocumentsResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /company/{id}/documents [put]
func (h *CompanyHandler) KeepDocuments(c echo.Context) error {
	var req KeepDocumentsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	docs, err := h.svc.KeepDocuments(c.Request().Context(), c.Param("id"), req.DocumentsToKeep)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, DocumentsResponse{Message: "Documentos actualizados correctamente", Documents: docs})
}

// SaveStand godoc
// @Summary Assign stand and receptionist
// @Tags company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body StandRequest true "Stand assets"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /company/stand [post]
func (h *CompanyHandler) SaveStand(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req StandRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if _, err := h.svc.SaveStand(c.Request().Context(), id, req.URLStand, req.URLRecep); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Stand y Recepcionista guardados correctamente"})
}

// GetStand godoc
// @Summary Get stand
// @Tags company
// @Produce json
// @Security BearerAuth
// @Param standID path string true "Stand ID"
// @Success 200 {object} model.Stand
// @Failure 404 {object} errors.ErrorResponse
// @Router /company/stand/{standID} [get]
func (h *CompanyHandler) GetStand(c echo.Context) error {
	stand, err := h.svc.GetStand(c.Request().Context(), c.Param("standID"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stand)
}
