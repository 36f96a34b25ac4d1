package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"jobfair/internal/model"
	"jobfair/internal/service"
)

// OfferHandler serves job offers.
type OfferHandler struct {
	svc service.OfferService
}

// NewOfferHandler creates a new offer handler.
func NewOfferHandler(svc service.OfferService) *OfferHandler {
	return &OfferHandler{svc: svc}
}

// OfferRequest is a new job offer.
type OfferRequest struct {
	Position      string `json:"position" validate:"required"`
	WorkplaceType string `json:"workplaceType"`
	Location      string `json:"location" validate:"required"`
	JobType       string `json:"jobType"`
	Description   string `json:"description" validate:"required"`
}

// UpdateOfferRequest is a partial offer update. Empty values are ignored.
type UpdateOfferRequest struct {
	Position      *string `json:"position"`
	WorkplaceType *string `json:"workplaceType"`
	Location      *string `json:"location"`
	JobType       *string `json:"jobType"`
	Description   *string `json:"description"`
}

// CreateOffer godoc
// @Summary Publish a job offer
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body OfferRequest true "Offer"
// @Success 201 {object} CreatedResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /offers [post]
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req OfferRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	offer, err := h.svc.Create(c.Request().Context(), id, service.OfferInput{
		Position:      req.Position,
		WorkplaceType: req.WorkplaceType,
		Location:      req.Location,
		JobType:       req.JobType,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, CreatedResponse{Message: "Oferta añadida con éxito", ID: offer.ID})
}

// ListOwnOffers godoc
// @Summary List the caller's offers
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Offer
// @Failure 403 {object} errors.ErrorResponse
// @Router /offers/by-id [get]
func (h *OfferHandler) ListOwnOffers(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	offers, err := h.svc.ListByCompany(c.Request().Context(), id.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offers)
}

// SearchOffers godoc
// @Summary Filter offers
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Param position query string false "Position contains"
// @Param location query string false "Location contains"
// @Param jobType query string false "Job type"
// @Param workplaceType query string false "Workplace type"
// @Success 200 {array} model.Offer
// @Router /offers/filter [get]
func (h *OfferHandler) SearchOffers(c echo.Context) error {
	offers, err := h.svc.Search(c.Request().Context(), model.OfferFilter{
		Position:      c.QueryParam("position"),
		Location:      c.QueryParam("location"),
		JobType:       c.QueryParam("jobType"),
		WorkplaceType: c.QueryParam("workplaceType"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offers)
}

// UpdateOffer godoc
// @Summary Update an offer
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Param request body UpdateOfferRequest true "Fields to change"
// @Success 200 {object} model.Offer
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /offers/{id} [put]
func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	var req UpdateOfferRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	offer, err := h.svc.Update(c.Request().Context(), id, c.Param("id"), service.OfferUpdate{
		Position:      req.Position,
		WorkplaceType: req.WorkplaceType,
		Location:      req.Location,
		JobType:       req.JobType,
		Description:   req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, offer)
}

// DeleteOffer godoc
// @Summary Delete an offer
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Offer ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /offers/{id} [delete]
func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	id, err := caller(c)
	if err != nil {
		return err
	}
	if err := h.svc.Delete(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Oferta eliminada con éxito"})
}
