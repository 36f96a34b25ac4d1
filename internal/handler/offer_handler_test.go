package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "jobfair/internal/errors"
	"jobfair/internal/model"
	"jobfair/internal/repository/mocks"
	"jobfair/internal/service"
)

func newOfferEcho(offers *mocks.OfferRepository, companies *mocks.CompanyRepository, caller echo.MiddlewareFunc) *echo.Echo {
	h := NewOfferHandler(service.NewOfferService(offers, companies))
	e := newTestEcho()
	e.POST("/offers", h.CreateOffer, caller)
	e.GET("/offers/by-id", h.ListOwnOffers, caller)
	e.GET("/offers/filter", h.SearchOffers, caller)
	e.PUT("/offers/:id", h.UpdateOffer, caller)
	e.DELETE("/offers/:id", h.DeleteOffer, caller)
	return e
}

func TestOfferHandler_Create(t *testing.T) {
	offers, companies := new(mocks.OfferRepository), new(mocks.CompanyRepository)
	companies.On("FindByCompanyID", mock.Anything, "co-1").Return(&model.Company{CompanyID: "co-1", Name: "Acme"}, nil)
	offers.On("Create", mock.Anything, mock.MatchedBy(func(o *model.Offer) bool {
		return o.CompanyID == "co-1" && o.CompanyName == "Acme" && o.Position == "Backend dev"
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Offer).ID = "off-1"
	}).Return(nil)

	rec := serve(newOfferEcho(offers, companies, as(coCaller)), jsonRequest(http.MethodPost, "/offers",
		`{"position":"Backend dev","location":"Madrid","jobType":"full-time","workplaceType":"remote","description":"Go"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body CreatedResponse
	decode(t, rec, &body)
	assert.Equal(t, "off-1", body.ID)
	offers.AssertExpectations(t)
}

func TestOfferHandler_CreateMissingFields(t *testing.T) {
	offers, companies := new(mocks.OfferRepository), new(mocks.CompanyRepository)

	rec := serve(newOfferEcho(offers, companies, as(coCaller)), jsonRequest(http.MethodPost, "/offers", `{"position":"Backend dev"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.MsgMissingFields, decodeError(t, rec).Error)
	companies.AssertNotCalled(t, "FindByCompanyID", mock.Anything, mock.Anything)
}

func TestOfferHandler_CreateWithoutCompanyProfile(t *testing.T) {
	offers, companies := new(mocks.OfferRepository), new(mocks.CompanyRepository)
	companies.On("FindByCompanyID", mock.Anything, "co-1").Return(nil, gorm.ErrRecordNotFound)

	rec := serve(newOfferEcho(offers, companies, as(coCaller)), jsonRequest(http.MethodPost, "/offers",
		`{"position":"Backend dev","location":"Madrid","description":"Go"}`))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.MsgCompanyNotFound, decodeError(t, rec).Error)
}

func TestOfferHandler_ListOwnEmpty(t *testing.T) {
	offers, companies := new(mocks.OfferRepository), new(mocks.CompanyRepository)
	offers.On("ListByCompany", mock.Anything, "co-1").Return(nil, nil)

	rec := serve(newOfferEcho(offers, companies, as(coCaller)), jsonRequest(http.MethodGet, "/offers/by-id", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestOfferHandler_SearchPassesFilter(t *testing.T) {
	offers, companies := new(mocks.OfferRepository), new(mocks.CompanyRepository)
	offers.On("Search", mock.Anything, model.OfferFilter{Position: "dev", Location: "Madrid", JobType: "full-time"}).
		Return([]model.Offer{{ID: "off-1"}, {ID: "off-2"}}, nil)

	rec := serve(newOfferEcho(offers, companies, as(otherCoCaller)),
		jsonRequest(http.MethodGet, "/offers/filter?position=dev&location=Madrid&jobType=full-time", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []model.Offer
	decode(t, rec, &got)
	assert.Len(t, got, 2)
}

func TestOfferHandler_UpdateOwnership(t *testing.T) {
	tests := []struct {
		name   string
		caller echo.MiddlewareFunc
		status int
	}{
		{name: "owner", caller: as(coCaller), status: http.StatusOK},
		{name: "admin", caller: as(adminCaller), status: http.StatusOK},
		{name: "other company", caller: as(otherCoCaller), status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offers, companies := new(mocks.OfferRepository), new(mocks.CompanyRepository)
			offers.On("FindByID", mock.Anything, "off-1").Return(&model.Offer{ID: "off-1", CompanyID: "co-1", Position: "Backend dev", Location: "Madrid"}, nil)
			offers.On("Update", mock.Anything, mock.MatchedBy(func(o *model.Offer) bool {
				return o.Position == "Go dev" && o.Location == "Madrid"
			})).Return(nil)

			rec := serve(newOfferEcho(offers, companies, tt.caller),
				jsonRequest(http.MethodPut, "/offers/off-1", `{"position":"Go dev","location":""}`))

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, apperrors.MsgForbidden, decodeError(t, rec).Error)
				offers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestOfferHandler_Delete(t *testing.T) {
	offers, companies := new(mocks.OfferRepository), new(mocks.CompanyRepository)
	offers.On("FindByID", mock.Anything, "off-1").Return(&model.Offer{ID: "off-1", CompanyID: "co-1"}, nil)
	offers.On("FindByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)
	offers.On("Delete", mock.Anything, "off-1").Return(nil)
	e := newOfferEcho(offers, companies, as(coCaller))

	rec := serve(e, jsonRequest(http.MethodDelete, "/offers/off-1", ""))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, jsonRequest(http.MethodDelete, "/offers/missing", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.MsgOfferNotFound, decodeError(t, rec).Error)
}
