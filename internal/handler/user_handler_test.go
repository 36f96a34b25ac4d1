package handler

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "jobfair/internal/errors"
	"jobfair/internal/model"
	"jobfair/internal/service"
)

func newUserEcho(svc *mockUserService) *echo.Echo {
	h := NewUserHandler(svc)
	e := newTestEcho()
	e.POST("/users", h.CreateUser, as(adminCaller))
	e.GET("/users", h.ListUsers, as(adminCaller))
	e.GET("/users/:id", h.GetUser, as(adminCaller))
	e.PUT("/users/:id", h.UpdateUser, as(coCaller))
	e.DELETE("/users/:id", h.DeleteUser, as(adminCaller))
	return e
}

func TestUserHandler_Create(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Create", mock.Anything, service.CreateUserInput{
		Name:     "acme",
		Email:    "hr@acme.test",
		Password: "pw",
		Role:     model.RoleCompany,
		Company:  "Acme S.L.",
		CIF:      "B12345678",
	}).Return(&model.User{ID: "co-9"}, nil)

	rec := serve(newUserEcho(svc), jsonRequest(http.MethodPost, "/users",
		`{"name":"acme","email":"hr@acme.test","password":"pw","role":"co","company":"Acme S.L.","cif":"B12345678"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body CreatedResponse
	decode(t, rec, &body)
	assert.Equal(t, "co-9", body.ID)
	assert.Equal(t, "Usuario creado exitosamente", body.Message)
	svc.AssertExpectations(t)
}

func TestUserHandler_CreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "missing password", body: `{"name":"acme","email":"hr@acme.test","role":"co"}`, message: apperrors.MsgMissingFields},
		{name: "bad email", body: `{"name":"acme","email":"not-an-email","password":"pw","role":"co"}`, message: "Datos no válidos: email"},
		{name: "wrong type", body: `{"name":42}`, message: apperrors.MsgMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockUserService)
			rec := serve(newUserEcho(svc), jsonRequest(http.MethodPost, "/users", tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.message, decodeError(t, rec).Error)
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUserHandler_CreateEmailInUse(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, apperrors.Validation(apperrors.MsgEmailInUse))

	rec := serve(newUserEcho(svc), jsonRequest(http.MethodPost, "/users",
		`{"name":"vera","email":"vera@uni.test","password":"pw","role":"visitor","dni":"1X","studies":"CS"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.MsgEmailInUse, decodeError(t, rec).Error)
}

func TestUserHandler_Get(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Get", mock.Anything, "co-1").Return(&model.User{ID: "co-1", Name: "acme", PasswordHash: "$2a$10$secret"}, nil)
	svc.On("Get", mock.Anything, "nope").Return(nil, apperrors.NotFound(service.MsgUserNotFound))
	e := newUserEcho(svc)

	rec := serve(e, jsonRequest(http.MethodGet, "/users/co-1", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"acme"`)
	assert.NotContains(t, rec.Body.String(), "secret")

	rec = serve(e, jsonRequest(http.MethodGet, "/users/nope", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, service.MsgUserNotFound, decodeError(t, rec).Error)
}

func TestUserHandler_List(t *testing.T) {
	svc := new(mockUserService)
	svc.On("List", mock.Anything).Return([]model.User{{ID: "a"}, {ID: "b"}}, nil)

	rec := serve(newUserEcho(svc), jsonRequest(http.MethodGet, "/users", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var users []model.User
	decode(t, rec, &users)
	assert.Len(t, users, 2)
}

func TestUserHandler_UpdateOnlySentFields(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Update", mock.Anything, "co-1", mock.MatchedBy(func(in service.UpdateUserInput) bool {
		return in.Name != nil && *in.Name == "acme2" && in.Email == nil && in.Password == nil
	})).Return(&model.User{ID: "co-1"}, nil)

	rec := serve(newUserEcho(svc), jsonRequest(http.MethodPut, "/users/co-1", `{"name":"acme2","role":"admin"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var body MessageResponse
	decode(t, rec, &body)
	assert.Equal(t, "Usuario actualizado exitosamente", body.Message)
	svc.AssertExpectations(t)
}

func TestUserHandler_Delete(t *testing.T) {
	svc := new(mockUserService)
	svc.On("Delete", mock.Anything, "co-1").Return(nil)
	svc.On("Delete", mock.Anything, "gone").Return(apperrors.NotFound(service.MsgUserNotFound))
	e := newUserEcho(svc)

	rec := serve(e, jsonRequest(http.MethodDelete, "/users/co-1", ""))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(e, jsonRequest(http.MethodDelete, "/users/gone", ""))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
