package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobfair/internal/auth"
	apperrors "jobfair/internal/errors"
	"jobfair/internal/middleware"
	"jobfair/internal/model"
	"jobfair/internal/service"
)

var (
	coCaller      = auth.Identity{ID: "co-1", Name: "acme", Role: model.RoleCompany, StandID: "stand-1"}
	otherCoCaller = auth.Identity{ID: "co-2", Name: "globex", Role: model.RoleCompany}
	adminCaller   = auth.Identity{ID: "adm-1", Name: "root", Role: model.RoleAdmin}
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = apperrors.NewHTTPErrorHandler(quietLogger())
	return e
}

// as stands in for the gate and attaches id to the request.
func as(id auth.Identity) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.IdentityContextKey, id)
			return next(c)
		}
	}
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// multipartRequest sends one file per name under field.
func multipartRequest(t *testing.T, method, target, field string, names ...string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := w.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = part.Write([]byte("content of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.WriteField("note", "ignored"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var body apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	args := m.Called(ctx, identifier, password)
	user, _ := args.Get(1).(*model.User)
	return args.String(0), user, args.Error(2)
}

func (m *mockAuthService) Logout(ctx context.Context, rawToken string) error {
	return m.Called(ctx, rawToken).Error(0)
}

func (m *mockAuthService) TokenTTL() time.Duration {
	return m.Called().Get(0).(time.Duration)
}

type mockUserService struct {
	mock.Mock
}

func (m *mockUserService) Create(ctx context.Context, in service.CreateUserInput) (*model.User, error) {
	args := m.Called(ctx, in)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserService) Get(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *mockUserService) Update(ctx context.Context, id string, in service.UpdateUserInput) (*model.User, error) {
	args := m.Called(ctx, id, in)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
