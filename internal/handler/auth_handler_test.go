package handler

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "jobfair/internal/errors"
	"jobfair/internal/middleware"
	"jobfair/internal/model"
)

func newAuthEcho(svc *mockAuthService) *echo.Echo {
	h := NewAuthHandler(svc, "token", true)
	e := newTestEcho()
	e.POST("/auth/login", h.Login)
	e.POST("/auth/logout", h.Logout)
	e.GET("/auth/role", h.Role, as(coCaller))
	e.GET("/auth/role-anonymous", h.Role)
	return e
}

func cookieNamed(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandler_LoginSetsCookie(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "acme", "s3cret!").Return("signed.jwt.token", &model.User{ID: "co-1"}, nil)
	svc.On("TokenTTL").Return(2 * time.Hour)

	rec := serve(newAuthEcho(svc), jsonRequest(http.MethodPost, "/auth/login", `{"nameOrEmail":"  acme ","password":"s3cret!"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	var body TokenResponse
	decode(t, rec, &body)
	assert.Equal(t, "signed.jwt.token", body.Token)

	ck := cookieNamed(rec.Result().Cookies(), "token")
	require.NotNil(t, ck)
	assert.Equal(t, "signed.jwt.token", ck.Value)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.Equal(t, 7200, ck.MaxAge)
	svc.AssertExpectations(t)
}

func TestAuthHandler_LoginRejected(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Login", mock.Anything, "acme", "wrong").Return("", nil, apperrors.InvalidCredentials())

	rec := serve(newAuthEcho(svc), jsonRequest(http.MethodPost, "/auth/login", `{"nameOrEmail":"acme","password":"wrong"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apperrors.MsgInvalidCredentials, decodeError(t, rec).Error)
	assert.Empty(t, rec.Result().Cookies())
	svc.AssertNotCalled(t, "TokenTTL")
}

func TestAuthHandler_LoginMalformedBody(t *testing.T) {
	svc := new(mockAuthService)

	rec := serve(newAuthEcho(svc), jsonRequest(http.MethodPost, "/auth/login", `{"nameOrEmail":`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.MsgMissingFields, decodeError(t, rec).Error)
	svc.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_Logout(t *testing.T) {
	tests := []struct {
		name     string
		decorate func(*http.Request)
		token    string
	}{
		{name: "session cookie", decorate: func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "token", Value: "from-cookie"}) }, token: "from-cookie"},
		{name: "legacy cookie", decorate: func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: middleware.LegacyCookieName, Value: "from-legacy"})
		}, token: "from-legacy"},
		{name: "bearer header", decorate: func(r *http.Request) { r.Header.Set("Authorization", "Bearer from-header") }, token: "from-header"},
		{name: "no session", decorate: func(*http.Request) {}, token: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockAuthService)
			svc.On("Logout", mock.Anything, tt.token).Return(nil).Once()

			req := jsonRequest(http.MethodPost, "/auth/logout", "")
			tt.decorate(req)
			rec := serve(newAuthEcho(svc), req)

			require.Equal(t, http.StatusOK, rec.Code)
			var body MessageResponse
			decode(t, rec, &body)
			assert.Equal(t, "Sesión cerrada correctamente.", body.Message)

			for _, name := range []string{"token", middleware.LegacyCookieName} {
				ck := cookieNamed(rec.Result().Cookies(), name)
				require.NotNil(t, ck, name)
				assert.Empty(t, ck.Value)
				assert.Negative(t, ck.MaxAge)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_LogoutStoreFailure(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("Logout", mock.Anything, "tok").Return(apperrors.Dependency("record logout", errors.New("db down")))

	req := jsonRequest(http.MethodPost, "/auth/logout", "")
	req.Header.Set("Authorization", "Bearer tok")
	rec := serve(newAuthEcho(svc), req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperrors.MsgInternal, decodeError(t, rec).Error)
	assert.NotContains(t, rec.Body.String(), "db down")
}

func TestAuthHandler_Role(t *testing.T) {
	e := newAuthEcho(new(mockAuthService))

	rec := serve(e, jsonRequest(http.MethodGet, "/auth/role", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	var body RoleResponse
	decode(t, rec, &body)
	assert.Equal(t, "co", body.Role)

	rec = serve(e, jsonRequest(http.MethodGet, "/auth/role-anonymous", ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, apperrors.MsgUnauthorized, decodeError(t, rec).Error)
}
