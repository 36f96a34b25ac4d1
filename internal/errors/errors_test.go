package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"validation", Validation(MsgMissingFields), http.StatusBadRequest, MsgMissingFields},
		{"credentials", InvalidCredentials(), http.StatusUnauthorized, MsgInvalidCredentials},
		{"unauthenticated", Unauthenticated(), http.StatusUnauthorized, MsgUnauthorized},
		{"forbidden", Forbidden(), http.StatusForbidden, MsgForbidden},
		{"not found", NotFound("Usuario no encontrado"), http.StatusNotFound, "Usuario no encontrado"},
		{"dependency hides cause", Dependency("find user", errors.New("dial tcp: refused")), http.StatusInternalServerError, MsgInternal},
		{"wrapped app error", fmt.Errorf("handler: %w", Forbidden()), http.StatusForbidden, MsgForbidden},
		{"echo 404", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"echo 500 hidden", echo.NewHTTPError(http.StatusInternalServerError, "panic detail"), http.StatusInternalServerError, MsgInternal},
		{"plain error", errors.New("sql: connection reset"), http.StatusInternalServerError, MsgInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, got.StatusCode)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestHTTPErrorHandler_LogsDependencyOnly(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(logger)
	e.GET("/boom", func(c echo.Context) error {
		return Dependency("load company", errors.New("Error 1146: table doesn't exist"))
	})
	e.GET("/deny", func(c echo.Context) error {
		return Forbidden()
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, MsgInternal, body.Error)
	assert.NotContains(t, rec.Body.String(), "1146")
	assert.Contains(t, buf.String(), "1146")

	buf.Reset()
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/deny", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, MsgForbidden, body.Error)
	assert.Empty(t, buf.String())
}
