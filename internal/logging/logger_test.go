package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelFallback(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, New("debug", "json").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("loud", "json").GetLevel())
}

func TestRequestLogger_WritesEntry(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput("info", "json", &buf)

	e := echo.New()
	e.Use(RequestLogger(logger))
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusTeapot, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "rid-1")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/ping", entry["uri"])
	assert.Equal(t, float64(http.StatusTeapot), entry["status"])
	assert.Equal(t, "rid-1", entry["request_id"])
	assert.Equal(t, "warning", entry["level"])
}
