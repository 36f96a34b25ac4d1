// Package metrics defines the Prometheus instruments of the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "jobfair/internal/errors"
)

// Login outcomes.
const (
	LoginSuccess     = "success"
	LoginInvalid     = "invalid_credentials"
	LoginError       = "error"
	LoginRateLimited = "rate_limited"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	LoginAttemptsTotal   *prometheus.CounterVec
	TokenRejectionsTotal *prometheus.CounterVec
	IdentityCacheTotal   *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all metrics on registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobfair_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "jobfair_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		LoginAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobfair_login_attempts_total",
				Help: "Login attempts by outcome",
			},
			[]string{"result"},
		),
		TokenRejectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobfair_token_rejections_total",
				Help: "Rejected session tokens by internal failure kind",
			},
			[]string{"reason"},
		),
		IdentityCacheTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "jobfair_identity_cache_lookups_total",
				Help: "Identity cache lookups on the login path",
			},
			[]string{"result"},
		),
		registry: registry,
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.LoginAttemptsTotal,
		m.TokenRejectionsTotal,
		m.IdentityCacheTotal,
	)
	return m
}

// ObserveLogin counts one login attempt. The Observe methods are no-ops on a
// nil *Metrics.
func (m *Metrics) ObserveLogin(result string) {
	if m == nil {
		return
	}
	m.LoginAttemptsTotal.WithLabelValues(result).Inc()
}

// ObserveTokenRejection counts one rejected token.
func (m *Metrics) ObserveTokenRejection(reason string) {
	if m == nil {
		return
	}
	m.TokenRejectionsTotal.WithLabelValues(reason).Inc()
}

// ObserveIdentityCache counts a cache hit or miss.
func (m *Metrics) ObserveIdentityCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.IdentityCacheTotal.WithLabelValues(result).Inc()
}

// WatchIdentityCache exports size as the current number of identity cache
// entries. It must be called at most once per registry.
func (m *Metrics) WatchIdentityCache(size func() int) {
	if m == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "jobfair_identity_cache_entries",
			Help: "Entries currently held by the identity cache",
		},
		func() float64 { return float64(size()) },
	))
}

// Middleware records request count and latency per route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				// the error handler writes the response after the chain returns
				status = apperrors.MapErrorToHTTP(err).StatusCode
			}
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			m.HTTPRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(c.Request().Method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
