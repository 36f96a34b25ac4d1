package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	apperrors "jobfair/internal/errors"
	"jobfair/internal/metrics"
)

const (
	// MsgTooManyRequests is returned once a client exhausts its login window.
	MsgTooManyRequests = "Demasiadas peticiones"

	loginRateKeyPrefix = "ratelimit:login:"
)

// WindowCounter counts hits in a fixed window. cache.Client implements it.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// LoginRateLimiter allows limit login attempts per client IP and window. A
// non-positive limit disables it. When the counter is unreachable the
// request is let through.
func LoginRateLimiter(counter WindowCounter, limit int, window time.Duration, m *metrics.Metrics, logger logrus.FieldLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if counter == nil || limit <= 0 || window <= 0 {
			return next
		}
		return func(c echo.Context) error {
			key := loginRateKeyPrefix + c.RealIP()
			count, ttl, err := counter.IncrWindow(c.Request().Context(), key, window)
			if err != nil {
				logger.WithError(err).WithField("key", key).Warn("rate limiter unavailable, allowing request")
				return next(c)
			}

			remaining := int64(limit) - count
			if remaining < 0 {
				remaining = 0
			}
			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if count > int64(limit) {
				retry := int64(ttl.Round(time.Second) / time.Second)
				if retry < 1 {
					retry = 1
				}
				h.Set("Retry-After", strconv.FormatInt(retry, 10))
				m.ObserveLogin(metrics.LoginRateLimited)
				return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
					Error: MsgTooManyRequests,
					Code:  "RATE_LIMITED",
				})
			}
			return next(c)
		}
	}
}
