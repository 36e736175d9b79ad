package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "cmsapi/internal/errors"
	"cmsapi/internal/metrics"
)

// Counter is a fixed-window hit counter. cache.Client implements it.
type Counter interface {
	Hit(ctx context.Context, key string, window time.Duration) (count int64, ok bool)
	TTL(ctx context.Context, key string) time.Duration
}

// RateLimit allows limit requests per client IP and route within window.
// A limit of zero disables the check, and counter failures let the request
// through.
func RateLimit(counter Counter, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if limit <= 0 {
			return next
		}
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := "ratelimit:" + c.Path() + ":" + c.RealIP()

			count, ok := counter.Hit(ctx, key, window)
			if !ok || count <= int64(limit) {
				return next(c)
			}

			if ttl := counter.TTL(ctx, key); ttl > 0 {
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(ttl.Round(time.Second).Seconds())))
			}
			metrics.RateLimited.WithLabelValues(c.Path()).Inc()
			return apperrors.ErrTooManyRequests
		}
	}
}
