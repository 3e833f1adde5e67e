package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimiter limits each client IP to a burst of 10 requests, refilled at
// 10 per minute. It guards the login and contact forms, which both reach the
// backend.
func RateLimiter() echo.MiddlewareFunc {
	return RateLimiterWith(rate.Every(6*time.Second), 10)
}

// RateLimiterWith builds a limiter with an explicit rate and burst.
func RateLimiterWith(limit rate.Limit, burst int) echo.MiddlewareFunc {
	config := middleware.RateLimiterConfig{
		// In-memory store, suitable for a single instance.
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      limit,
			Burst:     burst,
			ExpiresIn: 10 * time.Minute,
		}),
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.String(http.StatusTooManyRequests, "Too many requests. Please try again later.")
		},
	}
	return middleware.RateLimiterWithConfig(config)
}
