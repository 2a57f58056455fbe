package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/d-kavinraja/caprae-ai-readiness-leadgen-challenge/internal/config"
)

// maxTrackedCallers bounds the per-caller limiter map; it is reset when full.
const maxTrackedCallers = 10000

// AnalyzeRateLimiter applies a token bucket per caller to the /analyze endpoint.
// Callers are keyed by token subject, falling back to the client IP.
func AnalyzeRateLimiter(cfg config.RateLimitConfig) echo.MiddlewareFunc {
	if cfg.Requests <= 0 || cfg.Interval <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return next(c)
			}
		}
	}

	perRequest := cfg.Interval / time.Duration(cfg.Requests)
	if perRequest <= 0 {
		perRequest = time.Second
	}

	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[key]; ok {
			return l
		}
		if len(limiters) >= maxTrackedCallers {
			limiters = make(map[string]*rate.Limiter)
		}
		l := rate.NewLimiter(rate.Every(perRequest), cfg.Requests)
		limiters[key] = l
		return l
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() != "/analyze" {
				return next(c)
			}

			key := OwnerFromContext(c)
			if key == "" {
				key = "ip:" + c.RealIP()
			}
			if !limiterFor(key).Allow() {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "analyze rate limit exceeded"})
			}

			return next(c)
		}
	}
}
