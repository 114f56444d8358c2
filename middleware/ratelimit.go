package middleware

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/booking-marketplace/config"
	"github.com/meinhoongagan/booking-marketplace/utils"
	"golang.org/x/time/rate"
)

type rateLimiter struct {
	limiters sync.Map
	cfg      config.RateLimitConfig
}

func (l *rateLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	burst := l.cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	lim := rate.NewLimiter(rate.Limit(l.cfg.RPS), burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}

// RateLimit throttles requests per client IP with a token bucket.
func RateLimit(cfg config.RateLimitConfig) fiber.Handler {
	l := &rateLimiter{cfg: cfg}
	return func(c *fiber.Ctx) error {
		if !l.getLimiter(c.IP()).Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(utils.ErrorResponse{
				Message: "too many requests, slow down",
				Error:   "rate_limited",
			})
		}
		return c.Next()
	}
}
