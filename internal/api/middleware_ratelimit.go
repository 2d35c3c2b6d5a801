package api

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const (
	defaultAuthRatePerMinute = 30
	defaultAuthRateBurst     = 10

	limiterIdleEviction = 10 * time.Minute
	limiterPruneAbove   = 1024
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipRateLimiter throttles requests per client IP. It exists to slow OTP and
// password guessing on the auth endpoints.
type ipRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func newIPRateLimiter(perMinute int, burst int) *ipRateLimiter {
	if perMinute <= 0 {
		perMinute = defaultAuthRatePerMinute
	}
	if burst <= 0 {
		burst = defaultAuthRateBurst
	}
	return &ipRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(float64(perMinute) / 60.0),
		burst:    burst,
	}
}

func (limiter *ipRateLimiter) Middleware(c *fiber.Ctx) error {
	if !limiter.allow(c.IP()) {
		return apiError(c, fiber.StatusTooManyRequests, "Too many requests. Please slow down.")
	}
	return c.Next()
}

func (limiter *ipRateLimiter) allow(clientIP string) bool {
	now := time.Now()

	limiter.mu.Lock()
	entry, ok := limiter.visitors[clientIP]
	if !ok {
		entry = &visitor{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.visitors[clientIP] = entry
	}
	entry.lastSeen = now
	if len(limiter.visitors) > limiterPruneAbove {
		limiter.pruneLocked(now)
	}
	limiter.mu.Unlock()

	return entry.limiter.Allow()
}

func (limiter *ipRateLimiter) pruneLocked(now time.Time) {
	for clientIP, entry := range limiter.visitors {
		if now.Sub(entry.lastSeen) > limiterIdleEviction {
			delete(limiter.visitors, clientIP)
		}
	}
}
