package http

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	apperrors "github.com/spec-kit/hr-service/pkg/util/errorutil"
)

type multiLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	entries   map[string]*limBucket
}

type limBucket struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

func newMultiLimiter(limit rate.Limit, burst int, ttl time.Duration) *multiLimiter {
	return &multiLimiter{
		limit:   limit,
		burst:   burst,
		ttl:     ttl,
		entries: make(map[string]*limBucket),
	}
}

func (m *multiLimiter) allow(key string) bool {
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.entries[key]
	if b == nil {
		b = &limBucket{lim: rate.NewLimiter(m.limit, m.burst), lastSeen: now}
		m.entries[key] = b
	}
	b.lastSeen = now

	if now.Sub(m.lastSweep) > m.ttl {
		for k, v := range m.entries {
			if now.Sub(v.lastSeen) > m.ttl {
				delete(m.entries, k)
			}
		}
		m.lastSweep = now
	}
	return b.lim.AllowN(now, 1)
}

// loginRateLimit caps credential submissions per client IP. A non-positive
// perMinute disables the limit.
func loginRateLimit(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	limiter := newMultiLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute, 10*time.Minute)
	return func(c *fiber.Ctx) error {
		if !limiter.allow(c.IP()) {
			return apperrors.NewTooManyRequests("too many login attempts, slow down")
		}
		return c.Next()
	}
}
