package middleware

import (
	"fmt"
	"time"

	"masshouse/internal/database"

	"github.com/gofiber/fiber/v2"
)

// RateLimit applies a fixed-window per-IP limit backed by the rate-limit
// cache database. The status lookup sits behind this because the reference
// plus email pair is guessable with enough attempts.
func (m *Middleware) RateLimit(name string, limit int64, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := m.log.Function("RateLimit")

		key := fmt.Sprintf("rl:%s:%s", name, c.IP())

		count, err := database.NewCacheBuilder(m.DB.Cache.RateLimit, key).
			WithContext(c.UserContext()).
			IncrWithWindow(window)
		if err != nil {
			// Fail open: losing the cache should not take the portal down.
			log.Er("rate limit check failed", err, "name", name)
			return c.Next()
		}

		if count > limit {
			log.Warn("rate limit exceeded", "name", name, "ip", c.IP(), "count", count)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later",
			})
		}

		return c.Next()
	}
}
