package middleware

import (
	"strings"

	"masshouse/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

const (
	// AdminKeyFiber is the Fiber locals key the validated claims are stored
	// under.
	AdminKeyFiber string = "Admin"
)

// RequireAdmin validates the bearer token and rejects anything without the
// admin capability. All /admin routes sit behind it.
func (m *Middleware) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := logger.New("middleware").TraceFromContext(c.UserContext()).Function("RequireAdmin")

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			log.Info("missing authorization header")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization header required",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			log.Info("invalid authorization header format")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format",
			})
		}

		claims, err := m.authService.ValidateAdminToken(tokenParts[1])
		if err != nil {
			log.Info("token validation failed", "error", err.Error())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		if !claims.IsAdmin {
			log.Info("token lacks admin capability", "email", claims.Email)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		c.Locals(AdminKeyFiber, claims)

		log.Info("admin authenticated", "email", claims.Email)
		return c.Next()
	}
}

// GetAdmin extracts the validated admin claims from Fiber context.
func GetAdmin(c *fiber.Ctx) *services.AdminClaims {
	claims, ok := c.Locals(AdminKeyFiber).(*services.AdminClaims)
	if !ok {
		return nil
	}
	return claims
}
