package handlers

import (
	"masshouse/internal/app"
	"masshouse/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	setupWebSocketRoute(router, app)

	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewIssueHandler(*app, api).Register()
	NewParkingHandler(*app, api).Register()
	NewMeterHandler(*app, api).Register()
	NewAdminHandler(*app, api).Register()

	return nil
}

// setupWebSocketRoute guards the admin live feed. The token travels as a
// query parameter because browsers cannot set headers on websocket upgrades.
func setupWebSocketRoute(router fiber.Router, app *app.App) {
	router.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		token := c.Query("token")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token required",
			})
		}

		claims, err := app.Websocket.Authenticate(token)
		if err != nil || !claims.IsAdmin {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals("adminEmail", claims.Email)
		return c.Next()
	})
	router.Get("/ws", websocket.New(func(c *websocket.Conn) {
		app.Websocket.HandleWebSocket(c)
	}))
}
