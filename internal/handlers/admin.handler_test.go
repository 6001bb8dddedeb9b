package handlers

import (
	"net/http/httptest"
	"testing"

	"masshouse/internal/app"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRegistered(t *testing.T) {
	server := fiber.New()
	api := server.Group("/api")
	NewAdminHandler(app.App{}, api).Register()

	registered := make(map[string]bool)
	for _, route := range server.GetRoutes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /api/admin/stats",
		"GET /api/admin/issues",
		"PATCH /api/admin/issues/:id/status",
		"GET /api/admin/parking-bookings",
		"PATCH /api/admin/parking-bookings/:id/status",
		"GET /api/admin/meter-readings",
		"PATCH /api/admin/meter-readings/:id/status",
	}

	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestAdminRoutesRejectMissingAuthorization(t *testing.T) {
	server := fiber.New()
	api := server.Group("/api")
	NewAdminHandler(app.App{}, api).Register()

	req := httptest.NewRequest(fiber.MethodPatch, "/api/admin/meter-readings/123/status", nil)
	resp, err := server.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
