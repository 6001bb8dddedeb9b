package handlers

import (
	"errors"

	"masshouse/internal/app"
	adminController "masshouse/internal/controllers/admin"
	. "masshouse/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	Handler
	adminController adminController.AdminControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		adminController: app.AdminController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireAdmin())

	admin.Get("/stats", h.getStats)

	admin.Get("/issues", h.listIssues)
	admin.Patch("/issues/:id/status", h.updateIssueStatus)

	admin.Get("/parking-bookings", h.listBookings)
	admin.Patch("/parking-bookings/:id/status", h.updateBookingStatus)

	admin.Get("/meter-readings", h.listMeterReadings)
	admin.Patch("/meter-readings/:id/status", h.updateMeterReading)
}

// mapAdminError translates controller sentinels to HTTP status codes.
func mapAdminError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, adminController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, adminController.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, adminController.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": fallback})
	}
}

func (h *AdminHandler) getStats(c *fiber.Ctx) error {
	stats, err := h.adminController.GetStats(c.UserContext())
	if err != nil {
		return mapAdminError(c, err, "Failed to load stats")
	}

	return c.JSON(stats)
}

func (h *AdminHandler) listIssues(c *fiber.Ctx) error {
	var status *IssueStatus
	if raw := c.Query("status"); raw != "" {
		s := IssueStatus(raw)
		status = &s
	}

	issues, err := h.adminController.ListIssues(c.UserContext(), status)
	if err != nil {
		return mapAdminError(c, err, "Failed to list issues")
	}

	return c.JSON(fiber.Map{"issues": issues})
}

func (h *AdminHandler) updateIssueStatus(c *fiber.Ctx) error {
	issueID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid issue ID",
		})
	}

	var req adminController.UpdateIssueStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	issue, err := h.adminController.UpdateIssueStatus(c.UserContext(), issueID, &req)
	if err != nil {
		return mapAdminError(c, err, "Failed to update issue status")
	}

	return c.JSON(fiber.Map{"issue": issue})
}

func (h *AdminHandler) listBookings(c *fiber.Ctx) error {
	var status *BookingStatus
	if raw := c.Query("status"); raw != "" {
		s := BookingStatus(raw)
		status = &s
	}

	bookings, err := h.adminController.ListBookings(c.UserContext(), status)
	if err != nil {
		return mapAdminError(c, err, "Failed to list bookings")
	}

	return c.JSON(fiber.Map{"bookings": bookings})
}

func (h *AdminHandler) updateBookingStatus(c *fiber.Ctx) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid booking ID",
		})
	}

	var req adminController.UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	booking, err := h.adminController.UpdateBookingStatus(c.UserContext(), bookingID, &req)
	if err != nil {
		return mapAdminError(c, err, "Failed to update booking status")
	}

	return c.JSON(fiber.Map{"booking": booking})
}

func (h *AdminHandler) listMeterReadings(c *fiber.Ctx) error {
	var status *MeterReadingStatus
	if raw := c.Query("status"); raw != "" {
		s := MeterReadingStatus(raw)
		status = &s
	}

	var meterType *MeterType
	if raw := c.Query("meterType"); raw != "" {
		m := MeterType(raw)
		meterType = &m
	}

	readings, err := h.adminController.ListMeterReadings(c.UserContext(), status, meterType)
	if err != nil {
		return mapAdminError(c, err, "Failed to list meter readings")
	}

	return c.JSON(fiber.Map{"meterReadings": readings})
}

func (h *AdminHandler) updateMeterReading(c *fiber.Ctx) error {
	readingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid meter reading ID",
		})
	}

	var req adminController.UpdateMeterReadingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	reading, err := h.adminController.UpdateMeterReading(c.UserContext(), readingID, &req)
	if err != nil {
		return mapAdminError(c, err, "Failed to update meter reading")
	}

	return c.JSON(fiber.Map{"meterReading": reading})
}
