package handlers

import (
	"errors"

	"masshouse/internal/app"
	parkingController "masshouse/internal/controllers/parking"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type ParkingHandler struct {
	Handler
	parkingController parkingController.ParkingControllerInterface
}

func NewParkingHandler(app app.App, router fiber.Router) *ParkingHandler {
	log := logger.New("handlers").File("parking_handler")
	return &ParkingHandler{
		parkingController: app.ParkingController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ParkingHandler) Register() {
	h.router.Post("/parking-bookings", h.submit)
}

func (h *ParkingHandler) submit(c *fiber.Ctx) error {
	var req parkingController.SubmitBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.parkingController.Submit(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, parkingController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit booking",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}
