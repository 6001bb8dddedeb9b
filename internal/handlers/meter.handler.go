package handlers

import (
	"errors"

	"masshouse/internal/app"
	meterController "masshouse/internal/controllers/meter"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type MeterHandler struct {
	Handler
	meterController meterController.MeterControllerInterface
}

func NewMeterHandler(app app.App, router fiber.Router) *MeterHandler {
	log := logger.New("handlers").File("meter_handler")
	return &MeterHandler{
		meterController: app.MeterController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *MeterHandler) Register() {
	h.router.Post("/meter-readings", h.submit)
}

func (h *MeterHandler) submit(c *fiber.Ctx) error {
	var req meterController.SubmitReadingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.meterController.Submit(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, meterController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit meter reading request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}
