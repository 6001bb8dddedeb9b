package handlers

import (
	"errors"
	"time"

	"masshouse/internal/app"
	issuesController "masshouse/internal/controllers/issues"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

const (
	// statusLookupLimit bounds reference+email guessing per IP.
	statusLookupLimit  = 20
	statusLookupWindow = time.Minute
)

type IssueHandler struct {
	Handler
	issueController issuesController.IssueControllerInterface
}

func NewIssueHandler(app app.App, router fiber.Router) *IssueHandler {
	log := logger.New("handlers").File("issue_handler")
	return &IssueHandler{
		issueController: app.IssueController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *IssueHandler) Register() {
	issues := h.router.Group("/issues")
	issues.Post("", h.submit)
	issues.Post(
		"/status",
		h.middleware.RateLimit("issue-status", statusLookupLimit, statusLookupWindow),
		h.checkStatus,
	)
}

func (h *IssueHandler) submit(c *fiber.Ctx) error {
	var req issuesController.SubmitIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.issueController.Submit(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, issuesController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to submit issue",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *IssueHandler) checkStatus(c *fiber.Ctx) error {
	var req issuesController.CheckStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	response, err := h.issueController.CheckStatus(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, issuesController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, issuesController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "No issue found matching those details",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check status",
		})
	}

	return c.JSON(response)
}
