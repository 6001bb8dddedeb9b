package issuesController

import (
	"context"
	"encoding/json"
	"errors"

	"masshouse/config"
	"masshouse/internal/database"
	"masshouse/internal/events"
	. "masshouse/internal/models"
	"masshouse/internal/repositories"
	"masshouse/internal/services"
	"masshouse/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	MaxDescriptionLength = 5000
	MaxPhotoURLs         = 10
)

var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrReferenceGeneration = errors.New("reference generation failed")
)

type IssueController struct {
	issueRepo           repositories.IssueRepository
	transactionService  *services.TransactionService
	referenceService    *services.ReferenceService
	notificationService *services.NotificationService
	eventBus            *events.EventBus
	db                  database.DB
	Config              config.Config
}

type SubmitIssueRequest struct {
	ResidentName  string   `json:"residentName"`
	FlatNumber    string   `json:"flatNumber"`
	ResidentEmail string   `json:"residentEmail"`
	ResidentPhone *string  `json:"residentPhone,omitempty"`
	IssueType     string   `json:"issueType"`
	Location      string   `json:"location"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	PhotoURLs     []string `json:"photoUrls,omitempty"`
}

type SubmitIssueResponse struct {
	IssueID         uuid.UUID   `json:"issueId"`
	ReferenceNumber string      `json:"referenceNumber"`
	Status          IssueStatus `json:"status"`
}

type CheckStatusRequest struct {
	ReferenceNumber string `json:"referenceNumber"`
	ResidentEmail   string `json:"residentEmail"`
}

type CheckStatusResponse struct {
	Issue   IssuePublic   `json:"issue"`
	Updates []IssueUpdate `json:"updates"`
}

type IssueControllerInterface interface {
	Submit(ctx context.Context, request *SubmitIssueRequest) (*SubmitIssueResponse, error)
	CheckStatus(ctx context.Context, request *CheckStatusRequest) (*CheckStatusResponse, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) IssueControllerInterface {
	return &IssueController{
		issueRepo:           repos.Issue,
		transactionService:  services.Transaction,
		referenceService:    services.Reference,
		notificationService: services.Notification,
		eventBus:            eventBus,
		db:                  db,
		Config:              config,
	}
}

func (c *IssueController) validateSubmit(request *SubmitIssueRequest, log logger.Logger) error {
	required := map[string]string{
		"residentName":  request.ResidentName,
		"flatNumber":    request.FlatNumber,
		"residentEmail": request.ResidentEmail,
		"issueType":     request.IssueType,
		"location":      request.Location,
		"category":      request.Category,
		"description":   request.Description,
	}
	for field, value := range required {
		if utils.IsBlank(value) {
			return log.ErrorWithType(ErrValidation, "required field is missing", "field", field)
		}
	}

	if !utils.IsValidEmail(utils.NormalizeEmail(request.ResidentEmail)) {
		return log.ErrorWithType(ErrValidation, "invalid email address")
	}

	if len(request.Description) > MaxDescriptionLength {
		return log.ErrorWithType(
			ErrValidation,
			"description exceeds maximum length",
			"length", len(request.Description),
			"max", MaxDescriptionLength,
		)
	}

	if len(request.PhotoURLs) > MaxPhotoURLs {
		return log.ErrorWithType(
			ErrValidation,
			"too many photo urls",
			"count", len(request.PhotoURLs),
			"max", MaxPhotoURLs,
		)
	}

	return nil
}

func (c *IssueController) Submit(
	ctx context.Context,
	request *SubmitIssueRequest,
) (*SubmitIssueResponse, error) {
	log := logger.New("issueController").TraceFromContext(ctx).Function("Submit")

	if err := c.validateSubmit(request, log); err != nil {
		return nil, err
	}

	var photoURLs datatypes.JSON
	if len(request.PhotoURLs) > 0 {
		data, err := json.Marshal(request.PhotoURLs)
		if err != nil {
			return nil, log.Err("failed to marshal photo urls", err)
		}
		photoURLs = data
	}

	issue := &Issue{
		ResidentName:  utils.Clean(request.ResidentName),
		FlatNumber:    utils.Clean(request.FlatNumber),
		ResidentEmail: utils.NormalizeEmail(request.ResidentEmail),
		ResidentPhone: request.ResidentPhone,
		IssueType:     utils.Clean(request.IssueType),
		Location:      utils.Clean(request.Location),
		Category:      utils.Clean(request.Category),
		Description:   utils.Clean(request.Description),
		PhotoURLs:     photoURLs,
		Status:        IssueStatusReported,
	}

	if err := c.createWithReference(ctx, issue, log); err != nil {
		return nil, err
	}

	c.notificationService.SendAsync(services.EmailIssueConfirmation, issue.ResidentEmail, map[string]string{
		"reference_number": issue.ReferenceNumber,
		"resident_name":    issue.ResidentName,
	})

	if err := c.eventBus.Publish(events.REQUESTS_CHANNEL, events.RequestEvent{
		Type:      events.REQUEST_SUBMITTED,
		Kind:      KindIssue,
		RequestID: issue.ID,
		Reference: issue.ReferenceNumber,
		Status:    issue.Status.String(),
	}); err != nil {
		log.Er("failed to publish submission event", err, "reference", issue.ReferenceNumber)
	}

	log.Info("Issue submitted successfully",
		"issueID", issue.ID,
		"reference", issue.ReferenceNumber,
	)

	return &SubmitIssueResponse{
		IssueID:         issue.ID,
		ReferenceNumber: issue.ReferenceNumber,
		Status:          issue.Status,
	}, nil
}

// createWithReference inserts the issue together with its seed history row.
// A duplicate reference aborts the transaction and a fresh reference is
// minted for the next attempt.
func (c *IssueController) createWithReference(
	ctx context.Context,
	issue *Issue,
	log logger.Logger,
) error {
	for attempt := 1; attempt <= services.MaxReferenceAttempts; attempt++ {
		reference, err := c.referenceService.Generate(KindIssue)
		if err != nil {
			return log.ErrorWithType(ErrReferenceGeneration, "failed to generate reference", "error", err)
		}
		issue.ReferenceNumber = reference

		err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
			if err := c.issueRepo.Create(ctx, tx, issue); err != nil {
				return err
			}

			notes := "Issue reported by resident"
			return c.issueRepo.CreateUpdate(ctx, tx, &IssueUpdate{
				IssueID: issue.ID,
				Status:  IssueStatusReported,
				Notes:   &notes,
			})
		})
		if err == nil {
			return nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn("reference collision, retrying", "reference", reference, "attempt", attempt)
			issue.ID = uuid.Nil
			continue
		}

		return err
	}

	return log.ErrorWithType(
		ErrReferenceGeneration,
		"exhausted reference generation attempts",
		"attempts", services.MaxReferenceAttempts,
	)
}

// CheckStatus returns the resident-facing view of an issue matched by
// reference and email. Both values must match; the response never indicates
// which one was wrong.
func (c *IssueController) CheckStatus(
	ctx context.Context,
	request *CheckStatusRequest,
) (*CheckStatusResponse, error) {
	log := logger.New("issueController").TraceFromContext(ctx).Function("CheckStatus")

	reference := utils.NormalizeReference(request.ReferenceNumber)
	email := utils.NormalizeEmail(request.ResidentEmail)

	if reference == "" || email == "" {
		return nil, log.ErrorWithType(ErrValidation, "reference number and email are required")
	}

	issue, err := c.issueRepo.GetByReferenceAndEmail(ctx, c.db.SQL, reference, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "no issue matched the supplied details")
		}
		return nil, log.Error("failed to look up issue", "error", err)
	}

	updates, err := c.issueRepo.GetUpdates(ctx, c.db.SQL, issue.ID)
	if err != nil {
		return nil, log.Error("failed to load issue updates", "error", err)
	}

	return &CheckStatusResponse{
		Issue:   issue.ToPublic(),
		Updates: updates,
	}, nil
}
