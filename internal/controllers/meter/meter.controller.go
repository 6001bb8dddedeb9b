package meterController

import (
	"context"
	"errors"
	"time"

	"masshouse/config"
	"masshouse/internal/database"
	"masshouse/internal/events"
	. "masshouse/internal/models"
	"masshouse/internal/repositories"
	"masshouse/internal/services"
	"masshouse/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrReferenceGeneration = errors.New("reference generation failed")
)

type MeterController struct {
	readingRepo         repositories.MeterReadingRepository
	transactionService  *services.TransactionService
	referenceService    *services.ReferenceService
	notificationService *services.NotificationService
	eventBus            *events.EventBus
	db                  database.DB
	Config              config.Config
}

type SubmitReadingRequest struct {
	ResidentName    string  `json:"residentName"`
	FlatNumber      string  `json:"flatNumber"`
	ResidentEmail   string  `json:"residentEmail"`
	ResidentPhone   *string `json:"residentPhone,omitempty"`
	MeterType       string  `json:"meterType"`
	PreferredDate   *string `json:"preferredDate,omitempty"`
	AdditionalNotes *string `json:"additionalNotes,omitempty"`
}

type SubmitReadingResponse struct {
	ReadingID       uuid.UUID          `json:"readingId"`
	ReferenceNumber string             `json:"referenceNumber"`
	Status          MeterReadingStatus `json:"status"`
}

type MeterControllerInterface interface {
	Submit(ctx context.Context, request *SubmitReadingRequest) (*SubmitReadingResponse, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) MeterControllerInterface {
	return &MeterController{
		readingRepo:         repos.MeterReading,
		transactionService:  services.Transaction,
		referenceService:    services.Reference,
		notificationService: services.Notification,
		eventBus:            eventBus,
		db:                  db,
		Config:              config,
	}
}

func (c *MeterController) validateSubmit(
	request *SubmitReadingRequest,
	log logger.Logger,
) (*time.Time, error) {
	required := map[string]string{
		"residentName":  request.ResidentName,
		"flatNumber":    request.FlatNumber,
		"residentEmail": request.ResidentEmail,
		"meterType":     request.MeterType,
	}
	for field, value := range required {
		if utils.IsBlank(value) {
			return nil, log.ErrorWithType(ErrValidation, "required field is missing", "field", field)
		}
	}

	if !utils.IsValidEmail(utils.NormalizeEmail(request.ResidentEmail)) {
		return nil, log.ErrorWithType(ErrValidation, "invalid email address")
	}

	if !MeterType(request.MeterType).IsValid() {
		return nil, log.ErrorWithType(ErrValidation, "invalid meter type", "meterType", request.MeterType)
	}

	if request.PreferredDate == nil || *request.PreferredDate == "" {
		return nil, nil
	}

	preferred, err := time.Parse("2006-01-02", *request.PreferredDate)
	if err != nil {
		return nil, log.ErrorWithType(ErrValidation, "invalid preferredDate, expected YYYY-MM-DD", "error", err)
	}

	today := time.Now().Truncate(24 * time.Hour)
	if preferred.Before(today) {
		return nil, log.ErrorWithType(ErrValidation, "preferredDate cannot be in the past")
	}

	return &preferred, nil
}

func (c *MeterController) Submit(
	ctx context.Context,
	request *SubmitReadingRequest,
) (*SubmitReadingResponse, error) {
	log := logger.New("meterController").TraceFromContext(ctx).Function("Submit")

	preferredDate, err := c.validateSubmit(request, log)
	if err != nil {
		return nil, err
	}

	reading := &MeterReading{
		ResidentName:    utils.Clean(request.ResidentName),
		FlatNumber:      utils.Clean(request.FlatNumber),
		ResidentEmail:   utils.NormalizeEmail(request.ResidentEmail),
		ResidentPhone:   request.ResidentPhone,
		MeterType:       MeterType(request.MeterType),
		PreferredDate:   preferredDate,
		AdditionalNotes: request.AdditionalNotes,
		Status:          MeterReadingStatusPending,
	}

	if err := c.createWithReference(ctx, reading, log); err != nil {
		return nil, err
	}

	c.notificationService.SendAsync(services.EmailMeterConfirmation, reading.ResidentEmail, map[string]string{
		"reference_number": reading.ReferenceNumber,
		"resident_name":    reading.ResidentName,
	})

	if err := c.eventBus.Publish(events.REQUESTS_CHANNEL, events.RequestEvent{
		Type:      events.REQUEST_SUBMITTED,
		Kind:      KindMeterReading,
		RequestID: reading.ID,
		Reference: reading.ReferenceNumber,
		Status:    reading.Status.String(),
	}); err != nil {
		log.Er("failed to publish submission event", err, "reference", reading.ReferenceNumber)
	}

	log.Info("Meter reading request submitted successfully",
		"readingID", reading.ID,
		"reference", reading.ReferenceNumber,
	)

	return &SubmitReadingResponse{
		ReadingID:       reading.ID,
		ReferenceNumber: reading.ReferenceNumber,
		Status:          reading.Status,
	}, nil
}

func (c *MeterController) createWithReference(
	ctx context.Context,
	reading *MeterReading,
	log logger.Logger,
) error {
	for attempt := 1; attempt <= services.MaxReferenceAttempts; attempt++ {
		reference, err := c.referenceService.Generate(KindMeterReading)
		if err != nil {
			return log.ErrorWithType(ErrReferenceGeneration, "failed to generate reference", "error", err)
		}
		reading.ReferenceNumber = reference

		err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
			return c.readingRepo.Create(ctx, tx, reading)
		})
		if err == nil {
			return nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn("reference collision, retrying", "reference", reference, "attempt", attempt)
			reading.ID = uuid.Nil
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
