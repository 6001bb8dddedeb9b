package parkingController

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

// MaxBookingDuration caps a single guest stay. Longer arrangements go through
// the building manager directly.
const MaxBookingDuration = 7 * 24 * time.Hour

var (
	ErrValidation          = errors.New("validation error")
	ErrReferenceGeneration = errors.New("reference generation failed")
)

type ParkingController struct {
	bookingRepo         repositories.ParkingBookingRepository
	transactionService  *services.TransactionService
	referenceService    *services.ReferenceService
	notificationService *services.NotificationService
	eventBus            *events.EventBus
	db                  database.DB
	Config              config.Config
}

type SubmitBookingRequest struct {
	ResidentName        string  `json:"residentName"`
	FlatNumber          string  `json:"flatNumber"`
	ResidentEmail       string  `json:"residentEmail"`
	ResidentPhone       *string `json:"residentPhone,omitempty"`
	GuestName           string  `json:"guestName"`
	VehicleRegistration string  `json:"vehicleRegistration"`
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	SpecialRequirements *string `json:"specialRequirements,omitempty"`
}

type SubmitBookingResponse struct {
	BookingID        uuid.UUID     `json:"bookingId"`
	BookingReference string        `json:"bookingReference"`
	Status           BookingStatus `json:"status"`
}

type ParkingControllerInterface interface {
	Submit(ctx context.Context, request *SubmitBookingRequest) (*SubmitBookingResponse, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) ParkingControllerInterface {
	return &ParkingController{
		bookingRepo:         repos.ParkingBooking,
		transactionService:  services.Transaction,
		referenceService:    services.Reference,
		notificationService: services.Notification,
		eventBus:            eventBus,
		db:                  db,
		Config:              config,
	}
}

func (c *ParkingController) validateSubmit(
	request *SubmitBookingRequest,
	log logger.Logger,
) (start, end time.Time, err error) {
	required := map[string]string{
		"residentName":        request.ResidentName,
		"flatNumber":          request.FlatNumber,
		"residentEmail":       request.ResidentEmail,
		"guestName":           request.GuestName,
		"vehicleRegistration": request.VehicleRegistration,
		"startTime":           request.StartTime,
		"endTime":             request.EndTime,
	}
	for field, value := range required {
		if utils.IsBlank(value) {
			return start, end, log.ErrorWithType(ErrValidation, "required field is missing", "field", field)
		}
	}

	if !utils.IsValidEmail(utils.NormalizeEmail(request.ResidentEmail)) {
		return start, end, log.ErrorWithType(ErrValidation, "invalid email address")
	}

	start, err = time.Parse(time.RFC3339, request.StartTime)
	if err != nil {
		return start, end, log.ErrorWithType(ErrValidation, "invalid startTime, expected RFC3339", "error", err)
	}

	end, err = time.Parse(time.RFC3339, request.EndTime)
	if err != nil {
		return start, end, log.ErrorWithType(ErrValidation, "invalid endTime, expected RFC3339", "error", err)
	}

	if !end.After(start) {
		return start, end, log.ErrorWithType(ErrValidation, "endTime must be after startTime")
	}

	if start.Before(time.Now()) {
		return start, end, log.ErrorWithType(ErrValidation, "startTime cannot be in the past")
	}

	if end.Sub(start) > MaxBookingDuration {
		return start, end, log.ErrorWithType(
			ErrValidation,
			"booking exceeds maximum duration",
			"max", MaxBookingDuration.String(),
		)
	}

	return start, end, nil
}

func (c *ParkingController) Submit(
	ctx context.Context,
	request *SubmitBookingRequest,
) (*SubmitBookingResponse, error) {
	log := logger.New("parkingController").TraceFromContext(ctx).Function("Submit")

	start, end, err := c.validateSubmit(request, log)
	if err != nil {
		return nil, err
	}

	booking := &ParkingBooking{
		ResidentName:        utils.Clean(request.ResidentName),
		FlatNumber:          utils.Clean(request.FlatNumber),
		ResidentEmail:       utils.NormalizeEmail(request.ResidentEmail),
		ResidentPhone:       request.ResidentPhone,
		GuestName:           utils.Clean(request.GuestName),
		VehicleRegistration: utils.NormalizeVehicleRegistration(request.VehicleRegistration),
		StartTime:           start,
		EndTime:             end,
		SpecialRequirements: request.SpecialRequirements,
		Status:              BookingStatusPending,
	}

	if err := c.createWithReference(ctx, booking, log); err != nil {
		return nil, err
	}

	c.notificationService.SendAsync(services.EmailParkingConfirmation, booking.ResidentEmail, map[string]string{
		"booking_reference": booking.BookingReference,
		"resident_name":     booking.ResidentName,
	})

	if err := c.eventBus.Publish(events.REQUESTS_CHANNEL, events.RequestEvent{
		Type:      events.REQUEST_SUBMITTED,
		Kind:      KindParkingBooking,
		RequestID: booking.ID,
		Reference: booking.BookingReference,
		Status:    booking.Status.String(),
	}); err != nil {
		log.Er("failed to publish submission event", err, "reference", booking.BookingReference)
	}

	log.Info("Parking booking submitted successfully",
		"bookingID", booking.ID,
		"reference", booking.BookingReference,
	)

	return &SubmitBookingResponse{
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		Status:           booking.Status,
	}, nil
}

func (c *ParkingController) createWithReference(
	ctx context.Context,
	booking *ParkingBooking,
	log logger.Logger,
) error {
	for attempt := 1; attempt <= services.MaxReferenceAttempts; attempt++ {
		reference, err := c.referenceService.Generate(KindParkingBooking)
		if err != nil {
			return log.ErrorWithType(ErrReferenceGeneration, "failed to generate reference", "error", err)
		}
		booking.BookingReference = reference

		err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
			return c.bookingRepo.Create(ctx, tx, booking)
		})
		if err == nil {
			return nil
		}

		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Warn("reference collision, retrying", "reference", reference, "attempt", attempt)
			booking.ID = uuid.Nil
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
