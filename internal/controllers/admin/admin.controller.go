package adminController

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

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = 60 * time.Second
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	// ErrConflict means a conditional update lost a race: the record moved
	// away from the expected status between read and write.
	ErrConflict = errors.New("status conflict")
)

type AdminController struct {
	issueRepo          repositories.IssueRepository
	bookingRepo        repositories.ParkingBookingRepository
	readingRepo        repositories.MeterReadingRepository
	transactionService *services.TransactionService
	eventBus           *events.EventBus
	db                 database.DB
	Config             config.Config
}

type UpdateIssueStatusRequest struct {
	Status         string  `json:"status"`
	Notes          *string `json:"notes,omitempty"`
	ExpectedStatus *string `json:"expectedStatus,omitempty"`
}

type UpdateBookingStatusRequest struct {
	Status         string  `json:"status"`
	AdminNotes     *string `json:"adminNotes,omitempty"`
	ExpectedStatus *string `json:"expectedStatus,omitempty"`
}

type UpdateMeterReadingRequest struct {
	Status         string  `json:"status"`
	AdminNotes     *string `json:"adminNotes,omitempty"`
	ScheduledDate  *string `json:"scheduledDate,omitempty"`
	ReadingValue   *string `json:"readingValue,omitempty"`
	ExpectedStatus *string `json:"expectedStatus,omitempty"`
}

// Stats is the dashboard summary. ResolvedThisWeek and ApprovedThisWeek
// count records whose status last changed in the past seven days.
type Stats struct {
	OpenIssues           int64 `json:"openIssues"`
	PendingBookings      int64 `json:"pendingBookings"`
	ApprovedThisWeek     int64 `json:"approvedThisWeek"`
	PendingMeterReadings int64 `json:"pendingMeterReadings"`
	ResolvedThisWeek     int64 `json:"resolvedThisWeek"`
}

type AdminControllerInterface interface {
	UpdateIssueStatus(ctx context.Context, issueID uuid.UUID, request *UpdateIssueStatusRequest) (*Issue, error)
	UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, request *UpdateBookingStatusRequest) (*ParkingBooking, error)
	UpdateMeterReading(ctx context.Context, readingID uuid.UUID, request *UpdateMeterReadingRequest) (*MeterReading, error)
	ListIssues(ctx context.Context, status *IssueStatus) ([]Issue, error)
	ListBookings(ctx context.Context, status *BookingStatus) ([]ParkingBooking, error)
	ListMeterReadings(ctx context.Context, status *MeterReadingStatus, meterType *MeterType) ([]MeterReading, error)
	GetStats(ctx context.Context) (*Stats, error)
}

func New(
	repos repositories.Repository,
	services services.Service,
	eventBus *events.EventBus,
	config config.Config,
	db database.DB,
) AdminControllerInterface {
	return &AdminController{
		issueRepo:          repos.Issue,
		bookingRepo:        repos.ParkingBooking,
		readingRepo:        repos.MeterReading,
		transactionService: services.Transaction,
		eventBus:           eventBus,
		db:                 db,
		Config:             config,
	}
}

func (c *AdminController) UpdateIssueStatus(
	ctx context.Context,
	issueID uuid.UUID,
	request *UpdateIssueStatusRequest,
) (*Issue, error) {
	log := logger.New("adminController").TraceFromContext(ctx).Function("UpdateIssueStatus")

	if issueID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "issue id is required")
	}

	status := IssueStatus(request.Status)
	if !status.IsValid() {
		return nil, log.ErrorWithType(ErrValidation, "invalid status", "status", request.Status)
	}

	var expectedStatus *IssueStatus
	if request.ExpectedStatus != nil {
		expected := IssueStatus(*request.ExpectedStatus)
		if !expected.IsValid() {
			return nil, log.ErrorWithType(ErrValidation, "invalid expectedStatus", "expectedStatus", *request.ExpectedStatus)
		}
		expectedStatus = &expected
	}

	issue, err := c.issueRepo.GetByID(ctx, c.db.SQL, issueID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "issue not found", "issueID", issueID)
		}
		return nil, log.Error("failed to retrieve issue", "error", err)
	}

	if !issue.Status.CanTransition(status, c.Config.StrictTransitions) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"status transition not allowed",
			"from", issue.Status,
			"to", status,
		)
	}

	err = c.transactionService.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		affected, err := c.issueRepo.UpdateStatus(ctx, tx, issueID, status, request.Notes, expectedStatus)
		if err != nil {
			return err
		}
		if affected == 0 {
			if expectedStatus != nil {
				return log.ErrorWithType(
					ErrConflict,
					"issue status changed concurrently",
					"issueID", issueID,
					"expected", *expectedStatus,
				)
			}
			return log.ErrorWithType(ErrNotFound, "issue not found", "issueID", issueID)
		}

		return c.issueRepo.CreateUpdate(ctx, tx, &IssueUpdate{
			IssueID: issueID,
			Status:  status,
			Notes:   request.Notes,
		})
	})
	if err != nil {
		return nil, err
	}

	issue, err = c.issueRepo.GetByID(ctx, c.db.SQL, issueID)
	if err != nil {
		return nil, log.Error("failed to reload issue", "error", err)
	}

	c.invalidateStats()
	c.publishStatusChange(KindIssue, issue.ID, issue.ReferenceNumber, issue.Status.String(), log)

	log.Info("Issue status updated", "issueID", issueID, "status", status)

	return issue, nil
}

func (c *AdminController) UpdateBookingStatus(
	ctx context.Context,
	bookingID uuid.UUID,
	request *UpdateBookingStatusRequest,
) (*ParkingBooking, error) {
	log := logger.New("adminController").TraceFromContext(ctx).Function("UpdateBookingStatus")

	if bookingID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "booking id is required")
	}

	status := BookingStatus(request.Status)
	if !status.IsValid() {
		return nil, log.ErrorWithType(ErrValidation, "invalid status", "status", request.Status)
	}

	var expectedStatus *BookingStatus
	if request.ExpectedStatus != nil {
		expected := BookingStatus(*request.ExpectedStatus)
		if !expected.IsValid() {
			return nil, log.ErrorWithType(ErrValidation, "invalid expectedStatus", "expectedStatus", *request.ExpectedStatus)
		}
		expectedStatus = &expected
	}

	booking, err := c.bookingRepo.GetByID(ctx, c.db.SQL, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "booking not found", "bookingID", bookingID)
		}
		return nil, log.Error("failed to retrieve booking", "error", err)
	}

	if !booking.Status.CanTransition(status, c.Config.StrictTransitions) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"status transition not allowed",
			"from", booking.Status,
			"to", status,
		)
	}

	affected, err := c.bookingRepo.UpdateStatus(
		ctx, c.db.SQL, bookingID, status, request.AdminNotes, expectedStatus,
	)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if expectedStatus != nil {
			return nil, log.ErrorWithType(
				ErrConflict,
				"booking status changed concurrently",
				"bookingID", bookingID,
				"expected", *expectedStatus,
			)
		}
		return nil, log.ErrorWithType(ErrNotFound, "booking not found", "bookingID", bookingID)
	}

	booking, err = c.bookingRepo.GetByID(ctx, c.db.SQL, bookingID)
	if err != nil {
		return nil, log.Error("failed to reload booking", "error", err)
	}

	c.invalidateStats()
	c.publishStatusChange(KindParkingBooking, booking.ID, booking.BookingReference, booking.Status.String(), log)

	log.Info("Booking status updated", "bookingID", bookingID, "status", status)

	return booking, nil
}

func (c *AdminController) UpdateMeterReading(
	ctx context.Context,
	readingID uuid.UUID,
	request *UpdateMeterReadingRequest,
) (*MeterReading, error) {
	log := logger.New("adminController").TraceFromContext(ctx).Function("UpdateMeterReading")

	if readingID == uuid.Nil {
		return nil, log.ErrorWithType(ErrValidation, "reading id is required")
	}

	status := MeterReadingStatus(request.Status)
	if !status.IsValid() {
		return nil, log.ErrorWithType(ErrValidation, "invalid status", "status", request.Status)
	}

	var expectedStatus *MeterReadingStatus
	if request.ExpectedStatus != nil {
		expected := MeterReadingStatus(*request.ExpectedStatus)
		if !expected.IsValid() {
			return nil, log.ErrorWithType(ErrValidation, "invalid expectedStatus", "expectedStatus", *request.ExpectedStatus)
		}
		expectedStatus = &expected
	}

	update := repositories.MeterReadingAdminUpdate{
		Status:     status,
		AdminNotes: request.AdminNotes,
	}

	if request.ScheduledDate != nil {
		scheduled, err := time.Parse("2006-01-02", *request.ScheduledDate)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "invalid scheduledDate, expected YYYY-MM-DD", "error", err)
		}
		update.ScheduledDate = &scheduled
	}

	if request.ReadingValue != nil {
		value, err := decimal.NewFromString(*request.ReadingValue)
		if err != nil {
			return nil, log.ErrorWithType(ErrValidation, "invalid readingValue", "error", err)
		}
		if value.IsNegative() {
			return nil, log.ErrorWithType(ErrValidation, "readingValue cannot be negative")
		}
		update.ReadingValue = &value
	}

	if status == MeterReadingStatusScheduled && update.ScheduledDate == nil {
		return nil, log.ErrorWithType(ErrValidation, "scheduledDate is required when scheduling")
	}

	reading, err := c.readingRepo.GetByID(ctx, c.db.SQL, readingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.ErrorWithType(ErrNotFound, "meter reading not found", "readingID", readingID)
		}
		return nil, log.Error("failed to retrieve meter reading", "error", err)
	}

	if !reading.Status.CanTransition(status, c.Config.StrictTransitions) {
		return nil, log.ErrorWithType(
			ErrValidation,
			"status transition not allowed",
			"from", reading.Status,
			"to", status,
		)
	}

	affected, err := c.readingRepo.Update(ctx, c.db.SQL, readingID, update, expectedStatus)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if expectedStatus != nil {
			return nil, log.ErrorWithType(
				ErrConflict,
				"meter reading status changed concurrently",
				"readingID", readingID,
				"expected", *expectedStatus,
			)
		}
		return nil, log.ErrorWithType(ErrNotFound, "meter reading not found", "readingID", readingID)
	}

	reading, err = c.readingRepo.GetByID(ctx, c.db.SQL, readingID)
	if err != nil {
		return nil, log.Error("failed to reload meter reading", "error", err)
	}

	c.invalidateStats()
	c.publishStatusChange(KindMeterReading, reading.ID, reading.ReferenceNumber, reading.Status.String(), log)

	log.Info("Meter reading updated", "readingID", readingID, "status", status)

	return reading, nil
}

func (c *AdminController) ListIssues(ctx context.Context, status *IssueStatus) ([]Issue, error) {
	log := logger.New("adminController").TraceFromContext(ctx).Function("ListIssues")

	if status != nil && !status.IsValid() {
		return nil, log.ErrorWithType(ErrValidation, "invalid status filter", "status", *status)
	}

	return c.issueRepo.List(ctx, c.db.SQL, status)
}

func (c *AdminController) ListBookings(
	ctx context.Context,
	status *BookingStatus,
) ([]ParkingBooking, error) {
	log := logger.New("adminController").TraceFromContext(ctx).Function("ListBookings")

	if status != nil && !status.IsValid() {
		return nil, log.ErrorWithType(ErrValidation, "invalid status filter", "status", *status)
	}

	return c.bookingRepo.List(ctx, c.db.SQL, status)
}

func (c *AdminController) ListMeterReadings(
	ctx context.Context,
	status *MeterReadingStatus,
	meterType *MeterType,
) ([]MeterReading, error) {
	log := logger.New("adminController").TraceFromContext(ctx).Function("ListMeterReadings")

	if status != nil && !status.IsValid() {
		return nil, log.ErrorWithType(ErrValidation, "invalid status filter", "status", *status)
	}

	if meterType != nil && !meterType.IsValid() {
		return nil, log.ErrorWithType(ErrValidation, "invalid meter type filter", "meterType", *meterType)
	}

	return c.readingRepo.List(ctx, c.db.SQL, status, meterType)
}

// GetStats serves the dashboard counters, cached for a minute so dashboard
// polling does not hammer the counts.
func (c *AdminController) GetStats(ctx context.Context) (*Stats, error) {
	log := logger.New("adminController").TraceFromContext(ctx).Function("GetStats")

	var cached Stats
	found, err := database.NewCacheBuilder(c.db.Cache.General, statsCacheKey).
		WithContext(ctx).
		Get(&cached)
	if err != nil {
		log.Er("failed to read stats cache", err)
	}
	if found {
		return &cached, nil
	}

	weekAgo := time.Now().AddDate(0, 0, -7)

	stats := &Stats{}
	if stats.OpenIssues, err = c.issueRepo.CountOpen(ctx, c.db.SQL); err != nil {
		return nil, log.Error("failed to count open issues", "error", err)
	}
	if stats.ResolvedThisWeek, err = c.issueRepo.CountResolvedSince(ctx, c.db.SQL, weekAgo); err != nil {
		return nil, log.Error("failed to count resolved issues", "error", err)
	}
	if stats.PendingBookings, err = c.bookingRepo.CountPending(ctx, c.db.SQL); err != nil {
		return nil, log.Error("failed to count pending bookings", "error", err)
	}
	if stats.ApprovedThisWeek, err = c.bookingRepo.CountApprovedSince(ctx, c.db.SQL, weekAgo); err != nil {
		return nil, log.Error("failed to count approved bookings", "error", err)
	}
	if stats.PendingMeterReadings, err = c.readingRepo.CountPending(ctx, c.db.SQL); err != nil {
		return nil, log.Error("failed to count pending meter readings", "error", err)
	}

	if err := database.NewCacheBuilder(c.db.Cache.General, statsCacheKey).
		WithContext(ctx).
		WithStruct(stats).
		WithTTL(statsCacheTTL).
		Set(); err != nil {
		log.Er("failed to write stats cache", err)
	}

	return stats, nil
}

func (c *AdminController) invalidateStats() {
	if err := database.NewCacheBuilder(c.db.Cache.General, statsCacheKey).Delete(); err != nil {
		logger.New("adminController").Er("failed to invalidate stats cache", err)
	}
}

func (c *AdminController) publishStatusChange(
	kind RequestKind,
	id uuid.UUID,
	reference, status string,
	log logger.Logger,
) {
	if err := c.eventBus.Publish(events.REQUESTS_CHANNEL, events.RequestEvent{
		Type:      events.STATUS_CHANGED,
		Kind:      kind,
		RequestID: id,
		Reference: reference,
		Status:    status,
	}); err != nil {
		log.Er("failed to publish status change event", err, "reference", reference)
	}
}
