package jobs

import (
	"context"
	"strconv"

	"masshouse/internal/database"
	"masshouse/internal/repositories"
	"masshouse/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// OpenRequestsDigestJob mails the building managers a morning summary of
// everything still waiting on them.
type OpenRequestsDigestJob struct {
	issueRepo    repositories.IssueRepository
	bookingRepo  repositories.ParkingBookingRepository
	readingRepo  repositories.MeterReadingRepository
	notification *services.NotificationService
	db           database.DB
	digestEmail  string
	log          logger.Logger
	schedule     services.Schedule
}

func NewOpenRequestsDigestJob(
	repos repositories.Repository,
	notification *services.NotificationService,
	db database.DB,
	digestEmail string,
	schedule services.Schedule,
) *OpenRequestsDigestJob {
	return &OpenRequestsDigestJob{
		issueRepo:    repos.Issue,
		bookingRepo:  repos.ParkingBooking,
		readingRepo:  repos.MeterReading,
		notification: notification,
		db:           db,
		digestEmail:  digestEmail,
		log:          logger.New("openRequestsDigestJob"),
		schedule:     schedule,
	}
}

func (j *OpenRequestsDigestJob) Name() string {
	return "OpenRequestsDigest"
}

func (j *OpenRequestsDigestJob) Schedule() services.Schedule {
	return j.schedule
}

func (j *OpenRequestsDigestJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	openIssues, err := j.issueRepo.CountOpen(ctx, j.db.SQL)
	if err != nil {
		return log.Err("failed to count open issues", err)
	}

	pendingBookings, err := j.bookingRepo.CountPending(ctx, j.db.SQL)
	if err != nil {
		return log.Err("failed to count pending bookings", err)
	}

	pendingReadings, err := j.readingRepo.CountPending(ctx, j.db.SQL)
	if err != nil {
		return log.Err("failed to count pending meter readings", err)
	}

	if openIssues == 0 && pendingBookings == 0 && pendingReadings == 0 {
		log.Info("Nothing outstanding, skipping digest")
		return nil
	}

	if err := j.notification.Send(ctx, services.EmailAdminDigest, j.digestEmail, map[string]string{
		"open_issues":            strconv.FormatInt(openIssues, 10),
		"pending_bookings":       strconv.FormatInt(pendingBookings, 10),
		"pending_meter_readings": strconv.FormatInt(pendingReadings, 10),
	}); err != nil {
		return log.Err("failed to send digest email", err)
	}

	log.Info("Digest sent",
		"openIssues", openIssues,
		"pendingBookings", pendingBookings,
		"pendingMeterReadings", pendingReadings,
	)

	return nil
}
