package issuesController

import (
	"testing"

	"masshouse/config"
	"masshouse/internal/database"
	. "masshouse/internal/models"
	"masshouse/internal/repositories"
	"masshouse/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) (database.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm db: %v", err)
	}

	return database.DB{SQL: gormDB}, mock
}

func newTestController(db database.DB) *IssueController {
	return &IssueController{
		issueRepo:           repositories.NewIssueRepository(),
		transactionService:  services.NewTransactionService(db),
		referenceService:    services.NewReferenceService(),
		notificationService: services.NewNotificationService(config.Config{}),
		db:                  db,
	}
}

func TestSubmitValidationFailurePersistsNothing(t *testing.T) {
	db, mock := setupTestDB(t)
	controller := newTestController(db)

	request := validSubmitRequest()
	request.Description = ""

	response, err := controller.Submit(t.Context(), request)

	assert.Nil(t, response)
	assert.ErrorIs(t, err, ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithReferenceRetriesOnDuplicate(t *testing.T) {
	db, mock := setupTestDB(t)
	controller := newTestController(db)
	log := logger.New("test")

	duplicate := &pgconn.PgError{
		Code:    "23505",
		Message: "duplicate key value violates unique constraint",
	}

	// first attempt collides on the reference and rolls back
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "issues"`).WillReturnError(duplicate)
	mock.ExpectRollback()

	// second attempt commits the issue and its seed history row together
	issueID := uuid.New()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "issues"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(issueID.String()))
	mock.ExpectQuery(`INSERT INTO "issue_updates"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	issue := &Issue{
		ResidentName:  "Test Resident",
		FlatNumber:    "101",
		ResidentEmail: "resident@example.com",
		IssueType:     "urgent",
		Location:      "masshouse",
		Category:      "lift",
		Description:   "Lift stuck",
		Status:        IssueStatusReported,
	}

	err := controller.createWithReference(t.Context(), issue, log)

	require.NoError(t, err)
	assert.Equal(t, issueID, issue.ID)
	assert.NotEmpty(t, issue.ReferenceNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithReferenceGivesUpAfterMaxAttempts(t *testing.T) {
	db, mock := setupTestDB(t)
	controller := newTestController(db)
	log := logger.New("test")

	duplicate := &pgconn.PgError{
		Code:    "23505",
		Message: "duplicate key value violates unique constraint",
	}

	for range services.MaxReferenceAttempts {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "issues"`).WillReturnError(duplicate)
		mock.ExpectRollback()
	}

	issue := &Issue{
		ResidentName:  "Test Resident",
		FlatNumber:    "101",
		ResidentEmail: "resident@example.com",
		IssueType:     "urgent",
		Location:      "masshouse",
		Category:      "lift",
		Description:   "Lift stuck",
		Status:        IssueStatusReported,
	}

	err := controller.createWithReference(t.Context(), issue, log)

	assert.ErrorIs(t, err, ErrReferenceGeneration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckStatusRoundTrip(t *testing.T) {
	db, mock := setupTestDB(t)
	controller := newTestController(db)

	issueID := uuid.New()
	mock.ExpectQuery(`SELECT (.+) FROM "issues"`).
		WithArgs("MH-ISS-AB12CD", "resident@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "reference_number", "resident_email", "status",
			"issue_type", "location", "category", "description",
		}).AddRow(
			issueID.String(), "MH-ISS-AB12CD", "resident@example.com", "reported",
			"urgent", "masshouse", "lift", "Lift stuck",
		))
	mock.ExpectQuery(`SELECT (.+) FROM "issue_updates"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "issue_id", "status", "notes"}).
			AddRow(uuid.New().String(), issueID.String(), "reported", "Issue reported by resident"))

	// mixed case and whitespace must be normalized before the lookup
	response, err := controller.CheckStatus(t.Context(), &CheckStatusRequest{
		ReferenceNumber: " mh-iss-ab12cd ",
		ResidentEmail:   " Resident@Example.com ",
	})

	require.NoError(t, err)
	assert.Equal(t, IssueStatusReported, response.Issue.Status)
	assert.Equal(t, "MH-ISS-AB12CD", response.Issue.ReferenceNumber)
	require.Len(t, response.Updates, 1)
	assert.Equal(t, IssueStatusReported, response.Updates[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckStatusMismatchReturnsNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	controller := newTestController(db)

	// a wrong email and a wrong reference both produce an empty result, so
	// the caller cannot tell which of the two failed to match
	mock.ExpectQuery(`SELECT (.+) FROM "issues"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	response, err := controller.CheckStatus(t.Context(), &CheckStatusRequest{
		ReferenceNumber: "MH-ISS-AB12CD",
		ResidentEmail:   "wrong@example.com",
	})

	assert.Nil(t, response)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
