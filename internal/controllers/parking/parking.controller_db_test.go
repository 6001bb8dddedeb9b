package parkingController

import (
	"testing"
	"time"

	"masshouse/internal/database"
	"masshouse/internal/repositories"
	"masshouse/internal/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
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

func TestSubmitRejectedWindowPersistsNothing(t *testing.T) {
	db, mock := setupTestDB(t)
	controller := &ParkingController{
		bookingRepo:        repositories.NewParkingBookingRepository(),
		transactionService: services.NewTransactionService(db),
		referenceService:   services.NewReferenceService(),
		db:                 db,
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"end before start", time.Now().Add(2 * time.Hour), time.Now().Add(1 * time.Hour)},
		{"start in the past", time.Now().Add(-1 * time.Hour), time.Now().Add(1 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := validBookingRequest()
			request.StartTime = tt.start.Format(time.RFC3339)
			request.EndTime = tt.end.Format(time.RFC3339)

			response, err := controller.Submit(t.Context(), request)

			assert.Nil(t, response)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}
