package seed

import (
	"time"

	. "masshouse/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

// Seed inserts a handful of development records so the admin dashboard has
// something to show on a fresh database.
func Seed(db *gorm.DB, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	issues := []Issue{
		{
			ReferenceNumber: "MH-ISS-SEED01",
			ResidentName:    "Test Resident",
			FlatNumber:      "101",
			ResidentEmail:   "resident@example.com",
			IssueType:       "maintenance",
			Location:        "Lobby",
			Category:        "lighting",
			Description:     "Lobby ceiling light is flickering.",
			Status:          IssueStatusReported,
		},
		{
			ReferenceNumber: "MH-ISS-SEED02",
			ResidentName:    "Test Resident",
			FlatNumber:      "101",
			ResidentEmail:   "resident@example.com",
			IssueType:       "security",
			Location:        "Bike store",
			Category:        "access",
			Description:     "Bike store door does not lock properly.",
			Status:          IssueStatusInProgress,
		},
	}

	for _, issue := range issues {
		var existing Issue
		if err := db.First(&existing, "reference_number = ?", issue.ReferenceNumber).Error; err == nil {
			continue
		}
		if err := db.Create(&issue).Error; err != nil {
			log.Er("failed to seed issue", err, "reference", issue.ReferenceNumber)
			continue
		}

		notes := "Issue reported by resident"
		update := IssueUpdate{
			IssueID: issue.ID,
			Status:  IssueStatusReported,
			Notes:   &notes,
		}
		if err := db.Create(&update).Error; err != nil {
			log.Er("failed to seed issue update", err, "reference", issue.ReferenceNumber)
		}
	}

	booking := ParkingBooking{
		BookingReference:    "MH-PRK-SEED01",
		ResidentName:        "Test Resident",
		FlatNumber:          "101",
		ResidentEmail:       "resident@example.com",
		GuestName:           "Visiting Friend",
		VehicleRegistration: "AB12 CDE",
		StartTime:           time.Now().Add(24 * time.Hour),
		EndTime:             time.Now().Add(28 * time.Hour),
		Status:              BookingStatusPending,
	}
	var existingBooking ParkingBooking
	if err := db.First(&existingBooking, "booking_reference = ?", booking.BookingReference).Error; err != nil {
		if err := db.Create(&booking).Error; err != nil {
			log.Er("failed to seed parking booking", err, "reference", booking.BookingReference)
		}
	}

	reading := MeterReading{
		ReferenceNumber: "MH-MTR-SEED01",
		ResidentName:    "Test Resident",
		FlatNumber:      "101",
		ResidentEmail:   "resident@example.com",
		MeterType:       MeterTypeElectricity,
		AdditionalNotes: stringPtr("Meter cupboard is in the hallway."),
		Status:          MeterReadingStatusPending,
	}
	var existingReading MeterReading
	if err := db.First(&existingReading, "reference_number = ?", reading.ReferenceNumber).Error; err != nil {
		if err := db.Create(&reading).Error; err != nil {
			log.Er("failed to seed meter reading", err, "reference", reading.ReferenceNumber)
		}
	}

	log.Info("Seeding complete")
	return nil
}
