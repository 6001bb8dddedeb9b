package adminController

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Validation runs before any repository access, so a zero-value controller is
// enough to exercise the rejection paths.

func TestUpdateIssueStatusValidation(t *testing.T) {
	c := &AdminController{}

	t.Run("nil issue id", func(t *testing.T) {
		_, err := c.UpdateIssueStatus(t.Context(), uuid.Nil, &UpdateIssueStatusRequest{Status: "resolved"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := c.UpdateIssueStatus(t.Context(), uuid.New(), &UpdateIssueStatusRequest{Status: "finished"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown expected status", func(t *testing.T) {
		expected := "unheard-of"
		_, err := c.UpdateIssueStatus(t.Context(), uuid.New(), &UpdateIssueStatusRequest{
			Status:         "resolved",
			ExpectedStatus: &expected,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUpdateBookingStatusValidation(t *testing.T) {
	c := &AdminController{}

	t.Run("nil booking id", func(t *testing.T) {
		_, err := c.UpdateBookingStatus(t.Context(), uuid.Nil, &UpdateBookingStatusRequest{Status: "approved"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := c.UpdateBookingStatus(t.Context(), uuid.New(), &UpdateBookingStatusRequest{Status: "maybe"})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUpdateMeterReadingValidation(t *testing.T) {
	c := &AdminController{}

	t.Run("nil reading id", func(t *testing.T) {
		_, err := c.UpdateMeterReading(t.Context(), uuid.Nil, &UpdateMeterReadingRequest{Status: "scheduled"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := c.UpdateMeterReading(t.Context(), uuid.New(), &UpdateMeterReadingRequest{Status: "done"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("bad scheduled date", func(t *testing.T) {
		date := "next tuesday"
		_, err := c.UpdateMeterReading(t.Context(), uuid.New(), &UpdateMeterReadingRequest{
			Status:        "scheduled",
			ScheduledDate: &date,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("scheduling requires a date", func(t *testing.T) {
		_, err := c.UpdateMeterReading(t.Context(), uuid.New(), &UpdateMeterReadingRequest{
			Status: "scheduled",
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("non numeric reading value", func(t *testing.T) {
		value := "twelve"
		date := "2026-09-15"
		_, err := c.UpdateMeterReading(t.Context(), uuid.New(), &UpdateMeterReadingRequest{
			Status:        "completed",
			ScheduledDate: &date,
			ReadingValue:  &value,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("negative reading value", func(t *testing.T) {
		value := "-10.5"
		_, err := c.UpdateMeterReading(t.Context(), uuid.New(), &UpdateMeterReadingRequest{
			Status:       "completed",
			ReadingValue: &value,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}
