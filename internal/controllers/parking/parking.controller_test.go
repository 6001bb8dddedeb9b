package parkingController

import (
	"testing"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/stretchr/testify/assert"
)

func validBookingRequest() *SubmitBookingRequest {
	start := time.Now().Add(24 * time.Hour)
	end := start.Add(4 * time.Hour)

	return &SubmitBookingRequest{
		ResidentName:        "Sam Carter",
		FlatNumber:          "17",
		ResidentEmail:       "sam@example.com",
		GuestName:           "Alex Morgan",
		VehicleRegistration: "ab12 cde",
		StartTime:           start.Format(time.RFC3339),
		EndTime:             end.Format(time.RFC3339),
	}
}

func TestValidateSubmit(t *testing.T) {
	c := &ParkingController{}
	log := logger.New("test")

	t.Run("valid request", func(t *testing.T) {
		start, end, err := c.validateSubmit(validBookingRequest(), log)
		assert.NoError(t, err)
		assert.True(t, end.After(start))
	})

	t.Run("missing required fields", func(t *testing.T) {
		mutations := map[string]func(*SubmitBookingRequest){
			"residentName":        func(r *SubmitBookingRequest) { r.ResidentName = "" },
			"flatNumber":          func(r *SubmitBookingRequest) { r.FlatNumber = "" },
			"residentEmail":       func(r *SubmitBookingRequest) { r.ResidentEmail = "  " },
			"guestName":           func(r *SubmitBookingRequest) { r.GuestName = "" },
			"vehicleRegistration": func(r *SubmitBookingRequest) { r.VehicleRegistration = "" },
			"startTime":           func(r *SubmitBookingRequest) { r.StartTime = "" },
			"endTime":             func(r *SubmitBookingRequest) { r.EndTime = "" },
		}

		for field, mutate := range mutations {
			t.Run(field, func(t *testing.T) {
				request := validBookingRequest()
				mutate(request)

				_, _, err := c.validateSubmit(request, log)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		request := validBookingRequest()
		request.ResidentEmail = "sam@nodomain"

		_, _, err := c.validateSubmit(request, log)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unparseable times", func(t *testing.T) {
		request := validBookingRequest()
		request.StartTime = "tomorrow at noon"

		_, _, err := c.validateSubmit(request, log)
		assert.ErrorIs(t, err, ErrValidation)

		request = validBookingRequest()
		request.EndTime = "2026-01-15 14:00:00"

		_, _, err = c.validateSubmit(request, log)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("end not after start", func(t *testing.T) {
		request := validBookingRequest()
		request.EndTime = request.StartTime

		_, _, err := c.validateSubmit(request, log)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("start in the past", func(t *testing.T) {
		request := validBookingRequest()
		request.StartTime = time.Now().Add(-time.Hour).Format(time.RFC3339)

		_, _, err := c.validateSubmit(request, log)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("window too long", func(t *testing.T) {
		request := validBookingRequest()
		start := time.Now().Add(24 * time.Hour)
		request.StartTime = start.Format(time.RFC3339)
		request.EndTime = start.Add(MaxBookingDuration + time.Hour).Format(time.RFC3339)

		_, _, err := c.validateSubmit(request, log)
		assert.ErrorIs(t, err, ErrValidation)
	})
}
