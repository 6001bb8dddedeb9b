package meterController

import (
	"testing"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/stretchr/testify/assert"
)

func validReadingRequest() *SubmitReadingRequest {
	return &SubmitReadingRequest{
		ResidentName:  "Priya Patel",
		FlatNumber:    "8",
		ResidentEmail: "priya@example.com",
		MeterType:     "electricity",
	}
}

func TestValidateSubmit(t *testing.T) {
	c := &MeterController{}
	log := logger.New("test")

	t.Run("valid without preferred date", func(t *testing.T) {
		preferred, err := c.validateSubmit(validReadingRequest(), log)
		assert.NoError(t, err)
		assert.Nil(t, preferred)
	})

	t.Run("valid with preferred date", func(t *testing.T) {
		request := validReadingRequest()
		date := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
		request.PreferredDate = &date

		preferred, err := c.validateSubmit(request, log)
		assert.NoError(t, err)
		if assert.NotNil(t, preferred) {
			assert.Equal(t, date, preferred.Format("2006-01-02"))
		}
	})

	t.Run("empty preferred date is ignored", func(t *testing.T) {
		request := validReadingRequest()
		empty := ""
		request.PreferredDate = &empty

		preferred, err := c.validateSubmit(request, log)
		assert.NoError(t, err)
		assert.Nil(t, preferred)
	})

	t.Run("missing required fields", func(t *testing.T) {
		mutations := map[string]func(*SubmitReadingRequest){
			"residentName":  func(r *SubmitReadingRequest) { r.ResidentName = "" },
			"flatNumber":    func(r *SubmitReadingRequest) { r.FlatNumber = " " },
			"residentEmail": func(r *SubmitReadingRequest) { r.ResidentEmail = "" },
			"meterType":     func(r *SubmitReadingRequest) { r.MeterType = "" },
		}

		for field, mutate := range mutations {
			t.Run(field, func(t *testing.T) {
				request := validReadingRequest()
				mutate(request)

				_, err := c.validateSubmit(request, log)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		request := validReadingRequest()
		request.ResidentEmail = "priya at example dot com"

		_, err := c.validateSubmit(request, log)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown meter type", func(t *testing.T) {
		request := validReadingRequest()
		request.MeterType = "steam"

		_, err := c.validateSubmit(request, log)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("bad preferred date format", func(t *testing.T) {
		request := validReadingRequest()
		date := "15/01/2026"
		request.PreferredDate = &date

		_, err := c.validateSubmit(request, log)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("preferred date in the past", func(t *testing.T) {
		request := validReadingRequest()
		date := time.Now().AddDate(0, 0, -2).Format("2006-01-02")
		request.PreferredDate = &date

		_, err := c.validateSubmit(request, log)
		assert.ErrorIs(t, err, ErrValidation)
	})
}
