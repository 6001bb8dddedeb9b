package issuesController

import (
	"strings"
	"testing"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/stretchr/testify/assert"
)

func validSubmitRequest() *SubmitIssueRequest {
	return &SubmitIssueRequest{
		ResidentName:  "Jordan Blake",
		FlatNumber:    "42",
		ResidentEmail: "jordan@example.com",
		IssueType:     "maintenance",
		Location:      "Car park level 2",
		Category:      "lighting",
		Description:   "The light by bay 14 has been out for a week.",
	}
}

func TestValidateSubmit(t *testing.T) {
	c := &IssueController{}
	log := logger.New("test")

	t.Run("valid request", func(t *testing.T) {
		assert.NoError(t, c.validateSubmit(validSubmitRequest(), log))
	})

	t.Run("missing required fields", func(t *testing.T) {
		mutations := map[string]func(*SubmitIssueRequest){
			"residentName":  func(r *SubmitIssueRequest) { r.ResidentName = "" },
			"flatNumber":    func(r *SubmitIssueRequest) { r.FlatNumber = "   " },
			"residentEmail": func(r *SubmitIssueRequest) { r.ResidentEmail = "" },
			"issueType":     func(r *SubmitIssueRequest) { r.IssueType = "" },
			"location":      func(r *SubmitIssueRequest) { r.Location = "" },
			"category":      func(r *SubmitIssueRequest) { r.Category = "" },
			"description":   func(r *SubmitIssueRequest) { r.Description = "\t" },
		}

		for field, mutate := range mutations {
			t.Run(field, func(t *testing.T) {
				request := validSubmitRequest()
				mutate(request)

				err := c.validateSubmit(request, log)
				assert.ErrorIs(t, err, ErrValidation)
			})
		}
	})

	t.Run("invalid email", func(t *testing.T) {
		request := validSubmitRequest()
		request.ResidentEmail = "not-an-email"

		assert.ErrorIs(t, c.validateSubmit(request, log), ErrValidation)
	})

	t.Run("description too long", func(t *testing.T) {
		request := validSubmitRequest()
		request.Description = strings.Repeat("a", MaxDescriptionLength+1)

		assert.ErrorIs(t, c.validateSubmit(request, log), ErrValidation)
	})

	t.Run("too many photo urls", func(t *testing.T) {
		request := validSubmitRequest()
		for range MaxPhotoURLs + 1 {
			request.PhotoURLs = append(request.PhotoURLs, "https://cdn.example.com/photo.jpg")
		}

		assert.ErrorIs(t, c.validateSubmit(request, log), ErrValidation)
	})

	t.Run("photo urls at limit", func(t *testing.T) {
		request := validSubmitRequest()
		for range MaxPhotoURLs {
			request.PhotoURLs = append(request.PhotoURLs, "https://cdn.example.com/photo.jpg")
		}

		assert.NoError(t, c.validateSubmit(request, log))
	})
}

func TestCheckStatusValidation(t *testing.T) {
	c := &IssueController{}

	tests := []struct {
		name    string
		request CheckStatusRequest
	}{
		{"empty reference", CheckStatusRequest{ReferenceNumber: "", ResidentEmail: "a@b.com"}},
		{"empty email", CheckStatusRequest{ReferenceNumber: "MH-ISS-ABC123", ResidentEmail: ""}},
		{"whitespace only", CheckStatusRequest{ReferenceNumber: "   ", ResidentEmail: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CheckStatus(t.Context(), &tt.request)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}
