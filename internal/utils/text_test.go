package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeReference(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase input", "mh-iss-abc123", "MH-ISS-ABC123"},
		{"surrounding whitespace", "  MH-PRK-XY99ZZ  ", "MH-PRK-XY99ZZ"},
		{"mixed case", "Mh-Mtr-0q1W2e", "MH-MTR-0Q1W2E"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeReference(tt.input))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "resident@example.com", NormalizeEmail("  Resident@Example.COM "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"resident@example.com",
		"first.last@sub.domain.co.uk",
		"flat+12@building.org",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"no-at-sign",
		"two@@example.com",
		"spaces in@example.com",
		"@example.com",
		"user@",
		"user@nodot",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestNormalizeVehicleRegistration(t *testing.T) {
	assert.Equal(t, "AB12 CDE", NormalizeVehicleRegistration(" ab12 cde "))
}
