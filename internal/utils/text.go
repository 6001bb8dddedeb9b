package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// NormalizeReference trims and uppercases a reference so lookups are
// insensitive to how the resident typed it.
func NormalizeReference(reference string) string {
	return strings.ToUpper(strings.TrimSpace(reference))
}

// NormalizeEmail trims and lowercases an email address. Applied at both
// submission and lookup so the pair always matches.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Clean trims surrounding whitespace from a free-text field.
func Clean(value string) string {
	return strings.TrimSpace(value)
}

// IsBlank reports whether a required field is empty after trimming.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// NormalizeVehicleRegistration uppercases and collapses surrounding
// whitespace on a number plate.
func NormalizeVehicleRegistration(registration string) string {
	return strings.ToUpper(strings.TrimSpace(registration))
}
