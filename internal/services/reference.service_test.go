package services

import (
	"regexp"
	"testing"

	"masshouse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceFormat(t *testing.T) {
	service := NewReferenceService()

	tests := []struct {
		name    string
		kind    models.RequestKind
		pattern string
	}{
		{"issue reference", models.KindIssue, `^MH-ISS-[A-Z0-9]{6}$`},
		{"parking reference", models.KindParkingBooking, `^MH-PRK-[A-Z0-9]{6}$`},
		{"meter reference", models.KindMeterReading, `^MH-MTR-[A-Z0-9]{6}$`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reference, err := service.Generate(tt.kind)
			require.NoError(t, err)
			assert.Regexp(t, regexp.MustCompile(tt.pattern), reference)
		})
	}
}

func TestReferenceKindNamespaces(t *testing.T) {
	service := NewReferenceService()

	issueRef, err := service.Generate(models.KindIssue)
	require.NoError(t, err)
	parkingRef, err := service.Generate(models.KindParkingBooking)
	require.NoError(t, err)

	assert.NotEqual(t, issueRef[:6], parkingRef[:6],
		"kind prefixes must keep reference namespaces distinct")
}

func TestReferenceSuffixCoversAlphabet(t *testing.T) {
	service := NewReferenceService()

	counts := make(map[byte]int)
	for range 2000 {
		reference, err := service.Generate(models.KindIssue)
		require.NoError(t, err)

		suffix := reference[len(reference)-ReferenceSuffixLength:]
		require.Len(t, suffix, ReferenceSuffixLength)
		for i := range len(suffix) {
			counts[suffix[i]]++
		}
	}

	for i := range len(referenceAlphabet) {
		assert.Positive(t, counts[referenceAlphabet[i]],
			"character %q never generated", string(referenceAlphabet[i]))
	}
}

func TestReferenceUniquenessOverRepeatedGeneration(t *testing.T) {
	service := NewReferenceService()

	seen := make(map[string]bool)
	for range 1000 {
		reference, err := service.Generate(models.KindIssue)
		require.NoError(t, err)
		assert.False(t, seen[reference], "duplicate reference generated: %s", reference)
		seen[reference] = true
	}
}
