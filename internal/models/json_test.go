package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminNotesSerializedOnAdminRecords(t *testing.T) {
	notes := "Bay 3, barrier fob left with concierge"

	tests := []struct {
		name   string
		record any
	}{
		{"issue", Issue{Status: IssueStatusInProgress, AdminNotes: &notes}},
		{"parking booking", ParkingBooking{Status: BookingStatusApproved, AdminNotes: &notes}},
		{"meter reading", MeterReading{Status: MeterReadingStatusScheduled, AdminNotes: &notes}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.record)
			require.NoError(t, err)

			var decoded map[string]any
			require.NoError(t, json.Unmarshal(data, &decoded))
			assert.Equal(t, notes, decoded["adminNotes"])
		})
	}
}

func TestAdminNotesOmittedWhenUnset(t *testing.T) {
	data, err := json.Marshal(ParkingBooking{Status: BookingStatusPending})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "adminNotes")
}

func TestIssuePublicExcludesAdminNotes(t *testing.T) {
	notes := "internal note, resident must not see this"
	issue := Issue{
		ReferenceNumber: "MH-ISS-7K2Q9X",
		Status:          IssueStatusAcknowledged,
		Description:     "Lift stuck on floor 4",
		AdminNotes:      &notes,
	}

	data, err := json.Marshal(issue.ToPublic())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "adminNotes")
	assert.NotContains(t, string(data), notes)
	assert.Equal(t, "MH-ISS-7K2Q9X", decoded["referenceNumber"])
}
