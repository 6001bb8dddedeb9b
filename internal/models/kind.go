package models

// RequestKind identifies one of the three resident workflows. Each kind has
// its own reference namespace and status enum.
type RequestKind string

const (
	KindIssue          RequestKind = "issue"
	KindParkingBooking RequestKind = "parking_booking"
	KindMeterReading   RequestKind = "meter_reading"
)

func (k RequestKind) String() string {
	return string(k)
}

// ReferencePrefix returns the human-readable code prefix for the kind.
func (k RequestKind) ReferencePrefix() string {
	switch k {
	case KindIssue:
		return "MH-ISS"
	case KindParkingBooking:
		return "MH-PRK"
	case KindMeterReading:
		return "MH-MTR"
	default:
		return "MH-REQ"
	}
}
