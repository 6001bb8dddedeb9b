package models

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending  BookingStatus = "pending"
	BookingStatusApproved BookingStatus = "approved"
	BookingStatusRejected BookingStatus = "rejected"
)

func (s BookingStatus) String() string {
	return string(s)
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusApproved, BookingStatusRejected:
		return true
	default:
		return false
	}
}

func AllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingStatusPending,
		BookingStatusApproved,
		BookingStatusRejected,
	}
}

// ParkingBooking is a guest parking request. The time window is validated at
// submission and not re-checked later.
type ParkingBooking struct {
	BaseUUIDModel
	BookingReference    string        `gorm:"type:text;uniqueIndex;not null"      json:"bookingReference"`
	ResidentName        string        `gorm:"type:text;not null"                  json:"residentName"`
	FlatNumber          string        `gorm:"type:text;not null"                  json:"flatNumber"`
	ResidentEmail       string        `gorm:"type:text;not null;index"            json:"residentEmail"`
	ResidentPhone       *string       `gorm:"type:text"                           json:"residentPhone,omitempty"`
	GuestName           string        `gorm:"type:text;not null"                  json:"guestName"`
	VehicleRegistration string        `gorm:"type:text;not null"                  json:"vehicleRegistration"`
	StartTime           time.Time     `gorm:"not null"                            json:"startTime"`
	EndTime             time.Time     `gorm:"not null"                            json:"endTime"`
	SpecialRequirements *string       `gorm:"type:text"                           json:"specialRequirements,omitempty"`
	Status              BookingStatus `gorm:"type:text;not null;default:'pending';index" json:"status"`
	AdminNotes          *string       `gorm:"type:text"                           json:"adminNotes,omitempty"`
}

func (ParkingBooking) TableName() string {
	return "parking_bookings"
}
