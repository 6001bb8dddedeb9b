package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type MeterReadingStatus string

const (
	MeterReadingStatusPending   MeterReadingStatus = "pending"
	MeterReadingStatusScheduled MeterReadingStatus = "scheduled"
	MeterReadingStatusCompleted MeterReadingStatus = "completed"
	MeterReadingStatusCancelled MeterReadingStatus = "cancelled"
)

func (s MeterReadingStatus) String() string {
	return string(s)
}

func (s MeterReadingStatus) IsValid() bool {
	switch s {
	case MeterReadingStatusPending, MeterReadingStatusScheduled,
		MeterReadingStatusCompleted, MeterReadingStatusCancelled:
		return true
	default:
		return false
	}
}

func AllMeterReadingStatuses() []MeterReadingStatus {
	return []MeterReadingStatus{
		MeterReadingStatusPending,
		MeterReadingStatusScheduled,
		MeterReadingStatusCompleted,
		MeterReadingStatusCancelled,
	}
}

type MeterType string

const (
	MeterTypeElectricity MeterType = "electricity"
	MeterTypeGas         MeterType = "gas"
	MeterTypeWater       MeterType = "water"
)

func (m MeterType) IsValid() bool {
	switch m {
	case MeterTypeElectricity, MeterTypeGas, MeterTypeWater:
		return true
	default:
		return false
	}
}

// MeterReading is a resident request for a meter to be read. ScheduledDate
// and ReadingValue are filled in by an administrator, never by the resident.
type MeterReading struct {
	BaseUUIDModel
	ReferenceNumber string              `gorm:"type:text;uniqueIndex;not null"      json:"referenceNumber"`
	ResidentName    string              `gorm:"type:text;not null"                  json:"residentName"`
	FlatNumber      string              `gorm:"type:text;not null"                  json:"flatNumber"`
	ResidentEmail   string              `gorm:"type:text;not null;index"            json:"residentEmail"`
	ResidentPhone   *string             `gorm:"type:text"                           json:"residentPhone,omitempty"`
	MeterType       MeterType           `gorm:"type:text;not null"                  json:"meterType"`
	PreferredDate   *time.Time          `gorm:"type:date"                           json:"preferredDate,omitempty"`
	AdditionalNotes *string             `gorm:"type:text"                           json:"additionalNotes,omitempty"`
	Status          MeterReadingStatus  `gorm:"type:text;not null;default:'pending';index" json:"status"`
	AdminNotes      *string             `gorm:"type:text"                           json:"adminNotes,omitempty"`
	ScheduledDate   *time.Time          `gorm:"type:date"                           json:"scheduledDate,omitempty"`
	ReadingValue    decimal.NullDecimal `gorm:"type:numeric"                        json:"readingValue,omitempty"`
}

func (MeterReading) TableName() string {
	return "meter_readings"
}
