package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type IssueStatus string

const (
	IssueStatusReported     IssueStatus = "reported"
	IssueStatusAcknowledged IssueStatus = "acknowledged"
	IssueStatusInProgress   IssueStatus = "in_progress"
	IssueStatusResolved     IssueStatus = "resolved"
	IssueStatusClosed       IssueStatus = "closed"
)

func (s IssueStatus) String() string {
	return string(s)
}

func (s IssueStatus) IsValid() bool {
	switch s {
	case IssueStatusReported, IssueStatusAcknowledged, IssueStatusInProgress,
		IssueStatusResolved, IssueStatusClosed:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the issue still needs admin attention.
func (s IssueStatus) IsOpen() bool {
	return s == IssueStatusReported || s == IssueStatusAcknowledged ||
		s == IssueStatusInProgress
}

func AllIssueStatuses() []IssueStatus {
	return []IssueStatus{
		IssueStatusReported,
		IssueStatusAcknowledged,
		IssueStatusInProgress,
		IssueStatusResolved,
		IssueStatusClosed,
	}
}

// Issue is a building fault reported by a resident. The resident email is
// captured at creation and doubles as the lookup credential alongside the
// reference number; it is never updated through the public surface.
type Issue struct {
	BaseUUIDModel
	ReferenceNumber     string         `gorm:"type:text;uniqueIndex;not null"      json:"referenceNumber"`
	ResidentName        string         `gorm:"type:text;not null"                  json:"residentName"`
	FlatNumber          string         `gorm:"type:text;not null"                  json:"flatNumber"`
	ResidentEmail       string         `gorm:"type:text;not null;index"            json:"residentEmail"`
	ResidentPhone       *string        `gorm:"type:text"                           json:"residentPhone,omitempty"`
	IssueType           string         `gorm:"type:text;not null"                  json:"issueType"`
	Location            string         `gorm:"type:text;not null"                  json:"location"`
	Category            string         `gorm:"type:text;not null"                  json:"category"`
	Description         string         `gorm:"type:text;not null"                  json:"description"`
	PhotoURLs           datatypes.JSON `gorm:"type:jsonb"                          json:"photoUrls,omitempty"`
	Status              IssueStatus    `gorm:"type:text;not null;default:'reported';index" json:"status"`
	AdminNotes          *string        `gorm:"type:text"                           json:"adminNotes,omitempty"`

	Updates []IssueUpdate `gorm:"foreignKey:IssueID" json:"updates,omitempty"`
}

// IssueUpdate is one entry of the append-only status history for an issue.
// Rows are only ever inserted, never mutated or deleted.
type IssueUpdate struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuidv7()" json:"id"`
	IssueID   uuid.UUID   `gorm:"type:uuid;not null;index"              json:"issueId"`
	Status    IssueStatus `gorm:"type:text;not null"                    json:"status"`
	Notes     *string     `gorm:"type:text"                             json:"notes,omitempty"`
	CreatedAt time.Time   `gorm:"autoCreateTime"                        json:"createdAt"`
}

func (IssueUpdate) TableName() string {
	return "issue_updates"
}

// IssuePublic is the resident-facing projection returned by the status
// lookup. Admin notes are deliberately excluded.
type IssuePublic struct {
	ReferenceNumber string      `json:"referenceNumber"`
	Status          IssueStatus `json:"status"`
	IssueType       string      `json:"issueType"`
	Location        string      `json:"location"`
	Category        string      `json:"category"`
	Description     string      `json:"description"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

func (i *Issue) ToPublic() IssuePublic {
	return IssuePublic{
		ReferenceNumber: i.ReferenceNumber,
		Status:          i.Status,
		IssueType:       i.IssueType,
		Location:        i.Location,
		Category:        i.Category,
		Description:     i.Description,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       i.UpdatedAt,
	}
}
