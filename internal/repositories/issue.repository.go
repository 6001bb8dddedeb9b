package repositories

import (
	"context"
	"time"

	. "masshouse/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IssueRepository interface {
	Create(ctx context.Context, tx *gorm.DB, issue *Issue) error
	CreateUpdate(ctx context.Context, tx *gorm.DB, update *IssueUpdate) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Issue, error)
	GetByReferenceAndEmail(ctx context.Context, tx *gorm.DB, reference, email string) (*Issue, error)
	GetUpdates(ctx context.Context, tx *gorm.DB, issueID uuid.UUID) ([]IssueUpdate, error)
	UpdateStatus(
		ctx context.Context,
		tx *gorm.DB,
		id uuid.UUID,
		status IssueStatus,
		adminNotes *string,
		expectedStatus *IssueStatus,
	) (int64, error)
	List(ctx context.Context, tx *gorm.DB, status *IssueStatus) ([]Issue, error)
	CountOpen(ctx context.Context, tx *gorm.DB) (int64, error)
	CountResolvedSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error)
}

type issueRepository struct {
	log logger.Logger
}

func NewIssueRepository() IssueRepository {
	return &issueRepository{
		log: logger.New("issueRepository"),
	}
}

func (r *issueRepository) Create(ctx context.Context, tx *gorm.DB, issue *Issue) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Create(issue).Error; err != nil {
		// Duplicate references bubble up as gorm.ErrDuplicatedKey so the
		// caller can mint a new one and retry.
		return log.Err("failed to create issue", err, "reference", issue.ReferenceNumber)
	}

	return nil
}

func (r *issueRepository) CreateUpdate(ctx context.Context, tx *gorm.DB, update *IssueUpdate) error {
	log := r.log.Function("CreateUpdate")

	if err := tx.WithContext(ctx).Create(update).Error; err != nil {
		return log.Err("failed to create issue update", err, "issueID", update.IssueID)
	}

	return nil
}

func (r *issueRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Issue, error) {
	var issue Issue
	if err := tx.WithContext(ctx).First(&issue, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &issue, nil
}

// GetByReferenceAndEmail matches both values or returns
// gorm.ErrRecordNotFound. Callers must not reveal which of the two values
// failed to match.
func (r *issueRepository) GetByReferenceAndEmail(
	ctx context.Context,
	tx *gorm.DB,
	reference, email string,
) (*Issue, error) {
	var issue Issue
	err := tx.WithContext(ctx).
		First(&issue, "reference_number = ? AND resident_email = ?", reference, email).Error
	if err != nil {
		return nil, err
	}

	return &issue, nil
}

func (r *issueRepository) GetUpdates(
	ctx context.Context,
	tx *gorm.DB,
	issueID uuid.UUID,
) ([]IssueUpdate, error) {
	log := r.log.Function("GetUpdates")

	var updates []IssueUpdate
	err := tx.WithContext(ctx).
		Where("issue_id = ?", issueID).
		Order("created_at ASC").
		Find(&updates).Error
	if err != nil {
		return nil, log.Err("failed to get issue updates", err, "issueID", issueID)
	}

	return updates, nil
}

// UpdateStatus changes the status column and bumps updated_at. When
// expectedStatus is provided the update is conditional on the current status;
// the returned row count lets the caller detect a lost race.
func (r *issueRepository) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	status IssueStatus,
	adminNotes *string,
	expectedStatus *IssueStatus,
) (int64, error) {
	log := r.log.Function("UpdateStatus")

	query := tx.WithContext(ctx).Model(&Issue{}).Where("id = ?", id)
	if expectedStatus != nil {
		query = query.Where("status = ?", *expectedStatus)
	}

	updates := map[string]any{"status": status}
	if adminNotes != nil {
		updates["admin_notes"] = *adminNotes
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return 0, log.Err("failed to update issue status", result.Error, "issueID", id)
	}

	return result.RowsAffected, nil
}

func (r *issueRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	status *IssueStatus,
) ([]Issue, error) {
	log := r.log.Function("List")

	query := tx.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var issues []Issue
	if err := query.Find(&issues).Error; err != nil {
		return nil, log.Err("failed to list issues", err)
	}

	return issues, nil
}

func (r *issueRepository) CountOpen(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&Issue{}).
		Where("status IN ?", []IssueStatus{
			IssueStatusReported,
			IssueStatusAcknowledged,
			IssueStatusInProgress,
		}).
		Count(&count).Error

	return count, err
}

func (r *issueRepository) CountResolvedSince(
	ctx context.Context,
	tx *gorm.DB,
	since time.Time,
) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&Issue{}).
		Where("status IN ?", []IssueStatus{IssueStatusResolved, IssueStatusClosed}).
		Where("updated_at >= ?", since).
		Count(&count).Error

	return count, err
}
