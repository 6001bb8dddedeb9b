package repositories

import (
	"context"
	"time"

	. "masshouse/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MeterReadingAdminUpdate carries the admin-editable columns. Nil fields are
// left untouched.
type MeterReadingAdminUpdate struct {
	Status        MeterReadingStatus
	AdminNotes    *string
	ScheduledDate *time.Time
	ReadingValue  *decimal.Decimal
}

type MeterReadingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, reading *MeterReading) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*MeterReading, error)
	Update(
		ctx context.Context,
		tx *gorm.DB,
		id uuid.UUID,
		update MeterReadingAdminUpdate,
		expectedStatus *MeterReadingStatus,
	) (int64, error)
	List(
		ctx context.Context,
		tx *gorm.DB,
		status *MeterReadingStatus,
		meterType *MeterType,
	) ([]MeterReading, error)
	CountPending(ctx context.Context, tx *gorm.DB) (int64, error)
}

type meterReadingRepository struct {
	log logger.Logger
}

func NewMeterReadingRepository() MeterReadingRepository {
	return &meterReadingRepository{
		log: logger.New("meterReadingRepository"),
	}
}

func (r *meterReadingRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	reading *MeterReading,
) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Create(reading).Error; err != nil {
		return log.Err("failed to create meter reading", err, "reference", reading.ReferenceNumber)
	}

	return nil
}

func (r *meterReadingRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*MeterReading, error) {
	var reading MeterReading
	if err := tx.WithContext(ctx).First(&reading, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &reading, nil
}

func (r *meterReadingRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	update MeterReadingAdminUpdate,
	expectedStatus *MeterReadingStatus,
) (int64, error) {
	log := r.log.Function("Update")

	updates := map[string]any{"status": update.Status}
	if update.AdminNotes != nil {
		updates["admin_notes"] = *update.AdminNotes
	}
	if update.ScheduledDate != nil {
		updates["scheduled_date"] = *update.ScheduledDate
	}
	if update.ReadingValue != nil {
		updates["reading_value"] = *update.ReadingValue
	}

	query := tx.WithContext(ctx).Model(&MeterReading{}).Where("id = ?", id)
	if expectedStatus != nil {
		query = query.Where("status = ?", *expectedStatus)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return 0, log.Err("failed to update meter reading", result.Error, "readingID", id)
	}

	return result.RowsAffected, nil
}

func (r *meterReadingRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	status *MeterReadingStatus,
	meterType *MeterType,
) ([]MeterReading, error) {
	log := r.log.Function("List")

	query := tx.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if meterType != nil {
		query = query.Where("meter_type = ?", *meterType)
	}

	var readings []MeterReading
	if err := query.Find(&readings).Error; err != nil {
		return nil, log.Err("failed to list meter readings", err)
	}

	return readings, nil
}

func (r *meterReadingRepository) CountPending(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&MeterReading{}).
		Where("status = ?", MeterReadingStatusPending).
		Count(&count).Error

	return count, err
}
