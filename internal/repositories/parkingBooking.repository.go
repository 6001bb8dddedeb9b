package repositories

import (
	"context"
	"time"

	. "masshouse/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParkingBookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, booking *ParkingBooking) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*ParkingBooking, error)
	UpdateStatus(
		ctx context.Context,
		tx *gorm.DB,
		id uuid.UUID,
		status BookingStatus,
		adminNotes *string,
		expectedStatus *BookingStatus,
	) (int64, error)
	List(ctx context.Context, tx *gorm.DB, status *BookingStatus) ([]ParkingBooking, error)
	CountPending(ctx context.Context, tx *gorm.DB) (int64, error)
	CountApprovedSince(ctx context.Context, tx *gorm.DB, since time.Time) (int64, error)
}

type parkingBookingRepository struct {
	log logger.Logger
}

func NewParkingBookingRepository() ParkingBookingRepository {
	return &parkingBookingRepository{
		log: logger.New("parkingBookingRepository"),
	}
}

func (r *parkingBookingRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	booking *ParkingBooking,
) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Create(booking).Error; err != nil {
		return log.Err("failed to create parking booking", err, "reference", booking.BookingReference)
	}

	return nil
}

func (r *parkingBookingRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
) (*ParkingBooking, error) {
	var booking ParkingBooking
	if err := tx.WithContext(ctx).First(&booking, "id = ?", id).Error; err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *parkingBookingRepository) UpdateStatus(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	status BookingStatus,
	adminNotes *string,
	expectedStatus *BookingStatus,
) (int64, error) {
	log := r.log.Function("UpdateStatus")

	updates := map[string]any{"status": status}
	if adminNotes != nil {
		updates["admin_notes"] = *adminNotes
	}

	query := tx.WithContext(ctx).Model(&ParkingBooking{}).Where("id = ?", id)
	if expectedStatus != nil {
		query = query.Where("status = ?", *expectedStatus)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return 0, log.Err("failed to update parking booking", result.Error, "bookingID", id)
	}

	return result.RowsAffected, nil
}

func (r *parkingBookingRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	status *BookingStatus,
) ([]ParkingBooking, error) {
	log := r.log.Function("List")

	query := tx.WithContext(ctx).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var bookings []ParkingBooking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, log.Err("failed to list parking bookings", err)
	}

	return bookings, nil
}

func (r *parkingBookingRepository) CountPending(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&ParkingBooking{}).
		Where("status = ?", BookingStatusPending).
		Count(&count).Error

	return count, err
}

func (r *parkingBookingRepository) CountApprovedSince(
	ctx context.Context,
	tx *gorm.DB,
	since time.Time,
) (int64, error) {
	var count int64
	err := tx.WithContext(ctx).Model(&ParkingBooking{}).
		Where("status = ?", BookingStatusApproved).
		Where("updated_at >= ?", since).
		Count(&count).Error

	return count, err
}
