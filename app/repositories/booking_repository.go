package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/thedosaspot/dosaspot/app/models"
	"github.com/thedosaspot/dosaspot/pkg/apperr"
)

// BookingFilter narrows List. Zero fields do not filter.
type BookingFilter struct {
	Status models.BookingStatus
	Date   string // exact YYYY-MM-DD
	Month  string // YYYY-MM prefix of Date
}

// BookingRepository handles database operations for Booking.
type BookingRepository struct {
	db *gorm.DB
}

// Create persists b and fills in its id and created_at.
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("bookings: create: %w", err)
	}
	return nil
}

// List returns bookings in insertion (id) order.
func (r *BookingRepository) List(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Model(&models.Booking{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Month != "" {
		q = q.Where("date LIKE ?", f.Month+"-%")
	}

	bookings := []models.Booking{}
	if err := q.Order("id asc").Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("bookings: list: %w", err)
	}
	return bookings, nil
}

// FindByID looks up a booking by primary key.
func (r *BookingRepository) FindByID(ctx context.Context, id uint) (models.Booking, error) {
	var b models.Booking
	err := r.db.WithContext(ctx).First(&b, id).Error
	return b, notFound(err, "booking", id)
}

// CompareAndSetStatus moves booking id from one status to another in a single
// conditional UPDATE. It reports false, with no error, when the booking was
// not in the from status, which includes the booking not existing.
func (r *BookingRepository) CompareAndSetStatus(ctx context.Context, id uint, from, to models.BookingStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, fmt.Errorf("bookings: update status: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Delete removes booking id.
func (r *BookingRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return fmt.Errorf("bookings: delete: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("booking", id)
	}
	return nil
}

// Count returns the number of stored bookings.
func (r *BookingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Count(&n).Error
	return n, err
}
