package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// ListBetween returns confirmed bookings overlapping [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]Booking, error)

	// UserHasBookingBetween reports whether the user already holds a
	// confirmed booking starting within [from, to).
	UserHasBookingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (bool, error)

	// GetUserBookings returns the user's bookings, most recent first.
	GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error)

	// CreateWithCapacityCheck inserts the booking only if every grid slot it
	// covers stays under maxPerSlot, inside one transaction.
	CreateWithCapacityCheck(ctx context.Context, booking *Booking, maxPerSlot int, slotInterval time.Duration) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListBetween(ctx context.Context, from, to time.Time) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusConfirmed).
		Where("starts_at < ? AND starts_at + (duration_hours * interval '1 hour') > ?", to, from).
		Order("starts_at asc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) UserHasBookingBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Booking{}).
		Where("user_id = ? AND status = ?", userID, StatusConfirmed).
		Where("starts_at >= ? AND starts_at < ?", from, to).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) GetUserBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Booking, error) {
	var bookings []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("starts_at desc").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *repository) CreateWithCapacityCheck(ctx context.Context, booking *Booking, maxPerSlot int, slotInterval time.Duration) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock overlapping rows so two concurrent writes to the same window
		// serialize; the second one re-counts and may hit the ceiling.
		var overlapping []Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ?", StatusConfirmed).
			Where("starts_at < ? AND starts_at + (duration_hours * interval '1 hour') > ?",
				booking.EndsAt(), booking.StartsAt).
			Find(&overlapping).Error
		if err != nil {
			return err
		}

		for slot := booking.StartsAt; slot.Before(booking.EndsAt()); slot = slot.Add(slotInterval) {
			count := 0
			for i := range overlapping {
				if overlapping[i].Covers(slot) {
					count++
				}
			}
			if count >= maxPerSlot {
				return ErrSlotFull
			}
		}

		return tx.Create(booking).Error
	})
}
