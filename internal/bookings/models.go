package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/brianstm/kevii-gym-booking-app/internal/users"
)

const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Booking is one confirmed gym reservation: a start instant on the half-hour
// grid and a duration in hours from the fixed catalog.
type Booking struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	StartsAt      time.Time `gorm:"index;not null" json:"starts_at"`
	DurationHours float64   `gorm:"not null" json:"duration_hours"`
	Status        string    `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED');default:'CONFIRMED'" json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	User *users.User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// EndsAt returns the instant the booking finishes.
func (b *Booking) EndsAt() time.Time {
	return b.StartsAt.Add(time.Duration(b.DurationHours * float64(time.Hour)))
}

// Covers reports whether the booking occupies the slot starting at t.
func (b *Booking) Covers(t time.Time) bool {
	return !t.Before(b.StartsAt) && t.Before(b.EndsAt())
}

func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}
