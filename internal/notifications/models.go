package notifications

import "time"

// BookingConfirmedEvent is published to Kafka after a booking commits.
type BookingConfirmedEvent struct {
	BookingID     string    `json:"booking_id"`
	UserID        string    `json:"user_id"`
	StartsAt      time.Time `json:"starts_at"`
	DurationHours float64   `json:"duration_hours"`
	CreatedAt     time.Time `json:"created_at"`
}
