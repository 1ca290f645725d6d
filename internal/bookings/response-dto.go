package bookings

import "time"

// BookingResponse is the created-booking payload.
type BookingResponse struct {
	ID            string    `json:"id"`
	StartsAt      time.Time `json:"starts_at"`
	DurationHours float64   `json:"duration_hours"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToResponse converts a Booking to its API shape.
func (b *Booking) ToResponse() BookingResponse {
	return BookingResponse{
		ID:            b.ID.String(),
		StartsAt:      b.StartsAt,
		DurationHours: b.DurationHours,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}
