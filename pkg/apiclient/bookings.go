package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/brianstm/kevii-gym-booking-app/internal/availability"
)

type createBookingRequest struct {
	Date     string  `json:"date"`
	Duration float64 `json:"duration"`
}

// WeekCount fetches the occupancy snapshot for the ISO week containing date
// ("YYYY-MM-DD"). Every call is a fresh fetch; the client never caches, so a
// post-booking refresh always shows true server state.
func (c *Client) WeekCount(ctx context.Context, date string) (*availability.Matrix, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("startOfWeek", "true")
	q.Set("startTime", c.startTime)
	q.Set("endTime", c.endTime)

	matrix := availability.NewMatrix()
	if err := c.doJSON(ctx, http.MethodGet, "/api/bookings/week-count?"+q.Encode(), nil, matrix); err != nil {
		return nil, fmt.Errorf("week count: %w", err)
	}
	return matrix, nil
}

// CreateBooking submits one reservation write: a combined date-time instant
// ("YYYY-MM-DDTHH:MM:00") and a duration in hours. nil means the server
// answered 201. Failures are never retried here; re-submission is an
// explicit user decision.
func (c *Client) CreateBooking(ctx context.Context, dateTime string, durationHours float64) error {
	return c.doJSON(ctx, http.MethodPost, "/api/bookings", createBookingRequest{
		Date:     dateTime,
		Duration: durationHours,
	}, nil)
}
