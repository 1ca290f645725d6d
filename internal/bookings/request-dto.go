package bookings

// CreateBookingRequest is the reservation write: a combined date-time
// instant ("YYYY-MM-DDTHH:MM:00") and a duration in hours.
type CreateBookingRequest struct {
	Date     string  `json:"date" validate:"required"`
	Duration float64 `json:"duration" validate:"required,gt=0"`
}

// WeekCountQuery binds the week-count snapshot parameters.
type WeekCountQuery struct {
	Date        string `form:"date" validate:"required"`
	StartOfWeek bool   `form:"startOfWeek"`
	StartTime   string `form:"startTime"`
	EndTime     string `form:"endTime"`
}
