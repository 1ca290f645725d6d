package timegrid

import (
	"fmt"
	"time"
)

// Display layouts. These are fixed output patterns; the inputs are always the
// machine-readable forms (DateLayout dates, TimeLayout times).
const (
	dateDisplayLayout     = "Mon, 02 Jan"
	timeDisplayLayout     = "3:04 PM"
	dateTimeDisplayLayout = "02 Jan 2006, 03:04 PM"
	combinedLayout        = "2006-01-02T15:04:05"
)

// FormatDate renders a "YYYY-MM-DD" date as "Mon, 02 Jan".
func FormatDate(dateStr string) (string, error) {
	d, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, dateStr)
	}
	return d.Format(dateDisplayLayout), nil
}

// FormatTime renders an "HH:MM" time as 12-hour with an uppercase meridiem,
// e.g. "9:30 PM".
func FormatTime(timeStr string) (string, error) {
	t, err := time.Parse(TimeLayout, timeStr)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTime, timeStr)
	}
	return t.Format(timeDisplayLayout), nil
}

// FormatDateTime renders a (date, time) pair as "02 Jun 2024, 10:30 PM".
// The meridiem is always uppercase.
func FormatDateTime(dateStr, timeStr string) (string, error) {
	dt, err := time.Parse(combinedLayout, CombineISO(dateStr, timeStr))
	if err != nil {
		return "", fmt.Errorf("invalid slot %q %q: %w", dateStr, timeStr, err)
	}
	return dt.Format(dateTimeDisplayLayout), nil
}

// CombineISO joins a date and time into the submission instant the booking
// API expects, e.g. "2024-06-03T22:30:00".
func CombineISO(dateStr, timeStr string) string {
	return dateStr + "T" + timeStr + ":00"
}

// ParseCombined parses a CombineISO-form instant back into a time.Time.
func ParseCombined(value string) (time.Time, error) {
	return time.Parse(combinedLayout, value)
}
