// Package durations computes the legal set of bookable durations for a start
// slot, bounded by the facility's closing time.
package durations

import (
	"fmt"
	"time"

	"github.com/brianstm/kevii-gym-booking-app/internal/timegrid"
)

// Catalog is the fixed set of offerable booking durations, in hours, ascending.
// The 3-hour ceiling is policy, not derived from any other constant.
var Catalog = []float64{0.5, 1, 1.5, 2, 2.5, 3}

// Available returns the ordered subsequence of catalog whose value fits into
// the hours remaining between startTime and closingTime (both "HH:MM").
// The difference is real-valued, not floored. A start at or past closing
// yields an empty result; the slot is then not bookable at all.
func Available(startTime, closingTime string, catalog []float64) ([]float64, error) {
	start, err := time.Parse(timegrid.TimeLayout, startTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", timegrid.ErrInvalidTime, startTime)
	}
	closing, err := time.Parse(timegrid.TimeLayout, closingTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", timegrid.ErrInvalidTime, closingTime)
	}

	remaining := closing.Sub(start).Hours()

	var legal []float64
	for _, d := range catalog {
		if d <= remaining {
			legal = append(legal, d)
		}
	}
	return legal, nil
}

// Allowed reports whether value is a member of the legal set for the slot.
func Allowed(value float64, startTime, closingTime string, catalog []float64) (bool, error) {
	legal, err := Available(startTime, closingTime, catalog)
	if err != nil {
		return false, err
	}
	for _, d := range legal {
		if d == value {
			return true, nil
		}
	}
	return false, nil
}
