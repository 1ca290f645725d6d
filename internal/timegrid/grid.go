package timegrid

import (
	"errors"
	"fmt"
	"time"
)

// Machine-readable layouts the grid works with. Display layouts live in format.go.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	ErrInvalidDate     = errors.New("date must be in YYYY-MM-DD form")
	ErrInvalidTime     = errors.New("time must be in HH:MM form")
	ErrInvalidInterval = errors.New("slot interval must be positive")
	ErrInvertedWindow  = errors.New("opening time must not be after closing time")
)

// Grid is the fixed lattice of bookable times of day. Every bookable slot's
// time value is a member of Slots(); nothing exists outside [Start, End].
type Grid struct {
	start    time.Time // clock value on the zero date
	end      time.Time
	interval time.Duration

	startStr string
	endStr   string
}

// New builds a grid from "HH:MM" opening and closing times at the given step.
func New(start, end string, interval time.Duration) (*Grid, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	s, err := time.Parse(TimeLayout, start)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, start)
	}
	e, err := time.Parse(TimeLayout, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTime, end)
	}
	if e.Before(s) {
		return nil, ErrInvertedWindow
	}
	return &Grid{start: s, end: e, interval: interval, startStr: start, endStr: end}, nil
}

// Default returns the standard gym grid: 06:00-23:00 at 30-minute steps.
func Default() *Grid {
	g, err := New("06:00", "23:00", 30*time.Minute)
	if err != nil {
		panic(err) // static inputs
	}
	return g
}

// Start returns the opening time as "HH:MM".
func (g *Grid) Start() string { return g.startStr }

// End returns the closing time as "HH:MM".
func (g *Grid) End() string { return g.endStr }

// Interval returns the slot granularity.
func (g *Grid) Interval() time.Duration { return g.interval }

// Slots returns the ordered sequence of time-of-day values from the opening
// time to the closing time inclusive. Deterministic, no inputs.
func (g *Grid) Slots() []string {
	var slots []string
	for t := g.start; !t.After(g.end); t = t.Add(g.interval) {
		slots = append(slots, t.Format(TimeLayout))
	}
	return slots
}

// Contains reports whether the given "HH:MM" value is a member of the grid.
func (g *Grid) Contains(timeStr string) bool {
	t, err := time.Parse(TimeLayout, timeStr)
	if err != nil {
		return false
	}
	if t.Before(g.start) || t.After(g.end) {
		return false
	}
	return t.Sub(g.start)%g.interval == 0
}

// StartOfISOWeek returns the Monday on or before t, at midnight in t's location.
func StartOfISOWeek(t time.Time) time.Time {
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -offset)
}

// WeekDates returns the seven "YYYY-MM-DD" dates of the ISO week containing ref.
func WeekDates(ref time.Time) []string {
	monday := StartOfISOWeek(ref)
	dates := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, monday.AddDate(0, 0, i).Format(DateLayout))
	}
	return dates
}

// WeekLabels returns seven display labels ("Mon, 02 Jan") for the ISO week
// containing ref. Used as a loading-state placeholder before occupancy data
// arrives; the authoritative date set comes from the loaded snapshot.
func WeekLabels(ref time.Time) []string {
	monday := StartOfISOWeek(ref)
	labels := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		labels = append(labels, monday.AddDate(0, 0, i).Format(dateDisplayLayout))
	}
	return labels
}
