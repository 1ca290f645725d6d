// Package bookingflow drives the selection-through-confirmation flow of a
// gym-slot reservation: one slot selected at a time, one legal duration
// chosen from the slot's remaining window, and exactly one write per
// confirmation.
package bookingflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/brianstm/kevii-gym-booking-app/internal/availability"
	"github.com/brianstm/kevii-gym-booking-app/internal/durations"
	"github.com/brianstm/kevii-gym-booking-app/internal/timegrid"
)

var (
	ErrNoSnapshot       = errors.New("no availability snapshot loaded")
	ErrSlotNotBookable  = errors.New("slot is fully booked")
	ErrNoSlotSelected   = errors.New("no slot selected")
	ErrInvalidDuration  = errors.New("duration is not available for this slot")
	ErrNoDurationChosen = errors.New("no duration chosen")
	ErrConfirmInFlight  = errors.New("a confirmation is already in flight")
)

// State is the flow's position in its confirmation lifecycle.
type State int

const (
	StateIdle State = iota
	StateSlotSelected
	StateDurationChosen
	StateConfirming
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateSlotSelected:
		return "SLOT_SELECTED"
	case StateDurationChosen:
		return "DURATION_CHOSEN"
	case StateConfirming:
		return "CONFIRMING"
	default:
		return "UNKNOWN"
	}
}

// Client is the transport collaborator the flow submits through.
type Client interface {
	WeekCount(ctx context.Context, date string) (*availability.Matrix, error)
	CreateBooking(ctx context.Context, dateTime string, durationHours float64) error
}

// Rules carries the booking policy the flow enforces.
type Rules struct {
	MaxDailyBooking int
	ClosingTime     string    // "HH:MM"
	Catalog         []float64 // ascending, e.g. {0.5, 1, 1.5, 2, 2.5, 3}
}

// Intent is the transient (slot, duration) selection awaiting confirmation.
// At most one exists at a time; it is cleared on confirm, cancel, or when a
// different slot is selected.
type Intent struct {
	Date     string
	Time     string
	Duration float64 // hours; zero until chosen
}

// Flow owns the availability snapshot and the single pending intent.
type Flow struct {
	client Client
	rules  Rules

	mu     sync.Mutex
	state  State
	matrix *availability.Matrix
	intent Intent
	legal  []float64
}

// New creates an idle flow with no snapshot loaded.
func New(client Client, rules Rules) *Flow {
	return &Flow{client: client, rules: rules, state: StateIdle}
}

// Load fetches a fresh occupancy snapshot for the week containing date
// ("YYYY-MM-DD"). Every call performs a new fetch; nothing is memoized, so a
// post-booking reload always reflects true server state. On failure the
// prior snapshot is left untouched.
func (f *Flow) Load(ctx context.Context, date string) error {
	m, err := f.client.WeekCount(ctx, date)
	if err != nil {
		return fmt.Errorf("load availability: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.matrix = m
	return nil
}

// Matrix returns the current snapshot, or nil before the first load.
func (f *Flow) Matrix() *availability.Matrix {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.matrix
}

// State returns the flow's current lifecycle state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Intent returns the pending selection. Zero-valued when idle.
func (f *Flow) Intent() Intent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.intent
}

// LegalDurations returns the duration options for the selected slot, in
// catalog order. Recomputed on every SelectSlot; never stale across slot
// changes.
func (f *Flow) LegalDurations() []float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]float64, len(f.legal))
	copy(out, f.legal)
	return out
}

// SelectSlot opens the reservation flow on a slot. Allowed only for slots
// present in the snapshot whose count is below the booking ceiling. Any
// prior duration choice is discarded and the legal duration set is
// recomputed for the new slot before returning.
func (f *Flow) SelectSlot(date, timeStr string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateConfirming {
		return ErrConfirmInFlight
	}
	if f.matrix == nil {
		return ErrNoSnapshot
	}

	count, err := f.matrix.CountAt(date, timeStr)
	if err != nil {
		return err
	}
	if !availability.IsBookable(count, f.rules.MaxDailyBooking) {
		return fmt.Errorf("%w: %s %s has %d bookings", ErrSlotNotBookable, date, timeStr, count)
	}

	legal, err := durations.Available(timeStr, f.rules.ClosingTime, f.rules.Catalog)
	if err != nil {
		return err
	}
	if len(legal) == 0 {
		// Nothing fits before closing; the slot is not bookable regardless
		// of its occupancy count.
		return fmt.Errorf("%w: no duration fits before %s", ErrSlotNotBookable, f.rules.ClosingTime)
	}

	f.intent = Intent{Date: date, Time: timeStr}
	f.legal = legal
	f.state = StateSlotSelected
	return nil
}

// ChooseDuration picks one of the legal durations for the selected slot.
func (f *Flow) ChooseDuration(hours float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.state {
	case StateConfirming:
		return ErrConfirmInFlight
	case StateIdle:
		return ErrNoSlotSelected
	}

	for _, d := range f.legal {
		if d == hours {
			f.intent.Duration = hours
			f.state = StateDurationChosen
			return nil
		}
	}
	return fmt.Errorf("%w: %g hours at %s", ErrInvalidDuration, hours, f.intent.Time)
}

// Cancel abandons the flow with no side effects. It is rejected once a
// confirmation is in flight: the write is already on the wire.
func (f *Flow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateConfirming {
		return ErrConfirmInFlight
	}
	f.intent = Intent{}
	f.legal = nil
	f.state = StateIdle
	return nil
}

// Confirm submits the pending intent as a single reservation write. There is
// no automatic retry: a failed write returns the server's error verbatim and
// the flow drops back to DURATION_CHOSEN so the user can re-confirm the same
// slot explicitly. On success the snapshot is reloaded in full before the
// flow settles back to IDLE.
func (f *Flow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateConfirming {
		f.mu.Unlock()
		return ErrConfirmInFlight
	}
	if f.state != StateDurationChosen || f.intent.Duration == 0 {
		f.mu.Unlock()
		return ErrNoDurationChosen
	}

	// Re-derive legality at the boundary. A stale duration surviving a slot
	// change is a bug upstream, but it must never reach the server.
	ok, err := durations.Allowed(f.intent.Duration, f.intent.Time, f.rules.ClosingTime, f.rules.Catalog)
	if err == nil && !ok {
		err = fmt.Errorf("%w: %g hours at %s", ErrInvalidDuration, f.intent.Duration, f.intent.Time)
	}
	if err != nil {
		f.mu.Unlock()
		return err
	}

	intent := f.intent
	f.state = StateConfirming
	f.mu.Unlock()

	submitErr := f.client.CreateBooking(ctx, timegrid.CombineISO(intent.Date, intent.Time), intent.Duration)

	f.mu.Lock()
	if submitErr != nil {
		// Selection retained for an explicit user retry.
		f.state = StateDurationChosen
		f.mu.Unlock()
		return submitErr
	}
	f.intent = Intent{}
	f.legal = nil
	f.state = StateIdle
	f.mu.Unlock()

	if err := f.Load(ctx, intent.Date); err != nil {
		return fmt.Errorf("booked, but refreshing availability failed: %w", err)
	}
	return nil
}
