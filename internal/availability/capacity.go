package availability

// CapacityState is the presentation-facing classification of a slot's
// occupancy count. It gates reservation eligibility: FULL slots are not
// selectable.
type CapacityState int

const (
	StateOpen CapacityState = iota
	StateLow
	StateMedium
	StateHigh
	StateCritical
	StateFull
)

func (s CapacityState) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateLow:
		return "LOW"
	case StateMedium:
		return "MEDIUM"
	case StateHigh:
		return "HIGH"
	case StateCritical:
		return "CRITICAL"
	case StateFull:
		return "FULL"
	default:
		return "UNKNOWN"
	}
}

// Classify maps an occupancy count onto its capacity state. Total and
// monotonic: a higher count never yields a less restrictive state.
func Classify(count int) CapacityState {
	switch {
	case count <= 0:
		return StateOpen
	case count == 1:
		return StateLow
	case count == 2:
		return StateMedium
	case count == 3:
		return StateHigh
	case count == 4:
		return StateCritical
	default:
		return StateFull
	}
}

// IsBookable reports whether a new booking may start on a slot with the
// given occupancy count. Counts at or above the ceiling are a hard stop for
// new bookings; the displayed count itself may exceed it on server data.
func IsBookable(count, maxDailyBooking int) bool {
	return count < maxDailyBooking
}
