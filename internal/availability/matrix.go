// Package availability models the occupancy snapshot the booking grid is
// rendered from: a mapping from date to time-of-day to occupancy count,
// together with the capacity classification derived from those counts.
package availability

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrNotFound is returned when a (date, time) pair is absent from the
// snapshot. Callers should only query keys obtained from Dates and TimesFor.
var ErrNotFound = errors.New("slot not present in availability snapshot")

// Matrix is a point-in-time occupancy snapshot. Key order follows the order
// the server produced, which is what the grid renders in; a plain Go map
// would lose it, so the matrix keeps its own ordering alongside the counts.
//
// A matrix is built once per fetch and replaced wholesale by the next load.
// It is never patched incrementally.
type Matrix struct {
	dates  []string
	times  map[string][]string
	counts map[string]map[string]int
}

// NewMatrix returns an empty snapshot.
func NewMatrix() *Matrix {
	return &Matrix{
		times:  make(map[string][]string),
		counts: make(map[string]map[string]int),
	}
}

// Set records the occupancy count for a slot, preserving insertion order for
// new date and time keys.
func (m *Matrix) Set(date, timeStr string, count int) {
	if _, ok := m.counts[date]; !ok {
		m.dates = append(m.dates, date)
		m.counts[date] = make(map[string]int)
	}
	if _, ok := m.counts[date][timeStr]; !ok {
		m.times[date] = append(m.times[date], timeStr)
	}
	m.counts[date][timeStr] = count
}

// Dates returns the ordered date keys present in the snapshot. Empty before
// a load completes. Usually seven entries, but partial data is tolerated.
func (m *Matrix) Dates() []string {
	out := make([]string, len(m.dates))
	copy(out, m.dates)
	return out
}

// TimesFor returns the ordered time keys for a date, or nil if the date is
// not part of the snapshot.
func (m *Matrix) TimesFor(date string) []string {
	ts, ok := m.times[date]
	if !ok {
		return nil
	}
	out := make([]string, len(ts))
	copy(out, ts)
	return out
}

// CountAt returns the occupancy count for a slot.
func (m *Matrix) CountAt(date, timeStr string) (int, error) {
	day, ok := m.counts[date]
	if !ok {
		return 0, fmt.Errorf("%w: %s %s", ErrNotFound, date, timeStr)
	}
	count, ok := day[timeStr]
	if !ok {
		return 0, fmt.Errorf("%w: %s %s", ErrNotFound, date, timeStr)
	}
	return count, nil
}

// IsEmpty reports whether the snapshot holds no dates at all.
func (m *Matrix) IsEmpty() bool {
	return len(m.dates) == 0
}

// MarshalJSON renders the snapshot as a nested JSON object with keys in
// insertion order.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, date := range m.dates {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(date)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteByte('{')
		for j, timeStr := range m.times[date] {
			if j > 0 {
				buf.WriteByte(',')
			}
			tkey, err := json.Marshal(timeStr)
			if err != nil {
				return nil, err
			}
			buf.Write(tkey)
			buf.WriteByte(':')
			buf.WriteString(strconv.Itoa(m.counts[date][timeStr]))
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses the server's nested date->time->count object, keeping
// the key order of the response.
func (m *Matrix) UnmarshalJSON(data []byte) error {
	m.dates = nil
	m.times = make(map[string][]string)
	m.counts = make(map[string]map[string]int)

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return err
	}
	for dec.More() {
		dateTok, err := dec.Token()
		if err != nil {
			return err
		}
		date, ok := dateTok.(string)
		if !ok {
			return fmt.Errorf("availability: unexpected date key %v", dateTok)
		}

		if err := expectDelim(dec, '{'); err != nil {
			return err
		}
		for dec.More() {
			timeTok, err := dec.Token()
			if err != nil {
				return err
			}
			timeStr, ok := timeTok.(string)
			if !ok {
				return fmt.Errorf("availability: unexpected time key %v", timeTok)
			}

			countTok, err := dec.Token()
			if err != nil {
				return err
			}
			num, ok := countTok.(json.Number)
			if !ok {
				return fmt.Errorf("availability: count for %s %s is not a number", date, timeStr)
			}
			count, err := strconv.Atoi(num.String())
			if err != nil {
				return fmt.Errorf("availability: count for %s %s: %w", date, timeStr, err)
			}
			if count < 0 {
				return fmt.Errorf("availability: negative count for %s %s", date, timeStr)
			}
			m.Set(date, timeStr, count)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return err
		}
	}
	return expectDelim(dec, '}')
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("availability: expected %q, got %v", want, tok)
	}
	return nil
}
