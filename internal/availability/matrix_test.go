package availability

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestMatrix_SetAndQuery(t *testing.T) {
	m := NewMatrix()
	m.Set("2024-06-03", "06:00", 0)
	m.Set("2024-06-03", "06:30", 2)
	m.Set("2024-06-04", "06:00", 5)

	dates := m.Dates()
	if len(dates) != 2 || dates[0] != "2024-06-03" || dates[1] != "2024-06-04" {
		t.Fatalf("Dates() = %v, want insertion order", dates)
	}

	times := m.TimesFor("2024-06-03")
	if len(times) != 2 || times[0] != "06:00" || times[1] != "06:30" {
		t.Fatalf("TimesFor = %v, want [06:00 06:30]", times)
	}

	count, err := m.CountAt("2024-06-03", "06:30")
	if err != nil {
		t.Fatalf("CountAt failed: %v", err)
	}
	if count != 2 {
		t.Errorf("CountAt = %d, want 2", count)
	}
}

func TestMatrix_CountAtMissing(t *testing.T) {
	m := NewMatrix()
	m.Set("2024-06-03", "06:00", 1)

	if _, err := m.CountAt("2024-06-03", "07:00"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing time should wrap ErrNotFound, got %v", err)
	}
	if _, err := m.CountAt("2024-06-09", "06:00"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing date should wrap ErrNotFound, got %v", err)
	}
}

func TestMatrix_IsEmpty(t *testing.T) {
	m := NewMatrix()
	if !m.IsEmpty() {
		t.Error("new matrix should be empty")
	}
	m.Set("2024-06-03", "06:00", 0)
	if m.IsEmpty() {
		t.Error("matrix with a slot should not be empty")
	}
}

func TestMatrix_MarshalKeepsInsertionOrder(t *testing.T) {
	m := NewMatrix()
	// Deliberately out of lexical order.
	m.Set("2024-06-09", "22:30", 1)
	m.Set("2024-06-03", "06:00", 0)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"2024-06-09":{"22:30":1},"2024-06-03":{"06:00":0}}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestMatrix_UnmarshalKeepsResponseOrder(t *testing.T) {
	payload := `{"2024-06-03":{"06:00":0,"06:30":3},"2024-06-04":{"06:00":5}}`

	m := NewMatrix()
	if err := json.Unmarshal([]byte(payload), m); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	dates := m.Dates()
	if len(dates) != 2 || dates[0] != "2024-06-03" || dates[1] != "2024-06-04" {
		t.Fatalf("Dates() = %v, want response order", dates)
	}

	count, err := m.CountAt("2024-06-03", "06:30")
	if err != nil {
		t.Fatalf("CountAt failed: %v", err)
	}
	if count != 3 {
		t.Errorf("CountAt = %d, want 3", count)
	}
}

func TestMatrix_UnmarshalRejectsBadCounts(t *testing.T) {
	m := NewMatrix()
	if err := json.Unmarshal([]byte(`{"2024-06-03":{"06:00":-1}}`), m); err == nil {
		t.Error("expected error for negative count")
	}
	if err := json.Unmarshal([]byte(`{"2024-06-03":{"06:00":"two"}}`), m); err == nil {
		t.Error("expected error for non-numeric count")
	}
	if err := json.Unmarshal([]byte(`["2024-06-03"]`), m); err == nil {
		t.Error("expected error for non-object payload")
	}
}

func TestMatrix_MarshalRoundTrip(t *testing.T) {
	m := NewMatrix()
	m.Set("2024-06-03", "06:00", 0)
	m.Set("2024-06-03", "22:30", 5)
	m.Set("2024-06-05", "12:00", 2)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	back := NewMatrix()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	for _, date := range m.Dates() {
		for _, timeStr := range m.TimesFor(date) {
			want, _ := m.CountAt(date, timeStr)
			got, err := back.CountAt(date, timeStr)
			if err != nil {
				t.Fatalf("round trip lost %s %s: %v", date, timeStr, err)
			}
			if got != want {
				t.Errorf("count at %s %s = %d, want %d", date, timeStr, got, want)
			}
		}
	}
}
