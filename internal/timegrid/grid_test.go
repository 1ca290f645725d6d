package timegrid

import (
	"testing"
	"time"
)

func TestDefaultGrid_Slots(t *testing.T) {
	grid := Default()
	slots := grid.Slots()

	if len(slots) != 35 {
		t.Fatalf("expected 35 slots from 06:00 to 23:00, got %d", len(slots))
	}
	if slots[0] != "06:00" {
		t.Errorf("first slot = %q, want 06:00", slots[0])
	}
	if slots[len(slots)-1] != "23:00" {
		t.Errorf("last slot = %q, want 23:00", slots[len(slots)-1])
	}

	// Consecutive slots are exactly one interval apart.
	for i := 1; i < len(slots); i++ {
		prev, _ := time.Parse(TimeLayout, slots[i-1])
		curr, _ := time.Parse(TimeLayout, slots[i])
		if curr.Sub(prev) != 30*time.Minute {
			t.Fatalf("gap between %s and %s is not 30 minutes", slots[i-1], slots[i])
		}
	}
}

func TestGrid_Contains(t *testing.T) {
	grid := Default()

	cases := []struct {
		timeStr string
		want    bool
	}{
		{"06:00", true},
		{"22:30", true},
		{"23:00", true},
		{"05:30", false},
		{"23:30", false},
		{"06:15", false},
		{"nonsense", false},
	}
	for _, tc := range cases {
		if got := grid.Contains(tc.timeStr); got != tc.want {
			t.Errorf("Contains(%q) = %v, want %v", tc.timeStr, got, tc.want)
		}
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New("09:00", "08:00", 30*time.Minute); err == nil {
		t.Error("expected error for inverted window")
	}
	if _, err := New("06:00", "23:00", 0); err == nil {
		t.Error("expected error for zero interval")
	}
	if _, err := New("6am", "23:00", 30*time.Minute); err == nil {
		t.Error("expected error for malformed opening time")
	}
}

func TestStartOfISOWeek(t *testing.T) {
	// 2024-06-05 is a Wednesday; its week starts Monday 2024-06-03.
	wed := time.Date(2024, 6, 5, 14, 30, 0, 0, time.UTC)
	monday := StartOfISOWeek(wed)
	if got := monday.Format(DateLayout); got != "2024-06-03" {
		t.Errorf("StartOfISOWeek(Wednesday) = %s, want 2024-06-03", got)
	}

	// Sunday belongs to the week that started six days earlier.
	sun := time.Date(2024, 6, 9, 8, 0, 0, 0, time.UTC)
	if got := StartOfISOWeek(sun).Format(DateLayout); got != "2024-06-03" {
		t.Errorf("StartOfISOWeek(Sunday) = %s, want 2024-06-03", got)
	}

	// Monday maps to itself.
	mon := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	if got := StartOfISOWeek(mon).Format(DateLayout); got != "2024-06-03" {
		t.Errorf("StartOfISOWeek(Monday) = %s, want 2024-06-03", got)
	}
}

func TestWeekDates(t *testing.T) {
	dates := WeekDates(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	want := []string{
		"2024-06-03", "2024-06-04", "2024-06-05", "2024-06-06",
		"2024-06-07", "2024-06-08", "2024-06-09",
	}
	if len(dates) != 7 {
		t.Fatalf("expected 7 dates, got %d", len(dates))
	}
	for i := range want {
		if dates[i] != want[i] {
			t.Errorf("dates[%d] = %s, want %s", i, dates[i], want[i])
		}
	}
}

func TestWeekLabels(t *testing.T) {
	labels := WeekLabels(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC))
	if len(labels) != 7 {
		t.Fatalf("expected 7 labels, got %d", len(labels))
	}
	if labels[0] != "Mon, 03 Jun" {
		t.Errorf("labels[0] = %q, want %q", labels[0], "Mon, 03 Jun")
	}
	if labels[6] != "Sun, 09 Jun" {
		t.Errorf("labels[6] = %q, want %q", labels[6], "Sun, 09 Jun")
	}
}
