package availability

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		count int
		want  CapacityState
	}{
		{-1, StateOpen},
		{0, StateOpen},
		{1, StateLow},
		{2, StateMedium},
		{3, StateHigh},
		{4, StateCritical},
		{5, StateFull},
		{12, StateFull},
	}
	for _, tc := range cases {
		if got := Classify(tc.count); got != tc.want {
			t.Errorf("Classify(%d) = %v, want %v", tc.count, got, tc.want)
		}
	}
}

func TestClassify_Monotonic(t *testing.T) {
	prev := Classify(0)
	for count := 1; count <= 10; count++ {
		curr := Classify(count)
		if curr < prev {
			t.Fatalf("Classify(%d) = %v is less restrictive than Classify(%d) = %v", count, curr, count-1, prev)
		}
		prev = curr
	}
}

func TestCapacityState_String(t *testing.T) {
	if got := StateFull.String(); got != "FULL" {
		t.Errorf("StateFull.String() = %q, want FULL", got)
	}
	if got := StateOpen.String(); got != "OPEN" {
		t.Errorf("StateOpen.String() = %q, want OPEN", got)
	}
	if got := CapacityState(99).String(); got != "UNKNOWN" {
		t.Errorf("CapacityState(99).String() = %q, want UNKNOWN", got)
	}
}

func TestIsBookable(t *testing.T) {
	maxDaily := 5

	if !IsBookable(0, maxDaily) {
		t.Error("empty slot should be bookable")
	}
	if !IsBookable(4, maxDaily) {
		t.Error("slot one below the ceiling should be bookable")
	}
	if IsBookable(5, maxDaily) {
		t.Error("slot at the ceiling should not be bookable")
	}
	if IsBookable(7, maxDaily) {
		t.Error("slot above the ceiling should not be bookable")
	}
}
