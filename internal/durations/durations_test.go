package durations

import "testing"

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAvailable(t *testing.T) {
	cases := []struct {
		name      string
		startTime string
		want      []float64
	}{
		{"morning slot offers full catalog", "06:00", []float64{0.5, 1, 1.5, 2, 2.5, 3}},
		{"two hours before closing", "21:00", []float64{0.5, 1, 1.5, 2}},
		{"last slot before closing", "22:30", []float64{0.5}},
		{"at closing", "23:00", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Available(tc.startTime, "23:00", Catalog)
			if err != nil {
				t.Fatalf("Available(%q) failed: %v", tc.startTime, err)
			}
			if !floatsEqual(got, tc.want) {
				t.Errorf("Available(%q) = %v, want %v", tc.startTime, got, tc.want)
			}
		})
	}
}

func TestAvailable_ExactFitIncluded(t *testing.T) {
	// 90 minutes remaining admits the 1.5 hour option exactly.
	got, err := Available("21:30", "23:00", Catalog)
	if err != nil {
		t.Fatalf("Available failed: %v", err)
	}
	if !floatsEqual(got, []float64{0.5, 1, 1.5}) {
		t.Errorf("Available(21:30) = %v, want [0.5 1 1.5]", got)
	}
}

func TestAvailable_BadInput(t *testing.T) {
	if _, err := Available("late", "23:00", Catalog); err == nil {
		t.Error("expected error for malformed start time")
	}
	if _, err := Available("06:00", "11pm", Catalog); err == nil {
		t.Error("expected error for malformed closing time")
	}
}

func TestAllowed(t *testing.T) {
	ok, err := Allowed(0.5, "22:30", "23:00", Catalog)
	if err != nil {
		t.Fatalf("Allowed failed: %v", err)
	}
	if !ok {
		t.Error("0.5 hours at 22:30 should be allowed")
	}

	ok, err = Allowed(1, "22:30", "23:00", Catalog)
	if err != nil {
		t.Fatalf("Allowed failed: %v", err)
	}
	if ok {
		t.Error("1 hour at 22:30 overruns closing and should be rejected")
	}

	// A value that fits the window but is not in the catalog is rejected.
	ok, err = Allowed(0.75, "06:00", "23:00", Catalog)
	if err != nil {
		t.Fatalf("Allowed failed: %v", err)
	}
	if ok {
		t.Error("0.75 hours is not in the catalog and should be rejected")
	}
}
