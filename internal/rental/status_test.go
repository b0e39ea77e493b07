package rental

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestStateAt(t *testing.T) {
	r := &Rental{StartDate: date("2024-03-10"), EndDate: date("2024-03-15")}

	cases := []struct {
		now  string
		want State
	}{
		{"2024-03-09", StateScheduled},
		{"2024-03-10", StateActive},
		{"2024-03-12", StateActive},
		{"2024-03-15", StateActive},
		{"2024-03-16", StateCompleted},
	}
	for _, c := range cases {
		if got := r.StateAt(date(c.now)); got != c.want {
			t.Errorf("StateAt(%s) = %s, want %s", c.now, got, c.want)
		}
	}
}

func TestStateAtIgnoresTimeOfDay(t *testing.T) {
	r := &Rental{StartDate: date("2024-03-10"), EndDate: date("2024-03-10")}
	now := time.Date(2024, 3, 10, 23, 59, 0, 0, time.UTC)
	if got := r.StateAt(now); got != StateActive {
		t.Fatalf("StateAt late on end day = %s, want %s", got, StateActive)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                   string
		aStart, aEnd           string
		bStart, bEnd           string
		want                   bool
	}{
		{"disjoint before", "2024-01-01", "2024-01-05", "2024-01-06", "2024-01-10", false},
		{"disjoint after", "2024-01-06", "2024-01-10", "2024-01-01", "2024-01-05", false},
		{"shared endpoint", "2024-01-01", "2024-01-05", "2024-01-05", "2024-01-10", true},
		{"partial", "2024-01-01", "2024-01-05", "2024-01-03", "2024-01-10", true},
		{"contained", "2024-01-01", "2024-01-10", "2024-01-03", "2024-01-05", true},
		{"identical", "2024-01-01", "2024-01-05", "2024-01-01", "2024-01-05", true},
	}
	for _, c := range cases {
		got := Overlaps(date(c.aStart), date(c.aEnd), date(c.bStart), date(c.bEnd))
		if got != c.want {
			t.Errorf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestDays(t *testing.T) {
	r := &Rental{StartDate: date("2024-01-01"), EndDate: date("2024-01-01")}
	if got := r.Days(); got != 1 {
		t.Fatalf("same-day rental Days = %d, want 1", got)
	}
	r.EndDate = date("2024-01-05")
	if got := r.Days(); got != 5 {
		t.Fatalf("Days = %d, want 5", got)
	}
}
