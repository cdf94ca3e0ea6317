package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustStay(t *testing.T, in, out time.Time) Stay {
	t.Helper()
	s, err := NewStay(in, out)
	if err != nil {
		t.Fatalf("NewStay(%v, %v): %v", in, out, err)
	}
	return s
}

func TestNewStayRejectsBadRanges(t *testing.T) {
	d := date(2025, time.July, 10)
	if _, err := NewStay(d, d); err != ErrInvalidRange {
		t.Fatalf("equal dates: got %v, want ErrInvalidRange", err)
	}
	if _, err := NewStay(date(2025, time.July, 12), d); err != ErrInvalidRange {
		t.Fatalf("reversed dates: got %v, want ErrInvalidRange", err)
	}
}

func TestNewStayStripsTimeOfDay(t *testing.T) {
	in := time.Date(2025, time.July, 10, 15, 30, 0, 0, time.UTC)
	out := time.Date(2025, time.July, 12, 9, 0, 0, 0, time.UTC)
	s := mustStay(t, in, out)
	if !s.CheckIn.Equal(date(2025, time.July, 10)) || !s.CheckOut.Equal(date(2025, time.July, 12)) {
		t.Fatalf("dates not normalized to midnight: %+v", s)
	}
	if got := s.Nights(); got != 2 {
		t.Fatalf("Nights() = %d, want 2", got)
	}
}

func TestOverlaps(t *testing.T) {
	base := mustStay(t, date(2025, time.June, 10), date(2025, time.June, 15))

	cases := []struct {
		name     string
		in, out  time.Time
		overlaps bool
	}{
		{"identical", date(2025, time.June, 10), date(2025, time.June, 15), true},
		{"nested", date(2025, time.June, 11), date(2025, time.June, 13), true},
		{"straddles start", date(2025, time.June, 8), date(2025, time.June, 11), true},
		{"straddles end", date(2025, time.June, 14), date(2025, time.June, 18), true},
		{"covers", date(2025, time.June, 8), date(2025, time.June, 18), true},
		{"checkout on checkin day", date(2025, time.June, 5), date(2025, time.June, 10), false},
		{"checkin on checkout day", date(2025, time.June, 15), date(2025, time.June, 20), false},
		{"well before", date(2025, time.June, 1), date(2025, time.June, 4), false},
		{"well after", date(2025, time.June, 20), date(2025, time.June, 25), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other := mustStay(t, tc.in, tc.out)
			if got := base.Overlaps(other); got != tc.overlaps {
				t.Fatalf("base.Overlaps(other) = %v, want %v", got, tc.overlaps)
			}
			// Overlap is symmetric.
			if got := other.Overlaps(base); got != tc.overlaps {
				t.Fatalf("other.Overlaps(base) = %v, want %v", got, tc.overlaps)
			}
		})
	}
}

func TestNights(t *testing.T) {
	if got := mustStay(t, date(2025, time.July, 10), date(2025, time.July, 15)).Nights(); got != 5 {
		t.Fatalf("5-night stay: got %d", got)
	}
	if got := mustStay(t, date(2025, time.December, 31), date(2026, time.January, 1)).Nights(); got != 1 {
		t.Fatalf("year boundary: got %d, want 1", got)
	}
}
