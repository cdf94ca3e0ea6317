package model

import "testing"

func TestCanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []BookingStatus{StatusCancelled, StatusCompleted} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []BookingStatus{StatusPending, StatusConfirmed} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestBlocking(t *testing.T) {
	// Only pending and confirmed bookings hold the room.
	if !StatusPending.Blocking() || !StatusConfirmed.Blocking() {
		t.Error("pending and confirmed must block")
	}
	if StatusCancelled.Blocking() || StatusCompleted.Blocking() {
		t.Error("cancelled and completed must not block")
	}
}

func TestParseBookingStatus(t *testing.T) {
	for _, in := range []string{"pending", "PENDING", " Pending "} {
		got, err := ParseBookingStatus(in)
		if err != nil || got != StatusPending {
			t.Errorf("ParseBookingStatus(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseBookingStatus("archived"); err == nil {
		t.Error("unknown status must fail")
	}
}
