package model

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when a stay's check-out date is not
// strictly after its check-in date. Handlers should translate this
// into an HTTP 400 response.
var ErrInvalidRange = errors.New("check-out must be after check-in")

// Stay is a half-open date range [CheckIn, CheckOut) describing the
// nights a guest occupies a room. Both dates are date-only values
// (midnight UTC); the check-out day itself is not occupied, so a
// booking ending on a given day never conflicts with one starting on
// that same day (same-day turnover).
//
// Fields:
//  CheckIn  – first occupied night, inclusive.
//  CheckOut – departure day, exclusive.
type Stay struct {
	CheckIn  time.Time // bookings.check_in
	CheckOut time.Time // bookings.check_out
}

// NewStay normalizes both dates to midnight UTC and validates that
// check-out falls strictly after check-in. It returns ErrInvalidRange
// for degenerate ranges; callers must not pass such ranges to
// Overlaps or Nights.
func NewStay(checkIn, checkOut time.Time) (Stay, error) {
	s := Stay{CheckIn: DateOnly(checkIn), CheckOut: DateOnly(checkOut)}
	if !s.CheckOut.After(s.CheckIn) {
		return Stay{}, ErrInvalidRange
	}
	return s, nil
}

// DateOnly strips the time-of-day component, keeping the calendar date
// in UTC. All booking date arithmetic runs on such values.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Overlaps reports whether two half-open stays share at least one
// night: aStart < bEnd && bStart < aEnd. Equal start dates, equal end
// dates and fully nested ranges all overlap; back-to-back stays do
// not. Symmetric in its arguments.
func (s Stay) Overlaps(o Stay) bool {
	return s.CheckIn.Before(o.CheckOut) && o.CheckIn.Before(s.CheckOut)
}

// Nights returns the number of occupied nights, i.e. the integer day
// difference between check-out and check-in. Valid stays always yield
// at least 1.
func (s Stay) Nights() int {
	return int(s.CheckOut.Sub(s.CheckIn) / (24 * time.Hour))
}
