package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// BookingStatus represents the current state of a booking in its
// lifecycle. Stored as a lowercase string in the bookings.status
// column.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// ErrInvalidTransition is returned when a requested status change is
// not permitted by the lifecycle. The stored record must be left
// untouched when this error is raised.
var ErrInvalidTransition = errors.New("invalid status transition")

// validTransitions is the booking lifecycle: a pending booking is
// either approved or cancelled; a confirmed booking is cancelled or
// runs to completion. Cancelled and completed are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// IsValid reports whether the status is one of the four recognized
// lifecycle states.
func (s BookingStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// CanTransitionTo reports whether moving from this status to target is
// a legal lifecycle step.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible.
func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Blocking reports whether a booking in this status occupies the room
// for conflict purposes. Cancelled bookings free the room; completed
// stays lie in the past and are likewise excluded from the conflict
// set.
func (s BookingStatus) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ParseBookingStatus converts user input to a BookingStatus,
// tolerating case and surrounding whitespace.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	s := BookingStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown booking status: %q", raw)
	}
	return s, nil
}

// ErrInvalidGuestCount is returned when a booking is requested for
// fewer than one guest.
var ErrInvalidGuestCount = errors.New("guest count must be at least 1")

// Booking records a guest's claim on a room for a range of nights.
// Bookings are never physically deleted in normal operation;
// cancellation is a status change so the row keeps its audit trail.
//
// Fields:
//  ID              – primary key identifier, assigned on insert.
//  RoomID          – room being booked (rooms.id, lookup only).
//  GuestID         – user who placed the booking (users.id).
//  Stay            – half-open [check_in, check_out) date range.
//  Guests          – number of occupants; at most the room capacity,
//                    enforced at creation time.
//  TotalCents      – nights × nightly rate, fixed at creation.
//  Status          – lifecycle state, see BookingStatus.
//  SpecialRequests – optional free text from the guest; carries no
//                    semantic weight in booking logic.
//  CreatedAt       – creation timestamp, immutable.
//  UpdatedAt       – bumped on every status transition.
type Booking struct {
	ID              uint64        // bookings.id
	RoomID          uint64        // bookings.room_id
	GuestID         uint64        // bookings.guest_id
	Stay            Stay          // bookings.check_in / bookings.check_out
	Guests          int           // bookings.guests
	TotalCents      int64         // bookings.total_cents
	Status          BookingStatus // bookings.status
	SpecialRequests *string       // bookings.special_requests (nullable)
	CreatedAt       time.Time     // bookings.created_at
	UpdatedAt       time.Time     // bookings.updated_at
}
