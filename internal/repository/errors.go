// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as the
// booking service and handlers to distinguish between different failure
// scenarios without inspecting driver errors. For example,
// ErrBookingConflict signals that an insert would violate the
// no-double-booking invariant, while ErrForbidden indicates that the
// current user may not touch a booking owned by someone else.
package repository

import "errors"

// ErrRoomNotFound is returned when a room lookup fails. Handlers
// should translate this into an HTTP 404 response.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when a booking lookup or status
// update targets an id that does not exist.
var ErrBookingNotFound = errors.New("booking not found")

// ErrBookingConflict is returned when a requested stay overlaps an
// existing pending or confirmed booking for the same room. The caller
// should pick different dates; the server never retries on its own.
// Handlers should translate this into an HTTP 409 response.
var ErrBookingConflict = errors.New("room is already booked for these dates")

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when registration collides with an
// existing account.
var ErrEmailExists = errors.New("email already exists")
