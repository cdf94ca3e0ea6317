// Package service implements the booking orchestration layer: input
// validation, room catalog checks, conflict detection and the status
// lifecycle sit here, between the HTTP handlers and the repositories.
package service

import "errors"

// ErrRoomUnavailable is returned when the room exists but an admin has
// taken it off the market. Client input error; not retried.
var ErrRoomUnavailable = errors.New("room is not available")

// ErrCapacityExceeded is returned when the requested guest count is
// larger than the room's capacity.
var ErrCapacityExceeded = errors.New("guest count exceeds room capacity")
