package model

import "time"

// Room represents a bookable hotel room as stored in the `rooms`
// table. The nightly rate is kept in cents to avoid floating point
// arithmetic on money. IsAvailable is a global switch an admin can
// flip to take a room off the market regardless of bookings.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – human readable label (e.g. "Deluxe Sea View").
//  Description      – optional marketing text.
//  RoomType         – category label (single, double, suite, ...).
//  NightlyRateCents – price per night in cents.
//  Capacity         – maximum number of guests.
//  IsAvailable      – whether the room can currently be booked at all.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Room struct {
	ID               uint64    // rooms.id
	Name             string    // rooms.name
	Description      string    // rooms.description
	RoomType         string    // rooms.room_type
	NightlyRateCents int64     // rooms.nightly_rate_cents
	Capacity         int       // rooms.capacity
	IsAvailable      bool      // rooms.is_available
	CreatedAt        time.Time // rooms.created_at
	UpdatedAt        time.Time // rooms.updated_at
}
