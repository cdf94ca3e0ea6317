// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// Queue names used by the booking API. Both queues are durable.
const (
	BookingCreatedQueue       = "booking.created"
	BookingStatusChangedQueue = "booking.status_changed"
)

// BookingCreatedEvent is published when a booking is successfully
// persisted. It contains enough information for downstream consumers
// to log, notify, or trigger analytics without querying the primary
// database.
type BookingCreatedEvent struct {
	BookingID  uint64 `json:"booking_id"`
	RoomID     uint64 `json:"room_id"`
	GuestID    uint64 `json:"guest_id"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
	Guests     int    `json:"guests"`
	TotalCents int64  `json:"total_cents"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// BookingStatusChangedEvent is published after every successful
// lifecycle transition.
type BookingStatusChangedEvent struct {
	BookingID uint64 `json:"booking_id"`
	RoomID    uint64 `json:"room_id"`
	GuestID   uint64 `json:"guest_id"`
	From      string `json:"from"`
	To        string `json:"to"`
	ChangedAt string `json:"changed_at"`
}
