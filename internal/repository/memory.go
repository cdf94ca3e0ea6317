package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// MemoryBookingStore is an in-memory adapter for the booking store
// contract. It backs the service tests and can run the API without a
// database for local development. A single mutex guards the map, so
// the conflict check and the insert are one critical section: of two
// concurrent overlapping creates for the same room, the second to
// take the lock sees the first's row and fails with
// ErrBookingConflict, the same guarantee the SQL adapter gets from
// its row lock.
type MemoryBookingStore struct {
	mu       sync.Mutex
	nextID   uint64
	bookings map[uint64]*model.Booking
}

// NewMemoryBookingStore returns an empty in-memory booking store.
func NewMemoryBookingStore() *MemoryBookingStore {
	return &MemoryBookingStore{nextID: 1, bookings: make(map[uint64]*model.Booking)}
}

func (s *MemoryBookingStore) conflictsLocked(roomID uint64, stay model.Stay) []*model.Booking {
	var out []*model.Booking
	for _, b := range s.bookings {
		if b.RoomID == roomID && b.Status.Blocking() && b.Stay.Overlaps(stay) {
			out = append(out, copyBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Stay.CheckIn.Before(out[j].Stay.CheckIn) })
	return out
}

// FindConflicts returns blocking bookings for the room overlapping the
// stay, ordered by check-in.
func (s *MemoryBookingStore) FindConflicts(_ context.Context, roomID uint64, stay model.Stay) ([]*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.conflictsLocked(roomID, stay)
	if out == nil {
		out = []*model.Booking{}
	}
	return out, nil
}

// Create re-checks the overlap predicate under the store lock and
// inserts the booking, assigning ID and timestamps.
func (s *MemoryBookingStore) Create(_ context.Context, b *model.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.conflictsLocked(b.RoomID, b.Stay)) > 0 {
		return ErrBookingConflict
	}
	now := time.Now().UTC()
	b.ID = s.nextID
	s.nextID++
	b.CreatedAt = now
	b.UpdatedAt = now
	s.bookings[b.ID] = copyBooking(b)
	return nil
}

// GetByID returns a copy of the stored booking or ErrBookingNotFound.
func (s *MemoryBookingStore) GetByID(_ context.Context, id uint64) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return copyBooking(b), nil
}

// UpdateStatus applies a compare-and-set status change, mirroring the
// SQL adapter: the stored status must still equal from, otherwise the
// record is left untouched and model.ErrInvalidTransition is returned.
func (s *MemoryBookingStore) UpdateStatus(_ context.Context, id uint64, from, to model.BookingStatus) (*model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	if b.Status != from {
		return nil, model.ErrInvalidTransition
	}
	b.Status = to
	b.UpdatedAt = time.Now().UTC()
	return copyBooking(b), nil
}

// ListByRoom returns the room's bookings, newest first.
func (s *MemoryBookingStore) ListByRoom(_ context.Context, roomID uint64) ([]*model.Booking, error) {
	return s.filter(func(b *model.Booking) bool { return b.RoomID == roomID }), nil
}

// ListByGuest returns the guest's bookings, newest first.
func (s *MemoryBookingStore) ListByGuest(_ context.Context, guestID uint64) ([]*model.Booking, error) {
	return s.filter(func(b *model.Booking) bool { return b.GuestID == guestID }), nil
}

func (s *MemoryBookingStore) filter(keep func(*model.Booking) bool) []*model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Booking, 0)
	for _, b := range s.bookings {
		if keep(b) {
			out = append(out, copyBooking(b))
		}
	}
	// created_at descending, id descending as tiebreaker for stable order
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func copyBooking(b *model.Booking) *model.Booking {
	c := *b
	if b.SpecialRequests != nil {
		s := *b.SpecialRequests
		c.SpecialRequests = &s
	}
	return &c
}

// MemoryRoomCatalog is an in-memory room catalog for tests and local
// development.
type MemoryRoomCatalog struct {
	mu     sync.Mutex
	nextID uint64
	rooms  map[uint64]*model.Room
}

// NewMemoryRoomCatalog returns an empty in-memory catalog.
func NewMemoryRoomCatalog() *MemoryRoomCatalog {
	return &MemoryRoomCatalog{nextID: 1, rooms: make(map[uint64]*model.Room)}
}

// Add stores a room, assigning an ID when none is set, and returns it.
func (c *MemoryRoomCatalog) Add(room model.Room) model.Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	if room.ID == 0 {
		room.ID = c.nextID
	}
	if room.ID >= c.nextID {
		c.nextID = room.ID + 1
	}
	now := time.Now().UTC()
	room.CreatedAt = now
	room.UpdatedAt = now
	c.rooms[room.ID] = &room
	return room
}

// GetByID returns a copy of the room or ErrRoomNotFound.
func (c *MemoryRoomCatalog) GetByID(_ context.Context, id uint64) (*model.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	cp := *r
	return &cp, nil
}
