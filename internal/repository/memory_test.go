package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

func seedBooking(t *testing.T, s *MemoryBookingStore, roomID uint64, inDay, outDay int) *model.Booking {
	t.Helper()
	stay, err := model.NewStay(
		time.Date(2025, time.June, inDay, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, outDay, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("NewStay: %v", err)
	}
	b := &model.Booking{RoomID: roomID, GuestID: 1, Stay: stay, Guests: 1, TotalCents: 1000, Status: model.StatusPending}
	if err := s.Create(context.Background(), b); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return b
}

func TestMemoryStoreCreateRechecksConflicts(t *testing.T) {
	s := NewMemoryBookingStore()
	seedBooking(t, s, 1, 10, 15)

	stay, _ := model.NewStay(
		time.Date(2025, time.June, 12, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC))
	err := s.Create(context.Background(), &model.Booking{RoomID: 1, GuestID: 2, Stay: stay, Guests: 1, Status: model.StatusPending})
	if !errors.Is(err, ErrBookingConflict) {
		t.Fatalf("got %v, want ErrBookingConflict", err)
	}
}

func TestMemoryStoreUpdateStatusCompareAndSet(t *testing.T) {
	s := NewMemoryBookingStore()
	b := seedBooking(t, s, 1, 10, 15)
	ctx := context.Background()

	// Stale expected status leaves the row untouched.
	if _, err := s.UpdateStatus(ctx, b.ID, model.StatusConfirmed, model.StatusCompleted); !errors.Is(err, model.ErrInvalidTransition) {
		t.Fatalf("stale CAS: got %v, want ErrInvalidTransition", err)
	}
	got, err := s.GetByID(ctx, b.ID)
	if err != nil || got.Status != model.StatusPending {
		t.Fatalf("row changed after failed CAS: %+v, %v", got, err)
	}

	updated, err := s.UpdateStatus(ctx, b.ID, model.StatusPending, model.StatusConfirmed)
	if err != nil || updated.Status != model.StatusConfirmed {
		t.Fatalf("CAS: %+v, %v", updated, err)
	}

	if _, err := s.UpdateStatus(ctx, 404, model.StatusPending, model.StatusConfirmed); !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("missing id: got %v, want ErrBookingNotFound", err)
	}
}

func TestMemoryStoreConflictIgnoresNonBlocking(t *testing.T) {
	s := NewMemoryBookingStore()
	b := seedBooking(t, s, 1, 10, 15)
	ctx := context.Background()

	if _, err := s.UpdateStatus(ctx, b.ID, model.StatusPending, model.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Cancelled bookings no longer block the room.
	conflicts, err := s.FindConflicts(ctx, 1, b.Stay)
	if err != nil {
		t.Fatalf("FindConflicts: %v", err)
	}
	if len(conflicts) != 0 {
		t.Fatalf("cancelled booking still blocking: %d conflicts", len(conflicts))
	}
}
