package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// recordingSink captures emitted events so tests can assert on them.
type recordingSink struct {
	mu      sync.Mutex
	created []uint64
	changes []string
}

func (r *recordingSink) BookingCreated(_ context.Context, b *model.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, b.ID)
}

func (r *recordingSink) BookingStatusChanged(_ context.Context, b *model.Booking, from model.BookingStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, string(from)+"->"+string(b.Status))
}

func newTestService(t *testing.T, autoConfirm bool) (*BookingService, *repository.MemoryRoomCatalog, *recordingSink) {
	t.Helper()
	rooms := repository.NewMemoryRoomCatalog()
	sink := &recordingSink{}
	svc := NewBookingService(rooms, repository.NewMemoryBookingStore(), sink, autoConfirm)
	return svc, rooms, sink
}

func seaView(rooms *repository.MemoryRoomCatalog) model.Room {
	return rooms.Add(model.Room{
		Name:             "Deluxe Sea View",
		RoomType:         "double",
		NightlyRateCents: 10000,
		Capacity:         2,
		IsAvailable:      true,
	})
}

func input(roomID uint64, guestID uint64, inDay, outDay int) CreateBookingInput {
	return CreateBookingInput{
		GuestID:  guestID,
		RoomID:   roomID,
		CheckIn:  time.Date(2025, time.July, inDay, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2025, time.July, outDay, 0, 0, 0, 0, time.UTC),
		Guests:   2,
	}
}

func TestCreateBooking(t *testing.T) {
	svc, rooms, sink := newTestService(t, false)
	room := seaView(rooms)

	b, err := svc.CreateBooking(context.Background(), input(room.ID, 7, 10, 15))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.ID == 0 {
		t.Error("booking not assigned an ID")
	}
	if b.Status != model.StatusPending {
		t.Errorf("status = %s, want pending", b.Status)
	}
	if b.TotalCents != 50000 {
		t.Errorf("TotalCents = %d, want 50000 (5 nights x 10000)", b.TotalCents)
	}
	if n := b.Stay.Nights(); n != 5 {
		t.Errorf("Nights = %d, want 5", n)
	}
	if len(sink.created) != 1 || sink.created[0] != b.ID {
		t.Errorf("created events = %v, want [%d]", sink.created, b.ID)
	}
}

func TestCreateBookingAutoConfirm(t *testing.T) {
	svc, rooms, _ := newTestService(t, true)
	room := seaView(rooms)

	b, err := svc.CreateBooking(context.Background(), input(room.ID, 7, 10, 12))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.Status != model.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", b.Status)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	svc, rooms, _ := newTestService(t, false)
	room := seaView(rooms)
	ctx := context.Background()

	t.Run("reversed dates", func(t *testing.T) {
		in := input(room.ID, 7, 15, 10)
		if _, err := svc.CreateBooking(ctx, in); !errors.Is(err, model.ErrInvalidRange) {
			t.Errorf("got %v, want ErrInvalidRange", err)
		}
	})
	t.Run("zero guests", func(t *testing.T) {
		in := input(room.ID, 7, 10, 12)
		in.Guests = 0
		if _, err := svc.CreateBooking(ctx, in); !errors.Is(err, model.ErrInvalidGuestCount) {
			t.Errorf("got %v, want ErrInvalidGuestCount", err)
		}
	})
	t.Run("over capacity", func(t *testing.T) {
		in := input(room.ID, 7, 10, 12)
		in.Guests = 3
		if _, err := svc.CreateBooking(ctx, in); !errors.Is(err, ErrCapacityExceeded) {
			t.Errorf("got %v, want ErrCapacityExceeded", err)
		}
	})
	t.Run("unknown room", func(t *testing.T) {
		in := input(999, 7, 10, 12)
		if _, err := svc.CreateBooking(ctx, in); !errors.Is(err, repository.ErrRoomNotFound) {
			t.Errorf("got %v, want ErrRoomNotFound", err)
		}
	})
	t.Run("room off market", func(t *testing.T) {
		closed := rooms.Add(model.Room{Name: "Closed", RoomType: "single", NightlyRateCents: 5000, Capacity: 2, IsAvailable: false})
		if _, err := svc.CreateBooking(ctx, input(closed.ID, 7, 10, 12)); !errors.Is(err, ErrRoomUnavailable) {
			t.Errorf("got %v, want ErrRoomUnavailable", err)
		}
	})
}

func TestCreateBookingConflicts(t *testing.T) {
	svc, rooms, _ := newTestService(t, false)
	room := seaView(rooms)
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, input(room.ID, 7, 10, 15))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := svc.SetStatus(ctx, first.ID, model.StatusConfirmed); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// Overlapping request for the same room must be rejected.
	if _, err := svc.CreateBooking(ctx, input(room.ID, 8, 12, 17)); !errors.Is(err, repository.ErrBookingConflict) {
		t.Fatalf("overlap: got %v, want ErrBookingConflict", err)
	}

	// Back to back is fine: checkout day equals the next check-in.
	if _, err := svc.CreateBooking(ctx, input(room.ID, 8, 15, 20)); err != nil {
		t.Fatalf("back-to-back booking: %v", err)
	}

	// A different room with the same dates is unaffected.
	other := seaView(rooms)
	if _, err := svc.CreateBooking(ctx, input(other.ID, 9, 10, 15)); err != nil {
		t.Fatalf("other room: %v", err)
	}
}

func TestCancellationFreesTheRoom(t *testing.T) {
	svc, rooms, sink := newTestService(t, false)
	room := seaView(rooms)
	ctx := context.Background()

	first, err := svc.CreateBooking(ctx, input(room.ID, 7, 10, 15))
	if err != nil {
		t.Fatalf("first booking: %v", err)
	}
	if _, err := svc.CancelBooking(ctx, first.ID, 7, model.RoleGuest); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// The same dates are available again.
	second, err := svc.CreateBooking(ctx, input(room.ID, 8, 10, 15))
	if err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
	if second.Status != model.StatusPending {
		t.Errorf("rebooked status = %s", second.Status)
	}
	if len(sink.changes) != 1 || sink.changes[0] != "pending->cancelled" {
		t.Errorf("change events = %v", sink.changes)
	}
}

func TestCancelBookingOwnership(t *testing.T) {
	svc, rooms, _ := newTestService(t, false)
	room := seaView(rooms)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, input(room.ID, 7, 10, 15))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// Another guest may not cancel it.
	if _, err := svc.CancelBooking(ctx, b.ID, 8, model.RoleGuest); !errors.Is(err, repository.ErrForbidden) {
		t.Fatalf("foreign cancel: got %v, want ErrForbidden", err)
	}
	// An admin may.
	if _, err := svc.CancelBooking(ctx, b.ID, 99, model.RoleAdmin); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}
	// Cancelling again is an illegal lifecycle step.
	if _, err := svc.CancelBooking(ctx, b.ID, 7, model.RoleGuest); !errors.Is(err, model.ErrInvalidTransition) {
		t.Fatalf("double cancel: got %v, want ErrInvalidTransition", err)
	}
}

func TestSetStatusLifecycle(t *testing.T) {
	svc, rooms, _ := newTestService(t, false)
	room := seaView(rooms)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, input(room.ID, 7, 10, 15))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	// pending -> completed skips confirmation and must fail.
	if _, err := svc.SetStatus(ctx, b.ID, model.StatusCompleted); !errors.Is(err, model.ErrInvalidTransition) {
		t.Fatalf("pending->completed: got %v, want ErrInvalidTransition", err)
	}

	confirmed, err := svc.SetStatus(ctx, b.ID, model.StatusConfirmed)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if confirmed.Status != model.StatusConfirmed {
		t.Errorf("status = %s", confirmed.Status)
	}

	done, err := svc.SetStatus(ctx, b.ID, model.StatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != model.StatusCompleted {
		t.Errorf("status = %s", done.Status)
	}

	// Terminal state: nothing further is allowed.
	if _, err := svc.SetStatus(ctx, b.ID, model.StatusCancelled); !errors.Is(err, model.ErrInvalidTransition) {
		t.Fatalf("completed->cancelled: got %v, want ErrInvalidTransition", err)
	}
}

func TestGetBookingOwnership(t *testing.T) {
	svc, rooms, _ := newTestService(t, false)
	room := seaView(rooms)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, input(room.ID, 7, 10, 15))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if _, err := svc.GetBooking(ctx, b.ID, 7, model.RoleGuest); err != nil {
		t.Errorf("owner read: %v", err)
	}
	if _, err := svc.GetBooking(ctx, b.ID, 8, model.RoleGuest); !errors.Is(err, repository.ErrForbidden) {
		t.Errorf("foreign read: got %v, want ErrForbidden", err)
	}
	if _, err := svc.GetBooking(ctx, b.ID, 99, model.RoleAdmin); err != nil {
		t.Errorf("admin read: %v", err)
	}
	if _, err := svc.GetBooking(ctx, 404, 7, model.RoleGuest); !errors.Is(err, repository.ErrBookingNotFound) {
		t.Errorf("missing booking: got %v, want ErrBookingNotFound", err)
	}
}

func TestListGuestBookingsNewestFirst(t *testing.T) {
	svc, rooms, _ := newTestService(t, false)
	room := seaView(rooms)
	ctx := context.Background()

	if _, err := svc.CreateBooking(ctx, input(room.ID, 7, 10, 12)); err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.CreateBooking(ctx, input(room.ID, 7, 20, 22))
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	list, err := svc.ListGuestBookings(ctx, 7)
	if err != nil {
		t.Fatalf("ListGuestBookings: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != second.ID {
		t.Errorf("newest first violated: got ID %d first", list[0].ID)
	}
}

// TestConcurrentOverlappingCreates drives many goroutine pairs at the
// same room and dates; exactly one of each pair may win.
func TestConcurrentOverlappingCreates(t *testing.T) {
	for round := 0; round < 50; round++ {
		svc, rooms, _ := newTestService(t, false)
		room := seaView(rooms)

		var wg sync.WaitGroup
		errs := make([]error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.CreateBooking(context.Background(), input(room.ID, uint64(100+i), 10, 15))
			}(i)
		}
		wg.Wait()

		var won, conflicted int
		for _, err := range errs {
			switch {
			case err == nil:
				won++
			case errors.Is(err, repository.ErrBookingConflict):
				conflicted++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if won != 1 || conflicted != 1 {
			t.Fatalf("round %d: won=%d conflicted=%d, want exactly one winner", round, won, conflicted)
		}
	}
}
