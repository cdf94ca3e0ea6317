package service

import (
	"context"
	"strings"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// RoomCatalog is the booking service's view of the room inventory. It
// must return repository.ErrRoomNotFound for unknown ids. Satisfied
// by *repository.RoomRepo and *repository.MemoryRoomCatalog.
type RoomCatalog interface {
	GetByID(ctx context.Context, id uint64) (*model.Room, error)
}

// BookingStore is the persistence contract the service orchestrates
// against. Create must evaluate the conflict predicate atomically
// with the insert (row lock or equivalent critical section) and
// return repository.ErrBookingConflict when it would violate the
// no-double-booking invariant. UpdateStatus uses compare-and-set
// semantics on the current status. Satisfied by
// *repository.BookingRepo and *repository.MemoryBookingStore.
type BookingStore interface {
	FindConflicts(ctx context.Context, roomID uint64, stay model.Stay) ([]*model.Booking, error)
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id uint64, from, to model.BookingStatus) (*model.Booking, error)
	ListByRoom(ctx context.Context, roomID uint64) ([]*model.Booking, error)
	ListByGuest(ctx context.Context, guestID uint64) ([]*model.Booking, error)
}

// EventSink receives booking lifecycle notifications after a write
// has committed. Implementations must not block the request path;
// the queue publisher logs and swallows broker errors.
type EventSink interface {
	BookingCreated(ctx context.Context, b *model.Booking)
	BookingStatusChanged(ctx context.Context, b *model.Booking, from model.BookingStatus)
}

// BookingService validates booking requests and drives the lifecycle.
// It holds no booking state of its own; every operation re-fetches
// from the store. initialStatus is what freshly created bookings
// receive: pending by default, confirmed when the deployment skips
// the operator-approval step (BOOKING_AUTO_CONFIRM).
type BookingService struct {
	rooms         RoomCatalog
	bookings      BookingStore
	events        EventSink
	initialStatus model.BookingStatus
}

// NewBookingService constructs a BookingService. events may be nil
// when no broker is configured. autoConfirm switches the initial
// status from pending to confirmed.
func NewBookingService(rooms RoomCatalog, bookings BookingStore, events EventSink, autoConfirm bool) *BookingService {
	if rooms == nil || bookings == nil {
		panic("nil dependency passed to NewBookingService")
	}
	initial := model.StatusPending
	if autoConfirm {
		initial = model.StatusConfirmed
	}
	return &BookingService{rooms: rooms, bookings: bookings, events: events, initialStatus: initial}
}

// CreateBookingInput carries the validated-at-the-edge request fields
// for a new booking. Dates may carry a time-of-day component; the
// service strips it.
type CreateBookingInput struct {
	GuestID         uint64
	RoomID          uint64
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	SpecialRequests string
}

// CreateBooking runs the full creation sequence: date and guest-count
// validation, room existence/availability/capacity checks, conflict
// detection, pricing, insert. The early FindConflicts gives a fast
// failure; the store's Create re-evaluates the predicate atomically
// with the insert, so two concurrent overlapping requests for a room
// can never both commit; the loser of that race also surfaces as
// repository.ErrBookingConflict here.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	stay, err := model.NewStay(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	if in.Guests < 1 {
		return nil, model.ErrInvalidGuestCount
	}

	room, err := s.rooms.GetByID(ctx, in.RoomID)
	if err != nil {
		return nil, err
	}
	if !room.IsAvailable {
		return nil, ErrRoomUnavailable
	}
	if in.Guests > room.Capacity {
		return nil, ErrCapacityExceeded
	}

	conflicts, err := s.bookings.FindConflicts(ctx, room.ID, stay)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, repository.ErrBookingConflict
	}

	quote, err := ComputePrice(stay, room.NightlyRateCents)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		RoomID:     room.ID,
		GuestID:    in.GuestID,
		Stay:       stay,
		Guests:     in.Guests,
		TotalCents: quote.TotalCents,
		Status:     s.initialStatus,
	}
	if req := strings.TrimSpace(in.SpecialRequests); req != "" {
		booking.SpecialRequests = &req
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.BookingCreated(ctx, booking)
	}
	return booking, nil
}

// CancelBooking moves a booking to cancelled on behalf of its guest
// or an admin. Non-admin callers may only cancel their own bookings
// (repository.ErrForbidden otherwise). An illegal lifecycle step,
// such as cancelling a completed or already cancelled booking, fails
// with model.ErrInvalidTransition and leaves the record unchanged.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, requesterID uint64, requesterRole string) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if requesterRole != model.RoleAdmin && booking.GuestID != requesterID {
		return nil, repository.ErrForbidden
	}
	return s.transition(ctx, booking, model.StatusCancelled)
}

// SetStatus applies an admin-requested status change after validating
// it against the lifecycle.
func (s *BookingService) SetStatus(ctx context.Context, bookingID uint64, target model.BookingStatus) (*model.Booking, error) {
	if !target.IsValid() {
		return nil, model.ErrInvalidTransition
	}
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, booking, target)
}

func (s *BookingService) transition(ctx context.Context, booking *model.Booking, target model.BookingStatus) (*model.Booking, error) {
	from := booking.Status
	if !from.CanTransitionTo(target) {
		return nil, model.ErrInvalidTransition
	}
	updated, err := s.bookings.UpdateStatus(ctx, booking.ID, from, target)
	if err != nil {
		return nil, err
	}
	if s.events != nil {
		s.events.BookingStatusChanged(ctx, updated, from)
	}
	return updated, nil
}

// GetBooking loads one booking, enforcing that non-admin callers only
// see their own.
func (s *BookingService) GetBooking(ctx context.Context, bookingID, requesterID uint64, requesterRole string) (*model.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if requesterRole != model.RoleAdmin && booking.GuestID != requesterID {
		return nil, repository.ErrForbidden
	}
	return booking, nil
}

// ListGuestBookings returns the caller's booking history, newest first.
func (s *BookingService) ListGuestBookings(ctx context.Context, guestID uint64) ([]*model.Booking, error) {
	return s.bookings.ListByGuest(ctx, guestID)
}

// ListRoomBookings returns all bookings for a room, newest first.
// Admin read path.
func (s *BookingService) ListRoomBookings(ctx context.Context, roomID uint64) ([]*model.Booking, error) {
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	return s.bookings.ListByRoom(ctx, roomID)
}
