package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

// BookingHandler exposes the guest-facing booking endpoints. All
// business rules live in the service; the handler parses, calls and
// maps errors to HTTP statuses.
type BookingHandler struct {
	Svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Svc: svc}
}

const dateLayout = "2006-01-02"

type createBookingReq struct {
	RoomID          uint64 `json:"room_id"`
	CheckIn         string `json:"check_in"`  // YYYY-MM-DD
	CheckOut        string `json:"check_out"` // YYYY-MM-DD
	Guests          int    `json:"guests"`
	SpecialRequests string `json:"special_requests"`
}

type bookingResp struct {
	ID              uint64  `json:"id"`
	RoomID          uint64  `json:"room_id"`
	GuestID         uint64  `json:"guest_id"`
	CheckIn         string  `json:"check_in"`
	CheckOut        string  `json:"check_out"`
	Nights          int     `json:"nights"`
	Guests          int     `json:"guests"`
	TotalCents      int64   `json:"total_cents"`
	Status          string  `json:"status"`
	SpecialRequests *string `json:"special_requests,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

func toBookingResp(b *model.Booking) bookingResp {
	return bookingResp{
		ID:              b.ID,
		RoomID:          b.RoomID,
		GuestID:         b.GuestID,
		CheckIn:         b.Stay.CheckIn.Format(dateLayout),
		CheckOut:        b.Stay.CheckOut.Format(dateLayout),
		Nights:          b.Stay.Nights(),
		Guests:          b.Guests,
		TotalCents:      b.TotalCents,
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// Create handles POST /v1/bookings.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.RoomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room_id required"})
	}
	checkIn, err := time.Parse(dateLayout, req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be YYYY-MM-DD"})
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, err := h.Svc.CreateBooking(ctx, service.CreateBookingInput{
		GuestID:         uid,
		RoomID:          req.RoomID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.Guests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusCreated, toBookingResp(booking))
}

// Get handles GET /v1/bookings/:id. Guests only see their own
// bookings; admins see any.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, err := h.Svc.GetBooking(ctx, id, uid, currentRole(c))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(booking))
}

// ListMine handles GET /v1/my-bookings, newest first.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Svc.ListGuestBookings(ctx, uid)
	if err != nil {
		return bookingError(c, err)
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": out})
}

// Cancel handles PATCH /v1/bookings/:id/cancel.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, err := h.Svc.CancelBooking(ctx, id, uid, currentRole(c))
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(booking))
}

// bookingError maps domain errors onto HTTP statuses. Validation
// failures are 400, missing resources 404, ownership 403, conflicts
// with the lifecycle or another booking 409, everything else 500.
func bookingError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidRange):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be after check_in"})
	case errors.Is(err, model.ErrInvalidGuestCount):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guests must be at least 1"})
	case errors.Is(err, service.ErrCapacityExceeded):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guests exceed room capacity"})
	case errors.Is(err, service.ErrRoomUnavailable):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "room is not available for booking"})
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, repository.ErrBookingNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	case errors.Is(err, repository.ErrBookingConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room already booked for those dates"})
	case errors.Is(err, model.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "status change not allowed"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		c.Logger().Errorf("booking operation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
