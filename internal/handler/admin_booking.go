package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/model"
	"github.com/iliyamo/hotel-room-booking/internal/repository"
	"github.com/iliyamo/hotel-room-booking/internal/service"
)

// AdminBookingHandler exposes the operator's view of bookings:
// listing with guest and room detail, per-room history and manual
// status changes (confirm, complete, cancel).
type AdminBookingHandler struct {
	Svc      *service.BookingService
	Bookings *repository.BookingRepo
}

func NewAdminBookingHandler(svc *service.BookingService, b *repository.BookingRepo) *AdminBookingHandler {
	return &AdminBookingHandler{Svc: svc, Bookings: b}
}

// ListAll handles GET /v1/admin/bookings.
func (h *AdminBookingHandler) ListAll(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	details, err := h.Bookings.ListAllDetailed(ctx)
	if err != nil {
		c.Logger().Errorf("list bookings failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": details})
}

// ListByRoom handles GET /v1/admin/rooms/:id/bookings.
func (h *AdminBookingHandler) ListByRoom(c echo.Context) error {
	roomID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || roomID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid room id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Svc.ListRoomBookings(ctx, roomID)
	if err != nil {
		return bookingError(c, err)
	}
	out := make([]bookingResp, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toBookingResp(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"room_id": roomID, "bookings": out})
}

// SetStatus handles PATCH /v1/admin/bookings/:id/status. The target
// status must be a legal next step in the lifecycle; anything else is
// rejected with 409 and the booking is left untouched.
func (h *AdminBookingHandler) SetStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}
	target, err := model.ParseBookingStatus(req.Status)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	booking, err := h.Svc.SetStatus(ctx, id, target)
	if err != nil {
		return bookingError(c, err)
	}
	return c.JSON(http.StatusOK, toBookingResp(booking))
}
