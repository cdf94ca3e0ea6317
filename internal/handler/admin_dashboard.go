package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/repository"
)

// AdminDashboardHandler aggregates counters for the operator's
// overview page.
type AdminDashboardHandler struct {
	Bookings *repository.BookingRepo
	Rooms    *repository.RoomRepo
	Users    *repository.UserRepo
}

func NewAdminDashboardHandler(b *repository.BookingRepo, r *repository.RoomRepo, u *repository.UserRepo) *AdminDashboardHandler {
	return &AdminDashboardHandler{Bookings: b, Rooms: r, Users: u}
}

// Overview handles GET /v1/admin/dashboard.
func (h *AdminDashboardHandler) Overview(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookingStats, err := h.Bookings.Stats(ctx)
	if err != nil {
		c.Logger().Errorf("booking stats failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	roomStats, err := h.Rooms.Stats(ctx)
	if err != nil {
		c.Logger().Errorf("room stats failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	users, err := h.Users.Count(ctx)
	if err != nil {
		c.Logger().Errorf("user count failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"bookings": bookingStats,
		"rooms":    roomStats,
		"users":    echo.Map{"total_users": users},
	})
}
