package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/middleware"
)

// RegisterGuest registers guest-scoped booking endpoints under /v1.
// All routes require a valid JWT; both roles are accepted so admins
// can exercise the same endpoints. Ownership checks happen in the
// service layer.
func RegisterGuest(e *echo.Echo, h *handler.BookingHandler, jwtSecret string, limiter echo.MiddlewareFunc) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("GUEST", "ADMIN"),
	)
	if limiter != nil {
		g.Use(limiter)
	}

	g.POST("/bookings", h.Create)
	g.GET("/bookings/:id", h.Get)
	g.PATCH("/bookings/:id/cancel", h.Cancel)
	g.GET("/my-bookings", h.ListMine)
}
