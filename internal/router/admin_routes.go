package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-booking/internal/handler"
	"github.com/iliyamo/hotel-room-booking/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, rooms *handler.AdminRoomHandler, bookings *handler.AdminBookingHandler, dash *handler.AdminDashboardHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Rooms ----
	g.POST("/rooms", rooms.Create)
	g.PUT("/rooms/:id", rooms.Update)
	g.PATCH("/rooms/:id", rooms.Update) // alias for clients that use PATCH
	g.PATCH("/rooms/:id/availability", rooms.SetAvailability)
	g.DELETE("/rooms/:id", rooms.Delete)

	// ---- Bookings ----
	g.GET("/bookings", bookings.ListAll)
	g.GET("/rooms/:id/bookings", bookings.ListByRoom)
	g.PATCH("/bookings/:id/status", bookings.SetStatus)

	// ---- Dashboard ----
	g.GET("/dashboard", dash.Overview)
}
