// Package router defines how HTTP routes are registered for the kiosk.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Dinhan123456/cinemahub-booking/internal/handler"
	"github.com/Dinhan123456/cinemahub-booking/internal/middleware"
)

// RegisterRoutes wires every facade endpoint onto the provided Echo
// instance. All /v1 routes run the Identity middleware so handlers can
// resolve the ledger user; none of them require authentication, a
// missing token just means "guest".
func RegisterRoutes(e *echo.Echo, catalog *handler.CatalogHandler, booking *handler.BookingHandler, history *handler.HistoryHandler, jwtSecret string) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")
	v1.Use(middleware.Identity(jwtSecret))

	// Catalog reads, proxied to the Booking API.
	v1.GET("/movies/:id", catalog.GetMovie)
	v1.GET("/movies/:id/showtimes", catalog.GetShowtimes)
	v1.GET("/showtimes/:id/seats", catalog.GetSeatStates)
	v1.GET("/showtimes/:id/seat-summary", catalog.GetSeatSummary)

	// Booking flow and the per-user history ledger.
	v1.POST("/bookings", booking.CreateBooking)
	v1.GET("/bookings/history", history.GetHistory)
}
