package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const BasePath = "/api/v1"

// NewRouter wires every route. Booking routes require a bearer token only
// when jwtSecret is set.
func NewRouter(bookings *BookingHandler, events *EventHandler, jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	e.GET("/healthz", Health)

	api := e.Group(BasePath)
	api.GET("/events/:eventId/seats", events.GetAvailableSeats)

	b := api.Group("/bookings")
	if jwtSecret != "" {
		b.Use(JWTAuth(jwtSecret))
	}
	b.POST("", bookings.HoldSeat)
	b.PATCH("/:seatId", bookings.ConfirmBooking)
	b.DELETE("/:seatId", bookings.ReleaseHold)

	return e
}
