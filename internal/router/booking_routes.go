package router

import (
	"github.com/labstack/echo/v4"

	"github.com/encorehq/booking-platform/internal/handler"
	"github.com/encorehq/booking-platform/internal/middleware"
)

// protected returns the /v1 group with JWT auth applied.  Echo keeps
// group middleware per group instance, so each Register* helper builds
// its own.
func protected(e *echo.Echo, jwtSecret string) *echo.Group {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	return g
}

// RegisterBooking wires the registered-user booking routes: creating
// requests, listing own bookings, profile upkeep and the negotiation
// endpoints a musician uses.
func RegisterBooking(e *echo.Echo, jwtSecret string,
	b *handler.BookingHandler, pr *handler.ProfileHandler,
	rt *handler.RateHandler, d *handler.DiscountHandler) {

	auth := protected(e, jwtSecret)

	auth.POST("/bookings", b.Create)
	auth.GET("/bookings", b.Mine)
	auth.GET("/bookings/:id", b.Get)

	auth.GET("/profile", pr.Get)
	auth.PUT("/profile", pr.Upsert)

	// Musician side of the rate negotiation.
	auth.GET("/rates", rt.Mine)
	auth.POST("/bookings/:id/rate/respond", rt.Respond)

	auth.GET("/discounts/max", d.MyMaxDiscount)
}
