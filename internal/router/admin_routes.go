package router

import (
	"github.com/labstack/echo/v4"

	"github.com/encorehq/booking-platform/internal/handler"
	"github.com/encorehq/booking-platform/internal/middleware"
)

// RegisterAdmin wires the administrative booking workflow under
// /v1/admin: guest bookings, status transitions, pricing, roster
// assignment, contracts/signatures, the admin side of rate
// negotiation and role/tier management.  Every route requires the
// superadmin or admin role.
func RegisterAdmin(e *echo.Echo, jwtSecret string,
	ab *handler.AdminBookingHandler, as *handler.AssignmentHandler,
	ct *handler.ContractHandler, rt *handler.RateHandler,
	d *handler.DiscountHandler, mg *handler.ManagementHandler) {

	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("superadmin", "admin"))

	g.GET("/bookings", ab.List)
	g.POST("/bookings/guest", ab.CreateGuest)
	g.PATCH("/bookings/:id/status", ab.UpdateStatus)
	g.PATCH("/bookings/:id/price", ab.SetFinalPrice)

	g.POST("/bookings/:id/members", as.Assign)
	g.GET("/bookings/:id/members", as.List)
	g.DELETE("/bookings/:id/members/:assignment_id", as.Remove)

	g.POST("/bookings/:id/contracts", ct.Generate)
	g.GET("/bookings/:id/contracts", ct.ListByBooking)
	g.GET("/bookings/:id/signatures", ct.Checklist)

	g.POST("/bookings/:id/rate", rt.Set)
	g.POST("/bookings/:id/rate/:musician_id/counter-response", rt.CounterRespond)

	g.GET("/users/:user_id/discounts/max", d.MaxDiscountFor)
	g.PATCH("/users/:user_id/role", mg.SetRole)
}

// RegisterSigning wires the signature capture endpoint.  Signing is
// authenticated but not role-gated: bookers, performers and admins
// each sign their own signer row, and admins capture the booker row
// on guest bookings during assisted signing.
func RegisterSigning(e *echo.Echo, jwtSecret string, ct *handler.ContractHandler) {
	auth := protected(e, jwtSecret)
	auth.POST("/contracts/:contract_id/sign", ct.Sign)
}
