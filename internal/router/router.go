package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/encorehq/booking-platform/internal/handler"
)

// RegisterRoutes registers routes that require no authentication:
// the health check, the Prometheus scrape endpoint and the public
// reference-data browse endpoints.
func RegisterRoutes(e *echo.Echo, p *handler.PublicHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Reference data consumed by booking and onboarding forms.
	e.GET("/v1/instruments", p.Instruments)
	e.GET("/v1/management-tiers", p.ManagementTiers)
}

// RegisterAuth registers authentication routes.  Token issuance lives
// under /v1/auth and needs no session; /v1/me and logout-all require a
// valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)               // rotates the refresh token
	g.POST("/refresh-access", a.RefreshAccess)  // access only, no rotation
	g.POST("/logout", a.Logout)

	auth := protected(e, jwtSecret)
	auth.GET("/me", a.Me)
	auth.POST("/logout-all", a.LogoutAll)
}
