package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/encorehq/booking-platform/internal/observability/metrics"
)

// Metrics records request count and latency per method/route/status.
// The route template (c.Path()) is used rather than the raw URL so
// path parameters do not explode label cardinality.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				}
			}
			metrics.ObserveHTTPRequest(c.Request().Method, c.Path(), strconv.Itoa(status), time.Since(start))
			return err
		}
	}
}
