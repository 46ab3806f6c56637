package middleware

// identity.go holds helpers shared across middleware files for reading
// the authenticated identity out of the Echo context.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user id as a string for use
// in rate-limit keys, or "anon" when the request is unauthenticated.
func currentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case uint64:
		return strconv.FormatUint(v, 10)
	case string:
		if v != "" {
			return v
		}
	}
	return "anon"
}
