package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/encorehq/booking-platform/internal/booking"
	"github.com/encorehq/booking-platform/internal/repository"
)

// dbTimeout bounds every handler-initiated database call.
const dbTimeout = 5 * time.Second

// reqCtx derives a bounded context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// getUserID extracts the authenticated user id placed in context by
// the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// currentRole returns the role name claim, or "" when absent.
func currentRole(c echo.Context) string {
	if s, ok := c.Get("role").(string); ok {
		return s
	}
	return ""
}

// isAdminRole reports whether the role name is one of the two
// administrative roles.
func isAdminRole(role string) bool {
	return role == "superadmin" || role == "admin"
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// writeError maps domain and repository errors onto HTTP responses so
// every handler reports failures the same way.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, booking.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid input"})
	case errors.Is(err, booking.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, echo.Map{"error": "operation not valid in current state"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrBookingNotFound),
		errors.Is(err, repository.ErrInstrumentNotFound),
		errors.Is(err, repository.ErrAssignmentNotFound),
		errors.Is(err, repository.ErrContractNotFound),
		errors.Is(err, repository.ErrSignatureNotFound),
		errors.Is(err, repository.ErrRateNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrSuperadminNotFound):
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no superadmin account configured"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
