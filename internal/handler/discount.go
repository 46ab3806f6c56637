package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/encorehq/booking-platform/internal/booking"
)

// DiscountHandler exposes the resolved service-discount ceiling.
type DiscountHandler struct {
	Resolver *booking.DiscountResolver
}

func NewDiscountHandler(r *booking.DiscountResolver) *DiscountHandler {
	return &DiscountHandler{Resolver: r}
}

// MyMaxDiscount returns the caller's own discount cap.
func (h *DiscountHandler) MyMaxDiscount(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d, err := h.Resolver.Resolve(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}

// MaxDiscountFor returns the discount cap for an arbitrary user
// (admin-only route).
func (h *DiscountHandler) MaxDiscountFor(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	d, err := h.Resolver.Resolve(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, d)
}
