package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/encorehq/booking-platform/internal/repository"
)

// PublicHandler serves unauthenticated reference-data endpoints used
// by booking and onboarding forms.
type PublicHandler struct {
	InstrumentRepo *repository.InstrumentRepo
	Profiles    *repository.ProfileRepo
}

func NewPublicHandler(i *repository.InstrumentRepo, p *repository.ProfileRepo) *PublicHandler {
	return &PublicHandler{InstrumentRepo: i, Profiles: p}
}

// Instruments lists the active instrument catalog.
func (h *PublicHandler) Instruments(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.InstrumentRepo.ListActive(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"instruments": items})
}

// ManagementTiers lists the representation tiers on offer.
func (h *PublicHandler) ManagementTiers(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Profiles.Tiers(ctx)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"tiers": items})
}
