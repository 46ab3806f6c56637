package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/encorehq/booking-platform/internal/booking"
	"github.com/encorehq/booking-platform/internal/observability/metrics"
)

// RateHandler exposes the rate negotiation sub-flow: admins propose,
// musicians respond, admins resolve counter offers.
type RateHandler struct {
	Negotiator *booking.RateNegotiator
}

func NewRateHandler(n *booking.RateNegotiator) *RateHandler {
	return &RateHandler{Negotiator: n}
}

type setRateReq struct {
	MusicianUserID      uint64  `json:"musician_user_id"`
	RateCents           int64   `json:"rate_cents"`
	Notes               *string `json:"notes"`
	OriginalCurrency    string  `json:"original_currency"`
	OriginalAmountCents *int64  `json:"original_amount_cents"`
}

type rateRespondReq struct {
	Response           string  `json:"response"` // accepted | declined | counter_offer
	Message            *string `json:"message"`
	CounterAmountCents *int64  `json:"counter_amount_cents"`
	CounterCurrency    *string `json:"counter_currency"`
	CounterUSDCents    *int64  `json:"counter_usd_cents"`
	CounterMessage     *string `json:"counter_message"`
}

type counterRespondReq struct {
	Response string  `json:"response"` // accepted | declined
	Message  *string `json:"message"`
}

// Set proposes a rate for a musician on a booking (admin).  Proposing
// again opens a fresh negotiation round.
func (h *RateHandler) Set(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req setRateReq
	if err := c.Bind(&req); err != nil || req.MusicianUserID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "musician_user_id required"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rate, err := h.Negotiator.SetRate(ctx, booking.SetRateInput{
		BookingID:           bookingID,
		MusicianUserID:      req.MusicianUserID,
		AdminUserID:         adminID,
		RateCents:           req.RateCents,
		Notes:               req.Notes,
		OriginalCurrency:    req.OriginalCurrency,
		OriginalAmountCents: req.OriginalAmountCents,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rate": rate})
}

// Respond records the authenticated musician's answer to a proposed
// rate.
func (h *RateHandler) Respond(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req rateRespondReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rate, err := h.Negotiator.Respond(ctx, booking.RespondInput{
		BookingID:          bookingID,
		MusicianUserID:     uid,
		Response:           req.Response,
		Message:            req.Message,
		CounterAmountCents: req.CounterAmountCents,
		CounterCurrency:    req.CounterCurrency,
		CounterUSDCents:    req.CounterUSDCents,
		CounterMessage:     req.CounterMessage,
	})
	if err != nil {
		return writeError(c, err)
	}
	metrics.ObserveRateResponse(req.Response)
	return c.JSON(http.StatusOK, echo.Map{"rate": rate})
}

// CounterRespond records the admin's accept/decline of a musician's
// counter offer.
func (h *RateHandler) CounterRespond(c echo.Context) error {
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	musicianID, err := pathID(c, "musician_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid musician id"})
	}
	var req counterRespondReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rate, err := h.Negotiator.AdminCounterRespond(ctx, bookingID, musicianID, req.Response, req.Message)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rate": rate})
}

// Mine lists the authenticated musician's rate negotiations across
// bookings.
func (h *RateHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Negotiator.ListForMusician(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"rates": items})
}
