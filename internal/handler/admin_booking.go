package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/booking"
	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/observability/metrics"
	"github.com/encorehq/booking-platform/internal/queue"
	"github.com/encorehq/booking-platform/internal/repository"
)

// AdminBookingHandler serves the admin side of the booking lifecycle:
// guest bookings taken over the phone, status transitions and pricing.
type AdminBookingHandler struct {
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
	Events   booking.EventPublisher
	Log      zerolog.Logger
}

func NewAdminBookingHandler(b *repository.BookingRepo, u *repository.UserRepo, ev booking.EventPublisher, log zerolog.Logger) *AdminBookingHandler {
	return &AdminBookingHandler{Bookings: b, Users: u, Events: ev, Log: log}
}

type createGuestBookingReq struct {
	PrimaryArtistUserID uint64           `json:"primary_artist_user_id"`
	EventName           string           `json:"event_name"`
	EventType           string           `json:"event_type"`
	VenueName           *string          `json:"venue_name"`
	VenueAddress        *string          `json:"venue_address"`
	Requirements        *string          `json:"requirements"`
	TotalBudgetCents    *int64           `json:"total_budget_cents"`
	GuestName           string           `json:"guest_name"`
	GuestEmail          *string          `json:"guest_email"`
	GuestPhone          *string          `json:"guest_phone"`
	Dates               []bookingDateReq `json:"dates"`
}

type updateStatusReq struct {
	Status string `json:"status"`
}

type finalPriceReq struct {
	FinalPriceCents int64 `json:"final_price_cents"`
}

// allowed admin-driven status transitions; creation states are set by
// the create paths, completion by downstream flows.
var adminStatuses = map[string]bool{
	model.BookingStatusPendingApproval: true,
	model.BookingStatusApproved:        true,
	model.BookingStatusConfirmed:       true,
	model.BookingStatusDeclined:        true,
	model.BookingStatusCompleted:       true,
	model.BookingStatusCancelled:       true,
}

// CreateGuest records a booking on behalf of an unregistered booker.
// The guest's contact details live on the booking itself; contracts
// later address the guest by these fields.
func (h *AdminBookingHandler) CreateGuest(c echo.Context) error {
	var req createGuestBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.EventName = strings.TrimSpace(req.EventName)
	req.GuestName = strings.TrimSpace(req.GuestName)
	if req.PrimaryArtistUserID == 0 || req.EventName == "" || req.GuestName == "" || len(req.Dates) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "primary_artist_user_id, event_name, guest_name and dates required"})
	}
	dates, err := parseDates(req.Dates)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_date must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.PrimaryArtistUserID); err != nil {
		return writeError(c, err)
	}

	tx, err := h.Bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		return writeError(c, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b := model.Booking{
		PrimaryArtistUserID: req.PrimaryArtistUserID,
		EventName:           req.EventName,
		EventType:           req.EventType,
		VenueName:           req.VenueName,
		VenueAddress:        req.VenueAddress,
		Requirements:        req.Requirements,
		TotalBudgetCents:    req.TotalBudgetCents,
		GuestName:           &req.GuestName,
		GuestEmail:          req.GuestEmail,
		GuestPhone:          req.GuestPhone,
		IsGuestBooking:      true,
	}
	if err := h.Bookings.CreateTx(ctx, tx, &b); err != nil {
		return writeError(c, err)
	}
	if err := h.Bookings.CreateDatesTx(ctx, tx, b.ID, dates); err != nil {
		return writeError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return writeError(c, err)
	}
	committed = true

	h.Log.Info().Uint64("booking_id", b.ID).Str("guest", req.GuestName).Msg("guest booking created")
	return c.JSON(http.StatusCreated, bookingResp{Booking: b, Dates: dates})
}

// List returns all bookings, optionally filtered by ?status=.
func (h *AdminBookingHandler) List(c echo.Context) error {
	status := strings.TrimSpace(c.QueryParam("status"))

	ctx, cancel := reqCtx(c)
	defer cancel()

	items, err := h.Bookings.ListAll(ctx, status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": items})
}

// UpdateStatus moves a booking to a new lifecycle state.  Approving or
// confirming stamps the acting admin and the approval time; a
// transition to confirmed also emits a BookingConfirmedEvent for the
// downstream audit consumer.
func (h *AdminBookingHandler) UpdateStatus(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil || !adminStatuses[req.Status] {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Bookings.UpdateStatus(ctx, id, req.Status, &adminID); err != nil {
		return writeError(c, err)
	}
	metrics.ObserveBookingStatus(req.Status)

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}

	if req.Status == model.BookingStatusConfirmed && h.Events != nil {
		bookerName := ""
		if b.GuestName != nil {
			bookerName = *b.GuestName
		} else if b.BookerUserID != nil {
			if u, err := h.Users.GetByID(ctx, *b.BookerUserID); err == nil {
				bookerName = u.FullName
			}
		}
		ev := queue.BookingConfirmedEvent{
			EventID:             uuid.NewString(),
			BookingID:           b.ID,
			EventName:           b.EventName,
			EventType:           b.EventType,
			PrimaryArtistUserID: b.PrimaryArtistUserID,
			BookerName:          bookerName,
			IsGuestBooking:      b.IsGuestBooking,
			ConfirmedAt:         time.Now().UTC().Format(time.RFC3339),
		}
		if err := h.Events.PublishBookingConfirmed(ctx, ev); err != nil {
			h.Log.Warn().Err(err).Uint64("booking_id", b.ID).Msg("publish booking confirmed failed")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// SetFinalPrice records the admin-confirmed price on a booking.
func (h *AdminBookingHandler) SetFinalPrice(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req finalPriceReq
	if err := c.Bind(&req); err != nil || req.FinalPriceCents <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "final_price_cents must be positive"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Bookings.SetFinalPrice(ctx, id, req.FinalPriceCents); err != nil {
		return writeError(c, err)
	}
	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}
