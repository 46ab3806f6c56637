package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/repository"
)

// BookingHandler serves the registered-booker side of the booking
// lifecycle: creating requests and reading back own bookings.
type BookingHandler struct {
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
	Log      zerolog.Logger
}

func NewBookingHandler(b *repository.BookingRepo, u *repository.UserRepo, log zerolog.Logger) *BookingHandler {
	return &BookingHandler{Bookings: b, Users: u, Log: log}
}

type bookingDateReq struct {
	EventDate string  `json:"event_date"` // YYYY-MM-DD
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

type createBookingReq struct {
	PrimaryArtistUserID uint64           `json:"primary_artist_user_id"`
	EventName           string           `json:"event_name"`
	EventType           string           `json:"event_type"`
	VenueName           *string          `json:"venue_name"`
	VenueAddress        *string          `json:"venue_address"`
	Requirements        *string          `json:"requirements"`
	TotalBudgetCents    *int64           `json:"total_budget_cents"`
	Dates               []bookingDateReq `json:"dates"`
}

type bookingResp struct {
	Booking model.Booking       `json:"booking"`
	Dates   []model.BookingDate `json:"dates,omitempty"`
}

func parseDates(in []bookingDateReq) ([]model.BookingDate, error) {
	out := make([]model.BookingDate, 0, len(in))
	for _, d := range in {
		day, err := time.Parse("2006-01-02", strings.TrimSpace(d.EventDate))
		if err != nil {
			return nil, err
		}
		out = append(out, model.BookingDate{EventDate: day, StartTime: d.StartTime, EndTime: d.EndTime})
	}
	return out, nil
}

// Create opens a booking request against a primary artist.  The
// booking row and its event dates are written in one transaction; a
// booking with zero dates never exists.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.EventName = strings.TrimSpace(req.EventName)
	if req.PrimaryArtistUserID == 0 || req.EventName == "" || len(req.Dates) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "primary_artist_user_id, event_name and dates required"})
	}
	dates, err := parseDates(req.Dates)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_date must be YYYY-MM-DD"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	artist, err := h.Users.GetByID(ctx, req.PrimaryArtistUserID)
	if err != nil {
		return writeError(c, err)
	}
	if cat := model.CategoryForRole(artist.RoleID); cat != model.CategoryArtist && cat != model.CategoryMusician {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "primary artist must be a performing talent"})
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
		BookerUserID:        &uid,
		PrimaryArtistUserID: req.PrimaryArtistUserID,
		EventName:           req.EventName,
		EventType:           req.EventType,
		VenueName:           req.VenueName,
		VenueAddress:        req.VenueAddress,
		Requirements:        req.Requirements,
		TotalBudgetCents:    req.TotalBudgetCents,
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

	h.Log.Info().Uint64("booking_id", b.ID).Uint64("booker_id", uid).Msg("booking created")
	return c.JSON(http.StatusCreated, bookingResp{Booking: b, Dates: dates})
}

// Mine lists bookings where the caller is the booker, plus bookings
// targeting them when they are a performing talent.
func (h *BookingHandler) Mine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	asBooker, err := h.Bookings.ListByBooker(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	asArtist, err := h.Bookings.ListByPrimaryArtist(ctx, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"as_booker": asBooker,
		"as_artist": asArtist,
	})
}

// Get returns one booking with its dates.  Visible to the booker, the
// primary artist and admins only.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	b, err := h.Bookings.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	if !canViewBooking(&b, uid, currentRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	dates, err := h.Bookings.Dates(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, bookingResp{Booking: b, Dates: dates})
}

func canViewBooking(b *model.Booking, uid uint64, role string) bool {
	if isAdminRole(role) {
		return true
	}
	if b.BookerUserID != nil && *b.BookerUserID == uid {
		return true
	}
	return b.PrimaryArtistUserID == uid
}
