package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/repository"
)

// AssignmentHandler manages the roster of members assigned to a
// booking: adding talent, listing the roster and soft-removing
// members.
type AssignmentHandler struct {
	Bookings    *repository.BookingRepo
	Assignments *repository.AssignmentRepo
	Instruments *repository.InstrumentRepo
	Users       *repository.UserRepo
	Log         zerolog.Logger
}

func NewAssignmentHandler(b *repository.BookingRepo, a *repository.AssignmentRepo,
	i *repository.InstrumentRepo, u *repository.UserRepo, log zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{Bookings: b, Assignments: a, Instruments: i, Users: u, Log: log}
}

type assignReq struct {
	UserID             uint64  `json:"user_id"`
	RoleInBooking      uint64  `json:"role_in_booking"`
	AssignmentType     string  `json:"assignment_type"`
	SelectedTalentID   *uint64 `json:"selected_talent_id"`
	IsMainBookedTalent bool    `json:"is_main_booked_talent"`
}

// Assign adds a member to a booking's roster.  Booking lookup,
// instrument lookup and the insert run in one transaction so the
// mixer group copied from the instrument is the one that existed at
// assign time.  A member can hold each role on a booking only once;
// duplicates come back as 409.
func (h *AssignmentHandler) Assign(c echo.Context) error {
	adminID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req assignReq
	if err := c.Bind(&req); err != nil || req.UserID == 0 || req.RoleInBooking == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_id and role_in_booking required"})
	}
	switch req.AssignmentType {
	case "":
		req.AssignmentType = model.AssignmentTypeManual
	case model.AssignmentTypeManual, model.AssignmentTypeAuto, model.AssignmentTypeRequested:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid assignment_type"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Users.GetByID(ctx, req.UserID); err != nil {
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

	if _, err := h.Bookings.GetByIDTx(ctx, tx, bookingID); err != nil {
		return writeError(c, err)
	}

	m := model.AssignmentMember{
		BookingID:          bookingID,
		UserID:             req.UserID,
		RoleInBooking:      req.RoleInBooking,
		AssignmentType:     req.AssignmentType,
		SelectedTalentID:   req.SelectedTalentID,
		IsMainBookedTalent: req.IsMainBookedTalent,
		AssignedBy:         adminID,
	}
	if req.SelectedTalentID != nil {
		inst, err := h.Instruments.GetByIDTx(ctx, tx, *req.SelectedTalentID)
		if err != nil {
			return writeError(c, err)
		}
		if inst.MixerGroup != "" {
			group := inst.MixerGroup
			m.AssignedGroup = &group
		}
	}

	if err := h.Assignments.CreateTx(ctx, tx, &m); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "member already holds this role on the booking"})
		}
		return writeError(c, err)
	}
	if err := tx.Commit(); err != nil {
		return writeError(c, err)
	}
	committed = true

	h.Log.Info().
		Uint64("booking_id", bookingID).
		Uint64("user_id", req.UserID).
		Uint64("role_in_booking", req.RoleInBooking).
		Msg("member assigned")
	return c.JSON(http.StatusCreated, echo.Map{"assignment": m})
}

// List returns the booking's roster with identity and instrument
// detail.  Removed members are excluded unless ?include_removed=true.
func (h *AssignmentHandler) List(c echo.Context) error {
	bookingID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	includeRemoved := c.QueryParam("include_removed") == "true"

	ctx, cancel := reqCtx(c)
	defer cancel()

	if _, err := h.Bookings.GetByID(ctx, bookingID); err != nil {
		return writeError(c, err)
	}
	items, err := h.Assignments.ListByBooking(ctx, bookingID, includeRemoved)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"members": items})
}

// Remove soft-deletes an assignment: the row flips to removed and
// drops out of default listings but stays queryable for history.
func (h *AssignmentHandler) Remove(c echo.Context) error {
	assignmentID, err := pathID(c, "assignment_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid assignment id"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Assignments.Remove(ctx, assignmentID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
