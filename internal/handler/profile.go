package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/repository"
)

// ProfileHandler serves the authenticated user's talent profile.  The
// profile table is chosen by the user's role category; fans and admins
// carry no talent profile.
type ProfileHandler struct {
	Users    *repository.UserRepo
	Profiles *repository.ProfileRepo
	Log      zerolog.Logger
}

func NewProfileHandler(u *repository.UserRepo, p *repository.ProfileRepo, log zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{Users: u, Profiles: p, Log: log}
}

type upsertProfileReq struct {
	StageName        *string `json:"stage_name"`
	PrimaryGenre     *string `json:"primary_genre"`
	BasePriceCents   *int64  `json:"base_price_cents"`
	IdealRateCents   *int64  `json:"ideal_rate_cents"`
	MinimumRateCents *int64  `json:"minimum_rate_cents"`
	PrimaryTalentID  *uint64 `json:"primary_talent_id"`
}

// talentCategory resolves the caller's category and rejects roles that
// carry no talent profile.
func (h *ProfileHandler) talentCategory(c echo.Context) (uint64, model.RoleCategory, error) {
	uid, err := getUserID(c)
	if err != nil {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return 0, "", err
	}
	cat := model.CategoryForRole(u.RoleID)
	switch cat {
	case model.CategoryArtist, model.CategoryMusician, model.CategoryProfessional:
		return uid, cat, nil
	}
	return 0, "", echo.NewHTTPError(http.StatusForbidden, "role has no talent profile")
}

// Get returns the caller's talent profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	uid, cat, err := h.talentCategory(c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return c.JSON(he.Code, echo.Map{"error": he.Message})
		}
		return writeError(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Profiles.Get(ctx, uid, cat)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"profile": p})
}

// Upsert creates or updates the caller's talent profile.  The managed
// flag and tier are never writable here; a superadmin grants those
// through the management flow.
func (h *ProfileHandler) Upsert(c echo.Context) error {
	uid, cat, err := h.talentCategory(c)
	if err != nil {
		if he, ok := err.(*echo.HTTPError); ok {
			return c.JSON(he.Code, echo.Map{"error": he.Message})
		}
		return writeError(c, err)
	}

	var req upsertProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	p := model.TalentProfile{
		UserID:           uid,
		StageName:        req.StageName,
		PrimaryGenre:     req.PrimaryGenre,
		BasePriceCents:   req.BasePriceCents,
		IdealRateCents:   req.IdealRateCents,
		MinimumRateCents: req.MinimumRateCents,
		PrimaryTalentID:  req.PrimaryTalentID,
		IsComplete:       req.StageName != nil && req.BasePriceCents != nil,
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Profiles.Upsert(ctx, cat, &p); err != nil {
		return writeError(c, err)
	}
	// Re-read so the response carries the server-owned management
	// fields the upsert leaves untouched.
	stored, err := h.Profiles.Get(ctx, uid, cat)
	if err != nil {
		return writeError(c, err)
	}
	h.Log.Info().Uint64("user_id", uid).Str("category", string(cat)).Msg("profile saved")
	return c.JSON(http.StatusOK, echo.Map{"profile": stored})
}
