package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/repository"
)

// ManagementHandler covers the superadmin side of talent management:
// moving a user onto a different primary role and, for the managed
// roles, granting or revoking the management tier that drives
// tier-based discounts.
type ManagementHandler struct {
	Users    *repository.UserRepo
	Profiles *repository.ProfileRepo
	Log      zerolog.Logger
}

func NewManagementHandler(u *repository.UserRepo, p *repository.ProfileRepo, log zerolog.Logger) *ManagementHandler {
	return &ManagementHandler{Users: u, Profiles: p, Log: log}
}

type setRoleReq struct {
	Role             string  `json:"role"`
	ManagementTierID *uint64 `json:"management_tier_id"`
}

// SetRole changes a user's primary role.  Promoting into a managed
// role requires a management tier and records it on the user's talent
// profile; moving to an unmanaged talent role clears any granted tier.
// The superadmin role cannot be granted through this endpoint.
func (h *ManagementHandler) SetRole(c echo.Context) error {
	userID, err := pathID(c, "user_id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req setRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	roleID, ok := model.RoleIDForName(req.Role)
	if !ok || roleID == model.RoleSuperadmin {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}
	managed := model.IsManagedRole(roleID)
	if managed && req.ManagementTierID == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "managed role requires a management tier"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.Users.SetPrimaryRole(ctx, userID, roleID); err != nil {
		return writeError(c, err)
	}

	// The tier lives on the profile table of the new role's category.
	// Roles without a talent profile (admin, fan) carry no tier at all.
	switch cat := model.CategoryForRole(roleID); cat {
	case model.CategoryArtist, model.CategoryMusician, model.CategoryProfessional:
		var tierID *uint64
		if managed {
			tierID = req.ManagementTierID
		}
		if err := h.Profiles.SetManagement(ctx, cat, userID, managed, tierID); err != nil {
			return writeError(c, err)
		}
	}

	h.Log.Info().
		Uint64("user_id", userID).
		Uint64("from_role", u.RoleID).
		Uint64("to_role", roleID).
		Bool("managed", managed).
		Msg("primary role changed")
	return c.JSON(http.StatusOK, echo.Map{
		"user_id": userID,
		"role":    req.Role,
		"role_id": roleID,
		"managed": managed,
	})
}
