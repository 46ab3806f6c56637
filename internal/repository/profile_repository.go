package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/encorehq/booking-platform/internal/model"
)

// ProfileRepo provides access to the per-user-type talent profile
// tables (artists, musicians, professionals).  Exactly one row exists
// per user per applicable type, keyed by user_id.
type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo { return &ProfileRepo{db: db} }

func profileTable(cat model.RoleCategory) (string, error) {
	switch cat {
	case model.CategoryArtist:
		return "artists", nil
	case model.CategoryMusician:
		return "musicians", nil
	case model.CategoryProfessional:
		return "professionals", nil
	default:
		return "", fmt.Errorf("no profile table for category %q", cat)
	}
}

// Get returns the talent profile for a user in the given category, or
// ErrUserNotFound when no profile row exists.
func (r *ProfileRepo) Get(ctx context.Context, userID uint64, cat model.RoleCategory) (model.TalentProfile, error) {
	var p model.TalentProfile
	table, err := profileTable(cat)
	if err != nil {
		return p, err
	}
	err = r.db.QueryRowContext(ctx,
		`SELECT user_id, stage_name, primary_genre, base_price_cents, ideal_rate_cents,
		        minimum_rate_cents, is_managed, management_tier_id, primary_talent_id, is_complete
		 FROM `+table+` WHERE user_id=? LIMIT 1`, userID).
		Scan(&p.UserID, &p.StageName, &p.PrimaryGenre, &p.BasePriceCents, &p.IdealRateCents,
			&p.MinimumRateCents, &p.IsManaged, &p.ManagementTierID, &p.PrimaryTalentID, &p.IsComplete)
	if errors.Is(err, sql.ErrNoRows) {
		return p, ErrUserNotFound
	}
	return p, err
}

// Upsert inserts or replaces the user-editable fields of a profile
// row.  The management columns (is_managed, management_tier_id) are
// deliberately absent from the statement: they are superadmin-granted
// through SetManagement and a routine profile save must not touch
// them.
func (r *ProfileRepo) Upsert(ctx context.Context, cat model.RoleCategory, p *model.TalentProfile) error {
	table, err := profileTable(cat)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO `+table+`
		   (user_id, stage_name, primary_genre, base_price_cents, ideal_rate_cents,
		    minimum_rate_cents, primary_talent_id, is_complete)
		 VALUES (?,?,?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   stage_name = VALUES(stage_name),
		   primary_genre = VALUES(primary_genre),
		   base_price_cents = VALUES(base_price_cents),
		   ideal_rate_cents = VALUES(ideal_rate_cents),
		   minimum_rate_cents = VALUES(minimum_rate_cents),
		   primary_talent_id = VALUES(primary_talent_id),
		   is_complete = VALUES(is_complete)`,
		p.UserID, p.StageName, p.PrimaryGenre, p.BasePriceCents, p.IdealRateCents,
		p.MinimumRateCents, p.PrimaryTalentID, p.IsComplete)
	return err
}

// SetManagement writes the superadmin-granted management state for a
// user, creating a bare profile row when none exists yet so a grant
// can precede the user's first profile save.
func (r *ProfileRepo) SetManagement(ctx context.Context, cat model.RoleCategory, userID uint64, managed bool, tierID *uint64) error {
	table, err := profileTable(cat)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO `+table+` (user_id, is_managed, management_tier_id)
		 VALUES (?,?,?)
		 ON DUPLICATE KEY UPDATE
		   is_managed = VALUES(is_managed),
		   management_tier_id = VALUES(management_tier_id)`,
		userID, managed, tierID)
	return err
}

// Tiers returns the management tier catalog.
func (r *ProfileRepo) Tiers(ctx context.Context) ([]model.ManagementTier, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, description FROM management_tiers ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ManagementTier{}
	for rows.Next() {
		var t model.ManagementTier
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
