package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/encorehq/booking-platform/internal/model"
)

// DiscountRepo reads the inputs of the discount resolver: per-user
// service overrides, individual superadmin grants and the management
// tier attached to a user's talent profile.
type DiscountRepo struct {
	db *sql.DB
}

func NewDiscountRepo(db *sql.DB) *DiscountRepo { return &DiscountRepo{db: db} }

// MaxActiveOverride returns the highest active, unexpired override
// percentage for a user, or nil when none exists.
func (r *DiscountRepo) MaxActiveOverride(ctx context.Context, userID uint64) (*uint8, error) {
	var pct sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(override_percentage) FROM service_discount_overrides
		 WHERE user_id=? AND is_active=1
		   AND (effective_until IS NULL OR effective_until > UTC_TIMESTAMP())`,
		userID).Scan(&pct)
	if err != nil {
		return nil, err
	}
	if !pct.Valid {
		return nil, nil
	}
	v := uint8(pct.Int64)
	return &v, nil
}

// MaxActiveIndividualPermission returns the highest active, unexpired
// case-by-case grant for a user, or nil when none exists.
func (r *DiscountRepo) MaxActiveIndividualPermission(ctx context.Context, userID uint64) (*uint8, error) {
	var pct sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(custom_max_percentage) FROM individual_discount_permissions
		 WHERE user_id=? AND is_active=1
		   AND (expires_at IS NULL OR expires_at > UTC_TIMESTAMP())`,
		userID).Scan(&pct)
	if err != nil {
		return nil, err
	}
	if !pct.Valid {
		return nil, nil
	}
	v := uint8(pct.Int64)
	return &v, nil
}

// TierNameForUser resolves the management tier name through whichever
// profile table matches the user's category.  nil is returned when the
// category has no profile table, the profile is missing, or the
// profile carries no tier.
func (r *DiscountRepo) TierNameForUser(ctx context.Context, userID uint64, cat model.RoleCategory) (*string, error) {
	var table string
	switch cat {
	case model.CategoryArtist:
		table = "artists"
	case model.CategoryMusician:
		table = "musicians"
	case model.CategoryProfessional:
		table = "professionals"
	default:
		return nil, nil
	}
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT mt.name FROM `+table+` p
		 JOIN management_tiers mt ON mt.id = p.management_tier_id
		 WHERE p.user_id = ?`, userID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &name, nil
}
