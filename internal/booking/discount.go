package booking

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/repository"
)

// MaxDiscount is the resolved discount authority for one user: the
// percentage cap and which rule produced it.
type MaxDiscount struct {
	MaxPercentage uint8  `json:"max_percentage"`
	Source        string `json:"source"`
}

// Discount sources in precedence order.
const (
	DiscountSourceOverride   = "override"
	DiscountSourcePermission = "individual_permission"
	DiscountSourceTier       = "management_tier"
	DiscountSourceNone       = "none"
)

// DiscountResolver computes the maximum service discount a user may
// grant.  Precedence: active service-wide override, then active
// individual permission, then the management-tier default (full
// management tiers grant 100%, every other tier 50%).  Unmanaged
// users and managed users with no tier resolve to zero.
type DiscountResolver struct {
	users     *repository.UserRepo
	discounts *repository.DiscountRepo
	log       zerolog.Logger
}

func NewDiscountResolver(users *repository.UserRepo, discounts *repository.DiscountRepo, log zerolog.Logger) *DiscountResolver {
	return &DiscountResolver{users: users, discounts: discounts, log: log}
}

// Resolve returns the user's discount cap.  Rules that are inactive or
// past their expiry never apply; expiry comparisons happen in SQL so
// the check and the data read the same clock.
func (d *DiscountResolver) Resolve(ctx context.Context, userID uint64) (MaxDiscount, error) {
	if pct, err := d.discounts.MaxActiveOverride(ctx, userID); err != nil {
		return MaxDiscount{}, err
	} else if pct != nil {
		return MaxDiscount{MaxPercentage: *pct, Source: DiscountSourceOverride}, nil
	}

	if pct, err := d.discounts.MaxActiveIndividualPermission(ctx, userID); err != nil {
		return MaxDiscount{}, err
	} else if pct != nil {
		return MaxDiscount{MaxPercentage: *pct, Source: DiscountSourcePermission}, nil
	}

	u, err := d.users.GetByID(ctx, userID)
	if err != nil {
		return MaxDiscount{}, err
	}
	if !model.IsManagedRole(u.RoleID) {
		return MaxDiscount{Source: DiscountSourceNone}, nil
	}

	tier, err := d.discounts.TierNameForUser(ctx, userID, model.CategoryForRole(u.RoleID))
	if err != nil {
		return MaxDiscount{}, err
	}
	if tier == nil {
		return MaxDiscount{Source: DiscountSourceNone}, nil
	}
	return MaxDiscount{MaxPercentage: TierDiscountPercentage(*tier), Source: DiscountSourceTier}, nil
}

// TierDiscountPercentage maps a management tier name to its default
// discount cap: tiers whose name contains "full" grant 100%, all other
// tiers 50%.
func TierDiscountPercentage(tierName string) uint8 {
	if strings.Contains(strings.ToLower(tierName), "full") {
		return 100
	}
	return 50
}
