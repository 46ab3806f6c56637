package model

import "time"

// ServiceDiscountOverride is a per-user (optionally per-service)
// discount ceiling granted case by case.  Active overrides supersede
// the tier-derived default; when several are active the maximum wins.
type ServiceDiscountOverride struct {
	ID                 uint64     // service_discount_overrides.id
	UserID             uint64     // service_discount_overrides.user_id
	ServiceID          *uint64    // optional service scope
	OverridePercentage uint8      // 0–100
	Reason             string     // why the override was granted
	AuthorizedByUserID uint64     // admin who granted it
	IsActive           bool       // inactive overrides are ignored
	EffectiveUntil     *time.Time // nil means open-ended
	CreatedAt          time.Time
}

// IndividualDiscountPermission is a superadmin case-by-case grant
// that overrides system defaults for one user and service.
type IndividualDiscountPermission struct {
	ID                   uint64
	UserID               uint64
	ServiceID            uint64
	CustomMaxPercentage  uint8
	Reason               string
	GrantedBy            uint64
	IsActive             bool
	ExpiresAt            *time.Time
	CreatedAt            time.Time
}
