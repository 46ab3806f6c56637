package model

// ManagementTier is one of the representation levels offered to
// managed users (Publisher, Representation, Full Management).  The
// tier name drives the default service-discount ceiling resolved in
// the discount resolver.
type ManagementTier struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	AppliesTo   []string `json:"applies_to,omitempty"` // categories the tier can be granted to
}

// TalentProfile holds the per-user-type profile row shared by
// artists, musicians and professionals.  Exactly one row exists per
// user per applicable type, keyed by UserID.  Rate fields are stored
// as minor currency units (USD cents) to avoid float drift.
//
// Invariant: a managed user must carry a non-nil ManagementTierID;
// an unmanaged user's tier-derived discount defaults to zero.
type TalentProfile struct {
	UserID           uint64  `json:"user_id"`
	StageName        *string `json:"stage_name,omitempty"` // musicians fall back to users.full_name
	PrimaryGenre     *string `json:"primary_genre,omitempty"`
	BasePriceCents   *int64  `json:"base_price_cents,omitempty"`
	IdealRateCents   *int64  `json:"ideal_rate_cents,omitempty"`
	MinimumRateCents *int64  `json:"minimum_rate_cents,omitempty"`
	IsManaged        bool    `json:"is_managed"` // mirrors the role category
	ManagementTierID *uint64 `json:"management_tier_id,omitempty"`
	PrimaryTalentID  *uint64 `json:"primary_talent_id,omitempty"` // references all_instruments.id
	IsComplete       bool    `json:"is_complete"`
}

// Instrument mirrors the `all_instruments` reference table.  The
// mixer group is a logical channel-group label ("VOCALS", "DRUMS",
// "KEYS", ...) copied onto assignments at creation time to
// auto-organize multi-performer stage plots.
type Instrument struct {
	ID         uint64 `json:"id"`          // all_instruments.id
	Name       string `json:"name"`        // all_instruments.name
	PlayerName string `json:"player_name"` // player-facing name ("Drummer")
	MixerGroup string `json:"mixer_group"` // all_instruments.mixer_group
	IsActive   bool   `json:"is_active"`   // all_instruments.is_active
}
