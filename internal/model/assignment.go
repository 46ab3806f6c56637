package model

import "time"

// Assignment lifecycle statuses.  Removal is a soft status flip so
// the assignment history stays available for dispute resolution.
const (
	AssignmentStatusActive  = "active"
	AssignmentStatusPending = "pending"
	AssignmentStatusRemoved = "removed"
)

// Assignment types record how a member ended up on the booking.
const (
	AssignmentTypeManual    = "manual"
	AssignmentTypeAuto      = "auto"
	AssignmentTypeRequested = "requested"
)

// AssignmentMember links a booking to a user in a specific
// role-in-booking, with an optional selected instrument.  When an
// instrument is selected its mixer group is copied into AssignedGroup
// at creation time; the group is not re-derived if the instrument's
// metadata later changes.  Channel pair/number allocation happens in
// a later stage-plot step and both stay nil at assign time.
type AssignmentMember struct {
	ID                  uint64    `json:"id"`
	BookingID           uint64    `json:"booking_id"`
	UserID              uint64    `json:"user_id"`
	RoleInBooking       uint64    `json:"role_in_booking"` // references roles.id
	AssignmentType      string    `json:"assignment_type"`
	Status              string    `json:"status"`
	SelectedTalentID    *uint64   `json:"selected_talent_id,omitempty"` // references all_instruments.id
	IsMainBookedTalent  bool      `json:"is_main_booked_talent"`
	AssignedGroup       *string   `json:"assigned_group,omitempty"`
	AssignedChannelPair *uint32   `json:"assigned_channel_pair,omitempty"`
	AssignedChannel     *uint32   `json:"assigned_channel,omitempty"`
	AssignedBy          uint64    `json:"assigned_by"`
	AssignedAt          time.Time `json:"assigned_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// AssignmentDetail is the joined view returned to callers: the
// assignment enriched with the member's identity, role name and
// instrument detail.  Rows with IsMainBookedTalent set sort first.
type AssignmentDetail struct {
	AssignmentMember
	FullName       string  `json:"full_name"`
	StageName      *string `json:"stage_name,omitempty"`
	RoleName       string  `json:"role_name"`
	InstrumentName *string `json:"instrument_name,omitempty"`
	PlayerName     *string `json:"player_name,omitempty"`
	MixerGroup     *string `json:"mixer_group,omitempty"`
}
