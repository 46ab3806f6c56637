package model

import "time"

// Rate negotiation statuses: (pending) -> admin_set ->
// {accepted | declined | counter_offer}.  Response and status share
// one vocabulary: the musician's response value is written straight
// into RateStatus.
const (
	RateStatusPending      = "pending"
	RateStatusAdminSet     = "admin_set"
	RateStatusAccepted     = "accepted"
	RateStatusDeclined     = "declined"
	RateStatusCounterOffer = "counter_offer"
)

// Admin responses to a counter offer.
const (
	CounterResponseAccepted = "accepted"
	CounterResponseDeclined = "declined"
)

// MusicianRate mirrors the `booking_musicians` relation: the rate
// negotiation attached to one musician on one booking.  AdminSetRate
// is always normalized to USD cents; the original currency and amount
// preserve what the admin actually typed.
type MusicianRate struct {
	ID                  uint64     `json:"id"`
	BookingID           uint64     `json:"booking_id"`
	MusicianUserID      uint64     `json:"musician_user_id"`
	IdealRateCents      *int64     `json:"ideal_rate_cents,omitempty"`
	AdminSetRateCents   *int64     `json:"admin_set_rate_cents,omitempty"`
	OriginalCurrency    string     `json:"original_currency"`
	OriginalAmountCents *int64     `json:"original_amount_cents,omitempty"`
	ConfirmedFeeCents   *int64     `json:"confirmed_fee_cents,omitempty"`
	RateStatus          string     `json:"rate_status"`
	RateSetByAdminID    *uint64    `json:"rate_set_by_admin_id,omitempty"`
	RateNotes           *string    `json:"rate_notes,omitempty"`
	MusicianResponse    *string    `json:"musician_response,omitempty"`
	ResponseMessage     *string    `json:"response_message,omitempty"`
	CounterAmountCents  *int64     `json:"counter_amount_cents,omitempty"`
	CounterCurrency     *string    `json:"counter_currency,omitempty"`
	CounterUSDCents     *int64     `json:"counter_usd_cents,omitempty"`
	CounterMessage      *string    `json:"counter_message,omitempty"`
	CounterAt           *time.Time `json:"counter_at,omitempty"`

	AdminCounterResponse        *string    `json:"admin_counter_response,omitempty"`
	AdminCounterResponseMessage *string    `json:"admin_counter_response_message,omitempty"`
	AdminCounterResponseAt      *time.Time `json:"admin_counter_response_at,omitempty"`

	RateSetAt           *time.Time `json:"rate_set_at,omitempty"`
	RespondedAt         *time.Time `json:"responded_at,omitempty"`
	AssignedAt          time.Time  `json:"assigned_at"`
}

// MusicianRateDetail joins a rate row with booking and artist context
// for the musician's cross-booking negotiation list.
type MusicianRateDetail struct {
	MusicianRate
	EventName       string  `json:"event_name"`
	EventType       string  `json:"event_type"`
	BookingStatus   string  `json:"booking_status"`
	ArtistStageName *string `json:"artist_stage_name,omitempty"`
}
