package model

import "time"

// Booking statuses.  A booking is never physically deleted in the
// normal flow; cancellation is a status flip.
const (
	BookingStatusPending         = "pending"
	BookingStatusPendingApproval = "pending_approval"
	BookingStatusApproved        = "approved"
	BookingStatusConfirmed       = "confirmed"
	BookingStatusDeclined        = "declined"
	BookingStatusCompleted       = "completed"
	BookingStatusCancelled       = "cancelled"
)

// Booking is the root of the booking aggregate: one event engagement
// between a booker (registered user or guest) and a primary artist,
// spanning one or more event dates and carrying the workflow flags
// that gate contract generation, signing and payment.
//
// Fields:
//  ID                     – primary key identifier.
//  BookerUserID           – registered booker; nil implies a guest booking,
//                           in which case the Guest* fields are populated.
//  PrimaryArtistUserID    – headline talent the booking targets.
//  EventName, EventType   – what is being booked.
//  VenueName, VenueAddress – where it happens.
//  Status                 – lifecycle state (see constants above).
//  TotalBudgetCents       – booker-declared budget.
//  FinalPriceCents        – admin-confirmed price, set at approval.
//  AssignedAdminID        – admin shepherding this booking.
//  AdminApprovedAt        – when an admin approved the booking.
//  ContractsGenerated     – contracts have been generated at least once.
//  AllSignaturesCompleted – every required signature across every
//                           contract of the booking is signed.
//  PaymentCompleted       – flipped by the external payment webhook.
//  ReceiptGenerated       – downstream invoice flow marker.
//  CurrentWorkflowStep    – 1-based step in the guided admin workflow.
type Booking struct {
	ID                     uint64     `json:"id"`
	BookerUserID           *uint64    `json:"booker_user_id,omitempty"`
	PrimaryArtistUserID    uint64     `json:"primary_artist_user_id"`
	EventName              string     `json:"event_name"`
	EventType              string     `json:"event_type"`
	VenueName              *string    `json:"venue_name,omitempty"`
	VenueAddress           *string    `json:"venue_address,omitempty"`
	Requirements           *string    `json:"requirements,omitempty"`
	Status                 string     `json:"status"`
	TotalBudgetCents       *int64     `json:"total_budget_cents,omitempty"`
	FinalPriceCents        *int64     `json:"final_price_cents,omitempty"`
	GuestName              *string    `json:"guest_name,omitempty"`
	GuestEmail             *string    `json:"guest_email,omitempty"`
	GuestPhone             *string    `json:"guest_phone,omitempty"`
	IsGuestBooking         bool       `json:"is_guest_booking"`
	AssignedAdminID        *uint64    `json:"assigned_admin_id,omitempty"`
	AdminApprovedAt        *time.Time `json:"admin_approved_at,omitempty"`
	ContractsGenerated     bool       `json:"contracts_generated"`
	AllSignaturesCompleted bool       `json:"all_signatures_completed"`
	PaymentCompleted       bool       `json:"payment_completed"`
	ReceiptGenerated       bool       `json:"receipt_generated"`
	CurrentWorkflowStep    uint32     `json:"current_workflow_step"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// BookingDate is one event date under a booking.  A booking may span
// multiple dates (festival runs, residencies).
type BookingDate struct {
	ID        uint64    `json:"id"`         // booking_dates.id
	BookingID uint64    `json:"booking_id"` // booking_dates.booking_id
	EventDate time.Time `json:"event_date"` // booking_dates.event_date
	StartTime *string   `json:"start_time,omitempty"`
	EndTime   *string   `json:"end_time,omitempty"`
}
