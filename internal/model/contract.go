package model

import (
	"encoding/json"
	"time"
)

// Contract types.  A booking has at most one booking agreement and at
// most one performance contract per assigned performer.
const (
	ContractTypeBookingAgreement    = "booking_agreement"
	ContractTypePerformanceContract = "performance_contract"
)

// Contract statuses: draft -> sent -> {signed | countered} -> completed.
const (
	ContractStatusDraft     = "draft"
	ContractStatusSent      = "sent"
	ContractStatusSigned    = "signed"
	ContractStatusCountered = "countered"
	ContractStatusCompleted = "completed"
)

// Signer roles.  The required signer set derives from the contract
// type: booking agreements are signed by {booker, superadmin},
// performance contracts by {performer, superadmin}.
const (
	SignerTypeBooker     = "booker"
	SignerTypeSuperadmin = "superadmin"
	SignerTypePerformer  = "performer"
)

// Signature statuses form a one-way transition: pending -> signed.
const (
	SignatureStatusPending = "pending"
	SignatureStatusSigned  = "signed"
)

// Contract mirrors the `contracts` table.  Content is a structured
// document payload stored as JSON; the service treats it as opaque.
// AssignedToUserID identifies the performer on performance contracts
// and is zero for booking agreements; the zero value participates in
// the natural uniqueness key (booking_id, contract_type,
// assigned_to_user_id) enforced by upsert-on-conflict semantics.
type Contract struct {
	ID               uint64          `json:"id"`
	BookingID        uint64          `json:"booking_id"`
	ContractType     string          `json:"contract_type"`
	Status           string          `json:"status"`
	Title            string          `json:"title"`
	Content          json.RawMessage `json:"content"`
	Metadata         json.RawMessage `json:"metadata,omitempty"`
	CreatedByUserID  uint64          `json:"created_by_user_id"`
	AssignedToUserID uint64          `json:"assigned_to_user_id,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ContractSignature tracks one required signer on a contract, keyed
// by (contract_id, signer_type).  SignatureData stays nil until the
// signer signs; re-issuing a contract resets the row to pending and
// clears the captured signature.
type ContractSignature struct {
	ID            uint64     `json:"id"`
	ContractID    uint64     `json:"contract_id"`
	SignerType    string     `json:"signer_type"`
	SignerUserID  *uint64    `json:"signer_user_id,omitempty"` // nil for guest bookers
	SignerName    string     `json:"signer_name"`
	SignerEmail   *string    `json:"signer_email,omitempty"`
	SignatureData *string    `json:"signature_data,omitempty"`
	Status        string     `json:"status"`
	SignedAt      *time.Time `json:"signed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SignatureChecklistItem is a signature row joined with its parent
// contract's type and title, used to render the consolidated signing
// checklist for a booking.
type SignatureChecklistItem struct {
	ContractSignature
	ContractType  string `json:"contract_type"`
	ContractTitle string `json:"contract_title"`
}
