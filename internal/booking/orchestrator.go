// Package booking implements the workflow logic sitting between the
// HTTP handlers and the repositories: contract generation and signing,
// rate negotiation and discount resolution.  Repositories stay thin;
// the multi-step invariants live here, each step sequence wrapped in a
// single transaction.
package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/queue"
	"github.com/encorehq/booking-platform/internal/repository"
)

// ErrInvalidInput is returned for malformed direct input (missing
// contract type, empty signature data and the like).  Handlers
// translate it to HTTP 400.
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidTransition is returned when an operation does not apply to
// the aggregate's current state, e.g. responding to a rate that was
// never set.  Handlers translate it to HTTP 409.
var ErrInvalidTransition = errors.New("invalid state transition")

// SignPolicy names the rule deciding when a contract's own status
// becomes "signed".  The legacy system flipped it on the first
// captured signature; the default here waits for every required
// signer.  Both interpretations remain selectable until the product
// decision is final.
type SignPolicy string

const (
	SignPolicyFirstSignature SignPolicy = "first_signature"
	SignPolicyAllSignatures  SignPolicy = "all_signatures"
)

// ParseSignPolicy maps a config string to a policy, defaulting to
// all_signatures.
func ParseSignPolicy(s string) SignPolicy {
	if SignPolicy(s) == SignPolicyFirstSignature {
		return SignPolicyFirstSignature
	}
	return SignPolicyAllSignatures
}

// Workflow step markers on the booking record.
const (
	stepContractsGenerated  = 2
	stepSignaturesCompleted = 3
)

// EventPublisher is the outbound port for workflow events.  Publish
// failures must not fail the workflow; the orchestrator logs and
// continues.
type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
	PublishContractsCompleted(ctx context.Context, ev queue.ContractsCompletedEvent) error
}

// ContractOrchestrator generates contracts, derives their required
// signer sets and tracks per-signer signature status for a booking.
type ContractOrchestrator struct {
	db         *sql.DB
	users      *repository.UserRepo
	bookings   *repository.BookingRepo
	contracts  *repository.ContractRepo
	signatures *repository.SignatureRepo
	policy     SignPolicy
	events     EventPublisher
	log        zerolog.Logger
}

// NewContractOrchestrator wires the orchestrator.  events may be nil
// when the broker is disabled; completion events are then skipped.
func NewContractOrchestrator(db *sql.DB, users *repository.UserRepo, bookings *repository.BookingRepo,
	contracts *repository.ContractRepo, signatures *repository.SignatureRepo,
	policy SignPolicy, events EventPublisher, log zerolog.Logger) *ContractOrchestrator {
	return &ContractOrchestrator{
		db: db, users: users, bookings: bookings,
		contracts: contracts, signatures: signatures,
		policy: policy, events: events, log: log,
	}
}

// GenerateContractInput carries one contract generation request.
// PerformerUserID is required for performance contracts and must be
// zero for booking agreements.
type GenerateContractInput struct {
	BookingID       uint64
	ContractType    string
	Title           string
	Content         json.RawMessage
	Metadata        json.RawMessage
	Status          string
	CreatedByUserID uint64
	PerformerUserID uint64
}

// GenerateContract upserts the contract identified by its natural key
// and (re)provisions its required signer rows, all in one
// transaction.  The returned action is "inserted" for a fresh
// contract and "updated" for a re-generation; a re-generation resets
// all signer rows to pending, so the booking's completion flag is
// cleared as well.
//
// A missing booking, performer or superadmin is a configuration
// error, not user input: the call fails and nothing is written.
func (o *ContractOrchestrator) GenerateContract(ctx context.Context, in GenerateContractInput) (model.Contract, string, error) {
	switch in.ContractType {
	case model.ContractTypeBookingAgreement:
		if in.PerformerUserID != 0 {
			return model.Contract{}, "", ErrInvalidInput
		}
	case model.ContractTypePerformanceContract:
		if in.PerformerUserID == 0 {
			return model.Contract{}, "", ErrInvalidInput
		}
	default:
		return model.Contract{}, "", ErrInvalidInput
	}
	if in.Title == "" || len(in.Content) == 0 {
		return model.Contract{}, "", ErrInvalidInput
	}

	tx, err := o.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Contract{}, "", err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := o.bookings.GetByIDTx(ctx, tx, in.BookingID)
	if err != nil {
		return model.Contract{}, "", err
	}

	contract := model.Contract{
		BookingID:        in.BookingID,
		ContractType:     in.ContractType,
		AssignedToUserID: in.PerformerUserID,
		Title:            in.Title,
		Content:          in.Content,
		Metadata:         in.Metadata,
		Status:           in.Status,
		CreatedByUserID:  in.CreatedByUserID,
	}
	action, err := o.contracts.UpsertTx(ctx, tx, &contract)
	if err != nil {
		return model.Contract{}, "", err
	}

	signers, err := o.deriveSigners(ctx, &b, contract.ID, in.PerformerUserID, in.ContractType)
	if err != nil {
		return model.Contract{}, "", err
	}
	for i := range signers {
		if err := o.signatures.UpsertPendingTx(ctx, tx, &signers[i]); err != nil {
			return model.Contract{}, "", err
		}
	}

	if err := o.bookings.SetContractsGeneratedTx(ctx, tx, b.ID, stepContractsGenerated); err != nil {
		return model.Contract{}, "", err
	}
	// Re-issuance resets signer rows to pending, so any previously
	// recorded completion no longer holds.
	if b.AllSignaturesCompleted {
		if err := o.bookings.SetAllSignaturesCompletedTx(ctx, tx, b.ID, false); err != nil {
			return model.Contract{}, "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Contract{}, "", err
	}
	committed = true

	o.log.Info().
		Uint64("booking_id", b.ID).
		Uint64("contract_id", contract.ID).
		Str("contract_type", in.ContractType).
		Str("action", action).
		Msg("contract generated")
	return contract, action, nil
}

// deriveSigners builds the canonical signer set for a contract type:
// booking agreements are signed by {booker, superadmin}, performance
// contracts by {performer, superadmin}.  The booker signature is keyed
// by whatever identity is attached to the booking: the registered
// booker's account, or the guest contact fields.
func (o *ContractOrchestrator) deriveSigners(ctx context.Context, b *model.Booking, contractID, performerID uint64, contractType string) ([]model.ContractSignature, error) {
	superadmin, err := o.users.FirstSuperadmin(ctx)
	if err != nil {
		return nil, err
	}
	saID := superadmin.ID
	signers := []model.ContractSignature{{
		ContractID:   contractID,
		SignerType:   model.SignerTypeSuperadmin,
		SignerUserID: &saID,
		SignerName:   superadmin.FullName,
		SignerEmail:  &superadmin.Email,
	}}

	switch contractType {
	case model.ContractTypeBookingAgreement:
		booker := model.ContractSignature{ContractID: contractID, SignerType: model.SignerTypeBooker}
		if b.BookerUserID != nil {
			u, err := o.users.GetByID(ctx, *b.BookerUserID)
			if err != nil {
				return nil, err
			}
			id := u.ID
			booker.SignerUserID = &id
			booker.SignerName = u.FullName
			booker.SignerEmail = &u.Email
		} else {
			if b.GuestName == nil || *b.GuestName == "" {
				return nil, ErrInvalidInput
			}
			booker.SignerName = *b.GuestName
			booker.SignerEmail = b.GuestEmail
		}
		signers = append(signers, booker)
	case model.ContractTypePerformanceContract:
		// The performer is passed explicitly rather than derived from
		// the booking's primary artist: a performance contract may
		// target any assigned musician, not only the headliner.
		u, err := o.users.GetByID(ctx, performerID)
		if err != nil {
			return nil, err
		}
		id := u.ID
		signers = append(signers, model.ContractSignature{
			ContractID:   contractID,
			SignerType:   model.SignerTypePerformer,
			SignerUserID: &id,
			SignerName:   u.FullName,
			SignerEmail:  &u.Email,
		})
	}
	return signers, nil
}

// SignInput identifies who is signing what.  CallerIsAdmin lets
// admins capture the superadmin row and, on guest bookings, the
// booker row during assisted signing; everyone else may only sign a
// row bound to their own user id.
type SignInput struct {
	ContractID    uint64
	SignerType    string
	SignatureData string
	CallerUserID  uint64
	CallerIsAdmin bool
}

// Sign records a signature on the (contractID, signerType) row and
// applies the configured status policy to the parent contract.  When
// the booking's last pending signature is captured the completion
// flag flips and a ContractsCompletedEvent is published.  Signing a
// signer role that was never provisioned fails with
// ErrSignatureNotFound.
func (o *ContractOrchestrator) Sign(ctx context.Context, in SignInput) (model.Contract, bool, error) {
	contractID, signerType, signatureData := in.ContractID, in.SignerType, in.SignatureData
	if contractID == 0 || signerType == "" || signatureData == "" {
		return model.Contract{}, false, ErrInvalidInput
	}
	switch signerType {
	case model.SignerTypeBooker, model.SignerTypeSuperadmin, model.SignerTypePerformer:
	default:
		return model.Contract{}, false, ErrInvalidInput
	}
	if err := o.authorizeSigner(ctx, in); err != nil {
		return model.Contract{}, false, err
	}

	tx, err := o.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Contract{}, false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	contract, err := o.contracts.GetByIDTx(ctx, tx, contractID)
	if err != nil {
		return model.Contract{}, false, err
	}
	if err := o.signatures.SignTx(ctx, tx, contractID, signerType, signatureData); err != nil {
		return model.Contract{}, false, err
	}

	pending, err := o.signatures.CountPendingByContractTx(ctx, tx, contractID)
	if err != nil {
		return model.Contract{}, false, err
	}
	if o.policy == SignPolicyFirstSignature || pending == 0 {
		if contract.Status != model.ContractStatusSigned {
			if err := o.contracts.UpdateStatusTx(ctx, tx, contractID, model.ContractStatusSigned); err != nil {
				return model.Contract{}, false, err
			}
			contract.Status = model.ContractStatusSigned
		}
	}

	bookingPending, err := o.signatures.CountPendingByBookingTx(ctx, tx, contract.BookingID)
	if err != nil {
		return model.Contract{}, false, err
	}
	completed := bookingPending == 0
	if completed {
		if err := o.bookings.SetAllSignaturesCompletedTx(ctx, tx, contract.BookingID, true); err != nil {
			return model.Contract{}, false, err
		}
		if err := o.bookings.SetContractsGeneratedTx(ctx, tx, contract.BookingID, stepSignaturesCompleted); err != nil {
			return model.Contract{}, false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Contract{}, false, err
	}
	committed = true

	if completed {
		o.publishCompleted(ctx, contract.BookingID)
	}
	return contract, completed, nil
}

// authorizeSigner checks the caller against the provisioned signer
// row.  A row bound to a user id may be signed by that user or, for
// the superadmin row, by any admin; an unbound row (guest booker) may
// be captured by an admin only.
func (o *ContractOrchestrator) authorizeSigner(ctx context.Context, in SignInput) error {
	rows, err := o.signatures.ListByContract(ctx, in.ContractID)
	if err != nil {
		return err
	}
	for _, s := range rows {
		if s.SignerType != in.SignerType {
			continue
		}
		if s.SignerUserID == nil {
			if in.CallerIsAdmin {
				return nil
			}
			return repository.ErrForbidden
		}
		if *s.SignerUserID == in.CallerUserID {
			return nil
		}
		if in.SignerType == model.SignerTypeSuperadmin && in.CallerIsAdmin {
			return nil
		}
		return repository.ErrForbidden
	}
	return repository.ErrSignatureNotFound
}

// publishCompleted emits the completion event after commit.  Failures
// are logged and dropped: the database is the source of truth and the
// event stream is best-effort.
func (o *ContractOrchestrator) publishCompleted(ctx context.Context, bookingID uint64) {
	if o.events == nil {
		return
	}
	b, err := o.bookings.GetByID(ctx, bookingID)
	if err != nil {
		o.log.Error().Err(err).Uint64("booking_id", bookingID).Msg("load booking for completion event failed")
		return
	}
	contracts, err := o.contracts.ListByBooking(ctx, bookingID)
	if err != nil {
		o.log.Error().Err(err).Uint64("booking_id", bookingID).Msg("list contracts for completion event failed")
		return
	}
	ev := queue.ContractsCompletedEvent{
		EventID:       uuid.NewString(),
		BookingID:     bookingID,
		EventName:     b.EventName,
		ContractCount: len(contracts),
		CompletedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := o.events.PublishContractsCompleted(ctx, ev); err != nil {
		o.log.Warn().Err(err).Uint64("booking_id", bookingID).Msg("publish contracts completed failed")
	}
}

// Checklist returns every signature row for every contract under a
// booking for display as a consolidated signing checklist.
func (o *ContractOrchestrator) Checklist(ctx context.Context, bookingID uint64) ([]model.SignatureChecklistItem, error) {
	if _, err := o.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return o.signatures.ListByBooking(ctx, bookingID)
}
