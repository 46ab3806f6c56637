package repository

import (
	"context"
	"database/sql"

	"github.com/encorehq/booking-platform/internal/model"
)

// SignatureRepo provides access to contract_signatures.  Signature
// rows are keyed by (contract_id, signer_type); provisioning uses an
// atomic upsert so re-issuing a contract resets existing rows to
// pending instead of duplicating them.
type SignatureRepo struct {
	db *sql.DB
}

func NewSignatureRepo(db *sql.DB) *SignatureRepo { return &SignatureRepo{db: db} }

// UpsertPendingTx provisions one required signer row.  When the
// (contract_id, signer_type) row already exists it is reset to
// pending with its captured signature cleared, supporting contract
// re-issuance; otherwise a fresh pending row is inserted.
func (r *SignatureRepo) UpsertPendingTx(ctx context.Context, tx *sql.Tx, s *model.ContractSignature) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO contract_signatures
		   (contract_id, signer_type, signer_user_id, signer_name, signer_email, status)
		 VALUES (?,?,?,?,?,'pending')
		 ON DUPLICATE KEY UPDATE
		   id = LAST_INSERT_ID(id),
		   signer_user_id = VALUES(signer_user_id),
		   signer_name = VALUES(signer_name),
		   signer_email = VALUES(signer_email),
		   signature_data = NULL,
		   status = 'pending',
		   signed_at = NULL`,
		s.ContractID, s.SignerType, s.SignerUserID, s.SignerName, s.SignerEmail)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	s.Status = model.SignatureStatusPending
	s.SignatureData = nil
	s.SignedAt = nil
	return nil
}

// SignTx records a signature on the (contractID, signerType) row.
// Signing a signer role that was never provisioned is an error, not a
// silent no-op: zero matched rows yields ErrSignatureNotFound.
func (r *SignatureRepo) SignTx(ctx context.Context, tx *sql.Tx, contractID uint64, signerType, signatureData string) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE contract_signatures
		 SET signature_data=?, status='signed', signed_at=UTC_TIMESTAMP()
		 WHERE contract_id=? AND signer_type=?`,
		signatureData, contractID, signerType)
	if err != nil {
		return err
	}
	return mustMatch(res, ErrSignatureNotFound)
}

// ListByContract returns the signer rows of one contract.
func (r *SignatureRepo) ListByContract(ctx context.Context, contractID uint64) ([]model.ContractSignature, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, contract_id, signer_type, signer_user_id, signer_name, signer_email,
		        signature_data, status, signed_at, created_at
		 FROM contract_signatures WHERE contract_id=? ORDER BY signer_type`, contractID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.ContractSignature{}
	for rows.Next() {
		var s model.ContractSignature
		if err := rows.Scan(&s.ID, &s.ContractID, &s.SignerType, &s.SignerUserID, &s.SignerName,
			&s.SignerEmail, &s.SignatureData, &s.Status, &s.SignedAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByBooking returns every signature row for every contract under
// a booking, joined with the contract's type and title, for the
// consolidated signing checklist.
func (r *SignatureRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.SignatureChecklistItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT cs.id, cs.contract_id, cs.signer_type, cs.signer_user_id, cs.signer_name,
		        cs.signer_email, cs.signature_data, cs.status, cs.signed_at, cs.created_at,
		        c.contract_type, c.title
		 FROM contract_signatures cs
		 JOIN contracts c ON c.id = cs.contract_id
		 WHERE c.booking_id = ?
		 ORDER BY c.contract_type, c.id, cs.signer_type`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.SignatureChecklistItem{}
	for rows.Next() {
		var it model.SignatureChecklistItem
		if err := rows.Scan(&it.ID, &it.ContractID, &it.SignerType, &it.SignerUserID, &it.SignerName,
			&it.SignerEmail, &it.SignatureData, &it.Status, &it.SignedAt, &it.CreatedAt,
			&it.ContractType, &it.ContractTitle); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// CountPendingByContractTx counts unsigned signer rows on a contract.
func (r *SignatureRepo) CountPendingByContractTx(ctx context.Context, tx *sql.Tx, contractID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contract_signatures WHERE contract_id=? AND status='pending'",
		contractID).Scan(&n)
	return n, err
}

// CountPendingByBookingTx counts unsigned signer rows across every
// contract of a booking; zero means the signing process is complete
// and downstream payment flows are unblocked.
func (r *SignatureRepo) CountPendingByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) (int, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contract_signatures cs
		 JOIN contracts c ON c.id = cs.contract_id
		 WHERE c.booking_id=? AND cs.status='pending'`, bookingID).Scan(&n)
	return n, err
}
