package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/encorehq/booking-platform/internal/model"
)

// Upsert actions reported by ContractRepo.Upsert so callers can
// branch on whether a generation call re-issued an existing contract.
const (
	UpsertInserted = "inserted"
	UpsertUpdated  = "updated"
)

// ContractRepo provides access to the contracts table.  Contracts are
// keyed by the natural key (booking_id, contract_type,
// assigned_to_user_id), where assigned_to_user_id is zero for booking
// agreements and the performer's user ID for performance contracts,
// and written with a single atomic upsert so concurrent generators
// cannot race a check-then-act sequence into duplicate rows.
type ContractRepo struct {
	db *sql.DB
}

func NewContractRepo(db *sql.DB) *ContractRepo { return &ContractRepo{db: db} }

// UpsertTx inserts the contract or, when a row with the same natural
// key exists, updates its title, content, metadata and status.  The
// contract's ID is populated either way via the LAST_INSERT_ID trick,
// and the returned action distinguishes a fresh insert from a
// re-generation.
func (r *ContractRepo) UpsertTx(ctx context.Context, tx *sql.Tx, c *model.Contract) (string, error) {
	if c.Status == "" {
		c.Status = model.ContractStatusDraft
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO contracts
		   (booking_id, contract_type, assigned_to_user_id, title, content, metadata, status, created_by_user_id)
		 VALUES (?,?,?,?,?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   id = LAST_INSERT_ID(id),
		   title = VALUES(title),
		   content = VALUES(content),
		   metadata = VALUES(metadata),
		   status = VALUES(status),
		   updated_at = UTC_TIMESTAMP()`,
		c.BookingID, c.ContractType, c.AssignedToUserID, c.Title,
		[]byte(c.Content), nullableJSON(c.Metadata), c.Status, c.CreatedByUserID)
	if err != nil {
		return "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", err
	}
	c.ID = uint64(id)
	// MySQL reports 1 affected row for an insert and 2 for an update
	// through ON DUPLICATE KEY (0 when the update was a no-op).
	n, err := res.RowsAffected()
	if err != nil {
		return "", err
	}
	action := UpsertUpdated
	if n == 1 {
		action = UpsertInserted
	}
	return action, nil
}

func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

const contractColumns = `id, booking_id, contract_type, status, title, content, metadata,
	created_by_user_id, assigned_to_user_id, created_at, updated_at`

func scanContract(sc interface{ Scan(...interface{}) error }) (model.Contract, error) {
	var c model.Contract
	var content, meta []byte
	err := sc.Scan(&c.ID, &c.BookingID, &c.ContractType, &c.Status, &c.Title, &content, &meta,
		&c.CreatedByUserID, &c.AssignedToUserID, &c.CreatedAt, &c.UpdatedAt)
	c.Content = content
	c.Metadata = meta
	return c, err
}

// GetByID returns one contract or ErrContractNotFound.
func (r *ContractRepo) GetByID(ctx context.Context, id uint64) (model.Contract, error) {
	c, err := scanContract(r.db.QueryRowContext(ctx,
		"SELECT "+contractColumns+" FROM contracts WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrContractNotFound
	}
	return c, err
}

// GetByIDTx is GetByID inside an existing transaction.
func (r *ContractRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Contract, error) {
	c, err := scanContract(tx.QueryRowContext(ctx,
		"SELECT "+contractColumns+" FROM contracts WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrContractNotFound
	}
	return c, err
}

// ListByBooking returns all contracts under a booking, agreements
// before performance contracts.
func (r *ContractRepo) ListByBooking(ctx context.Context, bookingID uint64) ([]model.Contract, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+contractColumns+" FROM contracts WHERE booking_id=? ORDER BY contract_type, assigned_to_user_id",
		bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Contract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateStatusTx transitions a contract's status inside an existing
// transaction.
func (r *ContractRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
	res, err := tx.ExecContext(ctx,
		"UPDATE contracts SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=?", status, id)
	if err != nil {
		return err
	}
	return mustMatch(res, ErrContractNotFound)
}
