package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/encorehq/booking-platform/internal/model"
)

// BookingRepo provides CRUD operations for bookings and their event
// dates.  Bookings are the aggregate root of the whole workflow: the
// assignment, contract and rate subsystems all hang off a booking ID.
// Timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span multiple repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a booking within an existing transaction and
// populates the generated ID and timestamps on the provided record.
// The caller must commit or roll back.  For guest bookings
// BookerUserID is nil and the guest contact fields must be set.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	if b.Status == "" {
		b.Status = model.BookingStatusPending
	}
	if b.CurrentWorkflowStep == 0 {
		b.CurrentWorkflowStep = 1
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings
		   (booker_user_id, primary_artist_user_id, event_name, event_type,
		    venue_name, venue_address, requirements, status, total_budget_cents,
		    guest_name, guest_email, guest_phone, is_guest_booking, current_workflow_step)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		b.BookerUserID, b.PrimaryArtistUserID, b.EventName, b.EventType,
		b.VenueName, b.VenueAddress, b.Requirements, b.Status, b.TotalBudgetCents,
		b.GuestName, b.GuestEmail, b.GuestPhone, b.IsGuestBooking, b.CurrentWorkflowStep)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM bookings WHERE id=?", b.ID).
		Scan(&b.CreatedAt, &b.UpdatedAt)
}

// CreateDatesTx bulk-inserts the booking's event dates.  An empty
// slice is a no-op.
func (r *BookingRepo) CreateDatesTx(ctx context.Context, tx *sql.Tx, bookingID uint64, dates []model.BookingDate) error {
	if len(dates) == 0 {
		return nil
	}
	query := "INSERT INTO booking_dates (booking_id, event_date, start_time, end_time) VALUES "
	args := make([]interface{}, 0, len(dates)*4)
	for i, d := range dates {
		if i > 0 {
			query += ","
		}
		query += "(?,?,?,?)"
		args = append(args, bookingID, d.EventDate, d.StartTime, d.EndTime)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

const bookingColumns = `id, booker_user_id, primary_artist_user_id, event_name, event_type,
	venue_name, venue_address, requirements, status, total_budget_cents, final_price_cents,
	guest_name, guest_email, guest_phone, is_guest_booking,
	assigned_admin_id, admin_approved_at,
	contracts_generated, all_signatures_completed, payment_completed, receipt_generated,
	current_workflow_step, created_at, updated_at`

func scanBooking(sc interface{ Scan(...interface{}) error }) (model.Booking, error) {
	var b model.Booking
	err := sc.Scan(&b.ID, &b.BookerUserID, &b.PrimaryArtistUserID, &b.EventName, &b.EventType,
		&b.VenueName, &b.VenueAddress, &b.Requirements, &b.Status, &b.TotalBudgetCents, &b.FinalPriceCents,
		&b.GuestName, &b.GuestEmail, &b.GuestPhone, &b.IsGuestBooking,
		&b.AssignedAdminID, &b.AdminApprovedAt,
		&b.ContractsGenerated, &b.AllSignaturesCompleted, &b.PaymentCompleted, &b.ReceiptGenerated,
		&b.CurrentWorkflowStep, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// GetByID returns one booking or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBookingNotFound
	}
	return b, err
}

// GetByIDTx is GetByID inside an existing transaction.
func (r *BookingRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
	b, err := scanBooking(tx.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrBookingNotFound
	}
	return b, err
}

// Dates returns the event dates of a booking in chronological order.
func (r *BookingRepo) Dates(ctx context.Context, bookingID uint64) ([]model.BookingDate, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, booking_id, event_date, start_time, end_time FROM booking_dates WHERE booking_id=? ORDER BY event_date",
		bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.BookingDate{}
	for rows.Next() {
		var d model.BookingDate
		if err := rows.Scan(&d.ID, &d.BookingID, &d.EventDate, &d.StartTime, &d.EndTime); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByBooker returns all bookings created by a registered booker,
// newest first.
func (r *BookingRepo) ListByBooker(ctx context.Context, bookerID uint64) ([]model.Booking, error) {
	return r.list(ctx, "WHERE booker_user_id=?", bookerID)
}

// ListByPrimaryArtist returns bookings targeting a given artist.
func (r *BookingRepo) ListByPrimaryArtist(ctx context.Context, artistID uint64) ([]model.Booking, error) {
	return r.list(ctx, "WHERE primary_artist_user_id=?", artistID)
}

// ListAll returns every booking, optionally filtered by status.
func (r *BookingRepo) ListAll(ctx context.Context, status string) ([]model.Booking, error) {
	if status == "" {
		return r.list(ctx, "")
	}
	return r.list(ctx, "WHERE status=?", status)
}

func (r *BookingRepo) list(ctx context.Context, where string, args ...interface{}) ([]model.Booking, error) {
	q := "SELECT " + bookingColumns + " FROM bookings " + where + " ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// UpdateStatus transitions a booking's lifecycle status.  When the new
// status is approved or confirmed the approval timestamp and the
// acting admin are recorded as well.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uint64, status string, adminID *uint64) error {
	var res sql.Result
	var err error
	switch status {
	case model.BookingStatusApproved, model.BookingStatusConfirmed:
		res, err = r.db.ExecContext(ctx,
			`UPDATE bookings SET status=?, assigned_admin_id=COALESCE(?, assigned_admin_id),
			   admin_approved_at=UTC_TIMESTAMP(), updated_at=UTC_TIMESTAMP() WHERE id=?`,
			status, adminID, id)
	default:
		res, err = r.db.ExecContext(ctx,
			"UPDATE bookings SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=?", status, id)
	}
	if err != nil {
		return err
	}
	return mustMatch(res, ErrBookingNotFound)
}

// SetFinalPrice records the admin-confirmed price for the engagement.
func (r *BookingRepo) SetFinalPrice(ctx context.Context, id uint64, cents int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET final_price_cents=?, updated_at=UTC_TIMESTAMP() WHERE id=?", cents, id)
	if err != nil {
		return err
	}
	return mustMatch(res, ErrBookingNotFound)
}

// SetContractsGeneratedTx marks the booking as having contracts and
// advances the workflow step when the given step is further along.
func (r *BookingRepo) SetContractsGeneratedTx(ctx context.Context, tx *sql.Tx, id uint64, step uint32) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE bookings SET contracts_generated=1,
		   current_workflow_step=GREATEST(current_workflow_step, ?),
		   updated_at=UTC_TIMESTAMP() WHERE id=?`, step, id)
	return err
}

// SetAllSignaturesCompletedTx flips the completion flag that unblocks
// the downstream payment flow.
func (r *BookingRepo) SetAllSignaturesCompletedTx(ctx context.Context, tx *sql.Tx, id uint64, completed bool) error {
	_, err := tx.ExecContext(ctx,
		"UPDATE bookings SET all_signatures_completed=?, updated_at=UTC_TIMESTAMP() WHERE id=?",
		completed, id)
	return err
}

// SetPaymentCompleted is written by the payment webhook route once the
// external processor confirms funds.
func (r *BookingRepo) SetPaymentCompleted(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE bookings SET payment_completed=1, updated_at=UTC_TIMESTAMP() WHERE id=?", id)
	if err != nil {
		return err
	}
	return mustMatch(res, ErrBookingNotFound)
}

// mustMatch converts a zero-row update into the given sentinel.  MySQL
// reports changed rows, so an update writing identical values also
// yields zero; every updater above touches updated_at to avoid that.
func mustMatch(res sql.Result, sentinel error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel
	}
	return nil
}
