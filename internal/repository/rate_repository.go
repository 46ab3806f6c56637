package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/encorehq/booking-platform/internal/model"
)

// RateRepo provides access to booking_musicians, the per-booking rate
// negotiation attached to each assigned musician.  Rows are keyed by
// (booking_id, musician_user_id).
type RateRepo struct {
	db *sql.DB
}

func NewRateRepo(db *sql.DB) *RateRepo { return &RateRepo{db: db} }

// UpsertAdminRate records the admin-set rate for a musician on a
// booking, creating the relation row when the musician was assigned
// without one.  Setting a rate always moves the negotiation to
// admin_set and clears any previous response or counter so a re-set
// rate starts a fresh round.
func (r *RateRepo) UpsertAdminRate(ctx context.Context, bookingID, musicianID, adminID uint64, rateCents int64, notes *string, originalCurrency string, originalAmountCents *int64) error {
	if originalCurrency == "" {
		originalCurrency = "USD"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO booking_musicians
		   (booking_id, musician_user_id, admin_set_rate_cents, original_currency, original_amount_cents,
		    rate_status, rate_set_by_admin_id, rate_notes, rate_set_at)
		 VALUES (?,?,?,?,?,'admin_set',?,?,UTC_TIMESTAMP())
		 ON DUPLICATE KEY UPDATE
		   admin_set_rate_cents = VALUES(admin_set_rate_cents),
		   original_currency = VALUES(original_currency),
		   original_amount_cents = VALUES(original_amount_cents),
		   rate_status = 'admin_set',
		   rate_set_by_admin_id = VALUES(rate_set_by_admin_id),
		   rate_notes = VALUES(rate_notes),
		   rate_set_at = UTC_TIMESTAMP(),
		   musician_response = NULL,
		   response_message = NULL,
		   responded_at = NULL,
		   counter_amount_cents = NULL,
		   counter_currency = NULL,
		   counter_usd_cents = NULL,
		   counter_message = NULL,
		   counter_at = NULL,
		   admin_counter_response = NULL,
		   admin_counter_response_message = NULL,
		   admin_counter_response_at = NULL`,
		bookingID, musicianID, rateCents, originalCurrency, originalAmountCents, adminID, notes)
	return err
}

const rateColumns = `id, booking_id, musician_user_id, ideal_rate_cents, admin_set_rate_cents,
	original_currency, original_amount_cents, confirmed_fee_cents, rate_status,
	rate_set_by_admin_id, rate_notes, musician_response, response_message,
	counter_amount_cents, counter_currency, counter_usd_cents, counter_message, counter_at,
	admin_counter_response, admin_counter_response_message, admin_counter_response_at,
	rate_set_at, responded_at, assigned_at`

func scanRate(sc interface{ Scan(...interface{}) error }) (model.MusicianRate, error) {
	var m model.MusicianRate
	err := sc.Scan(&m.ID, &m.BookingID, &m.MusicianUserID, &m.IdealRateCents, &m.AdminSetRateCents,
		&m.OriginalCurrency, &m.OriginalAmountCents, &m.ConfirmedFeeCents, &m.RateStatus,
		&m.RateSetByAdminID, &m.RateNotes, &m.MusicianResponse, &m.ResponseMessage,
		&m.CounterAmountCents, &m.CounterCurrency, &m.CounterUSDCents, &m.CounterMessage, &m.CounterAt,
		&m.AdminCounterResponse, &m.AdminCounterResponseMessage, &m.AdminCounterResponseAt,
		&m.RateSetAt, &m.RespondedAt, &m.AssignedAt)
	return m, err
}

// Get returns the rate row for one musician on one booking, or
// ErrRateNotFound.
func (r *RateRepo) Get(ctx context.Context, bookingID, musicianID uint64) (model.MusicianRate, error) {
	m, err := scanRate(r.db.QueryRowContext(ctx,
		"SELECT "+rateColumns+" FROM booking_musicians WHERE booking_id=? AND musician_user_id=? LIMIT 1",
		bookingID, musicianID))
	if errors.Is(err, sql.ErrNoRows) {
		return m, ErrRateNotFound
	}
	return m, err
}

// RecordResponse writes the musician's response.  The response value
// is written straight into rate_status (response and status share one
// vocabulary); counter fields are populated only for counter offers.
// Guarded on rate_status='admin_set' so a response can only follow an
// admin-set rate and cannot overwrite a settled negotiation.
func (r *RateRepo) RecordResponse(ctx context.Context, bookingID, musicianID uint64, response string, message *string, counterAmountCents *int64, counterCurrency *string, counterUSDCents *int64, counterMessage *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE booking_musicians
		 SET rate_status = ?,
		     musician_response = ?,
		     response_message = ?,
		     responded_at = UTC_TIMESTAMP(),
		     confirmed_fee_cents = CASE WHEN ? = 'accepted' THEN admin_set_rate_cents ELSE confirmed_fee_cents END,
		     counter_amount_cents = ?,
		     counter_currency = ?,
		     counter_usd_cents = ?,
		     counter_message = ?,
		     counter_at = CASE WHEN ? = 'counter_offer' THEN UTC_TIMESTAMP() ELSE counter_at END
		 WHERE booking_id=? AND musician_user_id=? AND rate_status='admin_set'`,
		response, response, message, response,
		counterAmountCents, counterCurrency, counterUSDCents, counterMessage, response,
		bookingID, musicianID)
	if err != nil {
		return err
	}
	return mustMatch(res, ErrRateNotFound)
}

// RecordAdminCounterResponse records the admin's answer to a counter
// offer.  Accepting settles the negotiation at the counter's USD
// equivalent; declining leaves the row countered until the admin sets
// a new rate, which re-opens the round via UpsertAdminRate.
func (r *RateRepo) RecordAdminCounterResponse(ctx context.Context, bookingID, musicianID uint64, response string, message *string) error {
	q := `UPDATE booking_musicians
	      SET admin_counter_response = ?,
	          admin_counter_response_message = ?,
	          admin_counter_response_at = UTC_TIMESTAMP()`
	if response == model.CounterResponseAccepted {
		q += `, rate_status = 'accepted',
		      confirmed_fee_cents = COALESCE(counter_usd_cents, counter_amount_cents)`
	}
	q += ` WHERE booking_id=? AND musician_user_id=? AND rate_status='counter_offer'`
	res, err := r.db.ExecContext(ctx, q, response, message, bookingID, musicianID)
	if err != nil {
		return err
	}
	return mustMatch(res, ErrRateNotFound)
}

// ListByMusician returns the musician's negotiations across every
// booking they are attached to, joined with booking and artist
// context, newest first.
func (r *RateRepo) ListByMusician(ctx context.Context, musicianID uint64) ([]model.MusicianRateDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT bm.id, bm.booking_id, bm.musician_user_id, bm.ideal_rate_cents, bm.admin_set_rate_cents,
		        bm.original_currency, bm.original_amount_cents, bm.confirmed_fee_cents, bm.rate_status,
		        bm.rate_set_by_admin_id, bm.rate_notes, bm.musician_response, bm.response_message,
		        bm.counter_amount_cents, bm.counter_currency, bm.counter_usd_cents, bm.counter_message, bm.counter_at,
		        bm.admin_counter_response, bm.admin_counter_response_message, bm.admin_counter_response_at,
		        bm.rate_set_at, bm.responded_at, bm.assigned_at,
		        b.event_name, b.event_type, b.status, ar.stage_name
		 FROM booking_musicians bm
		 JOIN bookings b ON b.id = bm.booking_id
		 LEFT JOIN artists ar ON ar.user_id = b.primary_artist_user_id
		 WHERE bm.musician_user_id = ?
		 ORDER BY bm.assigned_at DESC`, musicianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.MusicianRateDetail{}
	for rows.Next() {
		var d model.MusicianRateDetail
		if err := rows.Scan(&d.ID, &d.BookingID, &d.MusicianUserID, &d.IdealRateCents, &d.AdminSetRateCents,
			&d.OriginalCurrency, &d.OriginalAmountCents, &d.ConfirmedFeeCents, &d.RateStatus,
			&d.RateSetByAdminID, &d.RateNotes, &d.MusicianResponse, &d.ResponseMessage,
			&d.CounterAmountCents, &d.CounterCurrency, &d.CounterUSDCents, &d.CounterMessage, &d.CounterAt,
			&d.AdminCounterResponse, &d.AdminCounterResponseMessage, &d.AdminCounterResponseAt,
			&d.RateSetAt, &d.RespondedAt, &d.AssignedAt,
			&d.EventName, &d.EventType, &d.BookingStatus, &d.ArtistStageName); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
