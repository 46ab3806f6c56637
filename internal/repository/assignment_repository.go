package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/encorehq/booking-platform/internal/model"
)

// AssignmentRepo provides data access to booking_assignment_members.
// Members link users to bookings in a role-in-booking with an optional
// selected instrument; removal is a soft status flip so assignment
// history survives for dispute resolution.
type AssignmentRepo struct {
	db *sql.DB
}

func NewAssignmentRepo(db *sql.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

// CreateTx inserts an assignment member within an existing
// transaction.  AssignedGroup must already carry the instrument's
// mixer group when an instrument was selected; this repository does
// not re-derive it.  Duplicate (booking, user, role_in_booking) rows
// are rejected as ErrConflict via the table's unique key.
func (r *AssignmentRepo) CreateTx(ctx context.Context, tx *sql.Tx, m *model.AssignmentMember) error {
	if m.AssignmentType == "" {
		m.AssignmentType = model.AssignmentTypeManual
	}
	if m.Status == "" {
		m.Status = model.AssignmentStatusActive
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO booking_assignment_members
		   (booking_id, user_id, role_in_booking, assignment_type, status,
		    selected_talent_id, is_main_booked_talent, assigned_group,
		    assigned_channel_pair, assigned_channel, assigned_by)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		m.BookingID, m.UserID, m.RoleInBooking, m.AssignmentType, m.Status,
		m.SelectedTalentID, m.IsMainBookedTalent, m.AssignedGroup,
		m.AssignedChannelPair, m.AssignedChannel, m.AssignedBy)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return tx.QueryRowContext(ctx,
		"SELECT assigned_at, updated_at FROM booking_assignment_members WHERE id=?", m.ID).
		Scan(&m.AssignedAt, &m.UpdatedAt)
}

// ListByBooking returns the booking's assignment rows enriched with
// the member's identity, role name and instrument detail.  Main booked
// talent sorts first; removed members are excluded unless
// includeRemoved is set.
func (r *AssignmentRepo) ListByBooking(ctx context.Context, bookingID uint64, includeRemoved bool) ([]model.AssignmentDetail, error) {
	q := `SELECT am.id, am.booking_id, am.user_id, am.role_in_booking, am.assignment_type,
	             am.status, am.selected_talent_id, am.is_main_booked_talent, am.assigned_group,
	             am.assigned_channel_pair, am.assigned_channel, am.assigned_by, am.assigned_at, am.updated_at,
	             u.full_name, COALESCE(mu.stage_name, ar.stage_name) AS stage_name,
	             ro.name, i.name, i.player_name, i.mixer_group
	      FROM booking_assignment_members am
	      JOIN users u ON u.id = am.user_id
	      JOIN roles ro ON ro.id = am.role_in_booking
	      LEFT JOIN musicians mu ON mu.user_id = am.user_id
	      LEFT JOIN artists ar ON ar.user_id = am.user_id
	      LEFT JOIN all_instruments i ON i.id = am.selected_talent_id
	      WHERE am.booking_id = ?`
	if !includeRemoved {
		q += " AND am.status <> 'removed'"
	}
	q += " ORDER BY am.is_main_booked_talent DESC, am.assigned_at"

	rows, err := r.db.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.AssignmentDetail{}
	for rows.Next() {
		var d model.AssignmentDetail
		var instName, playerName, mixerGroup sql.NullString
		if err := rows.Scan(&d.ID, &d.BookingID, &d.UserID, &d.RoleInBooking, &d.AssignmentType,
			&d.Status, &d.SelectedTalentID, &d.IsMainBookedTalent, &d.AssignedGroup,
			&d.AssignedChannelPair, &d.AssignedChannel, &d.AssignedBy, &d.AssignedAt, &d.UpdatedAt,
			&d.FullName, &d.StageName, &d.RoleName, &instName, &playerName, &mixerGroup); err != nil {
			return nil, err
		}
		if instName.Valid {
			d.InstrumentName = &instName.String
		}
		if playerName.Valid {
			d.PlayerName = &playerName.String
		}
		if mixerGroup.Valid {
			d.MixerGroup = &mixerGroup.String
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Remove marks an assignment as removed.  The row stays in place; a
// second removal of the same row reports ErrAssignmentNotFound.
func (r *AssignmentRepo) Remove(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE booking_assignment_members SET status='removed', updated_at=UTC_TIMESTAMP()
		 WHERE id=? AND status <> 'removed'`, id)
	if err != nil {
		return err
	}
	return mustMatch(res, ErrAssignmentNotFound)
}

// GetByID returns one assignment row or ErrAssignmentNotFound.
func (r *AssignmentRepo) GetByID(ctx context.Context, id uint64) (model.AssignmentMember, error) {
	var m model.AssignmentMember
	err := r.db.QueryRowContext(ctx,
		`SELECT id, booking_id, user_id, role_in_booking, assignment_type, status,
		        selected_talent_id, is_main_booked_talent, assigned_group,
		        assigned_channel_pair, assigned_channel, assigned_by, assigned_at, updated_at
		 FROM booking_assignment_members WHERE id=? LIMIT 1`, id).
		Scan(&m.ID, &m.BookingID, &m.UserID, &m.RoleInBooking, &m.AssignmentType, &m.Status,
			&m.SelectedTalentID, &m.IsMainBookedTalent, &m.AssignedGroup,
			&m.AssignedChannelPair, &m.AssignedChannel, &m.AssignedBy, &m.AssignedAt, &m.UpdatedAt)
	if err == sql.ErrNoRows {
		return m, ErrAssignmentNotFound
	}
	return m, err
}
