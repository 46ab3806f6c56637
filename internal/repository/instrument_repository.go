package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/encorehq/booking-platform/internal/model"
)

// InstrumentRepo reads the all_instruments reference table.  The
// table is static-ish data maintained by admins; the assignment
// engine reads it to tag assignments with a mixer group.
type InstrumentRepo struct {
	db *sql.DB
}

func NewInstrumentRepo(db *sql.DB) *InstrumentRepo { return &InstrumentRepo{db: db} }

// ListActive returns the active instruments ordered by name.
func (r *InstrumentRepo) ListActive(ctx context.Context) ([]model.Instrument, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, player_name, mixer_group, is_active FROM all_instruments WHERE is_active=1 ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Instrument{}
	for rows.Next() {
		var in model.Instrument
		if err := rows.Scan(&in.ID, &in.Name, &in.PlayerName, &in.MixerGroup, &in.IsActive); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

// GetByID returns one instrument or ErrInstrumentNotFound.
func (r *InstrumentRepo) GetByID(ctx context.Context, id uint64) (model.Instrument, error) {
	var in model.Instrument
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, player_name, mixer_group, is_active FROM all_instruments WHERE id=? LIMIT 1", id).
		Scan(&in.ID, &in.Name, &in.PlayerName, &in.MixerGroup, &in.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return in, ErrInstrumentNotFound
	}
	return in, err
}

// GetByIDTx is GetByID inside an existing transaction, used when the
// mixer group must be read and copied in the same unit of work as the
// assignment insert.
func (r *InstrumentRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Instrument, error) {
	var in model.Instrument
	err := tx.QueryRowContext(ctx,
		"SELECT id, name, player_name, mixer_group, is_active FROM all_instruments WHERE id=? LIMIT 1", id).
		Scan(&in.ID, &in.Name, &in.PlayerName, &in.MixerGroup, &in.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return in, ErrInstrumentNotFound
	}
	return in, err
}
