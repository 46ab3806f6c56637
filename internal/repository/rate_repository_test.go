package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/encorehq/booking-platform/internal/model"
)

func TestRecordResponseRequiresAdminSetState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The WHERE clause guards on rate_status='admin_set'; a settled or
	// unset negotiation matches zero rows.
	mock.ExpectExec("UPDATE booking_musicians").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRateRepo(db)
	err = repo.RecordResponse(context.Background(), 7, 42, model.RateStatusAccepted, nil, nil, nil, nil, nil)
	if !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("err = %v, want ErrRateNotFound", err)
	}
}

func TestRecordResponseAccepted(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE booking_musicians").
		WithArgs(model.RateStatusAccepted, model.RateStatusAccepted, nil, model.RateStatusAccepted,
			nil, nil, nil, nil, model.RateStatusAccepted, uint64(7), uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRateRepo(db)
	if err := repo.RecordResponse(context.Background(), 7, 42, model.RateStatusAccepted, nil, nil, nil, nil, nil); err != nil {
		t.Fatalf("RecordResponse: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAdminCounterResponseGuard(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Counter resolution only applies while the row sits in
	// counter_offer; anything else is a lost race or stale client.
	mock.ExpectExec("UPDATE booking_musicians").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewRateRepo(db)
	err = repo.RecordAdminCounterResponse(context.Background(), 7, 42, model.CounterResponseDeclined, nil)
	if !errors.Is(err, ErrRateNotFound) {
		t.Fatalf("err = %v, want ErrRateNotFound", err)
	}
}

func TestUpsertAdminRateDefaultsCurrency(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO booking_musicians").
		WithArgs(uint64(7), uint64(42), int64(150000), "USD", nil, uint64(1), nil).
		WillReturnResult(sqlmock.NewResult(9, 1))

	repo := NewRateRepo(db)
	if err := repo.UpsertAdminRate(context.Background(), 7, 42, 1, 150000, nil, "", nil); err != nil {
		t.Fatalf("UpsertAdminRate: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
