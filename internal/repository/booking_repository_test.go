package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/encorehq/booking-platform/internal/model"
)

func TestUpdateStatusMissingBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewBookingRepo(db)
	err = repo.UpdateStatus(context.Background(), 404, model.BookingStatusCancelled, nil)
	if !errors.Is(err, ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
}

func TestUpdateStatusApprovalStampsAdmin(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	adminID := uint64(2)
	mock.ExpectExec("admin_approved_at").
		WithArgs(model.BookingStatusApproved, adminID, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewBookingRepo(db)
	if err := repo.UpdateStatus(context.Background(), 7, model.BookingStatusApproved, &adminID); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSetFinalPrice(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE bookings SET final_price_cents").
		WithArgs(int64(250000), uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewBookingRepo(db)
	if err := repo.SetFinalPrice(context.Background(), 7, 250000); err != nil {
		t.Fatalf("SetFinalPrice: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
