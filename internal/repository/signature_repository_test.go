package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/encorehq/booking-platform/internal/model"
)

func TestSignatureUpsertResetsCapturedState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO contract_signatures").
		WillReturnResult(sqlmock.NewResult(5, 2))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	signed := "data:image/png;base64,..."
	uid := uint64(42)
	s := model.ContractSignature{
		ContractID:    3,
		SignerType:    model.SignerTypePerformer,
		SignerUserID:  &uid,
		SignerName:    "Jo Reed",
		Status:        model.SignatureStatusSigned,
		SignatureData: &signed,
	}
	repo := NewSignatureRepo(db)
	if err := repo.UpsertPendingTx(context.Background(), tx, &s); err != nil {
		t.Fatalf("UpsertPendingTx: %v", err)
	}
	if s.ID != 5 {
		t.Fatalf("ID = %d, want 5", s.ID)
	}
	if s.Status != model.SignatureStatusPending {
		t.Fatalf("Status = %q, want pending after re-provisioning", s.Status)
	}
	if s.SignatureData != nil || s.SignedAt != nil {
		t.Fatal("captured signature must be cleared on re-provisioning")
	}
}

func TestSignUnknownSignerRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	// performance contracts have no booker row; the update matches
	// nothing and must surface an error rather than silently succeed.
	mock.ExpectExec("UPDATE contract_signatures").
		WithArgs("sig", uint64(3), model.SignerTypeBooker).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	repo := NewSignatureRepo(db)
	err = repo.SignTx(context.Background(), tx, 3, model.SignerTypeBooker, "sig")
	if !errors.Is(err, ErrSignatureNotFound) {
		t.Fatalf("err = %v, want ErrSignatureNotFound", err)
	}
}

func TestCountPendingByBooking(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM contract_signatures cs").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	repo := NewSignatureRepo(db)
	n, err := repo.CountPendingByBookingTx(context.Background(), tx, 7)
	if err != nil {
		t.Fatalf("CountPendingByBookingTx: %v", err)
	}
	if n != 0 {
		t.Fatalf("pending = %d, want 0", n)
	}
}
