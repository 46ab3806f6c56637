package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/encorehq/booking-platform/internal/model"
)

func TestContractUpsertReportsInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	// One affected row signals a fresh insert through ON DUPLICATE KEY.
	mock.ExpectExec("INSERT INTO contracts").
		WillReturnResult(sqlmock.NewResult(11, 1))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	repo := NewContractRepo(db)
	c := model.Contract{
		BookingID:       7,
		ContractType:    model.ContractTypeBookingAgreement,
		Title:           "Booking Agreement",
		Content:         []byte(`{"body":"..."}`),
		CreatedByUserID: 1,
	}
	action, err := repo.UpsertTx(context.Background(), tx, &c)
	if err != nil {
		t.Fatalf("UpsertTx: %v", err)
	}
	if action != UpsertInserted {
		t.Fatalf("action = %q, want %q", action, UpsertInserted)
	}
	if c.ID != 11 {
		t.Fatalf("ID = %d, want 11", c.ID)
	}
	if c.Status != model.ContractStatusDraft {
		t.Fatalf("Status = %q, want draft default", c.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestContractUpsertReportsUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	// MySQL reports two affected rows when ON DUPLICATE KEY updates.
	mock.ExpectExec("INSERT INTO contracts").
		WillReturnResult(sqlmock.NewResult(11, 2))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	repo := NewContractRepo(db)
	c := model.Contract{
		BookingID:        7,
		ContractType:     model.ContractTypePerformanceContract,
		AssignedToUserID: 42,
		Title:            "Performance Contract v2",
		Content:          []byte(`{"body":"revised"}`),
		Status:           model.ContractStatusSent,
		CreatedByUserID:  1,
	}
	action, err := repo.UpsertTx(context.Background(), tx, &c)
	if err != nil {
		t.Fatalf("UpsertTx: %v", err)
	}
	if action != UpsertUpdated {
		t.Fatalf("action = %q, want %q", action, UpsertUpdated)
	}
	if c.ID != 11 {
		t.Fatalf("ID = %d, want 11 (recovered via LAST_INSERT_ID)", c.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestContractUpdateStatusNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE contracts SET status").
		WithArgs(model.ContractStatusSigned, uint64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	repo := NewContractRepo(db)
	err = repo.UpdateStatusTx(context.Background(), tx, 99, model.ContractStatusSigned)
	if !errors.Is(err, ErrContractNotFound) {
		t.Fatalf("err = %v, want ErrContractNotFound", err)
	}
}
