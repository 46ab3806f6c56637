package booking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/repository"
)

func TestParseSignPolicy(t *testing.T) {
	cases := []struct {
		in   string
		want SignPolicy
	}{
		{"first_signature", SignPolicyFirstSignature},
		{"all_signatures", SignPolicyAllSignatures},
		{"", SignPolicyAllSignatures},
		{"bogus", SignPolicyAllSignatures},
	}
	for _, c := range cases {
		if got := ParseSignPolicy(c.in); got != c.want {
			t.Errorf("ParseSignPolicy(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGenerateContractInputValidation(t *testing.T) {
	// Validation happens before any transaction is opened, so a bare
	// orchestrator is enough here.
	o := &ContractOrchestrator{}
	content := json.RawMessage(`{"terms":"net 30"}`)

	cases := []struct {
		name string
		in   GenerateContractInput
	}{
		{"unknown type", GenerateContractInput{
			BookingID: 1, ContractType: "nda", Title: "t", Content: content,
		}},
		{"agreement with performer", GenerateContractInput{
			BookingID: 1, ContractType: model.ContractTypeBookingAgreement,
			Title: "t", Content: content, PerformerUserID: 9,
		}},
		{"performance contract without performer", GenerateContractInput{
			BookingID: 1, ContractType: model.ContractTypePerformanceContract,
			Title: "t", Content: content,
		}},
		{"empty title", GenerateContractInput{
			BookingID: 1, ContractType: model.ContractTypeBookingAgreement,
			Content: content,
		}},
		{"empty content", GenerateContractInput{
			BookingID: 1, ContractType: model.ContractTypeBookingAgreement,
			Title: "t",
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := o.GenerateContract(context.Background(), c.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

var bookingCols = []string{
	"id", "booker_user_id", "primary_artist_user_id", "event_name", "event_type",
	"venue_name", "venue_address", "requirements", "status", "total_budget_cents", "final_price_cents",
	"guest_name", "guest_email", "guest_phone", "is_guest_booking",
	"assigned_admin_id", "admin_approved_at",
	"contracts_generated", "all_signatures_completed", "payment_completed", "receipt_generated",
	"current_workflow_step", "created_at", "updated_at",
}

func namedUserRow(id, roleID uint64, name, email string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "full_name", "role_id",
		"status", "is_demo", "created_at", "updated_at",
	}).AddRow(id, email, "x", name, roleID, "active", false, now, now)
}

func TestGenerateContractRegisteredBooker(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			7, 5, 9, "Summer Gala", "private",
			nil, nil, nil, "approved", nil, nil,
			nil, nil, nil, false,
			nil, nil,
			false, false, false, false,
			1, now, now))
	mock.ExpectExec("INSERT INTO contracts").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE role_id").
		WithArgs(model.RoleSuperadmin).
		WillReturnRows(namedUserRow(1, model.RoleSuperadmin, "Root Admin", "root@example.com"))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(uint64(5)).
		WillReturnRows(namedUserRow(5, model.RoleFan, "Pat Booker", "pat@example.com"))
	mock.ExpectExec("INSERT INTO contract_signatures").
		WithArgs(uint64(11), model.SignerTypeSuperadmin, uint64(1), "Root Admin", "root@example.com").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("INSERT INTO contract_signatures").
		WithArgs(uint64(11), model.SignerTypeBooker, uint64(5), "Pat Booker", "pat@example.com").
		WillReturnResult(sqlmock.NewResult(22, 1))
	mock.ExpectExec("UPDATE bookings SET contracts_generated").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	o := NewContractOrchestrator(db, repository.NewUserRepo(db), repository.NewBookingRepo(db),
		repository.NewContractRepo(db), repository.NewSignatureRepo(db),
		SignPolicyAllSignatures, nil, zerolog.Nop())
	contract, action, err := o.GenerateContract(context.Background(), GenerateContractInput{
		BookingID:       7,
		ContractType:    model.ContractTypeBookingAgreement,
		Title:           "Booking Agreement",
		Content:         json.RawMessage(`{"terms":"net 30"}`),
		CreatedByUserID: 1,
	})
	if err != nil {
		t.Fatalf("GenerateContract: %v", err)
	}
	if action != repository.UpsertInserted {
		t.Errorf("action = %q, want inserted", action)
	}
	if contract.ID != 11 {
		t.Errorf("contract ID = %d, want 11", contract.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestGenerateContractGuestBookerResetsCompletion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// Re-generating on a fully signed guest booking: the contract row
	// is updated in place, the guest booker signer carries no user id,
	// and the stale completion flag is cleared.
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM bookings").
		WithArgs(uint64(7)).
		WillReturnRows(sqlmock.NewRows(bookingCols).AddRow(
			7, nil, 9, "Summer Gala", "private",
			nil, nil, nil, "approved", nil, nil,
			"Jordan Guest", "jordan@example.com", nil, true,
			nil, nil,
			true, true, false, false,
			3, now, now))
	mock.ExpectExec("INSERT INTO contracts").
		WillReturnResult(sqlmock.NewResult(11, 2))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE role_id").
		WithArgs(model.RoleSuperadmin).
		WillReturnRows(namedUserRow(1, model.RoleSuperadmin, "Root Admin", "root@example.com"))
	mock.ExpectExec("INSERT INTO contract_signatures").
		WithArgs(uint64(11), model.SignerTypeSuperadmin, uint64(1), "Root Admin", "root@example.com").
		WillReturnResult(sqlmock.NewResult(21, 2))
	mock.ExpectExec("INSERT INTO contract_signatures").
		WithArgs(uint64(11), model.SignerTypeBooker, nil, "Jordan Guest", "jordan@example.com").
		WillReturnResult(sqlmock.NewResult(22, 2))
	mock.ExpectExec("UPDATE bookings SET contracts_generated").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET all_signatures_completed").
		WithArgs(false, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	o := NewContractOrchestrator(db, repository.NewUserRepo(db), repository.NewBookingRepo(db),
		repository.NewContractRepo(db), repository.NewSignatureRepo(db),
		SignPolicyAllSignatures, nil, zerolog.Nop())
	_, action, err := o.GenerateContract(context.Background(), GenerateContractInput{
		BookingID:       7,
		ContractType:    model.ContractTypeBookingAgreement,
		Title:           "Booking Agreement v2",
		Content:         json.RawMessage(`{"terms":"net 15"}`),
		CreatedByUserID: 1,
	})
	if err != nil {
		t.Fatalf("GenerateContract: %v", err)
	}
	if action != repository.UpsertUpdated {
		t.Errorf("action = %q, want updated", action)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSignInputValidation(t *testing.T) {
	o := &ContractOrchestrator{}

	cases := []struct {
		name string
		in   SignInput
	}{
		{"zero contract id", SignInput{SignerType: model.SignerTypeBooker, SignatureData: "sig"}},
		{"empty signer type", SignInput{ContractID: 1, SignatureData: "sig"}},
		{"empty signature data", SignInput{ContractID: 1, SignerType: model.SignerTypeBooker}},
		{"unknown signer type", SignInput{ContractID: 1, SignerType: "witness", SignatureData: "sig"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, _, err := o.Sign(context.Background(), c.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}
