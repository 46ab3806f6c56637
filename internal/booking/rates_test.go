package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/repository"
)

func int64p(v int64) *int64 { return &v }

func TestRespondInputValidation(t *testing.T) {
	// Vocabulary and counter-field checks run before any lookup.
	n := &RateNegotiator{}

	cases := []struct {
		name string
		in   RespondInput
	}{
		{"unknown response", RespondInput{BookingID: 7, MusicianUserID: 42, Response: "maybe"}},
		{"accept with counter amount", RespondInput{
			BookingID: 7, MusicianUserID: 42,
			Response: model.RateStatusAccepted, CounterAmountCents: int64p(100),
		}},
		{"counter without amount", RespondInput{
			BookingID: 7, MusicianUserID: 42, Response: model.RateStatusCounterOffer,
		}},
		{"counter with non-positive amount", RespondInput{
			BookingID: 7, MusicianUserID: 42,
			Response: model.RateStatusCounterOffer, CounterAmountCents: int64p(0),
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := n.Respond(context.Background(), c.in)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSetRateRejectsNonPositiveRate(t *testing.T) {
	n := &RateNegotiator{}
	_, err := n.SetRate(context.Background(), SetRateInput{BookingID: 7, MusicianUserID: 42, RateCents: 0})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func TestAdminCounterRespondVocabulary(t *testing.T) {
	n := &RateNegotiator{}
	_, err := n.AdminCounterRespond(context.Background(), 7, 42, "renegotiate", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}

func rateRow(status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "booking_id", "musician_user_id", "ideal_rate_cents", "admin_set_rate_cents",
		"original_currency", "original_amount_cents", "confirmed_fee_cents", "rate_status",
		"rate_set_by_admin_id", "rate_notes", "musician_response", "response_message",
		"counter_amount_cents", "counter_currency", "counter_usd_cents", "counter_message", "counter_at",
		"admin_counter_response", "admin_counter_response_message", "admin_counter_response_at",
		"rate_set_at", "responded_at", "assigned_at",
	}).AddRow(
		1, 7, 42, nil, int64(150000),
		"USD", nil, nil, status,
		nil, nil, nil, nil,
		nil, nil, nil, nil, nil,
		nil, nil, nil,
		nil, nil, time.Now(),
	)
}

func TestRespondRequiresAdminSetState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	// The negotiation already settled; a second response must not
	// reach the update.
	mock.ExpectQuery("SELECT (.+) FROM booking_musicians").
		WillReturnRows(rateRow(model.RateStatusAccepted))

	n := NewRateNegotiator(nil, nil, repository.NewRateRepo(db), zerolog.Nop())
	_, err = n.Respond(context.Background(), RespondInput{
		BookingID: 7, MusicianUserID: 42, Response: model.RateStatusDeclined,
	})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAdminCounterRespondRequiresCounterState(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM booking_musicians").
		WillReturnRows(rateRow(model.RateStatusAdminSet))

	n := NewRateNegotiator(nil, nil, repository.NewRateRepo(db), zerolog.Nop())
	_, err = n.AdminCounterRespond(context.Background(), 7, 42, model.CounterResponseAccepted, nil)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
