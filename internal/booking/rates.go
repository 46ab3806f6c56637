package booking

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/encorehq/booking-platform/internal/model"
	"github.com/encorehq/booking-platform/internal/repository"
)

// RateNegotiator runs the admin/musician rate negotiation sub-flow for
// one musician on one booking.  State transitions are enforced in the
// repository's guarded updates; the negotiator validates input and
// existence up front so callers get the right error class.
type RateNegotiator struct {
	users    *repository.UserRepo
	bookings *repository.BookingRepo
	rates    *repository.RateRepo
	log      zerolog.Logger
}

func NewRateNegotiator(users *repository.UserRepo, bookings *repository.BookingRepo,
	rates *repository.RateRepo, log zerolog.Logger) *RateNegotiator {
	return &RateNegotiator{users: users, bookings: bookings, rates: rates, log: log}
}

// SetRateInput carries an admin rate proposal.  RateCents is the
// USD-normalized amount; OriginalCurrency/OriginalAmountCents preserve
// what the admin entered when it was not USD.
type SetRateInput struct {
	BookingID           uint64
	MusicianUserID      uint64
	AdminUserID         uint64
	RateCents           int64
	Notes               *string
	OriginalCurrency    string
	OriginalAmountCents *int64
}

// SetRate proposes (or re-proposes) a rate.  Setting a rate always
// opens a fresh round: any previous response, counter offer and
// confirmed fee are cleared, including after an admin declined a
// counter.  Negotiation rounds are unlimited.
func (n *RateNegotiator) SetRate(ctx context.Context, in SetRateInput) (model.MusicianRate, error) {
	if in.RateCents <= 0 {
		return model.MusicianRate{}, ErrInvalidInput
	}
	if in.OriginalCurrency == "" {
		in.OriginalCurrency = "USD"
	}
	if _, err := n.bookings.GetByID(ctx, in.BookingID); err != nil {
		return model.MusicianRate{}, err
	}
	u, err := n.users.GetByID(ctx, in.MusicianUserID)
	if err != nil {
		return model.MusicianRate{}, err
	}
	if cat := model.CategoryForRole(u.RoleID); cat != model.CategoryMusician && cat != model.CategoryArtist {
		return model.MusicianRate{}, ErrInvalidInput
	}

	if err := n.rates.UpsertAdminRate(ctx, in.BookingID, in.MusicianUserID, in.AdminUserID,
		in.RateCents, in.Notes, in.OriginalCurrency, in.OriginalAmountCents); err != nil {
		return model.MusicianRate{}, err
	}
	n.log.Info().
		Uint64("booking_id", in.BookingID).
		Uint64("musician_id", in.MusicianUserID).
		Int64("rate_cents", in.RateCents).
		Msg("rate proposed")
	return n.rates.Get(ctx, in.BookingID, in.MusicianUserID)
}

// RespondInput carries a musician's response to a proposed rate.
// Counter fields are required when Response is counter_offer and
// rejected otherwise.
type RespondInput struct {
	BookingID          uint64
	MusicianUserID     uint64
	Response           string
	Message            *string
	CounterAmountCents *int64
	CounterCurrency    *string
	CounterUSDCents    *int64
	CounterMessage     *string
}

// Respond records accept, decline or counter_offer against a rate in
// admin_set state.  Accepting copies the proposed rate into the
// confirmed fee.  Responding twice, or responding before a rate is
// set, is an invalid transition.
func (n *RateNegotiator) Respond(ctx context.Context, in RespondInput) (model.MusicianRate, error) {
	switch in.Response {
	case model.RateStatusAccepted, model.RateStatusDeclined:
		if in.CounterAmountCents != nil {
			return model.MusicianRate{}, ErrInvalidInput
		}
	case model.RateStatusCounterOffer:
		if in.CounterAmountCents == nil || *in.CounterAmountCents <= 0 {
			return model.MusicianRate{}, ErrInvalidInput
		}
	default:
		return model.MusicianRate{}, ErrInvalidInput
	}

	current, err := n.rates.Get(ctx, in.BookingID, in.MusicianUserID)
	if err != nil {
		return model.MusicianRate{}, err
	}
	if current.RateStatus != model.RateStatusAdminSet {
		return model.MusicianRate{}, ErrInvalidTransition
	}

	err = n.rates.RecordResponse(ctx, in.BookingID, in.MusicianUserID, in.Response, in.Message,
		in.CounterAmountCents, in.CounterCurrency, in.CounterUSDCents, in.CounterMessage)
	if errors.Is(err, repository.ErrRateNotFound) {
		// Lost the race with a concurrent response or a re-proposal.
		return model.MusicianRate{}, ErrInvalidTransition
	}
	if err != nil {
		return model.MusicianRate{}, err
	}
	n.log.Info().
		Uint64("booking_id", in.BookingID).
		Uint64("musician_id", in.MusicianUserID).
		Str("response", in.Response).
		Msg("rate response recorded")
	return n.rates.Get(ctx, in.BookingID, in.MusicianUserID)
}

// AdminCounterRespond records the admin's accept/decline of a pending
// counter offer.  Accepting locks the countered amount in as the
// confirmed fee.  Declining records the refusal but leaves the rate in
// counter_offer; the admin moves it forward by proposing a new rate
// through SetRate.
func (n *RateNegotiator) AdminCounterRespond(ctx context.Context, bookingID, musicianID uint64, response string, message *string) (model.MusicianRate, error) {
	switch response {
	case model.CounterResponseAccepted, model.CounterResponseDeclined:
	default:
		return model.MusicianRate{}, ErrInvalidInput
	}

	current, err := n.rates.Get(ctx, bookingID, musicianID)
	if err != nil {
		return model.MusicianRate{}, err
	}
	if current.RateStatus != model.RateStatusCounterOffer {
		return model.MusicianRate{}, ErrInvalidTransition
	}

	err = n.rates.RecordAdminCounterResponse(ctx, bookingID, musicianID, response, message)
	if errors.Is(err, repository.ErrRateNotFound) {
		return model.MusicianRate{}, ErrInvalidTransition
	}
	if err != nil {
		return model.MusicianRate{}, err
	}
	n.log.Info().
		Uint64("booking_id", bookingID).
		Uint64("musician_id", musicianID).
		Str("response", response).
		Msg("counter offer resolved")
	return n.rates.Get(ctx, bookingID, musicianID)
}

// ListForMusician returns the musician's negotiations across bookings
// with event and headliner context.
func (n *RateNegotiator) ListForMusician(ctx context.Context, musicianID uint64) ([]model.MusicianRateDetail, error) {
	return n.rates.ListByMusician(ctx, musicianID)
}
