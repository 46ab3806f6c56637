// Package queue defines message payloads exchanged over the message broker.
package queue

// Queue names.  Durable queues on the default exchange, routing key =
// queue name.
const (
	BookingConfirmedQueue   = "booking.confirmed"
	ContractsCompletedQueue = "booking.contracts.completed"
)

// BookingConfirmedEvent is published when an admin confirms a booking.
// It carries enough context for downstream consumers to notify or log
// without querying the primary database.
type BookingConfirmedEvent struct {
	EventID             string `json:"event_id"`
	BookingID           uint64 `json:"booking_id"`
	EventName           string `json:"event_name"`
	EventType           string `json:"event_type"`
	PrimaryArtistUserID uint64 `json:"primary_artist_user_id"`
	BookerName          string `json:"booker_name"`
	IsGuestBooking      bool   `json:"is_guest_booking"`
	ConfirmedAt         string `json:"confirmed_at"`
}

// ContractsCompletedEvent is published when the last required
// signature across every contract of a booking is captured, i.e. the
// moment the downstream payment/invoice flow is unblocked.
type ContractsCompletedEvent struct {
	EventID       string `json:"event_id"`
	BookingID     uint64 `json:"booking_id"`
	EventName     string `json:"event_name"`
	ContractCount int    `json:"contract_count"`
	CompletedAt   string `json:"completed_at"`
}
