package notifications

import "time"

// EventType identifies a reservation lifecycle notification
type EventType string

const (
	EventReservationCreated  EventType = "reservation.created"
	EventSettlementRecorded  EventType = "settlement.recorded"
	EventReservationsExpired EventType = "reservations.expired"
)

// ReservationEvent is the message published to the reservation topic.
// Downstream consumers (mailers, analytics) live in separate services.
type ReservationEvent struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	ReservationID string    `json:"reservation_id,omitempty"`
	EventID       string    `json:"event_id,omitempty"`
	RequesterID   string    `json:"requester_id,omitempty"`
	Outcome       string    `json:"outcome,omitempty"`
	ExpiredCount  int64     `json:"expired_count,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
