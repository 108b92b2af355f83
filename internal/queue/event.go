// Package queue defines the reservation events the console publishes to
// RabbitMQ and the consumer that writes them to the audit log.
package queue

import "time"

// Event types carried in ReservationEvent.Type.
const (
	TypeReservationSubmitted    = "reservation.submitted"
	TypeReservationStateChanged = "reservation.state_changed"
)

// ReservationEvent is published after a reservation is submitted from the
// checkout page or moved to a new state from the dashboard.  It carries enough
// detail for the audit log without calling the backend again.
type ReservationEvent struct {
	Type          string   `json:"type"`
	ReservationID int64    `json:"reservation_id"`
	ShowtimeID    int64    `json:"showtime_id"`
	MovieTitle    string   `json:"movie_title,omitempty"`
	RoomName      string   `json:"room_name,omitempty"`
	StartsAt      string   `json:"starts_at,omitempty"`
	CustomerName  string   `json:"customer_name,omitempty"`
	CustomerEmail string   `json:"customer_email,omitempty"`
	Seats         []string `json:"seats,omitempty"`
	State         string   `json:"state"`
	CorrelationID string   `json:"correlation_id,omitempty"`
	OccurredAt    string   `json:"occurred_at"`
}

// Stamp fills OccurredAt with now in UTC when it is empty.
func (e ReservationEvent) Stamp(now time.Time) ReservationEvent {
	if e.OccurredAt == "" {
		e.OccurredAt = now.UTC().Format(time.RFC3339)
	}
	return e
}
