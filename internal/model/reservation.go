package model

// ReservationState is the lifecycle state of a reservation as reported by
// the backend. Transitions are performed by the backend; the console only
// asks for them.
type ReservationState string

const (
	StatePending   ReservationState = "pending"
	StateCreated   ReservationState = "created"
	StateConfirmed ReservationState = "confirmed"
	StateCancelled ReservationState = "cancelled"
)

// ReservationStates lists every state in display order.
var ReservationStates = []ReservationState{StatePending, StateCreated, StateConfirmed, StateCancelled}

// Label returns the display name of the state.
func (s ReservationState) Label() string {
	switch s {
	case StatePending:
		return "Pending"
	case StateCreated:
		return "Created"
	case StateConfirmed:
		return "Confirmed"
	case StateCancelled:
		return "Cancelled"
	}
	return string(s)
}

// Final reports whether no further transition is offered for the state.
func (s ReservationState) Final() bool {
	return s == StateConfirmed || s == StateCancelled
}

// Reservation records a customer's booking for a showtime.
//
// Fields:
//  ID         – backend identifier.
//  UserName   – customer name.
//  UserEmail  – customer email.
//  UserPhone  – customer phone, may be empty.
//  ShowtimeID – showtime being booked.
//  State      – lifecycle state.
//  Seats      – seats attached to the reservation.
type Reservation struct {
	ID         int64            `json:"id"`
	UserName   string           `json:"user_name"`
	UserEmail  string           `json:"user_email"`
	UserPhone  string           `json:"user_phone"`
	ShowtimeID int64            `json:"showtime_id"`
	State      ReservationState `json:"state"`
	Seats      []Seat           `json:"seats"`
}

// ReservationForm is the payload for creating a reservation.
type ReservationForm struct {
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	UserPhone  string `json:"user_phone"`
	ShowtimeID int64  `json:"showtime_id"`
}
