// Package service holds the console's multi-step flows: the reservation
// checkout, room layout editing, showtime scheduling and the dashboard.
// Simple CRUD pages talk to the repository package directly.
package service

import (
	"context"
	"errors"

	"github.com/iliyamo/cinema-admin-console/internal/model"
	"github.com/iliyamo/cinema-admin-console/internal/queue"
)

var (
	// ErrInvalidCapacity is returned when a room has no positive capacity, so
	// no seat grid can be derived for it.
	ErrInvalidCapacity = errors.New("room capacity must be greater than zero")
	// ErrCartIncomplete blocks submission until the cart holds exactly the
	// requested number of seats.
	ErrCartIncomplete = errors.New("select exactly the requested number of seats")
	// ErrScheduleFull is returned when the next free slot of the day starts
	// after closing time.
	ErrScheduleFull = errors.New("no showtime slot left on that day")
	// ErrAlreadyFinal is returned when a confirmed or cancelled reservation
	// is asked to change state again.
	ErrAlreadyFinal = errors.New("reservation is already confirmed or cancelled")
)

// Movies is the part of the movie API the services use.
type Movies interface {
	List(ctx context.Context) ([]model.Movie, error)
	Get(ctx context.Context, id int64) (*model.Movie, error)
}

// Rooms is the part of the room API the services use.
type Rooms interface {
	List(ctx context.Context) ([]model.Room, error)
	Get(ctx context.Context, id int64) (*model.Room, error)
	ReplaceSeats(ctx context.Context, id int64, seats []model.Seat) error
}

// Showtimes is the part of the showtime API the services use.
type Showtimes interface {
	ListByRoom(ctx context.Context, roomID int64) ([]model.Showtime, error)
	ListByMovie(ctx context.Context, movieID int64) ([]model.Showtime, error)
	Get(ctx context.Context, id int64) (*model.Showtime, error)
	Create(ctx context.Context, f model.ShowtimeForm) (*model.Showtime, error)
	SetSoldSeats(ctx context.Context, id int64, seats []model.Seat) error
}

// Reservations is the part of the reservation API the services use.
type Reservations interface {
	List(ctx context.Context) ([]model.Reservation, error)
	Create(ctx context.Context, f model.ReservationForm) (*model.Reservation, error)
	AttachSeats(ctx context.Context, id int64, seats []model.Seat) error
	Transition(ctx context.Context, id int64, to model.ReservationState) error
}

// Events publishes reservation events.  Failures never fail the caller.
type Events interface {
	Publish(ctx context.Context, ev queue.ReservationEvent) error
}
