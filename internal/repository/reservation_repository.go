package repository

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/iliyamo/cinema-admin-console/internal/model"
)

// ErrInvalidTransition is returned before any request when the target state
// is not one the backend accepts as a transition.
var ErrInvalidTransition = errors.New("reservation can only be confirmed or cancelled")

// ReservationRepo wraps /reservations.
type ReservationRepo struct{ c *Client }

func NewReservationRepo(c *Client) *ReservationRepo { return &ReservationRepo{c: c} }

func (r *ReservationRepo) List(ctx context.Context) ([]model.Reservation, error) {
	var out []model.Reservation
	if err := r.c.do(ctx, http.MethodGet, "/reservations/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create registers the customer for a showtime.  Seats are attached in a
// separate call once the id is known.
func (r *ReservationRepo) Create(ctx context.Context, f model.ReservationForm) (*model.Reservation, error) {
	var m model.Reservation
	if err := r.c.do(ctx, http.MethodPost, "/reservations/", f, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ReservationRepo) AttachSeats(ctx context.Context, id int64, seats []model.Seat) error {
	body := model.SeatsPayload{Seats: nonNil(seats)}
	err := r.c.do(ctx, http.MethodPatch, fmt.Sprintf("/reservations/%d/seats", id), body, nil)
	return notFound(err, ErrReservationNotFound)
}

// Transition moves a reservation to confirmed or cancelled.
func (r *ReservationRepo) Transition(ctx context.Context, id int64, to model.ReservationState) error {
	if to != model.StateConfirmed && to != model.StateCancelled {
		return ErrInvalidTransition
	}
	err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("/reservations/%d/%s", id, to), nil, nil)
	return notFound(err, ErrReservationNotFound)
}
