package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/cinema-admin-console/internal/model"
)

// ShowtimeRepo wraps /showtimes.
type ShowtimeRepo struct{ c *Client }

func NewShowtimeRepo(c *Client) *ShowtimeRepo { return &ShowtimeRepo{c: c} }

func (r *ShowtimeRepo) ListByRoom(ctx context.Context, roomID int64) ([]model.Showtime, error) {
	var out []model.Showtime
	if err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("/showtimes/room/%d", roomID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ShowtimeRepo) ListByMovie(ctx context.Context, movieID int64) ([]model.Showtime, error) {
	var out []model.Showtime
	if err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("/showtimes/movie/%d", movieID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns ErrShowtimeNotFound when the id is unknown.
func (r *ShowtimeRepo) Get(ctx context.Context, id int64) (*model.Showtime, error) {
	var m model.Showtime
	if err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("/showtimes/%d", id), nil, &m); err != nil {
		return nil, notFound(err, ErrShowtimeNotFound)
	}
	return &m, nil
}

func (r *ShowtimeRepo) Create(ctx context.Context, f model.ShowtimeForm) (*model.Showtime, error) {
	var m model.Showtime
	if err := r.c.do(ctx, http.MethodPost, "/showtimes/", f, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SetSoldSeats replaces the showtime's sold list.  Callers send the union of
// the seats already sold and the ones being sold now.
func (r *ShowtimeRepo) SetSoldSeats(ctx context.Context, id int64, seats []model.Seat) error {
	body := model.SeatsPayload{Seats: nonNil(seats)}
	err := r.c.do(ctx, http.MethodPatch, fmt.Sprintf("/showtimes/%d/seats", id), body, nil)
	return notFound(err, ErrShowtimeNotFound)
}
