package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/cinema-admin-console/internal/model"
)

// RoomRepo wraps /rooms and the room seat layout.
type RoomRepo struct{ c *Client }

func NewRoomRepo(c *Client) *RoomRepo { return &RoomRepo{c: c} }

func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
	var out []model.Room
	if err := r.c.do(ctx, http.MethodGet, "/rooms/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns ErrRoomNotFound when the id is unknown.
func (r *RoomRepo) Get(ctx context.Context, id int64) (*model.Room, error) {
	var m model.Room
	if err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("/rooms/%d", id), nil, &m); err != nil {
		return nil, notFound(err, ErrRoomNotFound)
	}
	return &m, nil
}

func (r *RoomRepo) Create(ctx context.Context, f model.RoomForm) (*model.Room, error) {
	var m model.Room
	if err := r.c.do(ctx, http.MethodPost, "/rooms/", f, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *RoomRepo) Update(ctx context.Context, id int64, f model.RoomForm) (*model.Room, error) {
	var m model.Room
	if err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("/rooms/%d", id), f, &m); err != nil {
		return nil, notFound(err, ErrRoomNotFound)
	}
	return &m, nil
}

func (r *RoomRepo) Delete(ctx context.Context, id int64) error {
	err := r.c.do(ctx, http.MethodDelete, fmt.Sprintf("/rooms/%d", id), nil, nil)
	return notFound(err, ErrRoomNotFound)
}

// ReplaceSeats overwrites the room's active seat layout with seats.
func (r *RoomRepo) ReplaceSeats(ctx context.Context, id int64, seats []model.Seat) error {
	body := model.SeatsPayload{Seats: nonNil(seats)}
	err := r.c.do(ctx, http.MethodPatch, fmt.Sprintf("/rooms/%d/seats", id), body, nil)
	return notFound(err, ErrRoomNotFound)
}

// nonNil keeps an empty seat list encoding as [] rather than null.
func nonNil(seats []model.Seat) []model.Seat {
	if seats == nil {
		return []model.Seat{}
	}
	return seats
}
