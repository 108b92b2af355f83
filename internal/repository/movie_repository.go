package repository

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iliyamo/cinema-admin-console/internal/model"
)

// MovieRepo wraps /movies.
type MovieRepo struct{ c *Client }

func NewMovieRepo(c *Client) *MovieRepo { return &MovieRepo{c: c} }

// List returns every movie in backend order.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	var out []model.Movie
	if err := r.c.do(ctx, http.MethodGet, "/movies/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns ErrMovieNotFound when the id is unknown.
func (r *MovieRepo) Get(ctx context.Context, id int64) (*model.Movie, error) {
	var m model.Movie
	if err := r.c.do(ctx, http.MethodGet, fmt.Sprintf("/movies/%d", id), nil, &m); err != nil {
		return nil, notFound(err, ErrMovieNotFound)
	}
	return &m, nil
}

func (r *MovieRepo) Create(ctx context.Context, f model.MovieForm) (*model.Movie, error) {
	var m model.Movie
	if err := r.c.do(ctx, http.MethodPost, "/movies/", f, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovieRepo) Update(ctx context.Context, id int64, f model.MovieForm) (*model.Movie, error) {
	var m model.Movie
	if err := r.c.do(ctx, http.MethodPut, fmt.Sprintf("/movies/%d", id), f, &m); err != nil {
		return nil, notFound(err, ErrMovieNotFound)
	}
	return &m, nil
}

func (r *MovieRepo) Delete(ctx context.Context, id int64) error {
	err := r.c.do(ctx, http.MethodDelete, fmt.Sprintf("/movies/%d", id), nil, nil)
	return notFound(err, ErrMovieNotFound)
}
