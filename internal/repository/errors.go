// Package repository wraps the cinema backend's REST API.  Each repo mirrors
// one backend resource and returns the model types; the sentinel errors
// below let handlers tell failure scenarios apart without inspecting HTTP
// details.
package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound matches any 404 answer from the backend.
var ErrNotFound = errors.New("not found")

// ErrConflict matches any 409 answer from the backend.
var ErrConflict = errors.New("conflict")

var (
	ErrMovieNotFound       = fmt.Errorf("movie %w", ErrNotFound)
	ErrRoomNotFound        = fmt.Errorf("room %w", ErrNotFound)
	ErrShowtimeNotFound    = fmt.Errorf("showtime %w", ErrNotFound)
	ErrReservationNotFound = fmt.Errorf("reservation %w", ErrNotFound)
)

// APIError is returned for any non-2xx answer.  Body holds the start of the
// response body for logs; it is never shown to the operator.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: backend answered %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// Is lets errors.Is match ErrNotFound and ErrConflict by status code.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrConflict:
		return e.Status == http.StatusConflict
	}
	return false
}

// notFound converts a 404 into the resource's sentinel, keeping other errors.
func notFound(err error, sentinel error) error {
	if errors.Is(err, ErrNotFound) {
		return sentinel
	}
	return err
}
