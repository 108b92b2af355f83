// Package session keeps per-page console state between requests.  The
// checkout and layout pages are multi-request flows; their state lives in a
// Store under an opaque id carried in the page URL.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned when the id is unknown or has expired.
var ErrSessionNotFound = errors.New("session not found or expired")

// Store persists values of one session kind.
type Store[T any] interface {
	Get(ctx context.Context, id string) (T, error)
	Save(ctx context.Context, id string, v T) error
	Delete(ctx context.Context, id string) error
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape NewID produces.  Handlers use it
// to reject garbage before touching the store.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
