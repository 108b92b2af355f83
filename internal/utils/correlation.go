package utils

import (
	"context"

	"github.com/lithammer/shortuuid/v3"
)

// HeaderCorrelationID carries the id that ties console log lines to the
// backend requests they caused.
const HeaderCorrelationID = "Correlation-ID"

type correlationKey struct{}

// WithCorrelationID stores id in ctx.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// CorrelationID returns the id stored in ctx, or "" when there is none.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// NewCorrelationID generates an id for requests that arrive without one.
func NewCorrelationID() string {
	return "gen_" + shortuuid.New()
}
