package ports

import (
	"context"

	"github.com/helioscommand/helios/pkg/domain"
)

// Geocoder resolves a free-text address into a coordinate.
// One outbound call per invocation; no caching, no retries. Retry policy,
// if any, belongs to the caller.
type Geocoder interface {
	// Resolve returns domain.ErrGeocodeNotFound when the upstream has zero
	// results, domain.ErrGeocodeQuota on rate-limit exhaustion, and
	// domain.ErrGeocodeService on transport or HTTP failure.
	Resolve(ctx context.Context, address string) (domain.Coordinate, error)
}

// PlacesSearcher queries the nearby-places service around a coordinate.
// An empty result list is a valid success, not an error.
type PlacesSearcher interface {
	SearchNearby(ctx context.Context, center domain.Coordinate, radiusMeters int, category string) ([]domain.Place, error)
}

// Mail is an outbound email request.
type Mail struct {
	To      string
	Subject string
	Body    string
}

// Mailer dispatches email through an external service.
type Mailer interface {
	// Send returns domain.ErrMailUnauthorized when credentials are rejected
	// and domain.ErrUpstream on transport failure.
	Send(ctx context.Context, msg Mail) error
}

// Request is the unit of work passed to a handler.
type Request struct {
	ConversationID string
	Query          string
	Intent         domain.Intent

	// History is the conversation log up to and including the current user
	// turn, for handlers that compose from context.
	History []domain.Turn
}

// Handler executes a specific intent and produces a structured result.
// Failures are returned as errors and converted to the error payload at the
// orchestration boundary; they never escape ProcessQuery.
type Handler interface {
	Handle(ctx context.Context, req Request) (*domain.Result, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, req Request) (*domain.Result, error)

// Handle calls f(ctx, req).
func (f HandlerFunc) Handle(ctx context.Context, req Request) (*domain.Result, error) {
	return f(ctx, req)
}
