package handle

import (
	"context"
	"log/slog"

	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/ports"
)

// DefaultSearchRadiusMeters bounds the nearby-places search.
const DefaultSearchRadiusMeters = 2000

// DefaultShopCategory is the category string sent to the places service.
const DefaultShopCategory = "pharmacy medical shop drugstore"

// Shops finds nearby pharmacies and medical shops via the places service.
type Shops struct {
	geocoder ports.Geocoder
	places   ports.PlacesSearcher
	radiusM  int
	category string
	logger   *slog.Logger
}

// ShopsOption configures the shops handler.
type ShopsOption func(*Shops)

// WithSearchRadius overrides the search radius in meters.
func WithSearchRadius(meters int) ShopsOption {
	return func(s *Shops) {
		if meters > 0 {
			s.radiusM = meters
		}
	}
}

// WithCategory overrides the place category query.
func WithCategory(category string) ShopsOption {
	return func(s *Shops) {
		s.category = category
	}
}

// WithShopsLogger sets the handler logger.
func WithShopsLogger(logger *slog.Logger) ShopsOption {
	return func(s *Shops) {
		s.logger = logger
	}
}

// NewShops creates the nearby-shops handler.
func NewShops(geocoder ports.Geocoder, places ports.PlacesSearcher, opts ...ShopsOption) *Shops {
	s := &Shops{
		geocoder: geocoder,
		places:   places,
		radiusM:  DefaultSearchRadiusMeters,
		category: DefaultShopCategory,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handle geocodes the query's location phrase and lists nearby shops. An
// empty place list is a valid success, not an error.
func (s *Shops) Handle(ctx context.Context, req ports.Request) (*domain.Result, error) {
	address := extractLocation(req.Query)

	center, err := s.geocoder.Resolve(ctx, address)
	if err != nil {
		return nil, err
	}

	found, err := s.places.SearchNearby(ctx, center, s.radiusM, s.category)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("places search complete", "count", len(found))

	return &domain.Result{
		Kind:   domain.KindPlaces,
		Places: &domain.PlacesResult{Places: found},
	}, nil
}
