package handle

import (
	"context"
	"log/slog"

	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/facility"
	"github.com/helioscommand/helios/pkg/geo"
	"github.com/helioscommand/helios/pkg/ports"
)

// Hospital resolves the user's location and selects the nearest facility from
// the fixed dataset, deriving distance and ETA.
type Hospital struct {
	geocoder ports.Geocoder
	index    *facility.Index
	speedKmh float64
	logger   *slog.Logger
}

// HospitalOption configures the hospital handler.
type HospitalOption func(*Hospital)

// WithAverageSpeed overrides the ETA speed assumption (km/h).
func WithAverageSpeed(kmh float64) HospitalOption {
	return func(h *Hospital) {
		if kmh > 0 {
			h.speedKmh = kmh
		}
	}
}

// WithHospitalLogger sets the handler logger.
func WithHospitalLogger(logger *slog.Logger) HospitalOption {
	return func(h *Hospital) {
		h.logger = logger
	}
}

// NewHospital creates the nearest-hospital handler.
func NewHospital(geocoder ports.Geocoder, index *facility.Index, opts ...HospitalOption) *Hospital {
	h := &Hospital{
		geocoder: geocoder,
		index:    index,
		speedKmh: geo.DefaultAverageSpeedKmh,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Handle geocodes the query's location phrase and returns the minimum-distance
// facility. Geocode and empty-index failures surface as typed errors for the
// orchestrator to convert into the error payload.
func (h *Hospital) Handle(ctx context.Context, req ports.Request) (*domain.Result, error) {
	address := extractLocation(req.Query)

	origin, err := h.geocoder.Resolve(ctx, address)
	if err != nil {
		return nil, err
	}

	nearest, distanceKm, err := h.index.Nearest(origin)
	if err != nil {
		return nil, err
	}

	h.logger.Debug("nearest facility selected",
		"facility", nearest.Name, "distance_km", distanceKm)

	return &domain.Result{
		Kind: domain.KindHospital,
		Hospital: &domain.HospitalResult{
			Name:       nearest.Name,
			DistanceKm: distanceKm,
			ETAMinutes: geo.ETAMinutes(distanceKm, h.speedKmh),
			Origin:     origin,
		},
	}, nil
}
