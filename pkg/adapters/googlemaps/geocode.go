// Package googlemaps implements the geocoding and nearby-places ports on the
// Google Maps platform: the Geocoding API for address resolution and the
// Places Text Search API for shop lookups.
package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/helioscommand/helios/pkg/domain"
)

const (
	defaultGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultTimeout    = 10 * time.Second
)

// Upstream status strings from the Geocoding API.
const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	statusOverQuota   = "OVER_QUERY_LIMIT"
)

// Geocoder implements ports.Geocoder.
type Geocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// GeocoderOption configures a Geocoder.
type GeocoderOption func(*Geocoder)

// WithGeocodeURL overrides the API endpoint, for tests.
func WithGeocodeURL(u string) GeocoderOption {
	return func(g *Geocoder) {
		g.baseURL = u
	}
}

// WithGeocodeHTTPClient overrides the HTTP client.
func WithGeocodeHTTPClient(c *http.Client) GeocoderOption {
	return func(g *Geocoder) {
		if c != nil {
			g.client = c
		}
	}
}

// NewGeocoder creates a Geocoding API client.
func NewGeocoder(apiKey string, opts ...GeocoderOption) *Geocoder {
	g := &Geocoder{
		apiKey:  apiKey,
		baseURL: defaultGeocodeURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Resolve turns a free-text address into a coordinate. Zero upstream results
// map to domain.ErrGeocodeNotFound, quota exhaustion to
// domain.ErrGeocodeQuota and transport or protocol trouble to
// domain.ErrGeocodeService.
func (g *Geocoder) Resolve(ctx context.Context, address string) (domain.Coordinate, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %v", domain.ErrGeocodeService, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %v", domain.ErrGeocodeService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinate{}, fmt.Errorf("%w: http %d", domain.ErrGeocodeService, resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Coordinate{}, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	switch body.Status {
	case statusOK:
	case statusZeroResults:
		return domain.Coordinate{}, domain.ErrGeocodeNotFound
	case statusOverQuota:
		return domain.Coordinate{}, domain.ErrGeocodeQuota
	default:
		return domain.Coordinate{}, fmt.Errorf("%w: status %s", domain.ErrGeocodeService, body.Status)
	}

	if len(body.Results) == 0 {
		return domain.Coordinate{}, domain.ErrGeocodeNotFound
	}

	loc := body.Results[0].Geometry.Location
	coord := domain.Coordinate{Lat: loc.Lat, Lng: loc.Lng}
	if !coord.Valid() {
		return domain.Coordinate{}, fmt.Errorf("%w: coordinate out of range", domain.ErrMalformedResponse)
	}
	return coord, nil
}
