package googlemaps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/helioscommand/helios/pkg/domain"
)

const (
	defaultPlacesURL = "https://places.googleapis.com/v1/places:searchText"

	// fieldMask limits the response to the fields the assistant renders.
	fieldMask = "places.displayName,places.formattedAddress"

	resultPageSize = 10
)

// Places implements ports.PlacesSearcher on the Places Text Search API.
type Places struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// PlacesOption configures a Places client.
type PlacesOption func(*Places)

// WithPlacesURL overrides the API endpoint, for tests.
func WithPlacesURL(u string) PlacesOption {
	return func(p *Places) {
		p.baseURL = u
	}
}

// WithPlacesHTTPClient overrides the HTTP client.
func WithPlacesHTTPClient(c *http.Client) PlacesOption {
	return func(p *Places) {
		if c != nil {
			p.client = c
		}
	}
}

// NewPlaces creates a Places API client.
func NewPlaces(apiKey string, opts ...PlacesOption) *Places {
	p := &Places{
		apiKey:  apiKey,
		baseURL: defaultPlacesURL,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type searchTextRequest struct {
	TextQuery    string `json:"textQuery"`
	LocationBias struct {
		Circle struct {
			Center struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationBias"`
	RankPreference string `json:"rankPreference"`
	PageSize       int    `json:"pageSize"`
}

type searchTextResponse struct {
	Places []struct {
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		FormattedAddress string `json:"formattedAddress"`
	} `json:"places"`
}

// SearchNearby runs a text search biased to a circle around the center,
// ranked by distance. An empty result set is a success.
func (p *Places) SearchNearby(ctx context.Context, center domain.Coordinate, radiusMeters int, category string) ([]domain.Place, error) {
	payload := searchTextRequest{
		TextQuery:      category,
		RankPreference: "DISTANCE",
		PageSize:       resultPageSize,
	}
	payload.LocationBias.Circle.Center.Latitude = center.Lat
	payload.LocationBias.Circle.Center.Longitude = center.Lng
	payload.LocationBias.Circle.Radius = float64(radiusMeters)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", p.apiKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: http %d", domain.ErrUpstream, resp.StatusCode)
	}

	var decoded searchTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	places := make([]domain.Place, 0, len(decoded.Places))
	for _, pl := range decoded.Places {
		places = append(places, domain.Place{
			Name:    pl.DisplayName.Text,
			Address: pl.FormattedAddress,
		})
	}
	return places, nil
}
