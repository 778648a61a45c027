package googlemaps_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioscommand/helios/pkg/adapters/googlemaps"
	"github.com/helioscommand/helios/pkg/domain"
)

func TestGeocoder_Resolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Adyar, Chennai", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 13.0012, "lng": 80.2565}}}]
		}`))
	}))
	defer srv.Close()

	g := googlemaps.NewGeocoder("test-key", googlemaps.WithGeocodeURL(srv.URL))
	coord, err := g.Resolve(context.Background(), "Adyar, Chennai")
	require.NoError(t, err)
	assert.InDelta(t, 13.0012, coord.Lat, 1e-9)
	assert.InDelta(t, 80.2565, coord.Lng, 1e-9)
}

func TestGeocoder_Resolve_StatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"zero results", 200, `{"status": "ZERO_RESULTS", "results": []}`, domain.ErrGeocodeNotFound},
		{"quota exhausted", 200, `{"status": "OVER_QUERY_LIMIT"}`, domain.ErrGeocodeQuota},
		{"denied", 200, `{"status": "REQUEST_DENIED"}`, domain.ErrGeocodeService},
		{"ok without results", 200, `{"status": "OK", "results": []}`, domain.ErrGeocodeNotFound},
		{"server error", 500, `boom`, domain.ErrGeocodeService},
		{"garbage body", 200, `{{{`, domain.ErrMalformedResponse},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			g := googlemaps.NewGeocoder("test-key", googlemaps.WithGeocodeURL(srv.URL))
			_, err := g.Resolve(context.Background(), "somewhere")
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestPlaces_SearchNearby(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("X-Goog-Api-Key"))
		assert.Equal(t, "places.displayName,places.formattedAddress", r.Header.Get("X-Goog-FieldMask"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pharmacy medical shop drugstore", req["textQuery"])
		assert.Equal(t, "DISTANCE", req["rankPreference"])
		assert.Equal(t, float64(10), req["pageSize"])

		circle := req["locationBias"].(map[string]any)["circle"].(map[string]any)
		assert.Equal(t, float64(2000), circle["radius"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"places": [
				{"displayName": {"text": "Apollo Pharmacy"}, "formattedAddress": "Velachery Main Road"},
				{"displayName": {"text": "MedPlus"}, "formattedAddress": "Taramani Link Road"}
			]
		}`))
	}))
	defer srv.Close()

	p := googlemaps.NewPlaces("test-key", googlemaps.WithPlacesURL(srv.URL))
	places, err := p.SearchNearby(context.Background(),
		domain.Coordinate{Lat: 12.9791, Lng: 80.2212}, 2000, "pharmacy medical shop drugstore")
	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, "Apollo Pharmacy", places[0].Name)
	assert.Equal(t, "Taramani Link Road", places[1].Address)
}

func TestPlaces_SearchNearby_EmptyIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := googlemaps.NewPlaces("test-key", googlemaps.WithPlacesURL(srv.URL))
	places, err := p.SearchNearby(context.Background(), domain.Coordinate{Lat: 1, Lng: 1}, 2000, "pharmacy")
	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestPlaces_SearchNearby_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := googlemaps.NewPlaces("test-key", googlemaps.WithPlacesURL(srv.URL))
	_, err := p.SearchNearby(context.Background(), domain.Coordinate{Lat: 1, Lng: 1}, 2000, "pharmacy")
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
