package handle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/ports"
)

type stubPlaces struct {
	places     []domain.Place
	err        error
	lastRadius int
	lastQuery  string
}

func (s *stubPlaces) SearchNearby(ctx context.Context, center domain.Coordinate, radiusMeters int, category string) ([]domain.Place, error) {
	s.lastRadius = radiusMeters
	s.lastQuery = category
	return s.places, s.err
}

func TestShops_Handle(t *testing.T) {
	geocoder := &stubGeocoder{coord: domain.Coordinate{Lat: 12.9815, Lng: 80.2180}}
	searcher := &stubPlaces{places: []domain.Place{
		{Name: "Apollo Pharmacy", Address: "Velachery Main Road"},
		{Name: "MedPlus", Address: "100 Feet Road"},
	}}

	h := NewShops(geocoder, searcher)
	res, err := h.Handle(context.Background(), ports.Request{Query: "pharmacies near Velachery"})
	require.NoError(t, err)

	assert.Equal(t, "Velachery", geocoder.lastAddress)
	assert.Equal(t, DefaultSearchRadiusMeters, searcher.lastRadius)
	require.Equal(t, domain.KindPlaces, res.Kind)
	require.Len(t, res.Places.Places, 2)
	assert.Equal(t, "Apollo Pharmacy", res.Places.Places[0].Name)
}

func TestShops_Handle_EmptyListIsSuccess(t *testing.T) {
	geocoder := &stubGeocoder{coord: domain.Coordinate{Lat: 12.98, Lng: 80.21}}
	h := NewShops(geocoder, &stubPlaces{})

	res, err := h.Handle(context.Background(), ports.Request{Query: "pharmacy near Velachery"})
	require.NoError(t, err)
	assert.Equal(t, domain.KindPlaces, res.Kind)
	assert.Empty(t, res.Places.Places)
	assert.True(t, res.OK())
}

func TestShops_Handle_UpstreamError(t *testing.T) {
	geocoder := &stubGeocoder{coord: domain.Coordinate{Lat: 12.98, Lng: 80.21}}
	h := NewShops(geocoder, &stubPlaces{err: domain.ErrUpstream})

	_, err := h.Handle(context.Background(), ports.Request{Query: "pharmacy near Velachery"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestShops_Handle_GeocodeError(t *testing.T) {
	h := NewShops(&stubGeocoder{err: domain.ErrGeocodeNotFound}, &stubPlaces{})
	_, err := h.Handle(context.Background(), ports.Request{Query: "pharmacy near Nowhere"})
	assert.ErrorIs(t, err, domain.ErrGeocodeNotFound)
}

func TestShops_Options(t *testing.T) {
	geocoder := &stubGeocoder{coord: domain.Coordinate{Lat: 12.98, Lng: 80.21}}
	searcher := &stubPlaces{}
	h := NewShops(geocoder, searcher, WithSearchRadius(500), WithCategory("pharmacy"))

	_, err := h.Handle(context.Background(), ports.Request{Query: "pharmacy near Velachery"})
	require.NoError(t, err)
	assert.Equal(t, 500, searcher.lastRadius)
	assert.Equal(t, "pharmacy", searcher.lastQuery)
}
