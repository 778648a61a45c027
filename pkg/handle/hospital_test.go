package handle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/facility"
	"github.com/helioscommand/helios/pkg/ports"
)

// stubGeocoder resolves every address to a fixed coordinate, recording the
// last address it was asked about.
type stubGeocoder struct {
	coord       domain.Coordinate
	err         error
	lastAddress string
}

func (s *stubGeocoder) Resolve(ctx context.Context, address string) (domain.Coordinate, error) {
	s.lastAddress = address
	if s.err != nil {
		return domain.Coordinate{}, s.err
	}
	return s.coord, nil
}

func adyarIndex() *facility.Index {
	return facility.NewIndex([]domain.Facility{
		{Name: "Apollo Hospital", Coordinate: domain.Coordinate{Lat: 13.0358, Lng: 80.2505}},
		{Name: "Fortis Malar Hospital", Coordinate: domain.Coordinate{Lat: 13.0055, Lng: 80.2572}},
	})
}

func TestHospital_Handle(t *testing.T) {
	geocoder := &stubGeocoder{coord: domain.Coordinate{Lat: 13.0106, Lng: 80.2572}}
	h := NewHospital(geocoder, adyarIndex())

	res, err := h.Handle(context.Background(), ports.Request{
		Query:  "nearest hospital in Adyar, Chennai",
		Intent: domain.IntentHospital,
	})
	require.NoError(t, err)

	assert.Equal(t, "Adyar, Chennai", geocoder.lastAddress,
		"location phrase after the marker should be geocoded")

	require.Equal(t, domain.KindHospital, res.Kind)
	require.NotNil(t, res.Hospital)
	assert.Equal(t, "Fortis Malar Hospital", res.Hospital.Name)
	assert.InDelta(t, 0.567094, res.Hospital.DistanceKm, 0.0001)
	assert.Equal(t, 1, res.Hospital.ETAMinutes)
}

func TestHospital_Handle_CustomSpeed(t *testing.T) {
	geocoder := &stubGeocoder{coord: domain.Coordinate{Lat: 13.0106, Lng: 80.2572}}
	h := NewHospital(geocoder, adyarIndex(), WithAverageSpeed(10))

	res, err := h.Handle(context.Background(), ports.Request{Query: "hospital in Adyar"})
	require.NoError(t, err)
	// 0.567 km at 10 km/h is 3.4 minutes.
	assert.Equal(t, 3, res.Hospital.ETAMinutes)
}

func TestHospital_Handle_GeocodeFailures(t *testing.T) {
	for _, sentinel := range []error{
		domain.ErrGeocodeNotFound,
		domain.ErrGeocodeService,
		domain.ErrGeocodeQuota,
	} {
		h := NewHospital(&stubGeocoder{err: sentinel}, adyarIndex())
		_, err := h.Handle(context.Background(), ports.Request{Query: "hospital in Nowhere"})
		assert.ErrorIs(t, err, sentinel)
	}
}

func TestHospital_Handle_EmptyIndex(t *testing.T) {
	geocoder := &stubGeocoder{coord: domain.Coordinate{Lat: 13, Lng: 80}}
	h := NewHospital(geocoder, facility.NewIndex(nil))

	_, err := h.Handle(context.Background(), ports.Request{Query: "hospital in Adyar"})
	assert.ErrorIs(t, err, domain.ErrEmptyIndex)
}

func TestExtractLocation(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"nearest hospital in Adyar, Chennai", "Adyar, Chennai"},
		{"pharmacies near Velachery", "Velachery"},
		{"beds available at Gandhi Nagar", "Gandhi Nagar"},
		{"shops around T Nagar", "T Nagar"},
		{"hospital in Chennai near Marina", "Marina"},
		{"Adyar", "Adyar"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, extractLocation(tt.query))
		})
	}
}
