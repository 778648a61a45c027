package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/helioscommand/helios/pkg/domain"
)

func TestDistanceKm_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Coordinate
		want float64
	}{
		{
			name: "one degree of longitude at the equator",
			a:    domain.Coordinate{Lat: 0, Lng: 0},
			b:    domain.Coordinate{Lat: 0, Lng: 1},
			want: 111.1949,
		},
		{
			name: "chennai to bangalore",
			a:    domain.Coordinate{Lat: 13.0827, Lng: 80.2707},
			b:    domain.Coordinate{Lat: 12.9716, Lng: 77.5946},
			want: 290.1720,
		},
		{
			name: "adyar to fortis malar",
			a:    domain.Coordinate{Lat: 13.0106, Lng: 80.2572},
			b:    domain.Coordinate{Lat: 13.0055, Lng: 80.2572},
			want: 0.5671,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DistanceKm(tt.a, tt.b), 0.001)
		})
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	pairs := [][2]domain.Coordinate{
		{{Lat: 13.0106, Lng: 80.2572}, {Lat: 13.0055, Lng: 80.2572}},
		{{Lat: -33.8688, Lng: 151.2093}, {Lat: 51.5074, Lng: -0.1278}},
		{{Lat: 0, Lng: 179.9}, {Lat: 0, Lng: -179.9}},
	}

	for _, p := range pairs {
		assert.Equal(t, DistanceKm(p[0], p[1]), DistanceKm(p[1], p[0]))
	}
}

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	c := domain.Coordinate{Lat: 13.0055, Lng: 80.2572}
	assert.InDelta(t, 0, DistanceKm(c, c), 1e-9)
}

func TestETAMinutes(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		speed    float64
		want     int
	}{
		{"rounds down below half", 0.567094, 30, 1}, // 1.134 min
		{"rounds up above half", 10, 30, 20},
		{"rounds half away from zero", 0.25, 30, 1}, // exactly 0.5 min
		{"zero distance", 0, 30, 0},
		{"non-positive speed falls back to default", 30, 0, 60},
		{"custom speed", 60, 60, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ETAMinutes(tt.distance, tt.speed))
		})
	}
}
