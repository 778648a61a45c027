// Package geo provides the great-circle distance math and the derived travel
// time estimate used for nearest-facility answers. All functions are pure and
// CPU-only; callers are responsible for rejecting invalid coordinates first.
package geo

import (
	"math"

	"github.com/helioscommand/helios/pkg/domain"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// DefaultAverageSpeedKmh is the assumed travel speed for ETA estimates.
const DefaultAverageSpeedKmh = 30.0

// DistanceKm computes the great-circle distance between two coordinates using
// the haversine formula. Symmetric: DistanceKm(a, b) == DistanceKm(b, a).
func DistanceKm(a, b domain.Coordinate) float64 {
	phi1 := radians(a.Lat)
	phi2 := radians(b.Lat)
	dPhi := radians(b.Lat - a.Lat)
	dLambda := radians(b.Lng - a.Lng)

	h := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// ETAMinutes derives a travel-time estimate from a distance, rounded to the
// nearest whole minute. A non-positive speed falls back to the default.
func ETAMinutes(distanceKm, averageSpeedKmh float64) int {
	if averageSpeedKmh <= 0 {
		averageSpeedKmh = DefaultAverageSpeedKmh
	}
	return int(math.Round(distanceKm / averageSpeedKmh * 60))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
