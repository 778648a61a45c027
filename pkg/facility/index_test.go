package facility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helioscommand/helios/pkg/domain"
)

func TestIndex_Nearest_PicksMinimumDistance(t *testing.T) {
	query := domain.Coordinate{Lat: 13.0106, Lng: 80.2572}

	// A is roughly 0.5 km north of the query point, B roughly 0.2 km.
	ix := NewIndex([]domain.Facility{
		{Name: "A", Coordinate: domain.Coordinate{Lat: 13.0151, Lng: 80.2572}},
		{Name: "B", Coordinate: domain.Coordinate{Lat: 13.0124, Lng: 80.2572}},
	})

	got, dist, err := ix.Nearest(query)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	assert.InDelta(t, 0.2, dist, 0.01)
}

func TestIndex_Nearest_TieBreaksFirstLoaded(t *testing.T) {
	query := domain.Coordinate{Lat: 0, Lng: 0}

	// Same coordinate for both records, so distances are exactly equal.
	ix := NewIndex([]domain.Facility{
		{Name: "first", Coordinate: domain.Coordinate{Lat: 0.01, Lng: 0}},
		{Name: "second", Coordinate: domain.Coordinate{Lat: 0.01, Lng: 0}},
	})

	for i := 0; i < 10; i++ {
		got, _, err := ix.Nearest(query)
		require.NoError(t, err)
		assert.Equal(t, "first", got.Name, "tie-break must be deterministic across calls")
	}
}

func TestIndex_Nearest_EmptyIndex(t *testing.T) {
	ix := NewIndex(nil)
	_, _, err := ix.Nearest(domain.Coordinate{Lat: 0, Lng: 0})
	assert.ErrorIs(t, err, domain.ErrEmptyIndex)
}

func TestNewIndex_ExcludesInvalidCoordinates(t *testing.T) {
	ix := NewIndex([]domain.Facility{
		{Name: "ok", Coordinate: domain.Coordinate{Lat: 13, Lng: 80}},
		{Name: "bad lat", Coordinate: domain.Coordinate{Lat: 91, Lng: 80}},
		{Name: "bad lng", Coordinate: domain.Coordinate{Lat: 13, Lng: -181}},
	})

	assert.Equal(t, 1, ix.Len())

	got, _, err := ix.Nearest(domain.Coordinate{Lat: 13, Lng: 80})
	require.NoError(t, err)
	assert.Equal(t, "ok", got.Name)
}
