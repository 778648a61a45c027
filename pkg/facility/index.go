// Package facility holds the read-only facility dataset: a CSV loader that
// validates rows and an in-memory index answering nearest-facility queries by
// linear scan. The dataset covers a single metropolitan area, so no spatial
// index is needed.
package facility

import (
	"github.com/helioscommand/helios/pkg/domain"
	"github.com/helioscommand/helios/pkg/geo"
)

// Index is the immutable nearest-match collection. It is built once at
// startup and is safe for concurrent reads without synchronization.
type Index struct {
	records []domain.Facility
}

// NewIndex builds an index from a record collection, excluding records with
// out-of-range coordinates. Load order is preserved for tie-breaking.
func NewIndex(records []domain.Facility) *Index {
	valid := make([]domain.Facility, 0, len(records))
	for _, r := range records {
		if r.Coordinate.Valid() {
			valid = append(valid, r)
		}
	}
	return &Index{records: valid}
}

// Len returns the number of valid records in the index.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Nearest returns the record minimizing the great-circle distance to c, with
// its distance in km. Equidistant records resolve to the first-loaded one, so
// results are reproducible across calls. Returns domain.ErrEmptyIndex when
// the index holds no records.
func (ix *Index) Nearest(c domain.Coordinate) (domain.Facility, float64, error) {
	if len(ix.records) == 0 {
		return domain.Facility{}, 0, domain.ErrEmptyIndex
	}

	best := ix.records[0]
	bestDist := geo.DistanceKm(c, best.Coordinate)
	for _, r := range ix.records[1:] {
		if d := geo.DistanceKm(c, r.Coordinate); d < bestDist {
			best = r
			bestDist = d
		}
	}
	return best, bestDist, nil
}
