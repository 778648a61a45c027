package facility

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/helioscommand/helios/pkg/domain"
)

// Column headers recognized in the dataset file. Matching is case-insensitive
// and order-independent; Name, Latitude and Longitude are required.
const (
	colName      = "name"
	colLatitude  = "latitude"
	colLongitude = "longitude"
	colAddress   = "address"
	colCapacity  = "capacity"
)

// LoadCSV reads the facility dataset from a tabular file. Malformed rows
// (missing name, unparseable or out-of-range coordinates) are skipped with a
// warning; a missing file or a file yielding zero valid records is an error,
// since an empty index is a fatal startup condition.
func LoadCSV(path string, logger *slog.Logger) ([]domain.Facility, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open facility dataset: %w", err)
	}
	defer f.Close()

	records, err := parseCSV(f, logger)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("facility dataset %s: no valid records", path)
	}
	return records, nil
}

func parseCSV(r io.Reader, logger *slog.Logger) ([]domain.Facility, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows are validated individually

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{colName, colLatitude, colLongitude} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("dataset header missing %q column", required)
		}
	}

	var out []domain.Facility
	line := 1
	for {
		row, err := cr.Read()
		line++
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed row, not fatal.
			logger.Warn("skipping unreadable dataset row", "line", line, "err", err)
			continue
		}

		rec, ok := parseRow(row, cols)
		if !ok {
			logger.Warn("skipping malformed dataset row", "line", line)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseRow(row []string, cols map[string]int) (domain.Facility, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	name := field(colName)
	if name == "" {
		return domain.Facility{}, false
	}

	lat, err := strconv.ParseFloat(field(colLatitude), 64)
	if err != nil {
		return domain.Facility{}, false
	}
	lng, err := strconv.ParseFloat(field(colLongitude), 64)
	if err != nil {
		return domain.Facility{}, false
	}

	coord := domain.Coordinate{Lat: lat, Lng: lng}
	if !coord.Valid() {
		return domain.Facility{}, false
	}

	rec := domain.Facility{Name: name, Coordinate: coord, Address: field(colAddress)}
	if capacity := field(colCapacity); capacity != "" {
		if n, err := strconv.Atoi(capacity); err == nil {
			rec.Capacity = n
		}
	}
	return rec, true
}
