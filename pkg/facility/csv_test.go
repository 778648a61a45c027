package facility

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "facilities.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCSV_SkipsMalformedRows(t *testing.T) {
	path := writeDataset(t, `Name,Latitude,Longitude,Address
Fortis Malar Hospital,13.0055,80.2572,"Gandhi Nagar, Adyar"
,13.0100,80.2500,missing name
Apollo Hospital,not-a-number,80.2505,bad latitude
Out Of Range,95.0,80.2505,invalid coordinate
MIOT Hospital,13.0187,80.1975,Manapakkam
`)

	records, err := LoadCSV(path, nil)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Fortis Malar Hospital", records[0].Name)
	assert.Equal(t, "Gandhi Nagar, Adyar", records[0].Address)
	assert.Equal(t, "MIOT Hospital", records[1].Name)
	assert.InDelta(t, 13.0187, records[1].Coordinate.Lat, 1e-9)
}

func TestLoadCSV_HeaderIsCaseInsensitive(t *testing.T) {
	path := writeDataset(t, "name,LATITUDE,longitude,capacity\nClinic,12.5,80.1,40\n")

	records, err := LoadCSV(path, nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 40, records[0].Capacity)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"), nil)
	assert.Error(t, err)
}

func TestLoadCSV_MissingRequiredColumn(t *testing.T) {
	path := writeDataset(t, "Name,Latitude\nX,13.0\n")
	_, err := LoadCSV(path, nil)
	assert.ErrorContains(t, err, "longitude")
}

func TestLoadCSV_ZeroValidRecords(t *testing.T) {
	path := writeDataset(t, "Name,Latitude,Longitude\n,13.0,80.0\n")
	_, err := LoadCSV(path, nil)
	assert.ErrorContains(t, err, "no valid records")
}
