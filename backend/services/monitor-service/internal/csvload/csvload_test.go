package csvload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReadings(t *testing.T) {
	t.Parallel()

	in := strings.NewReader(strings.TrimSpace(`
timestamp,voltage,current,power
2024-03-01T00:30:00Z,230.5,9.5,2.2
2024-03-01T00:00:00Z,230.0,8.7,2.0
2024-03-01 01:00:00,231.0,10.4,2.4
`))

	readings, err := ParseReadings(in)
	require.NoError(t, err)
	require.Len(t, readings, 3)

	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, base, readings[0].Timestamp)
	assert.Equal(t, base.Add(30*time.Minute), readings[1].Timestamp)
	assert.Equal(t, base.Add(time.Hour), readings[2].Timestamp)
	assert.Equal(t, 2.0, readings[0].Power)
	assert.Equal(t, 230.0, readings[0].Voltage)
	assert.Equal(t, "row-3", readings[0].ID)
}

func TestParseReadingsPowerOnly(t *testing.T) {
	t.Parallel()

	readings, err := ParseReadings(strings.NewReader("Power,Timestamp\n1.5,2024-03-01T00:00:00+02:00\n"))
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 1.5, readings[0].Power)
	assert.Zero(t, readings[0].Voltage)
	assert.Equal(t, time.UTC, readings[0].Timestamp.Location())
	assert.Equal(t, 22, readings[0].Timestamp.Hour())
}

func TestParseReadingsSkipsInvalidRows(t *testing.T) {
	t.Parallel()

	in := strings.NewReader(strings.TrimSpace(`
timestamp,voltage,current,power
2024-03-01T00:00:00Z,230,8.7,2.0
2024-03-01T00:15:00Z,230,8.7,NaN
not-a-time,230,8.7,2.0
2024-03-01T00:30:00Z,230,8.7,-1
2024-03-01T00:45:00Z,230,8.7,
2024-03-01T01:00:00Z,230,8.7,2.4
`))

	readings, err := ParseReadings(in)
	require.Error(t, err)
	assert.Len(t, readings, 2)
	for _, row := range []string{"row 3", "row 4", "row 5", "row 6"} {
		assert.Contains(t, err.Error(), row)
	}
}

func TestParseReadingsBadHeader(t *testing.T) {
	t.Parallel()

	_, err := ParseReadings(strings.NewReader("time,meterusage\n2019-01-01 00:15:00,55.09\n"))
	require.Error(t, err)

	_, err = ParseReadings(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseReadingsEmptyBody(t *testing.T) {
	t.Parallel()

	readings, err := ParseReadings(strings.NewReader("timestamp,power\n"))
	require.NoError(t, err)
	assert.NotNil(t, readings)
	assert.Empty(t, readings)
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "readings.csv")
	require.NoError(t, os.WriteFile(path, []byte("timestamp,power\n2024-03-01T00:00:00Z,1\n"), 0o600))

	readings, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, readings, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
