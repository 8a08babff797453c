package bench

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.Equal(t, 1.0, Percentile(sorted, 0))
	assert.Equal(t, 5.0, Percentile(sorted, 50))
	assert.Equal(t, 9.0, Percentile(sorted, 95))
	assert.Equal(t, 10.0, Percentile(sorted, 100))
	assert.Equal(t, 0.0, Percentile(nil, 50))
}

func TestStatsFromDurations(t *testing.T) {
	durations := []time.Duration{
		4 * time.Millisecond,
		2 * time.Millisecond,
		1 * time.Millisecond,
		3 * time.Millisecond,
	}

	stats := StatsFromDurations(durations)
	assert.Equal(t, 4, stats.N)
	assert.InDelta(t, 2.5, stats.AvgMs, 1e-9)
	assert.InDelta(t, 2.0, stats.P50Ms, 1e-9)
	assert.InDelta(t, 3.0, stats.P95Ms, 1e-9)

	assert.Equal(t, LatencyStats{}, StatsFromDurations(nil))
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{
		{Sweep: "mm", Density: 0.1, Coalesced: false, Steps: 5, MeanNNZ: 12.4,
			Build: LatencyStats{P50Ms: 1.5, AvgMs: 1.6, N: 5}},
		{Sweep: "mm", Density: 0.1, Coalesced: true, Steps: 5, MeanNNZ: 11.0,
			Build: LatencyStats{P50Ms: 2.0, AvgMs: 2.1, N: 5}},
	}

	path := filepath.Join(t.TempDir(), "report", "sweep.csv")
	require.NoError(t, WriteCSV(rows, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	assert.Equal(t, "Sweep", records[0][0])
	assert.Equal(t, []string{"mm", "0.1", "false", "5", "12.4"}, records[1][:5])
	assert.Equal(t, "true", records[2][2])
}

func TestWriteJSON(t *testing.T) {
	result := &Result{Rows: []Row{{Sweep: "mm", Density: 0.05, Steps: 3}}}

	path := filepath.Join(t.TempDir(), "report", "sweep.json")
	require.NoError(t, WriteJSON(result, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got Result
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "mm", got.Rows[0].Sweep)
	assert.Equal(t, 0.05, got.Rows[0].Density)
}

func TestReportPath(t *testing.T) {
	path := ReportPath("out", "sweep", "csv")
	assert.True(t, strings.HasPrefix(path, filepath.Join("out", "sweep-")))
	assert.True(t, strings.HasSuffix(path, ".csv"))
}
