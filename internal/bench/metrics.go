// Package bench runs fuzzed sparse tensor sweeps and reports latency
// statistics for construction and coalescing.
package bench

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LatencyStats summarizes a series of measured durations.
type LatencyStats struct {
	P50Ms float64
	P95Ms float64
	P99Ms float64
	AvgMs float64
	N     int
}

// Percentile returns the p-th percentile (0-100) of a sorted slice.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// StatsFromDurations computes P50/P95/P99/avg from measured durations.
func StatsFromDurations(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}
	ms := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		ms[i] = float64(d.Nanoseconds()) / 1e6
		sum += ms[i]
	}
	sort.Float64s(ms)
	return LatencyStats{
		P50Ms: Percentile(ms, 50),
		P95Ms: Percentile(ms, 95),
		P99Ms: Percentile(ms, 99),
		AvgMs: sum / float64(len(ms)),
		N:     len(ms),
	}
}

// Row is the aggregated result of one sweep section.
type Row struct {
	Sweep     string
	Density   float64
	Coalesced bool
	Steps     int
	MeanNNZ   float64
	Build     LatencyStats
	Coalesce  LatencyStats // Zero-valued for sections generating coalesced tensors.
}

// WriteCSV writes sweep rows as a CSV report.
func WriteCSV(rows []Row, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Write([]string{
		"Sweep", "Density", "Coalesced", "Steps", "MeanNNZ",
		"BuildP50Ms", "BuildP95Ms", "BuildP99Ms", "BuildAvgMs",
		"CoalesceP50Ms", "CoalesceP95Ms", "CoalesceP99Ms", "CoalesceAvgMs",
	})
	for _, r := range rows {
		w.Write([]string{
			r.Sweep,
			fmt.Sprintf("%g", r.Density),
			fmt.Sprintf("%t", r.Coalesced),
			fmt.Sprintf("%d", r.Steps),
			fmt.Sprintf("%.1f", r.MeanNNZ),
			fmt.Sprintf("%.3f", r.Build.P50Ms),
			fmt.Sprintf("%.3f", r.Build.P95Ms),
			fmt.Sprintf("%.3f", r.Build.P99Ms),
			fmt.Sprintf("%.3f", r.Build.AvgMs),
			fmt.Sprintf("%.3f", r.Coalesce.P50Ms),
			fmt.Sprintf("%.3f", r.Coalesce.P95Ms),
			fmt.Sprintf("%.3f", r.Coalesce.P99Ms),
			fmt.Sprintf("%.3f", r.Coalesce.AvgMs),
		})
	}
	w.Flush()
	return w.Error()
}

// WriteJSON writes any report value as indented JSON.
func WriteJSON(v any, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ReportPath builds a dated report path under dir.
func ReportPath(dir, prefix, ext string) string {
	return filepath.Join(dir, prefix+"-"+time.Now().Format("20060102")+"."+ext)
}
