// Package testutil provides shared test infrastructure for the votesim simulator.
// It consolidates fixture builders and assertion helpers used across
// sim/, sim/input/ and sim/report/ test packages.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// FlatServiceTimes returns a service-time table of n identical durations,
// so every sampled duration is known regardless of the random stream.
func FlatServiceTimes(n, seconds int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = seconds
	}
	return out
}

// FlatFractions spreads total percent evenly over hours.
func FlatFractions(hours int, total float64) []float64 {
	out := make([]float64, hours)
	if hours == 0 {
		return out
	}
	for i := range out {
		out[i] = total / float64(hours)
	}
	return out
}

// WriteTempFile writes content to name inside a per-test temporary directory
// and returns the full path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
