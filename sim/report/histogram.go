package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/votesim/votesim/sim"
)

// MaxHistogramMarkers bounds the marker run of the busiest bucket.
const MaxHistogramMarkers = 50

// HistogramRow is one rendered minute bucket.
type HistogramRow struct {
	Minute  int
	Average float64 // voters per trial in this bucket
	Markers int
}

// HistogramRows averages histo over iterations and scales the marker runs so the
// busiest bucket gets at most MaxHistogramMarkers. Every minute between the
// smallest and largest populated bucket gets a row. A non-positive iteration
// count is treated as one.
func HistogramRows(histo sim.WaitHistogram, iterations int) []HistogramRow {
	lo, hi, ok := histo.Bounds()
	if !ok {
		return nil
	}
	if iterations <= 0 {
		iterations = 1
	}

	peak := float64(histo.Peak()) / float64(iterations)
	votersPerMarker := 1.0
	if peak > MaxHistogramMarkers {
		votersPerMarker = math.Ceil(peak / MaxHistogramMarkers)
	}

	rows := make([]HistogramRow, 0, hi-lo+1)
	for minute := lo; minute <= hi; minute++ {
		avg := float64(histo[minute]) / float64(iterations)
		rows = append(rows, HistogramRow{
			Minute:  minute,
			Average: avg,
			Markers: int(math.Ceil(avg / votersPerMarker)),
		})
	}
	return rows
}

// RenderHistogram writes the wait histogram of one candidate station count.
func RenderHistogram(w io.Writer, p *sim.Precinct, stations int, histo sim.WaitHistogram, iterations int) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%sHISTO %s\n", tagPrecinct, p.String())
	fmt.Fprintf(&sb, "%sHISTO STATIONS %4d\n", tagPrecinct, stations)
	for _, row := range HistogramRows(histo, iterations) {
		fmt.Fprintf(&sb, "%sHISTO %6d: %7.2f: %s\n", tagPrecinct, row.Minute, row.Average, strings.Repeat("*", row.Markers))
	}
	sb.WriteString("HISTO\n\n")

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write histogram: %w", err)
	}
	return nil
}
