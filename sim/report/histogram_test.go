package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votesim/votesim/sim"
)

func TestHistogramRows_FillsGapsAndAverages(t *testing.T) {
	// GIVEN two trials' worth of waits with an empty minute in between
	histo := sim.WaitHistogram{2: 4, 4: 3}

	// WHEN rows are built
	rows := HistogramRows(histo, 2)

	// THEN every minute from 2 to 4 appears, averaged per trial, markers rounded up
	require.Len(t, rows, 3)
	assert.Equal(t, HistogramRow{Minute: 2, Average: 2, Markers: 2}, rows[0])
	assert.Equal(t, HistogramRow{Minute: 3, Average: 0, Markers: 0}, rows[1])
	assert.Equal(t, HistogramRow{Minute: 4, Average: 1.5, Markers: 2}, rows[2])
}

func TestHistogramRows_BusiestBucketCappedAtFiftyMarkers(t *testing.T) {
	// GIVEN a busy bucket averaging 1000 voters per trial and a small one
	histo := sim.WaitHistogram{0: 3000, 1: 30, 5: 3}

	// WHEN rows are built over 3 trials
	rows := HistogramRows(histo, 3)

	// THEN the busiest bucket is scaled to 50 markers and the rest proportionally, rounded up
	require.Len(t, rows, 6)
	assert.Equal(t, 50, rows[0].Markers)
	assert.Equal(t, 1, rows[1].Markers)
	assert.Equal(t, 1, rows[5].Markers)
	for _, row := range rows {
		assert.LessOrEqual(t, row.Markers, MaxHistogramMarkers)
	}
}

func TestHistogramRows_BusiestBucketNotFirst(t *testing.T) {
	histo := sim.WaitHistogram{0: 1, 9: 400}
	rows := HistogramRows(histo, 1)
	require.Len(t, rows, 10)
	assert.Equal(t, 50, rows[9].Markers)
	assert.Equal(t, 1, rows[0].Markers)
}

func TestHistogramRows_DegenerateInputs(t *testing.T) {
	assert.Nil(t, HistogramRows(sim.WaitHistogram{}, 3))

	rows := HistogramRows(sim.WaitHistogram{7: 5}, 0)
	require.Len(t, rows, 1)
	assert.Equal(t, 5.0, rows[0].Average)
	assert.Equal(t, 5, rows[0].Markers)
}

func TestRenderHistogram(t *testing.T) {
	p := &sim.Precinct{Number: 12, Name: "LIBRARY", HistogramStations: []int{3, 4, 5}}
	var buf bytes.Buffer

	err := RenderHistogram(&buf, p, 4, sim.WaitHistogram{0: 2, 1: 1}, 1)

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "ONEPCT: HISTO STATIONS    4\n")
	assert.Contains(t, out, "ONEPCT: HISTO      0:    2.00: **\n")
	assert.Contains(t, out, "ONEPCT: HISTO      1:    1.00: *\n")
	assert.True(t, strings.HasSuffix(out, "HISTO\n\n"))
}
