package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votesim/votesim/sim"
	"github.com/votesim/votesim/sim/internal/testutil"
)

func testConfig() *sim.RunConfig {
	return &sim.RunConfig{
		Seed:                  42,
		ElectionDayHours:      2,
		MeanServiceSeconds:    0,
		MinExpectedToSimulate: 0,
		MaxExpectedToSimulate: 100,
		TooLongMinutes:        30,
		Iterations:            2,
		ArrivalZeroPercent:    10,
		ArrivalFractions:      testutil.FlatFractions(2, 90),
		ServiceTimes:          testutil.FlatServiceTimes(4, 120),
	}
}

func TestFormatTrial(t *testing.T) {
	p := &sim.Precinct{Number: 3, Name: "SCHOOL", ExpectedVoters: 200}
	ts := sim.TrialStats{
		Iteration: 1, Stations: 5, ExpectedVoters: 200,
		MeanWaitSeconds: 90, DevWaitSeconds: 30,
		TooLong: 20, TooLongPlus10: 10, TooLongPlus20: 2,
	}

	line := FormatTrial(p, ts)

	assert.Equal(t, "  1    3 SCHOOL                      200   5 stations, mean/dev wait (mins)     1.50     0.50 toolong     20  10.00    10   5.00     2   1.00", line)
}

func TestTextReporter_FullBatch(t *testing.T) {
	// GIVEN a text reporter driving a small batch, one precinct asking for a histogram
	cfg := testConfig()
	var buf bytes.Buffer
	rep := NewTextReporter(&buf)
	roster := []sim.Precinct{
		{Number: 2, Name: "TWO", ExpectedVoters: 40, HistogramStations: []int{1, 2, 3}},
		{Number: 1, Name: "ONE", ExpectedVoters: 500},
	}

	// WHEN the batch runs and the summary is written
	rep.Header("run-1", cfg)
	result, err := sim.NewBatch(cfg, rep).Run(context.Background(), roster)
	require.NoError(t, err)
	rep.BatchSummary(result)

	// THEN the transcript has the header, trial lines, a histogram and the batch count
	require.NoError(t, rep.Err())
	out := buf.String()
	assert.Contains(t, out, "CONFIG: RUN run-1\n")
	assert.Contains(t, out, "CONFIG: RN seed: 42\n")
	assert.Contains(t, out, "SIM: RunSimulation for pct\n")
	assert.Contains(t, out, "stations, mean/dev wait (mins)")
	assert.Contains(t, out, "ONEPCT: HISTO STATIONS    1\n")
	assert.Contains(t, out, "ONEPCT: RESULT    2 TWO")
	assert.Contains(t, out, "SIM: PRECINCT COUNT THIS BATCH    1\n")
	assert.Contains(t, out, "1 precincts skipped")
	assert.NotContains(t, out, "   1 ONE")
}

func TestTextReporter_BatchSummary_UsesThousandsSeparators(t *testing.T) {
	var buf bytes.Buffer
	rep := NewTextReporter(&buf)
	trials := make([]sim.TrialStats, 3)
	for i := range trials {
		trials[i] = sim.TrialStats{Completed: 1000}
	}
	br := &sim.BatchResult{
		Results: []*sim.SearchResult{{Satisfied: false, Candidates: []*sim.CandidateResult{{Trials: trials}}}},
		Skipped: []int{9},
	}

	rep.BatchSummary(br)

	assert.Contains(t, buf.String(), "SIM: 3 trials, 3,000 simulated voters, 1 precincts skipped, 1 unsatisfied\n")
}

func TestTextReporter_CandidateFinished_WithOccupancy(t *testing.T) {
	var buf bytes.Buffer
	rep := NewTextReporter(&buf)
	cr := &sim.CandidateResult{
		Stations: 4,
		Summary:  sim.CandidateSummary{Stations: 4, Trials: 2, MeanOfMeansMinutes: 1.25, FailingTrials: 1},
	}

	rep.CandidateFinished(&sim.Precinct{}, cr)
	assert.Contains(t, buf.String(), "failing trials 1/2\n")
	assert.NotContains(t, buf.String(), "OCCUPANCY")

	buf.Reset()
	cr.Occupancy = testOccupancy()
	rep.CandidateFinished(&sim.Precinct{}, cr)
	assert.Contains(t, buf.String(), "OCCUPANCY peak line 12 peak busy 4/4 mean line 3.50 over 100 seconds")
}

func TestTextReporter_PrecinctFinished_FlagsExhaustion(t *testing.T) {
	var buf bytes.Buffer
	rep := NewTextReporter(&buf)
	rep.PrecinctFinished(&sim.SearchResult{Precinct: sim.Precinct{Number: 5, Name: "GYM"}, Stations: 9, MinStations: 1, MaxStations: 9})
	assert.True(t, strings.HasSuffix(strings.TrimSpace(buf.String()), "EXHAUSTED"))
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestTextReporter_WriteError_IsSticky(t *testing.T) {
	w := &failingWriter{}
	rep := NewTextReporter(w)
	p := &sim.Precinct{Number: 1, Name: "X"}

	rep.PrecinctStarted(p)
	rep.CandidateStarted(p, 2)
	rep.Histogram(p, 2, sim.WaitHistogram{0: 1}, 1)

	assert.EqualError(t, rep.Err(), "disk full")
	assert.Equal(t, 1, w.calls)
}
