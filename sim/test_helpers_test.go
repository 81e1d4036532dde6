package sim

import (
	"github.com/votesim/votesim/sim/internal/testutil"
)

// newTestConfig returns a small, valid configuration: a 13-hour day with
// arrivals spread evenly and every ballot taking serviceSeconds.
func newTestConfig(serviceSeconds int) *RunConfig {
	return &RunConfig{
		Seed:                  42,
		ElectionDayHours:      13,
		MeanServiceSeconds:    serviceSeconds,
		MinExpectedToSimulate: 0,
		MaxExpectedToSimulate: 5000,
		TooLongMinutes:        30,
		Iterations:            3,
		ArrivalZeroPercent:    10,
		ArrivalFractions:      testutil.FlatFractions(13, 90),
		ServiceTimes:          testutil.FlatServiceTimes(8, serviceSeconds),
	}
}

// newTestPrecinct returns a precinct with the given expected voters and no histograms.
func newTestPrecinct(number, expected int) Precinct {
	return Precinct{
		Number:          number,
		Name:            "TEST_PRECINCT",
		TurnoutPercent:  60,
		RegisteredCount: expected * 2,
		ExpectedVoters:  expected,
		ExpectedPerHour: expected / 13,
		Stations:        3,
		MinorityPercent: 25,
	}
}

// votersAt builds voters with sequence numbers in slice order.
// arrivals and durations must have the same length.
func votersAt(arrivals, durations []int) []*Voter {
	voters := make([]*Voter, len(arrivals))
	for i := range arrivals {
		voters[i] = NewVoter(i, arrivals[i], durations[i])
	}
	return voters
}

// recordingReporter keeps every callback for assertions.
type recordingReporter struct {
	precincts  []int
	finished   []*SearchResult
	candidates []int
	trials     []TrialStats
	results    []*CandidateResult
	histograms []int
}

func (r *recordingReporter) PrecinctStarted(p *Precinct) { r.precincts = append(r.precincts, p.Number) }
func (r *recordingReporter) PrecinctFinished(sr *SearchResult) {
	r.finished = append(r.finished, sr)
}
func (r *recordingReporter) CandidateStarted(_ *Precinct, stations int) {
	r.candidates = append(r.candidates, stations)
}
func (r *recordingReporter) TrialFinished(_ *Precinct, ts TrialStats) { r.trials = append(r.trials, ts) }
func (r *recordingReporter) CandidateFinished(_ *Precinct, cr *CandidateResult) {
	r.results = append(r.results, cr)
}
func (r *recordingReporter) Histogram(_ *Precinct, stations int, _ WaitHistogram, _ int) {
	r.histograms = append(r.histograms, stations)
}
