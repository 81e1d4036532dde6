package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/votesim/votesim/sim/trace"
)

// Reporter receives progress from a StationSearch.
// Implementations render text or collect results; see sim/report.
type Reporter interface {
	// PrecinctStarted is called before the sweep of a precinct begins.
	PrecinctStarted(p *Precinct)
	// PrecinctFinished is called with the outcome of a precinct's sweep.
	PrecinctFinished(result *SearchResult)
	// CandidateStarted is called before the first trial of a station count.
	CandidateStarted(p *Precinct, stations int)
	// TrialFinished is called after every trial with its statistics.
	TrialFinished(p *Precinct, ts TrialStats)
	// CandidateFinished is called once all trials of a station count have run.
	CandidateFinished(p *Precinct, result *CandidateResult)
	// Histogram is called for station counts the precinct asked a histogram for.
	Histogram(p *Precinct, stations int, histo WaitHistogram, iterations int)
}

// NopReporter discards all progress.
type NopReporter struct{}

// PrecinctStarted implements Reporter.
func (NopReporter) PrecinctStarted(*Precinct) {}

// PrecinctFinished implements Reporter.
func (NopReporter) PrecinctFinished(*SearchResult) {}

// CandidateStarted implements Reporter.
func (NopReporter) CandidateStarted(*Precinct, int) {}

// TrialFinished implements Reporter.
func (NopReporter) TrialFinished(*Precinct, TrialStats) {}

// CandidateFinished implements Reporter.
func (NopReporter) CandidateFinished(*Precinct, *CandidateResult) {}

// Histogram implements Reporter.
func (NopReporter) Histogram(*Precinct, int, WaitHistogram, int) {}

// CandidateResult holds everything observed for one candidate station count.
type CandidateResult struct {
	Stations  int
	Trials    []TrialStats
	Summary   CandidateSummary
	Histogram WaitHistogram
	// Occupancy merges the per-trial traces; nil when tracing is disabled.
	Occupancy *trace.TraceSummary
}

// Accepted reports whether no trial had a too-long voter.
func (cr *CandidateResult) Accepted() bool {
	return cr.Summary.FailingTrials == 0
}

// SearchResult is the outcome of sweeping station counts for one precinct.
type SearchResult struct {
	Precinct    Precinct
	MinStations int
	MaxStations int
	// Stations is the accepted count, or the last candidate tried when Satisfied is false.
	Stations int
	// Satisfied is false when no candidate in [MinStations, MaxStations] had zero too-long voters.
	Satisfied  bool
	Candidates []*CandidateResult
}

// Final returns the result of the last candidate tried, nil if none ran.
func (sr *SearchResult) Final() *CandidateResult {
	if len(sr.Candidates) == 0 {
		return nil
	}
	return sr.Candidates[len(sr.Candidates)-1]
}

// StationBounds returns the inclusive candidate range for a precinct.
// The floor is expected voters times the mean service seconds, at least 1;
// the ceiling adds one station per election-day hour.
func StationBounds(cfg *RunConfig, expectedVoters int) (lo, hi int) {
	lo = expectedVoters * cfg.MeanServiceSeconds
	if lo <= 0 {
		lo = 1
	}
	return lo, lo + cfg.ElectionDayHours
}

// StationSearch sweeps candidate station counts upward until one has no
// too-long voters in any trial. The sweep is linear because waits are not
// monotonic in the station count across stochastic trials.
type StationSearch struct {
	Config   *RunConfig
	RNG      *RandomSource
	Reporter Reporter
	// TraceLevel enables per-trial occupancy tracing; empty means none.
	TraceLevel trace.TraceLevel
}

// NewStationSearch creates a search over cfg drawing from rs.
// A nil reporter is replaced by NopReporter.
func NewStationSearch(cfg *RunConfig, rs *RandomSource, reporter Reporter) *StationSearch {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &StationSearch{
		Config:     cfg,
		RNG:        rs,
		Reporter:   reporter,
		TraceLevel: trace.TraceLevelNone,
	}
}

// Run executes the sweep for precinct p.
func (s *StationSearch) Run(p *Precinct) *SearchResult {
	lo, hi := StationBounds(s.Config, p.ExpectedVoters)
	result := &SearchResult{
		Precinct:    *p,
		MinStations: lo,
		MaxStations: hi,
		Candidates:  make([]*CandidateResult, 0),
	}

	for stations := lo; stations <= hi; stations++ {
		cr := s.runCandidate(p, stations)
		result.Candidates = append(result.Candidates, cr)
		result.Stations = stations

		if p.WantsHistogram(stations) {
			s.Reporter.Histogram(p, stations, cr.Histogram, s.Config.Iterations)
		}
		if cr.Accepted() {
			result.Satisfied = true
			break
		}
	}

	if result.Satisfied {
		logrus.Infof("precinct %d: %d stations keep every wait within %d minutes", p.Number, result.Stations, s.Config.TooLongMinutes)
	} else {
		logrus.Warnf("precinct %d: no station count in [%d, %d] kept every wait within %d minutes; reporting %d",
			p.Number, lo, hi, s.Config.TooLongMinutes, result.Stations)
	}
	return result
}

// runCandidate runs every trial for one station count, sharing one histogram.
func (s *StationSearch) runCandidate(p *Precinct, stations int) *CandidateResult {
	s.Reporter.CandidateStarted(p, stations)

	cr := &CandidateResult{
		Stations:  stations,
		Trials:    make([]TrialStats, 0, s.Config.Iterations),
		Histogram: make(WaitHistogram),
	}
	for iteration := 0; iteration < s.Config.Iterations; iteration++ {
		ts, occupancy := s.RunTrial(p, stations, iteration, cr.Histogram)
		cr.Trials = append(cr.Trials, ts)
		cr.Occupancy = mergeOccupancy(cr.Occupancy, occupancy)
		s.Reporter.TrialFinished(p, ts)
		logrus.Debugf("precinct %d stations %d iteration %d: mean %.2f min, too long %d",
			p.Number, stations, iteration, ts.MeanWaitMinutes(), ts.TooLong)
	}
	cr.Summary = SummarizeCandidate(stations, cr.Trials)

	s.Reporter.CandidateFinished(p, cr)
	return cr
}

// RunTrial generates a fresh voter set, allocates stations and aggregates the waits.
// The returned occupancy summary is nil when tracing is disabled.
func (s *StationSearch) RunTrial(p *Precinct, stations, iteration int, histo WaitHistogram) (TrialStats, *trace.TraceSummary) {
	voters := GenerateVoters(s.Config, p.ExpectedVoters, s.RNG)

	sim := NewStationSimulator(stations, voters)
	traceConfig := trace.TraceConfig{Level: s.TraceLevel, Stations: sim.Stations}
	if traceConfig.Enabled() {
		sim.Trace = trace.NewSimulationTrace(traceConfig)
	}
	completed := sim.Run()

	ts := ComputeTrialStats(completed, s.Config.TooLongMinutes, p.ExpectedVoters, histo)
	ts.Iteration = iteration
	ts.Stations = stations

	if sim.Trace == nil {
		return ts, nil
	}
	return ts, trace.Summarize(sim.Trace)
}

// mergeOccupancy keeps the worst peaks and the totals of two trial summaries.
func mergeOccupancy(acc, next *trace.TraceSummary) *trace.TraceSummary {
	if next == nil {
		return acc
	}
	if acc == nil {
		merged := *next
		return &merged
	}
	seconds := acc.Seconds + next.Seconds
	if seconds > 0 {
		acc.MeanPending = (acc.MeanPending*float64(acc.Seconds) + next.MeanPending*float64(next.Seconds)) / float64(seconds)
	}
	acc.Seconds = seconds
	acc.LastSecond = max(acc.LastSecond, next.LastSecond)
	acc.PeakPending = max(acc.PeakPending, next.PeakPending)
	acc.PeakVoting = max(acc.PeakVoting, next.PeakVoting)
	acc.TotalAssigned += next.TotalAssigned
	acc.TotalReleased += next.TotalReleased
	acc.ConservationViolations += next.ConservationViolations
	return acc
}
