// batch.go
//
// Runs the station search for every precinct of a roster, one after another,
// drawing from a single random stream.

package sim

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/votesim/votesim/sim/trace"
)

// BatchResult collects the outcome of a roster run.
type BatchResult struct {
	Results []*SearchResult // simulated precincts, in simulation order
	Skipped []int           // precinct numbers outside the expected-voter bounds
}

// Simulated returns the number of precincts that were searched.
func (b *BatchResult) Simulated() int {
	return len(b.Results)
}

// Unsatisfied returns the precincts whose search exhausted its range.
func (b *BatchResult) Unsatisfied() []*SearchResult {
	out := make([]*SearchResult, 0)
	for _, r := range b.Results {
		if !r.Satisfied {
			out = append(out, r)
		}
	}
	return out
}

// InSimulationRange reports whether a precinct's expected voters fall in
// (MinExpectedToSimulate, MaxExpectedToSimulate].
func InSimulationRange(cfg *RunConfig, expectedVoters int) bool {
	return expectedVoters > cfg.MinExpectedToSimulate && expectedVoters <= cfg.MaxExpectedToSimulate
}

// Batch runs precincts strictly sequentially.
type Batch struct {
	Config     *RunConfig
	RNG        *RandomSource
	Reporter   Reporter
	TraceLevel trace.TraceLevel
}

// NewBatch creates a Batch seeded from cfg.Seed.
func NewBatch(cfg *RunConfig, reporter Reporter) *Batch {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Batch{
		Config:     cfg,
		RNG:        NewRandomSource(NewSimulationKey(cfg.Seed)),
		Reporter:   reporter,
		TraceLevel: trace.TraceLevelNone,
	}
}

// Run simulates every in-range precinct in ascending precinct number.
// ctx is checked between precincts only; a precinct that has started always
// runs to completion. On cancellation the partial result is returned with the error.
func (b *Batch) Run(ctx context.Context, precincts []Precinct) (*BatchResult, error) {
	ordered := make([]Precinct, len(precincts))
	copy(ordered, precincts)
	SortPrecincts(ordered)

	search := NewStationSearch(b.Config, b.RNG, b.Reporter)
	search.TraceLevel = b.TraceLevel

	result := &BatchResult{
		Results: make([]*SearchResult, 0, len(ordered)),
		Skipped: make([]int, 0),
	}
	for i := range ordered {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("batch interrupted after %d precincts: %w", result.Simulated(), err)
		}

		p := &ordered[i]
		if !InSimulationRange(b.Config, p.ExpectedVoters) {
			logrus.Infof("precinct %d skipped: %d expected voters outside (%d, %d]",
				p.Number, p.ExpectedVoters, b.Config.MinExpectedToSimulate, b.Config.MaxExpectedToSimulate)
			result.Skipped = append(result.Skipped, p.Number)
			continue
		}

		logrus.Infof("simulating precinct %d %q (%d expected voters)", p.Number, p.Name, p.ExpectedVoters)
		b.Reporter.PrecinctStarted(p)
		sr := search.Run(p)
		b.Reporter.PrecinctFinished(sr)
		result.Results = append(result.Results, sr)
	}

	logrus.Infof("batch finished: %d precincts simulated, %d skipped", result.Simulated(), len(result.Skipped))
	return result, nil
}
