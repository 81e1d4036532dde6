package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/votesim/votesim/sim"
)

// Line prefixes, kept stable so output can be filtered with grep.
const (
	tagConfig   = "CONFIG: "
	tagPrecinct = "ONEPCT: "
	tagBatch    = "SIM: "
)

// TextReporter writes a human-readable transcript of a batch.
// Write errors are sticky: after the first failure nothing more is written
// and Err reports it.
type TextReporter struct {
	w   io.Writer
	err error
}

var _ sim.Reporter = (*TextReporter)(nil)

// NewTextReporter creates a reporter writing to w.
func NewTextReporter(w io.Writer) *TextReporter {
	return &TextReporter{w: w}
}

// Err returns the first write error, if any.
func (r *TextReporter) Err() error {
	return r.err
}

func (r *TextReporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}

// Header writes the run identifier and configuration.
func (r *TextReporter) Header(runID string, cfg *sim.RunConfig) {
	r.printf("%sRUN %s\n", tagConfig, runID)
	for _, line := range strings.Split(strings.TrimRight(cfg.String(), "\n"), "\n") {
		r.printf("%s%s\n", tagConfig, line)
	}
	r.printf("\n")
}

func (r *TextReporter) PrecinctStarted(p *sim.Precinct) {
	r.printf("%sRunSimulation for pct\n%s%s\n", tagBatch, tagBatch, p.String())
}

func (r *TextReporter) CandidateStarted(p *sim.Precinct, stations int) {
	r.printf("%s%s\n", tagPrecinct, p.String())
}

// TrialFinished writes one line per trial: iteration, precinct, station count,
// mean and deviation of the wait in minutes, then each too-long count with its
// percentage of the expected voters.
func (r *TextReporter) TrialFinished(p *sim.Precinct, ts sim.TrialStats) {
	r.printf("%s%s\n", tagPrecinct, FormatTrial(p, ts))
}

func (r *TextReporter) CandidateFinished(p *sim.Precinct, cr *sim.CandidateResult) {
	s := cr.Summary
	r.printf("%sSTATIONS %4d mean of means %8.2f sd %8.2f max %8.2f failing trials %d/%d\n",
		tagPrecinct, s.Stations, s.MeanOfMeansMinutes, s.StdDevOfMeanMinutes, s.MaxMeanMinutes,
		s.FailingTrials, s.Trials)
	if occ := cr.Occupancy; occ != nil {
		r.printf("%sOCCUPANCY peak line %d peak busy %d/%d mean line %.2f over %d seconds\n",
			tagPrecinct, occ.PeakPending, occ.PeakVoting, cr.Stations, occ.MeanPending, occ.Seconds)
	}
}

func (r *TextReporter) Histogram(p *sim.Precinct, stations int, histo sim.WaitHistogram, iterations int) {
	if r.err != nil {
		return
	}
	r.err = RenderHistogram(r.w, p, stations, histo, iterations)
}

func (r *TextReporter) PrecinctFinished(sr *sim.SearchResult) {
	status := "OK"
	if !sr.Satisfied {
		status = "EXHAUSTED"
	}
	r.printf("%sRESULT %4d %-25s stations %4d range [%d, %d] %s\n\n",
		tagPrecinct, sr.Precinct.Number, sr.Precinct.Name, sr.Stations, sr.MinStations, sr.MaxStations, status)
}

// BatchSummary writes the closing lines of a batch.
func (r *TextReporter) BatchSummary(br *sim.BatchResult) {
	r.printf("%sPRECINCT COUNT THIS BATCH %4d\n", tagBatch, br.Simulated())

	trials, voters := 0, 0
	for _, sr := range br.Results {
		for _, cr := range sr.Candidates {
			trials += len(cr.Trials)
			for _, ts := range cr.Trials {
				voters += ts.Completed
			}
		}
	}
	r.printf("%s%s trials, %s simulated voters, %s precincts skipped, %s unsatisfied\n",
		tagBatch, humanize.Comma(int64(trials)), humanize.Comma(int64(voters)),
		humanize.Comma(int64(len(br.Skipped))), humanize.Comma(int64(len(br.Unsatisfied()))))
}

// FormatTrial renders the statistics line for one trial.
func FormatTrial(p *sim.Precinct, ts sim.TrialStats) string {
	return fmt.Sprintf("%3d %4d %-25s%6d%4d stations, mean/dev wait (mins) %8.2f %8.2f toolong %6d %6.2f%6d %6.2f%6d %6.2f",
		ts.Iteration, p.Number, p.Name, p.ExpectedVoters, ts.Stations,
		ts.MeanWaitMinutes(), ts.DevWaitMinutes(),
		ts.TooLong, ts.PercentOfExpected(ts.TooLong),
		ts.TooLongPlus10, ts.PercentOfExpected(ts.TooLongPlus10),
		ts.TooLongPlus20, ts.PercentOfExpected(ts.TooLongPlus20))
}
