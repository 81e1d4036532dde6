package report

import (
	"fmt"
	"io"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/votesim/votesim/sim"
)

// Summary is the machine-readable outcome of a batch.
type Summary struct {
	RunID       string            `json:"run_id"`
	GeneratedAt time.Time         `json:"generated_at"`
	Seed        int64             `json:"seed"`
	Iterations  int               `json:"iterations"`
	TooLong     int               `json:"too_long_minutes"`
	Simulated   int               `json:"precincts_simulated"`
	Skipped     []int             `json:"precincts_skipped"`
	Precincts   []PrecinctSummary `json:"precincts"`
}

// PrecinctSummary describes the chosen station count of one precinct.
type PrecinctSummary struct {
	Number         int     `json:"number"`
	Name           string  `json:"name"`
	ExpectedVoters int     `json:"expected_voters"`
	Stations       int     `json:"stations"`
	MinStations    int     `json:"min_stations"`
	MaxStations    int     `json:"max_stations"`
	Satisfied      bool    `json:"satisfied"`
	Candidates     int     `json:"candidates_tried"`
	MeanWait       float64 `json:"mean_wait_minutes"`
	MeanWaitStdDev float64 `json:"mean_wait_stddev_minutes"`
	WorstTooLong   int     `json:"worst_too_long"`
	FailingTrials  int     `json:"failing_trials"`
}

// BuildSummary condenses a batch result. The statistics of each precinct are
// those of its last candidate tried.
func BuildSummary(runID string, cfg *sim.RunConfig, br *sim.BatchResult, at time.Time) *Summary {
	s := &Summary{
		RunID:       runID,
		GeneratedAt: at.UTC(),
		Seed:        cfg.Seed,
		Iterations:  cfg.Iterations,
		TooLong:     cfg.TooLongMinutes,
		Simulated:   br.Simulated(),
		Skipped:     append(make([]int, 0, len(br.Skipped)), br.Skipped...),
		Precincts:   make([]PrecinctSummary, 0, len(br.Results)),
	}
	for _, sr := range br.Results {
		ps := PrecinctSummary{
			Number:         sr.Precinct.Number,
			Name:           sr.Precinct.Name,
			ExpectedVoters: sr.Precinct.ExpectedVoters,
			Stations:       sr.Stations,
			MinStations:    sr.MinStations,
			MaxStations:    sr.MaxStations,
			Satisfied:      sr.Satisfied,
			Candidates:     len(sr.Candidates),
		}
		if final := sr.Final(); final != nil {
			ps.MeanWait = final.Summary.MeanOfMeansMinutes
			ps.MeanWaitStdDev = final.Summary.StdDevOfMeanMinutes
			ps.WorstTooLong = final.Summary.WorstTooLong
			ps.FailingTrials = final.Summary.FailingTrials
		}
		s.Precincts = append(s.Precincts, ps)
	}
	return s
}

// WriteJSON writes s as indented JSON.
func WriteJSON(w io.Writer, s *Summary) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// ReadJSON decodes a summary previously written by WriteJSON.
func ReadJSON(r io.Reader) (*Summary, error) {
	var s Summary
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &s, nil
}
