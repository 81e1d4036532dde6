package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/votesim/votesim/sim"
	"github.com/votesim/votesim/sim/input"
	"github.com/votesim/votesim/sim/report"
	"github.com/votesim/votesim/sim/trace"
)

// runOptions carries the resolved CLI flags into runBatch.
// Nil overrides leave the configuration (and its environment overrides) alone.
type runOptions struct {
	ConfigPath       string
	PrecinctsPath    string
	ServiceTimesPath string
	OutPath          string
	JSONPath         string
	TraceLevel       string

	Seed       *int64
	Iterations *int
}

// newRunID returns a time-ordered identifier for one invocation.
func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// runBatch loads the inputs, simulates the roster and writes the reports.
// The text transcript goes to OutPath, or stdout when it is empty.
// On interruption the transcript and summary cover the precincts finished so far.
func runBatch(ctx context.Context, opts runOptions, stdout io.Writer) (*report.Summary, error) {
	if !trace.IsValidTraceLevel(opts.TraceLevel) {
		return nil, fmt.Errorf("unknown trace level %q", opts.TraceLevel)
	}

	cfg, err := input.LoadRunConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.ServiceTimesPath != "" {
		times, err := input.LoadServiceTimes(opts.ServiceTimesPath)
		if err != nil {
			return nil, err
		}
		cfg.ServiceTimes = times
	}
	if len(cfg.ServiceTimes) == 0 {
		return nil, fmt.Errorf("no service times for %s: set service_times_file or pass --service-times", opts.ConfigPath)
	}
	if opts.Seed != nil {
		cfg.Seed = *opts.Seed
	}
	if opts.Iterations != nil {
		cfg.Iterations = *opts.Iterations
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config after overrides: %w", err)
	}

	precincts, err := input.LoadPrecincts(opts.PrecinctsPath)
	if err != nil {
		return nil, err
	}

	runID := newRunID()
	log := logrus.WithField("run_id", runID)
	log.Infof("Starting simulation: seed=%d, iterations=%d, %d precincts, %d service times",
		cfg.Seed, cfg.Iterations, len(precincts), len(cfg.ServiceTimes))

	out := stdout
	if opts.OutPath != "" {
		f, err := os.Create(opts.OutPath)
		if err != nil {
			return nil, fmt.Errorf("create transcript: %w", err)
		}
		defer f.Close()
		out = f
	}

	text := report.NewTextReporter(out)
	text.Header(runID, cfg)

	batch := sim.NewBatch(cfg, text)
	if opts.TraceLevel != "" {
		batch.TraceLevel = trace.TraceLevel(opts.TraceLevel)
	}

	startTime := time.Now()
	result, runErr := batch.Run(ctx, precincts)
	text.BatchSummary(result)
	if err := text.Err(); err != nil {
		return nil, fmt.Errorf("write transcript: %w", err)
	}
	log.Infof("Batch took %s", time.Since(startTime).Round(time.Millisecond))

	for _, sr := range result.Unsatisfied() {
		log.Warnf("precinct %d: reported %d stations without meeting the %d minute limit",
			sr.Precinct.Number, sr.Stations, cfg.TooLongMinutes)
	}

	summary := report.BuildSummary(runID, cfg, result, time.Now())
	if opts.JSONPath != "" {
		if err := writeSummaryFile(opts.JSONPath, summary); err != nil {
			return nil, err
		}
	}
	return summary, runErr
}

func writeSummaryFile(path string, s *report.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	if err := report.WriteJSON(f, s); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close summary: %w", err)
	}
	return nil
}
