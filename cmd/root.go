package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// CLI flags for inputs
	configPath       string // Run configuration, YAML or two-line format
	precinctsPath    string // Precinct roster
	serviceTimesPath string // Empirical service-time table; overrides the config's table

	// CLI flags for run overrides
	seed       int64 // Seed for the shared random stream
	iterations int   // Trials per candidate station count

	// CLI flags for output
	logLevel   string // Log verbosity level
	outPath    string // Text transcript, stdout when empty
	jsonPath   string // JSON run summary, skipped when empty
	traceLevel string // Occupancy tracing: none, summary, seconds
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "votesim",
	Short: "Voter wait-time simulator for sizing precinct voting stations",
}

// runCmd simulates every precinct of a roster using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Find the station count that keeps every precinct's waits short",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		opts := runOptions{
			ConfigPath:       configPath,
			PrecinctsPath:    precinctsPath,
			ServiceTimesPath: serviceTimesPath,
			OutPath:          outPath,
			JSONPath:         jsonPath,
			TraceLevel:       traceLevel,
		}
		if cmd.Flags().Changed("seed") {
			opts.Seed = &seed
		}
		if cmd.Flags().Changed("iterations") {
			opts.Iterations = &iterations
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		summary, err := runBatch(ctx, opts, cmd.OutOrStdout())
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete: run %s, %d precincts simulated.", summary.RunID, summary.Simulated)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "Run configuration file (.yaml/.yml, or the two-line numeric format)")
	runCmd.Flags().StringVar(&precinctsPath, "precincts", "", "Precinct roster file")
	runCmd.Flags().StringVar(&serviceTimesPath, "service-times", "", "Service-time table, one duration in seconds per value (required for the two-line config format)")

	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the random stream (overrides the config and VOTESIM_SEED)")
	runCmd.Flags().IntVar(&iterations, "iterations", 0, "Trials per station count (overrides the config and VOTESIM_ITERATIONS)")

	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&outPath, "out", "", "Write the text transcript to this file instead of stdout")
	runCmd.Flags().StringVar(&jsonPath, "json", "", "Write a JSON run summary to this file")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Occupancy tracing level (none, summary, seconds)")

	_ = runCmd.MarkFlagRequired("config")
	_ = runCmd.MarkFlagRequired("precincts")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
