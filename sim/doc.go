// Package sim provides the core discrete-event simulation engine for votesim.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - voter.go: Voter lifecycle (pending → voting → completed)
//   - arrival.go: How one trial's voters are generated from the run configuration
//   - simulator.go: The per-second loop that releases and assigns stations
//
// # Architecture
//
// Above the kernel sit the statistics and the search:
//   - metrics.go: per-trial wait statistics and the per-candidate wait histogram
//   - search.go: the linear sweep over candidate station counts for one precinct
//   - batch.go: sequential runs over a whole precinct roster
//
// Supporting packages:
//   - sim/input/: run configuration, roster and service-time loaders
//   - sim/report/: text and JSON output implementing Reporter
//   - sim/trace/: per-second occupancy recording
//
// # Determinism
//
// All randomness comes from one RandomSource shared by every precinct,
// candidate and trial. The same seed, configuration and roster always produce
// the same voters and therefore the same statistics.
package sim
