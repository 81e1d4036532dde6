// Package input loads the run configuration, the empirical service-time table
// and the precinct roster that drive a votesim batch.
//
// Two run-configuration formats are accepted: a YAML document decoded with
// strict field checking, and the historical two-line numeric format
//
//	seed hours meanServiceSeconds minExpected maxExpected tooLongMinutes iterations
//	zeroHourPercent hour0Percent hour1Percent ...
//
// Files ending in .yaml or .yml are decoded as YAML; anything else is read as
// the two-line format.
package input
