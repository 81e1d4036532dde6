// Package report renders votesim results.
//
// TextReporter implements sim.Reporter and writes the per-trial lines,
// candidate headers and wait histograms as the batch runs. Summary builds
// the machine-readable run summary written once the batch has finished.
package report
