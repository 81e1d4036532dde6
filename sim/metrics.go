// Tracks per-trial and per-candidate wait-time statistics such as:
// mean and deviation of waits, and counts of voters who waited too long.

package sim

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Offsets of the additional too-long bands, in minutes above the threshold.
const (
	TooLongBandPlus10 = 10
	TooLongBandPlus20 = 20
)

// WaitHistogram counts voters per whole-minute wait bucket.
// One histogram is shared by all trials of a candidate station count.
type WaitHistogram map[int]int

// Add counts one voter in minute bucket.
func (h WaitHistogram) Add(minute int) {
	h[minute]++
}

// Bounds returns the smallest and largest populated buckets.
// ok is false for an empty histogram.
func (h WaitHistogram) Bounds() (lo, hi int, ok bool) {
	if len(h) == 0 {
		return 0, 0, false
	}
	keys := h.Minutes()
	return keys[0], keys[len(keys)-1], true
}

// Minutes returns the populated buckets in ascending order.
func (h WaitHistogram) Minutes() []int {
	keys := make([]int, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// Peak returns the largest bucket count.
func (h WaitHistogram) Peak() int {
	peak := 0
	for _, c := range h {
		if c > peak {
			peak = c
		}
	}
	return peak
}

// TrialStats aggregates the waits of one trial for reporting and for the search.
type TrialStats struct {
	Iteration      int
	Stations       int
	ExpectedVoters int
	Completed      int

	MeanWaitSeconds float64 // sum of waits / expected voters
	DevWaitSeconds  float64 // sqrt(sum of squared deviations / expected voters)

	TooLong       int // voters whose wait minutes exceed the threshold
	TooLongPlus10 int // ... exceed threshold + 10
	TooLongPlus20 int // ... exceed threshold + 20
}

// MeanWaitMinutes returns the mean wait in minutes.
func (ts TrialStats) MeanWaitMinutes() float64 {
	return ts.MeanWaitSeconds / 60.0
}

// DevWaitMinutes returns the wait deviation in minutes.
func (ts TrialStats) DevWaitMinutes() float64 {
	return ts.DevWaitSeconds / 60.0
}

// PercentOfExpected expresses count as a percentage of the expected voters,
// 0 when no voters are expected.
func (ts TrialStats) PercentOfExpected(count int) float64 {
	if ts.ExpectedVoters <= 0 {
		return 0
	}
	return 100.0 * float64(count) / float64(ts.ExpectedVoters)
}

// ComputeTrialStats summarizes the completed voters of one trial and adds every
// wait to histo (which may be nil).
//
// Mean and deviation divide by the expected voter count rather than the number
// of completed voters. With no expected voters every statistic is zero.
func ComputeTrialStats(completed []*Voter, tooLongMinutes, expectedVoters int, histo WaitHistogram) TrialStats {
	ts := TrialStats{
		ExpectedVoters: expectedVoters,
		Completed:      len(completed),
	}

	for _, v := range completed {
		if histo != nil {
			histo.Add(v.WaitMinutes())
		}
	}
	if expectedVoters <= 0 {
		return ts
	}

	sum := 0
	for _, v := range completed {
		minutes := v.WaitMinutes()
		if minutes > tooLongMinutes {
			ts.TooLong++
		}
		if minutes > tooLongMinutes+TooLongBandPlus10 {
			ts.TooLongPlus10++
		}
		if minutes > tooLongMinutes+TooLongBandPlus20 {
			ts.TooLongPlus20++
		}
		sum += v.WaitTime
	}

	divisor := float64(expectedVoters)
	ts.MeanWaitSeconds = float64(sum) / divisor

	sumSquares := 0.0
	for _, v := range completed {
		d := float64(v.WaitTime) - ts.MeanWaitSeconds
		sumSquares += d * d
	}
	ts.DevWaitSeconds = math.Sqrt(sumSquares / divisor)

	return ts
}

// CandidateSummary aggregates every trial run for one candidate station count.
type CandidateSummary struct {
	Stations int
	Trials   int

	MeanOfMeansMinutes  float64 // average of the per-trial mean waits
	StdDevOfMeanMinutes float64 // sample standard deviation of the per-trial mean waits
	MaxMeanMinutes      float64

	TotalTooLong  int
	WorstTooLong  int // largest too-long count seen in any trial
	FailingTrials int // trials with at least one too-long voter
}

// SummarizeCandidate folds trial results for one station count.
// Safe for an empty slice (returns zero-value fields).
func SummarizeCandidate(stations int, trials []TrialStats) CandidateSummary {
	cs := CandidateSummary{Stations: stations, Trials: len(trials)}
	if len(trials) == 0 {
		return cs
	}

	means := make([]float64, len(trials))
	for i, t := range trials {
		means[i] = t.MeanWaitMinutes()
		if means[i] > cs.MaxMeanMinutes {
			cs.MaxMeanMinutes = means[i]
		}
		cs.TotalTooLong += t.TooLong
		if t.TooLong > cs.WorstTooLong {
			cs.WorstTooLong = t.TooLong
		}
		if t.TooLong > 0 {
			cs.FailingTrials++
		}
	}

	if len(means) == 1 {
		cs.MeanOfMeansMinutes = means[0]
		return cs
	}
	cs.MeanOfMeansMinutes, cs.StdDevOfMeanMinutes = stat.MeanStdDev(means, nil)
	return cs
}
