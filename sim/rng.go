package sim

import (
	"math"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey, identical configuration and identical
// call order MUST produce bit-for-bit identical voter sets.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// maxInterarrival is returned by ExponentialInt when the rate is not positive.
// Large enough to push any later arrival past the end of an election day.
const maxInterarrival = math.MaxInt32

// === RandomSource ===

// RandomSource is the single sequential random stream for a whole run.
// Every precinct, candidate and trial draws from the same stream, so the
// order of calls determines the output for a given seed.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type RandomSource struct {
	key SimulationKey
	rng *rand.Rand
}

// NewRandomSource creates a RandomSource seeded from key.
func NewRandomSource(key SimulationKey) *RandomSource {
	return &RandomSource{
		key: key,
		rng: rand.New(rand.NewSource(int64(key))),
	}
}

// UniformInt returns an integer in [low, high], inclusive on both ends.
// If high < low, low is returned without consuming the stream.
func (r *RandomSource) UniformInt(low, high int) int {
	if high <= low {
		return low
	}
	return low + r.rng.Intn(high-low+1)
}

// ExponentialInt returns a non-negative integer drawn from an exponential
// distribution with the given rate (events per second), truncated toward zero.
// A rate <= 0 yields maxInterarrival instead of dividing by zero.
func (r *RandomSource) ExponentialInt(rate float64) int {
	if rate <= 0 || math.IsNaN(rate) {
		return maxInterarrival
	}
	gap := r.rng.ExpFloat64() / rate
	if gap >= maxInterarrival {
		return maxInterarrival
	}
	return int(gap)
}

