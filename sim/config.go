package sim

import (
	"fmt"
	"strings"
)

// SecondsPerHour is the length of one arrival-fraction slot.
const SecondsPerHour = 3600

// RunConfig groups the global parameters shared by every precinct in a run.
// Built once by the input layer, validated, then passed by pointer and never mutated.
type RunConfig struct {
	Seed int64 `yaml:"seed"`

	// ElectionDayHours is how long the polls are open.
	ElectionDayHours int `yaml:"election_day_hours"`
	// MeanServiceSeconds is the mean time to vote; it drives the station lower bound.
	MeanServiceSeconds int `yaml:"mean_service_seconds"`

	// Precincts with expected <= MinExpectedToSimulate or > MaxExpectedToSimulate are skipped.
	MinExpectedToSimulate int `yaml:"min_expected_to_simulate"`
	MaxExpectedToSimulate int `yaml:"max_expected_to_simulate"`

	TooLongMinutes int `yaml:"too_long_minutes"`
	Iterations     int `yaml:"iterations"` // trials per candidate station count

	ArrivalZeroPercent float64   `yaml:"arrival_zero_percent"` // percent of expected voters waiting at open
	ArrivalFractions   []float64 `yaml:"arrival_fractions"`    // percent of expected voters arriving in each hour

	ServiceTimes     []int  `yaml:"service_times,omitempty"` // empirical service durations, seconds
	ServiceTimesFile string `yaml:"service_times_file,omitempty"`
}

// ElectionDaySeconds is the day length in seconds.
func (c *RunConfig) ElectionDaySeconds() int {
	return c.ElectionDayHours * SecondsPerHour
}

// MaxServiceIndex is the largest valid index into ServiceTimes, or -1 when empty.
func (c *RunConfig) MaxServiceIndex() int {
	return len(c.ServiceTimes) - 1
}

// ArrivalFraction returns the arrival percentage for hour, 0 when the table is short.
func (c *RunConfig) ArrivalFraction(hour int) float64 {
	if hour < 0 || hour >= len(c.ArrivalFractions) {
		return 0
	}
	return c.ArrivalFractions[hour]
}

// Validate rejects values the simulator cannot interpret.
// Degenerate but meaningful values (zero iterations, an empty service table,
// a zero-length day) are accepted; the engine handles them without faults.
func (c *RunConfig) Validate() error {
	if c.ElectionDayHours < 0 {
		return fmt.Errorf("election_day_hours must be >= 0, got %d", c.ElectionDayHours)
	}
	if c.MeanServiceSeconds < 0 {
		return fmt.Errorf("mean_service_seconds must be >= 0, got %d", c.MeanServiceSeconds)
	}
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must be >= 0, got %d", c.Iterations)
	}
	if c.MaxExpectedToSimulate < c.MinExpectedToSimulate {
		return fmt.Errorf("max_expected_to_simulate (%d) < min_expected_to_simulate (%d)",
			c.MaxExpectedToSimulate, c.MinExpectedToSimulate)
	}
	if c.ArrivalZeroPercent < 0 {
		return fmt.Errorf("arrival_zero_percent must be >= 0, got %v", c.ArrivalZeroPercent)
	}
	if len(c.ArrivalFractions) != c.ElectionDayHours {
		return fmt.Errorf("arrival_fractions has %d entries, want one per hour (%d)",
			len(c.ArrivalFractions), c.ElectionDayHours)
	}
	for i, f := range c.ArrivalFractions {
		if f < 0 {
			return fmt.Errorf("arrival_fractions[%d] must be >= 0, got %v", i, f)
		}
	}
	for i, d := range c.ServiceTimes {
		if d < 0 {
			return fmt.Errorf("service_times[%d] must be >= 0, got %d", i, d)
		}
	}
	return nil
}

// String renders the configuration for the run header.
func (c *RunConfig) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "RN seed: %d\n", c.Seed)
	fmt.Fprintf(&sb, "Election Day length: %d seconds = %.2f hours\n", c.ElectionDaySeconds(), float64(c.ElectionDaySeconds())/SecondsPerHour)
	fmt.Fprintf(&sb, "Time to vote mean: %d seconds = %.2f minutes\n", c.MeanServiceSeconds, float64(c.MeanServiceSeconds)/60.0)
	fmt.Fprintf(&sb, "Min and max expected voters for this simulation: %d %d\n", c.MinExpectedToSimulate, c.MaxExpectedToSimulate)
	fmt.Fprintf(&sb, "Wait time (minutes) that is 'too long': %d\n", c.TooLongMinutes)
	fmt.Fprintf(&sb, "Number of iterations to perform: %d\n", c.Iterations)
	fmt.Fprintf(&sb, "Max service time subscript: %d\n", c.MaxServiceIndex())
	fmt.Fprintf(&sb, "%02d-%02d : %7.2f\n", 0, 0, c.ArrivalZeroPercent)
	for h, f := range c.ArrivalFractions {
		fmt.Fprintf(&sb, "%02d-%02d : %7.2f\n", h, h+1, f)
	}
	return sb.String()
}
