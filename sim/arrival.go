package sim

import (
	"math"

	"github.com/sirupsen/logrus"
)

// GenerateVoters builds the voters for one trial of precinct pct.
//
// Voters waiting at open arrive at second 0. Each hour h then contributes
// round(fraction[h]/100 * expected) voters, plus one more on even hours, with
// exponential inter-arrival gaps starting from h*3600.
//
// Per voter the stream is consumed as: inter-arrival gap (hourly voters only),
// then service-time index. Sequence numbers follow generation order; the
// returned slice is in generation order, not arrival order.
func GenerateVoters(cfg *RunConfig, expectedVoters int, rs *RandomSource) []*Voter {
	voters := make([]*Voter, 0, expectedVoters+cfg.ElectionDayHours)
	sequence := 0

	atOpen := votersForPercent(cfg.ArrivalZeroPercent, expectedVoters)
	for i := 0; i < atOpen; i++ {
		voters = append(voters, NewVoter(sequence, 0, sampleDuration(cfg, rs)))
		sequence++
	}

	for hour := 0; hour < cfg.ElectionDayHours; hour++ {
		thisHour := votersForPercent(cfg.ArrivalFraction(hour), expectedVoters)
		// Even hours get one extra voter to offset rounding loss.
		if hour%2 == 0 {
			thisHour++
		}

		rate := float64(thisHour) / SecondsPerHour
		arrival := hour * SecondsPerHour
		for i := 0; i < thisHour; i++ {
			arrival += rs.ExponentialInt(rate)
			voters = append(voters, NewVoter(sequence, arrival, sampleDuration(cfg, rs)))
			sequence++
		}
	}

	logrus.Debugf("generated %d voters (%d at open) for %d expected", len(voters), atOpen, expectedVoters)
	return voters
}

// votersForPercent rounds percent of expected half away from zero.
func votersForPercent(percent float64, expected int) int {
	return int(math.Round(percent / 100.0 * float64(expected)))
}

// sampleDuration draws one service time from the empirical table.
// With an empty table the configured mean is used and the stream is not consumed.
func sampleDuration(cfg *RunConfig, rs *RandomSource) int {
	if len(cfg.ServiceTimes) == 0 {
		return cfg.MeanServiceSeconds
	}
	return cfg.ServiceTimes[rs.UniformInt(0, cfg.MaxServiceIndex())]
}
