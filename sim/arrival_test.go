package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/votesim/votesim/sim/internal/testutil"
)

func TestGenerateVoters_ZeroPercent_ProducesArrivalsAtOpen(t *testing.T) {
	// GIVEN 100 expected voters with 10% waiting at open
	cfg := newTestConfig(60)
	cfg.ArrivalZeroPercent = 10

	// WHEN voters are generated
	voters := GenerateVoters(cfg, 100, NewRandomSource(NewSimulationKey(42)))

	// THEN the first 10 voters generated arrive at second 0
	require.Greater(t, len(voters), 10)
	for i, v := range voters[:10] {
		assert.Equal(t, i, v.Sequence)
		assert.Equal(t, 0, v.ArrivalTime, "voter %d", i)
	}
	assert.Equal(t, 10, votersForPercent(cfg.ArrivalZeroPercent, 100))
}

func TestGenerateVoters_EvenHoursGetOneExtraVoter(t *testing.T) {
	// GIVEN a four-hour day with 25% per hour and no voters at open
	cfg := newTestConfig(60)
	cfg.ElectionDayHours = 4
	cfg.ArrivalZeroPercent = 0
	cfg.ArrivalFractions = []float64{25, 25, 25, 25}

	// WHEN voters are generated for 100 expected
	voters := GenerateVoters(cfg, 100, NewRandomSource(NewSimulationKey(1)))

	// THEN hours 0 and 2 contribute 26 voters and hours 1 and 3 contribute 25
	require.Len(t, voters, 26+25+26+25)
}

func TestGenerateVoters_RoundsHalfAwayFromZero(t *testing.T) {
	// GIVEN 50% of 5 expected voters at open (exactly 2.5) and a one-hour day with no arrivals
	cfg := newTestConfig(60)
	cfg.ElectionDayHours = 1
	cfg.ArrivalZeroPercent = 50
	cfg.ArrivalFractions = []float64{0}

	// WHEN generated
	voters := GenerateVoters(cfg, 5, NewRandomSource(NewSimulationKey(1)))

	// THEN 2.5 rounds up to 3 at open, plus the even-hour voter
	assert.Len(t, voters, 3+1)
}

func TestGenerateVoters_SequenceStrictlyIncreasing_ArrivalsMonotonicPerPhase(t *testing.T) {
	cfg := newTestConfig(120)
	voters := GenerateVoters(cfg, 500, NewRandomSource(NewSimulationKey(5)))

	atOpen := votersForPercent(cfg.ArrivalZeroPercent, 500)
	for i, v := range voters {
		assert.Equal(t, i, v.Sequence)
		assert.Equal(t, StatePending, v.State)
		assert.Equal(t, UnassignedStation, v.Station)
	}

	// Within each hour, arrival times never go backwards and never start before the hour.
	idx := atOpen
	for hour := 0; hour < cfg.ElectionDayHours; hour++ {
		n := votersForPercent(cfg.ArrivalFraction(hour), 500)
		if hour%2 == 0 {
			n++
		}
		prev := hour * SecondsPerHour
		for k := 0; k < n; k++ {
			v := voters[idx]
			require.GreaterOrEqual(t, v.ArrivalTime, prev, "hour %d voter %d", hour, v.Sequence)
			prev = v.ArrivalTime
			idx++
		}
	}
	assert.Equal(t, len(voters), idx)
}

func TestGenerateVoters_SameSeed_IdenticalVoters(t *testing.T) {
	// GIVEN a config with a varied service-time table
	cfg := newTestConfig(120)
	cfg.ServiceTimes = []int{60, 90, 120, 180, 240, 300, 420}

	// WHEN generated twice from sources with the same seed
	a := GenerateVoters(cfg, 800, NewRandomSource(NewSimulationKey(2016)))
	b := GenerateVoters(cfg, 800, NewRandomSource(NewSimulationKey(2016)))

	// THEN arrival times and durations match exactly
	require.Equal(t, len(a), len(b))
	for i := range a {
		if a[i].ArrivalTime != b[i].ArrivalTime || a[i].Duration != b[i].Duration {
			t.Fatalf("voter %d differs: (%d, %d) vs (%d, %d)", i, a[i].ArrivalTime, a[i].Duration, b[i].ArrivalTime, b[i].Duration)
		}
	}
}

func TestGenerateVoters_DifferentSeeds_DifferentArrivals(t *testing.T) {
	cfg := newTestConfig(120)
	a := GenerateVoters(cfg, 800, NewRandomSource(NewSimulationKey(1)))
	b := GenerateVoters(cfg, 800, NewRandomSource(NewSimulationKey(2)))
	require.Equal(t, len(a), len(b))

	differ := false
	for i := range a {
		if a[i].ArrivalTime != b[i].ArrivalTime {
			differ = true
			break
		}
	}
	assert.True(t, differ, "two seeds produced identical arrivals")
}

func TestGenerateVoters_DurationsComeFromTable(t *testing.T) {
	cfg := newTestConfig(120)
	cfg.ServiceTimes = []int{61, 62, 63}
	voters := GenerateVoters(cfg, 300, NewRandomSource(NewSimulationKey(8)))
	for _, v := range voters {
		assert.Contains(t, cfg.ServiceTimes, v.Duration)
	}
}

func TestGenerateVoters_EmptyServiceTable_UsesMeanWithoutDrawing(t *testing.T) {
	// GIVEN no service-time table
	cfg := newTestConfig(150)
	cfg.ServiceTimes = nil

	// WHEN voters are generated
	voters := GenerateVoters(cfg, 100, NewRandomSource(NewSimulationKey(3)))

	// THEN every duration is the configured mean
	require.NotEmpty(t, voters)
	for _, v := range voters {
		assert.Equal(t, 150, v.Duration)
	}
}

func TestGenerateVoters_ZeroExpected_OnlyEvenHourVoters(t *testing.T) {
	cfg := newTestConfig(60)
	voters := GenerateVoters(cfg, 0, NewRandomSource(NewSimulationKey(3)))
	// 13 hours: hours 0, 2, ..., 12 each add one voter.
	assert.Len(t, voters, 7)
}

func TestGenerateVoters_ZeroLengthDay_OnlyOpeningVoters(t *testing.T) {
	cfg := newTestConfig(60)
	cfg.ElectionDayHours = 0
	cfg.ArrivalFractions = nil
	voters := GenerateVoters(cfg, 200, NewRandomSource(NewSimulationKey(3)))
	assert.Len(t, voters, 20)
}

func TestGenerateVoters_ShortFractionTable_MissingHoursAreZero(t *testing.T) {
	cfg := newTestConfig(60)
	cfg.ElectionDayHours = 3
	cfg.ArrivalZeroPercent = 0
	cfg.ArrivalFractions = testutil.FlatFractions(1, 50)

	voters := GenerateVoters(cfg, 100, NewRandomSource(NewSimulationKey(3)))

	// hour 0: 50 + 1, hour 1: 0, hour 2: 0 + 1
	assert.Len(t, voters, 52)
}
