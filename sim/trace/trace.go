package trace

// TraceLevel controls the verbosity of occupancy tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelSummary keeps running aggregates only.
	TraceLevelSummary TraceLevel = "summary"
	// TraceLevelSeconds keeps every TickRecord in addition to the aggregates.
	TraceLevelSeconds TraceLevel = "seconds"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:    true,
	TraceLevelSummary: true,
	TraceLevelSeconds: true,
	"":                true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level    TraceLevel
	Stations int // station count of the traced trial
}

// Enabled reports whether anything should be recorded.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelSummary || c.Level == TraceLevelSeconds
}

// SimulationTrace collects occupancy data during one trial.
type SimulationTrace struct {
	Config TraceConfig
	Ticks  []TickRecord // only populated at TraceLevelSeconds

	seconds     int
	peakPending int
	peakVoting  int
	waitingSum  int64
	assigned    int
	released    int
	violations  int
	lastSecond  int
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Ticks:      make([]TickRecord, 0),
		lastSecond: -1,
	}
}

// RecordTick folds one second into the aggregates and, at TraceLevelSeconds,
// appends the record. A tick whose Free+Voting differs from the configured
// station count is counted as a conservation violation.
func (st *SimulationTrace) RecordTick(record TickRecord) {
	if !st.Config.Enabled() {
		return
	}
	st.seconds++
	st.lastSecond = record.Second
	if record.Pending > st.peakPending {
		st.peakPending = record.Pending
	}
	if record.Voting > st.peakVoting {
		st.peakVoting = record.Voting
	}
	st.waitingSum += int64(record.Pending)
	st.assigned += record.Assigned
	st.released += record.Released
	if record.Busy(st.Config.Stations) != record.Voting {
		st.violations++
	}
	if st.Config.Level == TraceLevelSeconds {
		st.Ticks = append(st.Ticks, record)
	}
}
