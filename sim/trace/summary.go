package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Seconds       int     // simulated seconds recorded
	LastSecond    int     // last recorded second, -1 when nothing was recorded
	PeakPending   int     // longest line, counting not-yet-arrived voters
	PeakVoting    int     // most stations occupied at once
	MeanPending   float64 // average line length per second
	TotalAssigned int
	TotalReleased int

	// ConservationViolations counts seconds where free + voting != stations.
	ConservationViolations int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{LastSecond: -1}
	if st == nil {
		return summary
	}

	summary.Seconds = st.seconds
	summary.LastSecond = st.lastSecond
	summary.PeakPending = st.peakPending
	summary.PeakVoting = st.peakVoting
	summary.TotalAssigned = st.assigned
	summary.TotalReleased = st.released
	summary.ConservationViolations = st.violations
	if st.seconds > 0 {
		summary.MeanPending = float64(st.waitingSum) / float64(st.seconds)
	}

	return summary
}
