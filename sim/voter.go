// Defines the Voter struct that models one voter in a single trial.
// Tracks arrival, service duration, the assigned station and the wait.

package sim

import "fmt"

// VoterState represents the lifecycle state of a voter within one trial.
type VoterState string

const (
	StatePending   VoterState = "pending"
	StateVoting    VoterState = "voting"
	StateCompleted VoterState = "completed"
)

// UnassignedStation marks a voter that has not been given a station yet.
const UnassignedStation = -1

// Voter models a single voter's lifecycle in the simulation.
// All times are in seconds since the precinct opened.
type Voter struct {
	Sequence int // Generation order, unique within a trial

	ArrivalTime int // Second at which the voter joins the line
	Duration    int // Service duration, sampled once at creation

	State     VoterState // pending, voting, completed
	Station   int        // Assigned station, UnassignedStation until assigned
	StartTime int        // Second at which the voter began voting
	WaitTime  int        // StartTime - ArrivalTime; valid once assigned
}

// NewVoter creates a pending voter with no station.
func NewVoter(sequence, arrival, duration int) *Voter {
	return &Voter{
		Sequence:    sequence,
		ArrivalTime: arrival,
		Duration:    duration,
		State:       StatePending,
		Station:     UnassignedStation,
	}
}

// AssignStation records that the voter started voting at station at second start.
// It is called exactly once per voter, by the station allocation loop.
func (v *Voter) AssignStation(station, start int) {
	if v.State != StatePending {
		panic(fmt.Sprintf("AssignStation: voter %d is %s, want %s", v.Sequence, v.State, StatePending))
	}
	v.Station = station
	v.StartTime = start
	v.WaitTime = start - v.ArrivalTime
	v.State = StateVoting
}

// DoneTime is the second at which the voter releases its station.
func (v *Voter) DoneTime() int {
	return v.StartTime + v.Duration
}

// WaitMinutes is the wait time truncated to whole minutes.
func (v *Voter) WaitMinutes() int {
	return v.WaitTime / 60
}

// This method returns a human-readable string representation of a Voter.
func (v Voter) String() string {
	return fmt.Sprintf("Voter: (Seq: %d, State: %s, Arrival: %s, Start: %s, Duration: %s, Done: %s, Wait: %s, Station: %d)",
		v.Sequence, v.State, FormatClock(v.ArrivalTime), FormatClock(v.StartTime), FormatClock(v.Duration),
		FormatClock(v.DoneTime()), FormatClock(v.WaitTime), v.Station)
}

// FormatClock renders seconds as HH:MM:SS. Negative values render as 00:00:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
