// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/votesim/votesim/sim/trace"
)

// StationSimulator is the core object that holds simulation time, queueing state and the
// per-second loop for one trial at a fixed station count.
type StationSimulator struct {
	Clock    int
	Stations int
	// Pending holds voters who have not started voting, earliest arrival first.
	Pending *PendingQueue
	// Voting holds voters at a station, earliest completion first.
	Voting *VotingHeap
	// Completed holds voters in the order they finished.
	Completed []*Voter
	Pool      *StationPool
	// Trace is optional; nil disables per-second recording.
	Trace *trace.SimulationTrace
}

// NewStationSimulator creates a simulator with every station free and every voter pending.
// A station count below 1 is clamped to 1 so the loop always terminates.
func NewStationSimulator(stations int, voters []*Voter) *StationSimulator {
	if stations < 1 {
		logrus.Debugf("station count %d clamped to 1", stations)
		stations = 1
	}
	return &StationSimulator{
		Clock:     0,
		Stations:  stations,
		Pending:   NewPendingQueue(voters),
		Voting:    NewVotingHeap(),
		Completed: make([]*Voter, 0, len(voters)),
		Pool:      NewStationPool(stations),
	}
}

// Done reports whether every voter has finished.
func (s *StationSimulator) Done() bool {
	return s.Pending.Len() == 0 && s.Voting.Len() == 0
}

// Run advances the clock one second at a time until every voter has finished,
// and returns the completed voters.
func (s *StationSimulator) Run() []*Voter {
	for !s.Done() {
		s.Step()
	}
	logrus.Tracef("[second %06d] allocation ended, %d voters completed", s.Clock, len(s.Completed))
	return s.Completed
}

// Step executes one simulated second: release finished voters, seat eligible
// pending voters in arrival order, then advance the clock.
func (s *StationSimulator) Step() {
	released := s.releaseFinished(s.Clock)
	assigned := s.assignStations(s.Clock)
	if s.Trace != nil {
		s.Trace.RecordTick(trace.TickRecord{
			Second:    s.Clock,
			Pending:   s.Pending.Len(),
			Voting:    s.Voting.Len(),
			Free:      s.Pool.Free(),
			Completed: len(s.Completed),
			Assigned:  assigned,
			Released:  released,
		})
	}
	s.Clock++
}

// releaseFinished moves every voter whose done time has been reached to the
// completed set and returns their stations to the pool.
// Zero-duration voters finish in the second they start, so they are released
// on the following second.
func (s *StationSimulator) releaseFinished(now int) int {
	n := 0
	for v := s.Voting.PopDone(now); v != nil; v = s.Voting.PopDone(now) {
		s.Pool.Release(v.Station)
		v.State = StateCompleted
		s.Completed = append(s.Completed, v)
		n++
	}
	return n
}

// assignStations seats pending voters in arrival order while stations are free.
// Scanning stops at the first voter who has not arrived yet or when the pool is empty.
func (s *StationSimulator) assignStations(now int) int {
	n := 0
	for {
		next := s.Pending.Peek()
		if next == nil || next.ArrivalTime > now {
			return n
		}
		station, ok := s.Pool.Acquire()
		if !ok {
			return n
		}
		s.Pending.Dequeue()
		next.AssignStation(station, now)
		s.Voting.Add(next)
		logrus.Tracef("[second %06d] voter %d -> station %d (waited %ds)", now, next.Sequence, station, next.WaitTime)
		n++
	}
}
