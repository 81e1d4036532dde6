// Package trace provides per-second occupancy recording for station allocation runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TickRecord captures the queueing state at the end of one simulated second.
type TickRecord struct {
	Second    int
	Pending   int // voters still in line, including those not yet arrived
	Voting    int // voters occupying a station
	Free      int // unoccupied stations
	Completed int // voters finished so far
	Assigned  int // voters given a station during this second
	Released  int // stations freed during this second
}

// Busy returns the number of occupied stations, counted from the free side.
func (r TickRecord) Busy(stations int) int {
	return stations - r.Free
}
