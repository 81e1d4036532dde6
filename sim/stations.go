package sim

import (
	"container/heap"
	"fmt"
)

// VotingHeap holds the voters currently at a station, ordered by completion.
// Ordering: done time → sequence number.
type VotingHeap struct {
	voters []*Voter
}

// NewVotingHeap creates an empty voting heap.
func NewVotingHeap() *VotingHeap {
	h := &VotingHeap{
		voters: make([]*Voter, 0),
	}
	heap.Init(h)
	return h
}

// Len implements heap.Interface
func (h *VotingHeap) Len() int {
	return len(h.voters)
}

// Less implements heap.Interface with deterministic ordering
func (h *VotingHeap) Less(i, j int) bool {
	vi, vj := h.voters[i], h.voters[j]
	if vi.DoneTime() != vj.DoneTime() {
		return vi.DoneTime() < vj.DoneTime()
	}
	return vi.Sequence < vj.Sequence
}

// Swap implements heap.Interface
func (h *VotingHeap) Swap(i, j int) {
	h.voters[i], h.voters[j] = h.voters[j], h.voters[i]
}

// Push implements heap.Interface
func (h *VotingHeap) Push(x interface{}) {
	h.voters = append(h.voters, x.(*Voter))
}

// Pop implements heap.Interface
func (h *VotingHeap) Pop() interface{} {
	old := h.voters
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	h.voters = old[0 : n-1]
	return item
}

// Add places a voter that has just been assigned a station.
func (h *VotingHeap) Add(v *Voter) {
	heap.Push(h, v)
}

// Peek returns the next voter to finish without removing it.
func (h *VotingHeap) Peek() *Voter {
	if h.Len() == 0 {
		return nil
	}
	return h.voters[0]
}

// PopDone removes and returns the next voter whose done time is <= now,
// or nil when nobody is finished.
func (h *VotingHeap) PopDone(now int) *Voter {
	if next := h.Peek(); next == nil || next.DoneTime() > now {
		return nil
	}
	return heap.Pop(h).(*Voter)
}

// StationPool is the set of free station identifiers.
// Stations are interchangeable, so the pool hands out whichever id is on top.
type StationPool struct {
	total int
	free  []int
}

// NewStationPool creates a pool with stations 0..total-1 all free.
func NewStationPool(total int) *StationPool {
	free := make([]int, total)
	for i := range free {
		// Reverse order so the first Acquire returns station 0.
		free[i] = total - 1 - i
	}
	return &StationPool{total: total, free: free}
}

// Free returns the number of unoccupied stations.
func (p *StationPool) Free() int {
	return len(p.free)
}

// Total returns the number of stations in the precinct.
func (p *StationPool) Total() int {
	return p.total
}

// Acquire takes a free station. ok is false when every station is occupied.
func (p *StationPool) Acquire() (station int, ok bool) {
	n := len(p.free)
	if n == 0 {
		return UnassignedStation, false
	}
	station = p.free[n-1]
	p.free = p.free[:n-1]
	return station, true
}

// Release returns a station to the pool.
func (p *StationPool) Release(station int) {
	if station < 0 || station >= p.total {
		panic(fmt.Sprintf("Release: station %d out of range [0, %d)", station, p.total))
	}
	if len(p.free) >= p.total {
		panic(fmt.Sprintf("Release: station %d released into a full pool", station))
	}
	p.free = append(p.free, station)
}
