// Implements the PendingQueue, which holds all voters waiting for a station.
// Voters are ordered by arrival time, ties broken by sequence number.

package sim

import (
	"fmt"
	"sort"
	"strings"
)

// PendingQueue is the line of voters who have not started voting yet.
// The front of the queue is always the earliest arrival, so the allocation
// loop can stop at the first voter who has not arrived.
type PendingQueue struct {
	queue []*Voter // ordered by (ArrivalTime, Sequence)
}

// NewPendingQueue builds a queue from voters in any order.
// The input slice is copied; the caller keeps ownership of it.
func NewPendingQueue(voters []*Voter) *PendingQueue {
	q := make([]*Voter, len(voters))
	copy(q, voters)
	sort.SliceStable(q, func(i, j int) bool {
		if q[i].ArrivalTime != q[j].ArrivalTime {
			return q[i].ArrivalTime < q[j].ArrivalTime
		}
		return q[i].Sequence < q[j].Sequence
	})
	return &PendingQueue{queue: q}
}

func (pq *PendingQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, v := range pq.queue {
		fmt.Fprintf(&sb, "%d@%d", v.Sequence, v.ArrivalTime)
		if i < len(pq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of voters in the queue.
func (pq *PendingQueue) Len() int {
	return len(pq.queue)
}

// Peek returns the voter at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (pq *PendingQueue) Peek() *Voter {
	if len(pq.queue) == 0 {
		return nil
	}
	return pq.queue[0]
}

// Dequeue removes and returns the voter at the front of the queue.
// Returns nil if the queue is empty.
func (pq *PendingQueue) Dequeue() *Voter {
	if len(pq.queue) == 0 {
		return nil
	}
	v := pq.queue[0]
	pq.queue[0] = nil
	pq.queue = pq.queue[1:]
	return v
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage -- callers MUST NOT
// append to or reslice it.
func (pq *PendingQueue) Items() []*Voter {
	return pq.queue
}
