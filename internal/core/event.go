package core

import (
	"container/heap"
	"fmt"
)

// Kind tags the target of a collision event.
type Kind int

const (
	KindParticle Kind = iota
	KindWall
	KindVertex
)

func (k Kind) String() string {
	switch k {
	case KindParticle:
		return "PARTICLE"
	case KindWall:
		return "WALL"
	case KindVertex:
		return "VERTEX"
	default:
		return "UNKNOWN"
	}
}

// Event is a predicted future contact. Tokens hold the participants'
// collision counts at prediction time; once either participant collides
// again the event no longer describes reality and is discarded when it
// surfaces from the queue. Obstacles never move, so their token is
// always zero.
type Event struct {
	Time    float64
	Kind    Kind
	Subject int
	Target  int

	subjectToken uint64
	targetToken  uint64
}

func (e Event) String() string {
	return fmt.Sprintf("%.14f %s %d %d", e.Time, e.Kind, e.Subject, e.Target)
}

// eventHeap is a min-heap on Event.Time. Stale entries are left in
// place and rejected lazily at pop time, so the heap only ever shrinks
// through Pop.
type eventHeap []Event

func (h eventHeap) Len() int            { return len(h) }
func (h eventHeap) Less(i, j int) bool  { return h[i].Time < h[j].Time }
func (h eventHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x interface{}) { *h = append(*h, x.(Event)) }

func (h *eventHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func (h *eventHeap) push(e Event) {
	heap.Push(h, e)
}

func (h *eventHeap) pop() (Event, bool) {
	if h.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(h).(Event), true
}
