package sim

import "container/heap"

// eventHeap implements heap.Interface.
// Ordering: time ascending, then insertion sequence ascending, so events
// sharing a timestamp pop in the order they were pushed.
type eventHeap []Event

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	if h[i].Time != h[j].Time {
		return h[i].Time < h[j].Time
	}
	return h[i].seq < h[j].seq
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(Event))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventScheduler is an unbounded min-time priority queue of pending events.
// Sequence numbers are local to the scheduler so that two runs with the same
// inputs see the same tie-break order.
type EventScheduler struct {
	events  eventHeap
	nextSeq uint64
}

// NewEventScheduler creates an empty scheduler.
func NewEventScheduler() *EventScheduler {
	s := &EventScheduler{events: make(eventHeap, 0)}
	heap.Init(&s.events)
	return s
}

// Push schedules e, stamping it with the next insertion sequence number.
func (s *EventScheduler) Push(e Event) {
	e.seq = s.nextSeq
	s.nextSeq++
	heap.Push(&s.events, e)
}

// Pop removes and returns the earliest event. ok is false when empty.
func (s *EventScheduler) Pop() (e Event, ok bool) {
	if len(s.events) == 0 {
		return Event{}, false
	}
	return heap.Pop(&s.events).(Event), true
}

// Peek returns the earliest event without removing it.
func (s *EventScheduler) Peek() (e Event, ok bool) {
	if len(s.events) == 0 {
		return Event{}, false
	}
	return s.events[0], true
}

// IsEmpty reports whether no events are pending.
func (s *EventScheduler) IsEmpty() bool {
	return len(s.events) == 0
}

// Len returns the number of pending events.
func (s *EventScheduler) Len() int {
	return len(s.events)
}

// Clear drops all pending events and restarts sequence numbering.
func (s *EventScheduler) Clear() {
	s.events = s.events[:0]
	s.nextSeq = 0
}
