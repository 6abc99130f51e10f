package sim

import "container/heap"

// EventID identifies a scheduled event. It is the event's sequence number.
type EventID int64

// Event is a scheduled wake-up of a single process.
// Ordering: Time ascending, then Seq ascending. PriorityKey is carried along
// for the resumed process; it never affects event order.
type Event struct {
	Time        float64  // virtual time at which Handle is resumed
	Seq         int64    // creation order, unique within one EventQueue
	PriorityKey *float64 // admission key of the request being granted (nil for plain wake-ups)
	Handle      *Handle  // process to resume
}

// ID returns the event's identifier.
func (e *Event) ID() EventID {
	return EventID(e.Seq)
}

// EventQueue is a binary heap of events with deterministic ordering.
// Sequence ids are assigned by Push from a counter owned by the queue, so two
// engines never share ordering state.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue struct {
	events  []*Event
	nextSeq int64
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{events: make([]*Event, 0)}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *EventQueue) Len() int { return len(q.events) }

// Less implements heap.Interface: time first, then sequence id.
func (q *EventQueue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]
	if ei.Time != ej.Time {
		return ei.Time < ej.Time
	}
	return ei.Seq < ej.Seq
}

// Swap implements heap.Interface
func (q *EventQueue) Swap(i, j int) { q.events[i], q.events[j] = q.events[j], q.events[i] }

// Push implements heap.Interface. Use Schedule to insert events.
func (q *EventQueue) Push(x any) {
	q.events = append(q.events, x.(*Event))
}

// Pop implements heap.Interface. Use PopNext to remove events.
func (q *EventQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.events = old[0 : n-1]
	return item
}

// Schedule inserts a wake-up for h at absolute time at and returns its id.
func (q *EventQueue) Schedule(at float64, key *float64, h *Handle) EventID {
	ev := &Event{Time: at, Seq: q.nextSeq, PriorityKey: key, Handle: h}
	q.nextSeq++
	heap.Push(q, ev)
	return ev.ID()
}

// PopNext removes and returns the earliest event, or nil when empty.
func (q *EventQueue) PopNext() *Event {
	if q.Len() == 0 {
		return nil
	}
	return heap.Pop(q).(*Event)
}

// PeekTime returns the time of the earliest event without removing it.
func (q *EventQueue) PeekTime() (float64, bool) {
	if q.Len() == 0 {
		return 0, false
	}
	return q.events[0].Time, true
}

// Clear drops every pending event. Sequence numbering continues.
func (q *EventQueue) Clear() {
	for i := range q.events {
		q.events[i] = nil
	}
	q.events = q.events[:0]
}
