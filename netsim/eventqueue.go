package netsim

import (
	"container/heap"
	"fmt"

	"github.com/sirupsen/logrus"
)

// entry is one scheduled callback. The sequence number is assigned at
// insertion and only breaks ties between entries with equal times, so two
// sends scheduled for the same instant dispatch in submission order.
type entry struct {
	time     float64
	seq      uint64
	callback func()
}

// entryHeap orders entries by (time, seq).
type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].time != h[j].time {
		return h[i].time < h[j].time
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// EventQueue is the single-threaded, time-ordered scheduler driving the
// simulation. It owns the simulated clock: the clock advances only when
// Proceed dispatches an entry, and never decreases.
type EventQueue struct {
	clock   float64
	nextSeq uint64
	entries entryHeap
}

// NewEventQueue returns an empty queue with the clock at zero.
func NewEventQueue() *EventQueue {
	q := &EventQueue{entries: make(entryHeap, 0)}
	heap.Init(&q.entries)
	return q
}

// Now is the current simulated time.
func (q *EventQueue) Now() float64 {
	return q.clock
}

// Empty reports whether no entries remain.
func (q *EventQueue) Empty() bool {
	return len(q.entries) == 0
}

// Len returns the number of pending entries.
func (q *EventQueue) Len() int {
	return len(q.entries)
}

// Schedule enqueues callback to run delay time units from now. It returns
// immediately without invoking the callback. A negative delay would move an
// entry behind the clock and is a caller defect, not a recoverable
// condition.
func (q *EventQueue) Schedule(delay float64, callback func()) {
	if callback == nil {
		panic("netsim: nil callback scheduled")
	}
	if delay < 0 {
		panic(fmt.Sprintf("netsim: negative delay %v scheduled at time %v", delay, q.clock))
	}
	q.nextSeq++
	heap.Push(&q.entries, entry{time: q.clock + delay, seq: q.nextSeq, callback: callback})
}

// Proceed removes the entry with the smallest (time, sequence), advances the
// clock to its time, and invokes its callback exactly once. Callbacks may
// call Schedule; such entries are ordered after already-queued entries with
// the same time. Proceed on an empty queue is a no-op returning false.
func (q *EventQueue) Proceed() bool {
	if q.Empty() {
		return false
	}
	e := heap.Pop(&q.entries).(entry)
	if e.time < q.clock {
		panic(fmt.Sprintf("netsim: clock went backwards: %v < %v", e.time, q.clock))
	}
	q.clock = e.time
	logrus.Tracef("[t %012.3f] dispatching entry #%d (%d pending)", e.time, e.seq, len(q.entries))
	e.callback()
	return true
}
