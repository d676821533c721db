package netsim

import (
	"testing"
)

// TestEventQueue_TimestampOrdering tests that entries dispatch in time order
// with ties broken by submission order: A@5, B@5, C@3 must run as C, A, B.
func TestEventQueue_TimestampOrdering(t *testing.T) {
	q := NewEventQueue()

	var order []string
	q.Schedule(5, func() { order = append(order, "A") })
	q.Schedule(5, func() { order = append(order, "B") })
	q.Schedule(3, func() { order = append(order, "C") })

	wantTimes := []float64{3, 5, 5}
	for i := 0; !q.Empty(); i++ {
		if !q.Proceed() {
			t.Fatalf("Proceed returned false with entries pending")
		}
		if q.Now() != wantTimes[i] {
			t.Errorf("clock after dispatch %d = %v, want %v", i, q.Now(), wantTimes[i])
		}
	}

	want := []string{"C", "A", "B"}
	if len(order) != len(want) {
		t.Fatalf("dispatched %d callbacks, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("dispatch %d = %s, want %s", i, order[i], want[i])
		}
	}
}

// TestEventQueue_ClockNeverDecreases tests monotonicity across dispatches.
func TestEventQueue_ClockNeverDecreases(t *testing.T) {
	q := NewEventQueue()
	for _, d := range []float64{7, 1, 4, 1, 9} {
		q.Schedule(d, func() {})
	}

	last := q.Now()
	for !q.Empty() {
		q.Proceed()
		if q.Now() < last {
			t.Fatalf("clock decreased: %v -> %v", last, q.Now())
		}
		last = q.Now()
	}
	if last != 9 {
		t.Errorf("final clock = %v, want 9", last)
	}
}

// TestEventQueue_ReentrantSchedule tests that a callback scheduling a new
// same-time entry sees it ordered after entries already queued for that time.
func TestEventQueue_ReentrantSchedule(t *testing.T) {
	q := NewEventQueue()

	var order []string
	q.Schedule(5, func() {
		order = append(order, "first")
		// Lands at time 5 as well, but with a later sequence number than
		// "second" below, so it must run last.
		q.Schedule(0, func() { order = append(order, "nested") })
	})
	q.Schedule(5, func() { order = append(order, "second") })

	for !q.Empty() {
		q.Proceed()
	}

	want := []string{"first", "second", "nested"}
	if len(order) != len(want) {
		t.Fatalf("dispatched %d callbacks, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("dispatch %d = %s, want %s", i, order[i], want[i])
		}
	}
}

// TestEventQueue_ProceedOnEmpty tests that draining an empty queue is a no-op.
func TestEventQueue_ProceedOnEmpty(t *testing.T) {
	q := NewEventQueue()
	if q.Proceed() {
		t.Errorf("Proceed on empty queue returned true")
	}
	if q.Now() != 0 {
		t.Errorf("clock moved on empty queue: %v", q.Now())
	}
	if !q.Empty() {
		t.Errorf("queue not empty after no-op Proceed")
	}
}

// TestEventQueue_NegativeDelayPanics tests that scheduling behind the clock
// fails fast.
func TestEventQueue_NegativeDelayPanics(t *testing.T) {
	q := NewEventQueue()
	defer func() {
		if recover() == nil {
			t.Errorf("Schedule with negative delay did not panic")
		}
	}()
	q.Schedule(-1, func() {})
}

// TestEventQueue_NilCallbackPanics tests the nil-callback guard.
func TestEventQueue_NilCallbackPanics(t *testing.T) {
	q := NewEventQueue()
	defer func() {
		if recover() == nil {
			t.Errorf("Schedule with nil callback did not panic")
		}
	}()
	q.Schedule(1, nil)
}

// TestEventQueue_CallbackRunsExactlyOnce tests single dispatch per entry.
func TestEventQueue_CallbackRunsExactlyOnce(t *testing.T) {
	q := NewEventQueue()
	count := 0
	q.Schedule(2, func() { count++ })

	for !q.Empty() {
		q.Proceed()
	}
	q.Proceed() // extra call must not re-dispatch

	if count != 1 {
		t.Errorf("callback ran %d times, want 1", count)
	}
	if q.Len() != 0 {
		t.Errorf("queue length = %d, want 0", q.Len())
	}
}
