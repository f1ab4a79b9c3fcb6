// Package sched provides tick-driven one-shot timers with cancellable
// handles. All simulation waiting (reload completion, module
// deactivation, wall expiry, respawn sequencing) goes through a
// Scheduler rather than wall-clock timers, so the simulation stays
// deterministic under any real-time rate.
package sched

import "container/heap"

// Handle identifies a pending callback so it can be cancelled. Cancelling
// an already-fired or already-cancelled handle is a no-op.
type Handle struct {
	cancelled bool
	fired     bool
}

// Cancel prevents the callback from running.
func (h *Handle) Cancel() {
	if h != nil {
		h.cancelled = true
	}
}

// Pending reports whether the callback is still scheduled.
func (h *Handle) Pending() bool {
	return h != nil && !h.cancelled && !h.fired
}

type entry struct {
	due    int64
	seq    int64 // preserves schedule order among same-tick entries
	fn     func()
	handle *Handle
}

type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)        { *h = append(*h, x.(*entry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// Scheduler runs callbacks at tick deadlines.
type Scheduler struct {
	now     int64
	seq     int64
	pending entryHeap
}

func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the last tick passed to Advance.
func (s *Scheduler) Now() int64 { return s.now }

// Schedule runs fn once, delay ticks from now. A delay of zero or less
// fires on the next Advance. Callbacks must re-check entity liveness,
// since the owning entity may have been disposed before the deadline.
func (s *Scheduler) Schedule(delay int64, fn func()) *Handle {
	if delay < 0 {
		delay = 0
	}
	s.seq++
	e := &entry{due: s.now + delay, seq: s.seq, fn: fn, handle: &Handle{}}
	heap.Push(&s.pending, e)
	return e.handle
}

// Advance moves the scheduler to tick and fires every due, non-cancelled
// callback in deadline order. Callbacks may schedule further work.
func (s *Scheduler) Advance(tick int64) {
	s.now = tick
	for len(s.pending) > 0 && s.pending[0].due <= tick {
		e := heap.Pop(&s.pending).(*entry)
		if e.handle.cancelled {
			continue
		}
		e.handle.fired = true
		e.fn()
	}
}

// Len returns the number of pending (possibly cancelled) entries.
func (s *Scheduler) Len() int { return len(s.pending) }
