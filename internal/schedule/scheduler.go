// Package schedule runs timed callbacks on a virtual clock that is advanced
// explicitly by its owner, one frame at a time.
//
// Every callback runs on the goroutine calling Advance, so state touched only
// from callbacks and from that goroutine needs no locking.
package schedule

import (
	"container/heap"
	"time"
)

// Handle cancels a scheduled task. The zero Handle is valid and cancels nothing.
type Handle struct {
	t *task
}

// Cancel stops the task from firing again. Safe to call more than once.
func (h Handle) Cancel() {
	if h.t != nil {
		h.t.canceled = true
	}
}

// Active reports whether the task may still fire.
func (h Handle) Active() bool {
	return h.t != nil && !h.t.canceled && !h.t.done
}

type task struct {
	due      time.Duration
	interval time.Duration // zero for one-shot
	seq      uint64
	fn       func()
	canceled bool
	done     bool
}

// taskQueue orders tasks by due time, then by scheduling order.
type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}
func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *taskQueue) Push(x any)   { *q = append(*q, x.(*task)) }
func (q *taskQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

// Scheduler is a single-threaded cooperative timer queue.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	queue   taskQueue
	stopped bool
}

// New returns a scheduler whose clock starts at zero.
func New() *Scheduler {
	return &Scheduler{}
}

// Now returns the elapsed virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After runs fn once, delay after the current virtual time.
func (s *Scheduler) After(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	return s.push(s.now+delay, 0, fn)
}

// Every runs fn each interval, first firing one interval from now.
// A non-positive interval schedules nothing.
func (s *Scheduler) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		return Handle{}
	}
	return s.push(s.now+interval, interval, fn)
}

func (s *Scheduler) push(due, interval time.Duration, fn func()) Handle {
	if s.stopped || fn == nil {
		return Handle{}
	}
	s.seq++
	t := &task{due: due, interval: interval, seq: s.seq, fn: fn}
	heap.Push(&s.queue, t)
	return Handle{t: t}
}

// Advance moves the clock forward by dt and runs every task that became due,
// in due order. Intervals that elapsed more than once fire once per elapsed
// interval. Tasks scheduled by callbacks fire in the same call when already due.
func (s *Scheduler) Advance(dt time.Duration) int {
	if s.stopped {
		return 0
	}
	if dt > 0 {
		s.now += dt
	}

	fired := 0
	for len(s.queue) > 0 && !s.stopped {
		t := s.queue[0]
		if t.canceled {
			heap.Pop(&s.queue)
			continue
		}
		if t.due > s.now {
			break
		}

		if t.interval > 0 {
			t.due += t.interval
			heap.Fix(&s.queue, 0)
		} else {
			heap.Pop(&s.queue)
			t.done = true
		}

		t.fn()
		fired++
	}
	return fired
}

// Pending returns the number of tasks still scheduled.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.queue {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Stop cancels every task; later scheduling and advancing are no-ops.
func (s *Scheduler) Stop() {
	for _, t := range s.queue {
		t.canceled = true
	}
	s.queue = nil
	s.stopped = true
}

// Stopped reports whether Stop has been called.
func (s *Scheduler) Stopped() bool {
	return s.stopped
}
