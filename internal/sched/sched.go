// Package sched is a virtual-time timer wheel driven by the game loop. Time
// only moves when Advance is called, so every callback runs on the tick goroutine.
package sched

import (
	"container/heap"
	"time"
)

// Clock is the scheduling surface the simulation packages depend on.
type Clock interface {
	Now() time.Duration
	After(d time.Duration, fn func()) *Handle
	Every(d time.Duration, fn func()) *Handle
}

// Handle cancels a scheduled callback. A nil Handle is valid and inert.
type Handle struct {
	s        *Scheduler
	due      time.Duration
	seq      uint64
	interval time.Duration
	fn       func()
	index    int
	done     bool
}

// Cancel stops the callback from running again. Safe to call more than once.
func (h *Handle) Cancel() {
	if h == nil || h.done {
		return
	}
	h.done = true
	if h.index >= 0 {
		heap.Remove(&h.s.queue, h.index)
	}
}

// Active reports whether the callback is still pending.
func (h *Handle) Active() bool {
	return h != nil && !h.done
}

// Scheduler runs callbacks at virtual times in (due, insertion) order.
type Scheduler struct {
	now   time.Duration
	seq   uint64
	queue timerQueue
}

func New() *Scheduler {
	return &Scheduler{queue: make(timerQueue, 0, 64)}
}

// Now returns the virtual time elapsed since the scheduler was created.
func (s *Scheduler) Now() time.Duration { return s.now }

// Pending returns the number of queued callbacks.
func (s *Scheduler) Pending() int { return len(s.queue) }

// After runs fn once, d from now.
func (s *Scheduler) After(d time.Duration, fn func()) *Handle {
	if d < 0 {
		d = 0
	}
	return s.push(&Handle{due: s.now + d, fn: fn})
}

// Every runs fn every d, first firing d from now.
func (s *Scheduler) Every(d time.Duration, fn func()) *Handle {
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return s.push(&Handle{due: s.now + d, interval: d, fn: fn})
}

func (s *Scheduler) push(h *Handle) *Handle {
	h.s = s
	h.seq = s.seq
	s.seq++
	heap.Push(&s.queue, h)
	return h
}

// Advance moves virtual time forward by dt, running every callback that falls
// due on the way, including ones scheduled by callbacks. It returns the number
// of callbacks run.
func (s *Scheduler) Advance(dt time.Duration) int {
	target := s.now + dt
	ran := 0
	for len(s.queue) > 0 {
		h := s.queue[0]
		if h.due > target {
			break
		}
		heap.Pop(&s.queue)
		s.now = h.due
		if h.interval > 0 {
			h.due += h.interval
			h.seq = s.seq
			s.seq++
			heap.Push(&s.queue, h)
		} else {
			h.done = true
		}
		h.fn()
		ran++
	}
	s.now = target
	return ran
}

type timerQueue []*Handle

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	h := x.(*Handle)
	h.index = len(*q)
	*q = append(*q, h)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	h := old[n-1]
	old[n-1] = nil
	h.index = -1
	*q = old[:n-1]
	return h
}
