// Package sched provides cancellable scheduled tasks.
//
// Timers fire on runtime goroutines, but callbacks never run there: they are
// handed to a dispatch function which is expected to run them on the single
// goroutine that owns the state the callback touches (the TUI update loop or
// a Queue). A cancelled task never runs its callback, even when the timer has
// already fired and the callback is sitting in the dispatch queue.
package sched

import (
	"sync"
	"sync/atomic"
	"time"
)

// Task is a handle to a scheduled callback. Cancel is idempotent and safe to
// call from any goroutine. Done reports that the callback will not run again:
// the task was cancelled or, for a one-shot task, has already run.
type Task interface {
	Cancel()
	Done() bool
}

type Scheduler interface {
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Task
	// Every runs fn every d until the task is cancelled.
	Every(d time.Duration, fn func()) Task
}

// Dispatch hands a callback to the owning goroutine.
type Dispatch func(fn func())

// Timer is a wall-clock Scheduler.
type Timer struct {
	dispatch Dispatch
}

func NewTimer(dispatch Dispatch) *Timer {
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Timer{dispatch: dispatch}
}

type timerTask struct {
	canceled atomic.Bool

	mu sync.Mutex
	t  *time.Timer
}

func (t *timerTask) Cancel() {
	t.canceled.Store(true)
	t.mu.Lock()
	if t.t != nil {
		t.t.Stop()
	}
	t.mu.Unlock()
}

func (t *timerTask) Done() bool { return t.canceled.Load() }

func (s *Timer) AfterFunc(d time.Duration, fn func()) Task {
	task := &timerTask{}
	task.mu.Lock()
	task.t = time.AfterFunc(d, func() {
		if task.Done() {
			return
		}
		s.dispatch(func() {
			if task.Done() {
				return
			}
			// One-shot: mark done so a late Cancel is a no-op for callers.
			task.canceled.Store(true)
			fn()
		})
	})
	task.mu.Unlock()
	return task
}

func (s *Timer) Every(d time.Duration, fn func()) Task {
	if d <= 0 {
		d = time.Millisecond
	}
	task := &timerTask{}
	var fire func()
	fire = func() {
		// Re-arm before dispatching so the cadence does not drift with the
		// time the owning loop takes to pick the callback up.
		task.mu.Lock()
		if task.Done() {
			task.mu.Unlock()
			return
		}
		task.t.Reset(d)
		task.mu.Unlock()
		s.dispatch(func() {
			if task.Done() {
				return
			}
			fn()
		})
	}
	task.mu.Lock()
	task.t = time.AfterFunc(d, fire)
	task.mu.Unlock()
	return task
}

// Group tracks tasks so an owner can release all of them at once.
type Group struct {
	tasks []Task
}

func (g *Group) Add(t Task) Task {
	// Drop handles that are already finished to keep the slice short.
	live := g.tasks[:0]
	for _, x := range g.tasks {
		if !x.Done() {
			live = append(live, x)
		}
	}
	g.tasks = append(live, t)
	return t
}

func (g *Group) CancelAll() {
	for _, t := range g.tasks {
		t.Cancel()
	}
	g.tasks = nil
}

// Live reports how many tracked tasks are still pending.
func (g *Group) Live() int {
	n := 0
	for _, t := range g.tasks {
		if !t.Done() {
			n++
		}
	}
	return n
}
