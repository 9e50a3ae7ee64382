package sched

import (
	"context"
	"sync"
)

// Queue runs dispatched callbacks on the goroutine that calls Run. It is the
// headless counterpart of the TUI update loop.
type Queue struct {
	ch   chan func()
	done chan struct{}
	once sync.Once
}

func NewQueue() *Queue {
	return &Queue{
		ch:   make(chan func(), 16),
		done: make(chan struct{}),
	}
}

// Dispatch enqueues fn. After Close it drops fn instead of blocking the
// timer goroutine forever.
func (q *Queue) Dispatch(fn func()) {
	select {
	case q.ch <- fn:
	case <-q.done:
	}
}

// Run executes callbacks until until() reports true (checked before waiting
// and after every callback), ctx is done or the queue is closed.
func (q *Queue) Run(ctx context.Context, until func() bool) error {
	for {
		if until != nil && until() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.done:
			return nil
		case fn := <-q.ch:
			fn()
		}
	}
}

// Next blocks until a callback is dispatched or the queue is closed. It lets
// a bubbletea command hand callbacks to the Update loop one at a time.
func (q *Queue) Next() (func(), bool) {
	select {
	case fn := <-q.ch:
		return fn, true
	case <-q.done:
		return nil, false
	}
}

func (q *Queue) Close() {
	q.once.Do(func() { close(q.done) })
}
