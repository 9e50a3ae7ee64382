package sched

import (
	"sort"
	"time"
)

// Manual is a Scheduler driven by an explicit clock. Callbacks run
// synchronously inside Advance, in due order (ties by scheduling order).
// Intended for tests; not safe for concurrent use.
type Manual struct {
	now   time.Duration
	seq   int
	tasks []*manualTask
}

type manualTask struct {
	seq      int
	at       time.Duration
	period   time.Duration
	fn       func()
	canceled bool
}

func (t *manualTask) Cancel()    { t.canceled = true }
func (t *manualTask) Done() bool { return t.canceled }

func NewManual() *Manual { return &Manual{} }

func (m *Manual) Now() time.Duration { return m.now }

func (m *Manual) AfterFunc(d time.Duration, fn func()) Task {
	return m.add(d, 0, fn)
}

func (m *Manual) Every(d time.Duration, fn func()) Task {
	if d <= 0 {
		d = time.Millisecond
	}
	return m.add(d, d, fn)
}

func (m *Manual) add(d, period time.Duration, fn func()) *manualTask {
	m.seq++
	t := &manualTask{seq: m.seq, at: m.now + d, period: period, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Advance moves the clock forward by d, running every callback that comes due.
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.at
		if next.period > 0 {
			next.at += next.period
		} else {
			next.canceled = true
		}
		next.fn()
	}
	m.now = target
	m.compact()
}

func (m *Manual) nextDue(target time.Duration) *manualTask {
	m.compact()
	sort.SliceStable(m.tasks, func(i, j int) bool {
		if m.tasks[i].at != m.tasks[j].at {
			return m.tasks[i].at < m.tasks[j].at
		}
		return m.tasks[i].seq < m.tasks[j].seq
	})
	if len(m.tasks) == 0 || m.tasks[0].at > target {
		return nil
	}
	return m.tasks[0]
}

func (m *Manual) compact() {
	live := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.canceled {
			live = append(live, t)
		}
	}
	m.tasks = live
}

// Pending reports how many tasks are scheduled and not cancelled.
func (m *Manual) Pending() int {
	m.compact()
	return len(m.tasks)
}
