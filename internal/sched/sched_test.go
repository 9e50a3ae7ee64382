package sched

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestManual_RunsInDueOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.AfterFunc(30*time.Millisecond, func() { got = append(got, "c") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "a") })
	m.AfterFunc(10*time.Millisecond, func() { got = append(got, "b") })

	m.Advance(9 * time.Millisecond)
	assert.Empty(t, got)

	m.Advance(1 * time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, got)

	m.Advance(time.Second)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, 0, m.Pending())
}

func TestManual_EveryUntilCancelled(t *testing.T) {
	m := NewManual()
	n := 0
	var task Task
	task = m.Every(100*time.Millisecond, func() {
		n++
		if n == 3 {
			task.Cancel()
		}
	})

	m.Advance(250 * time.Millisecond)
	assert.Equal(t, 2, n)
	assert.False(t, task.Done())

	m.Advance(time.Second)
	assert.Equal(t, 3, n)
	assert.True(t, task.Done())
	assert.Equal(t, 0, m.Pending())
}

func TestManual_CancelBeforeDue(t *testing.T) {
	m := NewManual()
	ran := false
	task := m.AfterFunc(time.Second, func() { ran = true })
	task.Cancel()
	task.Cancel()

	m.Advance(2 * time.Second)
	assert.False(t, ran)
}

func TestManual_CallbackCanScheduleMore(t *testing.T) {
	m := NewManual()
	var got []time.Duration
	m.AfterFunc(time.Second, func() {
		got = append(got, m.Now())
		m.AfterFunc(time.Second, func() { got = append(got, m.Now()) })
	})

	m.Advance(5 * time.Second)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, got)
	assert.Equal(t, 5*time.Second, m.Now())
}

func TestTimer_AfterFuncRunsOnQueue(t *testing.T) {
	q := NewQueue()
	defer q.Close()
	tm := NewTimer(q.Dispatch)

	fired := 0
	task := tm.AfterFunc(5*time.Millisecond, func() { fired++ })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, q.Run(ctx, func() bool { return fired == 1 }))
	assert.True(t, task.Done())
}

func TestTimer_EveryTicksUntilCancelled(t *testing.T) {
	q := NewQueue()
	defer q.Close()
	tm := NewTimer(q.Dispatch)

	ticks := 0
	var task Task
	task = tm.Every(2*time.Millisecond, func() {
		ticks++
		if ticks == 5 {
			task.Cancel()
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, q.Run(ctx, func() bool { return ticks == 5 }))
	assert.True(t, task.Done())
}

func TestTimer_CancelAfterFireSuppressesQueuedCallback(t *testing.T) {
	var mu sync.Mutex
	var pending []func()
	tm := NewTimer(func(fn func()) {
		mu.Lock()
		pending = append(pending, fn)
		mu.Unlock()
	})

	ran := false
	task := tm.AfterFunc(time.Millisecond, func() { ran = true })
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(pending) == 1
	}, 2*time.Second, time.Millisecond)

	task.Cancel()
	mu.Lock()
	fn := pending[0]
	mu.Unlock()
	fn()
	assert.False(t, ran)
}

func TestQueue_DispatchAfterCloseDoesNotBlock(t *testing.T) {
	q := NewQueue()
	q.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			q.Dispatch(func() {})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Dispatch blocked after Close")
	}
	require.NoError(t, q.Run(context.Background(), nil))
}

func TestGroup_CancelAll(t *testing.T) {
	m := NewManual()
	var g Group
	ran := 0
	g.Add(m.AfterFunc(time.Second, func() { ran++ }))
	g.Add(m.Every(time.Second, func() { ran++ }))
	assert.Equal(t, 2, g.Live())

	g.CancelAll()
	assert.Equal(t, 0, g.Live())
	m.Advance(10 * time.Second)
	assert.Equal(t, 0, ran)
}

func TestQueue_NextUnblocksOnClose(t *testing.T) {
	q := NewQueue()
	q.Dispatch(func() {})
	fn, ok := q.Next()
	require.True(t, ok)
	require.NotNil(t, fn)

	got := make(chan bool)
	go func() {
		_, ok := q.Next()
		got <- ok
	}()
	q.Close()
	select {
	case ok := <-got:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatalf("Next did not return after Close")
	}
}
