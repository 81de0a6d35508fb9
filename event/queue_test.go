package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, q *Queue, n int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for q.Len() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d tasks", n)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPostDrainOrder(t *testing.T) {
	q := New()

	var got []int
	for i := 0; i < 3; i++ {
		i := i
		require.NoError(t, q.Post(func() { got = append(got, i) }))
	}
	assert.Equal(t, 3, q.Len())
	assert.Empty(t, got)

	assert.Equal(t, 3, q.Drain())
	assert.Equal(t, []int{0, 1, 2}, got)
	assert.Equal(t, 0, q.Drain())
}

func TestDrainRunsNestedPosts(t *testing.T) {
	q := New()

	var got []string
	require.NoError(t, q.Post(func() {
		got = append(got, "outer")
		require.NoError(t, q.Post(func() { got = append(got, "inner") }))
	}))

	assert.Equal(t, 2, q.Drain())
	assert.Equal(t, []string{"outer", "inner"}, got)
}

func TestPostAfterRunsOnlyWhenDrained(t *testing.T) {
	q := New()

	ran := false
	q.PostAfter(time.Millisecond, func() { ran = true })

	waitFor(t, q, 1)
	assert.False(t, ran)

	assert.Equal(t, 1, q.Drain())
	assert.True(t, ran)
}

func TestTimerStop(t *testing.T) {
	q := New()

	ran := false
	timer := q.PostAfter(time.Millisecond, func() { ran = true })

	// Fired but not yet drained, stopping still wins
	waitFor(t, q, 1)
	assert.True(t, timer.Stop())
	q.Drain()
	assert.False(t, ran)
	assert.False(t, timer.Stop())
}

func TestTimerStopBeforeFire(t *testing.T) {
	q := New()
	timer := q.PostAfter(time.Hour, func() {})
	assert.True(t, timer.Stop())
	assert.Equal(t, 0, q.Len())
}

func TestClose(t *testing.T) {
	q := New()
	require.NoError(t, q.Post(func() {}))
	q.Close()
	q.Close()

	assert.Equal(t, ErrClosed, q.Post(func() {}))
	assert.Equal(t, 1, q.Drain())
	assert.Equal(t, ErrClosed, q.Run(context.Background()))
}

func TestFull(t *testing.T) {
	q := New()
	for i := 0; i < MaxQueued; i++ {
		require.NoError(t, q.Post(func() {}))
	}
	assert.Equal(t, ErrFull, q.Post(func() {}))
}

func TestRun(t *testing.T) {
	q := New()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()

	ran := make(chan struct{})
	require.NoError(t, q.Post(func() { close(ran) }))

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("task did not run")
	}

	cancel()
	assert.Equal(t, context.Canceled, <-done)
}
