/*
Package event implements the task queue that drives the overlay.

All state changes happen on whichever goroutine drains the queue, normally
the window's update loop. Other goroutines never touch the overlay directly,
they post a task instead. Delayed tasks are timed on a separate goroutine but
only posted when they fire, so their bodies also run on the draining
goroutine.
*/
package event

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// MaxQueued is the most tasks that can be waiting at once.
const MaxQueued = 1024

var (
	// ErrClosed is returned when posting to a closed queue
	ErrClosed = errors.New("event: queue closed")
	// ErrFull is returned when MaxQueued tasks are already waiting
	ErrFull = errors.New("event: queue is full")
)

// Queue is a FIFO of tasks.
type Queue struct {
	mu     sync.Mutex
	tasks  []func()
	closed bool
	wake   chan struct{}
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{
		wake: make(chan struct{}, 1),
	}
}

// Post appends f to the queue. It is safe to call from any goroutine.
func (q *Queue) Post(f func()) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}
	if len(q.tasks) >= MaxQueued {
		return ErrFull
	}
	q.tasks = append(q.tasks, f)

	select {
	case q.wake <- struct{}{}:
	default:
	}

	return nil
}

// Len returns the number of waiting tasks.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}

// Drain runs every waiting task on the calling goroutine, including any
// posted by the tasks themselves, and returns how many ran.
func (q *Queue) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		tasks := q.tasks
		q.tasks = nil
		q.mu.Unlock()

		if len(tasks) == 0 {
			return n
		}
		for _, f := range tasks {
			f()
			n++
		}
	}
}

// Run drains the queue whenever something is posted until ctx is done or
// the queue is closed.
func (q *Queue) Run(ctx context.Context) error {
	for {
		q.Drain()

		q.mu.Lock()
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return ErrClosed
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.wake:
		}
	}
}

// Close stops the queue accepting tasks. Tasks already waiting can still be
// drained.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.wake)
	}
}

// Timer is a pending delayed task.
type Timer struct {
	t         *time.Timer
	cancelled int32
}

// Stop cancels the task. It reports false if the task has already run or
// been cancelled. Calling Stop from the draining goroutine guarantees the
// task will not run even if its timer has already fired.
func (t *Timer) Stop() bool {
	t.t.Stop()
	return atomic.CompareAndSwapInt32(&t.cancelled, 0, 1)
}

// PostAfter posts f once d has elapsed.
func (q *Queue) PostAfter(d time.Duration, f func()) *Timer {
	t := new(Timer)
	t.t = time.AfterFunc(d, func() {
		// A closed queue means nobody is left to run it
		_ = q.Post(func() {
			if atomic.CompareAndSwapInt32(&t.cancelled, 0, 1) {
				f()
			}
		})
	})
	return t
}
