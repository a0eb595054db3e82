package pipeline

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by Push after Close. The scanner is the only closer
// and never pushes afterwards, so seeing this error is a programming bug.
var ErrClosed = errors.New("pipeline: push on closed queue")

// Queue is the bounded FIFO connecting the scanner to the writers.
//
// Push blocks while the queue is at capacity; Pop blocks while it is empty
// and not yet closed. Close marks the end of input and wakes every waiter:
// wakeups are close-and-replace notify channels, so all currently blocked
// goroutines observe the state change at once and re-check it under the
// lock. No waiter ever depends on another waiter relaying the signal.
type Queue struct {
	mu       sync.Mutex
	items    []Batch
	capacity int
	closed   bool
	notFull  chan struct{}
	notEmpty chan struct{}
}

// NewQueue creates a queue holding at most capacity batches. A capacity
// below 1 is raised to 1.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{
		capacity: capacity,
		notFull:  make(chan struct{}),
		notEmpty: make(chan struct{}),
	}
}

// Push appends b to the tail, blocking until there is room. It returns the
// context error when ctx is cancelled while blocked, and ErrClosed if the
// queue was closed (a contract violation by the caller).
func (q *Queue) Push(ctx context.Context, b Batch) error {
	q.mu.Lock()
	for len(q.items) >= q.capacity && !q.closed {
		wait := q.notFull
		q.mu.Unlock()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wait:
		}
		q.mu.Lock()
	}
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.items = append(q.items, b)
	q.notEmpty = wake(q.notEmpty)
	q.mu.Unlock()
	return nil
}

// Pop removes and returns the head batch in FIFO order. When the queue is
// empty and closed it returns ok=false: the end-of-stream indication. Every
// Pop after close-and-drain returns ok=false immediately, once per call.
func (q *Queue) Pop(ctx context.Context) (b Batch, ok bool, err error) {
	q.mu.Lock()
	for len(q.items) == 0 && !q.closed {
		wait := q.notEmpty
		q.mu.Unlock()
		select {
		case <-ctx.Done():
			return Batch{}, false, ctx.Err()
		case <-wait:
		}
		q.mu.Lock()
	}
	if len(q.items) > 0 {
		b = q.items[0]
		q.items[0] = Batch{}
		q.items = q.items[1:]
		q.notFull = wake(q.notFull)
		q.mu.Unlock()
		return b, true, nil
	}
	q.mu.Unlock()
	return Batch{}, false, nil
}

// Close marks the queue as finished and wakes all waiters. Idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.notEmpty = wake(q.notEmpty)
		q.notFull = wake(q.notFull)
	}
	q.mu.Unlock()
}

// Len returns the number of pending batches.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// wake broadcasts to every goroutine blocked on ch and returns a fresh
// channel for the next round of waiters. Must be called with q.mu held.
func wake(ch chan struct{}) chan struct{} {
	close(ch)
	return make(chan struct{})
}
