// Package queue provides fixed-capacity FIFO queues.
//
// This package offers three implementations:
//   - ArrayQueue: linear array queue whose slots are never reused
//   - CircleQueue: circular array queue with one sacrificed slot
//   - ChannelQueue: buffered channel wrapper
//
// # Concurrency (IMPORTANT)
//
// ArrayQueue and CircleQueue are NOT safe for concurrent use. Callers that
// share one across goroutines must serialize access themselves; the buffer
// package does exactly that under its own lock.
//
// ChannelQueue is safe for concurrent Push and Pop.
package queue

import "errors"

var (
	// ErrFull is returned by Add when the queue has no free slot.
	ErrFull = errors.New("queue: full")

	// ErrEmpty is returned by Get and Head when the queue holds no item.
	ErrEmpty = errors.New("queue: empty")
)

// PushPopper is the minimal non-blocking FIFO contract.
//
// Push returns false if the queue is full, Pop returns false if it is empty.
type PushPopper[T any] interface {
	// Push adds an item to the tail.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns the head item.
	// Returns false if the queue is empty.
	Pop() (T, bool)

	// Len returns the number of items currently queued.
	Len() int

	// Cap returns the maximum number of items the queue can hold.
	Cap() int
}

// Queue is an array-backed FIFO that can also be inspected.
type Queue[T any] interface {
	PushPopper[T]

	// Peek returns the head item without removing it.
	Peek() (T, bool)

	IsFull() bool
	IsEmpty() bool

	// Values returns a copy of the queued items, head first.
	Values() []T
}

// Add pushes v onto q, reporting ErrFull instead of a bare false.
func Add[T any](q PushPopper[T], v T) error {
	if !q.Push(v) {
		return ErrFull
	}
	return nil
}

// Get pops the head of q, reporting ErrEmpty instead of a bare false.
func Get[T any](q PushPopper[T]) (T, error) {
	v, ok := q.Pop()
	if !ok {
		return v, ErrEmpty
	}
	return v, nil
}

// Head returns the head of q without removing it, or ErrEmpty.
func Head[T any](q Queue[T]) (T, error) {
	v, ok := q.Peek()
	if !ok {
		return v, ErrEmpty
	}
	return v, nil
}
