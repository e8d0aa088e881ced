// Package buffer provides fixed-capacity blocking buffers for
// producer/consumer coordination.
//
// This package offers two implementations of the Buffer interface:
//   - BoundedBuffer: one mutex and two condition variables (not-full,
//     not-empty), waiting in a loop until the predicate holds
//   - SemaphoreBuffer: counting semaphores for free and filled slots
//
// # Blocking and cancellation
//
// Put blocks while the buffer is full and Take blocks while it is empty.
// Neither busy-waits. Both accept a context: when it is done while the call is
// blocked, the call returns an error matching both ErrCancelled and the
// context's error, and the buffer is left exactly as it was. A cancelled call
// never stores or removes an item.
//
// No fairness is promised between waiting producers or between waiting
// consumers.
package buffer

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidCapacity is returned by the constructors for capacity <= 0.
	ErrInvalidCapacity = errors.New("buffer: invalid capacity")

	// ErrCancelled is returned when a blocked Put or Take is aborted by its
	// context. The returned error also wraps the context's error.
	ErrCancelled = errors.New("buffer: cancelled")

	// ErrClosed is returned by Put after Close, and by Take once the buffer
	// is closed and drained.
	ErrClosed = errors.New("buffer: closed")
)

// Buffer is a blocking fixed-capacity FIFO shared by producers and consumers.
//
// Implementations must be safe for concurrent use by any number of
// goroutines.
type Buffer[T any] interface {
	// Put stores item, blocking while the buffer is full.
	Put(ctx context.Context, item T) error

	// Take removes and returns the oldest item, blocking while the buffer
	// is empty.
	Take(ctx context.Context) (T, error)

	// Len returns the number of stored items.
	Len() int

	// Cap returns the fixed capacity.
	Cap() int

	// Close stops further Puts and wakes every blocked caller. Items already
	// stored can still be taken. Safe to call multiple times.
	Close()
}

// Op identifies the operation that changed the item count.
type Op uint8

const (
	OpPut Op = iota + 1
	OpTake
)

func (o Op) String() string {
	switch o {
	case OpPut:
		return "put"
	case OpTake:
		return "take"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Observer is called after every change of the item count, with the count
// that resulted. It runs while the buffer's lock is held, so calls for one
// buffer never overlap; it must not call back into the buffer.
type Observer func(op Op, count int)

// Option configures a buffer at construction.
type Option func(*options)

type options struct {
	observe Observer
}

// WithObserver installs fn as the buffer's count observer.
func WithObserver(fn Observer) Option {
	return func(o *options) {
		o.observe = fn
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// State is a snapshot of a buffer's fill level.
type State struct {
	Count    int
	Capacity int
}

// Full reports whether producers would block.
func (s State) Full() bool { return s.Count == s.Capacity }

// Empty reports whether consumers would block.
func (s State) Empty() bool { return s.Count == 0 }

func (s State) String() string {
	full, empty := "NOT_FULL", "NOT_EMPTY"
	if s.Full() {
		full = "FULL"
	}
	if s.Empty() {
		empty = "EMPTY"
	}
	return fmt.Sprintf("%s/%s (%d/%d)", full, empty, s.Count, s.Capacity)
}

func cancelled(err error) error {
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}
