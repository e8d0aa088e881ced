package buffer

import (
	"context"
	"sync"

	"github.com/randomizedcoder/boundedbuffer/internal/queue"
)

// BoundedBuffer is a blocking FIFO built on a mutex and two sync.Cond
// values sharing it.
//
// Every wait sits in a loop that re-evaluates its predicate after each
// wakeup. Cancellation broadcasts on both conditions, so waiters routinely
// wake without their predicate having changed and simply wait again.
type BoundedBuffer[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	items    *queue.CircleQueue[T]
	count    int
	capacity int
	closed   bool

	observe Observer
}

// New creates a BoundedBuffer holding at most capacity items.
func New[T any](capacity int, opts ...Option) (*BoundedBuffer[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	o := buildOptions(opts)

	b := &BoundedBuffer[T]{
		items:    queue.NewCircle[T](capacity),
		capacity: capacity,
		observe:  o.observe,
	}
	b.notFull = sync.NewCond(&b.mu)
	b.notEmpty = sync.NewCond(&b.mu)
	return b, nil
}

// Put stores item, blocking while the buffer is full.
//
// Returns ErrClosed if the buffer is closed before space frees up, or an
// ErrCancelled error if ctx is done first. In both cases nothing is stored.
func (b *BoundedBuffer[T]) Put(ctx context.Context, item T) error {
	if ctx == nil {
		ctx = context.Background()
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == b.capacity && !b.closed {
		stop := context.AfterFunc(ctx, b.wakeAll)
		defer stop()

		for b.count == b.capacity && !b.closed {
			if err := ctx.Err(); err != nil {
				return cancelled(err)
			}
			b.notFull.Wait() // releases and re-acquires b.mu
		}
	}
	if b.closed {
		return ErrClosed
	}

	b.items.Push(item)
	b.count++
	b.notify(OpPut)
	b.notEmpty.Broadcast()
	return nil
}

// Take removes and returns the oldest item, blocking while the buffer is
// empty.
//
// After Close, Take keeps returning stored items until none are left and
// then returns ErrClosed.
func (b *BoundedBuffer[T]) Take(ctx context.Context) (T, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	var zero T
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count == 0 && !b.closed {
		stop := context.AfterFunc(ctx, b.wakeAll)
		defer stop()

		for b.count == 0 && !b.closed {
			if err := ctx.Err(); err != nil {
				return zero, cancelled(err)
			}
			b.notEmpty.Wait()
		}
	}
	if b.count == 0 {
		return zero, ErrClosed
	}

	return b.takeLocked(), nil
}

// TryPut stores item if there is room, without blocking.
func (b *BoundedBuffer[T]) TryPut(item T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.count == b.capacity {
		return false
	}
	b.items.Push(item)
	b.count++
	b.notify(OpPut)
	b.notEmpty.Broadcast()
	return true
}

// TryTake removes the oldest item if there is one, without blocking.
func (b *BoundedBuffer[T]) TryTake() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.count == 0 {
		var zero T
		return zero, false
	}
	return b.takeLocked(), true
}

func (b *BoundedBuffer[T]) takeLocked() T {
	v, _ := b.items.Pop()
	b.count--
	b.notify(OpTake)
	b.notFull.Broadcast()
	return v
}

// Len returns the number of stored items.
func (b *BoundedBuffer[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Cap returns the fixed capacity.
func (b *BoundedBuffer[T]) Cap() int {
	return b.capacity
}

// State returns a consistent snapshot of count and capacity.
func (b *BoundedBuffer[T]) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return State{Count: b.count, Capacity: b.capacity}
}

// Close stops further Puts and wakes every blocked caller.
func (b *BoundedBuffer[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	b.notFull.Broadcast()
	b.notEmpty.Broadcast()
}

// wakeAll runs when a waiter's context is done. Taking the lock first means
// the broadcast cannot slip in between a waiter's ctx check and its Wait.
func (b *BoundedBuffer[T]) wakeAll() {
	b.mu.Lock()
	b.notFull.Broadcast()
	b.notEmpty.Broadcast()
	b.mu.Unlock()
}

func (b *BoundedBuffer[T]) notify(op Op) {
	if b.observe != nil {
		b.observe(op, b.count)
	}
}
