package buffer

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/randomizedcoder/boundedbuffer/internal/queue"
)

// SemaphoreBuffer is a blocking FIFO coordinated by two counting semaphores:
// free holds one token per empty slot and filled one per stored item. The
// mutex only guards the storage itself.
//
// A producer takes a free token, stores under the mutex and hands a filled
// token over; a consumer does the reverse. Semaphore acquisition is
// context-aware, so cancellation never consumes a token.
type SemaphoreBuffer[T any] struct {
	mu       sync.Mutex
	items    *queue.CircleQueue[T]
	capacity int
	observe  Observer

	free   *semaphore.Weighted
	filled *semaphore.Weighted

	// closing is cancelled by Close; waiters merge it into their own ctx.
	closing context.Context
	close   context.CancelFunc
}

// NewSemaphore creates a SemaphoreBuffer holding at most capacity items.
func NewSemaphore[T any](capacity int, opts ...Option) (*SemaphoreBuffer[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	o := buildOptions(opts)

	filled := semaphore.NewWeighted(int64(capacity))
	filled.TryAcquire(int64(capacity)) // start with no filled slots

	closing, closeFn := context.WithCancel(context.Background())
	return &SemaphoreBuffer[T]{
		items:    queue.NewCircle[T](capacity),
		capacity: capacity,
		observe:  o.observe,
		free:     semaphore.NewWeighted(int64(capacity)),
		filled:   filled,
		closing:  closing,
		close:    closeFn,
	}, nil
}

// Put stores item, blocking while every slot is taken.
func (s *SemaphoreBuffer[T]) Put(ctx context.Context, item T) error {
	if s.closing.Err() != nil {
		return ErrClosed
	}
	if err := s.acquire(ctx, s.free); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closing.Err() != nil {
		s.free.Release(1)
		return ErrClosed
	}
	s.items.Push(item)
	s.notify(OpPut)
	// Released under the mutex so a draining Take after Close sees it.
	s.filled.Release(1)
	return nil
}

// Take removes and returns the oldest item, blocking while none is stored.
func (s *SemaphoreBuffer[T]) Take(ctx context.Context) (T, error) {
	var zero T
	err := s.acquire(ctx, s.filled)
	switch {
	case err == nil:
	case errors.Is(err, ErrClosed):
		return s.drain()
	default:
		return zero, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.popLocked(), nil
}

// drain serves a Take that was woken by Close: it still gets an item if one
// is stored and unclaimed.
func (s *SemaphoreBuffer[T]) drain() (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.filled.TryAcquire(1) {
		var zero T
		return zero, ErrClosed
	}
	return s.popLocked(), nil
}

func (s *SemaphoreBuffer[T]) popLocked() T {
	v, _ := s.items.Pop()
	s.notify(OpTake)
	s.free.Release(1)
	return v
}

// acquire takes one token from sem, giving up when ctx or the buffer's
// closing context is done. A token that is available right away is taken
// whatever the state of ctx, matching BoundedBuffer.
func (s *SemaphoreBuffer[T]) acquire(ctx context.Context, sem *semaphore.Weighted) error {
	if sem.TryAcquire(1) {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	wait, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.closing, cancel)
	defer stop()

	if err := sem.Acquire(wait, 1); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return cancelled(ctxErr)
		}
		return ErrClosed
	}
	return nil
}

// Len returns the number of stored items.
func (s *SemaphoreBuffer[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Len()
}

// Cap returns the fixed capacity.
func (s *SemaphoreBuffer[T]) Cap() int {
	return s.capacity
}

// Close stops further Puts and wakes every blocked caller.
func (s *SemaphoreBuffer[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.close()
}

func (s *SemaphoreBuffer[T]) notify(op Op) {
	if s.observe != nil {
		s.observe(op, s.items.Len())
	}
}
