package cancel

import "sync/atomic"

// AtomicCanceler is a Canceler backed by an atomic.Bool.
//
// Done is a single atomic load, so a producer can check it before every Put
// without measurable cost. It cannot wake a goroutine that is already
// blocked; pair it with a context or buffer Close for that.
type AtomicCanceler struct {
	done atomic.Bool
}

// NewAtomic creates an AtomicCanceler.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// Done reports whether Cancel has been called.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel raises the signal.
//
// Safe to call multiple times; subsequent calls are no-ops.
func (a *AtomicCanceler) Cancel() {
	a.done.Store(true)
}

// Reset lowers the signal so the canceler can drive another session.
// Not safe to call concurrently with Done() or Cancel().
func (a *AtomicCanceler) Reset() {
	a.done.Store(false)
}
