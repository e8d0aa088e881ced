// Package cancel provides stop signals for producer and consumer drivers.
//
// Two implementations of the Canceler interface are offered:
//   - ContextCanceler: backed by context.Context, so the same signal can be
//     handed to blocking buffer calls
//   - AtomicCanceler: a single atomic.Bool, cheap enough to poll on every
//     iteration of an unbounded producer loop
package cancel

// Canceler signals drivers to stop.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done reports whether Cancel has been called.
	Done() bool

	// Cancel raises the signal. Safe to call multiple times.
	Cancel()
}
