// Package tick provides periodic triggers used to throttle status output.
//
// A busy buffer changes its count millions of times per second; logging each
// change would dominate the run. Drivers instead ask a Ticker on every
// change and only emit a status line when it fires.
//
// Two implementations of the Ticker interface are offered:
//   - StdTicker: wraps time.Ticker, safe for concurrent use
//   - BatchTicker: reads the clock only every N calls; NOT safe for
//     concurrent use, intended for callers already serialized by a lock
package tick

import "time"

// Ticker signals when a time interval has elapsed.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset starts a new interval from now.
	Reset()

	// Stop releases any resources held by the ticker.
	// After Stop, the ticker should not be used.
	Stop()
}

// DefaultInterval is the status interval used when none is configured.
const DefaultInterval = 100 * time.Millisecond

// Never is a Ticker that never fires, for runs without status output.
type Never struct{}

func (Never) Tick() bool { return false }
func (Never) Reset()     {}
func (Never) Stop()      {}
