package cancel

import "context"

// ContextCanceler is a Canceler backed by a cancellable context.
//
// Unlike AtomicCanceler it can interrupt a blocked Put or Take: pass
// Context() to the buffer call and Cancel() aborts the wait.
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler derived from parent. The signal is
// also raised when parent is cancelled.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done reports whether the context has been cancelled.
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel cancels the context.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the underlying context for blocking calls.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}

// Err returns the context's error, nil until the signal is raised.
func (c *ContextCanceler) Err() error {
	return c.ctx.Err()
}
