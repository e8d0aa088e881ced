// Package harness drives producer/consumer sessions against a buffer and
// checks the results.
//
// A session owns exactly one buffer, shared by reference between its
// producer and consumer goroutines; nothing is kept at package level. While
// it runs, an Observer on the buffer checks 0 <= count <= capacity after
// every operation. Consumers forward every item they take to a collector
// over a lock-free MPSC ring, and the collector looks for items taken twice
// or never put. Both sides fold their items into an order-independent SHA3
// digest so conservation can be checked without comparing sequences.
package harness

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/randomizedcoder/boundedbuffer/internal/cancel"
	"github.com/randomizedcoder/boundedbuffer/internal/tick"
)

var (
	// ErrInvalidConfig is wrapped by every Config.Validate failure.
	ErrInvalidConfig = errors.New("harness: invalid config")

	// ErrNoStop is returned by Run for an unbounded session without WithStop.
	ErrNoStop = errors.New("harness: unbounded run needs a stop signal")

	// ErrCheckFailed is wrapped by every Report.Verify failure.
	ErrCheckFailed = errors.New("harness: check failed")
)

// Variant selects the buffer implementation.
type Variant string

const (
	VariantCond      Variant = "cond"
	VariantSemaphore Variant = "semaphore"
)

// Item is the value passed through the buffer. (Producer, Seq) is unique
// per session, which lets the collector spot duplicates and fabrications.
type Item struct {
	Producer int
	Seq      int
}

// Config describes one session.
type Config struct {
	Capacity  int
	Producers int
	Consumers int

	// ItemsPerProducer is how many items each producer puts. Zero means
	// produce until the stop signal fires.
	ItemsPerProducer int

	// ItemsPerConsumer caps how many items each consumer takes. Zero means
	// take until the buffer is closed and drained.
	ItemsPerConsumer int

	Variant Variant

	// StatusEvery is the minimum gap between status lines. Zero uses
	// tick.DefaultInterval.
	StatusEvery time.Duration
}

// DefaultConfig is 4 producers and 4 consumers moving 1000 items each
// through a 5-slot buffer.
func DefaultConfig() Config {
	return Config{
		Capacity:         5,
		Producers:        4,
		Consumers:        4,
		ItemsPerProducer: 1000,
		ItemsPerConsumer: 1000,
		Variant:          VariantCond,
		StatusEvery:      tick.DefaultInterval,
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity %d must be positive", ErrInvalidConfig, c.Capacity)
	case c.Producers <= 0:
		return fmt.Errorf("%w: producers %d must be positive", ErrInvalidConfig, c.Producers)
	case c.Consumers <= 0:
		return fmt.Errorf("%w: consumers %d must be positive", ErrInvalidConfig, c.Consumers)
	case c.ItemsPerProducer < 0 || c.ItemsPerConsumer < 0:
		return fmt.Errorf("%w: item counts must not be negative", ErrInvalidConfig)
	case c.StatusEvery < 0:
		return fmt.Errorf("%w: status interval %v must not be negative", ErrInvalidConfig, c.StatusEvery)
	}

	switch c.Variant {
	case VariantCond, VariantSemaphore, "":
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, c.Variant)
	}

	if c.ItemsPerConsumer > 0 {
		if c.ItemsPerProducer == 0 {
			return fmt.Errorf("%w: an unbounded run cannot cap consumers", ErrInvalidConfig)
		}
		// Otherwise producers would block forever once every consumer
		// has reached its cap.
		if c.Consumers*c.ItemsPerConsumer < c.Producers*c.ItemsPerProducer {
			return fmt.Errorf("%w: consumers take at most %d of %d items",
				ErrInvalidConfig, c.Consumers*c.ItemsPerConsumer, c.Producers*c.ItemsPerProducer)
		}
	}
	return nil
}

// BufferVariant returns the variant Run will build, VariantCond when unset.
func (c Config) BufferVariant() Variant {
	if c.Variant == "" {
		return VariantCond
	}
	return c.Variant
}

// Unbounded reports whether producers run until stopped.
func (c Config) Unbounded() bool {
	return c.ItemsPerProducer == 0
}

// Option configures Run.
type Option func(*options)

type options struct {
	logger *slog.Logger
	stop   cancel.Canceler
	ticker tick.Ticker
}

// WithLogger sends session and status lines to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithStop makes producers stop before their next Put once c is done.
// Required for unbounded sessions.
func WithStop(c cancel.Canceler) Option {
	return func(o *options) {
		o.stop = c
	}
}

// WithTicker overrides the ticker that throttles status lines. The ticker
// is only called from the buffer's Observer, so it need not be safe for
// concurrent use.
func WithTicker(t tick.Ticker) Option {
	return func(o *options) {
		o.ticker = t
	}
}
