package harness

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Report is the outcome of one session.
type Report struct {
	Config Config

	Put   int64 // items stored by producers
	Taken int64 // items received by the collector
	Ops   int64 // count changes seen by the monitor

	MinCount   int
	MaxCount   int
	Violations int // observations outside [0, capacity]

	Duplicates int // takes of an item already taken
	Fabricated int // taken items no producer put

	PutDigest  Digest
	TakeDigest Digest

	Elapsed time.Duration
}

// Conserved reports whether exactly the items put were taken.
func (r Report) Conserved() bool {
	return r.Put == r.Taken && r.PutDigest == r.TakeDigest
}

// Verify returns nil if every check passed, otherwise an error listing each
// failure, all wrapping ErrCheckFailed.
func (r Report) Verify() error {
	var errs []error
	if r.Violations > 0 {
		errs = append(errs, fmt.Errorf("%w: count left [0,%d] %d times", ErrCheckFailed, r.Config.Capacity, r.Violations))
	}
	if r.Duplicates > 0 {
		errs = append(errs, fmt.Errorf("%w: %d items taken twice", ErrCheckFailed, r.Duplicates))
	}
	if r.Fabricated > 0 {
		errs = append(errs, fmt.Errorf("%w: %d items taken that were never put", ErrCheckFailed, r.Fabricated))
	}
	if r.Put != r.Taken {
		errs = append(errs, fmt.Errorf("%w: put %d items, took %d", ErrCheckFailed, r.Put, r.Taken))
	} else if r.PutDigest != r.TakeDigest {
		errs = append(errs, fmt.Errorf("%w: digest mismatch %s != %s", ErrCheckFailed, r.PutDigest, r.TakeDigest))
	}
	return errors.Join(errs...)
}

// LogValue lets a Report be logged as a group.
func (r Report) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("put", r.Put),
		slog.Int64("taken", r.Taken),
		slog.Int("min_count", r.MinCount),
		slog.Int("max_count", r.MaxCount),
		slog.Int("violations", r.Violations),
		slog.Int("duplicates", r.Duplicates),
		slog.Int("fabricated", r.Fabricated),
		slog.Duration("elapsed", r.Elapsed),
	)
}
