package harness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/boundedbuffer/internal/buffer"
	"github.com/randomizedcoder/boundedbuffer/internal/cancel"
	"github.com/randomizedcoder/boundedbuffer/internal/tick"
)

// statusBatch is how many buffer operations pass between clock reads when
// deciding whether a status line is due.
const statusBatch = 64

// session is the state shared by one Run's goroutines.
type session struct {
	cfg  Config
	buf  buffer.Buffer[Item]
	col  *collector
	stop cancel.Canceler

	// Indexed by producer; each slot is written only by its producer.
	produced   []int
	putDigests []Digest
}

// Run executes one producer/consumer session and reports what happened.
//
// Producers put their items and return; once all have returned the buffer
// is closed, and consumers drain it until they hit their cap or find it
// closed and empty. If ctx is cancelled, or any worker fails, every blocked
// worker is cancelled and Run returns the first error together with the
// partial report.
func Run(ctx context.Context, cfg Config, opts ...Option) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if cfg.Unbounded() && o.stop == nil {
		return Report{}, ErrNoStop
	}

	ticker := o.ticker
	if ticker == nil && o.logger != nil {
		interval := cfg.StatusEvery
		if interval == 0 {
			interval = tick.DefaultInterval
		}
		ticker = tick.NewBatch(interval, statusBatch)
	}
	if ticker != nil {
		defer ticker.Stop()
	}
	mon := newMonitor(cfg.Capacity, o.logger, ticker)

	buf, err := newBuffer(cfg, buffer.WithObserver(mon.observe))
	if err != nil {
		return Report{}, err
	}
	col, err := newCollector()
	if err != nil {
		return Report{}, err
	}
	s := &session{
		cfg:        cfg,
		buf:        buf,
		col:        col,
		stop:       o.stop,
		produced:   make([]int, cfg.Producers),
		putDigests: make([]Digest, cfg.Producers),
	}

	if o.logger != nil {
		o.logger.Info("session started",
			slog.String("variant", string(cfg.BufferVariant())),
			slog.Int("capacity", cfg.Capacity),
			slog.Int("producers", cfg.Producers),
			slog.Int("consumers", cfg.Consumers),
			slog.Int("items_per_producer", cfg.ItemsPerProducer))
	}

	go col.run()
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)

	var producers sync.WaitGroup
	for i := 0; i < cfg.Producers; i++ {
		producers.Add(1)
		g.Go(func() error {
			defer producers.Done()
			return s.produce(gctx, i)
		})
	}
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		producers.Wait()
		buf.Close()
	}()

	for i := 0; i < cfg.Consumers; i++ {
		g.Go(func() error {
			return s.consume(gctx, i)
		})
	}

	runErr := g.Wait()
	<-closed
	close(col.done)
	<-col.finished

	r := s.report(mon)
	r.Elapsed = time.Since(start)

	if o.logger != nil {
		if runErr != nil {
			o.logger.Error("session failed", slog.Any("report", r), slog.Any("error", runErr))
		} else {
			o.logger.Info("session finished", slog.Any("report", r))
		}
	}
	return r, runErr
}

func newBuffer(cfg Config, opts ...buffer.Option) (buffer.Buffer[Item], error) {
	if cfg.BufferVariant() == VariantSemaphore {
		return buffer.NewSemaphore[Item](cfg.Capacity, opts...)
	}
	return buffer.New[Item](cfg.Capacity, opts...)
}

func (s *session) produce(ctx context.Context, id int) error {
	for seq := 0; s.cfg.Unbounded() || seq < s.cfg.ItemsPerProducer; seq++ {
		if s.stop != nil && s.stop.Done() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("producer %d: %w", id, err)
		}
		item := Item{Producer: id, Seq: seq}
		if err := s.buf.Put(ctx, item); err != nil {
			return fmt.Errorf("producer %d: %w", id, err)
		}
		s.produced[id] = seq + 1
		s.putDigests[id].Add(item)
	}
	return nil
}

func (s *session) consume(ctx context.Context, id int) error {
	for n := 0; s.cfg.ItemsPerConsumer == 0 || n < s.cfg.ItemsPerConsumer; n++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("consumer %d: %w", id, err)
		}
		item, err := s.buf.Take(ctx)
		if errors.Is(err, buffer.ErrClosed) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("consumer %d: %w", id, err)
		}
		s.col.publish(id, item)
	}
	return nil
}

func (s *session) report(mon *monitor) Report {
	r := Report{
		Config:     s.cfg,
		Taken:      s.col.taken,
		Ops:        mon.ops,
		MinCount:   mon.min,
		MaxCount:   mon.max,
		Violations: mon.violations,
		Duplicates: s.col.duplicates,
		Fabricated: s.col.fabricated(s.produced),
		TakeDigest: s.col.digest,
	}
	for i, n := range s.produced {
		r.Put += int64(n)
		r.PutDigest.Merge(s.putDigests[i])
	}
	return r
}
