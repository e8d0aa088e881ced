// Command prodcons runs a producer/consumer session over a bounded buffer
// and checks that every item put was taken exactly once.
//
// With -n 0 producers run until -duration elapses or the process is
// interrupted; consumers then drain the buffer.
//
// Usage:
//
//	go run ./cmd/prodcons -capacity 5 -producers 4 -consumers 4 -n 1000
//	go run ./cmd/prodcons -variant semaphore -n 0 -duration 2s -v
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/randomizedcoder/boundedbuffer/internal/cancel"
	"github.com/randomizedcoder/boundedbuffer/internal/harness"
	"github.com/randomizedcoder/boundedbuffer/internal/tick"
)

func main() {
	os.Exit(run())
}

func run() int {
	def := harness.DefaultConfig()
	capacity := flag.Int("capacity", def.Capacity, "buffer capacity")
	producers := flag.Int("producers", def.Producers, "number of producers")
	consumers := flag.Int("consumers", def.Consumers, "number of consumers")
	items := flag.Int("n", def.ItemsPerProducer, "items per producer (0 = until stopped)")
	consumerCap := flag.Int("consumer-cap", 0, "max items per consumer (0 = drain until closed)")
	variant := flag.String("variant", string(def.Variant), "buffer variant: cond or semaphore")
	duration := flag.Duration("duration", time.Second, "how long producers run when -n is 0")
	status := flag.Duration("status", def.StatusEvery, "minimum gap between status lines with -v")
	ticker := flag.String("ticker", "batch", "status ticker with -v: batch or std")
	verbose := flag.Bool("v", false, "log session and status lines to stderr")
	flag.Parse()

	cfg := harness.Config{
		Capacity:         *capacity,
		Producers:        *producers,
		Consumers:        *consumers,
		ItemsPerProducer: *items,
		ItemsPerConsumer: *consumerCap,
		Variant:          harness.Variant(*variant),
		StatusEvery:      *status,
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stopSignals()

	var opts []harness.Option
	if *verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, harness.WithLogger(logger))
		if *ticker == "std" {
			opts = append(opts, harness.WithTicker(tick.NewTicker(*status)))
		}
	}

	// An interrupt aborts a bounded run. An unbounded run treats it as the
	// stop signal instead, so consumers still drain what was produced.
	runCtx := ctx
	if cfg.Unbounded() {
		stop := cancel.NewContext(ctx)
		timer := time.AfterFunc(*duration, stop.Cancel)
		defer timer.Stop()
		opts = append(opts, harness.WithStop(stop))
		runCtx = context.Background()
	}

	fmt.Printf("Producer/consumer session (%s buffer, capacity %d)\n", cfg.BufferVariant(), cfg.Capacity)
	fmt.Println("─────────────────────────────────────────────────────────")
	if cfg.Unbounded() {
		fmt.Printf("  %d producers for %v, %d consumers\n", cfg.Producers, *duration, cfg.Consumers)
	} else {
		fmt.Printf("  %d producers x %d items, %d consumers\n", cfg.Producers, cfg.ItemsPerProducer, cfg.Consumers)
	}
	fmt.Println()

	r, runErr := harness.Run(runCtx, cfg, opts...)

	perOp := 0.0
	if r.Taken > 0 {
		perOp = float64(r.Elapsed.Nanoseconds()) / float64(r.Taken)
	}
	fmt.Println("Results:")
	fmt.Println("─────────────────────────────────────────────────────────")
	fmt.Printf("  Put: %d, Taken: %d\n", r.Put, r.Taken)
	fmt.Printf("  Count range: [%d, %d] of %d\n", r.MinCount, r.MaxCount, cfg.Capacity)
	fmt.Printf("  Duplicates: %d, Fabricated: %d, Bound violations: %d\n", r.Duplicates, r.Fabricated, r.Violations)
	fmt.Printf("  Digest put:   %s\n", r.PutDigest)
	fmt.Printf("  Digest taken: %s\n", r.TakeDigest)
	fmt.Printf("  Elapsed: %v (%.2f ns/item)\n", r.Elapsed, perOp)
	fmt.Println()

	if runErr != nil {
		fmt.Fprintln(os.Stderr, "run failed:", runErr)
		return 1
	}
	if err := r.Verify(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("All checks passed.")
	return 0
}
