package harness_test

import (
	"context"
	"testing"

	"github.com/randomizedcoder/boundedbuffer/internal/harness"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkReport harness.Report

// benchRun measures whole sessions: producers, consumers, the collector and
// the monitor together. b.N scales the items per producer.
func benchRun(b *testing.B, v harness.Variant, capacity, producers, consumers int) {
	cfg := harness.Config{
		Capacity:         capacity,
		Producers:        producers,
		Consumers:        consumers,
		ItemsPerProducer: b.N,
		Variant:          v,
	}
	b.ReportAllocs()
	b.ResetTimer()

	r, err := harness.Run(context.Background(), cfg)
	if err != nil {
		b.Fatal(err)
	}
	b.StopTimer()
	if err := r.Verify(); err != nil {
		b.Fatal(err)
	}
	sinkReport = r
}

func BenchmarkRun_Cond_1P1C_Cap1(b *testing.B) {
	benchRun(b, harness.VariantCond, 1, 1, 1)
}

func BenchmarkRun_Cond_4P4C_Cap5(b *testing.B) {
	benchRun(b, harness.VariantCond, 5, 4, 4)
}

func BenchmarkRun_Cond_4P4C_Cap1024(b *testing.B) {
	benchRun(b, harness.VariantCond, 1024, 4, 4)
}

func BenchmarkRun_Semaphore_1P1C_Cap1(b *testing.B) {
	benchRun(b, harness.VariantSemaphore, 1, 1, 1)
}

func BenchmarkRun_Semaphore_4P4C_Cap5(b *testing.B) {
	benchRun(b, harness.VariantSemaphore, 5, 4, 4)
}

func BenchmarkRun_Semaphore_4P4C_Cap1024(b *testing.B) {
	benchRun(b, harness.VariantSemaphore, 1024, 4, 4)
}

var sinkDigest harness.Digest

func BenchmarkDigest_Add(b *testing.B) {
	var d harness.Digest
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		d.Add(harness.Item{Producer: i & 7, Seq: i})
	}
	sinkDigest = d
}
