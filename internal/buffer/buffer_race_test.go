package buffer_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/randomizedcoder/boundedbuffer/internal/buffer"
)

// TestStress_4P4C runs 4 producers and 4 consumers, 1000 items each, over a
// 5-slot buffer.
// Run with: go test -race ./internal/buffer
func TestStress_4P4C(t *testing.T) {
	const (
		capacity  = 5
		producers = 4
		consumers = 4
		perWorker = 1000
	)

	for _, name := range []string{"Bounded", "Semaphore"} {
		t.Run(name, func(t *testing.T) {
			var violations atomic.Int64
			obs := buffer.WithObserver(func(_ buffer.Op, count int) {
				if count < 0 || count > capacity {
					violations.Add(1)
				}
			})

			var b buffer.Buffer[int]
			var err error
			if name == "Bounded" {
				b, err = buffer.New[int](capacity, obs)
			} else {
				b, err = buffer.NewSemaphore[int](capacity, obs)
			}
			if err != nil {
				t.Fatal(err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()

			var wg sync.WaitGroup
			taken := make([][]int, consumers)

			for p := 0; p < producers; p++ {
				wg.Add(1)
				go func(p int) {
					defer wg.Done()
					for i := 0; i < perWorker; i++ {
						if err := b.Put(ctx, p*perWorker+i); err != nil {
							t.Errorf("producer %d: Put: %v", p, err)
							return
						}
					}
				}(p)
			}
			for c := 0; c < consumers; c++ {
				wg.Add(1)
				go func(c int) {
					defer wg.Done()
					for i := 0; i < perWorker; i++ {
						v, err := b.Take(ctx)
						if err != nil {
							t.Errorf("consumer %d: Take: %v", c, err)
							return
						}
						taken[c] = append(taken[c], v)
					}
				}(c)
			}

			done := make(chan struct{})
			go func() {
				wg.Wait()
				close(done)
			}()
			select {
			case <-done:
			case <-ctx.Done():
				t.Fatal("deadlock: workers did not finish")
			}

			if n := violations.Load(); n != 0 {
				t.Errorf("count left [0,%d] %d times", capacity, n)
			}

			seen := make(map[int]bool, producers*perWorker)
			total := 0
			for _, vs := range taken {
				for _, v := range vs {
					total++
					if v < 0 || v >= producers*perWorker {
						t.Errorf("fabricated item %d", v)
					}
					if seen[v] {
						t.Errorf("item %d taken twice", v)
					}
					seen[v] = true
				}
			}
			if total != producers*perWorker {
				t.Errorf("expected %d takes, got %d", producers*perWorker, total)
			}
			if b.Len() != 0 {
				t.Errorf("expected empty buffer, Len() = %d", b.Len())
			}
		})
	}
}

// TestStress_CancelChurn cancels a stream of short-lived waiters while real
// traffic flows, checking that no item is lost or duplicated by the aborted
// waits.
func TestStress_CancelChurn(t *testing.T) {
	const items = 2000

	for _, tc := range newBuffers(t, 2) {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.buf
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
			defer cancel()

			stop := make(chan struct{})
			var churn sync.WaitGroup
			churn.Add(1)
			go func() {
				defer churn.Done()
				for {
					select {
					case <-stop:
						return
					default:
					}
					// Waiters that mostly time out before getting anything.
					short, cancelShort := context.WithTimeout(ctx, 50*time.Microsecond)
					if v, err := b.Take(short); err == nil {
						// Hand it back; the consumer below still must see it.
						if err := b.Put(ctx, v); err != nil {
							t.Errorf("re-Put: %v", err)
						}
					}
					cancelShort()
				}
			}()

			go func() {
				for i := 0; i < items; i++ {
					if err := b.Put(ctx, i); err != nil {
						t.Errorf("Put(%d): %v", i, err)
						return
					}
				}
			}()

			seen := make(map[int]bool, items)
			for len(seen) < items {
				v, err := b.Take(ctx)
				if err != nil {
					t.Fatalf("Take after %d items: %v", len(seen), err)
				}
				if seen[v] {
					t.Fatalf("item %d taken twice", v)
				}
				seen[v] = true
			}
			close(stop)
			churn.Wait()

			if b.Len() != 0 {
				t.Errorf("expected empty buffer, Len() = %d", b.Len())
			}
		})
	}
}
