package harness

import (
	"fmt"
	"runtime"
	"time"

	ring "github.com/randomizedcoder/go-lock-free-ring"
)

// Consumers are the ring's producers, each writing under its own index; a
// single collector goroutine reads.
const (
	collectorCapacity = 8192
	collectorShards   = 8

	// After collectorSpin empty reads in a row the collector sleeps
	// instead of yielding.
	collectorSpin = 64
	collectorNap  = 50 * time.Microsecond
)

// mpsc is the part of the sharded ring the collector uses.
type mpsc interface {
	Write(producerID uint64, value any) bool
	TryRead() (any, bool)
}

// collector receives every taken item and checks it was taken only once.
type collector struct {
	ring mpsc

	done     chan struct{} // closed by Run once all consumers returned
	finished chan struct{} // closed by the collector after its final drain

	seen       map[Item]int
	digest     Digest
	taken      int64
	duplicates int
}

func newCollector() (*collector, error) {
	r, err := ring.NewShardedRing(collectorCapacity, collectorShards)
	if err != nil {
		return nil, fmt.Errorf("harness: collector ring: %w", err)
	}
	return &collector{
		ring:     r,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
		seen:     make(map[Item]int),
	}, nil
}

// publish hands item to the collector. A full shard is retried; the
// collector is always draining so this cannot wait forever.
func (c *collector) publish(consumer int, item Item) {
	for !c.ring.Write(uint64(consumer), item) {
		runtime.Gosched()
	}
}

func (c *collector) run() {
	defer close(c.finished)

	idle := 0
	for {
		if v, ok := c.ring.TryRead(); ok {
			c.record(v.(Item))
			idle = 0
			continue
		}

		select {
		case <-c.done:
			c.drain()
			return
		default:
		}

		idle++
		if idle < collectorSpin {
			runtime.Gosched()
		} else {
			time.Sleep(collectorNap)
		}
	}
}

// drain reads until every shard has come up empty in a row.
func (c *collector) drain() {
	for misses := 0; misses < collectorShards; {
		v, ok := c.ring.TryRead()
		if !ok {
			misses++
			continue
		}
		c.record(v.(Item))
		misses = 0
	}
}

func (c *collector) record(it Item) {
	c.taken++
	c.digest.Add(it)
	c.seen[it]++
	if c.seen[it] > 1 {
		c.duplicates++
	}
}

// fabricated counts seen items that no producer put. produced[p] is how
// many items producer p stored.
func (c *collector) fabricated(produced []int) int {
	n := 0
	for it := range c.seen {
		if it.Producer < 0 || it.Producer >= len(produced) || it.Seq < 0 || it.Seq >= produced[it.Producer] {
			n++
		}
	}
	return n
}
