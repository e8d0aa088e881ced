package harness

import "testing"

func TestCollector_DuplicatesAndFabrications(t *testing.T) {
	c, err := newCollector()
	if err != nil {
		t.Fatalf("newCollector: %v", err)
	}
	go c.run()

	c.publish(0, Item{Producer: 0, Seq: 0})
	c.publish(1, Item{Producer: 0, Seq: 1})
	c.publish(2, Item{Producer: 0, Seq: 1}) // duplicate
	c.publish(3, Item{Producer: 1, Seq: 0})
	c.publish(0, Item{Producer: 0, Seq: 5}) // beyond what producer 0 put
	c.publish(1, Item{Producer: 9, Seq: 0}) // no such producer

	close(c.done)
	<-c.finished

	if c.taken != 6 {
		t.Errorf("expected 6 taken, got %d", c.taken)
	}
	if c.duplicates != 1 {
		t.Errorf("expected 1 duplicate, got %d", c.duplicates)
	}
	if got := c.fabricated([]int{2, 1}); got != 2 {
		t.Errorf("expected 2 fabricated, got %d", got)
	}
}

func TestMonitor_TracksBounds(t *testing.T) {
	p := newMonitor(2, nil, nil)
	for _, n := range []int{1, 2, 1, 0, 3, -1} {
		p.observe(0, n)
	}
	if p.ops != 6 {
		t.Errorf("expected 6 ops, got %d", p.ops)
	}
	if p.min != -1 || p.max != 3 {
		t.Errorf("expected range [-1,3], got [%d,%d]", p.min, p.max)
	}
	if p.violations != 2 {
		t.Errorf("expected 2 violations, got %d", p.violations)
	}
}
