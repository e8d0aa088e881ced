package turn_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/randomizedcoder/boundedbuffer/internal/turn"
)

func TestNew_InvalidParties(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := turn.New(n); !errors.Is(err, turn.ErrInvalidParties) {
			t.Errorf("New(%d): expected ErrInvalidParties, got %v", n, err)
		}
	}
}

func TestDo_InvalidIndex(t *testing.T) {
	s, _ := turn.New(3)
	for _, i := range []int{-1, 3} {
		if err := s.Do(context.Background(), i, nil); !errors.Is(err, turn.ErrInvalidIndex) {
			t.Errorf("Do(%d): expected ErrInvalidIndex, got %v", i, err)
		}
	}
}

// Three parties started in any order print A, B, C repeatedly.
func TestDo_Alternates(t *testing.T) {
	const loops = 10
	names := []string{"A", "B", "C"}

	s, err := turn.New(len(names))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var out []string // appended under the Sequencer's lock
	var wg sync.WaitGroup
	for i := len(names) - 1; i >= 0; i-- {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range loops {
				if err := s.Do(context.Background(), i, func() { out = append(out, names[i]) }); err != nil {
					t.Errorf("Do(%d): %v", i, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	got := strings.Join(out, "")
	want := strings.Repeat("ABC", loops)
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
	if s.Round() != loops {
		t.Errorf("expected %d rounds, got %d", loops, s.Round())
	}
	if s.Turn() != 0 {
		t.Errorf("expected turn back at 0, got %d", s.Turn())
	}
}

func TestDo_SingleParty(t *testing.T) {
	s, _ := turn.New(1)
	n := 0
	for range 5 {
		if err := s.Do(context.Background(), 0, func() { n++ }); err != nil {
			t.Fatalf("Do: %v", err)
		}
	}
	if n != 5 || s.Round() != 5 {
		t.Errorf("expected 5 calls and rounds, got %d and %d", n, s.Round())
	}
}

// A party waiting for its turn can be cancelled, and the turn is unaffected.
func TestDo_Cancel(t *testing.T) {
	s, _ := turn.New(2)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- s.Do(ctx, 1, func() { t.Error("fn ran without the turn") })
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, turn.ErrCancelled) || !errors.Is(err, context.Canceled) {
			t.Errorf("expected ErrCancelled wrapping context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Do did not return after cancel")
	}

	if s.Turn() != 0 {
		t.Errorf("expected turn 0 after cancel, got %d", s.Turn())
	}
	ran := false
	if err := s.Do(context.Background(), 0, func() { ran = true }); err != nil || !ran {
		t.Fatalf("party 0 after cancel: ran=%v err=%v", ran, err)
	}
	if err := s.Do(context.Background(), 1, nil); err != nil {
		t.Fatalf("party 1 after cancel: %v", err)
	}
}

// The party whose turn it is runs even with a done context.
func TestDo_OwnTurnIgnoresDoneContext(t *testing.T) {
	s, _ := turn.New(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Do(ctx, 0, nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := s.Do(ctx, 0, nil); !errors.Is(err, turn.ErrCancelled) {
		t.Errorf("expected ErrCancelled, got %v", err)
	}
}

// A nil context waits like context.Background.
func TestDo_NilContext(t *testing.T) {
	s, _ := turn.New(2)
	var ctx context.Context

	done := make(chan error, 1)
	go func() { done <- s.Do(ctx, 1, nil) }()

	if err := s.Do(ctx, 0, nil); err != nil {
		t.Fatalf("Do(0): %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Do(1): %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Do(1) with nil context did not get its turn")
	}
	if s.Round() != 1 {
		t.Errorf("expected 1 round, got %d", s.Round())
	}
}
