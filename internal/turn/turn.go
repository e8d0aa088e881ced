// Package turn runs a fixed set of parties strictly in round-robin order.
//
// Every party has its own condition on a shared lock. A party calling Do
// waits on its condition until the turn counter reaches its index, runs its
// function, advances the counter and signals only the next party.
package turn

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var (
	ErrInvalidParties = errors.New("turn: parties must be positive")
	ErrInvalidIndex   = errors.New("turn: index out of range")
	ErrCancelled      = errors.New("turn: cancelled")
)

// Sequencer hands out turns to parties 0..n-1 in order, wrapping around.
type Sequencer struct {
	mu    sync.Mutex
	conds []*sync.Cond
	turn  int
	round int
}

// New returns a Sequencer for parties parties, with party 0 first.
func New(parties int) (*Sequencer, error) {
	if parties < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidParties, parties)
	}
	s := &Sequencer{conds: make([]*sync.Cond, parties)}
	for i := range s.conds {
		s.conds[i] = sync.NewCond(&s.mu)
	}
	return s, nil
}

// Do waits until it is index's turn, then runs fn and passes the turn on.
// fn runs with the Sequencer locked and must not call back into it.
//
// If ctx is done before the turn arrives, Do returns an error wrapping
// ErrCancelled and ctx's error, and the turn is left where it was. A nil
// ctx never cancels.
func (s *Sequencer) Do(ctx context.Context, index int, fn func()) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if index < 0 || index >= len(s.conds) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidIndex, index, len(s.conds))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.turn != index {
		c := s.conds[index]
		stop := context.AfterFunc(ctx, func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			c.Broadcast()
		})
		defer stop()

		for s.turn != index {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("%w: %w", ErrCancelled, err)
			}
			c.Wait()
		}
	}

	if fn != nil {
		fn()
	}
	s.turn++
	if s.turn == len(s.conds) {
		s.turn = 0
		s.round++
	}
	s.conds[s.turn].Signal()
	return nil
}

// Turn returns the index of the party whose turn it is.
func (s *Sequencer) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.turn
}

// Round returns how many complete cycles through every party have run.
func (s *Sequencer) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// Parties returns the number of parties.
func (s *Sequencer) Parties() int {
	return len(s.conds)
}
