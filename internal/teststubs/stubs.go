package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
)

// Result is one scripted provider response.
type Result struct {
	Snapshot []market.Instrument
	Err      error
}

// StubProvider is a test double for providers.SnapshotProvider.
// It replays Results in order, repeating the last one once exhausted;
// with no Results it returns Snapshot and Err.
type StubProvider struct {
	mu       sync.Mutex
	Snapshot []market.Instrument
	Err      error
	Results  []Result
	Calls    atomic.Int32
	Notify   chan struct{}
	// Block, when set, holds every fetch until it is closed or receives a value.
	Block chan struct{}
	// Started receives a value when a fetch begins, if set.
	Started chan struct{}
}

// FetchSnapshot returns the next scripted result while tracking calls.
func (s *StubProvider) FetchSnapshot(ctx context.Context) ([]market.Instrument, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	n := int(s.Calls.Add(1))
	if s.Started != nil {
		s.Started <- struct{}{}
	}
	if s.Block != nil {
		<-s.Block
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Results) == 0 {
		return s.Snapshot, s.Err
	}
	idx := n - 1
	if idx >= len(s.Results) {
		idx = len(s.Results) - 1
	}
	r := s.Results[idx]
	return r.Snapshot, r.Err
}

// SetErr changes the error returned by subsequent unscripted fetches.
func (s *StubProvider) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Err = err
}

// Quote builds an instrument with only its current price set.
func Quote(id market.InstrumentID, current float64) market.Instrument {
	return market.Instrument{ID: id, Current: market.Price(current)}
}
