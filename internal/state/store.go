package state

import (
	"sync"
	"time"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
)

// PollState is what consumers observe: the latest records plus the error and in-flight flags.
type PollState struct {
	Records   []market.Record `json:"records"`
	Err       bool            `json:"error"`
	Loading   bool            `json:"loading"`
	Version   uint64          `json:"version"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// HasData reports whether any records are held.
func (s PollState) HasData() bool {
	return len(s.Records) > 0
}

// Store keeps the poll state behind a single-writer/multi-reader contract.
// Only the poller mutates it; readers get copies and can subscribe to changes.
type Store struct {
	mu    sync.RWMutex
	state PollState
	subs  map[uint64]chan PollState
	next  uint64
}

// NewStore constructs a Store in its initial state: no records, no error, not loading.
func NewStore() *Store {
	return &Store{
		state: PollState{Records: []market.Record{}},
		subs:  make(map[uint64]chan PollState),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() PollState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Records returns a copy of the current records, used as the previous snapshot by reconciliation.
func (s *Store) Records() []market.Record {
	return s.Snapshot().Records
}

// BeginCycle marks a fetch in flight. Records and the error flag are kept so consumers don't flicker.
func (s *Store) BeginCycle() {
	s.update(func(st *PollState) {
		st.Loading = true
	})
}

// CompleteCycle replaces the records and clears both flags.
func (s *Store) CompleteCycle(records []market.Record, at time.Time) {
	if records == nil {
		records = []market.Record{}
	}
	s.update(func(st *PollState) {
		st.Records = records
		st.Err = false
		st.Loading = false
		st.UpdatedAt = at
	})
}

// FailCycle sets the error flag and keeps whatever records are already held.
func (s *Store) FailCycle() {
	s.update(func(st *PollState) {
		st.Err = true
		st.Loading = false
	})
}

// Subscribe returns a channel that receives the current state immediately and then every change.
// Slow subscribers only see the most recent state. Call cancel to release the subscription.
func (s *Store) Subscribe() (<-chan PollState, func()) {
	ch := make(chan PollState, 1)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	ch <- s.state.clone()
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers returns the number of active subscriptions.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Store) update(mutate func(*PollState)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mutate(&s.state)
	s.state.Version++
	snap := s.state.clone()
	for _, ch := range s.subs {
		publish(ch, snap)
	}
}

// publish replaces any undelivered state with the latest one. Callers hold the write lock,
// so no other sender races on the channel.
func publish(ch chan PollState, st PollState) {
	select {
	case <-ch:
	default:
	}
	ch <- st
}

func (s PollState) clone() PollState {
	out := s
	out.Records = make([]market.Record, len(s.Records))
	copy(out.Records, s.Records)
	return out
}
