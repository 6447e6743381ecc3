package poller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
	"github.com/preston-bernstein/market-data-watch/internal/logging"
	"github.com/preston-bernstein/market-data-watch/internal/metrics"
	"github.com/preston-bernstein/market-data-watch/internal/providers"
	"github.com/preston-bernstein/market-data-watch/internal/state"
)

const (
	defaultInterval = time.Second
	readyFailures   = 3
)

// timer is the subset of *time.Timer the loop needs; swapped in tests.
type timer interface {
	C() <-chan time.Time
	Stop() bool
}

type realTimer struct{ t *time.Timer }

func (r realTimer) C() <-chan time.Time { return r.t.C }
func (r realTimer) Stop() bool          { return r.t.Stop() }

func newRealTimer(d time.Duration) timer {
	return realTimer{t: time.NewTimer(d)}
}

// Poller fetches a snapshot, reconciles it against the previous one and publishes the result,
// then waits a fixed interval measured from the end of the cycle before starting the next.
// At most one cycle is in flight at any time.
type Poller struct {
	provider providers.SnapshotProvider
	store    *state.Store
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time
	newTimer func(time.Duration) timer

	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	Cycles              int
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailures
}

// New constructs a Poller writing into store. A non-positive interval falls back to one second.
func New(provider providers.SnapshotProvider, store *state.Store, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	if store == nil {
		store = state.NewStore()
	}
	return &Poller{
		provider: provider,
		store:    store,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		newTimer: newRealTimer,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start runs the first cycle immediately and keeps cycling until ctx is cancelled or Stop is called.
// Calling Start more than once has no effect.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	go p.run(ctx)
}

// Stop releases the pending timer and waits for the loop to exit, bounded by ctx.
// A cycle already in flight is not aborted; its result is discarded.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
	})

	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.exited)
	logging.Info(p.logger, "poller started", slog.String(logging.FieldInterval, p.interval.String()))

	for {
		if p.halted(ctx) {
			break
		}
		p.fetchOnce(ctx)

		// Arm the next cycle only after this one's state update has landed.
		t := p.newTimer(p.interval)
		select {
		case <-ctx.Done():
			t.Stop()
		case <-p.done:
			t.Stop()
		case <-t.C():
			continue
		}
		break
	}
	logging.Info(p.logger, "poller stopped")
}

func (p *Poller) halted(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	case <-p.done:
		return true
	default:
		return false
	}
}

// fetchOnce runs a single cycle. The request itself is detached from ctx cancellation so that
// shutdown never aborts an in-flight fetch; it only prevents the result from being published.
func (p *Poller) fetchOnce(ctx context.Context) {
	start := p.now()
	cycleID := uuid.NewString()
	logger := p.cycleLogger(cycleID)

	p.recordAttempt(start)
	p.store.BeginCycle()

	snapshot, err := p.fetch(logging.WithLogger(context.WithoutCancel(ctx), logger))
	elapsed := p.now().Sub(start)
	p.metrics.RecordPollerCycle(elapsed, err)

	if p.halted(ctx) {
		logging.Info(logger, "poller discarded result after stop")
		return
	}

	if err != nil {
		p.store.FailCycle()
		failures := p.recordFailure(err)
		logging.Error(logger, "poller fetch failed", err,
			slog.String("kind", providers.Kind(err)),
			slog.Int(logging.FieldFailures, failures),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
		return
	}

	records := market.Reconcile(p.store.Records(), snapshot)
	p.store.CompleteCycle(records, p.now())
	p.recordSuccess(start)
	if logger != nil {
		logger.Debug("poller refreshed market data",
			slog.Int(logging.FieldCount, len(records)),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
	}
}

// fetch converts provider panics into cycle failures so the loop keeps running.
func (p *Poller) fetch(ctx context.Context) (snapshot []market.Instrument, err error) {
	if p.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	defer func() {
		if r := recover(); r != nil {
			snapshot, err = nil, fmt.Errorf("provider panic: %v", r)
		}
	}()
	return p.provider.FetchSnapshot(ctx)
}

func (p *Poller) cycleLogger(cycleID string) *slog.Logger {
	if p.logger == nil {
		return nil
	}
	return p.logger.With(slog.String(logging.FieldCycleID, cycleID))
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.Cycles++
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error) int {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	return p.status.ConsecutiveFailures
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Store exposes the state the poller publishes into.
func (p *Poller) Store() *state.Store {
	return p.store
}

// Provider exposes the underlying provider (primarily for cleanup in callers).
func (p *Poller) Provider() providers.SnapshotProvider {
	return p.provider
}
