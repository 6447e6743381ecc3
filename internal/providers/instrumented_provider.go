package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
	"github.com/preston-bernstein/market-data-watch/internal/logging"
	"github.com/preston-bernstein/market-data-watch/internal/metrics"
)

// instrumentedProvider records latency and outcome of every upstream call.
// It makes exactly one call per fetch; failures are left to the poller's fixed cadence
// and reported by the poller, so per-call outcomes log at debug.
type instrumentedProvider struct {
	inner   SnapshotProvider
	name    string
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewInstrumentedProvider wraps inner with logging and metrics under the given provider name.
func NewInstrumentedProvider(inner SnapshotProvider, name string, logger *slog.Logger, recorder *metrics.Recorder) SnapshotProvider {
	return &instrumentedProvider{
		inner:   inner,
		name:    name,
		logger:  logger,
		metrics: recorder,
	}
}

func (p *instrumentedProvider) FetchSnapshot(ctx context.Context) ([]market.Instrument, error) {
	if p.inner == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "provider unavailable")
		return nil, ErrProviderUnavailable
	}

	start := time.Now()
	snapshot, err := p.inner.FetchSnapshot(ctx)
	elapsed := time.Since(start)
	p.metrics.RecordProviderAttempt(p.name, elapsed, err)

	logger := logging.FromContext(ctx, p.logger)
	if err != nil {
		logWithProvider(ctx, logger, slog.LevelDebug, p.name, "provider fetch failed",
			slog.String("kind", Kind(err)),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.Any(logging.FieldError, err),
		)
		return nil, err
	}
	logWithProvider(ctx, logger, slog.LevelDebug, p.name, "provider fetch ok",
		slog.Int(logging.FieldCount, len(snapshot)),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return snapshot, nil
}

// Unwrap exposes the wrapped provider so callers can release its resources.
func (p *instrumentedProvider) Unwrap() SnapshotProvider {
	return p.inner
}
