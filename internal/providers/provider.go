package providers

import (
	"context"

	"github.com/preston-bernstein/market-data-watch/internal/domain/market"
)

// SnapshotProvider fetches one market snapshot from upstream.
// Implementations return an error for any outcome other than a decoded, valid snapshot.
type SnapshotProvider interface {
	FetchSnapshot(ctx context.Context) ([]market.Instrument, error)
}

// SnapshotProviderFunc adapts a function to SnapshotProvider.
type SnapshotProviderFunc func(ctx context.Context) ([]market.Instrument, error)

func (f SnapshotProviderFunc) FetchSnapshot(ctx context.Context) ([]market.Instrument, error) {
	return f(ctx)
}
