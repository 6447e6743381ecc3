package server

import (
	"log/slog"

	"github.com/preston-bernstein/market-data-watch/internal/config"
	"github.com/preston-bernstein/market-data-watch/internal/metrics"
	"github.com/preston-bernstein/market-data-watch/internal/providers"
)

// providerFactory assembles the configured provider with the shared instrumentation wrapper.
// No retry layer: each cycle issues exactly one request.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.SnapshotProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

func (f providerFactory) wrap(cfg config.Config, base providers.SnapshotProvider) providers.SnapshotProvider {
	return providers.NewInstrumentedProvider(base, normalizeProviderName(cfg.Provider, base), f.logger, f.metrics)
}

// NewProvider builds the configured, instrumented snapshot provider for callers that run
// their own poller.
func NewProvider(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) providers.SnapshotProvider {
	return newProviderFactory(logger, recorder).build(cfg)
}
