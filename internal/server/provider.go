package server

import (
	"log/slog"

	"github.com/preston-bernstein/market-data-watch/internal/config"
	"github.com/preston-bernstein/market-data-watch/internal/providers"
	"github.com/preston-bernstein/market-data-watch/internal/providers/fixture"
	"github.com/preston-bernstein/market-data-watch/internal/providers/marketdata"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.SnapshotProvider {
	switch cfg.Provider {
	case config.ProviderFixture, "":
		return fixture.New(cfg.Fixture.Seed, cfg.Fixture.Volatility)
	case config.ProviderMarketData:
		return marketdata.NewClient(marketdata.Config{
			BaseURL: cfg.MarketData.BaseURL,
			Path:    cfg.MarketData.Path,
			Timeout: cfg.MarketData.Timeout,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New(cfg.Fixture.Seed, cfg.Fixture.Volatility)
	}
}
