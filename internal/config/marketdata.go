package config

import "time"

// MarketDataConfig controls how we talk to the remote market data endpoint.
type MarketDataConfig struct {
	BaseURL string        `yaml:"baseURL"`
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

// FixtureConfig tunes the in-process random-walk source.
type FixtureConfig struct {
	Seed       int64   `yaml:"seed"`
	Volatility float64 `yaml:"volatility"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func loadMarketData(base MarketDataConfig) MarketDataConfig {
	return MarketDataConfig{
		BaseURL: envOrDefault(envMarketBaseURL, base.BaseURL),
		Path:    envOrDefault(envMarketPath, base.Path),
		Timeout: nonNegativeDurationEnvOrDefault(envMarketTimeout, base.Timeout),
	}
}

func loadFixture(base FixtureConfig) FixtureConfig {
	return FixtureConfig{
		Seed:       int64EnvOrDefault(envFixtureSeed, base.Seed),
		Volatility: floatEnvOrDefault(envFixtureVol, base.Volatility),
	}
}

func loadLog(base LogConfig) LogConfig {
	return LogConfig{
		Level:  envOrDefault(envLogLevel, base.Level),
		Format: envOrDefault(envLogFormat, base.Format),
	}
}
