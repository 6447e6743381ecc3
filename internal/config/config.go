package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Config holds runtime configuration for the server and the terminal watcher.
type Config struct {
	Port         string           `yaml:"port"`
	PollInterval Duration         `yaml:"pollInterval"`
	Provider     string           `yaml:"provider"`
	MarketData   MarketDataConfig `yaml:"marketData"`
	Fixture      FixtureConfig    `yaml:"fixture"`
	Metrics      MetricsConfig    `yaml:"metrics"`
	Log          LogConfig        `yaml:"log"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:         defaultPort,
		PollInterval: defaultPollInterval,
		Provider:     defaultProvider,
		MarketData: MarketDataConfig{
			BaseURL: defaultMarketBaseURL,
			Path:    defaultMarketPath,
		},
		Fixture: FixtureConfig{
			Seed:       defaultFixtureSeed,
			Volatility: defaultFixtureVol,
		},
		Metrics: defaultMetrics(),
	}
}

// Load builds the configuration from defaults, an optional YAML file named by CONFIG_FILE, and
// environment variables (highest precedence). A .env file is read first when present.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	base := Defaults()
	if path := envOrDefault(envConfigFile, ""); path != "" {
		fromFile, err := loadFile(path, base)
		if err != nil {
			return Config{}, err
		}
		base = fromFile
	}

	cfg := Config{
		Port:         envOrDefault(envPort, base.Port),
		PollInterval: durationEnvOrDefault(envPollInterval, base.PollInterval),
		Provider:     strings.ToLower(strings.TrimSpace(envOrDefault(envProvider, base.Provider))),
		MarketData:   loadMarketData(base.MarketData),
		Fixture:      loadFixture(base.Fixture),
		Metrics:      loadMetrics(base.Metrics),
		Log:          loadLog(base.Log),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be positive, got %s", c.PollInterval))
	}
	switch c.Provider {
	case ProviderFixture:
	case ProviderMarketData:
		if err := validateBaseURL(c.MarketData.BaseURL); err != nil {
			errs = append(errs, err)
		}
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	}
	if c.MarketData.Timeout < 0 {
		errs = append(errs, fmt.Errorf("market http timeout must not be negative"))
	}
	return errors.Join(errs...)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid market base url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid market base url %q: want http(s)://host", raw)
	}
	return nil
}
