package config

import "time"

const (
	envPort          = "PORT"
	envPollInterval  = "POLL_INTERVAL"
	envProvider      = "PROVIDER"
	envConfigFile    = "CONFIG_FILE"
	envDotEnvFile    = "ENV_FILE"
	envMarketBaseURL = "MARKET_BASE_URL"
	envMarketPath    = "MARKET_PATH"
	envMarketTimeout = "MARKET_HTTP_TIMEOUT"
	envFixtureSeed   = "FIXTURE_SEED"
	envFixtureVol    = "FIXTURE_VOLATILITY"
	envLogLevel      = "LOG_LEVEL"
	envLogFormat     = "LOG_FORMAT"
	envMetricsPort   = "METRICS_PORT"
	envMetricsOn     = "METRICS_ENABLED"
	envOtelEndpoint  = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService   = "OTEL_SERVICE_NAME"
	envOtelInsecure  = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "4000"
	// One refresh per second; the next cycle is timed from the end of the previous one.
	defaultPollInterval  = Duration(time.Second)
	defaultProvider      = ProviderFixture
	defaultDotEnvFile    = ".env"
	defaultMarketBaseURL = "http://localhost:3000"
	defaultMarketPath    = "/marketData"
	defaultFixtureSeed   = 1
	defaultFixtureVol    = 0.8
	defaultMetricsPort   = "9090"
	defaultServiceName   = "market-data-watch"
)

// Provider names accepted by PROVIDER.
const (
	ProviderFixture    = "fixture"
	ProviderMarketData = "marketdata"
)
