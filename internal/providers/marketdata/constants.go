package marketdata

const (
	providerName   = "marketdata"
	defaultBaseURL = "http://localhost:3000"
	defaultPath    = "/marketData"
	maxErrorBody   = 512
)
