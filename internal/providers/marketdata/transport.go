package marketdata

import (
	"net/http"
	"strings"
	"time"
)

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// resolveHTTPClient returns the provided client, or a new one with the given timeout.
// A zero timeout means the request may wait indefinitely; the poller simply delays its next cycle.
func resolveHTTPClient(client *http.Client, timeout time.Duration) httpDoer {
	if client != nil {
		return client
	}
	return &http.Client{Timeout: timeout}
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func normalizePath(raw string) string {
	if raw == "" {
		return defaultPath
	}
	if !strings.HasPrefix(raw, "/") {
		return "/" + raw
	}
	return raw
}
