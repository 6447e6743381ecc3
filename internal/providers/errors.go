package providers

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable is returned when no upstream is configured.
var ErrProviderUnavailable = errors.New("provider unavailable")

// StatusError captures a non-success response from upstream.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// DecodeError captures a response body that could not be parsed or failed validation.
type DecodeError struct {
	Provider string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode snapshot: %v", e.Provider, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// AsStatusError attempts to unwrap an error into a StatusError.
func AsStatusError(err error) (*StatusError, bool) {
	var sErr *StatusError
	if errors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}

// Kind names the failure cause for logs and metrics. The poll state does not distinguish causes.
func Kind(err error) string {
	var dErr *DecodeError
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrProviderUnavailable):
		return "unavailable"
	case errors.As(err, &dErr):
		return "decode"
	default:
		if _, ok := AsStatusError(err); ok {
			return "status"
		}
		return "transport"
	}
}
