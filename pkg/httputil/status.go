package httputil

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by CheckStatus.
var (
	// ErrNotFound is returned for 404 responses.
	ErrNotFound = errors.New("not found")

	// ErrServer is returned (wrapped in a RetryableError) for 5xx and 429
	// responses.
	ErrServer = errors.New("server error")

	// ErrStatus is returned for any other non-2xx response.
	ErrStatus = errors.New("unexpected status")
)

// CheckStatus classifies an HTTP status code. 2xx returns nil; 429 and 5xx
// return a retryable ErrServer; 404 returns ErrNotFound; everything else
// returns ErrStatus.
func CheckStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests || code >= 500:
		return Retryable(fmt.Errorf("%w: %d %s", ErrServer, code, http.StatusText(code)))
	default:
		return fmt.Errorf("%w: %d %s", ErrStatus, code, http.StatusText(code))
	}
}
