package ai

import "errors"

// Backend failures are reduced to these categories before leaving the ai
// packages. Callers match with errors.Is and surface one user-visible message
// per category; the raw backend error stays in the wrap chain for logging.
var (
	// ErrConfiguration means a required credential or endpoint is missing.
	ErrConfiguration = errors.New("ai backend is not configured")
	// ErrRateLimited means the backend asked us to slow down. Retryable.
	ErrRateLimited = errors.New("ai backend rate limited")
	// ErrQuotaExceeded means a hard service limit was hit. Not retryable.
	ErrQuotaExceeded = errors.New("ai backend quota exceeded")
	// ErrTransport covers generic network or backend failures. Retryable.
	ErrTransport = errors.New("ai backend unavailable")
)

// Retryable reports whether the caller may reasonably retry the failed call.
func Retryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTransport)
}
