//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "fmt"

// TransportError represents a failure to fetch bytes from the artifact
// server after retries, or a cache miss while operating offline.
type TransportError struct {
	Base Error `json:"error"`

	// URL is the request URL that failed.
	URL string `json:"url,omitempty"`

	// StatusCode is the HTTP status code, if the server responded at all.
	StatusCode int `json:"statusCode,omitempty"`

	// Attempts is how many retry attempts were made before giving up.
	Attempts int `json:"attempts,omitempty"`
}

// NewNetworkError creates a TransportError for a request that never got a
// response after exhausting retries.
func NewNetworkError(url string, attempts int, cause error) *TransportError {
	return &TransportError{
		Base: Error{
			Category: CategoryTransport,
			Code:     CodeNetworkFailed,
			Message:  "network request failed after retries",
			Cause:    cause,
		},
		URL:      url,
		Attempts: attempts,
	}
}

// NewHTTPError creates a TransportError for a server response outside the
// 2xx/304 range.
func NewHTTPError(url string, statusCode int) *TransportError {
	return &TransportError{
		Base: Error{
			Category: CategoryTransport,
			Code:     CodeHTTPError,
			Message:  fmt.Sprintf("HTTP %d", statusCode),
		},
		URL:        url,
		StatusCode: statusCode,
	}
}

// NewOfflineCacheMissError creates a TransportError for offline mode hitting
// a cache that has no entry for the requested resource.
func NewOfflineCacheMissError(url string) *TransportError {
	return &TransportError{
		Base: Error{
			Category: CategoryTransport,
			Code:     CodeOfflineCacheMiss,
			Message:  "resource not present in local cache and offline mode is active",
			Hint:     "Retry without --offline, or pre-populate the cache while online.",
		},
		URL: url,
	}
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *TransportError) Is(target error) bool {
	t, ok := target.(*TransportError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
