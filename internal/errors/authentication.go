//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

// AuthenticationError represents a missing or rejected bearer credential
// when talking to the artifact download server.
type AuthenticationError struct {
	Base Error `json:"error"`

	// Endpoint is the URL that rejected or required authentication.
	Endpoint string `json:"endpoint,omitempty"`
}

// NewMissingTokenError creates an AuthenticationError for a request that
// requires a token the caller never configured.
func NewMissingTokenError(endpoint string) *AuthenticationError {
	return &AuthenticationError{
		Base: Error{
			Category: CategoryAuthentication,
			Code:     CodeMissingToken,
			Message:  "no authentication token configured",
			Hint:     "Run 'criticalup auth set <token>' or export CRITICALUP_TOKEN.",
		},
		Endpoint: endpoint,
	}
}

// NewUnauthorizedError creates an AuthenticationError for a server rejection
// (HTTP 401/403) of the configured token.
func NewUnauthorizedError(endpoint string) *AuthenticationError {
	return &AuthenticationError{
		Base: Error{
			Category: CategoryAuthentication,
			Code:     CodeUnauthorized,
			Message:  "authentication rejected by server",
			Hint:     "Check that your token is current and has access to this release.",
		},
		Endpoint: endpoint,
	}
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *AuthenticationError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *AuthenticationError) Is(target error) bool {
	t, ok := target.(*AuthenticationError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
