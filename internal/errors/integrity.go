//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "fmt"

// IntegrityError represents content that does not match its declared
// digest, an installation that failed its post-commit verification, or an
// archive entry that attempted to escape its extraction directory.
type IntegrityError struct {
	Base Error `json:"error"`

	// Path is the file or installation path involved.
	Path string `json:"path,omitempty"`

	// Expected is the expected digest.
	Expected string `json:"expected,omitempty"`

	// Got is the actual digest.
	Got string `json:"got,omitempty"`
}

// NewDigestMismatchError creates an IntegrityError for downloaded bytes
// whose digest does not match the catalog's declared value.
func NewDigestMismatchError(path, expected, got string) *IntegrityError {
	return &IntegrityError{
		Base: Error{
			Category: CategoryIntegrity,
			Code:     CodeDigestMismatch,
			Message:  "digest mismatch",
			Hint:     "The download may have been corrupted or tampered with in transit. Clear the cache entry and retry.",
		},
		Path:     path,
		Expected: expected,
		Got:      got,
	}
}

// NewCorruptedInstallationError creates an IntegrityError for an
// installation whose on-disk files no longer match its recorded manifest.
func NewCorruptedInstallationError(path string, cause error) *IntegrityError {
	return &IntegrityError{
		Base: Error{
			Category: CategoryIntegrity,
			Code:     CodeCorruptedInstallation,
			Message:  "installation failed verification",
			Cause:    cause,
			Hint:     "Run 'criticalup remove' followed by 'criticalup install' to recreate it.",
		},
		Path: path,
	}
}

// NewPathTraversalError creates an IntegrityError for an archive entry whose
// name resolves outside the extraction directory.
func NewPathTraversalError(entry string) *IntegrityError {
	return &IntegrityError{
		Base: Error{
			Category: CategoryIntegrity,
			Code:     CodePathTraversal,
			Message:  fmt.Sprintf("archive entry escapes extraction directory: %s", entry),
		},
		Path: entry,
	}
}

// Error implements the error interface.
func (e *IntegrityError) Error() string {
	return e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *IntegrityError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *IntegrityError) Is(target error) bool {
	t, ok := target.(*IntegrityError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
