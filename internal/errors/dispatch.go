//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "fmt"

// DispatchError represents a proxy invocation that could not find a project
// manifest, a toolchain binding, or the binary it was asked to run.
type DispatchError struct {
	Base Error `json:"error"`

	// Invoked is the argv0 name the proxy was invoked as.
	Invoked string `json:"invoked,omitempty"`

	// SearchRoot is the directory discovery started from.
	SearchRoot string `json:"searchRoot,omitempty"`
}

// NewNoProjectManifestError creates a DispatchError for a proxy invocation
// with no criticalup.toml found in any parent directory.
func NewNoProjectManifestError(invoked, searchRoot string) *DispatchError {
	return &DispatchError{
		Base: Error{
			Category: CategoryDispatch,
			Code:     CodeNoProjectManifest,
			Message:  "no criticalup.toml found in this directory or any parent",
			Hint:     "Run 'criticalup init' to create one.",
		},
		Invoked:    invoked,
		SearchRoot: searchRoot,
	}
}

// NewToolchainNotInstalledError creates a DispatchError for a manifest whose
// bound installation is not present in the state store.
func NewToolchainNotInstalledError(invoked string) *DispatchError {
	return &DispatchError{
		Base: Error{
			Category: CategoryDispatch,
			Code:     CodeToolchainNotInstalled,
			Message:  "the toolchain for this project has not been installed",
			Hint:     "Run 'criticalup install'.",
		},
		Invoked: invoked,
	}
}

// NewBinaryNotFoundError creates a DispatchError for an invoked name with no
// matching binary inside the resolved installation.
func NewBinaryNotFoundError(invoked string) *DispatchError {
	return &DispatchError{
		Base: Error{
			Category: CategoryDispatch,
			Code:     CodeBinaryNotFound,
			Message:  fmt.Sprintf("%q is not provided by the installed toolchain", invoked),
		},
		Invoked: invoked,
	}
}

// Error implements the error interface.
func (e *DispatchError) Error() string {
	return e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *DispatchError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *DispatchError) Is(target error) bool {
	t, ok := target.(*DispatchError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
