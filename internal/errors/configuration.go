//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "fmt"

// ConfigurationError represents a malformed or unsupported project manifest,
// or a package/host-triple lookup that the manifest cannot satisfy.
type ConfigurationError struct {
	Base Error `json:"error"`

	// Path is the manifest file path.
	Path string `json:"path,omitempty"`

	// Field is the manifest field that failed validation.
	Field string `json:"field,omitempty"`

	// Expected describes what was expected.
	Expected string `json:"expected,omitempty"`

	// Got describes what was received.
	Got string `json:"got,omitempty"`
}

// NewInvalidManifestError creates a ConfigurationError for a manifest that
// failed to parse or failed schema validation.
func NewInvalidManifestError(path string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Base: Error{
			Category: CategoryConfiguration,
			Code:     CodeInvalidManifest,
			Message:  "invalid project manifest",
			Cause:    cause,
		},
		Path: path,
	}
}

// NewUnsupportedVersionError creates a ConfigurationError for a manifest
// whose manifest-version field the core does not know how to interpret.
func NewUnsupportedVersionError(path string, got, expected int) *ConfigurationError {
	return &ConfigurationError{
		Base: Error{
			Category: CategoryConfiguration,
			Code:     CodeUnsupportedVersion,
			Message:  fmt.Sprintf("unsupported manifest version %d", got),
			Hint:     fmt.Sprintf("This build of criticalup only understands manifest-version %d.", expected),
		},
		Path:     path,
		Expected: fmt.Sprintf("%d", expected),
		Got:      fmt.Sprintf("%d", got),
	}
}

// NewMultipleProductsError creates a ConfigurationError for a manifest that
// declares more than the single product the current binary supports.
func NewMultipleProductsError(path string, products []string) *ConfigurationError {
	return &ConfigurationError{
		Base: Error{
			Category: CategoryConfiguration,
			Code:     CodeMultipleProducts,
			Message:  "manifest declares multiple products",
			Hint:     "Split the additional products into their own project manifest.",
		},
		Path: path,
		Got:  fmt.Sprintf("%v", products),
	}
}

// NewUnknownHostTripleError creates a ConfigurationError for a package entry
// whose ${host-triple} placeholder has no match in the release manifest.
func NewUnknownHostTripleError(product, triple string) *ConfigurationError {
	return &ConfigurationError{
		Base: Error{
			Category: CategoryConfiguration,
			Code:     CodeUnknownHostTriple,
			Message:  fmt.Sprintf("no package published for host triple %q", triple),
		},
		Field: "packages",
		Got:   triple,
		Path:  product,
	}
}

// NewPackageNotInReleaseError creates a ConfigurationError for a package name
// the manifest references that the resolved release does not contain.
func NewPackageNotInReleaseError(release, pkg string) *ConfigurationError {
	return &ConfigurationError{
		Base: Error{
			Category: CategoryConfiguration,
			Code:     CodePackageNotInRelease,
			Message:  fmt.Sprintf("package %q not present in release %q", pkg, release),
		},
		Field: "packages",
		Got:   pkg,
		Path:  release,
	}
}

// WithField sets the manifest field name.
func (e *ConfigurationError) WithField(field string) *ConfigurationError {
	e.Field = field
	return e
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *ConfigurationError) Is(target error) bool {
	t, ok := target.(*ConfigurationError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
