package state

import "fmt"

// ValidationError represents a single validation issue.
type ValidationError struct {
	Field   string // e.g., "version", "installations.<id>.product"
	Message string
}

func (e ValidationError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult holds the result of state validation.
type ValidationResult struct {
	Errors   []ValidationError // fatal issues that should prevent loading
	Warnings []ValidationError // non-fatal issues logged as warnings
}

// IsValid returns true if there are no fatal validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

func (r *ValidationResult) warn(field, message string) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Message: message})
}

// validateVersion checks the state file format version.
func (r *ValidationResult) validateVersion(version string) {
	if version == "" {
		r.warn("version", "version is empty")
	} else if version != Version {
		r.warn("version", fmt.Sprintf("unknown version %q (expected %q)", version, Version))
	}
}

// ValidateDocument checks a loaded Document for internal consistency:
// every binding must point at an installation that actually exists, and
// every installation should carry at least one package digest.
func ValidateDocument(doc *Document) *ValidationResult {
	result := &ValidationResult{}

	result.validateVersion(doc.Version)

	for id, rec := range doc.Installations {
		if rec.Product == "" {
			result.warn(fmt.Sprintf("installations.%s.product", id), "product is empty")
		}
		if len(rec.PackageDigests) == 0 {
			result.warn(fmt.Sprintf("installations.%s.packageDigests", id), "no package digests recorded")
		}
	}

	for path, id := range doc.Bindings {
		if _, ok := doc.Installations[id]; !ok {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("bindings[%s]", path),
				Message: fmt.Sprintf("binding references unknown installation %q", id),
			})
		}
	}

	return result
}
