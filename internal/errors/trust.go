//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import "fmt"

// TrustError represents a failure to verify a signed envelope against the
// pinned keychain: no trusted signature, an expired or revoked key, a role
// mismatch, or a malformed envelope.
type TrustError struct {
	Base Error `json:"error"`

	// Role is the role the envelope claimed to be signed for.
	Role string `json:"role,omitempty"`

	// KeyID identifies the signing key involved.
	KeyID string `json:"keyId,omitempty"`

	// Digest is the content digest the envelope covers, if relevant.
	Digest string `json:"digest,omitempty"`
}

// NewNoTrustedSignatureError creates a TrustError for an envelope with zero
// signatures verifying under any key in the current keychain closure.
func NewNoTrustedSignatureError(role, digest string) *TrustError {
	return &TrustError{
		Base: Error{
			Category: CategoryTrust,
			Code:     CodeNoTrustedSignature,
			Message:  "no signature verifies against the trusted keychain",
			Hint:     "The artifact server may be compromised or the local root keys are stale.",
		},
		Role:   role,
		Digest: digest,
	}
}

// NewExpiredKeyError creates a TrustError for a key whose validity window
// does not cover the ingress time the envelope is verified at.
func NewExpiredKeyError(keyID string) *TrustError {
	return &TrustError{
		Base: Error{
			Category: CategoryTrust,
			Code:     CodeExpiredKey,
			Message:  fmt.Sprintf("signing key %s had expired at ingress time", keyID),
		},
		KeyID: keyID,
	}
}

// NewRoleMismatchError creates a TrustError for a signature made by a key
// whose role in the keychain does not authorize the document it signed.
func NewRoleMismatchError(keyID, wantRole, gotRole string) *TrustError {
	return &TrustError{
		Base: Error{
			Category: CategoryTrust,
			Code:     CodeRoleMismatch,
			Message:  fmt.Sprintf("key %s is not authorized for role %q (has %q)", keyID, wantRole, gotRole),
		},
		KeyID: keyID,
		Role:  wantRole,
	}
}

// NewMalformedEnvelopeError creates a TrustError for an envelope that could
// not be parsed or canonicalized.
func NewMalformedEnvelopeError(cause error) *TrustError {
	return &TrustError{
		Base: Error{
			Category: CategoryTrust,
			Code:     CodeMalformedEnvelope,
			Message:  "malformed signed envelope",
			Cause:    cause,
		},
	}
}

// NewRevokedArtifactError creates a TrustError for a digest present in the
// revocation ledger.
func NewRevokedArtifactError(digest string) *TrustError {
	return &TrustError{
		Base: Error{
			Category: CategoryTrust,
			Code:     CodeRevokedArtifact,
			Message:  fmt.Sprintf("artifact %s has been revoked", digest),
			Hint:     "Update your project manifest to a release that has not been revoked.",
		},
		Digest: digest,
	}
}

// NewStaleRevocationError creates a TrustError for a revocation ledger
// that has passed its expiry and could not be refreshed while online.
func NewStaleRevocationError(expiredAt string) *TrustError {
	return &TrustError{
		Base: Error{
			Category: CategoryTrust,
			Code:     CodeStaleRevocation,
			Message:  fmt.Sprintf("revocation ledger expired at %s and could not be refreshed", expiredAt),
			Hint:     "Check connectivity to the artifact server, or pass --offline to proceed against the stale cache.",
		},
	}
}

// Error implements the error interface.
func (e *TrustError) Error() string {
	return e.Base.Error()
}

// Unwrap returns the underlying error.
func (e *TrustError) Unwrap() error {
	return e.Base.Cause
}

// Is reports whether the target error matches this error by code.
func (e *TrustError) Is(target error) bool {
	t, ok := target.(*TrustError)
	if !ok {
		return false
	}
	return e.Base.Code == t.Base.Code
}
