//nolint:revive // Package name intentionally shadows stdlib errors for convenience.
package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "without cause",
			err: &Error{
				Category: CategoryTrust,
				Code:     CodeNoTrustedSignature,
				Message:  "no signature verifies against the trusted keychain",
			},
			expected: "no signature verifies against the trusted keychain",
		},
		{
			name: "with cause",
			err: &Error{
				Category: CategoryConfiguration,
				Code:     CodeInvalidManifest,
				Message:  "invalid project manifest",
				Cause:    errors.New("invalid syntax"),
			},
			expected: "invalid project manifest: invalid syntax",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("underlying error")
	err := &Error{
		Category: CategoryIntegrity,
		Code:     CodeDigestMismatch,
		Message:  "digest mismatch",
		Cause:    cause,
	}

	assert.Equal(t, cause, err.Unwrap())
}

func TestError_WithMethods(t *testing.T) {
	t.Parallel()

	err := New(CategoryConfiguration, "test error")

	_ = err.WithHint("try this").
		WithExample("example: foo").
		WithDetail("key", "value")

	assert.Equal(t, "try this", err.Hint)
	assert.Equal(t, "example: foo", err.Example)
	assert.Equal(t, "value", err.Details["key"])
}

func TestConfigurationError(t *testing.T) {
	t.Parallel()

	t.Run("invalid manifest", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("syntax error")
		err := NewInvalidManifestError("criticalup.toml", cause)

		assert.Equal(t, CodeInvalidManifest, err.Base.Code)
		assert.Equal(t, cause, err.Unwrap())
		assert.Equal(t, "criticalup.toml", err.Path)
	})

	t.Run("unsupported version", func(t *testing.T) {
		t.Parallel()

		err := NewUnsupportedVersionError("criticalup.toml", 2, 1)

		assert.Equal(t, CodeUnsupportedVersion, err.Base.Code)
		assert.Equal(t, "2", err.Got)
		assert.Equal(t, "1", err.Expected)
		assert.NotEmpty(t, err.Base.Hint)
	})

	t.Run("multiple products", func(t *testing.T) {
		t.Parallel()

		err := NewMultipleProductsError("criticalup.toml", []string{"ferrocene-1", "ferrocene-2"})

		assert.Equal(t, CodeMultipleProducts, err.Base.Code)
		assert.Contains(t, err.Got, "ferrocene-1")
	})

	t.Run("unknown host triple", func(t *testing.T) {
		t.Parallel()

		err := NewUnknownHostTripleError("ferrocene", "sparc-unknown-linux-gnu")

		assert.Equal(t, CodeUnknownHostTriple, err.Base.Code)
		assert.Equal(t, "sparc-unknown-linux-gnu", err.Got)
	})
}

func TestAuthenticationError(t *testing.T) {
	t.Parallel()

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()

		err := NewMissingTokenError("https://releases.example.com")

		assert.Equal(t, CodeMissingToken, err.Base.Code)
		assert.NotEmpty(t, err.Base.Hint)
	})

	t.Run("unauthorized", func(t *testing.T) {
		t.Parallel()

		err := NewUnauthorizedError("https://releases.example.com")

		assert.Equal(t, CodeUnauthorized, err.Base.Code)
	})
}

func TestTrustError(t *testing.T) {
	t.Parallel()

	t.Run("no trusted signature", func(t *testing.T) {
		t.Parallel()

		err := NewNoTrustedSignatureError("releases", "sha256:abc")

		assert.Equal(t, CodeNoTrustedSignature, err.Base.Code)
		assert.Equal(t, "sha256:abc", err.Digest)
	})

	t.Run("role mismatch", func(t *testing.T) {
		t.Parallel()

		err := NewRoleMismatchError("key-1", "releases", "packages")

		assert.Equal(t, CodeRoleMismatch, err.Base.Code)
		assert.Equal(t, "key-1", err.KeyID)
		assert.Contains(t, err.Error(), "releases")
	})

	t.Run("revoked artifact", func(t *testing.T) {
		t.Parallel()

		err := NewRevokedArtifactError("sha256:deadbeef")

		assert.Equal(t, CodeRevokedArtifact, err.Base.Code)
		assert.Contains(t, err.Error(), "sha256:deadbeef")
	})
}

func TestTransportError(t *testing.T) {
	t.Parallel()

	t.Run("network failed", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("connection refused")
		err := NewNetworkError("https://example.com", 3, cause)

		assert.Equal(t, CodeNetworkFailed, err.Base.Code)
		assert.Equal(t, "https://example.com", err.URL)
		assert.Equal(t, cause, err.Unwrap())
	})

	t.Run("HTTP error", func(t *testing.T) {
		t.Parallel()

		err := NewHTTPError("https://example.com/file.tar.xz", 404)

		assert.Equal(t, CodeHTTPError, err.Base.Code)
		assert.Equal(t, 404, err.StatusCode)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("offline cache miss", func(t *testing.T) {
		t.Parallel()

		err := NewOfflineCacheMissError("https://example.com/manifest.json")

		assert.Equal(t, CodeOfflineCacheMiss, err.Base.Code)
	})
}

func TestIntegrityError(t *testing.T) {
	t.Parallel()

	err := NewDigestMismatchError("rustc.tar.xz", "sha256:abc", "sha256:def")

	assert.Equal(t, CodeDigestMismatch, err.Base.Code)
	assert.Equal(t, "sha256:abc", err.Expected)
	assert.Equal(t, "sha256:def", err.Got)
	assert.NotEmpty(t, err.Base.Hint)
}

func TestStateError(t *testing.T) {
	t.Parallel()

	t.Run("busy", func(t *testing.T) {
		t.Parallel()

		err := NewBusyError("/tmp/state.lock", 12345)

		assert.Equal(t, CodeBusy, err.Base.Code)
		assert.Equal(t, "/tmp/state.lock", err.LockFile)
		assert.Equal(t, 12345, err.LockPID)
		assert.Contains(t, err.Base.Hint, "/tmp/state.lock")
	})

	t.Run("missing binding", func(t *testing.T) {
		t.Parallel()

		err := NewMissingBindingError("criticalup.toml")

		assert.Equal(t, CodeMissingBinding, err.Base.Code)
	})

	t.Run("orphaned installation", func(t *testing.T) {
		t.Parallel()

		err := NewOrphanedInstallationError("abc123")

		assert.Equal(t, CodeOrphanedInstallation, err.Base.Code)
		assert.Contains(t, err.Error(), "abc123")
	})
}

func TestDispatchError(t *testing.T) {
	t.Parallel()

	t.Run("no project manifest", func(t *testing.T) {
		t.Parallel()

		err := NewNoProjectManifestError("rustc", "/home/user/project")

		assert.Equal(t, CodeNoProjectManifest, err.Base.Code)
		assert.Equal(t, "rustc", err.Invoked)
	})

	t.Run("binary not found", func(t *testing.T) {
		t.Parallel()

		err := NewBinaryNotFoundError("cargo-nonexistent")

		assert.Equal(t, CodeBinaryNotFound, err.Base.Code)
		assert.Contains(t, err.Error(), "cargo-nonexistent")
	})
}

func TestErrorsIs(t *testing.T) {
	t.Parallel()

	t.Run("same code matches", func(t *testing.T) {
		t.Parallel()

		err1 := NewRevokedArtifactError("sha256:aaa")
		err2 := NewRevokedArtifactError("sha256:bbb")

		assert.ErrorIs(t, err1, err2)
	})

	t.Run("different code does not match", func(t *testing.T) {
		t.Parallel()

		trustErr := NewRevokedArtifactError("sha256:aaa")
		stateErr := NewBusyError("/tmp/x.lock", 1)

		assert.NotErrorIs(t, trustErr, stateErr)
	})

	t.Run("different types do not match", func(t *testing.T) {
		t.Parallel()

		trustErr := NewRevokedArtifactError("sha256:aaa")
		configErr := NewInvalidManifestError("criticalup.toml", nil)

		assert.NotErrorIs(t, trustErr, configErr)
	})

	t.Run("base error Is", func(t *testing.T) {
		t.Parallel()

		err1 := &Error{Code: CodeBusy, Message: "state store is locked"}
		err2 := &Error{Code: CodeBusy, Message: "different message"}

		assert.ErrorIs(t, err1, err2)
	})
}

func TestErrorsAs(t *testing.T) {
	t.Parallel()

	t.Run("TrustError", func(t *testing.T) {
		t.Parallel()

		var err error = NewRevokedArtifactError("sha256:aaa")

		var trustErr *TrustError
		require.ErrorAs(t, err, &trustErr)
		assert.Equal(t, "sha256:aaa", trustErr.Digest)
	})

	t.Run("ConfigurationError", func(t *testing.T) {
		t.Parallel()

		var err error = NewInvalidManifestError("criticalup.toml", nil)

		var configErr *ConfigurationError
		require.ErrorAs(t, err, &configErr)
		assert.Equal(t, CodeInvalidManifest, configErr.Base.Code)
	})

	t.Run("wrapped error", func(t *testing.T) {
		t.Parallel()

		original := NewBinaryNotFoundError("cargo")
		wrapped := Wrap(CategoryDispatch, "operation failed", original)

		var dispatchErr *DispatchError
		require.ErrorAs(t, wrapped, &dispatchErr)
		assert.Equal(t, "cargo", dispatchErr.Invoked)
	})
}
