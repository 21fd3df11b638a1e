package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact_ScrubsBearerToken(t *testing.T) {
	t.Parallel()
	in := "sending request with Authorization: Bearer abcdef123456"
	out := Redact(in)
	assert.NotContains(t, out, "abcdef123456")
	assert.Contains(t, out, RedactedValue)
}

func TestRedact_ScrubsKeyValueCredentials(t *testing.T) {
	t.Parallel()
	in := `token=supersecretvalue password: "hunter22"`
	out := Redact(in)
	assert.NotContains(t, out, "supersecretvalue")
	assert.NotContains(t, out, "hunter22")
}

func TestRedact_LeavesUnrelatedTextAlone(t *testing.T) {
	t.Parallel()
	in := "installing rustc 1.82.0 for x86_64-unknown-linux-gnu"
	assert.Equal(t, in, Redact(in))
}

func TestRedactAttr_AlwaysRedactsSensitiveKeys(t *testing.T) {
	t.Parallel()
	assert.Equal(t, RedactedValue, RedactAttr("token", "anything-at-all"))
	assert.Equal(t, RedactedValue, RedactAttr("password", "short"))
}

func TestRedactAttr_ScansNonSensitiveKeysForSecretShapes(t *testing.T) {
	t.Parallel()
	out := RedactAttr("message", "token=abcd1234efgh")
	assert.NotContains(t, out, "abcd1234efgh")
}

func TestRedactAttr_PassesThroughOrdinaryValues(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "rustc", RedactAttr("package", "rustc"))
}
