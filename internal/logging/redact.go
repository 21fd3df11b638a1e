// Package logging adapts the core's log/slog usage to the CLI's
// requirements: redacting credentials before they reach a sink, and two
// additional handler styles (pretty, tree) alongside the stdlib text/json
// handlers.
package logging

import (
	"regexp"
)

// RedactedValue replaces any matched sensitive span in a log line.
const RedactedValue = "[REDACTED]"

// sensitivePatterns catches the shapes of secret CriticalUp itself ever
// handles: bearer tokens, the Authorization header, and generic
// key=value/key: value credential assignments. Scoped to this project's
// own credential surface rather than a general-purpose secret scanner.
var sensitivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9._-]{8,}`),
	regexp.MustCompile(`(?i)authorization\s*[:=]\s*["']?[a-zA-Z0-9._-]{8,}["']?`),
	regexp.MustCompile(`(?i)(token|password|secret|credential)\s*[:=]\s*["']?[^\s"']{4,}["']?`),
}

// Redact replaces every sensitive-looking span in s with RedactedValue.
func Redact(s string) string {
	result := s
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedValue)
	}
	return result
}

// sensitiveKeys are structured-attribute keys whose value is always
// redacted outright, regardless of its shape.
var sensitiveKeys = map[string]struct{}{
	"token":         {},
	"password":      {},
	"secret":        {},
	"credential":    {},
	"authorization": {},
}

// RedactAttr returns value redacted if key names a known-sensitive
// attribute, otherwise value with any embedded secret-shaped spans
// scrubbed.
func RedactAttr(key, value string) string {
	if _, ok := sensitiveKeys[key]; ok {
		return RedactedValue
	}
	return Redact(value)
}
