package logging

import "io"

// RedactingWriter wraps an io.Writer, scrubbing secret-shaped spans from
// every write before it reaches the underlying sink. Used to wrap the
// stream a slog.Handler writes to, so redaction applies regardless of
// which handler (text, json, pretty, tree) is active.
type RedactingWriter struct {
	w io.Writer
}

// NewRedactingWriter wraps w.
func NewRedactingWriter(w io.Writer) *RedactingWriter {
	return &RedactingWriter{w: w}
}

// Write filters p through Redact before writing it, returning len(p) on
// success so callers never see a short write from the redaction itself.
func (rw *RedactingWriter) Write(p []byte) (int, error) {
	filtered := Redact(string(p))
	if _, err := rw.w.Write([]byte(filtered)); err != nil {
		return 0, err
	}
	return len(p), nil
}
