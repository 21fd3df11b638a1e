package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// levelColor returns the fatih/color attribute set for a log level,
// mirroring the palette internal/errors/format.go already uses for CLI
// error output (red for failure, yellow for caution, plain otherwise).
func levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return color.New(color.FgRed, color.Bold)
	case level >= slog.LevelWarn:
		return color.New(color.FgYellow)
	case level >= slog.LevelInfo:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgHiBlack)
	}
}

func levelBadge(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// PrettyHandler is a colorized, single-line slog.Handler in the style
// fatih/color already renders CLI errors with: a colored level badge,
// timestamp, message, and trailing key=value attributes.
type PrettyHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   slog.HandlerOptions
	attrs  []slog.Attr
	groups []string
}

// NewPrettyHandler builds a PrettyHandler writing to w.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{mu: &sync.Mutex{}, w: w, opts: *opts}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.Level != nil {
		min = h.opts.Level.Level()
	}
	return level >= min
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	c := levelColor(r.Level)
	badge := c.Sprintf("%-5s", levelBadge(r.Level))

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", r.Time.Format(time.TimeOnly), badge, r.Message)

	prefix := strings.Join(h.groups, ".")
	for _, a := range h.attrs {
		writeAttr(&b, prefix, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	fmt.Fprintf(b, " %s=%s", key, RedactAttr(a.Key, a.Value.String()))
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// TreeHandler renders each record as an indented node, depth determined by
// how many slog groups are currently open. Intended for operations that
// group related log lines under Logger.WithGroup("stage") style nesting.
type TreeHandler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   slog.HandlerOptions
	attrs  []slog.Attr
	groups []string
}

// NewTreeHandler builds a TreeHandler writing to w.
func NewTreeHandler(w io.Writer, opts *slog.HandlerOptions) *TreeHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &TreeHandler{mu: &sync.Mutex{}, w: w, opts: *opts}
}

func (h *TreeHandler) Enabled(_ context.Context, level slog.Level) bool {
	min := slog.LevelInfo
	if h.opts.Level != nil {
		min = h.opts.Level.Level()
	}
	return level >= min
}

func (h *TreeHandler) Handle(_ context.Context, r slog.Record) error {
	indent := strings.Repeat("  ", len(h.groups))
	connector := "├─"
	if len(h.groups) == 0 {
		connector = "─"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s %s [%s]", indent, connector, r.Message, levelBadge(r.Level))

	for _, a := range h.attrs {
		writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, "", a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, b.String())
	return err
}

func (h *TreeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

func (h *TreeHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}
