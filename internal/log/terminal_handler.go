package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// terminalHandler formats log records as coloured terminal output:
//
//	15:04:05.000 INF server started port=8000
//
// Attributes attached via WithAttrs are rendered once and replayed on
// every record; WithGroup extends the dotted key prefix.
type terminalHandler struct {
	writer io.Writer
	level  slog.Leveler
	prefix string
	attrs  []byte
	mu     *sync.Mutex
}

func newTerminalHandler(w io.Writer, opts *slog.HandlerOptions) *terminalHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &terminalHandler{
		writer: w,
		level:  level,
		mu:     &sync.Mutex{},
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *terminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats a record and writes it.
func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer
	buf.Grow(256 + len(h.attrs))

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	fmt.Fprintf(&buf, "%s%s%s ", ansiDim, ts.Format("15:04:05.000"), ansiReset)

	color, label := levelStyle(r.Level)
	fmt.Fprintf(&buf, "%s%s%s ", color, label, ansiReset)
	fmt.Fprintf(&buf, "%s%s%s", ansiBold, r.Message, ansiReset)

	buf.Write(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&buf, a, h.prefix)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

func (h *terminalHandler) clone() *terminalHandler {
	c := *h
	c.attrs = h.attrs[:len(h.attrs):len(h.attrs)]
	return &c
}

// WithAttrs renders attrs immediately under the current group prefix.
func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	var buf bytes.Buffer
	for _, a := range attrs {
		appendAttr(&buf, a, c.prefix)
	}
	c.attrs = append(c.attrs, buf.Bytes()...)
	return c
}

// WithGroup extends the key prefix for subsequent attributes.
func (h *terminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := h.clone()
	c.prefix += name + "."
	return c
}

func levelStyle(level slog.Level) (string, string) {
	switch {
	case level < slog.LevelInfo:
		return ansiCyan, "DBG"
	case level < slog.LevelWarn:
		return ansiGreen, "INF"
	case level < slog.LevelError:
		return ansiYellow, "WRN"
	default:
		return ansiRed, "ERR"
	}
}

func appendAttr(buf *bytes.Buffer, a slog.Attr, prefix string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(buf, ga, inner)
		}
		return
	}

	fmt.Fprintf(buf, " %s%s%s=%s%s", ansiDim, prefix, a.Key, ansiReset, formatAttrValue(a.Value))
}

func formatAttrValue(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindString && strings.ContainsAny(s, " \t\n\"\\") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
