package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestTerminalHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

	ts := time.Date(2026, 3, 2, 9, 15, 30, 42000000, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "server started", 0)
	r.AddAttrs(slog.String("addr", "0.0.0.0:8000"))

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"09:15:30.042", "INF", "server started", "addr=", "0.0.0.0:8000"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("expected trailing newline, got: %q", output)
	}
}

func TestTerminalHandler_Levels(t *testing.T) {
	tests := []struct {
		level slog.Level
		label string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})

			r := slog.NewRecord(time.Now(), tt.level, "msg", 0)
			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.label) {
				t.Errorf("expected %s in output, got: %s", tt.label, buf.String())
			}
		})
	}
}

func TestTerminalHandler_Enabled(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestTerminalHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(h).With("component", "sync").WithGroup("qdrant")

	logger.Info("upsert", "points", 3)

	output := buf.String()
	if !strings.Contains(output, "component=") {
		t.Errorf("expected preformatted attr, got: %s", output)
	}
	if !strings.Contains(output, "qdrant.points=") {
		t.Errorf("expected group-prefixed key, got: %s", output)
	}

	// The original handler must be unaffected by derived ones.
	buf.Reset()
	slog.New(h).Info("plain", "k", "v")
	if strings.Contains(buf.String(), "component=") {
		t.Errorf("base handler leaked derived attrs: %s", buf.String())
	}
}

func TestTerminalHandler_QuotesStringsWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil)

	slog.New(h).Info("delete", "reason", "nothing found in search index")

	if !strings.Contains(buf.String(), `"nothing found in search index"`) {
		t.Errorf("expected quoted value, got: %s", buf.String())
	}
}
