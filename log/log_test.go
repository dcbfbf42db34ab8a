package log

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// record decodes a single JSON log line.
func record(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON record %q: %v", buf.String(), err)
	}

	return m
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		emit  func(Logger, string)
		want  bool
	}{
		{"trace hidden at debug", LevelDebug, func(l Logger, m string) { l.Trace(m) }, false},
		{"trace shown at trace", LevelTrace, func(l Logger, m string) { l.TraceContext(t.Context(), m) }, true},
		{"debug shown at debug", LevelDebug, func(l Logger, m string) { l.Debug(m) }, true},
		{"info hidden at warn", LevelWarn, func(l Logger, m string) { l.InfoContext(t.Context(), m) }, false},
		{"warn shown at warn", LevelWarn, func(l Logger, m string) { l.Warn(m) }, true},
		{"error shown at error", LevelError, func(l Logger, m string) { l.ErrorContext(t.Context(), m) }, true},
		{"debug hidden at error", LevelError, func(l Logger, m string) { l.DebugContext(t.Context(), m) }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.emit(Make(&buf, WithLevel(tt.level), WithPretty(false)), "message")

			if got := strings.Contains(buf.String(), "message"); got != tt.want {
				t.Errorf("expected written=%v, got output %q", tt.want, buf.String())
			}
		})
	}
}

func TestLogger_StandardHandlers(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithLevel(LevelTrace),
		WithPretty(false),
		WithTimeLayout("none"),
	)

	logger.Trace("parse start", slog.Int("source_length", 12))

	m := record(t, &buf)

	if m["level"] != "TRACE" || m["msg"] != "parse start" || m["source_length"] != 12.0 {
		t.Errorf("unexpected record %v", m)
	}

	if _, ok := m["time"]; ok {
		t.Error("expected no time field")
	}

	buf.Reset()

	logger.Wrap(WithFormat(FormatText)).Info("done", slog.String("value", "3"))

	if got := buf.String(); got != "level=INFO msg=done value=3\n" {
		t.Errorf("unexpected text record %q", got)
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCaller(true), WithPretty(false))
	logger.Info("where")

	m := record(t, &buf)

	src, _ := m["source"].(map[string]any)
	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("expected caller in log_test.go, got %v", m["source"])
	}
}

func TestLogger_WithAndWrap(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithPretty(false), WithLevel(LevelWarn))
	tagged := base.With(slog.String("component", "repl"))

	tagged.Warn("tagged")

	if m := record(t, &buf); m["component"] != "repl" {
		t.Errorf("expected component attribute, got %v", m)
	}

	buf.Reset()
	base.Warn("untagged")

	if m := record(t, &buf); m["component"] != nil {
		t.Errorf("expected base logger to be unchanged, got %v", m)
	}

	wrapped := tagged.Wrap(WithLevel(LevelDebug))
	if wrapped.Level() != LevelDebug || tagged.Level() != LevelWarn {
		t.Errorf("unexpected levels %v/%v", wrapped.Level(), tagged.Level())
	}

	if wrapped.Output() != &buf || wrapped.Format() != FormatJSON {
		t.Error("expected wrapped logger to keep output and format")
	}

	if same := base.With(); same.Logger != base.Logger {
		t.Error("expected With without attributes to return the same logger")
	}
}

func TestLogger_Zero(t *testing.T) {
	var l Logger

	l.Error("ignored")
	l.With(slog.String("k", "v")).Info("ignored")

	if l.Tracing(t.Context()) {
		t.Error("expected zero logger not to trace")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat || l.Output() != io.Discard {
		t.Error("unexpected zero logger configuration")
	}

	if w := l.Wrap(WithLevel(LevelTrace)); !w.Tracing(t.Context()) {
		t.Error("expected wrapped zero logger to be usable")
	}
}

func TestLogger_Tracing(t *testing.T) {
	if Make(io.Discard, WithLevel(LevelDebug)).Tracing(t.Context()) {
		t.Error("expected tracing disabled at debug")
	}

	if !Make(io.Discard, WithLevel(LevelTrace)).Tracing(t.Context()) {
		t.Error("expected tracing enabled at trace")
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.buf.Write(p)
}

func TestLogger_Concurrent(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var out syncBuffer

		logger := Make(&out, WithPretty(pretty), WithFormat(FormatText), WithTimeLayout("none"))

		var wg sync.WaitGroup

		for i := range 16 {
			wg.Go(func() {
				logger.With(slog.Int("worker", i)).Info("tick")
			})
		}

		wg.Wait()

		if n := strings.Count(out.buf.String(), "\n"); n != 16 {
			t.Errorf("pretty=%v: expected 16 records, got %d", pretty, n)
		}
	}
}
