package log

import (
	"bytes"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"testing"
	"time"
)

var ansi = regexp.MustCompile("\033\\[[0-9;]*m")

// plain strips color sequences from pretty output.
func plain(s string) string { return ansi.ReplaceAllString(s, "") }

type position struct{ line, column int }

func (p position) LogValue() slog.Value {
	return slog.GroupValue(slog.Int("line", p.line), slog.Int("column", p.column))
}

func TestPrettyHandler_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf,
		WithFormat(FormatText),
		WithTimeLayout("none"),
		WithLevel(LevelTrace),
	)

	logger.With(slog.String("component", "parser")).Trace("syntax error",
		slog.String("token", "}"),
		slog.Any("at", position{3, 7}),
		slog.Bool("fatal", false),
		slog.Duration("took", 1500*time.Millisecond),
		slog.Any("cause", nil),
	)

	want := "level=TRACE msg=syntax error component=parser token=} " +
		"at.line=3 at.column=7 fatal=false took=1.5s cause=null\n"

	if got := plain(buf.String()); got != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, got)
	}

	if !strings.Contains(buf.String(), ansiMagenta+"TRACE") {
		t.Error("expected trace level to be colorized")
	}
}

func TestPrettyHandler_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout("none"))

	logger.Info("call", slog.String("function", "f(a)"), slog.Int("call_depth", 2))

	want := "{\n" +
		"  level: INFO,\n" +
		"  msg: call,\n" +
		"  function: f(a),\n" +
		"  call_depth: 2\n" +
		"}\n"

	if got := plain(buf.String()); got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestPrettyHandler_Groups(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithTimeLayout("none"))
	logger.Logger = logger.WithGroup("repl").With(slog.Int("line", 1))

	logger.Info("eval",
		slog.Group("", slog.String("inline", "yes")),
		slog.Group("empty"),
		slog.Attr{},
	)

	want := "level=INFO msg=eval repl.line=1 repl.inline=yes\n"

	if got := plain(buf.String()); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestPrettyHandler_Caller(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithTimeLayout("none"), WithCaller(true))
	logger.Warn("here")

	if got := plain(buf.String()); !strings.Contains(got, "source=") ||
		!strings.Contains(got, "handler_test.go:") {
		t.Errorf("expected caller in output, got %q", got)
	}
}

func TestPrettyHandler_Timestamp(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithTimeLayout("2006"))
	logger.Error("boom")

	year := time.Now().Format("2006")
	if got := plain(buf.String()); !strings.HasPrefix(got, "time="+year+" level=ERROR") {
		t.Errorf("expected timestamp prefix, got %q", got)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrettyHandler_WriteError(t *testing.T) {
	h := newPrettyHandler(makeConfig(failWriter{}))

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "lost", 0)
	if err := h.Handle(t.Context(), r); err == nil {
		t.Error("expected write error")
	}
}

func TestFlatten(t *testing.T) {
	fields := flatten(nil, "p.", []slog.Attr{
		slog.Int("a", 1),
		slog.Group("g", slog.Group("h", slog.String("b", "x"))),
	})

	var keys []string
	for _, f := range fields {
		keys = append(keys, f.key)
	}

	if got := strings.Join(keys, ","); got != "p.a,p.g.h.b" {
		t.Errorf("unexpected keys %s", got)
	}
}
