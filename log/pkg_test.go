package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// useDefault points the default logger at a buffer for the duration of t.
func useDefault(t *testing.T, opts ...Option) *bytes.Buffer {
	t.Helper()

	saved := Default()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultLog = saved
		defaultMu.Unlock()
	})

	var buf bytes.Buffer

	Config(append([]Option{WithOutput(&buf), WithPretty(false), WithTimeLayout("none")}, opts...)...)

	return &buf
}

func TestPackage_LogFunctions(t *testing.T) {
	buf := useDefault(t, WithLevel(LevelTrace))

	tests := []struct {
		fn    func(string, ...slog.Attr)
		level string
	}{
		{Trace, "TRACE"},
		{Debug, "DEBUG"},
		{Info, "INFO"},
		{Warn, "WARN"},
		{Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			got := buf.String()
			want := `{"level":"` + tt.level + `","msg":"message","key":"value"}` + "\n"

			if got != want {
				t.Errorf("expected %s, got %s", want, got)
			}
		})
	}
}

func TestPackage_ContextFunctions(t *testing.T) {
	buf := useDefault(t, WithLevel(LevelDebug), WithFormat(FormatText))

	TraceContext(t.Context(), "hidden")
	DebugContext(t.Context(), "a")
	InfoContext(t.Context(), "b")
	WarnContext(t.Context(), "c")
	ErrorContext(t.Context(), "d")

	want := "level=DEBUG msg=a\nlevel=INFO msg=b\nlevel=WARN msg=c\nlevel=ERROR msg=d\n"
	if got := buf.String(); got != want {
		t.Errorf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestPackage_ConfigAccumulates(t *testing.T) {
	buf := useDefault(t)

	Config(WithLevel(LevelTrace))
	Config(WithFormat(FormatText))

	if Default().Level() != LevelTrace || Default().Format() != FormatText {
		t.Errorf("expected both options to apply, got %v/%v", Default().Level(), Default().Format())
	}

	With(slog.String("command", "eval")).Trace("run")

	if got := buf.String(); !strings.Contains(got, "command=eval") {
		t.Errorf("expected attribute from With, got %q", got)
	}
}
