// Package log is the structured logger shared by the reap interpreter and
// its command-line tools. It is a thin layer over [log/slog] that adds
// [LevelTrace] below debug, attribute-only logging methods, and a colorized
// handler for interactive use.
//
// # Loggers
//
// [Make] builds a [Logger] from functional options. Loggers are immutable
// values; [Logger.Wrap] derives one with different options and
// [Logger.With] derives one that tags every record:
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelTrace))
//	logger = logger.With(slog.String("command", "eval"))
//	logger.TraceContext(ctx, "call", slog.Int("call_depth", 2))
//
// The zero Logger discards everything, so components can hold one without
// checking whether logging was configured. [Logger.Tracing] lets hot paths
// skip building attributes nobody will read.
//
// # Output
//
// Records are encoded as [FormatJSON] (the default) or [FormatText]. With
// [WithPretty] enabled, keys and values are colorized, JSON is indented one
// attribute per line, and grouped attributes (including values implementing
// [slog.LogValuer]) are flattened into dotted keys such as error.line.
//
// [WithTimeLayout] accepts the named layouts of package [time], ignoring case
// and punctuation, or any custom layout. The layout "none" omits timestamps.
//
// # Default Logger
//
// Package-level functions such as [Info] and [Trace] write through a default
// logger that targets standard error, keeping log output apart from values
// printed on standard output. [Config] reconfigures it and [Default] returns
// it for components that accept a [Logger]. Context-free variants use
// [DefaultContextProvider].
package log
