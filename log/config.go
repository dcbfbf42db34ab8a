package log

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// DefaultTimeLayout is the timestamp layout used when none is configured.
const DefaultTimeLayout = time.RFC3339

// DefaultCaller reports whether records include the calling source location
// by default.
const DefaultCaller = false

// DefaultPretty reports whether records are colorized by default.
const DefaultPretty = true

// Option configures a [Logger].
type Option func(*config)

// config is the immutable description of a Logger's handler. Every Logger
// owns its own copy, so options never race with logging.
type config struct {
	output io.Writer
	stamp  func(time.Time) string
	layout string
	level  Level
	format Format
	caller bool
	pretty bool
}

func makeConfig(w io.Writer, opts ...Option) config {
	cfg := config{
		level:  DefaultLevel,
		format: DefaultFormat,
		caller: DefaultCaller,
		pretty: DefaultPretty,
	}

	WithOutput(w)(&cfg)
	WithTimeLayout(DefaultTimeLayout)(&cfg)

	return cfg.with(opts...)
}

// with returns a copy of c with opts applied.
func (c config) with(opts ...Option) config {
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

func (c config) handlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		AddSource:   c.caller,
		Level:       slog.Level(c.level),
		ReplaceAttr: c.replaceAttr,
	}
}

// replaceAttr formats built-in attributes of the standard handlers the same
// way the pretty handler does.
func (c config) replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}

	switch {
	case a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime:
		s := c.stamp(a.Value.Time())
		if s == "" {
			return slog.Attr{}
		}

		return slog.String(slog.TimeKey, s)

	case a.Key == slog.LevelKey:
		if level, ok := a.Value.Any().(slog.Level); ok {
			return slog.String(slog.LevelKey, Level(level).label())
		}
	}

	return a
}

func (c config) handler() slog.Handler {
	if c.pretty {
		return newPrettyHandler(c)
	}

	switch c.format {
	case FormatText:
		return slog.NewTextHandler(c.output, c.handlerOptions())
	case FormatJSON:
		return slog.NewJSONHandler(c.output, c.handlerOptions())
	default:
		return slog.DiscardHandler
	}
}

// WithOutput sets the destination of log records. A nil writer discards them.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w == nil {
			w = io.Discard
		}

		c.output = w
	}
}

// WithLevel sets the minimum level of records that are written.
func WithLevel(level Level) Option {
	return func(c *config) { c.level = level }
}

// WithFormat sets the record encoding.
func WithFormat(format Format) Option {
	return func(c *config) { c.format = format }
}

// WithTimeLayout sets the layout of record timestamps.
//
// Named layouts from the [time] package are matched ignoring case and
// punctuation ("rfc3339", "RFC-3339-Nano", "kitchen"), as are the short forms
// "ms", "us", and "ns". Any other non-blank string is used verbatim as a
// [time.Time.Format] layout. A blank layout or "none" omits timestamps.
func WithTimeLayout(layout string) Option {
	return func(c *config) {
		c.layout = layout
		c.stamp = makeStamp(layout)
	}
}

// WithCaller includes the source location of the logging call in each record.
func WithCaller(enable bool) Option {
	return func(c *config) { c.caller = enable }
}

// WithPretty selects the colorized handler. Text records drop quoting and
// JSON records are indented one attribute per line.
func WithPretty(enable bool) Option {
	return func(c *config) { c.pretty = enable }
}

var namedLayouts = map[string]string{
	"none":        "",
	"rfc3339":     time.RFC3339,
	"rfc3339nano": time.RFC3339Nano,
	"datetime":    time.DateTime,
	"timeonly":    time.TimeOnly,
	"kitchen":     time.Kitchen,
	"ansic":       time.ANSIC,
	"unixdate":    time.UnixDate,
	"rfc822":      time.RFC822,
	"rfc1123":     time.RFC1123,
	"stamp":       time.Stamp,
	"stampmilli":  time.StampMilli,
	"stampmicro":  time.StampMicro,
	"stampnano":   time.StampNano,
	"ms":          time.StampMilli,
	"us":          time.StampMicro,
	"ns":          time.StampNano,
}

func makeStamp(layout string) func(time.Time) string {
	key := strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', '0' <= r && r <= '9':
			return r
		case 'A' <= r && r <= 'Z':
			return r + 'a' - 'A'
		default:
			return -1
		}
	}, layout)

	if named, ok := namedLayouts[key]; ok {
		layout = named
	} else if strings.TrimSpace(layout) == "" {
		layout = ""
	}

	if layout == "" {
		return func(time.Time) string { return "" }
	}

	return func(t time.Time) string { return t.Format(layout) }
}
