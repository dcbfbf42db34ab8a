package log

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
)

const (
	ansiReset   = "\033[0m"
	ansiGray    = "\033[90m"
	ansiRed     = "\033[31m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiBlue    = "\033[34m"
	ansiMagenta = "\033[35m"
	ansiCyan    = "\033[36m"
)

// field is a flattened attribute. Keys of grouped attributes are joined with
// dots, so an error logged as a group renders as error.line=3 error.column=7.
type field struct {
	key   string
	value slog.Value
	color string
}

// prettyHandler writes colorized records in either text or indented JSON
// layout. Attributes added with WithAttrs and groups opened with WithGroup
// are flattened into the fields of every record.
type prettyHandler struct {
	cfg    config
	mu     *sync.Mutex
	fields []field
	prefix string
}

func newPrettyHandler(cfg config) *prettyHandler {
	return &prettyHandler{cfg: cfg, mu: &sync.Mutex{}}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.Level(h.cfg.level)
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h
	c.fields = flatten(append([]field(nil), h.fields...), h.prefix, attrs)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, len(h.fields)+r.NumAttrs()+4)

	if !r.Time.IsZero() {
		if stamp := h.cfg.stamp(r.Time); stamp != "" {
			fields = append(fields, field{key: slog.TimeKey, value: slog.StringValue(stamp)})
		}
	}

	fields = append(fields, field{
		key:   slog.LevelKey,
		value: slog.StringValue(Level(r.Level).label()),
		color: levelColor(r.Level),
	})

	if h.cfg.caller {
		if src := r.Source(); src != nil && src.File != "" {
			fields = append(fields, field{
				key:   slog.SourceKey,
				value: slog.StringValue(src.File + ":" + strconv.Itoa(src.Line)),
			})
		}
	}

	fields = append(fields, field{key: slog.MessageKey, value: slog.StringValue(r.Message)})
	fields = append(fields, h.fields...)

	r.Attrs(func(a slog.Attr) bool {
		fields = flatten(fields, h.prefix, []slog.Attr{a})

		return true
	})

	var buf bytes.Buffer

	if h.cfg.format == FormatJSON {
		writeIndented(&buf, fields)
	} else {
		writeText(&buf, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.cfg.output.Write(buf.Bytes())

	return err
}

// flatten appends attrs to fields, resolving values and expanding groups.
// Empty attributes and empty groups are dropped as the standard handlers do.
func flatten(fields []field, prefix string, attrs []slog.Attr) []field {
	for _, a := range attrs {
		a.Value = a.Value.Resolve()

		if a.Equal(slog.Attr{}) {
			continue
		}

		if a.Value.Kind() == slog.KindGroup {
			group := prefix
			if a.Key != "" {
				group += a.Key + "."
			}

			fields = flatten(fields, group, a.Value.Group())

			continue
		}

		fields = append(fields, field{key: prefix + a.Key, value: a.Value})
	}

	return fields
}

func writeText(buf *bytes.Buffer, fields []field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(ansiGray + f.key + ansiReset + "=")
		writeValue(buf, f)
	}

	buf.WriteByte('\n')
}

func writeIndented(buf *bytes.Buffer, fields []field) {
	buf.WriteString("{\n")

	for i, f := range fields {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  " + ansiGray + f.key + ansiReset + ": ")
		writeValue(buf, f)
	}

	buf.WriteString("\n}\n")
}

func writeValue(buf *bytes.Buffer, f field) {
	color, text := f.color, ""

	switch v := f.value; v.Kind() {
	case slog.KindString:
		text = v.String()
	case slog.KindInt64:
		color, text = ansiYellow, strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		color, text = ansiYellow, strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		color, text = ansiYellow, strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		color, text = ansiRed, strconv.FormatBool(v.Bool())
		if v.Bool() {
			color = ansiGreen
		}
	case slog.KindDuration:
		color, text = ansiMagenta, v.Duration().String()
	case slog.KindTime:
		color, text = ansiBlue, v.Time().String()
	case slog.KindAny:
		if v.Any() == nil {
			color, text = ansiGray, "null"
		} else {
			text = fmt.Sprint(v.Any())
		}
	default:
		text = v.String()
	}

	if color == "" {
		color = ansiCyan
	}

	buf.WriteString(color + text + ansiReset)
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return ansiRed
	case level >= slog.LevelWarn:
		return ansiYellow
	case level >= slog.LevelInfo:
		return ansiGreen
	case level >= slog.LevelDebug:
		return ansiBlue
	default:
		return ansiMagenta
	}
}
