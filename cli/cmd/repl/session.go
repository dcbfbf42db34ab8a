package repl

import (
	"context"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/ardnew/reap/lang"
	"github.com/ardnew/reap/log"
)

// Config configures a REPL session.
type Config struct {
	// CacheDir holds the history file. Empty disables persistent history.
	CacheDir string
	// Logger receives trace output from the session and the interpreter.
	Logger log.Logger
	// Options are applied to the session's interpreter.
	Options []lang.Option
	// Preload yields programs executed before the first prompt.
	Preload iter.Seq2[string, io.Reader]
}

// result is the outcome of one complete input.
type result struct {
	value lang.Value
	err   error
	diags []error
}

// session feeds input lines to an interpreter, holding back incomplete
// function definitions until their braces balance.
type session struct {
	in      *lang.Interpreter
	logger  log.Logger
	diags   []error
	pending strings.Builder
}

func newSession(cfg Config) *session {
	s := &session{logger: cfg.Logger}

	opts := append([]lang.Option{lang.WithLogger(cfg.Logger)}, cfg.Options...)
	opts = append(opts, lang.WithDiagnostics(func(err error) {
		s.diags = append(s.diags, err)
	}))

	s.in = lang.New(opts...)

	return s
}

// preload executes every program in seq. The first failure aborts.
func (s *session) preload(ctx context.Context, seq iter.Seq2[string, io.Reader]) error {
	if seq == nil {
		return nil
	}

	for name, r := range seq {
		_, err := s.in.ExecReader(ctx, r)
		s.diags = s.diags[:0]

		if err != nil {
			return lang.WrapError(err).With(slog.String("source", name))
		}

		s.logger.TraceContext(ctx, "repl preload", slog.String("source", name))
	}

	return nil
}

// continued reports whether a line is being held for a multi-line input.
func (s *session) continued() bool { return s.pending.Len() > 0 }

// discard drops any held partial input.
func (s *session) discard() { s.pending.Reset() }

// feed adds one line of input. It returns ok false while the accumulated
// input is incomplete or blank.
func (s *session) feed(ctx context.Context, line string) (res result, ok bool) {
	s.pending.WriteString(line)
	s.pending.WriteByte('\n')

	src := s.pending.String()

	depth, blank := balance(src)
	if depth > 0 {
		return res, false
	}

	s.pending.Reset()

	if blank {
		return res, false
	}

	return s.exec(ctx, src), true
}

// flush executes any held partial input so its syntax error is reported.
func (s *session) flush(ctx context.Context) (res result, ok bool) {
	if !s.continued() {
		return res, false
	}

	src := s.pending.String()
	s.pending.Reset()

	return s.exec(ctx, src), true
}

func (s *session) exec(ctx context.Context, src string) result {
	v, err := s.in.Exec(ctx, src)

	res := result{value: v, err: err, diags: s.diags}
	s.diags = nil

	s.logger.TraceContext(ctx, "repl eval",
		slog.String("input", strings.TrimSpace(src)),
		slog.Bool("ok", err == nil),
		slog.Int("diagnostics", len(res.diags)),
	)

	return res
}

// balance returns the count of unclosed braces in src and whether src holds
// nothing but whitespace and comments.
func balance(src string) (depth int, blank bool) {
	blank = true

	lex := lang.NewLexer(src, lang.WithDiagnostics(func(error) { blank = false }))

	for tok := range lex.All() {
		if tok.Kind == lang.KindEOF {
			break
		}

		blank = false

		switch tok.Kind {
		case lang.KindLCurly:
			depth++

		case lang.KindRCurly:
			depth--
		}
	}

	return depth, blank
}
