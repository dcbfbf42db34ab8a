package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// RunLines runs a session over plain line input, for use when stdin is not a
// terminal. Values are written to stdout, one per complete input. Errors and
// lexical diagnostics are written to stderr and the session continues.
func RunLines(
	ctx context.Context,
	cfg Config,
	r io.Reader,
	stdout, stderr io.Writer,
) error {
	s := newSession(cfg)

	if err := s.preload(ctx, cfg.Preload); err != nil {
		return err
	}

	cfg.Logger.TraceContext(ctx, "repl lines start")

	report := func(res result) {
		for _, d := range res.diags {
			fmt.Fprintln(stderr, "error:", d)
		}

		if res.err != nil {
			fmt.Fprintln(stderr, "error:", res.err)

			return
		}

		fmt.Fprintln(stdout, res.value)
	}

	lines := 0

	err := eachLine(r, func(line string) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		lines++

		if res, ok := s.feed(ctx, line); ok {
			report(res)
		}

		return nil
	})
	if err != nil {
		return err
	}

	if res, ok := s.flush(ctx); ok {
		report(res)
	}

	cfg.Logger.TraceContext(ctx, "repl lines done", slog.Int("lines", lines))

	return nil
}

// eachLine calls fn with each line of r stripped of its "\n" or "\r\n"
// terminator. Lines may be of any length. Iteration stops at the first error
// from r or fn.
func eachLine(r io.Reader, fn func(string) error) error {
	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if ferr := fn(line); ferr != nil {
				return ferr
			}
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}
	}
}
