package cmd

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/reap/lang"
	"github.com/ardnew/reap/log"
)

// Eval executes programs in a single interpreter and prints the final value.
//
// Inputs run in order: global --source files, then positional files, then
// each --expr. Each input is a complete program; bindings persist from one
// to the next. With no inputs at all, the program is read from stdin.
type Eval struct {
	Expr  []string `help:"Program text to execute after all files (repeatable)." name:"expr" short:"e"`
	All   bool     `help:"Print the value of every input, not just the last."                  short:"a"`
	Files []string `arg:"" help:"Source files or '-' for stdin." name:"file" optional:"" type:"existingfile"`
}

// input is one program handed to the interpreter.
type input struct {
	name string
	read func() (io.Reader, func() error, error)
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	stdout, _ := outputFrom(ctx)
	in := newInterpreter(ctx)

	var last lang.Value

	for src := range e.inputs(ctx) {
		r, done, err := src.read()
		if err != nil {
			return err
		}

		v, err := in.ExecReader(ctx, r)
		if cerr := done(); err == nil {
			err = cerr
		}

		if err != nil {
			return lang.WrapError(err).With(
				slog.String("command", "eval"),
				slog.String("input", src.name),
			)
		}

		log.TraceContext(ctx, "eval input", slog.String("input", src.name),
			slog.String("value", v.String()))

		if e.All {
			fmt.Fprintf(stdout, "%s: %s\n", src.name, v)
		}

		last = v
	}

	if last == nil {
		return ErrNoInput.With(slog.String("command", "eval"))
	}

	if !e.All {
		fmt.Fprintln(stdout, last)
	}

	return nil
}

// inputs yields every program in execution order.
func (e *Eval) inputs(ctx context.Context) iter.Seq[input] {
	return func(yield func(input) bool) {
		n := 0

		if srcs := sourceFilesFrom(ctx); srcs != nil {
			for name, r := range srcs.All() {
				n++

				if !yield(input{name, reader(r)}) {
					return
				}
			}
		}

		for _, path := range e.Files {
			n++

			if !yield(input{path, opener(path)}) {
				return
			}
		}

		for i, expr := range e.Expr {
			n++

			name := fmt.Sprintf("expr[%d]", i)
			if !yield(input{name, reader(strings.NewReader(expr))}) {
				return
			}
		}

		if n == 0 {
			yield(input{stdinSource, reader(os.Stdin)})
		}
	}
}

func reader(r io.Reader) func() (io.Reader, func() error, error) {
	return func() (io.Reader, func() error, error) {
		return r, func() error { return nil }, nil
	}
}

func opener(path string) func() (io.Reader, func() error, error) {
	return func() (io.Reader, func() error, error) {
		rc, err := openSource(path)
		if err != nil {
			return nil, nil, err
		}

		return rc, rc.Close, nil
	}
}
