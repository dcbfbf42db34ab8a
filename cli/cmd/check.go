package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expr-lang/expr"

	"github.com/ardnew/reap/lang"
	"github.com/ardnew/reap/log"
)

// Check executes a program, then evaluates each expectation against the
// resulting top-level bindings.
//
// Expectations are expr-lang boolean expressions. Integers appear as int64,
// floats as float64, and procedures as their signature string, for example
//
//	reap check prog.reap -x 'total == 12' -x 'ratio > 0.5' -x 'add == "add(a, b)"'
type Check struct {
	Expect []string `help:"Boolean expr-lang predicate over the resulting bindings (repeatable)." name:"expect" required:"" short:"x"`
	Quiet  bool     `help:"Print only failing expectations."                                                              short:"q"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	stdout, _ := outputFrom(ctx)

	file, err := openSource(c.Source)
	if err != nil {
		return err
	}
	defer file.Close()

	in := newInterpreter(ctx)

	if _, err := in.ExecReader(ctx, file); err != nil {
		return lang.WrapError(err).With(
			slog.String("command", "check"),
			slog.String("source", c.Source),
		)
	}

	env := lang.BindingsToNative(in.Bindings())
	failed := 0

	for _, want := range c.Expect {
		ok, err := expect(want, env)
		if err != nil {
			return err
		}

		log.DebugContext(ctx, "expectation",
			slog.String("expect", want),
			slog.Bool("ok", ok),
		)

		switch {
		case !ok:
			failed++

			fmt.Fprintln(stdout, "FAIL", want)

		case !c.Quiet:
			fmt.Fprintln(stdout, "ok  ", want)
		}
	}

	if failed > 0 {
		return ErrExpectation.With(
			slog.Int("failed", failed),
			slog.Int("total", len(c.Expect)),
		)
	}

	return nil
}

// expect compiles and runs a single boolean predicate against env.
func expect(predicate string, env map[string]any) (bool, error) {
	program, err := expr.Compile(predicate, expr.Env(env), expr.AsBool())
	if err != nil {
		return false, ErrExpectCompile.
			With(slog.String("expect", predicate)).
			Wrap(err)
	}

	out, err := expr.Run(program, env)
	if err != nil {
		return false, ErrExpectation.
			With(slog.String("expect", predicate)).
			Wrap(err)
	}

	ok, _ := out.(bool)

	return ok, nil
}
