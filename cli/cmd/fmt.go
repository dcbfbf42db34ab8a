package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/ardnew/reap/lang"
)

// Fmt parses a program and prints it in the chosen format without
// evaluating it.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as native reap syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format as JSON."`
	YAML   YAML   `cmd:""                    help:"Format as YAML."`
	AST    AST    `cmd:""                    help:"Format as an indented syntax tree."`
}

// Native formats input as native reap syntax.
type Native struct {
	Indent int `default:"2" help:"Indent width for function bodies; 0 prints one line." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the native format command.
func (f *Native) Run(ctx context.Context) error {
	return formatSource(ctx, f.Source, "native",
		func(prog *lang.StatementList, w io.Writer) error {
			return prog.Format(ctx, w, f.Indent)
		})
}

// JSON formats input as JSON.
type JSON struct {
	Indent int `default:"2" help:"Indent width for JSON output; 0 prints one line." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the json command.
func (j *JSON) Run(ctx context.Context) error {
	return formatSource(ctx, j.Source, "json",
		func(prog *lang.StatementList, w io.Writer) error {
			return prog.FormatJSON(ctx, w, j.Indent)
		})
}

// YAML formats input as YAML.
type YAML struct {
	Indent int `default:"2" help:"Indent width for YAML output; 0 prints flow style." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the yaml command.
func (y *YAML) Run(ctx context.Context) error {
	return formatSource(ctx, y.Source, "yaml",
		func(prog *lang.StatementList, w io.Writer) error {
			return prog.FormatYAML(ctx, w, y.Indent)
		})
}

// AST formats input as one node per line with source positions.
type AST struct {
	Indent int `default:"2" help:"Indent width per tree level." short:"i"`

	Source string `arg:"" default:"-" help:"Source input file or '-' for default stdin." name:"source"`
}

// Run executes the ast command.
func (a *AST) Run(ctx context.Context) error {
	return formatSource(ctx, a.Source, "ast",
		func(prog *lang.StatementList, w io.Writer) error {
			return prog.FormatTree(ctx, w, a.Indent)
		})
}

// formatSource parses the program at path and writes it to stdout with
// write.
func formatSource(
	ctx context.Context,
	path, format string,
	write func(*lang.StatementList, io.Writer) error,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	stdout, stderr := outputFrom(ctx)

	file, err := openSource(path)
	if err != nil {
		return err
	}
	defer file.Close()

	opts := append(optionsFrom(ctx), lang.WithDiagnostics(func(err error) {
		printError(stderr, err)
	}))

	prog, err := lang.ParseReader(ctx, file, opts...)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("format", format))
	}

	return write(prog, stdout)
}
