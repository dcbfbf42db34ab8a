package repl

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/reap/lang"
	"github.com/ardnew/reap/log"
)

const defaultEditor = "vi"

// editProgramCommand implements [tea.ExecCommand] for the edit-parse-retry
// loop. It writes the session's bindings as a program to a temp file, opens
// the user's editor, and on a clean parse replaces every binding with the
// result of running the edited program. On a syntax error the user is
// prompted to re-edit; declining leaves the bindings untouched.
type editProgramCommand struct {
	session *session
	ctxFunc func() context.Context
	logger  log.Logger
	applied bool  // bindings were replaced
	execErr error // evaluation error from the edited program, if any
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editProgramCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editProgramCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editProgramCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run executes the edit-parse-retry loop. If the user declines to re-edit
// after a syntax error, it returns [ErrEditDeclined].
func (c *editProgramCommand) Run() error {
	ctx := c.ctxFunc()

	var buf bytes.Buffer

	if prog := c.session.in.Program(); prog != nil {
		if err := prog.Format(ctx, &buf, 2); err != nil {
			return fmt.Errorf("format program: %w", err)
		}
	}

	content := buf.String()

	f, err := os.CreateTemp(os.TempDir(), "reap-edit-*.reap")
	if err != nil {
		return err
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	if err := f.Close(); err != nil {
		return err
	}

	for {
		if err := os.WriteFile(tmpPath, []byte(content), 0o600); err != nil {
			return err
		}

		if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
			return err
		}

		data, err := os.ReadFile(tmpPath)
		if err != nil {
			return err
		}

		content = string(data)

		// A cleared file cancels the edit.
		if _, blank := balance(content); blank {
			return nil
		}

		_, parseErr := lang.Parse(ctx, content,
			lang.WithLogger(c.logger),
			lang.WithCache(false),
			lang.WithDiagnostics(func(err error) {
				fmt.Fprintln(c.stderr, "error:", err)
			}),
		)
		c.logger.TraceContext(
			ctx,
			"editor parse attempt",
			slog.Int("content_length", len(data)),
			slog.Bool("success", parseErr == nil),
		)

		if parseErr == nil {
			c.session.in.Reset()
			_, c.execErr = c.session.in.Exec(ctx, content)
			c.session.diags = nil
			c.applied = true

			return nil
		}

		fmt.Fprintf(c.stderr, "\nerror: %s\n", parseErr)
		fmt.Fprintf(c.stdout, "Re-edit? [Y/n] ")

		scanner := bufio.NewScanner(c.stdin)
		if !scanner.Scan() {
			return ErrEditDeclined
		}

		response := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if response == "n" || response == "no" {
			return ErrEditDeclined
		}
	}
}

// runEditor launches $EDITOR (or vi) on path and waits for it to exit.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	// EDITOR may carry arguments, e.g. "code --wait".
	args := strings.Fields(os.Getenv("EDITOR"))
	if len(args) == 0 {
		args = []string{defaultEditor}
	}

	cmd := exec.CommandContext(ctx, args[0], append(args[1:], path)...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
