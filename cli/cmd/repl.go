package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/reap/cli/cmd/repl"
	"github.com/ardnew/reap/log"
)

// Repl starts an interactive read-eval-print loop. Global --source files are
// executed before the first prompt.
//
// When stdin or stdout is not a terminal, or --plain is given, input is read
// line by line without the terminal interface.
type Repl struct {
	Plain bool `help:"Read plain lines from stdin even on a terminal."`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	cfg := repl.Config{
		CacheDir: kongVar(ctx, CacheIdentifier),
		Logger:   log.Default(),
		Options:  optionsFrom(ctx),
	}

	if srcs := sourceFilesFrom(ctx); srcs != nil {
		cfg.Preload = srcs.All()
	}

	interactive := !r.Plain && repl.Interactive(os.Stdin, os.Stdout)

	log.TraceContext(ctx, "repl command",
		slog.Bool("interactive", interactive),
		slog.String("cache_dir", cfg.CacheDir),
	)

	if interactive {
		return repl.Run(ctx, cfg)
	}

	stdout, stderr := outputFrom(ctx)

	return repl.RunLines(ctx, cfg, os.Stdin, stdout, stderr)
}
