package lang

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"sync"
)

// Interpreter runs programs against a persistent top-level scope.
//
// Each call to [Interpreter.Exec] is one complete lex, parse, and evaluate
// cycle. Bindings made at top level survive from one cycle to the next; call
// scopes never do. An Interpreter is safe for concurrent use: cycles are
// serialized.
type Interpreter struct {
	mu     sync.Mutex
	global *Scope
	opts   []Option
	cfg    config
}

// New returns an Interpreter with an empty top-level scope.
func New(opts ...Option) *Interpreter {
	return &Interpreter{
		global: NewScope(nil),
		opts:   opts,
		cfg:    makeConfig(opts...),
	}
}

// Exec parses and evaluates src and returns the value of its last statement.
//
// A syntax error rejects the whole input and leaves the top-level scope
// untouched. An evaluation error stops at the failing statement; bindings
// made by earlier statements of the same input remain.
func (in *Interpreter) Exec(ctx context.Context, src string) (Value, error) {
	in.mu.Lock()
	defer in.mu.Unlock()

	prog, err := parseCached(ctx, src, in.cfg, in.opts...)
	if err != nil {
		return nil, err
	}

	v, err := Eval(ctx, prog, in.global, in.opts...)
	if err != nil {
		in.cfg.logger.DebugContext(ctx, "evaluation failed",
			slog.Any("error", err))

		return nil, err
	}

	in.cfg.logger.TraceContext(ctx, "exec complete",
		slog.String("value", v.String()))

	return v, nil
}

// ExecReader reads all of r and executes it as a single program.
func (in *Interpreter) ExecReader(ctx context.Context, r io.Reader) (Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return in.Exec(ctx, string(data))
}

// Global returns the top-level scope. Callers must not use the scope while
// another goroutine may be executing on the Interpreter.
func (in *Interpreter) Global() *Scope {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.global
}

// Bindings returns a snapshot of the top-level bindings.
func (in *Interpreter) Bindings() map[string]Value {
	in.mu.Lock()
	defer in.mu.Unlock()

	return maps.Clone(in.global.vars)
}

// Lookup returns the top-level binding for name.
func (in *Interpreter) Lookup(name string) (Value, bool) {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.global.Lookup(name)
}

// Names returns the sorted top-level names.
func (in *Interpreter) Names() []string {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.global.Names()
}

// Reset discards every top-level binding.
func (in *Interpreter) Reset() {
	in.mu.Lock()
	defer in.mu.Unlock()

	in.global = NewScope(nil)
}
