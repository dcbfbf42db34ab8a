package lang

import "github.com/ardnew/reap/log"

// DefaultMaxDepth is the default maximum nesting depth of function
// definitions. Users may modify this before parsing to change the default.
var DefaultMaxDepth = 100

// DefaultMaxCallDepth is the default maximum depth of nested procedure calls.
// Users may modify this before evaluating to change the default.
var DefaultMaxCallDepth = 10000

// DefaultCache is the default setting for caching parsed programs.
const DefaultCache = true

// config holds the options shared by the lexer, parser, evaluator, and
// interpreter.
type config struct {
	logger       log.Logger  // structured logger; zero value is a no-op
	diagnostics  func(error) // receives lexical errors
	maxDepth     int
	maxCallDepth int
	cache        bool
}

// Option configures lexing, parsing, or evaluation behavior.
type Option func(*config)

// makeConfig returns a config with defaults applied, overridden by opts.
func makeConfig(opts ...Option) config {
	cfg := config{
		maxDepth:     DefaultMaxDepth,
		maxCallDepth: DefaultMaxCallDepth,
		cache:        DefaultCache,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithDiagnostics installs a handler that receives every lexical error
// ([ErrIllegalCharacter]) as it is encountered. Lexing continues after the
// handler returns.
func WithDiagnostics(fn func(error)) Option {
	return func(c *config) {
		c.diagnostics = fn
	}
}

// WithMaxDepth sets the maximum nesting depth of function definitions.
func WithMaxDepth(depth int) Option {
	return func(c *config) {
		c.maxDepth = depth
	}
}

// WithMaxCallDepth sets the maximum depth of nested procedure calls.
func WithMaxCallDepth(depth int) Option {
	return func(c *config) {
		c.maxCallDepth = depth
	}
}

// WithCache enables or disables the parsed program cache used by
// [ParseReader] and [Interpreter.Exec].
func WithCache(enable bool) Option {
	return func(c *config) {
		c.cache = enable
	}
}
