// Package cmd implements the reap subcommands: repl, eval, fmt, check, and
// init.
//
// Commands receive their runtime state through [context.Context]: the
// [kong.Context] via [WithContext], global source files via
// [WithSourceFiles], interpreter options via [WithOptions], and output
// writers via [WithOutput].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the configuration file.
	ConfigIdentifier = "config"
)
