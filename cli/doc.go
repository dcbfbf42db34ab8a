// Package cli contains the command line interface for reap.
//
// # Usage
//
// Without a command, reap starts an interactive session:
//
//	reap
//	reap --source lib.reap
//
// Programs can also be executed, formatted, and tested non-interactively:
//
//	reap eval -e 'function sq(x) { x * x } sq(7) / 2'
//	reap fmt native prog.reap
//	reap check prog.reap -x 'total == 12'
//
// # Configuration
//
// Flag defaults are read from config.yaml (and config.json) in the user
// configuration directory, under the "config" key. The init command writes
// the current flag values to that file:
//
//	reap --log-level=debug --max-call-depth=500 init
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, RFC3339Nano, etc.)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize log output
//
// # Interpreter Options
//
//   - --max-depth: Maximum nesting depth of function definitions
//   - --max-call-depth: Maximum depth of nested procedure calls
//   - --[no-]cache: Reuse parsed programs with identical source
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof -o reap .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default: ~/.cache/reap/pprof)
package cli
