package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/reap/log"
)

// resolve returns a [kong.ConfigurationLoader] that reads flag values from
// the mapping named name in a YAML document.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve(ctx, "config"), "/path/to/config.yaml")
//
// Values are converted as follows:
//   - Keys match flag names with hyphens or underscores
//     (e.g., "log-level" or "log_level")
//   - Booleans are passed through
//   - Numbers are converted to strings
//   - Sequences are joined with commas
//
// Example config file:
//
//	config:
//	  log-level: debug
//	  log_format: text
//	  max-call-depth: 500
//	  source: [lib.reap, consts.reap]
//
// Command-line flags override config file values. A document that cannot be
// parsed is logged and ignored.
func resolve(
	ctx context.Context,
	name string,
) func(r io.Reader) (kong.Resolver, error) {
	return func(r io.Reader) (kong.Resolver, error) {
		var doc map[string]any

		if err := yaml.NewDecoder(r).DecodeContext(ctx, &doc); err != nil {
			if !errors.Is(err, io.EOF) {
				log.WarnContext(ctx, "ignoring invalid configuration",
					slog.String("namespace", name),
					slog.Any("error", err),
				)
			}

			return config{}, nil
		}

		ns, ok := doc[name].(map[string]any)
		if !ok {
			return config{}, nil
		}

		conf := make(config, len(ns))
		for key, val := range ns {
			conf[key] = flagValue(val)
		}

		log.TraceContext(ctx, "configuration loaded",
			slog.String("namespace", name),
			slog.Int("entries", len(conf)),
		)

		return conf, nil
	}
}

// config implements [kong.Resolver] for YAML configuration.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	name := flag.Name

	if value, ok := r[name]; ok {
		return value, nil
	}

	if value, ok := r[strings.ReplaceAll(name, "-", "_")]; ok {
		return value, nil
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// flagValue converts a decoded YAML value to the form kong parses flags from.
func flagValue(val any) any {
	switch v := val.(type) {
	case bool, string:
		return v

	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, fmt.Sprint(flagValue(e)))
		}

		return strings.Join(parts, ",")

	default:
		return fmt.Sprint(v)
	}
}
