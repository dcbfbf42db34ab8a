package cli

import (
	"strconv"

	"github.com/alecthomas/kong"

	"github.com/ardnew/reap/lang"
)

// langConfig holds the interpreter limits shared by every command.
type langConfig struct {
	MaxDepth     int  `default:"${maxDepth}"     help:"Maximum nesting depth of function definitions."`
	MaxCallDepth int  `default:"${maxCallDepth}" help:"Maximum depth of nested procedure calls."`
	Cache        bool `default:"true"            help:"Reuse parsed programs with identical source." negatable:""`
}

func (langConfig) vars() kong.Vars {
	return kong.Vars{
		"maxDepth":     strconv.Itoa(lang.DefaultMaxDepth),
		"maxCallDepth": strconv.Itoa(lang.DefaultMaxCallDepth),
	}
}

func (langConfig) group() kong.Group {
	var group kong.Group

	group.Key = "lang"
	group.Title = "Interpreter options"

	return group
}

func (f langConfig) options() []lang.Option {
	return []lang.Option{
		lang.WithMaxDepth(f.MaxDepth),
		lang.WithMaxCallDepth(f.MaxCallDepth),
		lang.WithCache(f.Cache),
	}
}
