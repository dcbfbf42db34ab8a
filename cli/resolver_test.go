package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	val, err := r.Resolve(nil, nil, &kong.Flag{Value: &kong.Value{Name: name}})
	if err != nil {
		t.Fatalf("Resolve(%s) failed: %v", name, err)
	}

	return val
}

func TestResolve_ReturnsNamespace(t *testing.T) {
	doc := `
config:
  log-level: debug
  log_format: text
  max-call-depth: 500
  cache: false
  source: [lib.reap, consts.reap]
other:
  log-level: error
`

	r, err := resolve(t.Context(), baseConfig)(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "text"},
		{"max-call-depth", "500"},
		{"cache", false},
		{"source", "lib.reap,consts.reap"},
		{"pprof-mode", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			if got := resolveFlag(t, r, tt.flag); got != tt.want {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
		})
	}

	if err := r.Validate(nil); err != nil {
		t.Errorf("Validate failed: %v", err)
	}
}

func TestResolve_IgnoresBadInput(t *testing.T) {
	inputs := map[string]string{
		"empty":         "",
		"invalid":       "config: [unterminated",
		"missing":       "other:\n  log-level: debug\n",
		"not a mapping": "config: 42\n",
	}

	for name, doc := range inputs {
		t.Run(name, func(t *testing.T) {
			r, err := resolve(t.Context(), baseConfig)(strings.NewReader(doc))
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}

			if got := resolveFlag(t, r, "log-level"); got != nil {
				t.Errorf("expected no value, got %#v", got)
			}
		})
	}
}

func TestFlagValue(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{true, true},
		{"json", "json"},
		{uint64(64), "64"},
		{int64(-1), "-1"},
		{0.25, "0.25"},
		{[]any{"a", uint64(2), true}, "a,2,true"},
	}

	for _, tt := range tests {
		if got := flagValue(tt.in); got != tt.want {
			t.Errorf("flagValue(%#v) = %#v, want %#v", tt.in, got, tt.want)
		}
	}
}
