package cmd

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/ardnew/reap/lang"
)

func TestEvalRun(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		exprs []string
		all   bool
		want  string
	}{
		{
			name:  "expression only",
			exprs: []string{"7 / 2"},
			want:  "3.5\n",
		},
		{
			name:  "exact division stays integral",
			exprs: []string{"8 / 2"},
			want:  "4\n",
		},
		{
			name:  "bindings persist across inputs",
			files: map[string]string{"lib.reap": "function area(w, h) { w * h }"},
			exprs: []string{"w = 3", "area(w, 4)"},
			want:  "12\n",
		},
		{
			name:  "dynamic scope",
			exprs: []string{"function get() { v } function wrap(v) { get() } wrap(5)"},
			want:  "5\n",
		},
		{
			name:  "every value",
			exprs: []string{"a = 1", "a + 1.5"},
			all:   true,
			want:  "expr[0]: 1\nexpr[1]: 2.5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			ctx := WithOutput(t.Context(), &stdout, &stderr)
			e := &Eval{Expr: tt.exprs, All: tt.all}

			for name, content := range tt.files {
				e.Files = append(e.Files, writeSource(t, name, content))
			}

			if err := e.Run(ctx); err != nil {
				t.Fatalf("Eval.Run() error = %v", err)
			}

			if stdout.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stdout.String())
			}
		})
	}
}

func TestEvalRunErrors(t *testing.T) {
	tests := []struct {
		name    string
		exprs   []string
		wantErr error
	}{
		{"undefined name", []string{"x"}, lang.ErrUndefinedName},
		{"division by zero", []string{"1 / 0"}, lang.ErrArithmetic},
		{"arity", []string{"function f(a) { a }", "f(1, 2)"}, lang.ErrArity},
		{"syntax", []string{"1 +"}, lang.ErrSyntax},
		{"not a function", []string{"g = 1 g(2)"}, lang.ErrUndefinedFunction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			ctx := WithOutput(t.Context(), &stdout, &stderr)

			err := (&Eval{Expr: tt.exprs}).Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			var le *lang.Error
			if !errors.As(err, &le) || !slices.ContainsFunc(le.Attrs(), func(a slog.Attr) bool {
				return a.Key == "command" && a.Value.String() == "eval"
			}) {
				t.Errorf("expected command attribute on %v", err)
			}

			if stdout.Len() != 0 {
				t.Errorf("expected no output, got %q", stdout.String())
			}
		})
	}
}

func TestEvalInputsOrder(t *testing.T) {
	lib := writeSource(t, "lib.reap", "a = 1")
	file := writeSource(t, "main.reap", "b = a + 1")

	ctx := WithSourceFiles(t.Context(), []string{lib})
	e := &Eval{Files: []string{file}, Expr: []string{"a + b"}}

	var names []string
	for in := range e.inputs(ctx) {
		names = append(names, in.name)
	}

	if want := []string{lib, file, "expr[0]"}; !slices.Equal(names, want) {
		t.Errorf("expected %v, got %v", want, names)
	}

	var stdout bytes.Buffer
	if err := e.Run(WithOutput(ctx, &stdout, &bytes.Buffer{})); err != nil {
		t.Fatalf("Eval.Run() error = %v", err)
	}

	if stdout.String() != "3\n" {
		t.Errorf("expected 3, got %q", stdout.String())
	}
}

func TestEvalInputsStdinFallback(t *testing.T) {
	var names []string
	for in := range (&Eval{}).inputs(t.Context()) {
		names = append(names, in.name)
	}

	if !slices.Equal(names, []string{stdinSource}) {
		t.Errorf("expected stdin fallback, got %v", names)
	}
}

func TestEvalMissingFile(t *testing.T) {
	e := &Eval{Files: []string{"/nonexistent/file.reap"}}

	if err := e.Run(t.Context()); !errors.Is(err, ErrOpenSource) {
		t.Errorf("expected ErrOpenSource, got %v", err)
	}
}
