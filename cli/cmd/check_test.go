package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ardnew/reap/lang"
)

const checkSource = `
total = 4 * 3
ratio = total / 16
function add(a, b) { a + b }
`

func TestCheckRun(t *testing.T) {
	tests := []struct {
		name    string
		expect  []string
		quiet   bool
		want    string
		wantErr error
	}{
		{
			name:   "all pass",
			expect: []string{"total == 12", "ratio > 0.5", `add == "add(a, b)"`},
			want:   "ok   total == 12\nok   ratio > 0.5\nok   add == \"add(a, b)\"\n",
		},
		{
			name:    "one fails",
			expect:  []string{"total == 12", "ratio < 0.5"},
			want:    "ok   total == 12\nFAIL ratio < 0.5\n",
			wantErr: ErrExpectation,
		},
		{
			name:    "quiet",
			expect:  []string{"total == 12", "total > 100"},
			quiet:   true,
			want:    "FAIL total > 100\n",
			wantErr: ErrExpectation,
		},
		{
			name:    "unknown binding",
			expect:  []string{"missing == 1"},
			wantErr: ErrExpectCompile,
		},
		{
			name:    "not a predicate",
			expect:  []string{"total + 1"},
			wantErr: ErrExpectCompile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			ctx := WithOutput(t.Context(), &stdout, &stderr)
			c := &Check{
				Expect: tt.expect,
				Quiet:  tt.quiet,
				Source: writeSource(t, "check.reap", checkSource),
			}

			err := c.Run(ctx)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Check.Run() error = %v", err)
			}

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			if stdout.String() != tt.want {
				t.Errorf("expected:\n%s\ngot:\n%s", tt.want, stdout.String())
			}
		})
	}
}

func TestCheckRunProgramError(t *testing.T) {
	c := &Check{
		Expect: []string{"true"},
		Source: writeSource(t, "bad.reap", "x = 1 / 0"),
	}

	err := c.Run(WithOutput(t.Context(), &bytes.Buffer{}, &bytes.Buffer{}))
	if !errors.Is(err, lang.ErrArithmetic) {
		t.Errorf("expected ErrArithmetic, got %v", err)
	}
}
