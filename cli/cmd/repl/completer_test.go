package repl

import (
	"slices"
	"testing"

	"github.com/ardnew/reap/lang"
)

func TestWordBounds(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		cursor    int
		wantWord  string
		wantStart int
		wantEnd   int
	}{
		{"simple", "foo", 3, "foo", 0, 3},
		{"after_plus", "a + fo", 6, "fo", 4, 6},
		{"after_paren", "double(fo", 9, "fo", 7, 9},
		{"after_comma", "add(a, fo", 9, "fo", 7, 9},
		{"after_equals", "x=fo", 4, "fo", 2, 4},
		{"in_body", "function f(a) { fo", 18, "fo", 16, 18},
		{"empty_at_boundary", "a + ", 4, "", 4, 4},
		{"mid_word", "foobar", 3, "foobar", 0, 6},
		{"at_start", "foo", 0, "foo", 0, 3},
		{"between_operators", "a+b", 2, "b", 2, 3},
		{"underscore", "my_var", 6, "my_var", 0, 6},
		{"digits_in_name", "x1 * y2", 7, "y2", 5, 7},
		{"cursor_past_end", "ab", 9, "ab", 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			word, start, end := wordBounds(tt.input, tt.cursor)
			if word != tt.wantWord || start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("wordBounds(%q, %d) = (%q, %d, %d), want (%q, %d, %d)",
					tt.input, tt.cursor, word, start, end,
					tt.wantWord, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	in := lang.New()

	if _, err := in.Exec(t.Context(), "beta = 1 function alpha(x) { x }"); err != nil {
		t.Fatalf("exec error: %v", err)
	}

	got := candidates(in)
	want := []string{"alpha", "beta", "function"}

	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestModel_ComputeMatches(t *testing.T) {
	m := newTestModel(t, "total = 1 tally = 2 other = 3")

	tests := []struct {
		name  string
		mode  inputMode
		input string
		want  []string
	}{
		{"prefix", modeEval, "ta", []string{"tally", "total"}},
		{"fuzzy", modeEval, "tl", []string{"total", "tally"}},
		{"keyword", modeEval, "func", []string{"function"}},
		{"number", modeEval, "12", nil},
		{"empty", modeEval, "1 + ", nil},
		{"command", modeCtrl, "re", []string{"reset"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m.mode = tt.mode
			m.input.SetValue(tt.input)
			m.input.SetCursor(len(tt.input))

			matches, _, _, _ := m.computeMatches()

			var got []string
			for _, match := range matches {
				got = append(got, match.Str)
			}

			if len(tt.want) == 0 {
				if len(got) != 0 {
					t.Errorf("expected no matches, got %v", got)
				}

				return
			}

			for _, w := range tt.want {
				if !slices.Contains(got, w) {
					t.Errorf("expected %q among matches %v", w, got)
				}
			}
		})
	}
}

func TestFormatPreview(t *testing.T) {
	long := &lang.Procedure{Name: "p", Params: []string{
		"alpha", "bravo", "charlie", "delta", "echo", "foxtrot",
	}}

	tests := []struct {
		value lang.Value
		want  string
	}{
		{lang.Int(3), "3"},
		{lang.Float(0.5), "0.5"},
		{&lang.Procedure{Name: "f", Params: []string{"a"}}, "<function f(a)>"},
		{long, "<function p(alpha, bravo, charlie, de..."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatPreview(tt.value); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
