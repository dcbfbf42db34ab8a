package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/reap/lang"
)

// Signature hint styles.
var (
	signatureStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureNameStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("6")).
				Bold(true)
	currentParamStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("11")).
				Bold(true)
	overflowParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// functionCall represents a detected function call in the input.
type functionCall struct {
	name     string // called name
	argIndex int    // current argument index (0-based)
	inCall   bool   // true if cursor is inside the argument list
}

// detectFunctionCall reports whether the cursor sits inside the argument
// list of a call, and if so which call and which argument.
func detectFunctionCall(input string, cursor int) functionCall {
	cursor = min(cursor, len(input))

	// Scan backward for the unmatched '(' enclosing the cursor.
	depth := 0
	open := -1

	for i := cursor; i > 0 && open < 0; {
		r, size := utf8.DecodeLastRuneInString(input[:i])
		i -= size

		switch r {
		case ')':
			depth++

		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		}
	}

	if open < 0 {
		return functionCall{}
	}

	name, _, _ := wordBounds(input, open)
	if name == "" || isNumeric(name) {
		return functionCall{}
	}

	// Count top-level commas between '(' and the cursor.
	argIndex := 0
	depth = 0

	for _, r := range input[open+1 : cursor] {
		switch r {
		case '(':
			depth++

		case ')':
			depth--

		case ',':
			if depth == 0 {
				argIndex++
			}
		}
	}

	return functionCall{name: name, argIndex: argIndex, inCall: true}
}

// lookupProcedure returns the procedure bound to name, if any.
func lookupProcedure(in *lang.Interpreter, name string) (*lang.Procedure, bool) {
	v, ok := in.Lookup(name)
	if !ok {
		return nil, false
	}

	p, ok := v.(*lang.Procedure)

	return p, ok
}

// renderSignatureHint renders name(params) with the parameter at argIdx
// highlighted. An argument index past the last parameter marks the closing
// parenthesis as an arity overflow.
func renderSignatureHint(name string, params []string, argIdx int) string {
	var b strings.Builder

	b.WriteString(signatureNameStyle.Render(name))
	b.WriteString(signatureStyle.Render("("))

	for i, param := range params {
		if i > 0 {
			b.WriteString(signatureStyle.Render(", "))
		}

		if i == argIdx {
			b.WriteString(currentParamStyle.Render(param))
		} else {
			b.WriteString(signatureStyle.Render(param))
		}
	}

	if argIdx > 0 && argIdx >= len(params) {
		b.WriteString(overflowParamStyle.Render(")"))
	} else {
		b.WriteString(signatureStyle.Render(")"))
	}

	return b.String()
}
