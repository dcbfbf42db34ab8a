package lang

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import "strconv"

// Kind identifies the lexical class of a [Token].
type Kind int

const (
	KindEOF      Kind = iota // EOF
	KindName                 // name
	KindInt                  // integer
	KindFloat                // float
	KindPlus                 // +
	KindMinus                // -
	KindTimes                // *
	KindDivide               // /
	KindEquals               // =
	KindLParen               // (
	KindRParen               // )
	KindLCurly               // {
	KindRCurly               // }
	KindComma                // ,
	KindFunction             // function
)

// keywords maps reserved identifiers to their token kinds.
var keywords = map[string]Kind{
	"function": KindFunction,
}

// Token is a single lexical unit. Tokens are immutable once produced.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

// describe renders the token for diagnostics, e.g. `'}'`, `name "x"`, or
// "end of input".
func (t Token) describe() string {
	switch t.Kind {
	case KindEOF:
		return "end of input"

	case KindName, KindInt, KindFloat:
		return t.Kind.String() + " " + strconv.Quote(t.Lexeme)

	default:
		return "'" + t.Lexeme + "'"
	}
}
