package lang

import (
	"iter"
	"log/slog"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Lexer converts source text into a lazy sequence of [Token] values.
//
// A Lexer never fails: characters that start no token are reported to the
// diagnostic handler installed with [WithDiagnostics] and skipped one at a
// time. The sequence always ends with a [KindEOF] token, which is returned
// again by every later call to [Lexer.Next].
type Lexer struct {
	input []byte
	pos   int
	line  int
	col   int
	cfg   config
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string, opts ...Option) *Lexer {
	l := &Lexer{cfg: makeConfig(opts...)}
	l.Reset(src)

	return l
}

// Reset discards any remaining input and restarts the lexer on src.
func (l *Lexer) Reset(src string) {
	l.input = []byte(src)
	l.pos = 0
	l.line = 1
	l.col = 1
}

// All returns an iterator over the remaining tokens, including the final
// [KindEOF] token.
func (l *Lexer) All() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		for {
			tok := l.Next()
			if !yield(tok) || tok.Kind == KindEOF {
				return
			}
		}
	}
}

// Next scans and returns the next token.
func (l *Lexer) Next() Token {
	for {
		l.skipWhitespaceAndComments()

		pos := l.position()

		if l.eof() {
			return Token{Kind: KindEOF, Pos: pos}
		}

		ch := l.peek()

		switch {
		case isNameStart(ch):
			return l.scanName(pos)

		case isDigit(ch):
			return l.scanNumber(pos)

		case ch == '.' && isDigit(l.peekAt(1)):
			return l.scanNumber(pos)
		}

		if kind, ok := punctuation[ch]; ok {
			l.advance()

			return Token{Kind: kind, Lexeme: string(ch), Pos: pos}
		}

		l.illegal(pos, ch)
	}
}

var punctuation = map[rune]Kind{
	'+': KindPlus,
	'-': KindMinus,
	'*': KindTimes,
	'/': KindDivide,
	'=': KindEquals,
	'(': KindLParen,
	')': KindRParen,
	'{': KindLCurly,
	'}': KindRCurly,
	',': KindComma,
}

// illegal reports ch as a lexical error and skips exactly one character.
func (l *Lexer) illegal(pos Position, ch rune) {
	err := ErrIllegalCharacter.
		WithPosition(pos).
		Wrapf("%s", strconv.QuoteRune(ch)).
		With(slog.String("char", string(ch)))

	l.cfg.logger.Debug("lexical error",
		slog.String("char", string(ch)),
		slog.Int("line", pos.Line),
		slog.Int("column", pos.Column),
	)

	if l.cfg.diagnostics != nil {
		l.cfg.diagnostics(err)
	}

	l.advance()
}

func (l *Lexer) scanName(pos Position) Token {
	start := l.pos

	for !l.eof() && isNameContinue(l.peek()) {
		l.advance()
	}

	lexeme := string(l.input[start:l.pos])

	kind, ok := keywords[lexeme]
	if !ok {
		kind = KindName
	}

	return Token{Kind: kind, Lexeme: lexeme, Pos: pos}
}

// scanNumber scans \d+, \d+\.\d*, or \.\d+.
func (l *Lexer) scanNumber(pos Position) Token {
	start := l.pos
	kind := KindInt

	for !l.eof() && isDigit(l.peek()) {
		l.advance()
	}

	if !l.eof() && l.peek() == '.' {
		kind = KindFloat

		l.advance()

		for !l.eof() && isDigit(l.peek()) {
			l.advance()
		}
	}

	return Token{Kind: kind, Lexeme: string(l.input[start:l.pos]), Pos: pos}
}

// Helper methods

func (l *Lexer) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(l.input[l.pos:])

	return r
}

// peekAt returns the byte n positions ahead as a rune, or 0 past the end.
// Only used to look for ASCII digits.
func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}

	return rune(l.input[l.pos+n])
}

func (l *Lexer) advance() {
	if l.eof() {
		return
	}

	r, size := utf8.DecodeRune(l.input[l.pos:])

	l.pos += size
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for !l.eof() {
		ch := l.peek()

		switch {
		case unicode.IsSpace(ch):
			l.advance()

		case ch == '#':
			for !l.eof() && l.peek() != '\n' {
				l.advance()
			}

		default:
			return
		}
	}
}

// Character classification

func isNameStart(r rune) bool {
	return r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z')
}

func isNameContinue(r rune) bool {
	return isNameStart(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
