package lang

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Parse parses src into a program. The result is always a non-empty
// [StatementList]; on any syntax error the whole input is rejected and no
// partial tree is returned.
//
// Lexical errors do not stop parsing. They are reported to the handler
// installed with [WithDiagnostics] and the offending characters are skipped.
func Parse(ctx context.Context, src string, opts ...Option) (*StatementList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(src)))

	p := &parser{
		lex: NewLexer(src, opts...),
		cfg: cfg,
	}
	p.advance()

	prog, err := p.parseProgram()
	if err != nil {
		cfg.logger.TraceContext(ctx, "parse failed",
			slog.Any("error", err))

		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("statement_count", len(prog.Statements)))

	return prog, nil
}

// parser holds the parser state. It pulls tokens lazily from the lexer and
// keeps at most one token of lookahead beyond the current one.
type parser struct {
	lex   *Lexer
	tok   Token   // current token
	ahead []Token // buffered lookahead
	cfg   config
	depth int
	chain []string
}

// parseProgram parses: statement+ EOF.
func (p *parser) parseProgram() (*StatementList, error) {
	pos := p.tok.Pos

	stmts, err := p.parseStatements(KindEOF)
	if err != nil {
		return nil, err
	}

	return &StatementList{Statements: stmts, Pos: pos}, nil
}

// parseStatements parses one or more statements up to (not including) a
// token of kind end.
func (p *parser) parseStatements(end Kind) ([]Node, error) {
	var stmts []Node

	for p.tok.Kind != end {
		if p.tok.Kind == KindEOF {
			return nil, p.unexpected(end.String())
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	if len(stmts) == 0 {
		return nil, p.unexpected("statement")
	}

	return stmts, nil
}

// parseStatement parses a function definition, an assignment, or an
// expression.
func (p *parser) parseStatement() (Node, error) {
	switch {
	case p.tok.Kind == KindFunction:
		return p.parseFunctionDef()

	case p.tok.Kind == KindName && p.peek().Kind == KindEquals:
		return p.parseAssignment()

	default:
		return p.parseExpression()
	}
}

// parseFunctionDef parses: FUNCTION NAME '(' paramlist ')' '{' statement+ '}'.
func (p *parser) parseFunctionDef() (Node, error) {
	pos := p.tok.Pos
	p.advance() // skip 'function'

	name, err := p.expect(KindName)
	if err != nil {
		return nil, err
	}

	if p.depth >= p.cfg.maxDepth {
		return nil, ErrMaxDepthExceeded.WithPosition(pos).
			With(slog.Int("depth", p.depth)).
			With(slog.Int("max_depth", p.cfg.maxDepth)).
			With(slog.String("chain", strings.Join(p.chain, " → ")))
	}

	p.chain = append(p.chain, name.Lexeme)
	p.depth++

	defer func() {
		p.depth--
		p.chain = p.chain[:len(p.chain)-1]
	}()

	params, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	bodyPos := p.tok.Pos

	if _, err := p.expect(KindLCurly); err != nil {
		return nil, err
	}

	stmts, err := p.parseStatements(KindRCurly)
	if err != nil {
		return nil, err
	}

	p.advance() // skip '}'

	return &FunctionDef{
		Name:   name.Lexeme,
		Params: params,
		Body:   &StatementList{Statements: stmts, Pos: bodyPos},
		Pos:    pos,
	}, nil
}

// parseParams parses: '(' (NAME (',' NAME)*)? ')'.
func (p *parser) parseParams() ([]string, error) {
	if _, err := p.expect(KindLParen); err != nil {
		return nil, err
	}

	params := make([]string, 0)

	if p.tok.Kind == KindRParen {
		p.advance()

		return params, nil
	}

	for {
		name, err := p.expect(KindName)
		if err != nil {
			return nil, err
		}

		if slices.Contains(params, name.Lexeme) {
			return nil, ErrSyntax.WithPosition(name.Pos).
				Wrapf("duplicate parameter %s", strconv.Quote(name.Lexeme)).
				With(slog.String("param", name.Lexeme))
		}

		params = append(params, name.Lexeme)

		if p.tok.Kind != KindComma {
			break
		}

		p.advance()
	}

	if _, err := p.expect(KindRParen); err != nil {
		return nil, err
	}

	return params, nil
}

// parseAssignment parses: NAME '=' expression.
func (p *parser) parseAssignment() (Node, error) {
	name := p.tok
	p.advance() // skip name
	p.advance() // skip '='

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &Assignment{Name: name.Lexeme, Value: value, Pos: name.Pos}, nil
}

// parseExpression parses a sum of products.
func (p *parser) parseExpression() (Node, error) {
	return p.parseBinary(OpAdd.precedence())
}

// parseBinary parses operands joined by operators of at least minPrec.
// Operators of equal precedence associate to the left.
func (p *parser) parseBinary(minPrec int) (Node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := binaryOperators[p.tok.Kind]
		if !ok || op.precedence() < minPrec {
			return left, nil
		}

		p.advance()

		right, err := p.parseBinary(op.precedence() + 1)
		if err != nil {
			return nil, err
		}

		left = &BinaryOp{Op: op, Left: left, Right: right, Pos: left.Position()}
	}
}

// parsePrimary parses: NAME '(' arglist ')' | NAME | INT | FLOAT.
func (p *parser) parsePrimary() (Node, error) {
	tok := p.tok

	switch tok.Kind {
	case KindName:
		p.advance()

		if p.tok.Kind == KindLParen {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}

			return &FunctionCall{Name: tok.Lexeme, Args: args, Pos: tok.Pos}, nil
		}

		return &NameRef{Name: tok.Lexeme, Pos: tok.Pos}, nil

	case KindInt:
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, ErrSyntax.WithPosition(tok.Pos).
				Wrapf("integer literal out of range: %s", tok.Lexeme).
				With(slog.String("token", tok.Lexeme))
		}

		p.advance()

		return &IntLiteral{Value: v, Pos: tok.Pos}, nil

	case KindFloat:
		v, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, ErrSyntax.WithPosition(tok.Pos).
				Wrapf("float literal out of range: %s", tok.Lexeme).
				With(slog.String("token", tok.Lexeme))
		}

		p.advance()

		return &FloatLiteral{Value: v, Pos: tok.Pos}, nil

	default:
		return nil, p.unexpected("expression")
	}
}

// parseArgs parses: '(' (expression (',' expression)*)? ')'.
func (p *parser) parseArgs() ([]Node, error) {
	p.advance() // skip '('

	args := make([]Node, 0)

	if p.tok.Kind == KindRParen {
		p.advance()

		return args, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if p.tok.Kind != KindComma {
			break
		}

		p.advance()
	}

	if _, err := p.expect(KindRParen); err != nil {
		return nil, err
	}

	return args, nil
}

// Helper methods

// advance moves to the next token.
func (p *parser) advance() {
	if len(p.ahead) > 0 {
		p.tok = p.ahead[0]
		p.ahead = p.ahead[1:]

		return
	}

	p.tok = p.lex.Next()
}

// peek returns the token after the current one without consuming it.
func (p *parser) peek() Token {
	if len(p.ahead) == 0 {
		p.ahead = append(p.ahead, p.lex.Next())
	}

	return p.ahead[0]
}

// expect consumes and returns the current token if it has the given kind.
func (p *parser) expect(kind Kind) (Token, error) {
	tok := p.tok
	if tok.Kind != kind {
		return tok, p.unexpected(kind.String())
	}

	p.advance()

	return tok, nil
}

// unexpected returns a syntax error naming the current token.
func (p *parser) unexpected(expected string) *Error {
	return ErrSyntax.WithPosition(p.tok.Pos).
		Wrapf("unexpected %s", p.tok.describe()).
		With(
			slog.String("token", p.tok.Lexeme),
			slog.String("kind", p.tok.Kind.String()),
			slog.String("expected", expected),
		)
}
