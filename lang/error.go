package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
//
// Every error returned by this package is derived from one of these with
// [Error.With], [Error.Wrap], [Error.Wrapf], or [Error.WithPosition], and
// matches its sentinel with [errors.Is].
var (
	// ErrIllegalCharacter is a lexical error: a character that starts no
	// token. It is reported as a diagnostic; lexing continues.
	ErrIllegalCharacter = NewError("illegal character")

	// ErrSyntax is reported for malformed input. The whole input is
	// abandoned.
	ErrSyntax = NewError("syntax error")

	ErrUndefinedName     = NewError("name not defined")
	ErrUndefinedFunction = NewError("function not defined")
	ErrArity             = NewError("argument count mismatch")
	ErrArithmetic        = NewError("division by zero")
	ErrOperandType       = NewError("operand is not a number")
	ErrCallDepth         = NewError("maximum call depth exceeded")
	ErrMaxDepthExceeded  = NewError("maximum definition depth exceeded")
	ErrReadInput         = NewError("failed to read input")
	ErrInterrupted       = NewError("evaluation interrupted")

	// ErrInternal indicates a node the evaluator does not know. It means the
	// parser and evaluator disagree about the grammar.
	ErrInternal = NewError("internal error: unrecognized node")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	base  *Error      // sentinel this error was derived from
	msg   string      // base message
	err   error       // Wrapped error (for errors.Unwrap)
	pos   *Position   // source position, if known
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// "<msg>: <err> at line L, column C", omitting the parts that are unset.
	var b strings.Builder

	b.WriteString(e.msg)

	if e.err != nil {
		if b.Len() > 0 {
			b.WriteString(": ")
		}

		b.WriteString(e.err.Error())
	}

	if e.pos != nil {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}

		b.WriteString("at ")
		b.WriteString(e.pos.String())
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the sentinel (or any error derived from the
// sentinel) that e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.root() == e.root()
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}

// Position returns the source position attached to the error, if any.
func (e *Error) Position() (Position, bool) {
	if e.pos == nil {
		return Position{}, false
	}

	return *e.pos, true
}

// Attrs returns a copy of the structured attributes attached to the error.
func (e *Error) Attrs() []slog.Attr {
	return append([]slog.Attr(nil), e.attrs...)
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	if e.pos != nil {
		attrs = append(attrs,
			slog.Int("line", e.pos.Line),
			slog.Int("column", e.pos.Column),
		)
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// derive returns a shallow copy of e that remembers e's sentinel.
func (e *Error) derive() *Error {
	return &Error{
		base:  e.root(),
		msg:   e.msg,
		err:   e.err,
		pos:   e.pos,
		attrs: e.attrs, // Share attrs
	}
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	d := e.derive()
	d.err = err

	return d
}

// Wrapf creates a new Error wrapping a formatted error.
func (e *Error) Wrapf(format string, args ...any) *Error {
	return e.Wrap(fmt.Errorf(format, args...))
}

// WithPosition attaches a source position to the error.
func (e *Error) WithPosition(pos Position) *Error {
	d := e.derive()
	d.pos = &pos

	return d
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	d := e.derive()
	d.attrs = newAttrs

	return d
}

// Position identifies a location in source text. Line and Column are
// 1-based; Offset is the 0-based byte offset.
type Position struct {
	Offset int
	Line   int
	Column int
}

// String returns "line L, column C".
func (p Position) String() string {
	return "line " + strconv.Itoa(p.Line) + ", column " + strconv.Itoa(p.Column)
}
