package lang

import (
	"math"
	"strconv"
	"strings"
)

// Value is the result of evaluating a node.
//
// The set of values is closed: [Int], [Float], and [*Procedure].
type Value interface {
	// String renders the value the way the interactive driver prints it.
	String() string

	value()
}

// Int is a signed 64-bit integer value.
type Int int64

// Float is a 64-bit floating-point value.
type Float float64

// Procedure is a user-defined function. It is a first-class value that can
// be bound to any name.
//
// A Procedure does not capture the scope it was defined in. Free names in its
// body resolve through the scope chain of the caller at call time.
type Procedure struct {
	Name   string
	Params []string
	Body   *StatementList
}

func (Int) value()        {}
func (Float) value()      {}
func (*Procedure) value() {}

// String renders i as plain decimal digits.
func (i Int) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// String renders f with a fractional part, even when f is integral.
// Very large and very small magnitudes use exponent notation.
func (f Float) String() string {
	v := float64(f)

	switch {
	case math.IsNaN(v):
		return "nan"

	case math.IsInf(v, 1):
		return "inf"

	case math.IsInf(v, -1):
		return "-inf"
	}

	if abs := math.Abs(v); abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}

// String renders p as "<function name(a, b)>".
func (p *Procedure) String() string {
	return "<function " + p.Signature() + ">"
}

// Signature returns the procedure's name followed by its parenthesized
// parameter list, e.g. "add(a, b)".
func (p *Procedure) Signature() string {
	return p.Name + "(" + strings.Join(p.Params, ", ") + ")"
}

// Arity returns the number of parameters p declares.
func (p *Procedure) Arity() int { return len(p.Params) }

// Native converts v to a plain Go value: int64 for [Int], float64 for
// [Float], and the signature string for a [*Procedure].
func Native(v Value) any {
	switch v := v.(type) {
	case Int:
		return int64(v)

	case Float:
		return float64(v)

	case *Procedure:
		return v.Signature()

	default:
		return nil
	}
}
