package lang

import (
	"context"
	"log/slog"
)

// Eval evaluates node against scope and returns its value.
//
// Assignments and function definitions write to the local mapping of the
// scope they are evaluated in. A nil scope is replaced by a fresh root scope.
//
// Evaluation stops at the first error. Bindings made by statements that
// completed before the error remain in scope.
func Eval(ctx context.Context, node Node, scope *Scope, opts ...Option) (Value, error) {
	if scope == nil {
		scope = NewScope(nil)
	}

	e := &evaluator{
		ctx: ctx,
		cfg: makeConfig(opts...),
	}

	return e.eval(node, scope)
}

// evaluator holds the state for one evaluation.
type evaluator struct {
	ctx   context.Context
	cfg   config
	depth int // number of active procedure calls
}

func (e *evaluator) eval(node Node, scope *Scope) (Value, error) {
	switch n := node.(type) {
	case *IntLiteral:
		return Int(n.Value), nil

	case *FloatLiteral:
		return Float(n.Value), nil

	case *NameRef:
		return e.evalName(n, scope)

	case *BinaryOp:
		return e.evalBinary(n, scope)

	case *Assignment:
		return e.evalAssignment(n, scope)

	case *FunctionDef:
		return e.evalFunctionDef(n, scope)

	case *FunctionCall:
		return e.evalCall(n, scope)

	case *StatementList:
		return e.evalStatements(n, scope)

	default:
		return nil, ErrInternal.Wrapf("%T", node)
	}
}

func (e *evaluator) evalName(n *NameRef, scope *Scope) (Value, error) {
	v, ok := scope.Lookup(n.Name)
	if !ok {
		return nil, ErrUndefinedName.WithPosition(n.Pos).
			Wrapf("%s", n.Name).
			With(slog.String("name", n.Name))
	}

	return v, nil
}

func (e *evaluator) evalBinary(n *BinaryOp, scope *Scope) (Value, error) {
	left, err := e.eval(n.Left, scope)
	if err != nil {
		return nil, err
	}

	right, err := e.eval(n.Right, scope)
	if err != nil {
		return nil, err
	}

	v, aerr := arithmetic(n.Op, left, right)
	if aerr != nil {
		return nil, aerr.WithPosition(n.Pos)
	}

	return v, nil
}

func (e *evaluator) evalAssignment(n *Assignment, scope *Scope) (Value, error) {
	v, err := e.eval(n.Value, scope)
	if err != nil {
		return nil, err
	}

	scope.Define(n.Name, v)

	if e.cfg.logger.Tracing(e.ctx) {
		e.cfg.logger.TraceContext(e.ctx, "assign",
			slog.String("name", n.Name),
			slog.String("value", v.String()),
			slog.Int("scope_depth", scope.Depth()),
		)
	}

	return v, nil
}

func (e *evaluator) evalFunctionDef(n *FunctionDef, scope *Scope) (Value, error) {
	proc := &Procedure{
		Name:   n.Name,
		Params: n.Params,
		Body:   n.Body,
	}

	scope.Define(n.Name, proc)

	e.cfg.logger.TraceContext(e.ctx, "define",
		slog.String("function", proc.Signature()),
		slog.Int("scope_depth", scope.Depth()),
	)

	return proc, nil
}

// evalCall invokes a procedure. Arguments are evaluated left to right in the
// calling scope, then bound in a fresh call scope whose parent is the calling
// scope. The call scope is discarded when the body returns.
func (e *evaluator) evalCall(n *FunctionCall, scope *Scope) (Value, error) {
	if err := e.ctx.Err(); err != nil {
		return nil, ErrInterrupted.WithPosition(n.Pos).Wrap(err)
	}

	v, ok := scope.Lookup(n.Name)

	proc, isProc := v.(*Procedure)
	if !ok || !isProc {
		return nil, ErrUndefinedFunction.WithPosition(n.Pos).
			Wrapf("%s", n.Name).
			With(slog.String("name", n.Name))
	}

	args := make([]Value, 0, len(n.Args))

	for _, arg := range n.Args {
		v, err := e.eval(arg, scope)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	if len(args) != proc.Arity() {
		return nil, ErrArity.WithPosition(n.Pos).
			Wrapf("%s expects %d argument(s), received %d",
				n.Name, proc.Arity(), len(args)).
			With(
				slog.String("name", n.Name),
				slog.Int("expected", proc.Arity()),
				slog.Int("received", len(args)),
			)
	}

	if e.depth >= e.cfg.maxCallDepth {
		return nil, ErrCallDepth.WithPosition(n.Pos).
			Wrapf("%s", n.Name).
			With(
				slog.String("name", n.Name),
				slog.Int("max_call_depth", e.cfg.maxCallDepth),
			)
	}

	call := NewScope(scope)
	for i, param := range proc.Params {
		call.Define(param, args[i])
	}

	e.depth++
	defer func() { e.depth-- }()

	if e.cfg.logger.Tracing(e.ctx) {
		e.cfg.logger.TraceContext(e.ctx, "call",
			slog.String("function", proc.Signature()),
			slog.Int("call_depth", e.depth),
		)
	}

	return e.evalStatements(proc.Body, call)
}

func (e *evaluator) evalStatements(n *StatementList, scope *Scope) (Value, error) {
	var last Value

	for stmt := range n.All() {
		v, err := e.eval(stmt, scope)
		if err != nil {
			return nil, err
		}

		last = v
	}

	if last == nil {
		return nil, ErrInternal.WithPosition(n.Pos).Wrapf("empty statement list")
	}

	return last, nil
}

// arithmetic applies op to two numeric operands.
//
// Two [Int] operands produce an [Int] for addition, subtraction, and
// multiplication (wrapping on overflow). Division is true division: it
// produces an [Int] only when the quotient is exact, otherwise a [Float].
// Any [Float] operand promotes the operation to floating point. A zero
// divisor is an error for both integer and floating-point division.
func arithmetic(op Operator, left, right Value) (Value, *Error) {
	for _, v := range [...]Value{left, right} {
		switch v.(type) {
		case Int, Float:
		default:
			return nil, ErrOperandType.
				Wrapf("%s %s %s", left, op, right).
				With(slog.String("operator", op.String()))
		}
	}

	li, lok := left.(Int)
	ri, rok := right.(Int)

	if lok && rok {
		switch op {
		case OpAdd:
			return li + ri, nil

		case OpSub:
			return li - ri, nil

		case OpMul:
			return li * ri, nil

		case OpDiv:
			if ri == 0 {
				return nil, ErrArithmetic.Wrapf("%s / 0", li)
			}

			if li%ri == 0 {
				return li / ri, nil
			}

			return Float(float64(li) / float64(ri)), nil
		}
	}

	lf, rf := toFloat(left), toFloat(right)

	switch op {
	case OpAdd:
		return lf + rf, nil

	case OpSub:
		return lf - rf, nil

	case OpMul:
		return lf * rf, nil

	case OpDiv:
		if rf == 0 {
			return nil, ErrArithmetic.Wrapf("%s / %s", left, right)
		}

		return lf / rf, nil
	}

	return nil, ErrInternal.Wrapf("operator %d", int(op))
}

func toFloat(v Value) Float {
	switch v := v.(type) {
	case Int:
		return Float(v)

	case Float:
		return v

	default:
		return 0
	}
}
