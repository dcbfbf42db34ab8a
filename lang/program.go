package lang

import (
	"maps"
	"math"
	"slices"
)

// Program returns a program that recreates the top-level bindings when
// executed on an empty Interpreter.
//
// Procedures are emitted as definitions under the name they are bound to.
// Negative numbers are emitted as a subtraction from zero, and negative zero
// as a second assignment multiplying by 0.0. Non-finite floats
// have no literal form and are omitted. Program returns nil if nothing
// remains to emit.
func (in *Interpreter) Program() *StatementList {
	in.mu.Lock()
	defer in.mu.Unlock()

	return bindingsProgram(in.global.vars)
}

func bindingsProgram(vars map[string]Value) *StatementList {
	var stmts []Node

	for _, name := range slices.Sorted(maps.Keys(vars)) {
		stmts = append(stmts, bindingNodes(name, vars[name])...)
	}

	if len(stmts) == 0 {
		return nil
	}

	return &StatementList{Statements: stmts, Pos: stmts[0].Position()}
}

func bindingNodes(name string, v Value) []Node {
	switch v := v.(type) {
	case *Procedure:
		return []Node{&FunctionDef{Name: name, Params: v.Params, Body: v.Body}}

	case Int:
		return []Node{&Assignment{Name: name, Value: intNode(int64(v))}}

	case Float:
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}

		if f == 0 && math.Signbit(f) {
			// name = 0 - 1 name = name * 0.0
			return []Node{
				&Assignment{Name: name, Value: intNode(-1)},
				&Assignment{Name: name, Value: &BinaryOp{
					Op:    OpMul,
					Left:  &NameRef{Name: name},
					Right: &FloatLiteral{Value: 0},
				}},
			}
		}

		var value Node = &FloatLiteral{Value: f}
		if f < 0 {
			value = &BinaryOp{
				Op:    OpSub,
				Left:  &FloatLiteral{Value: 0},
				Right: &FloatLiteral{Value: -f},
			}
		}

		return []Node{&Assignment{Name: name, Value: value}}
	}

	return nil
}

func intNode(i int64) Node {
	switch {
	case i >= 0:
		return &IntLiteral{Value: i}

	case i == math.MinInt64:
		// 0 - MaxInt64 - 1
		return &BinaryOp{
			Op:    OpSub,
			Left:  intNode(-math.MaxInt64),
			Right: &IntLiteral{Value: 1},
		}

	default:
		return &BinaryOp{
			Op:    OpSub,
			Left:  &IntLiteral{Value: 0},
			Right: &IntLiteral{Value: -i},
		}
	}
}
