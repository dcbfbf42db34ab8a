package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for StatementList.
func (n *StatementList) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.ToNative())
}

// ToNative converts the program to a tree of native Go maps and slices.
// Each node becomes a map with a "type" key naming the node kind.
func (n *StatementList) ToNative() any {
	return nodeToNative(n)
}

// BindingsToNative converts a set of bindings to native Go values with
// [Native].
func BindingsToNative(bindings map[string]Value) map[string]any {
	result := make(map[string]any, len(bindings))

	for name, v := range bindings {
		result[name] = Native(v)
	}

	return result
}

func nodeToNative(node Node) map[string]any {
	pos := node.Position()
	result := map[string]any{
		"line":   pos.Line,
		"column": pos.Column,
	}

	switch n := node.(type) {
	case *IntLiteral:
		result["type"] = "IntLiteral"
		result["value"] = n.Value

	case *FloatLiteral:
		result["type"] = "FloatLiteral"
		result["value"] = n.Value

	case *NameRef:
		result["type"] = "NameRef"
		result["name"] = n.Name

	case *BinaryOp:
		result["type"] = "BinaryOp"
		result["op"] = n.Op.Name()
		result["left"] = nodeToNative(n.Left)
		result["right"] = nodeToNative(n.Right)

	case *Assignment:
		result["type"] = "Assignment"
		result["name"] = n.Name
		result["value"] = nodeToNative(n.Value)

	case *FunctionDef:
		params := make([]any, len(n.Params))
		for i, p := range n.Params {
			params[i] = p
		}

		result["type"] = "FunctionDef"
		result["name"] = n.Name
		result["params"] = params
		result["body"] = nodeToNative(n.Body)

	case *FunctionCall:
		args := make([]any, len(n.Args))
		for i, arg := range n.Args {
			args[i] = nodeToNative(arg)
		}

		result["type"] = "FunctionCall"
		result["name"] = n.Name
		result["args"] = args

	case *StatementList:
		stmts := make([]any, len(n.Statements))
		for i, stmt := range n.Statements {
			stmts[i] = nodeToNative(stmt)
		}

		result["type"] = "StatementList"
		result["statements"] = stmts

	default:
		result["type"] = "Unknown"
	}

	return result
}
