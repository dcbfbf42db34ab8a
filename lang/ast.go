package lang

import "iter"

// Node is an element of the abstract syntax tree.
//
// The set of nodes is closed: only the types in this file implement Node.
// Nodes are immutable once constructed by the parser.
type Node interface {
	// Position returns the location of the node's first token.
	Position() Position

	node()
}

// IntLiteral is an integer constant.
type IntLiteral struct {
	Value int64
	Pos   Position
}

// FloatLiteral is a floating-point constant.
type FloatLiteral struct {
	Value float64
	Pos   Position
}

// NameRef is a reference to a binding, resolved at evaluation time through
// the scope chain.
type NameRef struct {
	Name string
	Pos  Position
}

// BinaryOp applies an arithmetic operator to two operands.
type BinaryOp struct {
	Op    Operator
	Left  Node
	Right Node
	Pos   Position
}

// Assignment binds Name in the current scope's local mapping.
type Assignment struct {
	Name  string
	Value Node
	Pos   Position
}

// FunctionDef defines a procedure and binds it to Name in the current
// scope's local mapping.
type FunctionDef struct {
	Name   string
	Params []string
	Body   *StatementList
	Pos    Position
}

// FunctionCall invokes the procedure bound to Name.
type FunctionCall struct {
	Name string
	Args []Node
	Pos  Position
}

// StatementList is a non-empty sequence of statements: a program or a
// function body. Its value is the value of its last statement.
type StatementList struct {
	Statements []Node
	Pos        Position
}

func (n *IntLiteral) Position() Position    { return n.Pos }
func (n *FloatLiteral) Position() Position  { return n.Pos }
func (n *NameRef) Position() Position       { return n.Pos }
func (n *BinaryOp) Position() Position      { return n.Pos }
func (n *Assignment) Position() Position    { return n.Pos }
func (n *FunctionDef) Position() Position   { return n.Pos }
func (n *FunctionCall) Position() Position  { return n.Pos }
func (n *StatementList) Position() Position { return n.Pos }

func (*IntLiteral) node()    {}
func (*FloatLiteral) node()  {}
func (*NameRef) node()       {}
func (*BinaryOp) node()      {}
func (*Assignment) node()    {}
func (*FunctionDef) node()   {}
func (*FunctionCall) node()  {}
func (*StatementList) node() {}

// All returns an iterator over the statements in the list.
func (n *StatementList) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for _, stmt := range n.Statements {
			if !yield(stmt) {
				return
			}
		}
	}
}

// Operator is an arithmetic operator.
type Operator int

const (
	OpAdd Operator = iota
	OpSub
	OpMul
	OpDiv
)

// String returns the operator's source symbol.
func (op Operator) String() string {
	switch op {
	case OpAdd:
		return "+"

	case OpSub:
		return "-"

	case OpMul:
		return "*"

	case OpDiv:
		return "/"

	default:
		return "?"
	}
}

// Name returns a readable operator name, used in structured output.
func (op Operator) Name() string {
	switch op {
	case OpAdd:
		return "Add"

	case OpSub:
		return "Sub"

	case OpMul:
		return "Mul"

	case OpDiv:
		return "Div"

	default:
		return "Unknown"
	}
}

// precedence returns the binding strength of op; higher binds tighter.
func (op Operator) precedence() int {
	switch op {
	case OpMul, OpDiv:
		return 2

	default:
		return 1
	}
}

// binaryOperators maps operator tokens to operators.
var binaryOperators = map[Kind]Operator{
	KindPlus:   OpAdd,
	KindMinus:  OpSub,
	KindTimes:  OpMul,
	KindDivide: OpDiv,
}
