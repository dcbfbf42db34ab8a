package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes the program in native syntax to the writer.
//
// With indent > 0 every statement is written on its own line and function
// bodies are indented by indent spaces per level. With indent == 0 the whole
// program is written on one line. The output parses back to an equivalent
// tree.
func (n *StatementList) Format(_ context.Context, w io.Writer, indent int) error {
	var b strings.Builder

	formatStatements(&b, n, indent, 0)

	_, err := fmt.Fprintln(w, b.String())

	return err
}

// FormatJSON writes the program as JSON to the writer.
func (n *StatementList) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(n, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(n)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the program as YAML to the writer.
func (n *StatementList) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, n.ToNative(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatTree writes one line per node, children indented beneath their
// parent, each annotated with its source position.
func (n *StatementList) FormatTree(_ context.Context, w io.Writer, indent int) error {
	if indent <= 0 {
		indent = 2
	}

	var b strings.Builder

	formatTree(&b, n, indent, 0)

	_, err := io.WriteString(w, b.String())

	return err
}

func formatStatements(b *strings.Builder, n *StatementList, indent, depth int) {
	for i, stmt := range n.Statements {
		if i > 0 {
			if indent > 0 {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}

		b.WriteString(strings.Repeat(" ", depth*indent))
		formatNode(b, stmt, indent, depth)
	}
}

func formatNode(b *strings.Builder, node Node, indent, depth int) {
	switch n := node.(type) {
	case *IntLiteral:
		b.WriteString(strconv.FormatInt(n.Value, 10))

	case *FloatLiteral:
		b.WriteString(floatLiteral(n.Value))

	case *NameRef:
		b.WriteString(n.Name)

	case *BinaryOp:
		formatNode(b, n.Left, indent, depth)
		b.WriteString(" " + n.Op.String() + " ")
		formatNode(b, n.Right, indent, depth)

	case *Assignment:
		b.WriteString(n.Name + " = ")
		formatNode(b, n.Value, indent, depth)

	case *FunctionDef:
		b.WriteString("function " + n.Name + "(" + strings.Join(n.Params, ", ") + ") {")

		if indent > 0 {
			b.WriteByte('\n')
			formatStatements(b, n.Body, indent, depth+1)
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", depth*indent))
		} else {
			b.WriteByte(' ')
			formatStatements(b, n.Body, indent, depth+1)
			b.WriteByte(' ')
		}

		b.WriteByte('}')

	case *FunctionCall:
		b.WriteString(n.Name + "(")

		for i, arg := range n.Args {
			if i > 0 {
				b.WriteString(", ")
			}

			formatNode(b, arg, indent, depth)
		}

		b.WriteByte(')')

	case *StatementList:
		formatStatements(b, n, indent, depth)

	default:
		b.WriteString("<unknown>")
	}
}

func formatTree(b *strings.Builder, node Node, indent, depth int) {
	pad := strings.Repeat(" ", depth*indent)
	pos := node.Position()
	loc := fmt.Sprintf(" [%d:%d]", pos.Line, pos.Column)

	switch n := node.(type) {
	case *IntLiteral:
		b.WriteString(pad + "IntLiteral " + strconv.FormatInt(n.Value, 10) + loc + "\n")

	case *FloatLiteral:
		b.WriteString(pad + "FloatLiteral " + floatLiteral(n.Value) + loc + "\n")

	case *NameRef:
		b.WriteString(pad + "NameRef " + n.Name + loc + "\n")

	case *BinaryOp:
		b.WriteString(pad + "BinaryOp " + n.Op.String() + loc + "\n")
		formatTree(b, n.Left, indent, depth+1)
		formatTree(b, n.Right, indent, depth+1)

	case *Assignment:
		b.WriteString(pad + "Assignment " + n.Name + loc + "\n")
		formatTree(b, n.Value, indent, depth+1)

	case *FunctionDef:
		b.WriteString(pad + "FunctionDef " + n.Name +
			"(" + strings.Join(n.Params, ", ") + ")" + loc + "\n")
		formatTree(b, n.Body, indent, depth+1)

	case *FunctionCall:
		b.WriteString(pad + "FunctionCall " + n.Name + loc + "\n")

		for _, arg := range n.Args {
			formatTree(b, arg, indent, depth+1)
		}

	case *StatementList:
		b.WriteString(pad + "StatementList" + loc + "\n")

		for _, stmt := range n.Statements {
			formatTree(b, stmt, indent, depth+1)
		}
	}
}

// floatLiteral renders v so that it lexes back as a float literal.
func floatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}

	return s
}
