package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Sprint renders a node as a parenthesized prefix form, e.g.
// `(* (- 123) (group 45.67))`.
func Sprint(node Node) string {
	var b strings.Builder
	writeNode(&b, node)
	return b.String()
}

// SprintProgram renders one statement per line.
func SprintProgram(statements []Stmt) string {
	lines := make([]string, 0, len(statements))
	for _, stmt := range statements {
		lines = append(lines, Sprint(stmt))
	}
	return strings.Join(lines, "\n")
}

func writeNode(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Literal:
		b.WriteString(formatLiteral(n.Value))
	case *Grouping:
		parenthesize(b, "group", n.Expression)
	case *Unary:
		parenthesize(b, n.Operator.Lexeme, n.Right)
	case *Binary:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Logical:
		parenthesize(b, n.Operator.Lexeme, n.Left, n.Right)
	case *Variable:
		b.WriteString(n.Name.Lexeme)
	case *Assign:
		parenthesize(b, "= "+n.Name.Lexeme, n.Value)
	case *Call:
		nodes := make([]Node, 0, len(n.Arguments)+1)
		nodes = append(nodes, n.Callee)
		for _, arg := range n.Arguments {
			nodes = append(nodes, arg)
		}
		parenthesize(b, "call", nodes...)
	case *Get:
		parenthesize(b, "."+n.Name.Lexeme, n.Object)
	case *Set:
		parenthesize(b, "set ."+n.Name.Lexeme, n.Object, n.Value)
	case *This:
		b.WriteString("this")
	case *Super:
		b.WriteString("(super " + n.Method.Lexeme + ")")
	case *Expression:
		parenthesize(b, ";", n.Expression)
	case *Print:
		parenthesize(b, "print", n.Expression)
	case *Var:
		if n.Initializer == nil {
			b.WriteString("(var " + n.Name.Lexeme + ")")
			return
		}
		parenthesize(b, "var "+n.Name.Lexeme, n.Initializer)
	case *Block:
		nodes := make([]Node, 0, len(n.Statements))
		for _, stmt := range n.Statements {
			nodes = append(nodes, stmt)
		}
		parenthesize(b, "block", nodes...)
	case *If:
		if n.ElseBranch == nil {
			parenthesize(b, "if", n.Condition, n.ThenBranch)
			return
		}
		parenthesize(b, "if-else", n.Condition, n.ThenBranch, n.ElseBranch)
	case *While:
		parenthesize(b, "while", n.Condition, n.Body)
	case *Function:
		writeFunction(b, "fun", n)
	case *Return:
		if n.Value == nil {
			b.WriteString("(return)")
			return
		}
		parenthesize(b, "return", n.Value)
	case *Class:
		b.WriteString("(class " + n.Name.Lexeme)
		if n.Superclass != nil {
			b.WriteString(" < " + n.Superclass.Name.Lexeme)
		}
		for _, method := range n.Methods {
			b.WriteByte(' ')
			writeFunction(b, "method", method)
		}
		b.WriteByte(')')
	case nil:
		b.WriteString("nil")
	default:
		fmt.Fprintf(b, "<%s>", node.NodeType())
	}
}

func writeFunction(b *strings.Builder, label string, fn *Function) {
	params := make([]string, 0, len(fn.Params))
	for _, param := range fn.Params {
		params = append(params, param.Lexeme)
	}
	nodes := make([]Node, 0, len(fn.Body))
	for _, stmt := range fn.Body {
		nodes = append(nodes, stmt)
	}
	parenthesize(b, fmt.Sprintf("%s %s(%s)", label, fn.Name.Lexeme, strings.Join(params, " ")), nodes...)
}

func parenthesize(b *strings.Builder, name string, nodes ...Node) {
	b.WriteByte('(')
	b.WriteString(name)
	for _, node := range nodes {
		b.WriteByte(' ')
		writeNode(b, node)
	}
	b.WriteByte(')')
}

func formatLiteral(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
