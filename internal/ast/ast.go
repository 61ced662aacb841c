// Package ast defines the expression abstract syntax tree produced by the
// parser (§3 AST node / §4.3). Every concrete node type implements Node;
// equality across the tree is structural via reflect.DeepEqual, which the
// package leaves to callers rather than reimplementing per node.
package ast

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-ticore/internal/lexer"
)

// Node is the common interface satisfied by every AST node.
type Node interface {
	// Pos returns the source position of the node's leading token.
	Pos() lexer.Position
	// String renders the node back to a readable expression form, used by
	// diagnostics and golden tests, and by the evaluator's seq, which
	// re-parses its first argument's rendered text.
	String() string
}

// Number is a literal numeric constant.
type Number struct {
	Value float64
	Token lexer.Token
}

func (n *Number) Pos() lexer.Position { return n.Token.Pos }
func (n *Number) String() string      { return trimFloat(n.Value) }

// StringLit is a literal string constant.
type StringLit struct {
	Value string
	Token lexer.Token
}

func (s *StringLit) Pos() lexer.Position { return s.Token.Pos }
func (s *StringLit) String() string      { return fmt.Sprintf("%q", s.Value) }

// ConstantKind distinguishes the four built-in named constants.
type ConstantKind int

const (
	ConstPi ConstantKind = iota
	ConstEulerE
	ConstImaginaryI
	ConstAns
)

// Constant is a reference to one of the built-in named constants.
type Constant struct {
	Kind  ConstantKind
	Token lexer.Token
}

func (c *Constant) Pos() lexer.Position { return c.Token.Pos }
func (c *Constant) String() string {
	switch c.Kind {
	case ConstPi:
		return "pi"
	case ConstEulerE:
		return "e"
	case ConstImaginaryI:
		return "i"
	default:
		return "Ans"
	}
}

// Variable is a reference to a single-letter (or greek) scalar variable.
type Variable struct {
	Name  string
	Token lexer.Token
}

func (v *Variable) Pos() lexer.Position { return v.Token.Pos }
func (v *Variable) String() string      { return v.Name }

// ListVar is a bare reference to a named list (no element access).
type ListVar struct {
	Name  string
	Token lexer.Token
}

func (l *ListVar) Pos() lexer.Position { return l.Token.Pos }
func (l *ListVar) String() string      { return l.Name }

// MatrixVar is a bare reference to a named matrix.
type MatrixVar struct {
	Name  string
	Token lexer.Token
}

func (m *MatrixVar) Pos() lexer.Position { return m.Token.Pos }
func (m *MatrixVar) String() string      { return "[" + m.Name + "]" }

// StringVar is a reference to one of the ten string-variable slots.
type StringVar struct {
	Index int
	Token lexer.Token
}

func (s *StringVar) Pos() lexer.Position { return s.Token.Pos }
func (s *StringVar) String() string      { return fmt.Sprintf("Str%d", s.Index) }

// FunctionSlot is a bare reference to one of the ten Y-slot expressions.
type FunctionSlot struct {
	Index int
	Token lexer.Token
}

func (f *FunctionSlot) Pos() lexer.Position { return f.Token.Pos }
func (f *FunctionSlot) String() string      { return fmt.Sprintf("Y%d", f.Index) }

// BinaryOp names an infix operator.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
	OpNPr
	OpNCr
	OpEq
	OpNotEq
	OpLt
	OpGt
	OpLe
	OpGe
	OpAnd
	OpOr
	OpXor
)

var binaryOpSymbols = map[BinaryOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpPow: "^",
	OpNPr: "nPr", OpNCr: "nCr", OpEq: "=", OpNotEq: "!=",
	OpLt: "<", OpGt: ">", OpLe: "<=", OpGe: ">=",
	OpAnd: "and", OpOr: "or", OpXor: "xor",
}

// Binary is an infix binary expression.
type Binary struct {
	Op    BinaryOp
	Left  Node
	Right Node
	Token lexer.Token // operator token
}

func (b *Binary) Pos() lexer.Position { return b.Left.Pos() }
func (b *Binary) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left.String(), binaryOpSymbols[b.Op], b.Right.String())
}

// UnaryPrefixOp names a prefix unary operator.
type UnaryPrefixOp int

const (
	OpNegate UnaryPrefixOp = iota
	OpNot
)

// UnaryPrefix is a prefix unary expression (Negate, Not).
type UnaryPrefix struct {
	Op      UnaryPrefixOp
	Operand Node
	Token   lexer.Token
}

func (u *UnaryPrefix) Pos() lexer.Position { return u.Token.Pos }
func (u *UnaryPrefix) String() string {
	if u.Op == OpNot {
		return fmt.Sprintf("(not %s)", u.Operand.String())
	}
	return fmt.Sprintf("(-%s)", u.Operand.String())
}

// UnaryPostfixOp names a postfix unary operator.
type UnaryPostfixOp int

const (
	OpFactorial UnaryPostfixOp = iota
	OpSquare
	OpCube
	OpInverse
	OpDegToRad
	OpPercent
)

// UnaryPostfix is a postfix unary expression.
type UnaryPostfix struct {
	Op      UnaryPostfixOp
	Operand Node
	Token   lexer.Token
}

func (u *UnaryPostfix) Pos() lexer.Position { return u.Operand.Pos() }
func (u *UnaryPostfix) String() string {
	sym := map[UnaryPostfixOp]string{
		OpFactorial: "!", OpSquare: "^2", OpCube: "^3",
		OpInverse: "^-1", OpDegToRad: "°", OpPercent: "%",
	}[u.Op]
	return fmt.Sprintf("(%s%s)", u.Operand.String(), sym)
}

// FunctionCall invokes a builtin function by id (the lower-cased name the
// lexer recognized) with zero or more argument expressions.
type FunctionCall struct {
	Name  string
	Args  []Node
	Token lexer.Token // FUNCTION token
}

func (f *FunctionCall) Pos() lexer.Position { return f.Token.Pos }
func (f *FunctionCall) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.Name, strings.Join(parts, ", "))
}

// ListLiteral is a `{...}` literal list expression.
type ListLiteral struct {
	Elements []Node
	Token    lexer.Token // LBRACE
}

func (l *ListLiteral) Pos() lexer.Position { return l.Token.Pos }
func (l *ListLiteral) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MatrixLiteral is a `[[...]...]` literal matrix expression; each Rows
// entry is itself a row of element expressions.
type MatrixLiteral struct {
	Rows  [][]Node
	Token lexer.Token // outer LBRACKET
}

func (m *MatrixLiteral) Pos() lexer.Position { return m.Token.Pos }
func (m *MatrixLiteral) String() string {
	rows := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		parts := make([]string, len(row))
		for j, e := range row {
			parts[j] = e.String()
		}
		rows[i] = "[" + strings.Join(parts, ", ") + "]"
	}
	return "[" + strings.Join(rows, "") + "]"
}

// ElementAccess indexes into a list, matrix, or function slot target.
// One index means list or function-slot access; two means matrix access.
type ElementAccess struct {
	Target  Node
	Indices []Node
	Token   lexer.Token // LPAREN
}

func (e *ElementAccess) Pos() lexer.Position { return e.Target.Pos() }
func (e *ElementAccess) String() string {
	parts := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		parts[i] = idx.String()
	}
	return fmt.Sprintf("%s(%s)", e.Target.String(), strings.Join(parts, ", "))
}

// Store is `expr -> target`: evaluate expr, assign it to target.
type Store struct {
	Expr   Node
	Target Node
	Token  lexer.Token // STORE
}

func (s *Store) Pos() lexer.Position { return s.Expr.Pos() }
func (s *Store) String() string {
	return fmt.Sprintf("%s->%s", s.Expr.String(), s.Target.String())
}

// ImplicitMul is a multiplication inserted by the tokenizer between two
// adjacent value-producing expressions with no written operator.
type ImplicitMul struct {
	Left  Node
	Right Node
}

func (i *ImplicitMul) Pos() lexer.Position { return i.Left.Pos() }
func (i *ImplicitMul) String() string {
	return fmt.Sprintf("(%s %s)", i.Left.String(), i.Right.String())
}

// trimFloat renders a float64 the way a calculator would echo a literal
// back: no trailing ".0" for integral values, shortest round-trip form
// otherwise.
func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}
