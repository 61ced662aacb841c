// Package program implements the §4.7 program parser and §4.8 program
// interpreter: a flat statement list executed with a program counter over
// a shared State, suspending on an injected I/O collaborator (§6).
package program

import (
	"fmt"
	"strings"

	"github.com/cwbudde/go-ticore/internal/ast"
)

// Statement is the common interface satisfied by every program statement
// node, mirroring the expression AST's Node interface but kept in its own
// package since program statements have no counterpart in spec.md's
// expression grammar.
type Statement interface {
	stmtNode()
	String() string
}

// ExpressionStmt is a bare expression line; its result is assigned to Ans
// (§4.8 "Expression at statement level").
type ExpressionStmt struct {
	Text string
	Expr ast.Node
}

func (*ExpressionStmt) stmtNode()        {}
func (s *ExpressionStmt) String() string { return s.Text }

// DisplayStmt is "Disp expr[,expr...]".
type DisplayStmt struct {
	Exprs []ast.Node
}

func (*DisplayStmt) stmtNode() {}
func (s *DisplayStmt) String() string {
	return "Disp " + joinNodes(s.Exprs)
}

// OutputStmt is "Output(row,col,text)".
type OutputStmt struct {
	Row, Col ast.Node
	Text     ast.Node
}

func (*OutputStmt) stmtNode() {}
func (s *OutputStmt) String() string {
	return fmt.Sprintf("Output(%s,%s,%s)", s.Row, s.Col, s.Text)
}

// InputStmt is "Input [\"prompt\",]target". Target names a scalar
// variable, list, or string variable by its surface name.
type InputStmt struct {
	Prompt ast.Node // nil when no prompt literal was given
	Target string
}

func (*InputStmt) stmtNode() {}
func (s *InputStmt) String() string {
	if s.Prompt != nil {
		return fmt.Sprintf("Input %s,%s", s.Prompt, s.Target)
	}
	return "Input " + s.Target
}

// PromptStmt is "Prompt A,B,C": prompts for each named scalar in turn.
type PromptStmt struct {
	Names []string
}

func (*PromptStmt) stmtNode()        {}
func (s *PromptStmt) String() string { return "Prompt " + strings.Join(s.Names, ",") }

// ClrHomeStmt is the bare "ClrHome" statement.
type ClrHomeStmt struct{}

func (*ClrHomeStmt) stmtNode()      {}
func (*ClrHomeStmt) String() string { return "ClrHome" }

// ClrDrawStmt is the bare "ClrDraw" statement.
type ClrDrawStmt struct{}

func (*ClrDrawStmt) stmtNode()      {}
func (*ClrDrawStmt) String() string { return "ClrDraw" }

// IfStmt opens a conditional block; the matching Else/End is located at
// parse time via resolveBlocks (§4.7/§4.8 depth tracking).
type IfStmt struct {
	Cond       ast.Node
	ElseIndex  int // -1 if no Else
	EndIndex   int
}

func (*IfStmt) stmtNode()        {}
func (s *IfStmt) String() string { return "If " + s.Cond.String() }

// ThenStmt is a no-op marker in normal (non-skipping) execution.
type ThenStmt struct{}

func (*ThenStmt) stmtNode()      {}
func (*ThenStmt) String() string { return "Then" }

// ElseStmt marks the else branch of the nearest enclosing If. EndIndex is
// resolved at parse time so normal execution reaching Else after running
// the Then-branch can skip straight to the matching End (§4.8).
type ElseStmt struct {
	EndIndex int
}

func (*ElseStmt) stmtNode()      {}
func (*ElseStmt) String() string { return "Else" }

// EndStmt closes the nearest enclosing If/For/While/Repeat block.
type EndStmt struct{}

func (*EndStmt) stmtNode()      {}
func (*EndStmt) String() string { return "End" }

// ForStmt is "For(var,start,end[,step])"; EndIndex is resolved at parse
// time to the matching End statement.
type ForStmt struct {
	Var              string
	Start, End, Step ast.Node
	EndIndex         int
}

func (*ForStmt) stmtNode() {}
func (s *ForStmt) String() string {
	if s.Step != nil {
		return fmt.Sprintf("For(%s,%s,%s,%s)", s.Var, s.Start, s.End, s.Step)
	}
	return fmt.Sprintf("For(%s,%s,%s)", s.Var, s.Start, s.End)
}

// WhileStmt is "While cond"; EndIndex resolved at parse time.
type WhileStmt struct {
	Cond     ast.Node
	EndIndex int
}

func (*WhileStmt) stmtNode()        {}
func (s *WhileStmt) String() string { return "While " + s.Cond.String() }

// RepeatStmt is "Repeat cond"; body runs at least once, exits when Cond
// becomes non-zero. EndIndex resolved at parse time.
type RepeatStmt struct {
	Cond     ast.Node
	EndIndex int
}

func (*RepeatStmt) stmtNode()        {}
func (s *RepeatStmt) String() string { return "Repeat " + s.Cond.String() }

// LabelStmt is "Lbl name".
type LabelStmt struct {
	Name string
}

func (*LabelStmt) stmtNode()        {}
func (s *LabelStmt) String() string { return "Lbl " + s.Name }

// GotoStmt is "Goto name".
type GotoStmt struct {
	Name string
}

func (*GotoStmt) stmtNode()        {}
func (s *GotoStmt) String() string { return "Goto " + s.Name }

// MenuItem pairs a displayed label expression with the Goto-style target
// label name (§4.7: "Menu argument count must be odd").
type MenuItem struct {
	Label  ast.Node
	Target string
}

// MenuStmt is "Menu(title,label1,target1[,label2,target2...])".
type MenuStmt struct {
	Title ast.Node
	Items []MenuItem
}

func (*MenuStmt) stmtNode() {}
func (s *MenuStmt) String() string {
	var sb strings.Builder
	sb.WriteString("Menu(")
	sb.WriteString(s.Title.String())
	for _, it := range s.Items {
		sb.WriteString(",")
		sb.WriteString(it.Label.String())
		sb.WriteString(",")
		sb.WriteString(it.Target)
	}
	sb.WriteString(")")
	return sb.String()
}

// StopStmt halts program execution (§4.8: sets pc past the end).
type StopStmt struct{}

func (*StopStmt) stmtNode()      {}
func (*StopStmt) String() string { return "Stop" }

// ReturnStmt returns from a ProgramCall, or halts a top-level program.
type ReturnStmt struct{}

func (*ReturnStmt) stmtNode()      {}
func (*ReturnStmt) String() string { return "Return" }

// PauseStmt is "Pause [expr]"; suspends until resumed by the I/O
// collaborator.
type PauseStmt struct {
	Expr ast.Node // nil for a bare Pause
}

func (*PauseStmt) stmtNode() {}
func (s *PauseStmt) String() string {
	if s.Expr != nil {
		return "Pause " + s.Expr.String()
	}
	return "Pause"
}

// GetKeyStmt evaluates getKey() and assigns the result to Ans.
type GetKeyStmt struct{}

func (*GetKeyStmt) stmtNode()      {}
func (*GetKeyStmt) String() string { return "getKey" }

// ProgramCallStmt is "prgmNAME": invoke another stored program.
type ProgramCallStmt struct {
	Name string
}

func (*ProgramCallStmt) stmtNode()        {}
func (s *ProgramCallStmt) String() string { return "prgm" + s.Name }

// LineStmt is "Line(x1,y1,x2,y2)".
type LineStmt struct {
	X1, Y1, X2, Y2 ast.Node
}

func (*LineStmt) stmtNode() {}
func (s *LineStmt) String() string {
	return fmt.Sprintf("Line(%s,%s,%s,%s)", s.X1, s.Y1, s.X2, s.Y2)
}

// CircleStmt is "Circle(x,y,r)".
type CircleStmt struct {
	X, Y, R ast.Node
}

func (*CircleStmt) stmtNode() {}
func (s *CircleStmt) String() string {
	return fmt.Sprintf("Circle(%s,%s,%s)", s.X, s.Y, s.R)
}

// TextStmt is "Text(row,col,text)".
type TextStmt struct {
	Row, Col ast.Node
	Text     ast.Node
}

func (*TextStmt) stmtNode() {}
func (s *TextStmt) String() string {
	return fmt.Sprintf("Text(%s,%s,%s)", s.Row, s.Col, s.Text)
}

// PointOnStmt is "Pt-On(x,y)".
type PointOnStmt struct {
	X, Y ast.Node
}

func (*PointOnStmt) stmtNode() {}
func (s *PointOnStmt) String() string {
	return fmt.Sprintf("Pt-On(%s,%s)", s.X, s.Y)
}

// PointOffStmt is "Pt-Off(x,y)".
type PointOffStmt struct {
	X, Y ast.Node
}

func (*PointOffStmt) stmtNode() {}
func (s *PointOffStmt) String() string {
	return fmt.Sprintf("Pt-Off(%s,%s)", s.X, s.Y)
}

func joinNodes(nodes []ast.Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ",")
}

// Program is a parsed program: its flat statement list plus the label
// name to statement-index map built by the parser (§4.7).
//
// blockOwner/blockKind record, for every End statement's index, which
// opener statement (If/For/While/Repeat) it closes — resolved once at
// parse time so the interpreter can drive loop iteration purely from pc
// jumps without a separate runtime frame stack.
type Program struct {
	Statements []Statement
	Labels     map[string]int
	blockOwner map[int]int
	blockKind  map[int]string
}
