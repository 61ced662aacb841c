package program

import (
	"strconv"
	"strings"

	"github.com/cwbudde/go-ticore/internal/ast"
	"github.com/cwbudde/go-ticore/internal/errors"
	"github.com/cwbudde/go-ticore/internal/eval"
	"github.com/cwbudde/go-ticore/internal/state"
	"github.com/cwbudde/go-ticore/internal/value"
)

func parseFloatLiteral(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Interpreter executes a parsed Program's flat statement list against a
// shared State, suspending at I/O statements on the injected collaborator
// (§4.8). Loop bodies are driven by pc jumps alone (no separate runtime
// frame stack): each For/While/Repeat's matching End was resolved at parse
// time, so the interpreter re-checks the loop's termination condition and
// either jumps pc back into the body or falls through, which produces the
// same observable iteration behavior as a nested per-loop execution
// frame without needing one.
type Interpreter struct {
	st       *state.State
	io       IO
	forState map[*ForStmt]forBounds
}

// forBounds caches a For statement's end/step, evaluated once at loop
// entry (§4.8: "evaluate start/end/step"), so a mutated loop variable in
// the body cannot perturb the bound the termination check re-reads.
type forBounds struct {
	end, step float64
}

// NewInterpreter builds an interpreter over st, suspending on io for every
// I/O statement. A nil io is replaced with NoopIO (§6).
func NewInterpreter(st *state.State, io IO) *Interpreter {
	if io == nil {
		io = NoopIO{}
	}
	return &Interpreter{st: st, io: io, forState: make(map[*ForStmt]forBounds)}
}

// Run executes prog from its first statement to completion (Stop, Return,
// or falling off the end), or until cancellation or an unrecovered error
// (§7: the interpreter never catches a failure; a failed statement aborts
// the program).
func (ip *Interpreter) Run(prog *Program) error {
	return ip.runFrom(prog, 0)
}

func (ip *Interpreter) runFrom(prog *Program, start int) error {
	pc := start
	stmts := prog.Statements
	for pc >= 0 && pc < len(stmts) {
		if ip.st.Cancelled() {
			return errors.NewBreak()
		}

		next := pc + 1
		var err error
		next, err = ip.step(prog, pc, next)
		if err != nil {
			return err
		}
		pc = next
	}
	return nil
}

// step executes the statement at pc and returns the pc to resume at
// (defaultNext unless the statement redirects control flow).
func (ip *Interpreter) step(prog *Program, pc int, defaultNext int) (int, error) {
	stmts := prog.Statements
	switch s := stmts[pc].(type) {

	case *ExpressionStmt:
		v, err := eval.Eval(s.Expr, ip.st)
		if err != nil {
			return 0, err
		}
		ip.st.SetAns(v)
		return defaultNext, nil

	case *DisplayStmt:
		parts := make([]string, len(s.Exprs))
		for i, e := range s.Exprs {
			v, err := eval.Eval(e, ip.st)
			if err != nil {
				return 0, err
			}
			parts[i] = v.String()
		}
		ip.io.Display(strings.Join(parts, " "))
		return defaultNext, nil

	case *OutputStmt:
		row, err := ip.evalInt(s.Row)
		if err != nil {
			return 0, err
		}
		col, err := ip.evalInt(s.Col)
		if err != nil {
			return 0, err
		}
		v, err := eval.Eval(s.Text, ip.st)
		if err != nil {
			return 0, err
		}
		ip.io.Output(row, col, v.String())
		return defaultNext, nil

	case *InputStmt:
		prompt := ""
		if s.Prompt != nil {
			v, err := eval.Eval(s.Prompt, ip.st)
			if err != nil {
				return 0, err
			}
			prompt = v.String()
		}
		text, err := ip.io.Input(prompt)
		if err != nil {
			return 0, err
		}
		ip.storeInputTarget(s.Target, text)
		return defaultNext, nil

	case *PromptStmt:
		for _, name := range s.Names {
			text, err := ip.io.Input(name + "?")
			if err != nil {
				return 0, err
			}
			ip.storeInputTarget(name, text)
		}
		return defaultNext, nil

	case *ClrHomeStmt:
		ip.io.ClearHome()
		return defaultNext, nil

	case *ClrDrawStmt:
		ip.io.ClearDraw()
		return defaultNext, nil

	case *IfStmt:
		cond, err := eval.Eval(s.Cond, ip.st)
		if err != nil {
			return 0, err
		}
		truthy, ok := value.Truthy(cond)
		if !ok {
			return 0, errors.NewDataType(nil, "If condition must coerce to Real")
		}
		if truthy {
			return defaultNext, nil
		}
		if s.ElseIndex != -1 {
			return s.ElseIndex + 1, nil
		}
		return s.EndIndex + 1, nil

	case *ThenStmt:
		return defaultNext, nil

	case *ElseStmt:
		// Reached by falling through the Then-branch during normal
		// execution: skip the else-branch entirely.
		return s.EndIndex + 1, nil

	case *EndStmt:
		return ip.stepEnd(prog, pc, defaultNext)

	case *ForStmt:
		return ip.enterFor(s, defaultNext)

	case *WhileStmt:
		cond, err := eval.Eval(s.Cond, ip.st)
		if err != nil {
			return 0, err
		}
		truthy, ok := value.Truthy(cond)
		if !ok {
			return 0, errors.NewDataType(nil, "While condition must coerce to Real")
		}
		if truthy {
			return defaultNext, nil
		}
		return s.EndIndex + 1, nil

	case *RepeatStmt:
		// Body always runs at least once (§4.8): fall through.
		return defaultNext, nil

	case *LabelStmt:
		return defaultNext, nil

	case *GotoStmt:
		target, ok := prog.Labels[s.Name]
		if !ok {
			return 0, errors.NewLabelNotFound(s.Name)
		}
		return target, nil

	case *MenuStmt:
		v, err := eval.Eval(s.Title, ip.st)
		if err != nil {
			return 0, err
		}
		target, err := ip.io.ShowMenu(v.String(), s.Items)
		if err != nil {
			return 0, err
		}
		idx, ok := prog.Labels[target]
		if !ok {
			return 0, errors.NewLabelNotFound(target)
		}
		return idx, nil

	case *StopStmt:
		return len(stmts), nil

	case *ReturnStmt:
		return len(stmts), nil

	case *PauseStmt:
		text := ""
		if s.Expr != nil {
			v, err := eval.Eval(s.Expr, ip.st)
			if err != nil {
				return 0, err
			}
			text = v.String()
		}
		if err := ip.io.Pause(text); err != nil {
			return 0, err
		}
		return defaultNext, nil

	case *GetKeyStmt:
		key, err := ip.io.GetKey()
		if err != nil {
			return 0, err
		}
		ip.st.SetAns(value.Real{V: float64(key)})
		return defaultNext, nil

	case *ProgramCallStmt:
		source, ok := ip.st.GetProgram(s.Name)
		if !ok {
			return 0, errors.NewUndefined(nil, "program %s is undefined", s.Name)
		}
		callee, err := ParseProgram(source)
		if err != nil {
			return 0, err
		}
		if err := ip.runFrom(callee, 0); err != nil {
			return 0, err
		}
		return defaultNext, nil

	case *LineStmt:
		x1, y1, err := ip.evalPoint(s.X1, s.Y1)
		if err != nil {
			return 0, err
		}
		x2, y2, err := ip.evalPoint(s.X2, s.Y2)
		if err != nil {
			return 0, err
		}
		ip.io.DrawLine(x1, y1, x2, y2)
		return defaultNext, nil

	case *CircleStmt:
		x, y, err := ip.evalPoint(s.X, s.Y)
		if err != nil {
			return 0, err
		}
		r, err := ip.evalReal(s.R)
		if err != nil {
			return 0, err
		}
		ip.io.DrawCircle(x, y, r)
		return defaultNext, nil

	case *TextStmt:
		row, err := ip.evalInt(s.Row)
		if err != nil {
			return 0, err
		}
		col, err := ip.evalInt(s.Col)
		if err != nil {
			return 0, err
		}
		v, err := eval.Eval(s.Text, ip.st)
		if err != nil {
			return 0, err
		}
		ip.io.DrawText(row, col, v.String())
		return defaultNext, nil

	case *PointOnStmt:
		x, y, err := ip.evalPoint(s.X, s.Y)
		if err != nil {
			return 0, err
		}
		ip.io.PlotPoint(x, y, true)
		return defaultNext, nil

	case *PointOffStmt:
		x, y, err := ip.evalPoint(s.X, s.Y)
		if err != nil {
			return 0, err
		}
		ip.io.PlotPoint(x, y, false)
		return defaultNext, nil
	}

	return defaultNext, nil
}

// stepEnd closes whichever block owns this End: for a For/While, it
// re-checks the loop condition and either jumps back into the body or
// falls through past the End; for an If, it is a pure no-op.
func (ip *Interpreter) stepEnd(prog *Program, pc, defaultNext int) (int, error) {
	ownerIdx, kind := prog.blockOwner[pc], prog.blockKind[pc]
	switch kind {
	case "for":
		return ip.advanceFor(prog.Statements[ownerIdx].(*ForStmt), ownerIdx, defaultNext)
	case "while":
		w := prog.Statements[ownerIdx].(*WhileStmt)
		cond, err := eval.Eval(w.Cond, ip.st)
		if err != nil {
			return 0, err
		}
		truthy, ok := value.Truthy(cond)
		if !ok {
			return 0, errors.NewDataType(nil, "While condition must coerce to Real")
		}
		if truthy {
			return ownerIdx + 1, nil
		}
		return defaultNext, nil
	case "repeat":
		r := prog.Statements[ownerIdx].(*RepeatStmt)
		cond, err := eval.Eval(r.Cond, ip.st)
		if err != nil {
			return 0, err
		}
		truthy, ok := value.Truthy(cond)
		if !ok {
			return 0, errors.NewDataType(nil, "Repeat condition must coerce to Real")
		}
		if truthy {
			return defaultNext, nil
		}
		return ownerIdx + 1, nil
	}
	return defaultNext, nil
}

// enterFor evaluates start/end/step and binds the loop variable (§4.8),
// immediately skipping the body if the first iteration already fails the
// termination check.
func (ip *Interpreter) enterFor(s *ForStmt, defaultNext int) (int, error) {
	start, err := ip.evalReal(s.Start)
	if err != nil {
		return 0, err
	}
	end, err := ip.evalReal(s.End)
	if err != nil {
		return 0, err
	}
	step := 1.0
	if s.Step != nil {
		step, err = ip.evalReal(s.Step)
		if err != nil {
			return 0, err
		}
	}
	if step == 0 {
		return 0, errors.NewArgument(nil, "For step must not be zero")
	}
	ip.forState[s] = forBounds{end: end, step: step}
	ip.st.SetScalar(s.Var, value.Real{V: start})
	if forDone(start, end, step) {
		return s.EndIndex + 1, nil
	}
	return defaultNext, nil
}

// advanceFor re-reads the loop variable from State (so the body may have
// mutated it), steps it by the bound cached at loop entry, and either
// jumps back into the body or falls through past the End (§4.8).
func (ip *Interpreter) advanceFor(s *ForStmt, ownerIdx, defaultNext int) (int, error) {
	cur, ok := value.AsReal(ip.st.GetScalar(s.Var))
	if !ok {
		return 0, errors.NewDataType(nil, "For loop variable must be Real")
	}
	bounds := ip.forState[s]
	next := cur + bounds.step
	ip.st.SetScalar(s.Var, value.Real{V: next})

	if forDone(next, bounds.end, bounds.step) {
		return defaultNext, nil
	}
	return ownerIdx + 1, nil
}

func forDone(cur, end, step float64) bool {
	if step > 0 {
		return cur > end
	}
	return cur < end
}

func (ip *Interpreter) evalReal(node ast.Node) (float64, error) {
	v, err := eval.Eval(node, ip.st)
	if err != nil {
		return 0, err
	}
	f, ok := value.AsReal(v)
	if !ok {
		return 0, errors.NewDataType(nil, "argument must coerce to Real")
	}
	return f, nil
}

func (ip *Interpreter) evalInt(node ast.Node) (int, error) {
	f, err := ip.evalReal(node)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func (ip *Interpreter) evalPoint(xNode, yNode ast.Node) (float64, float64, error) {
	x, err := ip.evalReal(xNode)
	if err != nil {
		return 0, 0, err
	}
	y, err := ip.evalReal(yNode)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// storeInputTarget writes text into the variable named by target. A
// Str-prefixed target receives the text as a string; any other target
// receives it as a Real scalar when the text parses as a number, and as a
// string variable under that name otherwise. List and matrix targets are
// not handled.
func (ip *Interpreter) storeInputTarget(target, text string) {
	if strings.HasPrefix(target, "Str") || strings.HasPrefix(target, "str") {
		ip.st.SetString(target, text)
		return
	}
	if f, ok := parseFloatLiteral(text); ok {
		ip.st.SetScalar(target, value.Real{V: f})
		return
	}
	ip.st.SetString(target, text)
}
