package program

import (
	"strings"
	"testing"

	"github.com/cwbudde/go-ticore/internal/state"
	"github.com/cwbudde/go-ticore/internal/value"
)

// recordingIO captures every Display call so tests can assert on program
// output without a console, mirroring the teacher's testEvalWithOutput
// helper pattern.
type recordingIO struct {
	NoopIO
	lines []string
}

func (r *recordingIO) Display(text string) { r.lines = append(r.lines, text) }

func (r *recordingIO) output() string { return strings.Join(r.lines, "\n") }

func runProgram(t *testing.T, src string) (*state.State, *recordingIO) {
	t.Helper()
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram(%q) returned error: %v", src, err)
	}
	st := state.New()
	io := &recordingIO{}
	if err := NewInterpreter(st, io).Run(prog); err != nil {
		t.Fatalf("Run(%q) returned error: %v", src, err)
	}
	return st, io
}

func TestIfThenElseBranching(t *testing.T) {
	_, io := runProgram(t, "If 1\nThen\nDisp \"yes\"\nElse\nDisp \"no\"\nEnd")
	if io.output() != "yes" {
		t.Errorf("output = %q, want %q", io.output(), "yes")
	}

	_, io = runProgram(t, "If 0\nThen\nDisp \"yes\"\nElse\nDisp \"no\"\nEnd")
	if io.output() != "no" {
		t.Errorf("output = %q, want %q", io.output(), "no")
	}
}

func TestIfWithoutElseFallsThrough(t *testing.T) {
	_, io := runProgram(t, "If 0\nThen\nDisp \"skip\"\nEnd\nDisp \"after\"")
	if io.output() != "after" {
		t.Errorf("output = %q, want %q", io.output(), "after")
	}
}

func TestForLoopIterationCount(t *testing.T) {
	st, io := runProgram(t, "For(J,1,5)\nDisp J\nEnd")
	if len(io.lines) != 5 {
		t.Fatalf("expected 5 iterations, got %d: %#v", len(io.lines), io.lines)
	}
	v, ok := value.AsReal(st.GetScalar("J"))
	if !ok || v != 6 {
		t.Errorf("loop variable after exit = %v, want 6 (one past the bound)", v)
	}
}

func TestForLoopWithNegativeStep(t *testing.T) {
	_, io := runProgram(t, "For(J,5,1,-1)\nDisp J\nEnd")
	if len(io.lines) != 5 {
		t.Fatalf("expected 5 iterations, got %d: %#v", len(io.lines), io.lines)
	}
}

func TestForLoopBoundCachedAtEntry(t *testing.T) {
	// The body reassigns N, which must not perturb the cached end bound.
	st, io := runProgram(t, "5->N\nFor(J,1,N)\n1->N\nDisp J\nEnd")
	if len(io.lines) != 5 {
		t.Fatalf("expected 5 iterations despite N being rewritten in the body, got %d: %#v", len(io.lines), io.lines)
	}
	_ = st
}

func TestWhileLoopIterationCount(t *testing.T) {
	_, io := runProgram(t, "0->J\nWhile J<3\n1+J->J\nDisp J\nEnd")
	if len(io.lines) != 3 {
		t.Fatalf("expected 3 iterations, got %d: %#v", len(io.lines), io.lines)
	}
}

func TestWhileLoopNeverRunsWhenConditionFalseFromStart(t *testing.T) {
	_, io := runProgram(t, "While 0\nDisp \"never\"\nEnd\nDisp \"after\"")
	if io.output() != "after" {
		t.Errorf("output = %q, want %q", io.output(), "after")
	}
}

func TestRepeatRunsBodyAtLeastOnce(t *testing.T) {
	_, io := runProgram(t, "0->J\nRepeat 1\n1+J->J\nDisp J\nEnd")
	if len(io.lines) != 1 {
		t.Fatalf("expected exactly 1 iteration, got %d: %#v", len(io.lines), io.lines)
	}
}

func TestRepeatLoopsUntilConditionTrue(t *testing.T) {
	_, io := runProgram(t, "0->J\nRepeat J=3\n1+J->J\nDisp J\nEnd")
	if len(io.lines) != 3 {
		t.Fatalf("expected 3 iterations, got %d: %#v", len(io.lines), io.lines)
	}
}

func TestGotoSkipsForward(t *testing.T) {
	_, io := runProgram(t, "Goto SKIP\nDisp \"skipped\"\nLbl SKIP\nDisp \"reached\"")
	if io.output() != "reached" {
		t.Errorf("output = %q, want %q", io.output(), "reached")
	}
}

func TestGotoOutOfLoopAbandonsIteration(t *testing.T) {
	// A Goto out of a For loop must leave no dangling state: execution
	// continues cleanly at the label, past the loop's own End.
	_, io := runProgram(t, "For(J,1,10)\nDisp J\nIf J=3\nThen\nGoto DONE\nEnd\nEnd\nLbl DONE\nDisp \"done\"")
	if len(io.lines) != 4 {
		t.Fatalf("expected 3 loop iterations plus the done message, got %d: %#v", len(io.lines), io.lines)
	}
	if io.lines[len(io.lines)-1] != "done" {
		t.Errorf("last line = %q, want %q", io.lines[len(io.lines)-1], "done")
	}
}

func TestGotoUnknownLabelIsLabelNotFoundError(t *testing.T) {
	prog, err := ParseProgram("Goto NOWHERE")
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	st := state.New()
	err = NewInterpreter(st, nil).Run(prog)
	if err == nil {
		t.Fatal("expected a LabelNotFound error")
	}
}

func TestStopHaltsExecution(t *testing.T) {
	_, io := runProgram(t, "Disp \"a\"\nStop\nDisp \"b\"")
	if io.output() != "a" {
		t.Errorf("output = %q, want %q", io.output(), "a")
	}
}

func TestMenuDispatchesToSelectedTarget(t *testing.T) {
	prog, err := ParseProgram(`Menu("Pick","A",LBLA,"B",LBLB)` + "\nLbl LBLA\nDisp \"chose a\"\nStop\nLbl LBLB\nDisp \"chose b\"")
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	st := state.New()
	io := &menuIO{choice: "LBLB"}
	if err := NewInterpreter(st, io).Run(prog); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if io.lastDisplay != "chose b" {
		t.Errorf("display = %q, want %q", io.lastDisplay, "chose b")
	}
}

type menuIO struct {
	NoopIO
	choice      string
	lastDisplay string
}

func (m *menuIO) ShowMenu(string, []MenuItem) (string, error) { return m.choice, nil }
func (m *menuIO) Display(text string)                         { m.lastDisplay = text }

func TestProgramCallRecursesIntoNamedProgram(t *testing.T) {
	st := state.New()
	st.SetProgram("HELPER", "Disp \"from helper\"")
	prog, err := ParseProgram("Disp \"before\"\nprgmHELPER\nDisp \"after\"")
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	io := &recordingIO{}
	if err := NewInterpreter(st, io).Run(prog); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	want := "before\nfrom helper\nafter"
	if io.output() != want {
		t.Errorf("output = %q, want %q", io.output(), want)
	}
}

func TestProgramCallUndefinedProgramIsUndefinedError(t *testing.T) {
	st := state.New()
	prog, err := ParseProgram("prgmMISSING")
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	if err := NewInterpreter(st, nil).Run(prog); err == nil {
		t.Fatal("expected an Undefined error for a missing program")
	} else if !strings.Contains(err.Error(), "MISSING") {
		t.Errorf("error %v does not mention the missing program name", err)
	}
	_ = st
}

func TestForStepZeroIsArgumentError(t *testing.T) {
	prog, err := ParseProgram("For(J,1,10,0)\nEnd")
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	st := state.New()
	if err := NewInterpreter(st, nil).Run(prog); err == nil {
		t.Fatal("expected an Argument error for a zero For step")
	}
}

func TestCancelledStateAbortsBeforeNextStatement(t *testing.T) {
	st := state.New()
	st.Cancel()
	prog, err := ParseProgram("Disp \"unreachable\"")
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	if err := NewInterpreter(st, nil).Run(prog); err == nil {
		t.Fatal("expected a Break error from a pre-cancelled state")
	}
}

func TestExpressionStatementSetsAns(t *testing.T) {
	st, _ := runProgram(t, "2+3")
	v, ok := value.AsReal(st.Ans())
	if !ok || v != 5 {
		t.Errorf("Ans = %v, want 5", st.Ans())
	}
}
