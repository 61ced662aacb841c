package program

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// dumpProgram renders one statement per line, the nearest stand-in this
// package has for the teacher's AST/token dumps, for go-snaps coverage of
// the program parser's overall shape.
func dumpProgram(prog *Program) string {
	var sb strings.Builder
	for i, s := range prog.Statements {
		sb.WriteString(s.String())
		if i < len(prog.Statements)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func TestParseProgramGolden(t *testing.T) {
	src := `Lbl START
Input "N?",N
0->S
For(J,1,N)
S+J->S
End
If S>10
Then
Disp "BIG",S
Else
Disp "SMALL",S
End
Goto START
Stop`

	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	snaps.MatchSnapshot(t, "program_dump", dumpProgram(prog))
}
