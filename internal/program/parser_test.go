package program

import "testing"

func TestParseProgramBasicStatements(t *testing.T) {
	src := "Disp 1,2\n:Input \"N?\",N\nClrHome"
	prog, err := ParseProgram(src)
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	if len(prog.Statements) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(prog.Statements))
	}
	if _, ok := prog.Statements[0].(*DisplayStmt); !ok {
		t.Errorf("statement 0: expected *DisplayStmt, got %T", prog.Statements[0])
	}
	in, ok := prog.Statements[1].(*InputStmt)
	if !ok {
		t.Fatalf("statement 1: expected *InputStmt, got %T", prog.Statements[1])
	}
	if in.Target != "N" || in.Prompt == nil {
		t.Errorf("unexpected Input fields: %+v", in)
	}
	if _, ok := prog.Statements[2].(*ClrHomeStmt); !ok {
		t.Errorf("statement 2: expected *ClrHomeStmt, got %T", prog.Statements[2])
	}
}

func TestSplitRespectingStringsIgnoresColonInsideQuotes(t *testing.T) {
	parts := splitRespectingStrings(`Disp "a:b":Disp "c"`, ':')
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d: %#v", len(parts), parts)
	}
	if parts[0] != `Disp "a:b"` {
		t.Errorf("part 0 = %q", parts[0])
	}
	if parts[1] != `Disp "c"` {
		t.Errorf("part 1 = %q", parts[1])
	}
}

func TestSplitRespectingStringsIgnoresCommaInsideParens(t *testing.T) {
	parts := splitRespectingStrings(`Output(1,2,"x"),Disp 3`, ',')
	if len(parts) != 2 {
		t.Fatalf("expected the nested commas inside Output(...) to be skipped, got %#v", parts)
	}
	if parts[0] != `Output(1,2,"x")` || parts[1] != "Disp 3" {
		t.Errorf("unexpected split result: %#v", parts)
	}
}

func TestParseMenuRequiresOddArgumentCount(t *testing.T) {
	_, err := ParseProgram(`Menu("Pick","A",LBLA,"B")`)
	if err == nil {
		t.Fatal("expected an error for an even Menu argument count")
	}
}

func TestParseMenuBuildsItems(t *testing.T) {
	prog, err := ParseProgram(`Menu("Pick","A",LBLA,"B",LBLB)`)
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	menu, ok := prog.Statements[0].(*MenuStmt)
	if !ok {
		t.Fatalf("expected *MenuStmt, got %T", prog.Statements[0])
	}
	if len(menu.Items) != 2 {
		t.Fatalf("expected 2 menu items, got %d", len(menu.Items))
	}
	if menu.Items[0].Target != "LBLA" || menu.Items[1].Target != "LBLB" {
		t.Errorf("unexpected menu targets: %+v", menu.Items)
	}
}

func TestParseForRequiresThreeOrFourArgs(t *testing.T) {
	if _, err := ParseProgram(`For(I,1)`); err == nil {
		t.Error("expected an error for a 2-argument For(")
	}
	if _, err := ParseProgram(`For(J,1,10)` + "\nEnd"); err != nil {
		t.Errorf("3-argument For( should parse, got error: %v", err)
	}
	if _, err := ParseProgram(`For(J,1,10,2)` + "\nEnd"); err != nil {
		t.Errorf("4-argument For( should parse, got error: %v", err)
	}
}

func TestResolveBlocksLinksIfElseEnd(t *testing.T) {
	prog, err := ParseProgram("If 1\nThen\nDisp 1\nElse\nDisp 2\nEnd")
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	ifStmt := prog.Statements[0].(*IfStmt)
	if ifStmt.ElseIndex != 3 {
		t.Errorf("ElseIndex = %d, want 3", ifStmt.ElseIndex)
	}
	if ifStmt.EndIndex != 5 {
		t.Errorf("EndIndex = %d, want 5", ifStmt.EndIndex)
	}
	elseStmt := prog.Statements[3].(*ElseStmt)
	if elseStmt.EndIndex != 5 {
		t.Errorf("Else.EndIndex = %d, want 5", elseStmt.EndIndex)
	}
}

func TestResolveBlocksRejectsUnterminatedBlock(t *testing.T) {
	_, err := ParseProgram("If 1\nDisp 1")
	if err == nil {
		t.Fatal("expected an error for an If with no matching End")
	}
}

func TestResolveBlocksRejectsStrayElse(t *testing.T) {
	_, err := ParseProgram("Else\nEnd")
	if err == nil {
		t.Fatal("expected an error for an Else with no matching If")
	}
}

func TestParseLabelsIndexedByName(t *testing.T) {
	prog, err := ParseProgram("Lbl START\nDisp 1\nGoto START")
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	idx, ok := prog.Labels["START"]
	if !ok || idx != 0 {
		t.Errorf("Labels[START] = (%d,%v), want (0,true)", idx, ok)
	}
}

func TestParseProgramCallStatement(t *testing.T) {
	prog, err := ParseProgram("prgmHELPER")
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	call, ok := prog.Statements[0].(*ProgramCallStmt)
	if !ok {
		t.Fatalf("expected *ProgramCallStmt, got %T", prog.Statements[0])
	}
	if call.Name != "HELPER" {
		t.Errorf("Name = %q, want HELPER", call.Name)
	}
}

func TestParseStatementRejectsGarbage(t *testing.T) {
	if _, err := ParseProgram("Output(1,2"); err == nil {
		t.Error("expected an error for a missing closing paren")
	}
}
