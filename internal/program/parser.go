package program

import (
	"strings"

	"github.com/cwbudde/go-ticore/internal/ast"
	"github.com/cwbudde/go-ticore/internal/errors"
	"github.com/cwbudde/go-ticore/internal/parser"
)

// ParseProgram implements §4.7: split on newlines, then on top-level
// colons respecting string literals, match each part against the
// statement grammar, and index every Lbl into a name->index map.
func ParseProgram(source string) (*Program, error) {
	p := &Program{Labels: make(map[string]int)}

	for _, line := range strings.Split(source, "\n") {
		for _, part := range splitRespectingStrings(line, ':') {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			stmt, err := parseStatement(part)
			if err != nil {
				return nil, err
			}
			p.Statements = append(p.Statements, stmt)
		}
	}

	for i, s := range p.Statements {
		if lbl, ok := s.(*LabelStmt); ok {
			p.Labels[lbl.Name] = i
		}
	}

	owner, kind, err := resolveBlocks(p.Statements)
	if err != nil {
		return nil, err
	}
	p.blockOwner = owner
	p.blockKind = kind

	return p, nil
}

// splitRespectingStrings splits s on sep, toggling an in-string flag on
// each unescaped '"' so a colon or comma inside a string literal is not
// treated as a separator (§4.7).
func splitRespectingStrings(s string, sep byte) []string {
	var parts []string
	var cur strings.Builder
	inString := false
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			inString = !inString
			cur.WriteByte(c)
		case inString:
			cur.WriteByte(c)
		case c == '(' || c == '[' || c == '{':
			depth++
			cur.WriteByte(c)
		case c == ')' || c == ']' || c == '}':
			if depth > 0 {
				depth--
			}
			cur.WriteByte(c)
		case c == sep && depth == 0:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	parts = append(parts, cur.String())
	return parts
}

func splitArgs(s string) []string {
	raw := splitRespectingStrings(s, ',')
	out := make([]string, len(raw))
	for i, r := range raw {
		out[i] = strings.TrimSpace(r)
	}
	return out
}

func parseExpr(text string) (ast.Node, error) {
	return parser.Parse(text)
}

func parseVarName(text string) (string, error) {
	node, err := parseExpr(text)
	if err != nil {
		return "", err
	}
	v, ok := node.(*ast.Variable)
	if !ok {
		return "", errors.NewSyntax(nil, "expected a variable name, got %q", text)
	}
	return v.Name, nil
}

// parenArgs extracts the comma-split argument list of a "Keyword(...)"
// line, requiring the trailing close-paren.
func parenArgs(text, keyword string) ([]string, error) {
	if !strings.HasSuffix(text, ")") {
		return nil, errors.NewSyntax(nil, "%s: missing closing parenthesis", keyword)
	}
	inner := text[len(keyword) : len(text)-1]
	return splitArgs(inner), nil
}

func parseStatement(text string) (Statement, error) {
	switch {
	case text == "Then":
		return &ThenStmt{}, nil
	case text == "Else":
		return &ElseStmt{}, nil
	case text == "End":
		return &EndStmt{}, nil
	case text == "Stop":
		return &StopStmt{}, nil
	case text == "Return":
		return &ReturnStmt{}, nil
	case text == "ClrHome":
		return &ClrHomeStmt{}, nil
	case text == "ClrDraw":
		return &ClrDrawStmt{}, nil
	case text == "getKey":
		return &GetKeyStmt{}, nil
	case text == "Pause":
		return &PauseStmt{}, nil

	case strings.HasPrefix(text, "If "):
		cond, err := parseExpr(strings.TrimSpace(text[len("If "):]))
		if err != nil {
			return nil, err
		}
		return &IfStmt{Cond: cond, ElseIndex: -1, EndIndex: -1}, nil

	case strings.HasPrefix(text, "While "):
		cond, err := parseExpr(strings.TrimSpace(text[len("While "):]))
		if err != nil {
			return nil, err
		}
		return &WhileStmt{Cond: cond, EndIndex: -1}, nil

	case strings.HasPrefix(text, "Repeat "):
		cond, err := parseExpr(strings.TrimSpace(text[len("Repeat "):]))
		if err != nil {
			return nil, err
		}
		return &RepeatStmt{Cond: cond, EndIndex: -1}, nil

	case strings.HasPrefix(text, "Lbl "):
		return &LabelStmt{Name: strings.TrimSpace(text[len("Lbl "):])}, nil

	case strings.HasPrefix(text, "Goto "):
		return &GotoStmt{Name: strings.TrimSpace(text[len("Goto "):])}, nil

	case strings.HasPrefix(text, "Disp "):
		args := splitArgs(text[len("Disp "):])
		exprs := make([]ast.Node, len(args))
		for i, a := range args {
			n, err := parseExpr(a)
			if err != nil {
				return nil, err
			}
			exprs[i] = n
		}
		return &DisplayStmt{Exprs: exprs}, nil

	case strings.HasPrefix(text, "Prompt "):
		names := splitArgs(text[len("Prompt "):])
		return &PromptStmt{Names: names}, nil

	case strings.HasPrefix(text, "Input"):
		rest := strings.TrimSpace(text[len("Input"):])
		args := splitArgs(rest)
		if len(args) == 2 {
			prompt, err := parseExpr(args[0])
			if err != nil {
				return nil, err
			}
			return &InputStmt{Prompt: prompt, Target: args[1]}, nil
		}
		return &InputStmt{Target: args[0]}, nil

	case strings.HasPrefix(text, "Pause "):
		expr, err := parseExpr(strings.TrimSpace(text[len("Pause "):]))
		if err != nil {
			return nil, err
		}
		return &PauseStmt{Expr: expr}, nil

	case strings.HasPrefix(text, "prgm"):
		return &ProgramCallStmt{Name: strings.TrimSpace(text[len("prgm"):])}, nil

	case strings.HasPrefix(text, "For("):
		args, err := parenArgs(text, "For(")
		if err != nil {
			return nil, err
		}
		if len(args) < 3 || len(args) > 4 {
			return nil, errors.NewSyntax(nil, "For( expects 3 or 4 arguments, got %d", len(args))
		}
		v, err := parseVarName(args[0])
		if err != nil {
			return nil, err
		}
		start, err := parseExpr(args[1])
		if err != nil {
			return nil, err
		}
		end, err := parseExpr(args[2])
		if err != nil {
			return nil, err
		}
		var step ast.Node
		if len(args) == 4 {
			step, err = parseExpr(args[3])
			if err != nil {
				return nil, err
			}
		}
		return &ForStmt{Var: v, Start: start, End: end, Step: step, EndIndex: -1}, nil

	case strings.HasPrefix(text, "Output("):
		args, err := parenArgs(text, "Output(")
		if err != nil {
			return nil, err
		}
		if len(args) != 3 {
			return nil, errors.NewSyntax(nil, "Output( expects 3 arguments, got %d", len(args))
		}
		row, err := parseExpr(args[0])
		if err != nil {
			return nil, err
		}
		col, err := parseExpr(args[1])
		if err != nil {
			return nil, err
		}
		txt, err := parseExpr(args[2])
		if err != nil {
			return nil, err
		}
		return &OutputStmt{Row: row, Col: col, Text: txt}, nil

	case strings.HasPrefix(text, "Menu("):
		args, err := parenArgs(text, "Menu(")
		if err != nil {
			return nil, err
		}
		if len(args) < 3 || len(args)%2 == 0 {
			return nil, errors.NewSyntax(nil, "Menu( requires an odd argument count (title + label/target pairs), got %d", len(args))
		}
		title, err := parseExpr(args[0])
		if err != nil {
			return nil, err
		}
		var items []MenuItem
		for i := 1; i < len(args); i += 2 {
			label, err := parseExpr(args[i])
			if err != nil {
				return nil, err
			}
			items = append(items, MenuItem{Label: label, Target: args[i+1]})
		}
		return &MenuStmt{Title: title, Items: items}, nil

	case strings.HasPrefix(text, "Line("):
		args, err := parenArgs(text, "Line(")
		if err != nil {
			return nil, err
		}
		if len(args) != 4 {
			return nil, errors.NewSyntax(nil, "Line( expects 4 arguments, got %d", len(args))
		}
		nodes, err := parseAll(args)
		if err != nil {
			return nil, err
		}
		return &LineStmt{X1: nodes[0], Y1: nodes[1], X2: nodes[2], Y2: nodes[3]}, nil

	case strings.HasPrefix(text, "Circle("):
		args, err := parenArgs(text, "Circle(")
		if err != nil {
			return nil, err
		}
		if len(args) != 3 {
			return nil, errors.NewSyntax(nil, "Circle( expects 3 arguments, got %d", len(args))
		}
		nodes, err := parseAll(args)
		if err != nil {
			return nil, err
		}
		return &CircleStmt{X: nodes[0], Y: nodes[1], R: nodes[2]}, nil

	case strings.HasPrefix(text, "Text("):
		args, err := parenArgs(text, "Text(")
		if err != nil {
			return nil, err
		}
		if len(args) != 3 {
			return nil, errors.NewSyntax(nil, "Text( expects 3 arguments, got %d", len(args))
		}
		nodes, err := parseAll(args)
		if err != nil {
			return nil, err
		}
		return &TextStmt{Row: nodes[0], Col: nodes[1], Text: nodes[2]}, nil

	case strings.HasPrefix(text, "Pt-On("):
		args, err := parenArgs(text, "Pt-On(")
		if err != nil {
			return nil, err
		}
		if len(args) != 2 {
			return nil, errors.NewSyntax(nil, "Pt-On( expects 2 arguments, got %d", len(args))
		}
		nodes, err := parseAll(args)
		if err != nil {
			return nil, err
		}
		return &PointOnStmt{X: nodes[0], Y: nodes[1]}, nil

	case strings.HasPrefix(text, "Pt-Off("):
		args, err := parenArgs(text, "Pt-Off(")
		if err != nil {
			return nil, err
		}
		if len(args) != 2 {
			return nil, errors.NewSyntax(nil, "Pt-Off( expects 2 arguments, got %d", len(args))
		}
		nodes, err := parseAll(args)
		if err != nil {
			return nil, err
		}
		return &PointOffStmt{X: nodes[0], Y: nodes[1]}, nil
	}

	node, err := parseExpr(text)
	if err != nil {
		return nil, err
	}
	return &ExpressionStmt{Text: text, Expr: node}, nil
}

func parseAll(args []string) ([]ast.Node, error) {
	nodes := make([]ast.Node, len(args))
	for i, a := range args {
		n, err := parseExpr(a)
		if err != nil {
			return nil, err
		}
		nodes[i] = n
	}
	return nodes, nil
}

// resolveBlocks links each If/For/While/Repeat to its matching End (and,
// for If, its optional Else) by scanning forward with the §4.8 depth
// counter: any block opener increments depth, End decrements, and an
// Else at depth 0 belongs to the nearest open If. It also builds the
// end-index -> (owner-index, kind) maps the interpreter uses to drive
// loop iteration by pc jump alone.
func resolveBlocks(stmts []Statement) (map[int]int, map[int]string, error) {
	type frame struct {
		index int
		kind   string
	}
	var stack []frame
	owner := make(map[int]int)
	kindOf := make(map[int]string)

	for i, s := range stmts {
		switch s.(type) {
		case *IfStmt:
			stack = append(stack, frame{i, "if"})
		case *ForStmt:
			stack = append(stack, frame{i, "for"})
		case *WhileStmt:
			stack = append(stack, frame{i, "while"})
		case *RepeatStmt:
			stack = append(stack, frame{i, "repeat"})
		case *ElseStmt:
			if len(stack) == 0 || stack[len(stack)-1].kind != "if" {
				return nil, nil, errors.NewSyntax(nil, "Else without matching If")
			}
			ifIdx := stack[len(stack)-1].index
			stmts[ifIdx].(*IfStmt).ElseIndex = i
		case *EndStmt:
			if len(stack) == 0 {
				return nil, nil, errors.NewSyntax(nil, "End without matching block opener")
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			owner[i] = top.index
			kindOf[i] = top.kind
			switch top.kind {
			case "if":
				ifStmt := stmts[top.index].(*IfStmt)
				ifStmt.EndIndex = i
				if ifStmt.ElseIndex != -1 {
					stmts[ifStmt.ElseIndex].(*ElseStmt).EndIndex = i
				}
			case "for":
				stmts[top.index].(*ForStmt).EndIndex = i
			case "while":
				stmts[top.index].(*WhileStmt).EndIndex = i
			case "repeat":
				stmts[top.index].(*RepeatStmt).EndIndex = i
			}
		}
	}
	if len(stack) != 0 {
		return nil, nil, errors.NewSyntax(nil, "unterminated block at statement index %d", stack[len(stack)-1].index)
	}
	return owner, kindOf, nil
}
