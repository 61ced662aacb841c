// Package parser implements the Pratt (precedence-climbing) parser over
// the §4.3 operator lattice, in the style of the teacher's
// internal/parser package: a prefix/infix dispatch table driven by a
// single parseExpr(minBindingPower) loop, rather than one hand-written
// recursive-descent function per precedence level.
package parser

import (
	"github.com/cwbudde/go-ticore/internal/ast"
	"github.com/cwbudde/go-ticore/internal/errors"
	"github.com/cwbudde/go-ticore/internal/lexer"
)

// Precedence levels from §4.3, lowest to highest. Binding power is
// derived from these via bp(): level*2 for left-associative operators,
// level*2-1 for right-associative ones, folding associativity into a
// single integer so the climbing loop only ever compares minBP against a
// token's bp.
const (
	levelLowest        = 0
	levelStore         = 1 // -> (right-assoc)
	levelOrXor         = 2 // or, xor (left)
	levelAnd           = 3 // and (left)
	levelNot           = 4 // not (prefix)
	levelComparison    = 5 // = <> < > <= >= (left)
	levelAddition      = 6 // + - (left)
	levelMultiplication = 7 // * / nPr nCr implicit-multiply (left)
	levelNegation      = 8 // unary - (prefix; binds tighter than infix * but not postfix)
	levelExponent      = 9 // ^ (right)
	levelPostfix       = 10
)

func leftBP(level int) int  { return level * 2 }
func rightBP(level int) int { return level*2 - 1 }
func prefixBP(level int) int { return level * 2 }

// infixEntry describes one infix or postfix operator's binding power and
// associativity.
type infixEntry struct {
	bp         int
	rightAssoc bool
	postfix    bool
}

var infixTable = map[lexer.TokenType]infixEntry{
	lexer.OR:  {bp: leftBP(levelOrXor), rightAssoc: false},
	lexer.XOR: {bp: leftBP(levelOrXor), rightAssoc: false},
	lexer.AND: {bp: leftBP(levelAnd), rightAssoc: false},

	lexer.EQ:     {bp: leftBP(levelComparison)},
	lexer.NOT_EQ: {bp: leftBP(levelComparison)},
	lexer.LT:     {bp: leftBP(levelComparison)},
	lexer.GT:     {bp: leftBP(levelComparison)},
	lexer.LE:     {bp: leftBP(levelComparison)},
	lexer.GE:     {bp: leftBP(levelComparison)},

	lexer.PLUS:  {bp: leftBP(levelAddition)},
	lexer.MINUS: {bp: leftBP(levelAddition)},

	lexer.ASTERISK:          {bp: leftBP(levelMultiplication)},
	lexer.SLASH:             {bp: leftBP(levelMultiplication)},
	lexer.NPR:               {bp: leftBP(levelMultiplication)},
	lexer.NCR:               {bp: leftBP(levelMultiplication)},
	lexer.IMPLICIT_MULTIPLY: {bp: leftBP(levelMultiplication)},

	lexer.CARET: {bp: rightBP(levelExponent), rightAssoc: true},

	lexer.FACTORIAL: {bp: leftBP(levelPostfix), postfix: true},
	lexer.SQUARE:    {bp: leftBP(levelPostfix), postfix: true},
	lexer.CUBE:      {bp: leftBP(levelPostfix), postfix: true},
	lexer.INVERSE:   {bp: leftBP(levelPostfix), postfix: true},
	lexer.DEGREE:    {bp: leftBP(levelPostfix), postfix: true},
	lexer.PERCENT:   {bp: leftBP(levelPostfix), postfix: true},
}

var storeBP = rightBP(levelStore)

// Parser holds the full token stream for one expression and a cursor into
// it. Unlike the teacher's Parser, which drives a lazy lexer with
// lookahead, this parser tokenizes eagerly via lexer.Tokenize and then
// walks the resulting slice — a single expression is short enough that
// eager tokenization costs nothing and simplifies backtracking-free
// parsing.
type Parser struct {
	toks []lexer.Token
	pos  int
}

// New builds a Parser over an already-tokenized stream.
func New(toks []lexer.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse tokenizes and parses src as a single expression, requiring the
// entire input to be consumed. Statement-separating colons are removed by
// the program parser's splitter before it calls Parse.
func Parse(src string) (ast.Node, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := New(toks)
	node, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur().Type != lexer.EOF {
		return nil, errors.NewSyntax(&p.cur().Pos, "unexpected trailing token %s", p.cur().Type)
	}
	return node, nil
}

// ParseExpression parses one expression starting at the parser's current
// position, leaving the cursor on whatever token follows it (EOF or
// otherwise). The parser never consumes beyond EOF (§4.3).
func (p *Parser) ParseExpression() (ast.Node, error) {
	return p.parseExpr(levelLowest)
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.toks) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	if p.cur().Type != tt {
		return lexer.Token{}, errors.NewSyntax(&p.cur().Pos, "expected %s, got %s", tt, p.cur().Type)
	}
	return p.advance(), nil
}

// parseExpr is the precedence-climbing driver (§4.3 step 1): read a
// prefix form, then repeatedly fold in Store, infix, and postfix
// operators whose binding power clears minBP.
func (p *Parser) parseExpr(minBP int) (ast.Node, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.cur()

		// The tokenizer inserts IMPLICIT_MULTIPLY before any letter that
		// follows a value, the infix keyword operators included; that
		// token is dropped here so the keyword binds as the operator.
		if tok.Type == lexer.IMPLICIT_MULTIPLY && p.pos+1 < len(p.toks) {
			switch p.toks[p.pos+1].Type {
			case lexer.AND, lexer.OR, lexer.XOR, lexer.NPR, lexer.NCR:
				p.advance()
				continue
			}
		}

		if tok.Type == lexer.STORE {
			if minBP > storeBP {
				break
			}
			p.advance()
			target, err := p.parseExpr(storeBP) // right-assoc: same bp
			if err != nil {
				return nil, err
			}
			left = &ast.Store{Expr: left, Target: target, Token: tok}
			continue
		}

		entry, ok := infixTable[tok.Type]
		if !ok || minBP > entry.bp {
			break
		}

		if entry.postfix {
			p.advance()
			left = &ast.UnaryPostfix{Op: postfixOp(tok.Type), Operand: left, Token: tok}
			continue
		}

		p.advance()
		nextMinBP := entry.bp + 1
		if entry.rightAssoc {
			nextMinBP = entry.bp
		}
		right, err := p.parseExpr(nextMinBP)
		if err != nil {
			return nil, err
		}
		left = combineBinary(left, tok, right)
	}

	return left, nil
}

func postfixOp(tt lexer.TokenType) ast.UnaryPostfixOp {
	switch tt {
	case lexer.FACTORIAL:
		return ast.OpFactorial
	case lexer.SQUARE:
		return ast.OpSquare
	case lexer.CUBE:
		return ast.OpCube
	case lexer.INVERSE:
		return ast.OpInverse
	case lexer.DEGREE:
		return ast.OpDegToRad
	default:
		return ast.OpPercent
	}
}

func combineBinary(left ast.Node, tok lexer.Token, right ast.Node) ast.Node {
	if tok.Type == lexer.IMPLICIT_MULTIPLY {
		return &ast.ImplicitMul{Left: left, Right: right}
	}
	op := map[lexer.TokenType]ast.BinaryOp{
		lexer.PLUS: ast.OpAdd, lexer.MINUS: ast.OpSub,
		lexer.ASTERISK: ast.OpMul, lexer.SLASH: ast.OpDiv, lexer.CARET: ast.OpPow,
		lexer.NPR: ast.OpNPr, lexer.NCR: ast.OpNCr,
		lexer.EQ: ast.OpEq, lexer.NOT_EQ: ast.OpNotEq,
		lexer.LT: ast.OpLt, lexer.GT: ast.OpGt, lexer.LE: ast.OpLe, lexer.GE: ast.OpGe,
		lexer.AND: ast.OpAnd, lexer.OR: ast.OpOr, lexer.XOR: ast.OpXor,
	}[tok.Type]
	return &ast.Binary{Op: op, Left: left, Right: right, Token: tok}
}

// parsePrefix dispatches on the current token to produce a "null
// denotation" (literal, identifier, grouping, or prefix-unary) form, then
// advances past what it consumed (§4.3 step 1's first bullet).
func (p *Parser) parsePrefix() (ast.Node, error) {
	tok := p.cur()

	switch tok.Type {
	case lexer.NUMBER:
		p.advance()
		return &ast.Number{Value: tok.Num, Token: tok}, nil

	case lexer.STRING:
		p.advance()
		return &ast.StringLit{Value: tok.Literal, Token: tok}, nil

	case lexer.PI:
		p.advance()
		return &ast.Constant{Kind: ast.ConstPi, Token: tok}, nil
	case lexer.EULERE:
		p.advance()
		return &ast.Constant{Kind: ast.ConstEulerE, Token: tok}, nil
	case lexer.IMAGI:
		p.advance()
		return &ast.Constant{Kind: ast.ConstImaginaryI, Token: tok}, nil
	case lexer.ANS:
		p.advance()
		return &ast.Constant{Kind: ast.ConstAns, Token: tok}, nil

	case lexer.VARIABLE:
		p.advance()
		return &ast.Variable{Name: tok.Literal, Token: tok}, nil

	case lexer.LISTNAME:
		p.advance()
		node := ast.Node(&ast.ListVar{Name: tok.Literal, Token: tok})
		return p.maybeElementAccess(node)

	case lexer.MATRIXNAME:
		p.advance()
		node := ast.Node(&ast.MatrixVar{Name: tok.Literal, Token: tok})
		return p.maybeElementAccess(node)

	case lexer.STRINGVAR:
		p.advance()
		return &ast.StringVar{Index: tok.Slot, Token: tok}, nil

	case lexer.FUNCSLOT:
		p.advance()
		node := ast.Node(&ast.FunctionSlot{Index: tok.Slot, Token: tok})
		return p.maybeElementAccess(node)

	case lexer.FUNCTION:
		return p.parseFunctionCall(tok)

	case lexer.LPAREN:
		p.advance()
		inner, err := p.parseExpr(levelLowest)
		if err != nil {
			return nil, err
		}
		if p.cur().Type == lexer.RPAREN {
			p.advance()
		}
		// A dropped closing paren is tolerated defensively, matching the
		// calculator's lenient function-call convention (§4.3 step 2).
		return inner, nil

	case lexer.LBRACE:
		return p.parseListLiteral(tok)

	case lexer.LBRACKET:
		return p.parseMatrixLiteral(tok)

	case lexer.NOT:
		p.advance()
		operand, err := p.parseExpr(prefixBP(levelNot))
		if err != nil {
			return nil, err
		}
		return &ast.UnaryPrefix{Op: ast.OpNot, Operand: operand, Token: tok}, nil

	case lexer.NEGATE:
		p.advance()
		operand, err := p.parseExpr(prefixBP(levelNegation))
		if err != nil {
			return nil, err
		}
		return &ast.UnaryPrefix{Op: ast.OpNegate, Operand: operand, Token: tok}, nil

	case lexer.MINUS:
		// Reaching MINUS in prefix position only happens if the
		// disambiguation pass somehow left one at the start of an
		// expression; treat exactly like Negate for resilience.
		p.advance()
		operand, err := p.parseExpr(prefixBP(levelNegation))
		if err != nil {
			return nil, err
		}
		return &ast.UnaryPrefix{Op: ast.OpNegate, Operand: operand, Token: tok}, nil
	}

	return nil, errors.NewSyntax(&tok.Pos, "unexpected token %s", tok.Type)
}

// maybeElementAccess wraps target in an ElementAccess if a '(' index list
// follows (§4.3 step 3). A required ')' terminates the index list.
func (p *Parser) maybeElementAccess(target ast.Node) (ast.Node, error) {
	// The tokenizer inserts IMPLICIT_MULTIPLY between a name and a '(' that
	// follows it; after a list, matrix, or slot name that '(' opens the
	// index list instead.
	if p.cur().Type == lexer.IMPLICIT_MULTIPLY && p.pos+1 < len(p.toks) && p.toks[p.pos+1].Type == lexer.LPAREN {
		p.advance()
	}
	if p.cur().Type != lexer.LPAREN {
		return target, nil
	}
	tok := p.advance()
	var indices []ast.Node
	for p.cur().Type != lexer.RPAREN {
		if p.cur().Type == lexer.EOF {
			return nil, errors.NewSyntax(&p.cur().Pos, "unterminated index list")
		}
		idx, err := p.parseExpr(levelLowest)
		if err != nil {
			return nil, err
		}
		indices = append(indices, idx)
		if p.cur().Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &ast.ElementAccess{Target: target, Indices: indices, Token: tok}, nil
}

// parseFunctionCall parses a builtin function call. The lexer has already
// consumed the opening '(' as part of recognizing the FUNCTION token
// (§4.3 step 2), so argument parsing starts immediately.
func (p *Parser) parseFunctionCall(tok lexer.Token) (ast.Node, error) {
	p.advance() // FUNCTION

	if p.cur().Type == lexer.RPAREN {
		p.advance()
		return &ast.FunctionCall{Name: tok.Literal, Token: tok}, nil
	}
	if p.cur().Type == lexer.EOF {
		return &ast.FunctionCall{Name: tok.Literal, Token: tok}, nil
	}

	var args []ast.Node
	for {
		arg, err := p.parseExpr(levelLowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.cur().Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if p.cur().Type == lexer.RPAREN {
		p.advance()
	}
	// A missing trailing ')' is tolerated (§4.3 step 2).
	return &ast.FunctionCall{Name: tok.Literal, Args: args, Token: tok}, nil
}

// Syntax errors quote the offending token using its String form, so the
// lexer.TokenType's String method is exercised even outside golden-test
// output.

func (p *Parser) parseListLiteral(tok lexer.Token) (ast.Node, error) {
	p.advance() // {
	var elems []ast.Node
	for p.cur().Type != lexer.RBRACE {
		if p.cur().Type == lexer.EOF {
			return nil, errors.NewSyntax(&p.cur().Pos, "unterminated list literal")
		}
		e, err := p.parseExpr(levelLowest)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.cur().Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.ListLiteral{Elements: elems, Token: tok}, nil
}

// parseMatrixLiteral parses `[[r1c1, r1c2][r2c1, r2c2]]`: an outer '['
// opening a sequence of '[' row ']' groups, closed by a final ']'.
func (p *Parser) parseMatrixLiteral(tok lexer.Token) (ast.Node, error) {
	p.advance() // outer [
	var rows [][]ast.Node
	for p.cur().Type == lexer.LBRACKET {
		p.advance() // row [
		var row []ast.Node
		for p.cur().Type != lexer.RBRACKET {
			if p.cur().Type == lexer.EOF {
				return nil, errors.NewSyntax(&p.cur().Pos, "unterminated matrix row")
			}
			e, err := p.parseExpr(levelLowest)
			if err != nil {
				return nil, err
			}
			row = append(row, e)
			if p.cur().Type == lexer.COMMA {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RBRACKET); err != nil {
			return nil, err
		}
		rows = append(rows, row)
		// The tokenizer inserts IMPLICIT_MULTIPLY between a row's ']' and
		// the next row's '['; inside a matrix literal it only separates rows.
		if p.cur().Type == lexer.IMPLICIT_MULTIPLY && p.pos+1 < len(p.toks) && p.toks[p.pos+1].Type == lexer.LBRACKET {
			p.advance()
		}
	}
	if _, err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.MatrixLiteral{Rows: rows, Token: tok}, nil
}
