package lexer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func types(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestOperators(t *testing.T) {
	tests := []struct {
		expectedLiteral string
		expectedType    TokenType
	}{
		{"+", PLUS},
		{"*", ASTERISK},
		{"/", SLASH},
		{"%", PERCENT},
		{"^", CARET},
		{"!", FACTORIAL},
		{"°", DEGREE},
	}

	for _, tt := range tests {
		toks, err := Tokenize(tt.expectedLiteral)
		require.NoError(t, err)
		require.Len(t, toks, 2) // operator + EOF
		require.Equal(t, tt.expectedType, toks[0].Type)
		require.Equal(t, tt.expectedLiteral, toks[0].Literal)
	}
}

// TestNegationDisambiguation covers §4.2: a MINUS following a value-producing
// token is subtraction, while a MINUS following an operator/open-paren/start
// of input is unary NEGATE.
func TestNegationDisambiguation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []TokenType
	}{
		{"leading minus is negate", "-3", []TokenType{NEGATE, NUMBER, EOF}},
		{"number minus number is subtraction", "3-2", []TokenType{NUMBER, MINUS, NUMBER, EOF}},
		{"paren then minus is negate", "(-3)", []TokenType{LPAREN, NEGATE, NUMBER, RPAREN, EOF}},
		{"rparen then minus is subtraction", "(3)-2", []TokenType{LPAREN, NUMBER, RPAREN, MINUS, NUMBER, EOF}},
		{"function slot then minus is subtraction", "Y1-3", []TokenType{FUNCSLOT, MINUS, NUMBER, EOF}},
		{"factorial then minus is subtraction", "3!-2", []TokenType{NUMBER, FACTORIAL, MINUS, NUMBER, EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, err := Tokenize(tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.want, types(toks))
		})
	}
}

func TestImplicitMultiply(t *testing.T) {
	toks, err := Tokenize("2Y1")
	require.NoError(t, err)
	require.Equal(t, []TokenType{NUMBER, IMPLICIT_MULTIPLY, FUNCSLOT, EOF}, types(toks))
}

// TestPostfixGlyphs covers the five §4.5 "other postfix operators": three
// are dedicated single-rune keys (x², x³, x⁻¹), two are scanned from
// operator runes ('°', '%').
func TestPostfixGlyphs(t *testing.T) {
	tests := []struct {
		src  string
		want TokenType
	}{
		{"5²", SQUARE},
		{"5³", CUBE},
		{"5⁻¹", INVERSE},
		{"90°", DEGREE},
		{"50%", PERCENT},
	}

	for _, tt := range tests {
		toks, err := Tokenize(tt.src)
		require.NoError(t, err)
		require.Len(t, toks, 3) // NUMBER, postfix, EOF
		require.Equal(t, tt.want, toks[1].Type)
	}
}

func TestPostfixGlyphsDriveImplicitMultiply(t *testing.T) {
	toks, err := Tokenize("5²Y1")
	require.NoError(t, err)
	require.Equal(t, []TokenType{NUMBER, SQUARE, IMPLICIT_MULTIPLY, FUNCSLOT, EOF}, types(toks))
}

func TestFunctionSlotAndVariable(t *testing.T) {
	toks, err := Tokenize("Y1")
	require.NoError(t, err)
	require.Equal(t, FUNCSLOT, toks[0].Type)
	require.Equal(t, 1, toks[0].Slot)

	toks, err = Tokenize("X")
	require.NoError(t, err)
	require.Equal(t, VARIABLE, toks[0].Type)
}

func TestNumberLiteral(t *testing.T) {
	toks, err := Tokenize("3.14")
	require.NoError(t, err)
	require.Equal(t, NUMBER, toks[0].Type)
	require.InDelta(t, 3.14, toks[0].Num, 1e-12)
}

// TestTokenizeGolden snapshots the token stream for a representative
// expression exercising implicit multiply, negation disambiguation, and
// the factorial, square, and percent postfix operators in one pass.
func TestTokenizeGolden(t *testing.T) {
	toks, err := Tokenize(`2Y1+(-3)!²-50%`)
	require.NoError(t, err)

	var sb strings.Builder
	for _, tok := range toks {
		fmt.Fprintf(&sb, "%s %q\n", tok.Type, tok.Literal)
	}
	snaps.MatchSnapshot(t, "tokenize_golden", sb.String())
}
