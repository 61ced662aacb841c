package parser

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) string {
	t.Helper()
	node, err := Parse(src)
	require.NoError(t, err)
	return node.String()
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1+2*3", "(1 + (2 * 3))"},
		{"2^3^2", "(2 ^ (3 ^ 2))"}, // right-assoc
		{"-2^2", "(-(2 ^ 2))"},     // negation binds looser than exponent
		{"2*3+4", "((2 * 3) + 4)"},
		{"1<2 and 2<3", "((1 < 2) and (2 < 3))"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, mustParse(t, tt.src))
		})
	}
}

// TestPostfixChaining covers DESIGN.md's resolved Open Question: postfix
// operators fold into the same binding-power loop rather than a separate
// pass, so a later infix operator can still bind a postfix result.
func TestPostfixChaining(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"2*3!", "(2 * (3!))"},
		{"3!^2", "((3!) ^ 2)"},
		{"5²", "(5^2)"},
		{"5³", "(5^3)"},
		{"5⁻¹", "(5^-1)"},
		{"90°", "(90°)"},
		{"50%", "(50%)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			require.Equal(t, tt.want, mustParse(t, tt.src))
		})
	}
}

func TestStoreBindsLooserThanAddition(t *testing.T) {
	got := mustParse(t, "1+2->X")
	require.Equal(t, "(1 + 2)->X", got)
}

func TestImplicitMultiplyParses(t *testing.T) {
	got := mustParse(t, "2Y1")
	require.Contains(t, got, "Y1")
}

func TestTrailingTokenIsSyntaxError(t *testing.T) {
	_, err := Parse("1 2")
	require.Error(t, err)
}

// TestParseGolden snapshots the parenthesized AST dump for a set of
// expressions spanning precedence, associativity, and postfix chaining,
// in the same spirit as the lexer's token-stream snapshot.
func TestParseGolden(t *testing.T) {
	srcs := []string{
		"2+3*4^2",
		"3!^2",
		"(-3)²-50%",
		"1<2 and 2<3 or not 4=5",
		"2Y1->X",
	}

	var sb strings.Builder
	for _, src := range srcs {
		sb.WriteString(src)
		sb.WriteString(" => ")
		sb.WriteString(mustParse(t, src))
		sb.WriteByte('\n')
	}
	snaps.MatchSnapshot(t, "parse_golden", sb.String())
}
