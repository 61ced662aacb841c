package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-ticore/internal/errors"
	"github.com/cwbudde/go-ticore/internal/parser"
	"github.com/cwbudde/go-ticore/internal/state"
	"github.com/cwbudde/go-ticore/internal/value"
)

func evalSrc(t *testing.T, src string) value.Value {
	t.Helper()
	node, err := parser.Parse(src)
	require.NoError(t, err)
	st := state.New()
	v, err := Eval(node, st)
	require.NoError(t, err)
	return v
}

func realOf(t *testing.T, v value.Value) float64 {
	t.Helper()
	r, ok := value.AsReal(v)
	require.True(t, ok, "expected a Real-coercible value, got %s", v.Kind())
	return r
}

func TestArithmeticPrecedence(t *testing.T) {
	got := realOf(t, evalSrc(t, "2+3*4"))
	require.InDelta(t, 14.0, got, 1e-12)
}

// TestExpDispatch covers the review fix wiring math.Exp into
// dispatchScalarFunction: exp(1) previously failed with "unknown function".
func TestExpDispatch(t *testing.T) {
	got := realOf(t, evalSrc(t, "exp(1)"))
	require.InDelta(t, 2.718281828459045, got, 1e-9)
}

func TestExpOverflow(t *testing.T) {
	node, err := parser.Parse("exp(1000)")
	require.NoError(t, err)
	_, err = Eval(node, state.New())
	require.Error(t, err)
}

func TestFactorialThenMinusIsSubtraction(t *testing.T) {
	got := realOf(t, evalSrc(t, "3!-2"))
	require.InDelta(t, 4.0, got, 1e-12)
}

func TestSquareCubeInversePostfix(t *testing.T) {
	require.InDelta(t, 25.0, realOf(t, evalSrc(t, "5²")), 1e-12)
	require.InDelta(t, 125.0, realOf(t, evalSrc(t, "5³")), 1e-12)
	require.InDelta(t, 0.2, realOf(t, evalSrc(t, "5⁻¹")), 1e-12)
}

// TestMatrixInversePostfix covers the review fix wiring kernel.Inverse
// into the Matrix branch of evalUnaryPostfix.
func TestMatrixInversePostfix(t *testing.T) {
	got := evalSrc(t, "[[4,7][2,6]]⁻¹")
	m, ok := got.(value.Matrix)
	require.True(t, ok)
	require.Len(t, m.Rows, 2)
	require.InDelta(t, 0.6, m.Rows[0][0], 1e-9)
}

// TestInverseFunctionDispatch covers the review fix adding "inverse" to
// listOnlyFunctions/dispatchListFunction/fnInverse.
func TestInverseFunctionDispatch(t *testing.T) {
	m := value.Matrix{Rows: [][]float64{{4, 7}, {2, 6}}}
	got, err := dispatchListFunction("inverse", []value.Value{m}, nil, state.New())
	require.NoError(t, err)
	result, ok := got.(value.Matrix)
	require.True(t, ok)
	require.Len(t, result.Rows, 2)
}

func TestInverseFunctionRequiresMatrix(t *testing.T) {
	_, err := dispatchListFunction("inverse", []value.Value{value.Real{V: 3}}, nil, state.New())
	require.Error(t, err)
}

// TestListDivideByZeroKeepsItsOwnKind covers the review fix to
// binaryOp's list-list branch: a per-element failure must propagate its
// real Kind, not get relabeled DimMismatch just because it happened
// inside an elementwise list operation.
func TestListDivideByZeroKeepsItsOwnKind(t *testing.T) {
	_, err := evalSrcErr(t, "{1,2}/{1,0}")
	require.True(t, errors.Is(err, errors.DivideByZero), "got %v", err)
}

func TestListLengthMismatchIsDimMismatch(t *testing.T) {
	_, err := evalSrcErr(t, "{1,2}+{1,2,3}")
	require.True(t, errors.Is(err, errors.DimMismatch), "got %v", err)
}

func evalSrcErr(t *testing.T, src string) (value.Value, error) {
	t.Helper()
	node, err := parser.Parse(src)
	require.NoError(t, err)
	return Eval(node, state.New())
}

// TestNDerivPropagatesUndefinedSlotError covers the review fix making
// dispatchNDeriv surface EvaluateSlot's error instead of silently
// computing on NaN, matching dispatchFnInt's existing behavior.
func TestNDerivPropagatesUndefinedSlotError(t *testing.T) {
	_, err := evalSrcErr(t, "nDeriv(Y1,X,1)")
	require.Error(t, err)
}
