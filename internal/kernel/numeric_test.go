package kernel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFactorial(t *testing.T) {
	f, err := Factorial(5)
	require.NoError(t, err)
	require.InDelta(t, 120.0, f, 1e-9)

	_, err = Factorial(-1)
	require.Error(t, err)

	_, err = Factorial(70)
	require.Error(t, err)
}

func TestPermutationsAndCombinations(t *testing.T) {
	p, err := Permutations(5, 2)
	require.NoError(t, err)
	require.InDelta(t, 20.0, p, 1e-9)

	c, err := Combinations(5, 2)
	require.NoError(t, err)
	require.InDelta(t, 10.0, c, 1e-9)

	_, err = Combinations(2, 5)
	require.Error(t, err)
}

func TestSymmetricDerivative(t *testing.T) {
	got := SymmetricDerivative(func(x float64) float64 { return x * x }, 3, 0)
	require.InDelta(t, 6.0, got, 1e-4)
}

func TestSimpsonIntegral(t *testing.T) {
	got := Simpson(func(x float64) float64 { return x * x }, 0, 1, 0)
	require.InDelta(t, 1.0/3.0, got, 1e-9)
}

func TestInverseNormalCDFIsMonotone(t *testing.T) {
	lo := InverseNormalCDF(0.25)
	mid := InverseNormalCDF(0.5)
	hi := InverseNormalCDF(0.75)
	require.InDelta(t, 0.0, mid, 1e-6)
	require.Less(t, lo, mid)
	require.Less(t, mid, hi)
}

func TestGoldenSectionMin(t *testing.T) {
	got := GoldenSectionMin(func(x float64) float64 { return (x - 2) * (x - 2) }, -10, 10, 1e-7)
	require.InDelta(t, 2.0, got, 1e-3)
}

func TestBisectRoot(t *testing.T) {
	root, err := Bisect(func(x float64) (float64, bool) { return x*x - 2, true }, 0, 2, 1e-9)
	require.NoError(t, err)
	require.InDelta(t, math.Sqrt2, root, 1e-6)
}
