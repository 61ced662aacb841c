package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/go-ticore/internal/errors"
)

// TestInverseRoundTrip covers §8 testable property 3: for a square matrix
// with a non-negligible determinant, M * inverse(M) is within 1e-8
// entrywise of the identity.
func TestInverseRoundTrip(t *testing.T) {
	m := [][]float64{
		{4, 7},
		{2, 6},
	}
	inv, err := Inverse(m)
	require.NoError(t, err)

	product, err := Multiply(m, inv)
	require.NoError(t, err)

	ident := Identity(2)
	for i := range product {
		for j := range product[i] {
			require.InDelta(t, ident[i][j], product[i][j], 1e-8)
		}
	}
}

func TestInverseSingularMatrix(t *testing.T) {
	m := [][]float64{
		{1, 2},
		{2, 4},
	}
	_, err := Inverse(m)
	require.Error(t, err)
}

func TestInverseNonSquareIsInvalidDim(t *testing.T) {
	_, err := Inverse([][]float64{{1, 2, 3}})
	require.True(t, errors.Is(err, errors.InvalidDim), "got %v", err)
}

func TestDeterminant(t *testing.T) {
	m := [][]float64{
		{1, 2},
		{3, 4},
	}
	d, err := Determinant(m)
	require.NoError(t, err)
	require.InDelta(t, -2.0, d, 1e-10)
}

func TestIdentityMultiplyIsNoop(t *testing.T) {
	m := [][]float64{
		{1, 2},
		{3, 4},
	}
	product, err := Multiply(m, Identity(2))
	require.NoError(t, err)
	for i := range m {
		for j := range m[i] {
			require.InDelta(t, m[i][j], product[i][j], 1e-12)
		}
	}
}
