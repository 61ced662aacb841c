package kernel

import (
	"math"

	"github.com/cwbudde/go-ticore/internal/errors"
)

const pivotThreshold = 1e-14

// cloneRows deep-copies a row-major matrix.
func cloneRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}
	return out
}

// REF reduces rows to row-echelon form via Gauss elimination with partial
// pivoting; columns whose pivot candidate is below pivotThreshold are
// skipped rather than failing, matching §4.6.
func REF(rows [][]float64) [][]float64 {
	m := cloneRows(rows)
	nRows := len(m)
	if nRows == 0 {
		return m
	}
	nCols := len(m[0])
	pivotRow := 0
	for col := 0; col < nCols && pivotRow < nRows; col++ {
		best := pivotRow
		for r := pivotRow + 1; r < nRows; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[best][col]) {
				best = r
			}
		}
		if math.Abs(m[best][col]) < pivotThreshold {
			continue
		}
		m[pivotRow], m[best] = m[best], m[pivotRow]
		for r := pivotRow + 1; r < nRows; r++ {
			factor := m[r][col] / m[pivotRow][col]
			for c := col; c < nCols; c++ {
				m[r][c] -= factor * m[pivotRow][c]
			}
		}
		pivotRow++
	}
	return m
}

// RREF reduces to reduced row-echelon form by running REF and then back-
// eliminating above each pivot and normalizing pivot rows to 1.
func RREF(rows [][]float64) [][]float64 {
	m := REF(rows)
	nRows := len(m)
	if nRows == 0 {
		return m
	}
	nCols := len(m[0])
	for r := 0; r < nRows; r++ {
		pivotCol := -1
		for c := 0; c < nCols; c++ {
			if math.Abs(m[r][c]) >= pivotThreshold {
				pivotCol = c
				break
			}
		}
		if pivotCol == -1 {
			continue
		}
		pv := m[r][pivotCol]
		for c := 0; c < nCols; c++ {
			m[r][c] /= pv
		}
		for rr := 0; rr < nRows; rr++ {
			if rr == r {
				continue
			}
			factor := m[rr][pivotCol]
			for c := 0; c < nCols; c++ {
				m[rr][c] -= factor * m[r][c]
			}
		}
	}
	return m
}

// Inverse augments m with the identity, runs Gauss-Jordan elimination,
// and extracts the right half; it fails with Singular if any pivot
// column cannot clear pivotThreshold.
func Inverse(rows [][]float64) ([][]float64, error) {
	n := len(rows)
	if n == 0 || len(rows[0]) != n {
		return nil, errors.NewInvalidDim(nil, "inverse requires a square matrix")
	}
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, 2*n)
		copy(aug[i], rows[i])
		aug[i][n+i] = 1
	}
	for col := 0; col < n; col++ {
		best := col
		for r := col + 1; r < n; r++ {
			if math.Abs(aug[r][col]) > math.Abs(aug[best][col]) {
				best = r
			}
		}
		if math.Abs(aug[best][col]) < pivotThreshold {
			return nil, errors.NewSingular(nil, "matrix is singular at column %d", col)
		}
		aug[col], aug[best] = aug[best], aug[col]
		pv := aug[col][col]
		for c := 0; c < 2*n; c++ {
			aug[col][c] /= pv
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col]
			for c := 0; c < 2*n; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = append([]float64(nil), aug[i][n:]...)
	}
	return out, nil
}

// Determinant computes det(m) via LU-style forward elimination with
// partial pivoting, tracking the sign flips from row swaps — an
// acceptable substitute for cofactor expansion per §4.6, agreeing to
// within 1e-10 relative tolerance for non-singular n <= 8.
func Determinant(rows [][]float64) (float64, error) {
	n := len(rows)
	if n == 0 || len(rows[0]) != n {
		return 0, errors.NewInvalidDim(nil, "determinant requires a square matrix")
	}
	m := cloneRows(rows)
	det := 1.0
	for col := 0; col < n; col++ {
		best := col
		for r := col + 1; r < n; r++ {
			if math.Abs(m[r][col]) > math.Abs(m[best][col]) {
				best = r
			}
		}
		if math.Abs(m[best][col]) < pivotThreshold {
			return 0, nil
		}
		if best != col {
			m[col], m[best] = m[best], m[col]
			det = -det
		}
		det *= m[col][col]
		for r := col + 1; r < n; r++ {
			factor := m[r][col] / m[col][col]
			for c := col; c < n; c++ {
				m[r][c] -= factor * m[col][c]
			}
		}
	}
	return det, nil
}

// Multiply computes the standard m x p matrix product; inner dimensions
// must match (cols(a) = rows(b)).
func Multiply(a, b [][]float64) ([][]float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a[0]) != len(b) {
		return nil, errors.NewDimMismatch(nil, "matrix multiply requires cols(a) == rows(b)")
	}
	rowsA, inner, colsB := len(a), len(b), len(b[0])
	out := make([][]float64, rowsA)
	for i := 0; i < rowsA; i++ {
		out[i] = make([]float64, colsB)
		for j := 0; j < colsB; j++ {
			sum := 0.0
			for k := 0; k < inner; k++ {
				sum += a[i][k] * b[k][j]
			}
			out[i][j] = sum
		}
	}
	return out, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		out[i][i] = 1
	}
	return out
}

// Power computes m^p for a square matrix and non-negative integer
// exponent via repeated multiplication; p=0 yields the identity.
func Power(m [][]float64, p int64) ([][]float64, error) {
	n := len(m)
	if n == 0 || len(m[0]) != n {
		return nil, errors.NewInvalidDim(nil, "matrix power requires a square matrix")
	}
	if p < 0 {
		return nil, errors.NewDomain(nil, "matrix power requires a non-negative integer exponent")
	}
	result := Identity(n)
	for i := int64(0); i < p; i++ {
		var err error
		result, err = Multiply(result, m)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ScalarMultiply multiplies every entry by s.
func ScalarMultiply(m [][]float64, s float64) [][]float64 {
	out := cloneRows(m)
	for i := range out {
		for j := range out[i] {
			out[i][j] *= s
		}
	}
	return out
}

// ScalarDivide divides every entry by s.
func ScalarDivide(m [][]float64, s float64) [][]float64 {
	return ScalarMultiply(m, 1/s)
}

// Add adds two equal-shaped matrices entrywise.
func Add(a, b [][]float64) ([][]float64, error) {
	if len(a) != len(b) {
		return nil, errors.NewDimMismatch(nil, "matrix addition requires identical shape")
	}
	out := make([][]float64, len(a))
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return nil, errors.NewDimMismatch(nil, "matrix addition requires identical shape")
		}
		out[i] = make([]float64, len(a[i]))
		for j := range a[i] {
			out[i][j] = a[i][j] + b[i][j]
		}
	}
	return out, nil
}

// Sub subtracts two equal-shaped matrices entrywise.
func Sub(a, b [][]float64) ([][]float64, error) {
	if len(a) != len(b) {
		return nil, errors.NewDimMismatch(nil, "matrix subtraction requires identical shape")
	}
	out := make([][]float64, len(a))
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return nil, errors.NewDimMismatch(nil, "matrix subtraction requires identical shape")
		}
		out[i] = make([]float64, len(a[i]))
		for j := range a[i] {
			out[i][j] = a[i][j] - b[i][j]
		}
	}
	return out, nil
}
