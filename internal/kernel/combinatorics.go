// Package kernel implements the §4.6 numeric kernels: matrix reduction,
// statistics, combinatorics, plot sampling, root/extremum finders, an
// integrator, an inverse-normal approximation, and a numerical
// derivative. Every kernel is a pure function of its arguments; none
// hold state, matching the teacher's builtins_math*.go dispatch-table
// shape, generalized here to a package of plain functions rather than a
// big per-function switch.
package kernel

import "github.com/cwbudde/go-ticore/internal/errors"

// Factorial computes n! for 0 <= n <= 69 iteratively.
func Factorial(n int64) (float64, error) {
	if n < 0 || n > 69 {
		return 0, errors.NewDomain(nil, "factorial domain is 0..69, got %d", n)
	}
	result := 1.0
	for i := int64(2); i <= n; i++ {
		result *= float64(i)
	}
	return result, nil
}

// Permutations computes nPr = n! / (n-r)! without materializing either
// factorial directly, multiplying the r terms n, n-1, ..., n-r+1.
func Permutations(n, r int64) (float64, error) {
	if r < 0 || r > n || n < 0 {
		return 0, errors.NewDomain(nil, "nPr domain requires 0 <= r <= n, got n=%d r=%d", n, r)
	}
	result := 1.0
	for i := int64(0); i < r; i++ {
		result *= float64(n - i)
	}
	return result, nil
}

// Combinations computes nCr using the symmetric-reduction optimization:
// pick the smaller of r and n-r to minimize the number of multiply/divide
// steps.
func Combinations(n, r int64) (float64, error) {
	if r < 0 || r > n || n < 0 {
		return 0, errors.NewDomain(nil, "nCr domain requires 0 <= r <= n, got n=%d r=%d", n, r)
	}
	if r > n-r {
		r = n - r
	}
	result := 1.0
	for i := int64(1); i <= r; i++ {
		result = result * float64(n-r+i) / float64(i)
	}
	return result, nil
}
