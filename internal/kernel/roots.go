package kernel

import (
	"math"

	"github.com/cwbudde/go-ticore/internal/errors"
)

const (
	defaultRootTolerance = 1e-12
	maxRootIterations    = 100
)

// Bisect finds a root of f in [a, b] by bisection. Requires a sign change
// (f(a)*f(b) <= 0); fails with NoSignChange otherwise. Returns the
// midpoint of the final bracket after the iteration cap, even if
// tolerance was never reached.
func Bisect(f func(float64) (float64, bool), a, b, tolerance float64) (float64, error) {
	if tolerance <= 0 {
		tolerance = defaultRootTolerance
	}
	fa, ok := f(a)
	if !ok {
		return 0, errors.NewDomain(nil, "function undefined at lower bound")
	}
	fb, ok := f(b)
	if !ok {
		return 0, errors.NewDomain(nil, "function undefined at upper bound")
	}
	if fa*fb > 0 {
		return 0, errors.NewNoSignChange(nil)
	}

	mid := a
	for i := 0; i < maxRootIterations; i++ {
		mid = (a + b) / 2
		fm, ok := f(mid)
		if !ok {
			return 0, errors.NewDomain(nil, "function undefined at %g", mid)
		}
		if math.Abs(b-a)/2 < tolerance || math.Abs(fm) < tolerance {
			return mid, nil
		}
		if fa*fm <= 0 {
			b, fb = mid, fm
		} else {
			a, fa = mid, fm
		}
	}
	return mid, nil
}
