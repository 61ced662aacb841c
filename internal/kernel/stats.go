package kernel

import (
	"math"
	"sort"

	"github.com/cwbudde/go-ticore/internal/errors"
)

// OneVarStats bundles one-variable summary statistics (§4.6).
type OneVarStats struct {
	N                  int
	Sum, SumSq         float64
	Mean               float64
	SampleStdDev       float64
	PopulationStdDev   float64
	Min, Max           float64
	Q1, Median, Q3     float64
}

// interpolatedQuantile reads a linearly-interpolated quantile at
// fractional rank pos from an already-sorted slice.
func interpolatedQuantile(sorted []float64, pos float64) float64 {
	if pos <= 0 {
		return sorted[0]
	}
	n := len(sorted)
	if pos >= float64(n-1) {
		return sorted[n-1]
	}
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// OneVar computes n, sum, sum-of-squares, mean, sample/population stddev,
// sorted min/max, and quartiles interpolated at 0.25/0.5/0.75*(n-1).
func OneVar(data []float64) (OneVarStats, error) {
	n := len(data)
	if n == 0 {
		return OneVarStats{}, errors.NewStat(nil, "one-variable statistics require a non-empty sample")
	}
	sorted := append([]float64(nil), data...)
	sort.Float64s(sorted)

	var sum, sumSq float64
	for _, v := range data {
		sum += v
		sumSq += v * v
	}
	mean := sum / float64(n)

	var variance float64
	for _, v := range data {
		d := v - mean
		variance += d * d
	}
	var sampleStd, popStd float64
	if n > 1 {
		sampleStd = math.Sqrt(variance / float64(n-1))
	}
	popStd = math.Sqrt(variance / float64(n))

	return OneVarStats{
		N: n, Sum: sum, SumSq: sumSq, Mean: mean,
		SampleStdDev: sampleStd, PopulationStdDev: popStd,
		Min: sorted[0], Max: sorted[n-1],
		Q1:     interpolatedQuantile(sorted, 0.25*float64(n-1)),
		Median: interpolatedQuantile(sorted, 0.5*float64(n-1)),
		Q3:     interpolatedQuantile(sorted, 0.75*float64(n-1)),
	}, nil
}

// TwoVarStats bundles two-variable summary statistics, extending OneVar
// symmetrically over x and y.
type TwoVarStats struct {
	N                      int
	X, Y                   OneVarStats
	SumXY                  float64
	Covariance             float64
}

// TwoVar computes the symmetric two-variable extension of OneVar: each
// variable's own summary plus the sum of cross products and covariance.
func TwoVar(xs, ys []float64) (TwoVarStats, error) {
	if len(xs) != len(ys) {
		return TwoVarStats{}, errors.NewDimMismatch(nil, "two-variable statistics require equal-length samples")
	}
	x, err := OneVar(xs)
	if err != nil {
		return TwoVarStats{}, err
	}
	y, err := OneVar(ys)
	if err != nil {
		return TwoVarStats{}, err
	}
	var sumXY float64
	for i := range xs {
		sumXY += xs[i] * ys[i]
	}
	n := len(xs)
	covariance := sumXY/float64(n) - x.Mean*y.Mean
	return TwoVarStats{N: n, X: x, Y: y, SumXY: sumXY, Covariance: covariance}, nil
}

// Regression holds a fitted model's coefficients (interpretation depends
// on the model kind) plus correlation diagnostics.
type Regression struct {
	Coefficients []float64
	R            float64 // unset (0) for quadratic
	R2           float64
}

// linearFit performs closed-form ordinary least squares y = a + b*x,
// returning (a, b, r).
func linearFit(xs, ys []float64) (a, b, r float64, err error) {
	stats, statErr := TwoVar(xs, ys)
	if statErr != nil {
		return 0, 0, 0, statErr
	}
	n := float64(stats.N)
	sxx := stats.X.SumSq - n*stats.X.Mean*stats.X.Mean
	if sxx == 0 {
		return 0, 0, 0, errors.NewStat(nil, "linear regression requires variance in x")
	}
	sxy := stats.SumXY - n*stats.X.Mean*stats.Y.Mean
	b = sxy / sxx
	a = stats.Y.Mean - b*stats.X.Mean
	syy := stats.Y.SumSq - n*stats.Y.Mean*stats.Y.Mean
	if syy == 0 {
		return a, b, 1, nil
	}
	r = sxy / math.Sqrt(sxx*syy)
	return a, b, r, nil
}

// LinearRegression fits y = a + b*x by closed-form least squares.
func LinearRegression(xs, ys []float64) (Regression, error) {
	a, b, r, err := linearFit(xs, ys)
	if err != nil {
		return Regression{}, err
	}
	return Regression{Coefficients: []float64{a, b}, R: r, R2: r * r}, nil
}

// QuadraticRegression fits y = a + b*x + c*x^2 via the normal equations,
// solved with the matrix kernel's Gauss elimination. Only R2 is reported
// (§4.6: "only r^2 for quadratic").
func QuadraticRegression(xs, ys []float64) (Regression, error) {
	n := len(xs)
	if n < 3 {
		return Regression{}, errors.NewStat(nil, "quadratic regression requires at least 3 points")
	}
	var sx, sx2, sx3, sx4, sy, sxy, sx2y float64
	for i := range xs {
		x, y := xs[i], ys[i]
		x2 := x * x
		sx += x
		sx2 += x2
		sx3 += x2 * x
		sx4 += x2 * x2
		sy += y
		sxy += x * y
		sx2y += x2 * y
	}
	N := float64(n)
	aug := [][]float64{
		{N, sx, sx2, sy},
		{sx, sx2, sx3, sxy},
		{sx2, sx3, sx4, sx2y},
	}
	solved := RREF(aug)
	coeffs := []float64{solved[0][3], solved[1][3], solved[2][3]}

	var ssRes, ssTot float64
	meanY := sy / N
	for i := range xs {
		pred := coeffs[0] + coeffs[1]*xs[i] + coeffs[2]*xs[i]*xs[i]
		ssRes += (ys[i] - pred) * (ys[i] - pred)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}
	r2 := 1.0
	if ssTot != 0 {
		r2 = 1 - ssRes/ssTot
	}
	return Regression{Coefficients: coeffs, R2: r2}, nil
}

// ExponentialRegression fits y = a*b^x by linearizing: ln(y) = ln(a) + x*ln(b).
func ExponentialRegression(xs, ys []float64) (Regression, error) {
	lny := make([]float64, len(ys))
	for i, y := range ys {
		if y <= 0 {
			return Regression{}, errors.NewDomain(nil, "exponential regression requires positive y values")
		}
		lny[i] = math.Log(y)
	}
	lnA, lnB, r, err := linearFit(xs, lny)
	if err != nil {
		return Regression{}, err
	}
	return Regression{Coefficients: []float64{math.Exp(lnA), math.Exp(lnB)}, R: r, R2: r * r}, nil
}

// PowerRegression fits y = a*x^b by linearizing: ln(y) = ln(a) + b*ln(x).
func PowerRegression(xs, ys []float64) (Regression, error) {
	lnx := make([]float64, len(xs))
	lny := make([]float64, len(ys))
	for i := range xs {
		if xs[i] <= 0 || ys[i] <= 0 {
			return Regression{}, errors.NewDomain(nil, "power regression requires positive x and y values")
		}
		lnx[i] = math.Log(xs[i])
		lny[i] = math.Log(ys[i])
	}
	lnA, b, r, err := linearFit(lnx, lny)
	if err != nil {
		return Regression{}, err
	}
	return Regression{Coefficients: []float64{math.Exp(lnA), b}, R: r, R2: r * r}, nil
}

// LogRegression fits y = a + b*ln(x) by linearizing the x axis.
func LogRegression(xs, ys []float64) (Regression, error) {
	lnx := make([]float64, len(xs))
	for i, x := range xs {
		if x <= 0 {
			return Regression{}, errors.NewDomain(nil, "logarithmic regression requires positive x values")
		}
		lnx[i] = math.Log(x)
	}
	a, b, r, err := linearFit(lnx, ys)
	if err != nil {
		return Regression{}, err
	}
	return Regression{Coefficients: []float64{a, b}, R: r, R2: r * r}, nil
}
