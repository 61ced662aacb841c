package kernel

import "math"

const (
	defaultExtremumTolerance = 1e-10
	invPhi                   = 0.6180339887498949 // (sqrt(5)-1)/2
)

// GoldenSectionMin finds the x in [a, b] minimizing f via golden-section
// search, maintaining two interior probes and converging when the
// bracket width drops below tolerance.
func GoldenSectionMin(f func(float64) float64, a, b, tolerance float64) float64 {
	if tolerance <= 0 {
		tolerance = defaultExtremumTolerance
	}
	c := b - invPhi*(b-a)
	d := a + invPhi*(b-a)
	fc, fd := f(c), f(d)
	for math.Abs(b-a) > tolerance {
		if fc < fd {
			b = d
			d = c
			fd = fc
			c = b - invPhi*(b-a)
			fc = f(c)
		} else {
			a = c
			c = d
			fc = fd
			d = a + invPhi*(b-a)
			fd = f(d)
		}
	}
	return (a + b) / 2
}

// GoldenSectionMax finds the x in [a, b] maximizing f by minimizing -f.
func GoldenSectionMax(f func(float64) float64, a, b, tolerance float64) float64 {
	return GoldenSectionMin(func(x float64) float64 { return -f(x) }, a, b, tolerance)
}
