package kernel

import "math"

// Point is one sampled (x, y) pair on a plotted curve.
type Point struct{ X, Y float64 }

// Segment is a connected run of samples with no gap or discontinuity
// between consecutive points.
type Segment []Point

// SampleWindow carries the graph-window parameters the sampler needs:
// the domain to sweep, the codomain used for jump detection, and the
// pixel resolution that determines the step size.
type SampleWindow struct {
	XMin, XMax float64
	YMin, YMax float64
	PixelWidth int
	XRes       float64
}

// Sample walks f across the window left to right, splitting into
// segments wherever the function is undefined, non-finite, or jumps by
// more than 2*(YMax-YMin) between consecutive defined samples (§4.6).
// Segments shorter than two points are included; callers may drop them.
func Sample(f func(float64) (float64, bool), w SampleWindow) []Segment {
	xres := w.XRes
	if xres <= 0 {
		xres = 1
	}
	samples := int(float64(w.PixelWidth) / xres)
	if samples < 1 {
		samples = 1
	}
	step := (w.XMax - w.XMin) / float64(samples)
	jumpThreshold := 2 * (w.YMax - w.YMin)

	var segments []Segment
	var current Segment
	havePrev := false
	var prevY float64

	flush := func() {
		if len(current) > 0 {
			segments = append(segments, current)
		}
		current = nil
		havePrev = false
	}

	for i := 0; i <= samples; i++ {
		x := w.XMin + float64(i)*step
		y, ok := f(x)
		if !ok || math.IsNaN(y) || math.IsInf(y, 0) {
			flush()
			continue
		}
		if havePrev && math.Abs(y-prevY) > jumpThreshold {
			flush()
		}
		current = append(current, Point{X: x, Y: y})
		prevY = y
		havePrev = true
	}
	flush()
	return segments
}
