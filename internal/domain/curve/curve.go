package curve

import (
	"slices"

	"github.com/achernar1030/polyroot/internal/domain/polynomial"
)

const (
	// SampleCount is the number of evenly spaced evaluation points.
	SampleCount = 1000
	// Padding extends the x-range on both sides of the outermost real roots.
	Padding = 2.0
	// DefaultMinX is the lower bound used when there are no real roots.
	DefaultMinX = -5.0
	// DefaultMaxX is the upper bound used when there are no real roots.
	DefaultMaxX = 5.0
)

// Point is an (x, y) pair.
type Point struct {
	X float64
	Y float64
}

// Curve is the sampled polynomial with its real-root markers.
type Curve struct {
	MinX    float64
	MaxX    float64
	Samples []Point // ascending x
	Markers []Point // (root, 0) per real root, in the order given
}

// Range returns the x-range to sample: the real roots padded by 2 on each side,
// or [-5, 5] when there are none.
func Range(realRoots []float64) (minX, maxX float64) {
	if len(realRoots) == 0 {
		return DefaultMinX, DefaultMaxX
	}
	return slices.Min(realRoots) - Padding, slices.Max(realRoots) + Padding
}

// Linspace returns n evenly spaced values over [start, stop], endpoints included.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// Sample evaluates p at SampleCount points over Range(realRoots).
func Sample(p polynomial.Polynomial, realRoots []float64) Curve {
	minX, maxX := Range(realRoots)
	xs := Linspace(minX, maxX, SampleCount)

	samples := make([]Point, len(xs))
	for i, x := range xs {
		samples[i] = Point{X: x, Y: p.Eval(x)}
	}

	markers := make([]Point, len(realRoots))
	for i, r := range realRoots {
		markers[i] = Point{X: r, Y: 0}
	}

	return Curve{MinX: minX, MaxX: maxX, Samples: samples, Markers: markers}
}

// YRange returns the smallest and largest sampled y values.
func (c Curve) YRange() (minY, maxY float64) {
	if len(c.Samples) == 0 {
		return 0, 0
	}
	minY, maxY = c.Samples[0].Y, c.Samples[0].Y
	for _, s := range c.Samples[1:] {
		minY = min(minY, s.Y)
		maxY = max(maxY, s.Y)
	}
	return minY, maxY
}
