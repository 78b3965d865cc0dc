package polyroot

import (
	"github.com/achernar1030/polyroot/internal/domain/curve"
	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	"github.com/achernar1030/polyroot/internal/usecase/solve"
)

// Degree is the degree of the polynomials this package solves.
const Degree = polynomial.Degree

// Root is one root of the polynomial.
type Root struct {
	Value complex128
	Real  bool
}

// Warning is a non-fatal remark about the input.
type Warning struct {
	Code    string
	Message string
}

// Point is an (x, y) pair.
type Point struct {
	X, Y float64
}

// Curve is the polynomial sampled around its real roots.
type Curve struct {
	MinX    float64
	MaxX    float64
	Samples []Point // 1000 points, ascending x
	Markers []Point // (root, 0) per real root
}

// Result is the outcome of Solve.
type Result struct {
	Polynomial      string // e.g. "x^11 - 1"
	EffectiveDegree int    // degree after dropping leading zeros; -1 for the zero polynomial
	Roots           []Root
	RealRoots       []float64
	ComplexRoots    []complex128
	Warnings        []Warning
	Curve           *Curve // nil when there are no real roots
}

// HasRealRoots reports whether any root was classified as real.
func (r Result) HasRealRoots() bool { return len(r.RealRoots) > 0 }

func resultFromSolve(res solve.Result) Result {
	all := res.Roots.All()
	rs := make([]Root, len(all))
	for i, r := range all {
		rs[i] = Root{Value: r.Value, Real: r.IsReal()}
	}

	out := Result{
		Polynomial:      res.Polynomial.String(),
		EffectiveDegree: res.Polynomial.EffectiveDegree(),
		Roots:           rs,
		RealRoots:       append([]float64(nil), res.Roots.Real()...),
		ComplexRoots:    append([]complex128(nil), res.Roots.Complex()...),
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, Warning{Code: string(w.Code), Message: w.Message})
	}
	if res.Curve != nil {
		out.Curve = &Curve{
			MinX:    res.Curve.MinX,
			MaxX:    res.Curve.MaxX,
			Samples: points(res.Curve.Samples),
			Markers: points(res.Curve.Markers),
		}
	}
	return out
}

func points(ps []curve.Point) []Point {
	out := make([]Point, len(ps))
	for i, p := range ps {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out
}
