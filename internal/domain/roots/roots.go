package roots

import (
	"math"
	"math/cmplx"
)

// DefaultTolerance is the relative tolerance on the imaginary part below which a root is real.
const DefaultTolerance = 1e-9

// Kind distinguishes real from complex roots.
type Kind string

const (
	// KindReal is a root whose imaginary part is negligible.
	KindReal Kind = "real"
	// KindComplex is any other root.
	KindComplex Kind = "complex"
)

// Root is a single classified root.
type Root struct {
	Value complex128
	Kind  Kind
}

// IsReal reports whether the root was classified as real.
func (r Root) IsReal() bool { return r.Kind == KindReal }

// Set is the classified output of a solve, in solver order.
type Set struct {
	all     []Root
	real    []float64
	complex []complex128
}

// IsReal reports whether z counts as a real root under the relative tolerance tol:
// |imag(z)| <= tol * max(1, |z|).
func IsReal(z complex128, tol float64) bool {
	return math.Abs(imag(z)) <= tol*math.Max(1, cmplx.Abs(z))
}

// Classify partitions raw roots into real and complex using tol.
// A non-positive tol falls back to DefaultTolerance.
func Classify(raw []complex128, tol float64) Set {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	s := Set{
		all:     make([]Root, 0, len(raw)),
		real:    make([]float64, 0, len(raw)),
		complex: make([]complex128, 0, len(raw)),
	}
	for _, z := range raw {
		if IsReal(z, tol) {
			s.all = append(s.all, Root{Value: complex(real(z), 0), Kind: KindReal})
			s.real = append(s.real, real(z))
			continue
		}
		s.all = append(s.all, Root{Value: z, Kind: KindComplex})
		s.complex = append(s.complex, z)
	}
	return s
}

// All returns every root in solver order.
func (s Set) All() []Root { return s.all }

// Real returns the real roots in solver order.
func (s Set) Real() []float64 { return s.real }

// Complex returns the complex roots in solver order, conjugates not paired.
func (s Set) Complex() []complex128 { return s.complex }

// Len returns the total number of roots, counting multiplicity.
func (s Set) Len() int { return len(s.all) }

// HasReal reports whether at least one real root exists.
func (s Set) HasReal() bool { return len(s.real) > 0 }
