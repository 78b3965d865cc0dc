// Package solver computes polynomial roots as eigenvalues of the companion matrix.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/achernar1030/polyroot/internal/domain"
	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	"github.com/achernar1030/polyroot/internal/domain/roots"
)

var (
	errFactorize = errors.New("eigenvalue decomposition did not converge")
	errNonFinite = errors.New("non-finite eigenvalue")
)

// Solver finds and classifies the roots of a degree-11 polynomial.
type Solver struct {
	tolerance float64
}

// New creates a Solver. tolerance is the relative imaginary-part tolerance for
// classifying a root as real; non-positive means roots.DefaultTolerance.
func New(tolerance float64) *Solver {
	if tolerance <= 0 {
		tolerance = roots.DefaultTolerance
	}
	return &Solver{tolerance: tolerance}
}

// Tolerance returns the real-root classification tolerance.
func (s *Solver) Tolerance() float64 { return s.tolerance }

// Solve returns the classified roots of p. The number of roots equals p's
// effective degree. No partial result is returned on error.
func (s *Solver) Solve(ctx context.Context, p polynomial.Polynomial) (roots.Set, error) {
	if err := ctx.Err(); err != nil {
		return roots.Set{}, fmt.Errorf("solve: %w", err)
	}
	raw, err := Roots(p.Coefficients())
	if err != nil {
		return roots.Set{}, err
	}
	return roots.Classify(raw, s.tolerance), nil
}

// Roots returns all roots of the polynomial with the given coefficients,
// highest power first. Leading zeros lower the degree; trailing zeros are
// returned as exact zero roots after the eigenvalues; the zero polynomial has
// no roots.
func Roots(coeffs []float64) (out []complex128, err error) {
	first := -1
	for i, c := range coeffs {
		if c != 0 {
			first = i
			break
		}
	}
	if first < 0 {
		return []complex128{}, nil
	}

	last := len(coeffs) - 1
	for coeffs[last] == 0 {
		last--
	}
	trimmed := coeffs[first : last+1]
	zeros := len(coeffs) - 1 - last

	out = make([]complex128, 0, len(trimmed)-1+zeros)

	if len(trimmed) > 1 {
		vals, err := eigenvalues(Companion(trimmed))
		if err != nil {
			return nil, domain.NewRootComputation(err)
		}
		out = append(out, vals...)
	}
	for range zeros {
		out = append(out, 0)
	}
	return out, nil
}

// Companion builds the companion matrix of the polynomial with coefficients c
// (highest power first, c[0] != 0): the first row holds -c[1:]/c[0] and the
// sub-diagonal holds ones.
func Companion(c []float64) *mat.Dense {
	n := len(c) - 1
	m := mat.NewDense(n, n, nil)
	for j := range n {
		m.Set(0, j, -c[j+1]/c[0])
	}
	for i := 1; i < n; i++ {
		m.Set(i, i-1, 1)
	}
	return m
}

func eigenvalues(m *mat.Dense) (vals []complex128, err error) {
	defer func() {
		if r := recover(); r != nil {
			vals = nil
			err = fmt.Errorf("eigenvalue decomposition panicked: %v", r)
		}
	}()

	r, c := m.Dims()
	for i := range r {
		for j := range c {
			if v := m.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("companion matrix entry (%d,%d) is %v", i, j, v)
			}
		}
	}

	var eig mat.Eigen
	if ok := eig.Factorize(m, mat.EigenNone); !ok {
		return nil, errFactorize
	}
	vals = eig.Values(nil)
	for _, v := range vals {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return nil, fmt.Errorf("%w: %v", errNonFinite, v)
		}
	}
	return vals, nil
}
