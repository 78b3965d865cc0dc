package polynomial

import (
	"fmt"
	"math"

	"github.com/achernar1030/polyroot/internal/domain"
)

// Degree is the fixed nominal degree of every polynomial the system accepts.
const Degree = 11

// Size is the number of coefficients of a degree-11 polynomial.
const Size = Degree + 1

// Polynomial is a validated degree-11 coefficient vector (immutable value object).
// Index 0 holds the x^11 coefficient, index 11 the constant term.
type Polynomial struct {
	coeffs [Size]float64
}

// New validates and creates a Polynomial.
// Exactly 12 finite coefficients, highest power first.
// A zero leading coefficient is accepted; see IsDegenerate.
func New(values []float64) (Polynomial, error) {
	if values == nil {
		return Polynomial{}, domain.InvalidInputTypef("coefficients must be a list of numbers")
	}
	if len(values) != Size {
		return Polynomial{}, domain.NewCoefficientCount(len(values), Size)
	}

	var p Polynomial
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Polynomial{}, domain.InvalidInputTypef("coefficient of x^%d is not a finite number", Degree-i)
		}
		p.coeffs[i] = v
	}
	return p, nil
}

// Defaults returns the initial coefficients offered to a user: 1.0 for x^11, 0.0 elsewhere.
func Defaults() Polynomial {
	var p Polynomial
	p.coeffs[0] = 1
	return p
}

// Coefficients returns a copy of the coefficients, highest power first.
func (p Polynomial) Coefficients() []float64 {
	out := make([]float64, Size)
	copy(out, p.coeffs[:])
	return out
}

// Leading returns the x^11 coefficient.
func (p Polynomial) Leading() float64 { return p.coeffs[0] }

// IsDegenerate reports whether the leading coefficient is zero.
func (p Polynomial) IsDegenerate() bool { return p.coeffs[0] == 0 }

// IsZero reports whether every coefficient is zero.
func (p Polynomial) IsZero() bool {
	for _, c := range p.coeffs {
		if c != 0 {
			return false
		}
	}
	return true
}

// EffectiveDegree returns the degree given by the first non-zero coefficient.
// The zero polynomial has effective degree -1.
func (p Polynomial) EffectiveDegree() int {
	for i, c := range p.coeffs {
		if c != 0 {
			return Degree - i
		}
	}
	return -1
}

// Eval evaluates the polynomial at x as a direct power sum.
func (p Polynomial) Eval(x float64) float64 {
	var y float64
	for i, c := range p.coeffs {
		y += c * math.Pow(x, float64(Degree-i))
	}
	return y
}

// EvalComplex evaluates the polynomial at a complex point with Horner's scheme.
func (p Polynomial) EvalComplex(z complex128) complex128 {
	var y complex128
	for _, c := range p.coeffs {
		y = y*z + complex(c, 0)
	}
	return y
}

// Term is a single labelled coefficient, as presented to an input form.
type Term struct {
	Power int
	Label string
	Value float64
}

// Terms returns the coefficients labelled by descending power.
func (p Polynomial) Terms() []Term {
	terms := make([]Term, Size)
	for i, c := range p.coeffs {
		power := Degree - i
		terms[i] = Term{Power: power, Label: Label(power), Value: c}
	}
	return terms
}

// Label returns the display label for a power: "x^11" ... "x^1", "constant".
func Label(power int) string {
	if power == 0 {
		return "constant"
	}
	return fmt.Sprintf("x^%d", power)
}

// String renders the polynomial as a sum of non-zero terms.
func (p Polynomial) String() string {
	s := ""
	for i, c := range p.coeffs {
		if c == 0 {
			continue
		}
		power := Degree - i
		sign := " + "
		if c < 0 {
			sign = " - "
		}
		if s == "" {
			sign = ""
			if c < 0 {
				sign = "-"
			}
		}
		mag := math.Abs(c)
		coef := fmt.Sprintf("%g", mag)
		if mag == 1 && power > 0 {
			coef = ""
		}
		switch power {
		case 0:
			s += sign + coef
		case 1:
			s += sign + coef + "x"
		default:
			s += fmt.Sprintf("%s%sx^%d", sign, coef, power)
		}
	}
	if s == "" {
		return "0"
	}
	return s
}
