// Package text renders solve results as plain text listings.
package text

import (
	"fmt"
	"math"
	"strings"

	"github.com/achernar1030/polyroot/internal/domain/polynomial"
	"github.com/achernar1030/polyroot/internal/domain/roots"
	"github.com/achernar1030/polyroot/internal/usecase/solve"
)

const (
	// NoRealRootsMessage is shown instead of a plot when every root is complex.
	NoRealRootsMessage = "This polynomial has no real roots to plot."
	// PlotCaption notes that complex roots do not appear on the plot.
	PlotCaption = "Note: complex roots are not shown on the plot."
)

// Real formats a real root with 6 decimals.
func Real(x float64) string {
	return fmt.Sprintf("%.6f", x)
}

// Complex formats a complex root as a+bi with 6 decimals.
func Complex(z complex128) string {
	return fmt.Sprintf("%.6f%+.6fi", real(z), imag(z))
}

// ComplexSpaced formats a complex root as "a + bi" or "a - bi" with 6 decimals.
func ComplexSpaced(z complex128) string {
	sign := "+"
	if math.Signbit(imag(z)) {
		sign = "-"
	}
	return fmt.Sprintf("%.6f %s %.6fi", real(z), sign, math.Abs(imag(z)))
}

// Display formats a classified root for the per-root listing.
func Display(r roots.Root) string {
	if r.IsReal() {
		return Real(real(r.Value))
	}
	return Complex(r.Value)
}

// Roots returns one line per root in solver order, numbered from 1.
func Roots(set roots.Set) []string {
	lines := make([]string, 0, set.Len())
	for i, r := range set.All() {
		lines = append(lines, fmt.Sprintf("Root %d: %s (%s)", i+1, Display(r), r.Kind))
	}
	return lines
}

// ComplexDetail returns one "- a + bi" line per complex root.
func ComplexDetail(set roots.Set) []string {
	lines := make([]string, 0, len(set.Complex()))
	for _, z := range set.Complex() {
		lines = append(lines, "- "+ComplexSpaced(z))
	}
	return lines
}

// Styler decorates section headings; the identity styler leaves them as-is.
type Styler func(heading string) string

// Report renders the complete plain-text report for a result.
func Report(res solve.Result, style Styler) string {
	if style == nil {
		style = func(s string) string { return s }
	}
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", style("Polynomial"))
	fmt.Fprintf(&b, "P(x) = %s\n", res.Polynomial)
	if d := res.Polynomial.EffectiveDegree(); d != polynomial.Degree {
		fmt.Fprintf(&b, "Effective degree: %d\n", max(d, 0))
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", w.Message)
	}

	fmt.Fprintf(&b, "\n%s\n", style("Roots"))
	if res.Roots.Len() == 0 {
		b.WriteString("No roots: the polynomial is constant.\n")
	}
	for _, line := range Roots(res.Roots) {
		b.WriteString(line + "\n")
	}

	fmt.Fprintf(&b, "\n%s\n", style("Real roots"))
	if res.NoRealRoots {
		b.WriteString(NoRealRootsMessage + "\n")
	} else {
		reals := make([]string, len(res.Roots.Real()))
		for i, x := range res.Roots.Real() {
			reals[i] = Real(x)
		}
		b.WriteString(strings.Join(reals, ", ") + "\n")
		if res.Curve != nil {
			fmt.Fprintf(&b, "Plot range: [%s, %s]\n", Real(res.Curve.MinX), Real(res.Curve.MaxX))
		}
		b.WriteString(PlotCaption + "\n")
	}

	if detail := ComplexDetail(res.Roots); len(detail) > 0 {
		fmt.Fprintf(&b, "\n%s\n", style("Complex roots"))
		for _, line := range detail {
			b.WriteString(line + "\n")
		}
	}

	return b.String()
}
