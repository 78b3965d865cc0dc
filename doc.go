// Package polyroot solves degree 11 polynomial equations.
//
// Roots are the eigenvalues of the companion matrix, so every call returns
// all roots, real and complex, of
//
//	c11*x^11 + c10*x^10 + ... + c1*x + c0 = 0
//
// with coefficients given highest power first. Real roots are separated
// with a relative tolerance and the curve is sampled around them for
// plotting.
//
//	s, _ := polyroot.New(polyroot.WithPlotSize(800, 500))
//	res, err := s.Solve(ctx, []float64{1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, -1})
//	if errors.Is(err, polyroot.ErrInvalidCoefficientCount) {
//	    // ...
//	}
//	_ = s.PlotPNG(ctx, coeffs, w) // ErrNoRealRoots when there is nothing to plot
package polyroot
