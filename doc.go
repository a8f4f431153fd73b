// Package shapelet models localized 2D intensity profiles as weighted
// Gauss-Hermite and Gauss-Laguerre expansions, the representation commonly
// used for point-spread functions and galaxy profiles in astronomical
// image modeling.
//
// # Overview
//
// A ShapeletFunction is a single expansion: an order, a basis family, an
// elliptical coordinate frame and a coefficient vector. A
// MultiShapeletFunction sums several expansions into a composite profile,
// and a MultiShapeletBasis maps a small free-coefficient vector to a
// parametrized family of such profiles for model fitting.
//
// # Quick Start
//
//	import "github.com/batmanuel-sandbox/shapelet"
//
//	// A unit-flux elliptical Gaussian.
//	q, _ := shapelet.NewQuadrupole(6, 5, 2)
//	f, _ := shapelet.NewShapeletFunction(0, shapelet.Hermite, shapelet.NewEllipse(q, shapelet.Pt(0, 0)))
//	f.Coefficients()[0] = 1 / shapelet.FluxFactor
//
//	// Evaluate anywhere, or integrate analytically.
//	v := f.Evaluate().At(1.5, -0.5)
//	flux := f.Evaluate().Integrate()
//
// # Analytic operations
//
// Convolution of two expansions is closed-form: Gaussians convolve by
// adding covariances and multiplying fluxes, and higher orders convolve
// exactly into an expansion of the combined order on the summed ellipse.
// Integration and image moments are likewise closed-form, which makes them
// usable as correctness oracles against rasterized images.
//
// # Concurrency
//
// The package holds no shared mutable state. Values and functions may be
// read concurrently; Evaluator and MultiEvaluator reuse workspaces, so
// obtain one per goroutine.
package shapelet
