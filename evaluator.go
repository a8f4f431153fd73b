package shapelet

import (
	"fmt"
	"math"
)

// Evaluator evaluates a shapelet expansion at arbitrary points. It captures
// the function's state at construction time; later coefficient mutation is
// not observed. An Evaluator reuses internal workspaces, so a single
// instance must not be shared between goroutines; obtain one per goroutine
// from ShapeletFunction.Evaluate.
type Evaluator struct {
	order        int
	coefficients []float64 // Hermite packing
	transform    Transform // maps the plane onto the unit-circle frame
	detFactor    float64
	xw, yw       []float64
}

func newEvaluator(f *ShapeletFunction) *Evaluator {
	coeffs := toHermiteCoefficients(f.basisType, f.order, f.coefficients)
	if &coeffs[0] == &f.coefficients[0] {
		c := make([]float64, len(coeffs))
		copy(c, coeffs)
		coeffs = c
	}
	t := f.ellipse.GridTransform()
	return &Evaluator{
		order:        f.order,
		coefficients: coeffs,
		transform:    t,
		detFactor:    t.Determinant(),
		xw:           make([]float64, f.order+1),
		yw:           make([]float64, f.order+1),
	}
}

// At returns the function value at (x, y).
func (ev *Evaluator) At(x, y float64) float64 {
	u := ev.transform.Apply(Pt(x, y))
	hermiteSeries(ev.xw, u.X)
	hermiteSeries(ev.yw, u.Y)
	var sum float64
	for i := (PackedIndex{}); i.Order() <= ev.order; i.Next() {
		sum += ev.coefficients[i.Index()] * ev.xw[i.X()] * ev.yw[i.Y()]
	}
	return sum * ev.detFactor * math.Exp(-0.5*(u.X*u.X+u.Y*u.Y))
}

// AtPoint returns the function value at p.
func (ev *Evaluator) AtPoint(p Point) float64 {
	return ev.At(p.X, p.Y)
}

// Grid evaluates the function on the outer product of the coordinate
// arrays, returning out[i][j] = value at (x[j], y[i]): row index is y and
// column index is x, following the standard image convention.
func (ev *Evaluator) Grid(x, y []float64) [][]float64 {
	out := make([][]float64, len(y))
	for i := range y {
		row := make([]float64, len(x))
		for j := range x {
			row[j] = ev.At(x[j], y[i])
		}
		out[i] = row
	}
	return out
}

// AddToImage accumulates the function into an existing image buffer with
// the same grid convention as Grid. The buffer's dimensions must match the
// coordinate arrays.
func (ev *Evaluator) AddToImage(img [][]float64, x, y []float64) error {
	if len(img) != len(y) {
		return fmt.Errorf("%w: image has %d rows, y has %d values", ErrInvalidArgument, len(img), len(y))
	}
	for i := range img {
		if len(img[i]) != len(x) {
			return fmt.Errorf("%w: image row %d has %d columns, x has %d values",
				ErrInvalidArgument, i, len(img[i]), len(x))
		}
	}
	for i := range y {
		for j := range x {
			img[i][j] += ev.At(x[j], y[i])
		}
	}
	return nil
}

// Integrate returns the integral of the function over the infinite plane,
// in closed form from the 1D Gauss-Hermite integrals.
func (ev *Evaluator) Integrate() float64 {
	ints := hermiteIntegrals(ev.order)
	var sum float64
	for i := (PackedIndex{}); i.Order() <= ev.order; i.Next() {
		sum += ev.coefficients[i.Index()] * ints[i.X()] * ints[i.Y()]
	}
	return sum
}

// Moments holds the analytic image moments of a profile: total flux,
// flux-weighted centroid, and central second moments.
type Moments struct {
	Flux     float64
	Centroid Point
	Second   Quadrupole
}

// ComputeMoments returns the analytic moments of the function. The results
// are meaningful only for profiles with positive total flux.
func (ev *Evaluator) ComputeMoments() Moments {
	i0 := hermiteIntegrals(ev.order)
	k1 := hermiteMoment1(ev.order)
	l2 := hermiteMoment2(ev.order)

	var flux, mx, my, sxx, syy, sxy float64
	for i := (PackedIndex{}); i.Order() <= ev.order; i.Next() {
		c := ev.coefficients[i.Index()]
		nx, ny := i.X(), i.Y()
		flux += c * i0[nx] * i0[ny]
		mx += c * k1[nx] * i0[ny]
		my += c * i0[nx] * k1[ny]
		sxx += c * l2[nx] * i0[ny]
		syy += c * i0[nx] * l2[ny]
		sxy += c * k1[nx] * k1[ny]
	}

	// Map the unit-frame moments back through the inverse grid transform.
	inv := LinearTransform(ev.transform.A, ev.transform.B, ev.transform.D, ev.transform.E).Invert()
	mu := inv.ApplyLinear(Pt(mx/flux, my/flux))
	s := Quadrupole{Ixx: sxx / flux, Iyy: syy / flux, Ixy: sxy / flux}.transformed(inv)

	// The grid transform's translation encodes -T*center.
	center := inv.ApplyLinear(Pt(-ev.transform.C, -ev.transform.F))
	return Moments{
		Flux:     flux,
		Centroid: center.Add(mu),
		Second: Quadrupole{
			Ixx: s.Ixx - mu.X*mu.X,
			Iyy: s.Iyy - mu.Y*mu.Y,
			Ixy: s.Ixy - mu.X*mu.Y,
		},
	}
}
