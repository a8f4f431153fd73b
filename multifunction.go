package shapelet

import (
	"fmt"
	"math"
)

// MultiShapeletFunction is an ordered sum of shapelet expansions.
// Components keep their insertion order; summation itself is commutative,
// but the order determines iteration for comparison, convolution output
// and persistence. No deduplication is performed.
type MultiShapeletFunction struct {
	components []*ShapeletFunction
}

// NewMultiShapeletFunction creates an empty multi-shapelet function.
func NewMultiShapeletFunction() *MultiShapeletFunction {
	return &MultiShapeletFunction{}
}

// AddComponent appends a deep copy of the component.
func (m *MultiShapeletFunction) AddComponent(f *ShapeletFunction) {
	m.components = append(m.components, f.Clone())
}

// Components returns the ordered component list. The slice is owned by the
// function; treat it as read-only.
func (m *MultiShapeletFunction) Components() []*ShapeletFunction {
	return m.components
}

// Len returns the number of components.
func (m *MultiShapeletFunction) Len() int { return len(m.components) }

// Clone returns a deep copy.
func (m *MultiShapeletFunction) Clone() *MultiShapeletFunction {
	out := NewMultiShapeletFunction()
	for _, c := range m.components {
		out.components = append(out.components, c.Clone())
	}
	return out
}

// ShiftInPlace translates every component by offset.
func (m *MultiShapeletFunction) ShiftInPlace(offset Point) {
	for _, c := range m.components {
		c.ShiftInPlace(offset)
	}
}

// TransformInPlace maps every component's frame through an affine
// transform. On error no component has been modified.
func (m *MultiShapeletFunction) TransformInPlace(t Transform) error {
	for _, c := range m.components {
		if !c.ellipse.Transformed(t).Core.IsValid() {
			return fmt.Errorf("%w: transform produces a degenerate ellipse", ErrInvalidArgument)
		}
	}
	for _, c := range m.components {
		c.ellipse = c.ellipse.Transformed(t)
	}
	return nil
}

// Normalize rescales all coefficients so the total integral equals value.
func (m *MultiShapeletFunction) Normalize(value float64) error {
	flux := m.Evaluate().Integrate()
	if flux == 0 || math.IsNaN(flux) {
		return fmt.Errorf("%w: cannot normalize function with zero integral", ErrDegenerate)
	}
	scale := value / flux
	for _, c := range m.components {
		for i := range c.coefficients {
			c.coefficients[i] *= scale
		}
	}
	return nil
}

// Convolve returns the analytic convolution with other. Output components
// are produced in nested iteration order: for each component of m (outer),
// for each component of other (inner), yielding Len()*other.Len()
// components.
func (m *MultiShapeletFunction) Convolve(other *MultiShapeletFunction) *MultiShapeletFunction {
	out := NewMultiShapeletFunction()
	for _, a := range m.components {
		for _, b := range other.components {
			out.components = append(out.components, convolveComponents(a, b))
		}
	}
	return out
}

// Evaluate returns a lazy evaluator for the summed profile.
func (m *MultiShapeletFunction) Evaluate() *MultiEvaluator {
	evs := make([]*Evaluator, len(m.components))
	for i, c := range m.components {
		evs[i] = c.Evaluate()
	}
	return &MultiEvaluator{evaluators: evs}
}

// MultiEvaluator evaluates the sum of a multi-shapelet function's
// components. Like Evaluator it reuses workspaces and must not be shared
// between goroutines.
type MultiEvaluator struct {
	evaluators []*Evaluator
}

// At returns the summed value at (x, y).
func (ev *MultiEvaluator) At(x, y float64) float64 {
	var sum float64
	for _, e := range ev.evaluators {
		sum += e.At(x, y)
	}
	return sum
}

// AtPoint returns the summed value at p.
func (ev *MultiEvaluator) AtPoint(p Point) float64 {
	return ev.At(p.X, p.Y)
}

// Grid evaluates the sum on the outer product of the coordinate arrays,
// with out[i][j] = value at (x[j], y[i]).
func (ev *MultiEvaluator) Grid(x, y []float64) [][]float64 {
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

// AddToImage accumulates the sum into an existing image buffer.
func (ev *MultiEvaluator) AddToImage(img [][]float64, x, y []float64) error {
	for _, e := range ev.evaluators {
		if err := e.AddToImage(img, x, y); err != nil {
			return err
		}
	}
	return nil
}

// Integrate returns the integral of the sum over the infinite plane.
func (ev *MultiEvaluator) Integrate() float64 {
	var sum float64
	for _, e := range ev.evaluators {
		sum += e.Integrate()
	}
	return sum
}

// ComputeMoments returns the analytic moments of the summed profile,
// combining per-component moments flux-weighted about the common centroid.
func (ev *MultiEvaluator) ComputeMoments() Moments {
	var flux, cx, cy float64
	parts := make([]Moments, len(ev.evaluators))
	for i, e := range ev.evaluators {
		parts[i] = e.ComputeMoments()
		flux += parts[i].Flux
		cx += parts[i].Flux * parts[i].Centroid.X
		cy += parts[i].Flux * parts[i].Centroid.Y
	}
	centroid := Pt(cx/flux, cy/flux)
	var q Quadrupole
	for _, p := range parts {
		d := p.Centroid.Sub(centroid)
		q.Ixx += p.Flux * (p.Second.Ixx + d.X*d.X)
		q.Iyy += p.Flux * (p.Second.Iyy + d.Y*d.Y)
		q.Ixy += p.Flux * (p.Second.Ixy + d.X*d.Y)
	}
	q.Ixx /= flux
	q.Iyy /= flux
	q.Ixy /= flux
	return Moments{Flux: flux, Centroid: centroid, Second: q}
}
