package shapelet

import (
	"math"
	"math/rand"
	"testing"
)

// checkClose fails the test when got and want differ by more than tol,
// relative to the larger magnitude once it exceeds 1.
func checkClose(t *testing.T, got, want, tol float64, what string) {
	t.Helper()
	scale := math.Max(1, math.Max(math.Abs(got), math.Abs(want)))
	if math.Abs(got-want) > tol*scale {
		t.Errorf("%s = %v, want %v (tol %v)", what, got, want, tol)
	}
}

// checkImagesClose compares two image buffers with a tolerance relative to
// the peak of the expected image.
func checkImagesClose(t *testing.T, got, want [][]float64, rtol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("image has %d rows, want %d", len(got), len(want))
	}
	peak := 0.0
	for _, row := range want {
		for _, v := range row {
			peak = math.Max(peak, math.Abs(v))
		}
	}
	for i := range want {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("image row %d has %d columns, want %d", i, len(got[i]), len(want[i]))
		}
		for j := range want[i] {
			if math.Abs(got[i][j]-want[i][j]) > rtol*peak {
				t.Fatalf("image[%d][%d] = %v, want %v (rtol %v of peak %v)",
					i, j, got[i][j], want[i][j], rtol, peak)
			}
		}
	}
}

// linspace returns n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

// unitVector returns the canonical unit vector e_i of length n.
func unitVector(i, n int) []float64 {
	v := make([]float64, n)
	v[i] = 1
	return v
}

func randQuadrupole(rng *rand.Rand) Quadrupole {
	ixx := 1.0 + 2.5*rng.Float64()
	iyy := 1.0 + 2.5*rng.Float64()
	ixy := (rng.Float64() - 0.5) * math.Sqrt(ixx*iyy)
	return Quadrupole{Ixx: ixx, Iyy: iyy, Ixy: ixy}
}

func randEllipse(rng *rand.Rand) Ellipse {
	return NewEllipse(randQuadrupole(rng), Pt(2*rng.Float64()-1, 2*rng.Float64()-1))
}

// makeRandomFunction builds a Hermite expansion with a dominant positive
// Gaussian term so the total flux stays positive.
func makeRandomFunction(rng *rand.Rand, order int) *ShapeletFunction {
	f, err := NewShapeletFunction(order, Hermite, randEllipse(rng))
	if err != nil {
		panic(err)
	}
	coeffs := f.Coefficients()
	for i := range coeffs {
		coeffs[i] = 0.1 * rng.NormFloat64()
	}
	coeffs[0] = 1 + rng.Float64()
	return f
}

func makeRandomMulti(rng *rand.Rand, orders ...int) *MultiShapeletFunction {
	msf := NewMultiShapeletFunction()
	for _, order := range orders {
		msf.AddComponent(makeRandomFunction(rng, order))
	}
	return msf
}

// compareMultiFunctions checks component-wise near-equality at the
// granularity of order, basis type, ellipse parameters and coefficients.
func compareMultiFunctions(t *testing.T, got, want *MultiShapeletFunction, tol float64) {
	t.Helper()
	if got.Len() != want.Len() {
		t.Fatalf("function has %d components, want %d", got.Len(), want.Len())
	}
	for i := range want.Components() {
		g, w := got.Components()[i], want.Components()[i]
		if g.Order() != w.Order() {
			t.Errorf("component %d order = %d, want %d", i, g.Order(), w.Order())
		}
		if g.BasisType() != w.BasisType() {
			t.Errorf("component %d basis = %v, want %v", i, g.BasisType(), w.BasisType())
		}
		gp, wp := g.Ellipse().Parameters(), w.Ellipse().Parameters()
		for k := range wp {
			checkClose(t, gp[k], wp[k], tol, "component ellipse parameter")
		}
		gc, wc := g.Coefficients(), w.Coefficients()
		if len(gc) != len(wc) {
			t.Fatalf("component %d has %d coefficients, want %d", i, len(gc), len(wc))
		}
		for k := range wc {
			checkClose(t, gc[k], wc[k], tol, "component coefficient")
		}
	}
}
