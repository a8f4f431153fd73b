package shapelet

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLaguerreConversionOrthogonal(t *testing.T) {
	for _, order := range []int{0, 1, 2, 3, 4, 6} {
		n := ComputeSize(order)
		b := laguerreToHermite(order)
		var prod mat.Dense
		prod.Mul(b.T(), b)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				want := 0.0
				if i == j {
					want = 1
				}
				if math.Abs(prod.At(i, j)-want) > 1e-12 {
					t.Fatalf("order %d: (B^T B)[%d,%d] = %v, want %v",
						order, i, j, prod.At(i, j), want)
				}
			}
		}
	}
}

func TestLaguerreConversionOrderZero(t *testing.T) {
	// The order-0 members of both families are the same Gaussian.
	in := []float64{1.25}
	out := toHermiteCoefficients(Laguerre, 0, in)
	checkClose(t, out[0], 1.25, 1e-14, "order-0 conversion")
}

func TestChangeBasisTypePreservesValues(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for _, order := range []int{1, 2, 3, 4} {
		f := makeRandomFunction(rng, order)
		points := []Point{{0, 0}, {1, 0.5}, {-2, 1.5}, {0.3, -0.7}}
		before := make([]float64, len(points))
		ev := f.Evaluate()
		for i, p := range points {
			before[i] = ev.AtPoint(p)
		}
		flux := ev.Integrate()

		if err := f.ChangeBasisType(Laguerre); err != nil {
			t.Fatal(err)
		}
		if f.BasisType() != Laguerre {
			t.Fatalf("basis type = %v after conversion", f.BasisType())
		}
		ev = f.Evaluate()
		for i, p := range points {
			checkClose(t, ev.AtPoint(p), before[i], 1e-12, "value after conversion")
		}
		checkClose(t, ev.Integrate(), flux, 1e-12, "flux after conversion")
	}
}

func TestChangeBasisTypeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(29))
	f := makeRandomFunction(rng, 4)
	orig := append([]float64(nil), f.Coefficients()...)
	if err := f.ChangeBasisType(Laguerre); err != nil {
		t.Fatal(err)
	}
	if err := f.ChangeBasisType(Hermite); err != nil {
		t.Fatal(err)
	}
	for i, c := range f.Coefficients() {
		checkClose(t, c, orig[i], 1e-12, "round-trip coefficient")
	}
}

func TestChangeBasisTypeNoOp(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	f := makeRandomFunction(rng, 2)
	orig := append([]float64(nil), f.Coefficients()...)
	if err := f.ChangeBasisType(Hermite); err != nil {
		t.Fatal(err)
	}
	for i, c := range f.Coefficients() {
		if c != orig[i] {
			t.Fatalf("no-op conversion changed coefficient %d", i)
		}
	}
}
