package shapelet

import (
	"math/rand"
	"testing"
)

func TestGridConvention(t *testing.T) {
	f := makeRandomFunction(rand.New(rand.NewSource(41)), 2)
	ev := f.Evaluate()
	x := linspace(-3, 3, 7)
	y := linspace(-2, 2, 5)
	img := ev.Grid(x, y)
	if len(img) != len(y) || len(img[0]) != len(x) {
		t.Fatalf("grid is %dx%d, want %dx%d", len(img), len(img[0]), len(y), len(x))
	}
	for i := range y {
		for j := range x {
			checkClose(t, img[i][j], ev.At(x[j], y[i]), 1e-14, "grid value")
		}
	}
}

func TestAddToImage(t *testing.T) {
	f := makeRandomFunction(rand.New(rand.NewSource(43)), 1)
	ev := f.Evaluate()
	x := linspace(-2, 2, 5)
	y := linspace(-2, 2, 5)
	img := make([][]float64, len(y))
	for i := range img {
		img[i] = make([]float64, len(x))
		for j := range img[i] {
			img[i][j] = 100
		}
	}
	if err := ev.AddToImage(img, x, y); err != nil {
		t.Fatal(err)
	}
	for i := range y {
		for j := range x {
			checkClose(t, img[i][j], 100+ev.At(x[j], y[i]), 1e-12, "accumulated value")
		}
	}

	bad := make([][]float64, 2)
	for i := range bad {
		bad[i] = make([]float64, 3)
	}
	if err := ev.AddToImage(bad, x, y); err == nil {
		t.Error("expected dimension mismatch error")
	}
}

func TestGaussianMoments(t *testing.T) {
	// A pure Gaussian recovers its defining ellipse exactly.
	rng := rand.New(rand.NewSource(47))
	for trial := 0; trial < 10; trial++ {
		e := randEllipse(rng)
		f, err := NewShapeletFunction(0, Hermite, e)
		if err != nil {
			t.Fatal(err)
		}
		f.Coefficients()[0] = 0.5 + rng.Float64()
		m := f.Evaluate().ComputeMoments()
		checkClose(t, m.Flux, f.Coefficients()[0]*FluxFactor, 1e-12, "flux")
		checkClose(t, m.Centroid.X, e.Center.X, 1e-12, "centroid x")
		checkClose(t, m.Centroid.Y, e.Center.Y, 1e-12, "centroid y")
		checkClose(t, m.Second.Ixx, e.Core.Ixx, 1e-11, "Ixx")
		checkClose(t, m.Second.Iyy, e.Core.Iyy, 1e-11, "Iyy")
		checkClose(t, m.Second.Ixy, e.Core.Ixy, 1e-11, "Ixy")
	}
}

func TestMomentsMatchGridSums(t *testing.T) {
	// Cross-check the analytic moments against discrete sums over a fine
	// grid wide enough to capture essentially all the flux.
	rng := rand.New(rand.NewSource(53))
	f := makeRandomFunction(rng, 3)
	ev := f.Evaluate()

	const step = 0.1
	x := linspace(-16, 16, 321)
	y := linspace(-16, 16, 321)
	img := ev.Grid(x, y)

	var flux, mx, my float64
	for i := range y {
		for j := range x {
			v := img[i][j]
			flux += v
			mx += v * x[j]
			my += v * y[i]
		}
	}
	cell := step * step
	flux *= cell
	mx *= cell
	my *= cell

	m := ev.ComputeMoments()
	checkClose(t, m.Flux, flux, 1e-6, "flux vs grid sum")
	checkClose(t, m.Centroid.X, mx/flux, 1e-6, "centroid x vs grid sum")
	checkClose(t, m.Centroid.Y, my/flux, 1e-6, "centroid y vs grid sum")

	var sxx, syy, sxy float64
	for i := range y {
		for j := range x {
			v := img[i][j]
			dx := x[j] - m.Centroid.X
			dy := y[i] - m.Centroid.Y
			sxx += v * dx * dx
			syy += v * dy * dy
			sxy += v * dx * dy
		}
	}
	checkClose(t, m.Second.Ixx, sxx*cell/flux, 1e-5, "Ixx vs grid sum")
	checkClose(t, m.Second.Iyy, syy*cell/flux, 1e-5, "Iyy vs grid sum")
	checkClose(t, m.Second.Ixy, sxy*cell/flux, 1e-5, "Ixy vs grid sum")
}

func TestIntegrateMatchesMomentsFlux(t *testing.T) {
	rng := rand.New(rand.NewSource(59))
	for trial := 0; trial < 5; trial++ {
		ev := makeRandomFunction(rng, 4).Evaluate()
		checkClose(t, ev.Integrate(), ev.ComputeMoments().Flux, 1e-13, "flux")
	}
}

func TestEvaluatorSnapshot(t *testing.T) {
	// An evaluator keeps working on the state it was built from even when
	// the function changes afterwards.
	f := makeRandomFunction(rand.New(rand.NewSource(61)), 1)
	ev := f.Evaluate()
	before := ev.At(0.5, 0.5)
	f.Coefficients()[0] += 5
	f.ShiftInPlace(Pt(2, 2))
	if got := ev.At(0.5, 0.5); got != before {
		t.Errorf("evaluator value changed after mutation: %v != %v", got, before)
	}
}
