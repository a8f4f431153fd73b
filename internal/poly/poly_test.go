package poly

import (
	"math"
	"testing"
)

func TestMul(t *testing.T) {
	// (1 + x) * (2 + y) = 2 + 2x + y + xy
	a := New(1)
	a.AddTerm(0, 0, 1)
	a.AddTerm(1, 0, 1)
	b := New(1)
	b.AddTerm(0, 0, 2)
	b.AddTerm(0, 1, 1)

	p := Mul(a, b)
	if p.Degree() != 2 {
		t.Fatalf("degree = %d, want 2", p.Degree())
	}
	want := map[[2]int]float64{
		{0, 0}: 2, {1, 0}: 2, {0, 1}: 1, {1, 1}: 1,
	}
	for i := 0; i <= 2; i++ {
		for j := 0; j <= 2-i; j++ {
			if got := p.Coeff(i, j); got != want[[2]int{i, j}] {
				t.Errorf("coeff(%d,%d) = %v, want %v", i, j, got, want[[2]int{i, j}])
			}
		}
	}
}

func TestEval(t *testing.T) {
	// p = 3 - x + 2y + x^2 y
	p := New(3)
	p.AddTerm(0, 0, 3)
	p.AddTerm(1, 0, -1)
	p.AddTerm(0, 1, 2)
	p.AddTerm(2, 1, 1)
	cases := []struct{ x, y, want float64 }{
		{0, 0, 3},
		{1, 1, 5},
		{2, -1, -5},
		{-1.5, 0.5, 6.625},
	}
	for _, c := range cases {
		if got := p.Eval(c.x, c.y); math.Abs(got-c.want) > 1e-13 {
			t.Errorf("Eval(%v, %v) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestCompose(t *testing.T) {
	// Substituting u = 2x + y, v = x - y into p(s, t) = s*t + s must agree
	// with direct evaluation.
	p := New(2)
	p.AddTerm(1, 1, 1)
	p.AddTerm(1, 0, 1)
	comp := Compose(p, Linear(2, 1, 0), Linear(1, -1, 0))
	for _, pt := range [][2]float64{{0, 0}, {1, 2}, {-0.5, 3}, {2.25, -1.75}} {
		x, y := pt[0], pt[1]
		u := 2*x + y
		v := x - y
		want := u*v + u
		if got := comp.Eval(x, y); math.Abs(got-want) > 1e-12 {
			t.Errorf("compose at (%v, %v) = %v, want %v", x, y, got, want)
		}
	}
}

func TestComposeAffine(t *testing.T) {
	// Constant offsets in the substitution are carried through.
	p := New(1)
	p.AddTerm(1, 0, 1)
	comp := Compose(p, Linear(1, 0, 5), Linear(0, 1, 0))
	if got := comp.Eval(2, 3); math.Abs(got-7) > 1e-13 {
		t.Errorf("compose with offset = %v, want 7", got)
	}
}

func TestPowers(t *testing.T) {
	u := Linear(1, 1, 0)
	pow := Powers(u, 3)
	if len(pow) != 4 {
		t.Fatalf("Powers returned %d entries, want 4", len(pow))
	}
	if got := pow[0].Eval(4, 7); got != 1 {
		t.Errorf("u^0 = %v, want 1", got)
	}
	if got := pow[3].Eval(1, 2); math.Abs(got-27) > 1e-13 {
		t.Errorf("u^3(1,2) = %v, want 27", got)
	}
}

func TestAddScaledAndScale(t *testing.T) {
	p := New(1)
	p.AddTerm(1, 0, 2)
	q := New(1)
	q.AddTerm(1, 0, 1)
	q.AddTerm(0, 1, 4)
	p.AddScaled(q, 0.5)
	if got := p.Coeff(1, 0); got != 2.5 {
		t.Errorf("coeff(1,0) = %v, want 2.5", got)
	}
	if got := p.Coeff(0, 1); got != 2 {
		t.Errorf("coeff(0,1) = %v, want 2", got)
	}
	p.Scale(2)
	if got := p.Coeff(1, 0); got != 5 {
		t.Errorf("scaled coeff(1,0) = %v, want 5", got)
	}
}
