// Package poly implements dense bivariate polynomial algebra for the
// analytic convolution machinery. Degrees stay small (twice the largest
// shapelet order), so a dense coefficient grid is both simple and fast.
package poly

// Poly is a real polynomial in two variables. Coefficients are stored on a
// dense (deg+1) x (deg+1) grid indexed by the exponent pair.
type Poly struct {
	deg int
	c   []float64
}

// New returns the zero polynomial that can hold terms up to total degree deg.
func New(deg int) *Poly {
	if deg < 0 {
		deg = 0
	}
	return &Poly{deg: deg, c: make([]float64, (deg+1)*(deg+1))}
}

// Degree returns the maximum representable degree.
func (p *Poly) Degree() int { return p.deg }

// Coeff returns the coefficient of x^i * y^j, zero when out of range.
func (p *Poly) Coeff(i, j int) float64 {
	if i < 0 || j < 0 || i > p.deg || j > p.deg {
		return 0
	}
	return p.c[i*(p.deg+1)+j]
}

// AddTerm adds v to the coefficient of x^i * y^j.
func (p *Poly) AddTerm(i, j int, v float64) {
	p.c[i*(p.deg+1)+j] += v
}

// AddScaled adds s * q to p. q must fit within p's degree.
func (p *Poly) AddScaled(q *Poly, s float64) {
	for i := 0; i <= q.deg; i++ {
		for j := 0; j <= q.deg; j++ {
			if v := q.Coeff(i, j); v != 0 {
				p.AddTerm(i, j, s*v)
			}
		}
	}
}

// Scale multiplies all coefficients by s.
func (p *Poly) Scale(s float64) {
	for i := range p.c {
		p.c[i] *= s
	}
}

// Mul returns the product of two polynomials.
func Mul(a, b *Poly) *Poly {
	out := New(a.deg + b.deg)
	for i := 0; i <= a.deg; i++ {
		for j := 0; j <= a.deg; j++ {
			av := a.Coeff(i, j)
			if av == 0 {
				continue
			}
			for k := 0; k <= b.deg; k++ {
				for l := 0; l <= b.deg; l++ {
					if bv := b.Coeff(k, l); bv != 0 {
						out.AddTerm(i+k, j+l, av*bv)
					}
				}
			}
		}
	}
	return out
}

// Linear returns the polynomial a*x + b*y + c.
func Linear(a, b, c float64) *Poly {
	p := New(1)
	p.AddTerm(1, 0, a)
	p.AddTerm(0, 1, b)
	p.AddTerm(0, 0, c)
	return p
}

// Constant returns the constant polynomial v.
func Constant(v float64) *Poly {
	p := New(0)
	p.AddTerm(0, 0, v)
	return p
}

// Powers returns the powers p^0 .. p^n.
func Powers(p *Poly, n int) []*Poly {
	out := make([]*Poly, n+1)
	out[0] = Constant(1)
	for k := 1; k <= n; k++ {
		out[k] = Mul(out[k-1], p)
	}
	return out
}

// Compose substitutes two polynomials for the variables of p:
// result(x, y) = p(u(x, y), v(x, y)).
func Compose(p, u, v *Poly) *Poly {
	du := u.deg
	dv := v.deg
	if du < 1 {
		du = 1
	}
	if dv < 1 {
		dv = 1
	}
	out := New(p.deg * max(du, dv))
	up := Powers(u, p.deg)
	vp := Powers(v, p.deg)
	for i := 0; i <= p.deg; i++ {
		for j := 0; j <= p.deg-i; j++ {
			if c := p.Coeff(i, j); c != 0 {
				out.AddScaled(Mul(up[i], vp[j]), c)
			}
		}
	}
	return out
}

// Eval evaluates the polynomial at (x, y) by direct summation.
func (p *Poly) Eval(x, y float64) float64 {
	var sum float64
	xp := 1.0
	for i := 0; i <= p.deg; i++ {
		yp := 1.0
		for j := 0; j <= p.deg; j++ {
			if c := p.Coeff(i, j); c != 0 {
				sum += c * xp * yp
			}
			yp *= y
		}
		xp *= x
	}
	return sum
}
