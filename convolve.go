package shapelet

import (
	"math"

	"github.com/batmanuel-sandbox/shapelet/internal/poly"
)

// convolveComponents computes the analytic convolution of two shapelet
// expansions. The result is a Hermite expansion of order
// f.Order()+g.Order() on the summed ellipse.
//
// Two pure Gaussians convolve in closed form: covariances add, centers
// add, and the output amplitude is the flux product re-expressed as a
// zeroth coefficient, c = FluxFactor * c1 * c2. Higher orders go through
// the polynomial-times-Gaussian representation: each operand is expanded
// to P(x) * exp(-x' Q^-1 x / 2), the convolution integral is evaluated
// with Gaussian moment recurrences, and the product is projected back
// onto the Hermite basis of the summed covariance, which represents it
// exactly because the polynomial degree never exceeds the combined order.
func convolveComponents(f, g *ShapeletFunction) *ShapeletFunction {
	ellipse := f.ellipse.Convolve(g.ellipse)
	if f.order == 0 && g.order == 0 {
		out, _ := NewShapeletFunction(0, Hermite, ellipse)
		out.coefficients[0] = FluxFactor * f.coefficients[0] * g.coefficients[0]
		return out
	}

	logger().Debug("general-order shapelet convolution",
		"orderA", f.order, "orderB", g.order)

	p1, q1 := toPolyGaussian(f)
	p2, q2 := toPolyGaussian(g)
	p3 := convolvePolyGaussians(p1, q1, p2, q2)
	return projectPolyGaussian(p3, ellipse, f.order+g.order)
}

// toPolyGaussian expands a shapelet function, relative to its center, as
// P(x) * exp(-x' Q^-1 x / 2) with Q the ellipse core.
func toPolyGaussian(f *ShapeletFunction) (*poly.Poly, Quadrupole) {
	coeffs := toHermiteCoefficients(f.basisType, f.order, f.coefficients)
	hc := hermitePolyCoeffs(f.order)
	hn := hermiteNorms(f.order)

	// Polynomial part in the unit-circle frame u.
	pu := poly.New(f.order)
	for i := (PackedIndex{}); i.Order() <= f.order; i.Next() {
		c := coeffs[i.Index()] * hn[i.X()] * hn[i.Y()]
		if c == 0 {
			continue
		}
		for k1 := i.X() % 2; k1 <= i.X(); k1 += 2 {
			for k2 := i.Y() % 2; k2 <= i.Y(); k2 += 2 {
				pu.AddTerm(k1, k2, c*hc[i.X()][k1]*hc[i.Y()][k2])
			}
		}
	}

	// Substitute u = T*x and fold in the transform determinant.
	t := f.ellipse.Core.GridTransform()
	p := poly.Compose(pu, poly.Linear(t.A, t.B, 0), poly.Linear(t.D, t.E, 0))
	p.Scale(t.Determinant())
	return p, f.ellipse.Core
}

// convolvePolyGaussians evaluates the convolution of P1*G(Q1) and P2*G(Q2)
// as a polynomial times G(Q1+Q2).
//
// With A = Q1^-1, B = Q2^-1, M = A+B and Sigma = M^-1, the inner integral
// over y is a Gaussian expectation with mean Sigma*B*x and covariance
// Sigma, so E[P1(Y) P2(x-Y)] is a polynomial in x obtained from the Stein
// moment recurrence. The envelope collapses to exp(-x' (Q1+Q2)^-1 x / 2)
// with a 2*pi/sqrt(det M) prefactor.
func convolvePolyGaussians(p1 *poly.Poly, q1 Quadrupole, p2 *poly.Poly, q2 Quadrupole) *poly.Poly {
	a := q1.Inverse()
	b := q2.Inverse()
	m := a.Add(b)
	sigma := m.Inverse()

	// Mean map N = Sigma*B (full 2x2, not symmetric in general).
	n11 := sigma.Ixx*b.Ixx + sigma.Ixy*b.Ixy
	n12 := sigma.Ixx*b.Ixy + sigma.Ixy*b.Iyy
	n21 := sigma.Ixy*b.Ixx + sigma.Iyy*b.Ixy
	n22 := sigma.Ixy*b.Ixy + sigma.Iyy*b.Iyy
	m1 := poly.Linear(n11, n12, 0)
	m2 := poly.Linear(n21, n22, 0)

	// Moment table E[Y1^i Y2^j] as polynomials in x.
	deg := p1.Degree() + p2.Degree()
	moments := make([][]*poly.Poly, deg+1)
	for i := range moments {
		moments[i] = make([]*poly.Poly, deg+1-i)
	}
	moments[0][0] = poly.Constant(1)
	for i := 0; i <= deg; i++ {
		for j := 0; j <= deg-i; j++ {
			if i == 0 && j == 0 {
				continue
			}
			e := poly.New(i + j)
			if i > 0 {
				e.AddScaled(poly.Mul(m1, moments[i-1][j]), 1)
				if i > 1 {
					e.AddScaled(moments[i-2][j], sigma.Ixx*float64(i-1))
				}
				if j > 0 {
					e.AddScaled(moments[i-1][j-1], sigma.Ixy*float64(j))
				}
			} else {
				e.AddScaled(poly.Mul(m2, moments[i][j-1]), 1)
				if j > 1 {
					e.AddScaled(moments[i][j-2], sigma.Iyy*float64(j-1))
				}
			}
			moments[i][j] = e
		}
	}

	// E[P1(Y) P2(x-Y)] with (x-Y) powers expanded binomially.
	out := poly.New(deg)
	for c := 0; c <= p1.Degree(); c++ {
		for d := 0; d <= p1.Degree()-c; d++ {
			v1 := p1.Coeff(c, d)
			if v1 == 0 {
				continue
			}
			for aExp := 0; aExp <= p2.Degree(); aExp++ {
				for bExp := 0; bExp <= p2.Degree()-aExp; bExp++ {
					v2 := p2.Coeff(aExp, bExp)
					if v2 == 0 {
						continue
					}
					for i := 0; i <= aExp; i++ {
						for j := 0; j <= bExp; j++ {
							sign := 1.0
							if (i+j)%2 == 1 {
								sign = -1
							}
							w := v1 * v2 * sign * binomial(aExp, i) * binomial(bExp, j)
							mono := poly.New(aExp - i + bExp - j)
							mono.AddTerm(aExp-i, bExp-j, 1)
							out.AddScaled(poly.Mul(mono, moments[i+c][j+d]), w)
						}
					}
				}
			}
		}
	}
	out.Scale(2 * math.Pi / math.Sqrt(m.Det()))
	return out
}

// projectPolyGaussian expresses P(x) * exp(-x' Q^-1 x / 2), centered on
// the ellipse's center, as a Hermite expansion of the given order. P's
// degree must not exceed the order, which holds for convolution outputs.
func projectPolyGaussian(p *poly.Poly, ellipse Ellipse, order int) *ShapeletFunction {
	t := ellipse.Core.GridTransform()
	inv := LinearTransform(t.A, t.B, t.D, t.E).Invert()
	pu := poly.Compose(p, poly.Linear(inv.A, inv.B, 0), poly.Linear(inv.D, inv.E, 0))

	m2h := monomialToHermite(order)
	hn := hermiteNorms(order)
	detT := t.Determinant()

	out, _ := NewShapeletFunction(order, Hermite, ellipse)
	for i := 0; i <= order; i++ {
		for j := 0; j <= order-i; j++ {
			v := pu.Coeff(i, j)
			if v == 0 {
				continue
			}
			for k1 := i % 2; k1 <= i; k1 += 2 {
				for k2 := j % 2; k2 <= j; k2 += 2 {
					idx := ComputeOffset(k1+k2) + k2
					out.coefficients[idx] += v * m2h[i][k1] * m2h[j][k2] /
						(detT * hn[k1] * hn[k2])
				}
			}
		}
	}
	return out
}
