package shapelet

import "math"

// basisNormalization is the value of the zeroth normalized Gauss-Hermite
// function at the origin, pi^(-1/4).
var basisNormalization = math.Pow(math.Pi, -0.25)

// ComputeSize returns the number of coefficients for a shapelet expansion
// of the given order: (order+1)(order+2)/2. Both basis families use the
// same packing size.
func ComputeSize(order int) int {
	return (order + 1) * (order + 2) / 2
}

// ComputeOffset returns the packed index of the first coefficient with the
// given combined order.
func ComputeOffset(order int) int {
	return order * (order + 1) / 2
}

// PackedIndex iterates over the (nx, ny) exponent pairs of a 2D shapelet
// expansion in packed order: orders ascending, and within order n the x
// degree descending from n to 0. The zero value is the first coefficient.
type PackedIndex struct {
	order, y int
}

// Order returns the combined order nx+ny.
func (i PackedIndex) Order() int { return i.order }

// X returns the x degree.
func (i PackedIndex) X() int { return i.order - i.y }

// Y returns the y degree.
func (i PackedIndex) Y() int { return i.y }

// Index returns the position of the coefficient in the packed vector.
func (i PackedIndex) Index() int { return ComputeOffset(i.order) + i.y }

// Next advances to the following coefficient.
func (i *PackedIndex) Next() {
	if i.y == i.order {
		i.order++
		i.y = 0
		return
	}
	i.y++
}

// hermiteSeries fills dst[n] with the normalized Gauss-Hermite function of
// degree n at t, without the Gaussian envelope:
//
//	phi_n(t) = dst[n] * exp(-t*t/2)
//
// using the stable two-term recurrence.
func hermiteSeries(dst []float64, t float64) {
	if len(dst) == 0 {
		return
	}
	dst[0] = basisNormalization
	if len(dst) > 1 {
		dst[1] = math.Sqrt2 * t * dst[0]
	}
	for n := 2; n < len(dst); n++ {
		dst[n] = math.Sqrt(2.0/float64(n))*t*dst[n-1] -
			math.Sqrt(float64(n-1)/float64(n))*dst[n-2]
	}
}

// hermiteIntegrals returns the integrals of the 1D normalized Gauss-Hermite
// functions over the real line, for degrees 0..order. Odd degrees vanish;
// even degrees follow I_n = sqrt((n-1)/n) * I_(n-2) from
// I_0 = sqrt(2) * pi^(1/4).
func hermiteIntegrals(order int) []float64 {
	v := make([]float64, order+1)
	v[0] = math.Sqrt2 * math.Pow(math.Pi, 0.25)
	for n := 2; n <= order; n += 2 {
		v[n] = math.Sqrt(float64(n-1)/float64(n)) * v[n-2]
	}
	return v
}

// hermiteMoment1 returns the first-moment integrals int t*phi_n(t) dt for
// degrees 0..order: K_n = sqrt(2n) * I_(n-1).
func hermiteMoment1(order int) []float64 {
	i0 := hermiteIntegrals(order)
	v := make([]float64, order+1)
	for n := 1; n <= order; n++ {
		v[n] = math.Sqrt(2*float64(n)) * i0[n-1]
	}
	return v
}

// hermiteMoment2 returns the second-moment integrals int t^2*phi_n(t) dt
// for degrees 0..order: L_n = I_n + 2*sqrt(n(n-1)) * I_(n-2).
func hermiteMoment2(order int) []float64 {
	i0 := hermiteIntegrals(order)
	v := make([]float64, order+1)
	for n := 0; n <= order; n++ {
		v[n] = i0[n]
		if n >= 2 {
			v[n] += 2 * math.Sqrt(float64(n)*float64(n-1)) * i0[n-2]
		}
	}
	return v
}

// hermiteNorms returns the normalization constants h_n relating the
// physicists' Hermite polynomials to the normalized functions:
// phi_n(t) = h_n * H_n(t) * exp(-t*t/2), h_n = (2^n n! sqrt(pi))^(-1/2).
func hermiteNorms(order int) []float64 {
	v := make([]float64, order+1)
	v[0] = basisNormalization
	for n := 1; n <= order; n++ {
		v[n] = v[n-1] / math.Sqrt(2*float64(n))
	}
	return v
}

// hermitePolyCoeffs returns the lower-triangular table c where c[n][k] is
// the coefficient of t^k in the physicists' Hermite polynomial H_n(t),
// via H_n = 2t*H_(n-1) - 2(n-1)*H_(n-2).
func hermitePolyCoeffs(order int) [][]float64 {
	c := make([][]float64, order+1)
	for n := range c {
		c[n] = make([]float64, order+1)
	}
	c[0][0] = 1
	if order >= 1 {
		c[1][1] = 2
	}
	for n := 2; n <= order; n++ {
		for k := 1; k <= n; k++ {
			c[n][k] = 2 * c[n-1][k-1]
		}
		for k := 0; k <= n-2; k++ {
			c[n][k] -= 2 * float64(n-1) * c[n-2][k]
		}
	}
	return c
}

// monomialToHermite returns the table a where t^m = sum_k a[m][k] * H_k(t),
// the triangular inverse of hermitePolyCoeffs.
func monomialToHermite(order int) [][]float64 {
	c := hermitePolyCoeffs(order)
	a := make([][]float64, order+1)
	for m := 0; m <= order; m++ {
		a[m] = make([]float64, order+1)
		a[m][m] = 1 / c[m][m]
		for k := m - 2; k >= 0; k -= 2 {
			var s float64
			for j := k + 2; j <= m; j += 2 {
				s += a[m][j] * c[j][k]
			}
			a[m][k] = -s / c[k][k]
		}
	}
	return a
}
