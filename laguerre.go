package shapelet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Laguerre coefficient packing: within combined order n the angular index m
// runs n, n-2, ... down to 1 or 0. Each m > 0 contributes a (cos, sin)
// pair of real coefficients in that order; m = 0 contributes one. The block
// for order n therefore holds n+1 coefficients, the same as Hermite.
//
// The two families span the same function space order by order, so the
// change of basis is a block-diagonal orthogonal matrix. Each block is
// built from the ladder-operator expansion of the polar states in the
// Cartesian ones:
//
//	|nr,nl> = 2^(-n/2)/sqrt(nr! nl!) * sum_{j,k} C(nr,j) C(nl,k) i^(j-k)
//	          * sqrt(p! q!) |p,q>,   p = n-j-k, q = j+k
//
// with m = nr-nl. The real cos/sin members are the unitary combinations
// (|nr,nl> +/- |nl,nr>) / sqrt(2), which land on real Hermite coefficients
// because i^q is real for even q and imaginary for odd q.

// laguerreRadial returns the real factor shared by the cos and sin members
// for polar indices (nr, nl) at Hermite y-degree q.
func laguerreRadial(nr, nl, q int) float64 {
	n := nr + nl
	p := n - q
	var s float64
	for k := max(0, q-nr); k <= min(q, nl); k++ {
		term := binomial(nr, q-k) * binomial(nl, k)
		if k%2 == 1 {
			term = -term
		}
		s += term
	}
	norm := math.Exp(0.5 * (logFactorial(p) + logFactorial(q) -
		logFactorial(nr) - logFactorial(nl)))
	return math.Pow(2, -0.5*float64(n)) * norm * s
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	return math.Exp(logFactorial(n) - logFactorial(k) - logFactorial(n-k))
}

func logFactorial(n int) float64 {
	lg, _ := math.Lgamma(float64(n) + 1)
	return lg
}

// laguerreToHermite returns the block-diagonal orthogonal matrix B mapping
// packed Laguerre coefficients to packed Hermite coefficients for the given
// order: hermite = B * laguerre. The inverse map is the transpose.
func laguerreToHermite(order int) *mat.Dense {
	size := ComputeSize(order)
	b := mat.NewDense(size, size, nil)
	for n := 0; n <= order; n++ {
		off := ComputeOffset(n)
		col := off
		for m := n; m >= 0; m -= 2 {
			nr := (n + m) / 2
			nl := (n - m) / 2
			for q := 0; q <= n; q++ {
				r := laguerreRadial(nr, nl, q)
				if r == 0 {
					continue
				}
				row := off + q
				switch {
				case m == 0:
					// single real member, i^q real for even q
					if q%2 == 0 {
						b.Set(row, col, signIPow(q)*r)
					}
				case q%2 == 0:
					// cos member
					b.Set(row, col, math.Sqrt2*signIPow(q)*r)
				default:
					// sin member
					b.Set(row, col+1, math.Sqrt2*signIPowOdd(q)*r)
				}
			}
			if m == 0 {
				col++
			} else {
				col += 2
			}
		}
	}
	return b
}

// signIPow returns Re(i^q) for even q.
func signIPow(q int) float64 {
	if q%4 == 0 {
		return 1
	}
	return -1
}

// signIPowOdd returns Im(i^q) for odd q.
func signIPowOdd(q int) float64 {
	if q%4 == 1 {
		return 1
	}
	return -1
}

// toHermiteCoefficients returns the coefficients converted to the Hermite
// packing. Hermite input is returned as-is (not copied).
func toHermiteCoefficients(basisType BasisType, order int, coefficients []float64) []float64 {
	if basisType == Hermite {
		return coefficients
	}
	b := laguerreToHermite(order)
	out := make([]float64, len(coefficients))
	v := mat.NewVecDense(len(coefficients), out)
	v.MulVec(b, mat.NewVecDense(len(coefficients), coefficients))
	return out
}

// fromHermiteCoefficients converts Hermite-packed coefficients to the given
// target family, using the transpose of the orthogonal conversion.
func fromHermiteCoefficients(basisType BasisType, order int, coefficients []float64) []float64 {
	if basisType == Hermite {
		return coefficients
	}
	b := laguerreToHermite(order)
	out := make([]float64, len(coefficients))
	v := mat.NewVecDense(len(coefficients), out)
	v.MulVec(b.T(), mat.NewVecDense(len(coefficients), coefficients))
	return out
}
