package shapelet

import (
	"fmt"
	"math"
)

// Quadrupole is the symmetric second-moment matrix of a 2D Gaussian:
//
//	| Ixx  Ixy |
//	| Ixy  Iyy |
//
// It is a value type; methods return new values rather than mutating.
// A physically valid Quadrupole is positive-definite.
type Quadrupole struct {
	Ixx, Iyy, Ixy float64
}

// NewQuadrupole creates a Quadrupole, rejecting non-positive-definite
// moments with ErrInvalidArgument.
func NewQuadrupole(ixx, iyy, ixy float64) (Quadrupole, error) {
	q := Quadrupole{Ixx: ixx, Iyy: iyy, Ixy: ixy}
	if !q.IsValid() {
		return Quadrupole{}, fmt.Errorf(
			"%w: quadrupole (%g, %g, %g) is not positive-definite",
			ErrInvalidArgument, ixx, iyy, ixy,
		)
	}
	return q, nil
}

// UnitQuadrupole returns the moments of the unit circle.
func UnitQuadrupole() Quadrupole {
	return Quadrupole{Ixx: 1, Iyy: 1, Ixy: 0}
}

// IsValid reports whether the quadrupole is positive-definite.
func (q Quadrupole) IsValid() bool {
	return q.Ixx > 0 && q.Iyy > 0 && q.Ixx*q.Iyy > q.Ixy*q.Ixy
}

// Det returns the determinant of the moment matrix.
func (q Quadrupole) Det() float64 {
	return q.Ixx*q.Iyy - q.Ixy*q.Ixy
}

// Add returns the component-wise sum of two quadrupoles. Convolving two
// Gaussians adds their covariances, so this is also the convolution rule.
func (q Quadrupole) Add(r Quadrupole) Quadrupole {
	return Quadrupole{
		Ixx: q.Ixx + r.Ixx,
		Iyy: q.Iyy + r.Iyy,
		Ixy: q.Ixy + r.Ixy,
	}
}

// Scaled returns the quadrupole with its semi-axes scaled by factor.
// Second moments scale by factor squared.
func (q Quadrupole) Scaled(factor float64) Quadrupole {
	f2 := factor * factor
	return Quadrupole{Ixx: q.Ixx * f2, Iyy: q.Iyy * f2, Ixy: q.Ixy * f2}
}

// Inverse returns the inverse of the moment matrix as (Ixx', Iyy', Ixy')
// packed in a Quadrupole. The receiver must be valid.
func (q Quadrupole) Inverse() Quadrupole {
	inv := 1.0 / q.Det()
	return Quadrupole{Ixx: q.Iyy * inv, Iyy: q.Ixx * inv, Ixy: -q.Ixy * inv}
}

// GridTransform returns the linear transform T = Q^(-1/2), the symmetric
// inverse square root of the moment matrix. It maps the ellipse onto the
// unit circle, and its determinant is 1/sqrt(Det()).
//
// For a symmetric positive-definite 2x2 matrix the square root is
// S = (Q + sqrt(det)*I) / sqrt(trace + 2*sqrt(det)), and T is its
// closed-form inverse.
func (q Quadrupole) GridTransform() Transform {
	s := math.Sqrt(q.Det())
	t := math.Sqrt(q.Ixx + q.Iyy + 2*s)
	inv := 1.0 / (s * t)
	return LinearTransform(
		(q.Iyy+s)*inv, -q.Ixy*inv,
		-q.Ixy*inv, (q.Ixx+s)*inv,
	)
}

// transformed returns L*Q*L^T for the linear part L of t.
func (q Quadrupole) transformed(t Transform) Quadrupole {
	// First M = Q*L^T, then L*M.
	m00 := q.Ixx*t.A + q.Ixy*t.B
	m01 := q.Ixx*t.D + q.Ixy*t.E
	m10 := q.Ixy*t.A + q.Iyy*t.B
	m11 := q.Ixy*t.D + q.Iyy*t.E
	return Quadrupole{
		Ixx: t.A*m00 + t.B*m10,
		Iyy: t.D*m01 + t.E*m11,
		Ixy: t.A*m01 + t.B*m11,
	}
}

// Ellipse is a Quadrupole core plus a center position.
type Ellipse struct {
	Core   Quadrupole
	Center Point
}

// NewEllipse creates an ellipse from a core and center.
func NewEllipse(core Quadrupole, center Point) Ellipse {
	return Ellipse{Core: core, Center: center}
}

// UnitCircle returns the unit-circle ellipse centered at the origin.
func UnitCircle() Ellipse {
	return Ellipse{Core: UnitQuadrupole()}
}

// ScaledCore returns the ellipse with its core semi-axes scaled by factor.
// The center is unchanged.
func (e Ellipse) ScaledCore(factor float64) Ellipse {
	return Ellipse{Core: e.Core.Scaled(factor), Center: e.Center}
}

// Convolve returns the ellipse of the convolution of two Gaussians:
// cores add, centers add.
func (e Ellipse) Convolve(other Ellipse) Ellipse {
	return Ellipse{
		Core:   e.Core.Add(other.Core),
		Center: e.Center.Add(other.Center),
	}
}

// Transformed returns the ellipse mapped through an affine transform:
// the core becomes L*Q*L^T and the center is transformed with translation.
func (e Ellipse) Transformed(t Transform) Ellipse {
	return Ellipse{
		Core:   e.Core.transformed(t),
		Center: t.Apply(e.Center),
	}
}

// GridTransform returns the affine transform u = T*(p - center) mapping
// the ellipse to the unit circle at the origin.
func (e Ellipse) GridTransform() Transform {
	t := e.Core.GridTransform()
	shift := t.ApplyLinear(e.Center)
	t.C = -shift.X
	t.F = -shift.Y
	return t
}

// Parameters returns the parameter vector (Ixx, Iyy, Ixy, X, Y), used for
// near-equality comparison and persistence.
func (e Ellipse) Parameters() [5]float64 {
	return [5]float64{e.Core.Ixx, e.Core.Iyy, e.Core.Ixy, e.Center.X, e.Center.Y}
}
