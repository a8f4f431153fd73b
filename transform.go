package shapelet

// Transform represents a 2D affine transformation.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Transform struct {
	A, B, C float64
	D, E, F float64
}

// IdentityTransform returns the identity transformation.
func IdentityTransform() Transform {
	return Transform{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translation creates a pure translation.
func Translation(x, y float64) Transform {
	return Transform{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// LinearTransform creates a transform with the given linear part and no
// translation.
func LinearTransform(a, b, d, e float64) Transform {
	return Transform{A: a, B: b, D: d, E: e}
}

// Multiply composes two transforms (t then applied after other: t * other).
func (t Transform) Multiply(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// Apply applies the transformation to a point.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// ApplyLinear applies only the linear part of the transformation.
func (t Transform) ApplyLinear(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y,
		Y: t.D*p.X + t.E*p.Y,
	}
}

// Determinant returns the determinant of the linear part.
func (t Transform) Determinant() float64 {
	return t.A*t.E - t.B*t.D
}

// Invert returns the inverse transformation.
// Returns the identity if the transform is singular.
func (t Transform) Invert() Transform {
	det := t.Determinant()
	if det == 0 {
		return IdentityTransform()
	}
	inv := 1.0 / det
	a := t.E * inv
	b := -t.B * inv
	d := -t.D * inv
	e := t.A * inv
	return Transform{
		A: a, B: b, C: -(a*t.C + b*t.F),
		D: d, E: e, F: -(d*t.C + e*t.F),
	}
}
