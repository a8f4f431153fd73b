package shapelet

import (
	"fmt"
	"math"
)

// BasisType selects the family of basis functions in a shapelet expansion.
// The set is closed: Hermite (Cartesian Gauss-Hermite) and Laguerre (polar
// Gauss-Laguerre). Both families pack the same number of coefficients per
// order and span the same function space order by order.
type BasisType int

const (
	// Hermite is the Cartesian Gauss-Hermite family.
	Hermite BasisType = iota
	// Laguerre is the polar Gauss-Laguerre family.
	Laguerre
)

// IsValid reports whether b is a known basis type.
func (b BasisType) IsValid() bool {
	return b == Hermite || b == Laguerre
}

// Size returns the coefficient count for an expansion of the given order.
func (b BasisType) Size(order int) int {
	return ComputeSize(order)
}

// String returns the name of the basis type.
func (b BasisType) String() string {
	switch b {
	case Hermite:
		return "HERMITE"
	case Laguerre:
		return "LAGUERRE"
	}
	return fmt.Sprintf("BasisType(%d)", int(b))
}

// FluxFactor converts between the zeroth coefficient and total integrated
// flux for the pure Gaussian (order 0) case: flux = c0 * FluxFactor.
var FluxFactor = 2 * math.Sqrt(math.Pi)

// ShapeletFunction is a single shapelet expansion: an order, a basis
// family, an elliptical coordinate frame, and a coefficient vector of
// length ComputeSize(order). Coefficients may be mutated in place through
// Coefficients; order and basis type are fixed at construction.
type ShapeletFunction struct {
	order        int
	basisType    BasisType
	ellipse      Ellipse
	coefficients []float64
}

// NewShapeletFunction creates a shapelet expansion with zero-filled
// coefficients.
func NewShapeletFunction(order int, basisType BasisType, ellipse Ellipse) (*ShapeletFunction, error) {
	return NewShapeletFunctionWithCoefficients(order, basisType, ellipse, nil)
}

// NewShapeletFunctionWithCoefficients creates a shapelet expansion with the
// given coefficients, which are copied. A nil slice means zero-filled; any
// other length than ComputeSize(order) is rejected with ErrInvalidArgument.
func NewShapeletFunctionWithCoefficients(
	order int, basisType BasisType, ellipse Ellipse, coefficients []float64,
) (*ShapeletFunction, error) {
	if order < 0 {
		return nil, fmt.Errorf("%w: negative order %d", ErrInvalidArgument, order)
	}
	if !basisType.IsValid() {
		return nil, fmt.Errorf("%w: unknown basis type %d", ErrInvalidArgument, int(basisType))
	}
	if !ellipse.Core.IsValid() {
		return nil, fmt.Errorf("%w: ellipse core is not positive-definite", ErrInvalidArgument)
	}
	size := basisType.Size(order)
	if coefficients != nil && len(coefficients) != size {
		return nil, fmt.Errorf(
			"%w: coefficient vector has length %d, order %d %s expects %d",
			ErrInvalidArgument, len(coefficients), order, basisType, size,
		)
	}
	c := make([]float64, size)
	copy(c, coefficients)
	return &ShapeletFunction{
		order:        order,
		basisType:    basisType,
		ellipse:      ellipse,
		coefficients: c,
	}, nil
}

// NewCircularShapeletFunction creates an expansion on a circular frame of
// the given radius centered at center, with zero-filled coefficients.
func NewCircularShapeletFunction(order int, basisType BasisType, radius float64, center Point) (*ShapeletFunction, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: non-positive radius %g", ErrInvalidArgument, radius)
	}
	return NewShapeletFunction(order, basisType, NewEllipse(UnitQuadrupole().Scaled(radius), center))
}

// Order returns the expansion order.
func (f *ShapeletFunction) Order() int { return f.order }

// BasisType returns the basis family.
func (f *ShapeletFunction) BasisType() BasisType { return f.basisType }

// Ellipse returns the elliptical coordinate frame.
func (f *ShapeletFunction) Ellipse() Ellipse { return f.ellipse }

// SetEllipse replaces the elliptical coordinate frame.
func (f *ShapeletFunction) SetEllipse(e Ellipse) error {
	if !e.Core.IsValid() {
		return fmt.Errorf("%w: ellipse core is not positive-definite", ErrInvalidArgument)
	}
	f.ellipse = e
	return nil
}

// Coefficients returns the coefficient vector as a mutable slice aliasing
// the function's storage. Callers may write elements directly; the slice
// must not be resized or retained across a ChangeBasisType call.
func (f *ShapeletFunction) Coefficients() []float64 {
	return f.coefficients
}

// Clone returns a deep copy.
func (f *ShapeletFunction) Clone() *ShapeletFunction {
	c := make([]float64, len(f.coefficients))
	copy(c, f.coefficients)
	return &ShapeletFunction{
		order:        f.order,
		basisType:    f.basisType,
		ellipse:      f.ellipse,
		coefficients: c,
	}
}

// ShiftInPlace translates the function by offset.
func (f *ShapeletFunction) ShiftInPlace(offset Point) {
	f.ellipse.Center = f.ellipse.Center.Add(offset)
}

// TransformInPlace maps the function's frame through an affine transform.
func (f *ShapeletFunction) TransformInPlace(t Transform) error {
	e := f.ellipse.Transformed(t)
	if !e.Core.IsValid() {
		return fmt.Errorf("%w: transform produces a degenerate ellipse", ErrInvalidArgument)
	}
	f.ellipse = e
	return nil
}

// ChangeBasisType converts the coefficients to the target family in place,
// preserving the represented function. The conversion is orthogonal, so a
// round trip reproduces the original coefficients to floating precision.
func (f *ShapeletFunction) ChangeBasisType(target BasisType) error {
	if !target.IsValid() {
		return fmt.Errorf("%w: unknown basis type %d", ErrInvalidArgument, int(target))
	}
	if target == f.basisType {
		return nil
	}
	hermite := toHermiteCoefficients(f.basisType, f.order, f.coefficients)
	converted := fromHermiteCoefficients(target, f.order, hermite)
	copy(f.coefficients, converted)
	f.basisType = target
	return nil
}

// Normalize rescales the coefficients so the function integrates to value
// (1 by default semantics; pass the desired flux). A non-positive absolute
// integral is reported as ErrDegenerate and leaves the function unchanged.
func (f *ShapeletFunction) Normalize(value float64) error {
	flux := f.Evaluate().Integrate()
	if flux == 0 || math.IsNaN(flux) {
		return fmt.Errorf("%w: cannot normalize function with zero integral", ErrDegenerate)
	}
	scale := value / flux
	for i := range f.coefficients {
		f.coefficients[i] *= scale
	}
	return nil
}

// Evaluate returns a lazy evaluator over the plane.
func (f *ShapeletFunction) Evaluate() *Evaluator {
	return newEvaluator(f)
}

// Convolve returns the analytic convolution of two expansions as a new
// shapelet function of order f.Order()+other.Order() in the Hermite family
// on the summed ellipse.
func (f *ShapeletFunction) Convolve(other *ShapeletFunction) *ShapeletFunction {
	return convolveComponents(f, other)
}
