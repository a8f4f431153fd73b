package shapelet

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// basisComponent is one template of a multi-shapelet basis: an ellipse
// radius applied at MakeFunction time, a shapelet order, and a matrix
// mapping the basis coefficient vector to the template's packed shapelet
// coefficients.
type basisComponent struct {
	radius float64
	order  int
	matrix *mat.Dense // ComputeSize(order) x basis size
}

func (c basisComponent) clone() basisComponent {
	return basisComponent{radius: c.radius, order: c.order, matrix: mat.DenseCopyOf(c.matrix)}
}

// MultiShapeletBasis maps a small vector of free coefficients to a family
// of multi-shapelet functions. Each template contributes one component per
// generated function; templates are applied in insertion order.
type MultiShapeletBasis struct {
	size       int
	components []basisComponent
}

// NewMultiShapeletBasis creates an empty basis with the given output
// dimensionality.
func NewMultiShapeletBasis(size int) (*MultiShapeletBasis, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: basis size must be positive, got %d", ErrInvalidArgument, size)
	}
	return &MultiShapeletBasis{size: size}, nil
}

// CopyBasis creates a deep copy of another basis; mutations of either copy
// are independent.
func CopyBasis(other *MultiShapeletBasis) *MultiShapeletBasis {
	return other.Clone()
}

// Clone returns a deep copy.
func (b *MultiShapeletBasis) Clone() *MultiShapeletBasis {
	out := &MultiShapeletBasis{size: b.size}
	for _, c := range b.components {
		out.components = append(out.components, c.clone())
	}
	return out
}

// Size returns the declared output dimensionality: the length of the
// coefficient vector MakeFunction expects.
func (b *MultiShapeletBasis) Size() int { return b.size }

// ComponentCount returns the number of templates.
func (b *MultiShapeletBasis) ComponentCount() int { return len(b.components) }

// AddComponent appends a template. The matrix must have ComputeSize(order)
// rows and Size() columns; it is copied.
func (b *MultiShapeletBasis) AddComponent(radius float64, order int, matrix *mat.Dense) error {
	if radius <= 0 {
		return fmt.Errorf("%w: non-positive component radius %g", ErrInvalidArgument, radius)
	}
	if order < 0 {
		return fmt.Errorf("%w: negative order %d", ErrInvalidArgument, order)
	}
	rows, cols := matrix.Dims()
	if rows != ComputeSize(order) || cols != b.size {
		return fmt.Errorf(
			"%w: component matrix is %dx%d, order %d in a size-%d basis expects %dx%d",
			ErrInvalidArgument, rows, cols, order, b.size, ComputeSize(order), b.size,
		)
	}
	b.components = append(b.components, basisComponent{
		radius: radius,
		order:  order,
		matrix: mat.DenseCopyOf(matrix),
	})
	return nil
}

// MakeFunction builds the multi-shapelet function for a coefficient vector.
// Each template contributes a Hermite component with coefficients
// matrix * coefficients on the given ellipse with its core scaled by the
// template radius. Components appear in template-insertion order.
func (b *MultiShapeletBasis) MakeFunction(ellipse Ellipse, coefficients []float64) (*MultiShapeletFunction, error) {
	if len(coefficients) != b.size {
		return nil, fmt.Errorf(
			"%w: coefficient vector has length %d, basis size is %d",
			ErrInvalidArgument, len(coefficients), b.size,
		)
	}
	if !ellipse.Core.IsValid() {
		return nil, fmt.Errorf("%w: ellipse core is not positive-definite", ErrInvalidArgument)
	}
	v := mat.NewVecDense(b.size, coefficients)
	out := NewMultiShapeletFunction()
	for _, c := range b.components {
		sub := mat.NewVecDense(ComputeSize(c.order), nil)
		sub.MulVec(c.matrix, v)
		f, err := NewShapeletFunctionWithCoefficients(
			c.order, Hermite, ellipse.ScaledCore(c.radius), sub.RawVector().Data,
		)
		if err != nil {
			return nil, err
		}
		out.components = append(out.components, f)
	}
	return out, nil
}

// Normalize rescales the basis so that the function generated by each
// canonical unit coefficient vector integrates to exactly 1.
//
// The flux of MakeFunction(e, e_n) is linear in column n of every template
// matrix and independent of the ellipse, so dividing column n of all
// matrices by that flux satisfies every constraint simultaneously in
// closed form. A non-positive flux for any index is reported as
// ErrDegenerate and leaves the basis unmodified.
func (b *MultiShapeletBasis) Normalize() error {
	factors := make([]float64, b.size)
	for n := 0; n < b.size; n++ {
		var flux float64
		for _, c := range b.components {
			ints := hermiteIntegrals(c.order)
			for i := (PackedIndex{}); i.Order() <= c.order; i.Next() {
				flux += c.matrix.At(i.Index(), n) * ints[i.X()] * ints[i.Y()]
			}
		}
		if flux <= 0 {
			return fmt.Errorf(
				"%w: unit vector %d yields non-positive flux %g",
				ErrDegenerate, n, flux,
			)
		}
		factors[n] = 1 / flux
	}
	for _, c := range b.components {
		rows, _ := c.matrix.Dims()
		for n := 0; n < b.size; n++ {
			for i := 0; i < rows; i++ {
				c.matrix.Set(i, n, c.matrix.At(i, n)*factors[n])
			}
		}
	}
	logger().Debug("normalized multi-shapelet basis", "size", b.size)
	return nil
}

// Scale multiplies every template radius by factor. A basis scaled by k
// generates, for a given ellipse, the same functions the unscaled basis
// generates for the ellipse with its core pre-scaled by k.
func (b *MultiShapeletBasis) Scale(factor float64) error {
	if factor <= 0 {
		return fmt.Errorf("%w: non-positive scale factor %g", ErrInvalidArgument, factor)
	}
	for i := range b.components {
		b.components[i].radius *= factor
	}
	return nil
}

// Merge appends deep copies of other's templates, widening the coefficient
// vector: the receiver's size grows by other's size, the receiver's
// templates keep columns [0, oldSize) and the appended templates occupy
// columns [oldSize, newSize). MakeFunction on the merged basis with a
// concatenated coefficient vector reproduces the two original component
// lists in (receiver, other) order.
func (b *MultiShapeletBasis) Merge(other *MultiShapeletBasis) {
	newSize := b.size + other.size
	for i := range b.components {
		widened := mat.NewDense(ComputeSize(b.components[i].order), newSize, nil)
		widened.Slice(0, ComputeSize(b.components[i].order), 0, b.size).(*mat.Dense).
			Copy(b.components[i].matrix)
		b.components[i].matrix = widened
	}
	for _, c := range other.components {
		widened := mat.NewDense(ComputeSize(c.order), newSize, nil)
		widened.Slice(0, ComputeSize(c.order), b.size, newSize).(*mat.Dense).
			Copy(c.matrix)
		b.components = append(b.components, basisComponent{
			radius: c.radius,
			order:  c.order,
			matrix: widened,
		})
	}
	b.size = newSize
}
