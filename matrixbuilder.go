package shapelet

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// MatrixBuilder fills design matrices for linear model fitting: given a
// fixed set of sample points, Build(ellipse) returns the matrix whose
// column j holds the values of the j-th unit-coefficient basis function on
// those points. Fitting a profile then reduces to a linear least-squares
// solve against the matrix.
//
// A builder is configured once with the sample coordinates and reused
// across Build calls with different ellipses.
type MatrixBuilder struct {
	x, y      []float64
	order     int
	basisSize int
	psf       *ShapeletFunction
	basis     *MultiShapeletBasis
}

// NewMatrixBuilder creates a builder for a plain shapelet expansion of the
// given order. The coordinate arrays must have equal length.
func NewMatrixBuilder(x, y []float64, order int) (*MatrixBuilder, error) {
	if err := checkCoordinates(x, y); err != nil {
		return nil, err
	}
	if order < 0 {
		return nil, fmt.Errorf("%w: negative order %d", ErrInvalidArgument, order)
	}
	return &MatrixBuilder{x: x, y: y, order: order, basisSize: ComputeSize(order)}, nil
}

// NewConvolvedMatrixBuilder creates a builder for a shapelet expansion of
// the given order convolved with a fixed PSF.
func NewConvolvedMatrixBuilder(x, y []float64, psf *ShapeletFunction, order int) (*MatrixBuilder, error) {
	b, err := NewMatrixBuilder(x, y, order)
	if err != nil {
		return nil, err
	}
	b.psf = psf.Clone()
	return b, nil
}

// NewBasisMatrixBuilder creates a builder for a multi-shapelet basis; the
// output has one column per basis coefficient.
func NewBasisMatrixBuilder(x, y []float64, basis *MultiShapeletBasis) (*MatrixBuilder, error) {
	if err := checkCoordinates(x, y); err != nil {
		return nil, err
	}
	return &MatrixBuilder{x: x, y: y, basisSize: basis.Size(), basis: basis.Clone()}, nil
}

func checkCoordinates(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf(
			"%w: size of x array (%d) does not match size of y array (%d)",
			ErrInvalidArgument, len(x), len(y),
		)
	}
	return nil
}

// BasisSize returns the number of columns Build produces.
func (b *MatrixBuilder) BasisSize() int { return b.basisSize }

// DataSize returns the number of sample points (rows).
func (b *MatrixBuilder) DataSize() int { return len(b.x) }

// Build returns the design matrix for the given ellipse.
func (b *MatrixBuilder) Build(ellipse Ellipse) (*mat.Dense, error) {
	if !ellipse.Core.IsValid() {
		return nil, fmt.Errorf("%w: ellipse core is not positive-definite", ErrInvalidArgument)
	}
	switch {
	case b.basis != nil:
		return b.buildBasis(ellipse), nil
	case b.psf != nil:
		return b.buildConvolved(ellipse), nil
	}
	return b.buildPlain(ellipse, b.order), nil
}

// buildPlain fills the basis function values directly from the Hermite
// recurrence: one pair of 1D series and one envelope per sample point.
func (b *MatrixBuilder) buildPlain(ellipse Ellipse, order int) *mat.Dense {
	out := mat.NewDense(len(b.x), ComputeSize(order), nil)
	t := ellipse.GridTransform()
	det := t.Determinant()
	xw := make([]float64, order+1)
	yw := make([]float64, order+1)
	for r := range b.x {
		u := t.Apply(Pt(b.x[r], b.y[r]))
		env := det * math.Exp(-0.5*(u.X*u.X+u.Y*u.Y))
		hermiteSeries(xw, u.X)
		hermiteSeries(yw, u.Y)
		for i := (PackedIndex{}); i.Order() <= order; i.Next() {
			out.Set(r, i.Index(), env*xw[i.X()]*yw[i.Y()])
		}
	}
	return out
}

// buildConvolved factors the convolved basis as a plain basis at the
// combined order on the convolved ellipse, times the coefficient mapping
// induced by convolution with the PSF.
func (b *MatrixBuilder) buildConvolved(ellipse Ellipse) *mat.Dense {
	rowOrder := b.order + b.psf.Order()
	conv := mat.NewDense(ComputeSize(rowOrder), b.basisSize, nil)
	for j := 0; j < b.basisSize; j++ {
		unit, _ := NewShapeletFunction(b.order, Hermite, ellipse)
		unit.Coefficients()[j] = 1
		out := unit.Convolve(b.psf)
		for i, c := range out.Coefficients() {
			conv.Set(i, j, c)
		}
	}
	plain := b.buildPlain(ellipse.Convolve(b.psf.Ellipse()), rowOrder)
	result := mat.NewDense(len(b.x), b.basisSize, nil)
	result.Mul(plain, conv)
	return result
}

// buildBasis accumulates each template's plain matrix times its mapping
// matrix, with the template radius applied to the ellipse core.
func (b *MatrixBuilder) buildBasis(ellipse Ellipse) *mat.Dense {
	result := mat.NewDense(len(b.x), b.basisSize, nil)
	tmp := mat.NewDense(len(b.x), b.basisSize, nil)
	for _, c := range b.basis.components {
		plain := b.buildPlain(ellipse.ScaledCore(c.radius), c.order)
		tmp.Mul(plain, c.matrix)
		result.Add(result, tmp)
	}
	return result
}
