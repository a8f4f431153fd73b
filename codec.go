package shapelet

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"
)

// Persistence uses an explicit field-list schema rather than reflecting
// over the in-memory types, so the wire format is stable against internal
// refactoring. Floats round-trip losslessly (shortest-exact encoding).

type ellipseDoc struct {
	Ixx float64 `yaml:"ixx"`
	Iyy float64 `yaml:"iyy"`
	Ixy float64 `yaml:"ixy"`
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
}

type functionDoc struct {
	Order        int        `yaml:"order"`
	Basis        string     `yaml:"basis"`
	Ellipse      ellipseDoc `yaml:"ellipse"`
	Coefficients []float64  `yaml:"coefficients"`
}

type multiFunctionDoc struct {
	Components []functionDoc `yaml:"components"`
}

type basisComponentDoc struct {
	Radius float64     `yaml:"radius"`
	Order  int         `yaml:"order"`
	Matrix [][]float64 `yaml:"matrix"`
}

type basisDoc struct {
	Size       int                 `yaml:"size"`
	Components []basisComponentDoc `yaml:"components"`
}

// ParseBasisType parses the persisted name of a basis type.
func ParseBasisType(name string) (BasisType, error) {
	switch name {
	case "HERMITE":
		return Hermite, nil
	case "LAGUERRE":
		return Laguerre, nil
	}
	return 0, fmt.Errorf("%w: unknown basis type %q", ErrInvalidArgument, name)
}

func functionToDoc(f *ShapeletFunction) functionDoc {
	coeffs := make([]float64, len(f.coefficients))
	copy(coeffs, f.coefficients)
	return functionDoc{
		Order: f.order,
		Basis: f.basisType.String(),
		Ellipse: ellipseDoc{
			Ixx: f.ellipse.Core.Ixx,
			Iyy: f.ellipse.Core.Iyy,
			Ixy: f.ellipse.Core.Ixy,
			X:   f.ellipse.Center.X,
			Y:   f.ellipse.Center.Y,
		},
		Coefficients: coeffs,
	}
}

func functionFromDoc(doc functionDoc) (*ShapeletFunction, error) {
	basisType, err := ParseBasisType(doc.Basis)
	if err != nil {
		return nil, err
	}
	core, err := NewQuadrupole(doc.Ellipse.Ixx, doc.Ellipse.Iyy, doc.Ellipse.Ixy)
	if err != nil {
		return nil, err
	}
	return NewShapeletFunctionWithCoefficients(
		doc.Order, basisType,
		NewEllipse(core, Pt(doc.Ellipse.X, doc.Ellipse.Y)),
		doc.Coefficients,
	)
}

// EncodeShapeletFunction serializes a shapelet function to YAML.
func EncodeShapeletFunction(f *ShapeletFunction) ([]byte, error) {
	return yaml.Marshal(functionToDoc(f))
}

// DecodeShapeletFunction reverses EncodeShapeletFunction, validating the
// document through the same paths as direct construction.
func DecodeShapeletFunction(data []byte) (*ShapeletFunction, error) {
	var doc functionDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("shapelet: decoding function: %w", err)
	}
	return functionFromDoc(doc)
}

// EncodeMultiShapeletFunction serializes a multi-shapelet function to
// YAML, preserving component order.
func EncodeMultiShapeletFunction(m *MultiShapeletFunction) ([]byte, error) {
	doc := multiFunctionDoc{Components: make([]functionDoc, 0, m.Len())}
	for _, c := range m.components {
		doc.Components = append(doc.Components, functionToDoc(c))
	}
	return yaml.Marshal(doc)
}

// DecodeMultiShapeletFunction reverses EncodeMultiShapeletFunction.
func DecodeMultiShapeletFunction(data []byte) (*MultiShapeletFunction, error) {
	var doc multiFunctionDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("shapelet: decoding multi-shapelet function: %w", err)
	}
	out := NewMultiShapeletFunction()
	for _, c := range doc.Components {
		f, err := functionFromDoc(c)
		if err != nil {
			return nil, err
		}
		out.components = append(out.components, f)
	}
	return out, nil
}

// EncodeMultiShapeletBasis serializes a basis to YAML, preserving template
// order and matrix layout.
func EncodeMultiShapeletBasis(b *MultiShapeletBasis) ([]byte, error) {
	doc := basisDoc{Size: b.size}
	for _, c := range b.components {
		rows, cols := c.matrix.Dims()
		m := make([][]float64, rows)
		for i := 0; i < rows; i++ {
			m[i] = make([]float64, cols)
			for j := 0; j < cols; j++ {
				m[i][j] = c.matrix.At(i, j)
			}
		}
		doc.Components = append(doc.Components, basisComponentDoc{
			Radius: c.radius,
			Order:  c.order,
			Matrix: m,
		})
	}
	return yaml.Marshal(doc)
}

// DecodeMultiShapeletBasis reverses EncodeMultiShapeletBasis.
func DecodeMultiShapeletBasis(data []byte) (*MultiShapeletBasis, error) {
	var doc basisDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("shapelet: decoding basis: %w", err)
	}
	out, err := NewMultiShapeletBasis(doc.Size)
	if err != nil {
		return nil, err
	}
	for _, c := range doc.Components {
		rows := len(c.Matrix)
		if rows == 0 {
			return nil, fmt.Errorf("%w: basis component matrix is empty", ErrInvalidArgument)
		}
		cols := len(c.Matrix[0])
		m := mat.NewDense(rows, cols, nil)
		for i, row := range c.Matrix {
			if len(row) != cols {
				return nil, fmt.Errorf("%w: ragged basis component matrix", ErrInvalidArgument)
			}
			m.SetRow(i, row)
		}
		if err := out.AddComponent(c.Radius, c.Order, m); err != nil {
			return nil, err
		}
	}
	return out, nil
}
