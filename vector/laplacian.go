package vector

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"gridcalc/array"
)

// Laplacian is the N-dimensional Laplace operator: the sum over axes of the
// second derivative along each axis.
type Laplacian struct {
	ndims int
	axes  []AxisDifferentiator
}

// NewLaplacian builds a Laplace operator for the given grid. A nil grid
// defaults to a single unit-spaced axis.
func NewLaplacian(grid Grid, opts ...Option) (*Laplacian, error) {
	if grid == nil {
		grid = UniformGrid{Spacings: []float64{1}}
	}
	axes, n, err := buildAxes("laplacian", grid, 2, opts)
	if err != nil {
		return nil, err
	}
	return &Laplacian{ndims: n, axes: axes}, nil
}

// NDims returns the number of spatial dimensions.
func (l *Laplacian) NDims() int { return l.ndims }

// Apply computes the Laplacian of the scalar field f, preserving its shape.
// Accumulation runs in axis order for reproducibility.
func (l *Laplacian) Apply(f *array.NDArray) (*array.NDArray, error) {
	if err := checkScalarField("laplacian", l.ndims, f); err != nil {
		return nil, err
	}

	result := array.ZerosLike(f)
	for k, d := range l.axes {
		term, err := d.Apply(f)
		if err != nil {
			return nil, fmt.Errorf("vector: laplacian axis %d: %w", k, err)
		}
		floats.Add(result.Data(), term.Data())
	}
	return result, nil
}
