package vector

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"gridcalc/array"
)

// Divergence is the N-dimensional divergence operator: the sum over axes of
// the k-th derivative of the k-th vector component.
type Divergence struct {
	ndims int
	axes  []AxisDifferentiator
}

// NewDivergence builds a divergence operator for the given grid.
func NewDivergence(grid Grid, opts ...Option) (*Divergence, error) {
	axes, n, err := buildAxes("divergence", grid, 1, opts)
	if err != nil {
		return nil, err
	}
	return &Divergence{ndims: n, axes: axes}, nil
}

// NDims returns the number of spatial dimensions.
func (d *Divergence) NDims() int { return d.ndims }

// Apply computes the divergence of the vector field f, yielding a scalar
// field shaped like one component of f. Accumulation runs in axis order
// 0..NDims-1 so repeated applications are bit-for-bit reproducible.
func (d *Divergence) Apply(f *array.NDArray) (*array.NDArray, error) {
	if err := checkVectorField("divergence", d.ndims, f); err != nil {
		return nil, err
	}

	result := array.Zeros(f.Shape()[1:]...)
	for k, dk := range d.axes {
		component, err := f.Component(k)
		if err != nil {
			return nil, fmt.Errorf("vector: divergence component %d: %w", k, err)
		}
		term, err := dk.Apply(component)
		if err != nil {
			return nil, fmt.Errorf("vector: divergence axis %d: %w", k, err)
		}
		floats.Add(result.Data(), term.Data())
	}
	return result, nil
}
