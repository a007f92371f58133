package vector

import (
	"fmt"

	"gridcalc/array"
)

// Gradient is the N-dimensional gradient operator: one first derivative per
// spatial axis, stacked into a vector field.
type Gradient struct {
	ndims int
	axes  []AxisDifferentiator
}

// NewGradient builds a gradient operator for the given grid.
func NewGradient(grid Grid, opts ...Option) (*Gradient, error) {
	axes, n, err := buildAxes("gradient", grid, 1, opts)
	if err != nil {
		return nil, err
	}
	return &Gradient{ndims: n, axes: axes}, nil
}

// NDims returns the number of spatial dimensions.
func (g *Gradient) NDims() int { return g.ndims }

// Apply computes the gradient of the scalar field f. The result has one
// extra leading axis of length NDims holding the partial derivatives in
// axis order.
func (g *Gradient) Apply(f *array.NDArray) (*array.NDArray, error) {
	if err := checkScalarField("gradient", g.ndims, f); err != nil {
		return nil, err
	}

	components := make([]*array.NDArray, g.ndims)
	for k, d := range g.axes {
		c, err := d.Apply(f)
		if err != nil {
			return nil, fmt.Errorf("vector: gradient axis %d: %w", k, err)
		}
		components[k] = c
	}
	return array.Stack(components...)
}
