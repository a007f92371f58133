package vector

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"gridcalc/array"
)

// Curl is the three-dimensional curl operator. Construction in any other
// number of dimensions fails with a DimensionalityError.
type Curl struct {
	axes []AxisDifferentiator
}

const curlNDims = 3

// NewCurl builds a curl operator for the given grid, which must describe
// exactly three spatial dimensions.
func NewCurl(grid Grid, opts ...Option) (*Curl, error) {
	axes, n, err := buildAxes("curl", grid, 1, opts)
	if err != nil {
		return nil, err
	}
	if n != curlNDims {
		return nil, &DimensionalityError{Op: "curl", NDims: n, Want: curlNDims}
	}
	return &Curl{axes: axes}, nil
}

// NDims returns the number of spatial dimensions, always 3.
func (c *Curl) NDims() int { return curlNDims }

// Apply computes the curl of the three-component vector field f. The result
// has the same shape as f:
//
//	out[0] = d/dx1 f[2] - d/dx2 f[1]
//	out[1] = d/dx2 f[0] - d/dx0 f[2]
//	out[2] = d/dx0 f[1] - d/dx1 f[0]
func (c *Curl) Apply(f *array.NDArray) (*array.NDArray, error) {
	if err := checkVectorField("curl", curlNDims, f); err != nil {
		return nil, err
	}

	// deriv computes d/dx(axis) of component comp.
	deriv := func(axis, comp int) (*array.NDArray, error) {
		fc, err := f.Component(comp)
		if err != nil {
			return nil, fmt.Errorf("vector: curl component %d: %w", comp, err)
		}
		d, err := c.axes[axis].Apply(fc)
		if err != nil {
			return nil, fmt.Errorf("vector: curl axis %d of component %d: %w", axis, comp, err)
		}
		return d, nil
	}

	// The fixed antisymmetric pattern: out[a] = d_b(f_c) - d_c(f_b) for
	// cyclic (a, b, c).
	pattern := [curlNDims][2]int{
		{1, 2}, // out[0] = d1 f2 - d2 f1
		{2, 0}, // out[1] = d2 f0 - d0 f2
		{0, 1}, // out[2] = d0 f1 - d1 f0
	}

	components := make([]*array.NDArray, curlNDims)
	for a, bc := range pattern {
		b, cc := bc[0], bc[1]
		plus, err := deriv(b, cc)
		if err != nil {
			return nil, err
		}
		minus, err := deriv(cc, b)
		if err != nil {
			return nil, err
		}
		out := array.ZerosLike(plus)
		floats.SubTo(out.Data(), plus.Data(), minus.Data())
		components[a] = out
	}
	return array.Stack(components...)
}
