// Package vector composes single-axis finite-difference differentiators
// into the standard differential operators of vector calculus: Gradient,
// Divergence, Curl and Laplacian.
//
// Each operator is constructed once from a Grid description (uniform
// spacings or explicit per-axis coordinates) and then applied to field
// arrays any number of times. Construction builds one axis differentiator
// per spatial dimension; application validates the field's shape against the
// operator's dimensionality and combines the per-axis derivatives.
//
// Operators hold no mutable state after construction and never write the
// fields they are applied to, so a single operator may be applied
// concurrently from multiple goroutines.
package vector

import (
	"fmt"

	"gridcalc/array"
	"gridcalc/stencil"
)

// AxisDifferentiator computes a partial derivative along one grid axis,
// preserving the field's shape. *stencil.Differentiator is the production
// implementation.
type AxisDifferentiator interface {
	Apply(f *array.NDArray) (*array.NDArray, error)
}

// Grid describes how the spatial axes are sampled. The two implementations
// are UniformGrid and NonUniformGrid; the interface is sealed so the two
// modes stay mutually exclusive by construction.
type Grid interface {
	ndims() int
	axisConfig(axis, derivOrder, accuracy int) stencil.Config
	validate(op string) error
}

// UniformGrid is a grid with constant spacing along each axis. The number of
// spatial dimensions is the number of spacings.
type UniformGrid struct {
	Spacings []float64
}

func (g UniformGrid) ndims() int { return len(g.Spacings) }

func (g UniformGrid) validate(op string) error {
	if len(g.Spacings) == 0 {
		return &ConfigurationError{Op: op, Reason: "uniform grid has no spacings"}
	}
	for k, h := range g.Spacings {
		if h <= 0 {
			return &ConfigurationError{
				Op:     op,
				Reason: fmt.Sprintf("spacing %g on axis %d is not positive", h, k),
			}
		}
	}
	return nil
}

func (g UniformGrid) axisConfig(axis, derivOrder, accuracy int) stencil.Config {
	return stencil.Config{
		Axis:       axis,
		Spacing:    g.Spacings[axis],
		DerivOrder: derivOrder,
		Accuracy:   accuracy,
	}
}

// NonUniformGrid is a grid with explicit sample coordinates along each axis.
// The number of spatial dimensions is the number of coordinate slices; a
// one-dimensional grid is a single-element slice of coordinates, never a
// bare coordinate slice.
type NonUniformGrid struct {
	Coordinates [][]float64
}

func (g NonUniformGrid) ndims() int { return len(g.Coordinates) }

func (g NonUniformGrid) validate(op string) error {
	if len(g.Coordinates) == 0 {
		return &ConfigurationError{Op: op, Reason: "non-uniform grid has no coordinate axes"}
	}
	for k, coords := range g.Coordinates {
		if len(coords) == 0 {
			return &ConfigurationError{
				Op:     op,
				Reason: fmt.Sprintf("axis %d has no coordinates", k),
			}
		}
	}
	return nil
}

func (g NonUniformGrid) axisConfig(axis, derivOrder, accuracy int) stencil.Config {
	return stencil.Config{
		Axis:       axis,
		Coords:     g.Coordinates[axis],
		DerivOrder: derivOrder,
		Accuracy:   accuracy,
	}
}

// Option configures operator construction.
type Option func(*settings)

type settings struct {
	accuracy int
}

// WithAccuracy sets the accuracy order of every axis differentiator built
// for the operator. The default is stencil.DefaultAccuracy.
func WithAccuracy(acc int) Option {
	return func(s *settings) { s.accuracy = acc }
}

// buildAxes is the construction step shared by all operators: it validates
// the grid description, infers the number of spatial dimensions and builds
// one axis differentiator per dimension at the given derivative order.
func buildAxes(op string, grid Grid, derivOrder int, opts []Option) ([]AxisDifferentiator, int, error) {
	if grid == nil {
		return nil, 0, &ConfigurationError{Op: op, Reason: "no grid description given"}
	}
	if err := grid.validate(op); err != nil {
		return nil, 0, err
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	n := grid.ndims()
	axes := make([]AxisDifferentiator, n)
	for k := 0; k < n; k++ {
		d, err := stencil.New(grid.axisConfig(k, derivOrder, s.accuracy))
		if err != nil {
			return nil, 0, fmt.Errorf("vector: %s axis %d: %w", op, k, err)
		}
		axes[k] = d
	}
	return axes, n, nil
}

// checkScalarField validates a scalar field argument: rank must equal the
// operator's dimensionality.
func checkScalarField(op string, ndims int, f *array.NDArray) error {
	want := fmt.Sprintf("a scalar field of rank %d", ndims)
	if f == nil {
		return &DimensionMismatchError{Op: op, Want: want}
	}
	if f.Rank() != ndims {
		return &DimensionMismatchError{Op: op, Want: want, Shape: f.Shape()}
	}
	return nil
}

// checkVectorField validates a vector field argument: rank ndims+1 with a
// leading component axis of length ndims.
func checkVectorField(op string, ndims int, f *array.NDArray) error {
	want := fmt.Sprintf("a vector field of %d components of rank %d", ndims, ndims)
	if f == nil {
		return &DimensionMismatchError{Op: op, Want: want}
	}
	shape := f.Shape()
	if f.Rank() != ndims+1 || shape[0] != ndims {
		return &DimensionMismatchError{Op: op, Want: want, Shape: shape}
	}
	return nil
}
