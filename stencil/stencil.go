// Package stencil implements single-axis finite-difference differentiators.
//
// A Differentiator approximates the d-th partial derivative of a sampled
// field along one grid axis, preserving the field's shape. Uniform grids use
// three precomputed rules (central plus one-sided rules for each boundary);
// non-uniform grids precompute one rule per grid point from the explicit
// axis coordinates. All rules come from solving the finite-difference moment
// system, so any derivative order and any even accuracy order is available.
//
// A Differentiator is immutable after New and safe for concurrent Apply.
package stencil

import (
	"errors"
	"fmt"

	"gridcalc/array"
)

// DefaultAccuracy is the accuracy order used when Config.Accuracy is zero.
const DefaultAccuracy = 2

// Config describes one axis differentiator. Exactly one of Spacing and
// Coords must be set: Spacing for a uniform grid, Coords for explicit
// (strictly increasing) sample coordinates along the axis.
type Config struct {
	Axis       int       // grid axis to differentiate along
	Spacing    float64   // uniform grid spacing, > 0
	Coords     []float64 // non-uniform axis coordinates
	DerivOrder int       // derivative order, >= 1
	Accuracy   int       // accuracy order; 0 means DefaultAccuracy, odd values round up
}

// Differentiator applies a finite-difference derivative along one axis.
type Differentiator struct {
	axis  int
	deriv int

	// Uniform-grid rules. edge points at each end fall back to the
	// one-sided rules.
	uniform  bool
	center   stencil1D
	forward  stencil1D
	backward stencil1D
	edge     int

	// Non-uniform per-point rules, indexed by position along the axis.
	// points[i] applies at window starts[i].
	points []stencil1D
	starts []int
	nAxis  int
}

// New builds a differentiator from cfg.
func New(cfg Config) (*Differentiator, error) {
	if cfg.Axis < 0 {
		return nil, fmt.Errorf("stencil: axis must be non-negative, got %d", cfg.Axis)
	}
	if cfg.DerivOrder < 1 {
		return nil, fmt.Errorf("stencil: derivative order must be >= 1, got %d", cfg.DerivOrder)
	}

	acc := cfg.Accuracy
	if acc == 0 {
		acc = DefaultAccuracy
	}
	if acc < 0 {
		return nil, fmt.Errorf("stencil: accuracy order must be positive, got %d", acc)
	}
	if acc%2 == 1 {
		acc++
	}

	hasSpacing := cfg.Spacing != 0
	hasCoords := cfg.Coords != nil
	if hasSpacing == hasCoords {
		return nil, errors.New("stencil: exactly one of Spacing and Coords must be set")
	}

	if hasSpacing {
		return newUniform(cfg.Axis, cfg.Spacing, cfg.DerivOrder, acc)
	}
	return newNonUniform(cfg.Axis, cfg.Coords, cfg.DerivOrder, acc)
}

func newUniform(axis int, h float64, deriv, acc int) (*Differentiator, error) {
	if h <= 0 {
		return nil, fmt.Errorf("stencil: spacing must be positive, got %g", h)
	}

	center, err := uniformStencil(centralOffsets(deriv, acc), deriv, h)
	if err != nil {
		return nil, err
	}
	forward, err := uniformStencil(forwardOffsets(deriv, acc), deriv, h)
	if err != nil {
		return nil, err
	}
	backward, err := uniformStencil(backwardOffsets(deriv, acc), deriv, h)
	if err != nil {
		return nil, err
	}

	return &Differentiator{
		axis:     axis,
		deriv:    deriv,
		uniform:  true,
		center:   center,
		forward:  forward,
		backward: backward,
		edge:     len(center.offsets) / 2,
	}, nil
}

func newNonUniform(axis int, coords []float64, deriv, acc int) (*Differentiator, error) {
	n := len(coords)
	m := centralSize(deriv, acc)
	if n < m {
		return nil, fmt.Errorf("stencil: %d coordinates cannot carry a %d-point stencil", n, m)
	}
	for i := 1; i < n; i++ {
		if coords[i] <= coords[i-1] {
			return nil, fmt.Errorf("stencil: coordinates must be strictly increasing, violated at index %d", i)
		}
	}

	d := &Differentiator{
		axis:   axis,
		deriv:  deriv,
		points: make([]stencil1D, n),
		starts: make([]int, n),
		nAxis:  n,
	}

	nodes := make([]float64, m)
	for i := 0; i < n; i++ {
		start := i - m/2
		if start < 0 {
			start = 0
		}
		if start > n-m {
			start = n - m
		}
		for j := 0; j < m; j++ {
			nodes[j] = coords[start+j] - coords[i]
		}
		weights, err := solveWeights(nodes, deriv)
		if err != nil {
			return nil, err
		}
		d.points[i] = stencil1D{weights: weights}
		d.starts[i] = start
	}
	return d, nil
}

// Axis returns the grid axis the differentiator acts along.
func (d *Differentiator) Axis() int { return d.axis }

// DerivOrder returns the derivative order.
func (d *Differentiator) DerivOrder() int { return d.deriv }

// minAxisLen returns the shortest axis the differentiator can act on. The
// one-sided rules reach len(offsets)-1 points past the edge band, so the
// axis must hold both spans.
func (d *Differentiator) minAxisLen() int {
	if d.uniform {
		return len(d.forward.offsets) + d.edge - 1
	}
	return d.nAxis
}

// Apply computes the derivative of f along the configured axis, returning a
// new array of the same shape. f is not modified.
func (d *Differentiator) Apply(f *array.NDArray) (*array.NDArray, error) {
	if f == nil {
		return nil, errors.New("stencil: cannot differentiate a nil array")
	}
	if d.axis >= f.Rank() {
		return nil, fmt.Errorf("stencil: axis %d out of range for rank %d array", d.axis, f.Rank())
	}
	n := f.Shape()[d.axis]
	if d.uniform {
		if n < d.minAxisLen() {
			return nil, fmt.Errorf("stencil: axis %d has %d points, stencil needs %d", d.axis, n, d.minAxisLen())
		}
	} else if n != d.nAxis {
		return nil, fmt.Errorf("stencil: axis %d has %d points, coordinates describe %d", d.axis, n, d.nAxis)
	}

	out := array.ZerosLike(f)
	src := f.Data()
	dst := out.Data()

	inner := f.Stride(d.axis)
	block := n * inner
	for base := 0; base < len(src); base += block {
		for j := 0; j < inner; j++ {
			d.applyLine(src, dst, base+j, n, inner)
		}
	}
	return out, nil
}

// applyLine differentiates one 1D line of the field. The line's i-th sample
// lives at src[line + i*inner].
func (d *Differentiator) applyLine(src, dst []float64, line, n, inner int) {
	if !d.uniform {
		for i := 0; i < n; i++ {
			st := &d.points[i]
			pos := line + d.starts[i]*inner
			var acc float64
			for j, w := range st.weights {
				acc += w * src[pos+j*inner]
			}
			dst[line+i*inner] = acc
		}
		return
	}

	for i := 0; i < n; i++ {
		st := &d.center
		switch {
		case i < d.edge:
			st = &d.forward
		case i >= n-d.edge:
			st = &d.backward
		}
		pos := line + i*inner
		var acc float64
		for j, off := range st.offsets {
			acc += st.weights[j] * src[pos+off*inner]
		}
		dst[pos] = acc
	}
}
