package stencil

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// stencil1D is one finite-difference rule: weights applied at integer grid
// offsets relative to the evaluation point.
type stencil1D struct {
	offsets []int
	weights []float64
}

// centralSize returns the number of points in the central stencil for the
// given derivative order and (even) accuracy order.
func centralSize(deriv, acc int) int {
	return 2*((deriv+1)/2) - 1 + acc
}

// sideSize returns the number of points in the one-sided stencils. Even
// derivative orders need one extra point to reach the same accuracy.
func sideSize(deriv, acc int) int {
	n := centralSize(deriv, acc)
	if deriv%2 == 0 {
		return n + 1
	}
	return n
}

// centralOffsets returns the symmetric offsets -p..p.
func centralOffsets(deriv, acc int) []int {
	n := centralSize(deriv, acc)
	p := n / 2
	offs := make([]int, n)
	for i := range offs {
		offs[i] = i - p
	}
	return offs
}

// forwardOffsets returns the offsets 0..m-1.
func forwardOffsets(deriv, acc int) []int {
	m := sideSize(deriv, acc)
	offs := make([]int, m)
	for i := range offs {
		offs[i] = i
	}
	return offs
}

// backwardOffsets returns the offsets -(m-1)..0.
func backwardOffsets(deriv, acc int) []int {
	m := sideSize(deriv, acc)
	offs := make([]int, m)
	for i := range offs {
		offs[i] = i - (m - 1)
	}
	return offs
}

// solveWeights computes finite-difference weights for the given node
// positions, expressed relative to the evaluation point. The weights are the
// solution of the moment system
//
//	sum_j w_j * x_j^i = d! * delta(i, deriv),  i = 0..len(nodes)-1
//
// so that sum_j w_j f(x0 + x_j) approximates the deriv-th derivative at x0.
func solveWeights(nodes []float64, deriv int) ([]float64, error) {
	m := len(nodes)
	if deriv >= m {
		return nil, fmt.Errorf("stencil: %d nodes cannot resolve derivative order %d", m, deriv)
	}

	a := mat.NewDense(m, m, nil)
	for j, x := range nodes {
		moment := 1.0
		for i := 0; i < m; i++ {
			a.Set(i, j, moment)
			moment *= x
		}
	}

	b := mat.NewVecDense(m, nil)
	b.SetVec(deriv, factorial(deriv))

	var w mat.VecDense
	if err := w.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("stencil: moment system is singular for nodes %v: %w", nodes, err)
	}

	weights := make([]float64, m)
	for j := range weights {
		weights[j] = w.AtVec(j)
	}
	return weights, nil
}

// uniformStencil computes the rule for integer offsets on a unit-spaced
// grid, scaled for the actual spacing h.
func uniformStencil(offsets []int, deriv int, h float64) (stencil1D, error) {
	nodes := make([]float64, len(offsets))
	for j, off := range offsets {
		nodes[j] = float64(off)
	}
	weights, err := solveWeights(nodes, deriv)
	if err != nil {
		return stencil1D{}, err
	}
	scale := 1.0
	for i := 0; i < deriv; i++ {
		scale /= h
	}
	for j := range weights {
		weights[j] *= scale
	}
	return stencil1D{offsets: offsets, weights: weights}, nil
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}
