// Package gridcalc implements the standard differential operators of vector
// calculus over fields sampled on N-dimensional grids.
//
// Gradient, divergence, curl and Laplacian are assembled from independent
// single-axis finite-difference operators. Each operator is configured once
// from a grid description and then applied repeatedly to field arrays; a
// configured operator is immutable and safe for concurrent application.
//
// # Architecture Overview
//
// The module consists of three packages:
//
//   - array: dense row-major N-dimensional float64 arrays, the field
//     representation shared by all operators
//   - stencil: single-axis finite-difference differentiators with
//     selectable derivative and accuracy order, on uniform or
//     non-uniform grids
//   - vector: the composition layer that builds gradient, divergence,
//     curl and Laplacian from per-axis differentiators
//
// # Basic Usage
//
//	grad, err := vector.NewGradient(vector.UniformGrid{Spacings: []float64{0.1, 0.1}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	g, err := grad.Apply(f) // f is a *array.NDArray of rank 2
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Stencil weights are obtained by solving the finite-difference moment
// system with gonum; accuracy order is selectable per operator (default 2).
// Non-uniform grids are supported by per-point stencils computed from the
// explicit axis coordinates.
package gridcalc
