package vector

import (
	"errors"
	"math"
	"testing"

	"gridcalc/array"
)

// grid3 is the 3D unit grid used across tests.
func grid3() UniformGrid {
	return UniformGrid{Spacings: []float64{1, 1, 1}}
}

// sampleScalar fills a field of the given shape with f evaluated at the grid
// point coordinates idx*h.
func sampleScalar(shape []int, h float64, f func(x ...float64) float64) *array.NDArray {
	xs := make([]float64, len(shape))
	return array.FromFunc(shape, func(idx []int) float64 {
		for k, i := range idx {
			xs[k] = float64(i) * h
		}
		return f(xs...)
	})
}

// sampleVector builds a vector field from per-component functions.
func sampleVector(t *testing.T, shape []int, h float64, comps ...func(x ...float64) float64) *array.NDArray {
	t.Helper()
	fields := make([]*array.NDArray, len(comps))
	for k, c := range comps {
		fields[k] = sampleScalar(shape, h, c)
	}
	v, err := array.Stack(fields...)
	if err != nil {
		t.Fatalf("Stack() error = %v", err)
	}
	return v
}

func TestConstructionConfigurationErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		grid Grid
	}{
		{name: "nil grid", grid: nil},
		{name: "empty uniform grid", grid: UniformGrid{}},
		{name: "zero spacing", grid: UniformGrid{Spacings: []float64{1, 0}}},
		{name: "negative spacing", grid: UniformGrid{Spacings: []float64{-0.5}}},
		{name: "empty non-uniform grid", grid: NonUniformGrid{}},
		{name: "empty coordinate axis", grid: NonUniformGrid{Coordinates: [][]float64{{0, 1, 2}, nil}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGradient(tt.grid)
			var cfgErr *ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Errorf("NewGradient(%v) error = %v, want *ConfigurationError", tt.grid, err)
			}

			// The same construction path backs every operator.
			if _, err := NewDivergence(tt.grid); err == nil {
				t.Errorf("NewDivergence(%v) should fail", tt.grid)
			}
			if _, err := NewCurl(tt.grid); err == nil {
				t.Errorf("NewCurl(%v) should fail", tt.grid)
			}
		})
	}
}

func TestCurlDimensionalityGuard(t *testing.T) {
	t.Parallel()
	_, err := NewCurl(UniformGrid{Spacings: []float64{1, 1}})
	var dimErr *DimensionalityError
	if !errors.As(err, &dimErr) {
		t.Fatalf("NewCurl(2 axes) error = %v, want *DimensionalityError", err)
	}
	if dimErr.NDims != 2 || dimErr.Want != 3 {
		t.Errorf("DimensionalityError = %+v, want NDims 2, Want 3", dimErr)
	}

	if _, err := NewCurl(grid3()); err != nil {
		t.Errorf("NewCurl(3 axes) error = %v", err)
	}
}

func TestApplyDimensionMismatches(t *testing.T) {
	t.Parallel()
	grad, err := NewGradient(UniformGrid{Spacings: []float64{1, 1}})
	if err != nil {
		t.Fatalf("NewGradient() error = %v", err)
	}
	div, err := NewDivergence(UniformGrid{Spacings: []float64{1, 1}})
	if err != nil {
		t.Fatalf("NewDivergence() error = %v", err)
	}

	assertMismatch := func(name string, err error) {
		t.Helper()
		var mismatch *DimensionMismatchError
		if !errors.As(err, &mismatch) {
			t.Errorf("%s error = %v, want *DimensionMismatchError", name, err)
		}
	}

	// Gradient wants a rank-2 scalar field.
	_, err = grad.Apply(array.Zeros(5, 5, 5))
	assertMismatch("gradient on rank-3 field", err)
	_, err = grad.Apply(nil)
	assertMismatch("gradient on nil field", err)

	// Divergence wants rank 3 with leading length 2.
	_, err = div.Apply(array.Zeros(5, 5))
	assertMismatch("divergence on scalar field", err)
	_, err = div.Apply(array.Zeros(3, 5, 5))
	assertMismatch("divergence on 3-component field", err)
	_, err = div.Apply(nil)
	assertMismatch("divergence on nil field", err)
}

func TestOperatorsAreReusable(t *testing.T) {
	t.Parallel()
	const n, h = 12, 0.25
	grad, err := NewGradient(UniformGrid{Spacings: []float64{h, h}})
	if err != nil {
		t.Fatalf("NewGradient() error = %v", err)
	}

	f := sampleScalar([]int{n, n}, h, func(x ...float64) float64 { return x[0] * x[1] })
	snapshot := f.Clone()

	first, err := grad.Apply(f)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	second, err := grad.Apply(f)
	if err != nil {
		t.Fatalf("second Apply() error = %v", err)
	}

	// Deterministic accumulation: repeated applications agree exactly.
	a, b := first.Data(), second.Data()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("repeated application differs at %d: %v vs %v", i, a[i], b[i])
		}
	}

	// The input is never written.
	for i, v := range f.Data() {
		if v != snapshot.Data()[i] {
			t.Fatalf("input mutated at %d", i)
		}
	}
}

func TestConcurrentApply(t *testing.T) {
	t.Parallel()
	const n, h = 16, 0.1
	lap, err := NewLaplacian(UniformGrid{Spacings: []float64{h, h}})
	if err != nil {
		t.Fatalf("NewLaplacian() error = %v", err)
	}

	f := sampleScalar([]int{n, n}, h, func(x ...float64) float64 {
		return math.Sin(x[0]) * math.Cos(x[1])
	})

	reference, err := lap.Apply(f)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	const workers = 8
	results := make(chan *array.NDArray, workers)
	for w := 0; w < workers; w++ {
		go func() {
			out, err := lap.Apply(f)
			if err != nil {
				t.Error(err)
				results <- nil
				return
			}
			results <- out
		}()
	}

	for w := 0; w < workers; w++ {
		out := <-results
		if out == nil {
			continue
		}
		ref, got := reference.Data(), out.Data()
		for i := range ref {
			if ref[i] != got[i] {
				t.Fatalf("concurrent application differs at %d", i)
			}
		}
	}
}
