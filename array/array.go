// Package array provides dense N-dimensional float64 arrays.
//
// NDArray is the field representation shared by every operator in this
// module: a scalar field is an NDArray whose rank equals the number of grid
// axes, and a vector field is an NDArray with one extra leading axis holding
// the components. Data is stored row-major in a single flat buffer, so the
// operator layer can run flat accumulation kernels over Data() without
// re-walking the index space.
//
// Key components:
//   - NDArray: shape, row-major strides and a flat float64 buffer
//   - Zeros/ZerosLike/FromFunc constructors
//   - Stack and Component for moving between scalar and vector fields
//
// Shape and strides are fixed at construction; the element buffer is the
// only mutable state.
package array

import (
	"errors"
	"fmt"
)

// NDArray is a dense N-dimensional array of float64 values in row-major
// order. The zero value is not usable; construct with New, Zeros, ZerosLike,
// FromFunc or Stack.
type NDArray struct {
	shape   []int
	strides []int
	data    []float64
}

// New wraps an existing flat buffer in an NDArray of the given shape.
// The buffer is used directly, not copied.
func New(shape []int, data []float64) (*NDArray, error) {
	if len(shape) == 0 {
		return nil, errors.New("array: shape must have at least one axis")
	}
	n := 1
	for _, s := range shape {
		if s <= 0 {
			return nil, fmt.Errorf("array: invalid axis length %d", s)
		}
		n *= s
	}
	if len(data) != n {
		return nil, fmt.Errorf("array: data length %d does not match shape size %d", len(data), n)
	}
	return &NDArray{
		shape:   append([]int(nil), shape...),
		strides: rowMajorStrides(shape),
		data:    data,
	}, nil
}

// Zeros returns a zero-filled NDArray of the given shape.
func Zeros(shape ...int) *NDArray {
	a, err := New(shape, make([]float64, size(shape)))
	if err != nil {
		panic(err)
	}
	return a
}

// ZerosLike returns a zero-filled NDArray with the same shape as a.
func ZerosLike(a *NDArray) *NDArray {
	return Zeros(a.shape...)
}

// FromFunc builds an NDArray by evaluating f at every grid index.
// The index slice passed to f is reused between calls and must not be
// retained.
func FromFunc(shape []int, f func(idx []int) float64) *NDArray {
	a := Zeros(shape...)
	idx := make([]int, len(shape))
	for i := range a.data {
		a.data[i] = f(idx)
		for k := len(idx) - 1; k >= 0; k-- {
			idx[k]++
			if idx[k] < shape[k] {
				break
			}
			idx[k] = 0
		}
	}
	return a
}

// Rank returns the number of axes.
func (a *NDArray) Rank() int { return len(a.shape) }

// Shape returns a copy of the axis lengths.
func (a *NDArray) Shape() []int { return append([]int(nil), a.shape...) }

// Len returns the total number of elements.
func (a *NDArray) Len() int { return len(a.data) }

// Data returns the flat row-major element buffer. Mutating it mutates the
// array.
func (a *NDArray) Data() []float64 { return a.data }

// Stride returns the row-major stride of the given axis.
func (a *NDArray) Stride(axis int) int { return a.strides[axis] }

// At returns the element at the given index. It panics if the index has the
// wrong rank or is out of bounds, matching the contract of a raw slice.
func (a *NDArray) At(idx ...int) float64 {
	return a.data[a.offset(idx)]
}

// Set stores v at the given index, with the same panics as At.
func (a *NDArray) Set(v float64, idx ...int) {
	a.data[a.offset(idx)] = v
}

func (a *NDArray) offset(idx []int) int {
	if len(idx) != len(a.shape) {
		panic(fmt.Sprintf("array: index rank %d does not match array rank %d", len(idx), len(a.shape)))
	}
	off := 0
	for k, i := range idx {
		if i < 0 || i >= a.shape[k] {
			panic(fmt.Sprintf("array: index %d out of range [0,%d) on axis %d", i, a.shape[k], k))
		}
		off += i * a.strides[k]
	}
	return off
}

// Clone returns a deep copy of a.
func (a *NDArray) Clone() *NDArray {
	data := make([]float64, len(a.data))
	copy(data, a.data)
	c, err := New(a.shape, data)
	if err != nil {
		panic(err)
	}
	return c
}

// ShapeEqual reports whether a and b have identical shapes.
func ShapeEqual(a, b *NDArray) bool {
	if a.Rank() != b.Rank() {
		return false
	}
	for k, s := range a.shape {
		if b.shape[k] != s {
			return false
		}
	}
	return true
}

// Stack joins same-shaped arrays along a new leading axis, turning N scalar
// fields into one vector field. The components are copied.
func Stack(components ...*NDArray) (*NDArray, error) {
	if len(components) == 0 {
		return nil, errors.New("array: cannot stack zero components")
	}
	first := components[0]
	for k, c := range components[1:] {
		if !ShapeEqual(first, c) {
			return nil, fmt.Errorf("array: component %d shape %v does not match component 0 shape %v",
				k+1, c.shape, first.shape)
		}
	}
	shape := append([]int{len(components)}, first.shape...)
	data := make([]float64, 0, len(components)*first.Len())
	for _, c := range components {
		data = append(data, c.data...)
	}
	return New(shape, data)
}

// Component returns the k-th slice along the leading axis as an NDArray view
// sharing a's buffer. Writes through the view are visible in a.
func (a *NDArray) Component(k int) (*NDArray, error) {
	if a.Rank() < 2 {
		return nil, fmt.Errorf("array: rank %d array has no component axis", a.Rank())
	}
	if k < 0 || k >= a.shape[0] {
		return nil, fmt.Errorf("array: component %d out of range [0,%d)", k, a.shape[0])
	}
	n := a.strides[0]
	return New(a.shape[1:], a.data[k*n:(k+1)*n])
}

func rowMajorStrides(shape []int) []int {
	strides := make([]int, len(shape))
	stride := 1
	for k := len(shape) - 1; k >= 0; k-- {
		strides[k] = stride
		stride *= shape[k]
	}
	return strides
}

func size(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}
	return n
}
