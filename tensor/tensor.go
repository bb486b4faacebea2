// Package tensor implements a dense N-rank array.
//
// A Tensor owns its backing storage. Tensors are never aliased by the
// functions in this package: Clone, Map and the constructors always
// allocate. A caller that intends to mutate a Tensor it did not create
// should Clone it first.
package tensor

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/timpalpant/nash/ndindex"
)

// Tensor is a dense row-major array of T with a fixed shape.
type Tensor[T any] struct {
	shape []int
	data  []T
}

// FromGenerator builds a Tensor by calling gen once per cell, in
// row-major order. The index passed to gen must not be retained.
func FromGenerator[T any](shape []int, gen func(index []int) T) *Tensor[T] {
	space := ndindex.New(shape...)
	t := &Tensor[T]{
		shape: space.Dims(),
		data:  make([]T, 0, space.Len()),
	}
	space.Each(func(index []int) {
		t.data = append(t.data, gen(index))
	})
	return t
}

// FromFlat builds a Tensor from values laid out in row-major order.
// The values are copied.
func FromFlat[T any](shape []int, values []T) (*Tensor[T], error) {
	n := size(shape)
	if len(values) != n {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"%d values cannot fill shape %v (%d cells)", len(values), shape, n)
	}

	return &Tensor[T]{
		shape: append([]int(nil), shape...),
		data:  append(make([]T, 0, n), values...),
	}, nil
}

// Zeros returns a Tensor of the given shape filled with the zero value.
func Zeros[T any](shape ...int) *Tensor[T] {
	return &Tensor[T]{
		shape: append([]int(nil), shape...),
		data:  make([]T, size(shape)),
	}
}

func size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// Shape returns a copy of the axis lengths.
func (t *Tensor[T]) Shape() []int {
	return append([]int(nil), t.shape...)
}

// Rank returns the number of axes.
func (t *Tensor[T]) Rank() int {
	return len(t.shape)
}

// Len returns the total number of cells.
func (t *Tensor[T]) Len() int {
	return len(t.data)
}

// Data returns a copy of the cells in row-major order.
func (t *Tensor[T]) Data() []T {
	return append([]T(nil), t.data...)
}

// At returns the value at index. The index is not bounds-checked per axis;
// callers must validate untrusted indices with CheckIndex.
func (t *Tensor[T]) At(index ...int) T {
	return t.data[t.offset(index)]
}

// Set stores v at index. Like At, the index is not validated.
func (t *Tensor[T]) Set(v T, index ...int) {
	t.data[t.offset(index)] = v
}

func (t *Tensor[T]) offset(index []int) int {
	off := 0
	for i, d := range t.shape {
		off = off*d + index[i]
	}
	return off
}

// CheckIndex reports whether index addresses a cell of t.
func (t *Tensor[T]) CheckIndex(index ...int) error {
	if len(index) != len(t.shape) {
		return errors.Wrapf(ErrIndexOutOfRange,
			"index %v has %d axes, tensor has %d", index, len(index), len(t.shape))
	}

	for i, x := range index {
		if x < 0 || x >= t.shape[i] {
			return errors.Wrapf(ErrIndexOutOfRange,
				"index %v: axis %d must be in [0, %d)", index, i, t.shape[i])
		}
	}

	return nil
}

// Clone returns a deep copy of t.
func (t *Tensor[T]) Clone() *Tensor[T] {
	return &Tensor[T]{
		shape: t.Shape(),
		data:  t.Data(),
	}
}

// Each calls cb with every index and value of t in row-major order.
func (t *Tensor[T]) Each(cb func(index []int, v T)) {
	i := 0
	ndindex.New(t.shape...).Each(func(index []int) {
		cb(index, t.data[i])
		i++
	})
}

// String implements Stringer.
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("%v", t.ToNested())
}

// Map returns a new Tensor of the same shape with f applied to every cell.
func Map[T, U any](t *Tensor[T], f func(T) U) *Tensor[U] {
	result := &Tensor[U]{
		shape: t.Shape(),
		data:  make([]U, len(t.data)),
	}
	for i, v := range t.data {
		result.data[i] = f(v)
	}
	return result
}

// Equal returns whether a and b have the same shape and cells.
func Equal[T comparable](a, b *Tensor[T]) bool {
	if len(a.shape) != len(b.shape) || len(a.data) != len(b.data) {
		return false
	}
	for i := range a.shape {
		if a.shape[i] != b.shape[i] {
			return false
		}
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}
