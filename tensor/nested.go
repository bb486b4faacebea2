package tensor

import (
	"reflect"

	"github.com/pkg/errors"
)

// ToNested materializes t as nested []any slices mirroring its shape,
// with values of type T at the leaves. A zero-rank tensor yields its
// single value.
func (t *Tensor[T]) ToNested() any {
	return t.nested(0, 0)
}

func (t *Tensor[T]) nested(axis, offset int) any {
	if axis == len(t.shape) {
		return t.data[offset]
	}

	n := t.shape[axis]
	result := make([]any, n)
	for i := 0; i < n; i++ {
		result[i] = t.nested(axis+1, offset*n+i)
	}
	return result
}

// FromNested builds a Tensor from a nested slice such as [][]float64 or
// the []any produced by ToNested or encoding/json. If shape is nil it is
// inferred by following the first element at every level. Leaves must
// hold values of type T; T itself may not be a slice type.
func FromNested[T any](source any, shape []int) (*Tensor[T], error) {
	if shape == nil {
		var err error
		if shape, err = InferShape(source); err != nil {
			return nil, err
		}
	}

	t := Zeros[T](shape...)
	t.data = t.data[:0]
	if err := t.fill(reflect.ValueOf(source), 0); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Tensor[T]) fill(v reflect.Value, axis int) error {
	v = unwrap(v)
	if axis == len(t.shape) {
		if isSequence(v) {
			return errors.Wrap(ErrIrregularNesting, "array nesting too deep")
		}
		if !v.IsValid() {
			return errors.Wrap(ErrIrregularNesting, "nil leaf")
		}
		x, ok := v.Interface().(T)
		if !ok {
			var zero T
			return errors.Wrapf(ErrIrregularNesting,
				"leaf of type %v is not %T", v.Type(), zero)
		}
		t.data = append(t.data, x)
		return nil
	}

	if !isSequence(v) {
		return errors.Wrap(ErrIrregularNesting, "array nesting too shallow")
	}
	if v.Len() != t.shape[axis] {
		return errors.Wrapf(ErrIrregularNesting,
			"axis %d has length %d, expected %d", axis, v.Len(), t.shape[axis])
	}
	for i := 0; i < v.Len(); i++ {
		if err := t.fill(v.Index(i), axis+1); err != nil {
			return err
		}
	}
	return nil
}

// InferShape returns the shape of a nested slice by descending into the
// first element at each level. It does not check that the nesting is regular.
func InferShape(source any) ([]int, error) {
	var shape []int
	v := unwrap(reflect.ValueOf(source))
	for isSequence(v) {
		if v.Len() == 0 {
			return nil, errors.Wrap(ErrIrregularNesting,
				"cannot infer shape from an empty array")
		}
		shape = append(shape, v.Len())
		v = unwrap(v.Index(0))
	}
	if shape == nil {
		shape = []int{}
	}
	return shape, nil
}

func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && v.Kind() == reflect.Interface {
		v = v.Elem()
	}
	return v
}

func isSequence(v reflect.Value) bool {
	return v.IsValid() && (v.Kind() == reflect.Slice || v.Kind() == reflect.Array)
}
