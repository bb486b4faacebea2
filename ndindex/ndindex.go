// Package ndindex enumerates the index tuples of an N-dimensional array.
package ndindex

// Space is the Cartesian product of the ranges [0, dims[i]).
// Tuples are produced in row-major order: the last axis varies fastest.
type Space struct {
	dims []int
}

// New returns the Space of the given axis lengths, which must not be
// negative. A Space with a zero-length axis is empty.
func New(dims ...int) Space {
	return Space{dims: append([]int(nil), dims...)}
}

// Dims returns a copy of the axis lengths of the Space.
func (s Space) Dims() []int {
	return append([]int(nil), s.dims...)
}

// Len returns the number of tuples in the Space.
// A zero-rank Space contains exactly one (empty) tuple.
func (s Space) Len() int {
	n := 1
	for _, d := range s.dims {
		if d <= 0 {
			return 0
		}
		n *= d
	}
	return n
}

// Iter returns a new Iterator positioned before the first tuple.
// Iterators are independent of each other.
func (s Space) Iter() *Iterator {
	it := &Iterator{
		dims:    s.dims,
		current: make([]int, len(s.dims)),
		done:    s.Len() <= 0,
	}
	return it
}

// Each calls cb with every tuple of the Space, in order.
// The slice passed to cb is reused between calls and must be copied
// if it is retained.
func (s Space) Each(cb func(index []int)) {
	it := s.Iter()
	for it.Next() {
		cb(it.current)
	}
}

// All materializes every tuple of the Space.
func (s Space) All() [][]int {
	result := make([][]int, 0, s.Len())
	for it := s.Iter(); it.Next(); {
		result = append(result, it.Index())
	}
	return result
}

// Pin returns a Space identical to s except that axis has length 1.
// It is used to iterate over all opponents' profiles while one player's
// strategy is held fixed.
func (s Space) Pin(axis int) Space {
	dims := s.Dims()
	dims[axis] = 1
	return Space{dims: dims}
}

// Iterator walks a Space. Use it like a bufio.Scanner:
//
//	for it := s.Iter(); it.Next(); {
//		idx := it.Index()
//	}
type Iterator struct {
	dims    []int
	current []int
	started bool
	done    bool
}

// Next advances to the next tuple, returning false once the Space is exhausted.
func (it *Iterator) Next() bool {
	if it.done {
		return false
	}

	if !it.started {
		it.started = true
		return true
	}

	for i := len(it.dims) - 1; i >= 0; i-- {
		it.current[i]++
		if it.current[i] < it.dims[i] {
			return true
		}
		it.current[i] = 0
	}

	it.done = true
	return false
}

// Index returns a copy of the current tuple.
func (it *Iterator) Index() []int {
	return append([]int(nil), it.current...)
}
