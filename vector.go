package isam

import (
	"fmt"
	"iter"

	"github.com/npillmayer/isam/btree"
)

// Vector is a sequence of elements addressed by position. Inserts and
// removals at arbitrary positions run in logarithmic time.
type Vector[T any] struct {
	*collection[T, struct{}]
}

// NewVector creates an empty vector.
func NewVector[T any](opts ...Option) (*Vector[T], error) {
	c, err := newCollection[T, struct{}](btree.Positional, nil, opts)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{c}, nil
}

// VectorOf creates a vector holding items.
func VectorOf[T any](items []T, opts ...Option) (*Vector[T], error) {
	v, err := NewVector[T](opts...)
	if err != nil {
		return nil, err
	}
	for i, x := range items {
		if err := v.tree.InsertAt(i, x, struct{}{}); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// Append adds x after the last element.
func (v *Vector[T]) Append(x T) error {
	if err := v.wlock(); err != nil {
		return err
	}
	defer v.unlock()
	return v.tree.InsertAt(v.tree.Len(), x, struct{}{})
}

// InsertAt inserts x at position i, shifting later elements up by one. i may
// equal the length of the vector.
func (v *Vector[T]) InsertAt(i int, x T) error {
	if err := v.wlock(); err != nil {
		return err
	}
	defer v.unlock()
	return v.tree.InsertAt(i, x, struct{}{})
}

// RemoveAt removes and returns the element at position i.
func (v *Vector[T]) RemoveAt(i int) (T, error) {
	if err := v.wlock(); err != nil {
		var zero T
		return zero, err
	}
	defer v.unlock()
	x, _, err := v.tree.RemoveAt(i)
	return x, err
}

// At returns the element at position i.
func (v *Vector[T]) At(i int) (T, error) {
	if err := v.rlock(); err != nil {
		var zero T
		return zero, err
	}
	defer v.unlock()
	x, _, err := v.tree.At(i)
	return x, err
}

// Set replaces the element at position i.
func (v *Vector[T]) Set(i int, x T) error {
	if err := v.wlock(); err != nil {
		return err
	}
	defer v.unlock()
	return v.tree.SetAt(i, x, struct{}{})
}

// Slice returns a copy of the elements at positions [from,to).
func (v *Vector[T]) Slice(from, to int) ([]T, error) {
	if err := v.rlock(); err != nil {
		return nil, err
	}
	defer v.unlock()
	if from < 0 || to > v.tree.Len() || from > to {
		return nil, fmt.Errorf("%w: slice [%d:%d] of %d", ErrIndexOutOfBounds, from, to, v.tree.Len())
	}
	out := make([]T, 0, to-from)
	if from == to {
		return out, nil
	}
	err := v.tree.Ascend(from, func(rank int, x T, _ struct{}) bool {
		if rank >= to {
			return false
		}
		out = append(out, x)
		return true
	})
	return out, err
}

// All returns an iterator over positions and elements. The vector is locked
// for reading during iteration; if the lock cannot be acquired, the iterator
// yields nothing.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		v.ascend(0, func(rank int, x T, _ struct{}) bool {
			return yield(rank, x)
		})
	}
}

// Each visits all elements in order. Iteration stops at the first callback
// error and returns that error to the caller.
func (v *Vector[T]) Each(f func(int, T) error) error {
	var err error
	lerr := v.ascend(0, func(rank int, x T, _ struct{}) bool {
		err = f(rank, x)
		return err == nil
	})
	if lerr != nil {
		return lerr
	}
	return err
}

// Clone returns an independent copy of the vector. Lock, name and events of
// the copy are configured by opts.
func (v *Vector[T]) Clone(opts ...Option) (*Vector[T], error) {
	c, err := v.clone(opts)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{c}, nil
}
