package isam

import (
	"cmp"
	"errors"
	"fmt"
	"iter"

	"github.com/npillmayer/isam/btree"
)

// MultiMap is a one-to-many mapping of keys to values, kept in ascending key
// order. Values of one key form a contiguous run of ranks, in the order they
// were added.
type MultiMap[K, V any] struct {
	*collection[K, V]
}

// NewMultiMap creates an empty multi-map ordered by the natural ordering
// of K.
func NewMultiMap[K cmp.Ordered, V any](opts ...Option) (*MultiMap[K, V], error) {
	return NewMultiMapFunc[K, V](btree.Natural[K](), opts...)
}

// NewMultiMapFunc creates an empty multi-map ordered by compare.
func NewMultiMapFunc[K, V any](compare btree.Compare[K], opts ...Option) (*MultiMap[K, V], error) {
	if compare == nil {
		return nil, fmt.Errorf("%w: multi-map requires a comparator", ErrIllegalArguments)
	}
	c, err := newCollection[K, V](btree.Multi, compare, opts)
	if err != nil {
		return nil, err
	}
	return &MultiMap[K, V]{c}, nil
}

// Add appends val to the values of key and returns the rank of the new
// entry.
func (m *MultiMap[K, V]) Add(key K, val V) (int, error) {
	if err := m.wlock(); err != nil {
		return 0, err
	}
	defer m.unlock()
	return m.tree.Insert(key, val)
}

// Get returns the first value of key, or ErrNotFound.
func (m *MultiMap[K, V]) Get(key K) (V, error) {
	if err := m.rlock(); err != nil {
		var zero V
		return zero, err
	}
	defer m.unlock()
	_, v, err := m.tree.Find(key, btree.First)
	return v, err
}

// GetAll returns all values of key in the order they were added. It returns
// an empty slice if key is not mapped.
func (m *MultiMap[K, V]) GetAll(key K) ([]V, error) {
	if err := m.rlock(); err != nil {
		return nil, err
	}
	defer m.unlock()
	from, to, err := m.run(key)
	if err != nil {
		return nil, err
	}
	vals := make([]V, 0, to-from)
	if from == to {
		return vals, nil
	}
	err = m.tree.Ascend(from, func(rank int, _ K, v V) bool {
		if rank >= to {
			return false
		}
		vals = append(vals, v)
		return true
	})
	return vals, err
}

// run returns the ranks [from,to) of key's values; from == to if key is not
// mapped.
func (m *MultiMap[K, V]) run(key K) (int, int, error) {
	to, err := m.tree.InsertionRank(key)
	if err != nil {
		return 0, 0, err
	}
	from, err := m.tree.FirstOf(key)
	if errors.Is(err, btree.ErrNotFound) {
		return to, to, nil
	}
	return from, to, err
}

// FirstOf returns the rank of the first value of key.
func (m *MultiMap[K, V]) FirstOf(key K) (int, error) {
	if err := m.rlock(); err != nil {
		return 0, err
	}
	defer m.unlock()
	return m.tree.FirstOf(key)
}

// LastOf returns the rank of the last value of key.
func (m *MultiMap[K, V]) LastOf(key K) (int, error) {
	if err := m.rlock(); err != nil {
		return 0, err
	}
	defer m.unlock()
	return m.tree.LastOf(key)
}

// InsertionRank returns the rank the next value added for key would get.
func (m *MultiMap[K, V]) InsertionRank(key K) (int, error) {
	if err := m.rlock(); err != nil {
		return 0, err
	}
	defer m.unlock()
	return m.tree.InsertionRank(key)
}

// Seek returns the rank of the first entry whose key is not less than key.
func (m *MultiMap[K, V]) Seek(key K) (int, error) {
	if err := m.rlock(); err != nil {
		return 0, err
	}
	defer m.unlock()
	return seek(m.tree, key)
}

// Count returns the number of values of key.
func (m *MultiMap[K, V]) Count(key K) (int, error) {
	if err := m.rlock(); err != nil {
		return 0, err
	}
	defer m.unlock()
	from, to, err := m.run(key)
	return to - from, err
}

// RemoveFirst removes the first value of key and returns it.
func (m *MultiMap[K, V]) RemoveFirst(key K) (V, error) {
	if err := m.wlock(); err != nil {
		var zero V
		return zero, err
	}
	defer m.unlock()
	return m.tree.Remove(key)
}

// RemoveAll removes all values of key and returns how many were removed.
func (m *MultiMap[K, V]) RemoveAll(key K) (int, error) {
	if err := m.wlock(); err != nil {
		return 0, err
	}
	defer m.unlock()
	from, to, err := m.run(key)
	if err != nil {
		return 0, err
	}
	for range to - from {
		if _, _, err := m.tree.RemoveAt(from); err != nil {
			return 0, err
		}
	}
	return to - from, nil
}

// RemoveAt removes the entry at rank i and returns it.
func (m *MultiMap[K, V]) RemoveAt(i int) (K, V, error) {
	if err := m.wlock(); err != nil {
		var k K
		var v V
		return k, v, err
	}
	defer m.unlock()
	return m.tree.RemoveAt(i)
}

// At returns the entry at rank i.
func (m *MultiMap[K, V]) At(i int) (K, V, error) {
	if err := m.rlock(); err != nil {
		var k K
		var v V
		return k, v, err
	}
	defer m.unlock()
	return m.tree.At(i)
}

// All returns an iterator over all entries in ascending key order. The map
// is locked for reading during iteration.
func (m *MultiMap[K, V]) All() iter.Seq2[K, V] {
	return m.From(0)
}

// From returns an iterator over the entries starting at rank from.
func (m *MultiMap[K, V]) From(from int) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.ascend(from, func(_ int, k K, v V) bool {
			return yield(k, v)
		})
	}
}

// Range returns an iterator over the ranks and values of key.
func (m *MultiMap[K, V]) Range(key K) iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		if err := m.rlock(); err != nil {
			return
		}
		defer m.unlock()
		from, to, err := m.run(key)
		if err != nil || from == to {
			return
		}
		m.tree.Ascend(from, func(rank int, _ K, v V) bool {
			return rank < to && yield(rank, v)
		})
	}
}

// Each visits all entries in ascending key order. Iteration stops at the
// first callback error and returns that error to the caller.
func (m *MultiMap[K, V]) Each(f func(K, V) error) error {
	var err error
	lerr := m.ascend(0, func(_ int, k K, v V) bool {
		err = f(k, v)
		return err == nil
	})
	if lerr != nil {
		return lerr
	}
	return err
}

// Clone returns an independent copy of the multi-map. Lock, name and events
// of the copy are configured by opts.
func (m *MultiMap[K, V]) Clone(opts ...Option) (*MultiMap[K, V], error) {
	c, err := m.clone(opts)
	if err != nil {
		return nil, err
	}
	return &MultiMap[K, V]{c}, nil
}
