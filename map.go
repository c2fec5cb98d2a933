package isam

import (
	"cmp"
	"fmt"
	"iter"

	"github.com/npillmayer/isam/btree"
)

// Map is a one-to-one mapping of keys to values, kept in ascending key order.
// Entries are addressable by rank as well.
type Map[K, V any] struct {
	*collection[K, V]
}

// NewMap creates an empty map ordered by the natural ordering of K.
func NewMap[K cmp.Ordered, V any](opts ...Option) (*Map[K, V], error) {
	return NewMapFunc[K, V](btree.Natural[K](), opts...)
}

// NewMapFunc creates an empty map ordered by compare.
func NewMapFunc[K, V any](compare btree.Compare[K], opts ...Option) (*Map[K, V], error) {
	if compare == nil {
		return nil, fmt.Errorf("%w: map requires a comparator", ErrIllegalArguments)
	}
	c, err := newCollection[K, V](btree.Unique, compare, opts)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{c}, nil
}

// Put maps key to val, replacing the value of an existing entry.
func (m *Map[K, V]) Put(key K, val V) error {
	if err := m.wlock(); err != nil {
		return err
	}
	defer m.unlock()
	_, _, err := m.tree.Upsert(key, val)
	return err
}

// Insert maps key to val. It returns ErrDuplicate and leaves the map
// unchanged if key is already mapped.
func (m *Map[K, V]) Insert(key K, val V) error {
	if err := m.wlock(); err != nil {
		return err
	}
	defer m.unlock()
	_, err := m.tree.Insert(key, val)
	return err
}

// Get returns the value mapped to key, or ErrNotFound.
func (m *Map[K, V]) Get(key K) (V, error) {
	if err := m.rlock(); err != nil {
		var zero V
		return zero, err
	}
	defer m.unlock()
	_, v, err := m.tree.Find(key, btree.First)
	return v, err
}

// Delete removes the entry for key and returns its value.
func (m *Map[K, V]) Delete(key K) (V, error) {
	if err := m.wlock(); err != nil {
		var zero V
		return zero, err
	}
	defer m.unlock()
	return m.tree.Remove(key)
}

// At returns the entry at rank i.
func (m *Map[K, V]) At(i int) (K, V, error) {
	if err := m.rlock(); err != nil {
		var k K
		var v V
		return k, v, err
	}
	defer m.unlock()
	return m.tree.At(i)
}

// Rank returns the position of key in ascending key order.
func (m *Map[K, V]) Rank(key K) (int, error) {
	if err := m.rlock(); err != nil {
		return 0, err
	}
	defer m.unlock()
	return m.tree.FirstOf(key)
}

// All returns an iterator over the entries in ascending key order. The map
// is locked for reading during iteration.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.ascend(0, func(_ int, k K, v V) bool {
			return yield(k, v)
		})
	}
}

// Keys returns an iterator over the keys in ascending order.
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.ascend(0, func(_ int, k K, _ V) bool {
			return yield(k)
		})
	}
}

// Each visits all entries in ascending key order. Iteration stops at the
// first callback error and returns that error to the caller.
func (m *Map[K, V]) Each(f func(K, V) error) error {
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

// Clone returns an independent copy of the map. Lock, name and events of the
// copy are configured by opts.
func (m *Map[K, V]) Clone(opts ...Option) (*Map[K, V], error) {
	c, err := m.clone(opts)
	if err != nil {
		return nil, err
	}
	return &Map[K, V]{c}, nil
}
