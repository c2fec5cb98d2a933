package isam

import (
	"cmp"
	"errors"
	"fmt"
	"iter"

	"github.com/npillmayer/isam/btree"
)

// Set is a collection of unique keys in ascending order. Keys are addressable
// by rank as well.
type Set[K any] struct {
	*collection[K, struct{}]
}

// NewSet creates an empty set ordered by the natural ordering of K.
func NewSet[K cmp.Ordered](opts ...Option) (*Set[K], error) {
	return NewSetFunc(btree.Natural[K](), opts...)
}

// NewSetFunc creates an empty set ordered by compare.
func NewSetFunc[K any](compare btree.Compare[K], opts ...Option) (*Set[K], error) {
	if compare == nil {
		return nil, fmt.Errorf("%w: set requires a comparator", ErrIllegalArguments)
	}
	c, err := newCollection[K, struct{}](btree.Unique, compare, opts)
	if err != nil {
		return nil, err
	}
	return &Set[K]{c}, nil
}

// Add inserts key. Adding an existing key returns ErrDuplicate and leaves
// the set unchanged.
func (s *Set[K]) Add(key K) error {
	if err := s.wlock(); err != nil {
		return err
	}
	defer s.unlock()
	_, err := s.tree.Insert(key, struct{}{})
	return err
}

// Remove deletes key. It returns ErrNotFound if key is not in the set.
func (s *Set[K]) Remove(key K) error {
	if err := s.wlock(); err != nil {
		return err
	}
	defer s.unlock()
	_, err := s.tree.Remove(key)
	return err
}

// Contains reports whether key is in the set.
func (s *Set[K]) Contains(key K) (bool, error) {
	if err := s.rlock(); err != nil {
		return false, err
	}
	defer s.unlock()
	return s.tree.Exists(key)
}

// At returns the key at rank i.
func (s *Set[K]) At(i int) (K, error) {
	if err := s.rlock(); err != nil {
		var zero K
		return zero, err
	}
	defer s.unlock()
	k, _, err := s.tree.At(i)
	return k, err
}

// Rank returns the position of key in ascending order.
func (s *Set[K]) Rank(key K) (int, error) {
	if err := s.rlock(); err != nil {
		return 0, err
	}
	defer s.unlock()
	return s.tree.FirstOf(key)
}

// Seek returns the rank of the first key not less than key. It equals the
// length of the set if all keys are less.
func (s *Set[K]) Seek(key K) (int, error) {
	if err := s.rlock(); err != nil {
		return 0, err
	}
	defer s.unlock()
	return seek(s.tree, key)
}

// Min returns the smallest key, or ErrNotFound for an empty set.
func (s *Set[K]) Min() (K, error) {
	return s.edge(true)
}

// Max returns the largest key, or ErrNotFound for an empty set.
func (s *Set[K]) Max() (K, error) {
	return s.edge(false)
}

func (s *Set[K]) edge(lowest bool) (K, error) {
	var zero K
	if err := s.rlock(); err != nil {
		return zero, err
	}
	defer s.unlock()
	if s.tree.IsEmpty() {
		return zero, fmt.Errorf("%w: empty set", ErrNotFound)
	}
	i := 0
	if !lowest {
		i = s.tree.Len() - 1
	}
	k, _, err := s.tree.At(i)
	return k, err
}

// All returns an iterator over the keys in ascending order. The set is
// locked for reading during iteration.
func (s *Set[K]) All() iter.Seq[K] {
	return func(yield func(K) bool) {
		s.ascend(0, func(_ int, k K, _ struct{}) bool {
			return yield(k)
		})
	}
}

// Each visits all keys in ascending order. Iteration stops at the first
// callback error and returns that error to the caller.
func (s *Set[K]) Each(f func(K) error) error {
	var err error
	lerr := s.ascend(0, func(_ int, k K, _ struct{}) bool {
		err = f(k)
		return err == nil
	})
	if lerr != nil {
		return lerr
	}
	return err
}

// Clone returns an independent copy of the set. Lock, name and events of the
// copy are configured by opts.
func (s *Set[K]) Clone(opts ...Option) (*Set[K], error) {
	c, err := s.clone(opts)
	if err != nil {
		return nil, err
	}
	return &Set[K]{c}, nil
}

// seek finds the rank of the first element whose key is not less than key.
func seek[K, V any](tree *btree.Tree[K, V], key K) (int, error) {
	rank, err := tree.FirstOf(key)
	if errors.Is(err, btree.ErrNotFound) {
		return tree.InsertionRank(key)
	}
	return rank, err
}
