package isam

import (
	"fmt"
	"sync/atomic"
)

// Closer is implemented by all collections of this package.
type Closer interface {
	Name() string
	Close()
}

// Shared is a reference-counted handle to a collection. Handles are created
// with Share and duplicated with Acquire; every handle is released exactly
// once. The last release closes the collection.
//
// Plain assignment of collections aliases them without any bookkeeping.
// Shared makes aliasing explicit where several owners hold on to one
// collection.
type Shared[C Closer] struct {
	shared   *sharedState[C]
	released atomic.Bool
}

type sharedState[C Closer] struct {
	value C
	refs  atomic.Int64
}

// Share creates the first handle to c.
func Share[C Closer](c C) *Shared[C] {
	st := &sharedState[C]{value: c}
	st.refs.Store(1)
	return &Shared[C]{shared: st}
}

// Acquire returns a new handle to the same collection.
func (s *Shared[C]) Acquire() (*Shared[C], error) {
	if s.released.Load() {
		return nil, ErrReleased
	}
	for {
		n := s.shared.refs.Load()
		if n <= 0 {
			return nil, ErrReleased
		}
		if s.shared.refs.CompareAndSwap(n, n+1) {
			return &Shared[C]{shared: s.shared}, nil
		}
	}
}

// Get returns the collection.
func (s *Shared[C]) Get() (C, error) {
	if s.released.Load() {
		var zero C
		return zero, ErrReleased
	}
	return s.shared.value, nil
}

// Refs returns the number of unreleased handles.
func (s *Shared[C]) Refs() int {
	return int(s.shared.refs.Load())
}

// Release gives up this handle. Releasing the last handle closes the
// collection.
func (s *Shared[C]) Release() error {
	if !s.released.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: handle released twice", ErrReleased)
	}
	if s.shared.refs.Add(-1) == 0 {
		T().Debugf("isam: last handle of %q released", s.shared.value.Name())
		s.shared.value.Close()
	}
	return nil
}
