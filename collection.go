package isam

import (
	"context"
	"io"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/isam/btree"
	"github.com/npillmayer/isam/rwlock"
)

// collection is the part common to all facades: a tree, its optional lock
// and its optional event broadcaster.
type collection[K, V any] struct {
	name      string
	lock      rwlock.Locker
	tree      *btree.Tree[K, V]
	cast      *caster.Caster // nil unless created WithEvents
	closeOnce sync.Once
}

func newCollection[K, V any](policy btree.Policy, compare btree.Compare[K], opts []Option) (*collection[K, V], error) {
	o := collectOptions(opts)
	c := &collection[K, V]{name: o.name, lock: o.lock}
	cfg := btree.Config[K]{
		Policy:      policy,
		Compare:     compare,
		Strict:      o.strict,
		OnIntegrity: o.onIntegrity,
	}
	if o.events {
		c.cast = caster.New(nil)
		cfg.Observer = c.publish
	}
	tree, err := btree.New[K, V](cfg)
	if err != nil {
		return nil, err
	}
	c.tree = tree
	T().Debugf("isam: created %s collection %q", policy, c.name)
	return c, nil
}

// publish forwards a tree event to subscribers. Subscribers with a full
// channel miss the event.
func (c *collection[K, V]) publish(e btree.Event) {
	c.cast.TryPub(e)
}

func (c *collection[K, V]) rlock() error {
	if c.lock == nil {
		return nil
	}
	return c.lock.AcquireRead(context.Background())
}

func (c *collection[K, V]) wlock() error {
	if c.lock == nil {
		return nil
	}
	return c.lock.AcquireWrite(context.Background())
}

func (c *collection[K, V]) unlock() {
	if c.lock != nil {
		c.lock.Release()
	}
}

// Name returns the name of the collection.
func (c *collection[K, V]) Name() string {
	return c.name
}

// Len returns the number of elements. If the lock cannot be acquired, Len
// traces the error and returns 0.
func (c *collection[K, V]) Len() int {
	if err := c.rlock(); err != nil {
		T().Errorf("isam: %s: %v", c.name, err)
		return 0
	}
	defer c.unlock()
	return c.tree.Len()
}

// Stats returns gauges and counters of the underlying tree. If the lock
// cannot be acquired, Stats traces the error and returns zero statistics.
func (c *collection[K, V]) Stats() btree.Stats {
	if err := c.rlock(); err != nil {
		T().Errorf("isam: %s: %v", c.name, err)
		return btree.Stats{}
	}
	defer c.unlock()
	return c.tree.Stats()
}

// Check validates the structure of the underlying tree.
func (c *collection[K, V]) Check() error {
	if err := c.rlock(); err != nil {
		return err
	}
	defer c.unlock()
	return c.tree.Check()
}

// Clear removes all elements.
func (c *collection[K, V]) Clear() error {
	if err := c.wlock(); err != nil {
		return err
	}
	defer c.unlock()
	c.tree.Clear()
	return nil
}

// WriteDot writes the structure of the underlying tree in Graphviz DOT
// format.
func (c *collection[K, V]) WriteDot(w io.Writer) error {
	if err := c.rlock(); err != nil {
		return err
	}
	defer c.unlock()
	return c.tree.WriteDot(w)
}

// Walk visits the nodes of the underlying tree in pre-order.
func (c *collection[K, V]) Walk(fn func(btree.NodeInfo[K]) bool) error {
	if err := c.rlock(); err != nil {
		return err
	}
	defer c.unlock()
	return c.tree.Walk(fn)
}

// Close stops event publishing and closes all subscriptions. The collection
// stays usable.
func (c *collection[K, V]) Close() {
	c.closeOnce.Do(func() {
		if c.cast != nil {
			c.tree.SetObserver(nil)
			c.cast.Close()
		}
	})
}

// clone deep-copies the tree into a new collection configured by opts.
func (c *collection[K, V]) clone(opts []Option) (*collection[K, V], error) {
	if err := c.rlock(); err != nil {
		return nil, err
	}
	tree := c.tree.Clone()
	c.unlock()
	o := collectOptions(opts)
	cp := &collection[K, V]{name: o.name, lock: o.lock, tree: tree}
	tree.SetObserver(nil)
	if o.events {
		cp.cast = caster.New(nil)
		tree.SetObserver(cp.publish)
	}
	return cp, nil
}

// ascend iterates under a read lock, stopping at the first false.
func (c *collection[K, V]) ascend(from int, fn func(rank int, key K, val V) bool) error {
	if err := c.rlock(); err != nil {
		return err
	}
	defer c.unlock()
	return c.tree.Ascend(from, fn)
}
