package btree

import (
	"cmp"
	"fmt"
)

// Tree is an in-memory order-statistics B+ tree.
//
// K is the key type; for positional trees it is the element type. V is the
// value type paired with keys; sets and sequences use struct{}.
//
// A Tree is not safe for concurrent use. Package isam wraps trees with an
// optional read/write lock.
type Tree[K, V any] struct {
	cfg    Config[K]
	nodes  arena[K, V]
	root   ref
	broken error // first integrity violation, latched
	stats  Stats
}

// New creates an empty tree with validated configuration.
func New[K, V any](cfg Config[K]) (*Tree[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Tree[K, V]{cfg: cfg.normalized()}, nil
}

// NewOrdered creates an empty tree for an ordered key type, using the key
// type's natural ordering.
func NewOrdered[K cmp.Ordered, V any](policy Policy) (*Tree[K, V], error) {
	return New[K, V](Config[K]{Policy: policy, Compare: Natural[K]()})
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[K, V]) Config() Config[K] {
	return t.cfg
}

// SetObserver replaces the receiver of structural events. A nil observer
// switches events off.
func (t *Tree[K, V]) SetObserver(fn func(Event)) {
	t.cfg.Observer = fn
}

// corrupt records and reports an integrity violation.
func (t *Tree[K, V]) corrupt(format string, args ...any) error {
	err := fmt.Errorf("%w: "+format, append([]any{ErrIntegrity}, args...)...)
	tracer().Errorf("isam: %v", err)
	if t.broken == nil {
		t.broken = err
	}
	if t.cfg.OnIntegrity != nil {
		t.cfg.OnIntegrity(err)
	}
	if t.cfg.Strict == StrictOn {
		panic(err)
	}
	return err
}

// Err returns the integrity violation which broke the tree, if any.
func (t *Tree[K, V]) Err() error {
	return t.broken
}

func (t *Tree[K, V]) usable() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	return t.broken
}

func (t *Tree[K, V]) requireKeyed(op string) error {
	if !t.cfg.Policy.keyed() {
		return fmt.Errorf("%w: %s on %s tree", ErrPolicy, op, t.cfg.Policy)
	}
	return nil
}

// IsEmpty reports whether the tree has no elements.
func (t *Tree[K, V]) IsEmpty() bool {
	return t == nil || t.root.isNone()
}

// Len returns the number of elements.
func (t *Tree[K, V]) Len() int {
	if t == nil || t.root.isNone() {
		return 0
	}
	root, ok := t.nodes.get(t.root)
	if !ok {
		return 0
	}
	return root.cum
}

// Height returns the tree height: 0 for an empty tree, 1 for a data root.
func (t *Tree[K, V]) Height() int {
	if t == nil || t.root.isNone() {
		return 0
	}
	root, ok := t.nodes.get(t.root)
	if !ok {
		return 0
	}
	return root.depth + 1
}

// Stats returns gauges and counters of the tree.
func (t *Tree[K, V]) Stats() Stats {
	s := t.stats
	s.Len = t.Len()
	s.Height = t.Height()
	s.Nodes = t.nodes.live
	return s
}

// At returns the element at rank.
func (t *Tree[K, V]) At(rank int) (K, V, error) {
	var k K
	var v V
	if err := t.usable(); err != nil {
		return k, v, err
	}
	r, slot, err := t.locatePosition(rank, false)
	if err != nil {
		return k, v, err
	}
	nd, err := t.node(r)
	if err != nil {
		return k, v, err
	}
	return nd.keys[slot], nd.vals[slot], nil
}

// InsertAt inserts an element at rank, shifting later elements up by one.
// rank may equal Len() to append. Positional trees only.
func (t *Tree[K, V]) InsertAt(rank int, key K, val V) error {
	if err := t.usable(); err != nil {
		return err
	}
	if t.cfg.Policy != Positional {
		return fmt.Errorf("%w: InsertAt on %s tree", ErrPolicy, t.cfg.Policy)
	}
	e := entry[K, V]{key: key, val: val}
	if t.root.isNone() {
		if rank != 0 {
			return fmt.Errorf("%w: rank %d, count 0", ErrOutOfRange, rank)
		}
		t.plant(e)
		return nil
	}
	r, slot, err := t.locatePosition(rank, true)
	if err != nil {
		return err
	}
	_, _, err = t.accept(r, slot, e)
	return err
}

// SetAt replaces the element at rank. Positional trees only; key-ordered
// trees may update values with SetValueAt.
func (t *Tree[K, V]) SetAt(rank int, key K, val V) error {
	if err := t.usable(); err != nil {
		return err
	}
	if t.cfg.Policy != Positional {
		return fmt.Errorf("%w: SetAt on %s tree", ErrPolicy, t.cfg.Policy)
	}
	r, slot, err := t.locatePosition(rank, false)
	if err != nil {
		return err
	}
	nd, err := t.node(r)
	if err != nil {
		return err
	}
	nd.keys[slot], nd.vals[slot] = key, val
	return nil
}

// SetValueAt replaces the value paired with the element at rank.
func (t *Tree[K, V]) SetValueAt(rank int, val V) error {
	if err := t.usable(); err != nil {
		return err
	}
	r, slot, err := t.locatePosition(rank, false)
	if err != nil {
		return err
	}
	nd, err := t.node(r)
	if err != nil {
		return err
	}
	nd.vals[slot] = val
	return nil
}

// RemoveAt removes and returns the element at rank.
func (t *Tree[K, V]) RemoveAt(rank int) (K, V, error) {
	var k K
	var v V
	if err := t.usable(); err != nil {
		return k, v, err
	}
	r, slot, err := t.locatePosition(rank, false)
	if err != nil {
		return k, v, err
	}
	nd, err := t.node(r)
	if err != nil {
		return k, v, err
	}
	k, v = nd.keys[slot], nd.vals[slot]
	return k, v, t.expel(r, slot)
}

// Insert inserts a key/value pair in key order and returns its rank.
//
// Unique trees reject an existing key with ErrDuplicate (the returned rank
// is the existing element's). Multi trees place the new element after all
// elements with an equal key.
func (t *Tree[K, V]) Insert(key K, val V) (int, error) {
	if err := t.usable(); err != nil {
		return 0, err
	}
	if err := t.requireKeyed("Insert"); err != nil {
		return 0, err
	}
	e := entry[K, V]{key: key, val: val}
	if t.root.isNone() {
		t.plant(e)
		return 0, nil
	}
	r, slot, hit, err := t.locateKey(key, InsertionPoint)
	if err != nil {
		return 0, err
	}
	if hit && t.cfg.Policy == Unique {
		rank, err := t.rankOf(r, slot-1)
		if err != nil {
			return 0, err
		}
		return rank, fmt.Errorf("%w: %v", ErrDuplicate, key)
	}
	r, slot, err = t.accept(r, slot, e)
	if err != nil {
		return 0, err
	}
	return t.rankOf(r, slot)
}

// Upsert inserts a key/value pair into a unique tree, or replaces the value
// of an existing equal key. It returns the element's rank and whether a new
// element was inserted.
func (t *Tree[K, V]) Upsert(key K, val V) (rank int, inserted bool, err error) {
	if err := t.usable(); err != nil {
		return 0, false, err
	}
	if t.cfg.Policy != Unique {
		return 0, false, fmt.Errorf("%w: Upsert on %s tree", ErrPolicy, t.cfg.Policy)
	}
	if t.root.isNone() {
		t.plant(entry[K, V]{key: key, val: val})
		return 0, true, nil
	}
	r, slot, hit, err := t.locateKey(key, InsertionPoint)
	if err != nil {
		return 0, false, err
	}
	if hit {
		nd, err := t.node(r)
		if err != nil {
			return 0, false, err
		}
		nd.vals[slot-1] = val
		rank, err = t.rankOf(r, slot-1)
		return rank, false, err
	}
	r, slot, err = t.accept(r, slot, entry[K, V]{key: key, val: val})
	if err != nil {
		return 0, false, err
	}
	rank, err = t.rankOf(r, slot)
	return rank, true, err
}

// Remove removes the first element equal to key and returns its value.
func (t *Tree[K, V]) Remove(key K) (V, error) {
	var v V
	if err := t.usable(); err != nil {
		return v, err
	}
	if err := t.requireKeyed("Remove"); err != nil {
		return v, err
	}
	r, slot, found, err := t.locateKey(key, First)
	if err != nil {
		return v, err
	}
	if !found {
		return v, fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	nd, err := t.node(r)
	if err != nil {
		return v, err
	}
	v = nd.vals[slot]
	return v, t.expel(r, slot)
}

// Find searches for key with the given bias and returns the rank and value
// of the element it resolves to. For InsertionPoint the rank is where an
// insert of key would go, and the value is the zero value.
func (t *Tree[K, V]) Find(key K, bias Bias) (int, V, error) {
	var v V
	if err := t.usable(); err != nil {
		return 0, v, err
	}
	if err := t.requireKeyed("Find"); err != nil {
		return 0, v, err
	}
	r, slot, found, err := t.locateKey(key, bias)
	if err != nil {
		return 0, v, err
	}
	if bias != InsertionPoint && !found {
		return 0, v, fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	if r.isNone() {
		return 0, v, nil
	}
	rank, err := t.rankOf(r, slot)
	if err != nil || bias == InsertionPoint {
		return rank, v, err
	}
	nd, err := t.node(r)
	if err != nil {
		return 0, v, err
	}
	return rank, nd.vals[slot], nil
}

// Exists reports whether an element equal to key exists.
func (t *Tree[K, V]) Exists(key K) (bool, error) {
	if err := t.usable(); err != nil {
		return false, err
	}
	if err := t.requireKeyed("Exists"); err != nil {
		return false, err
	}
	_, _, found, err := t.locateKey(key, First)
	return found, err
}

// FirstOf returns the rank of the first element equal to key.
func (t *Tree[K, V]) FirstOf(key K) (int, error) {
	return t.absolute(key, First)
}

// LastOf returns the rank of the last element equal to key.
func (t *Tree[K, V]) LastOf(key K) (int, error) {
	return t.absolute(key, Last)
}

// InsertionRank returns the rank a new element with key would be inserted
// at: after all equal elements and before all greater ones.
func (t *Tree[K, V]) InsertionRank(key K) (int, error) {
	return t.absolute(key, InsertionPoint)
}

func (t *Tree[K, V]) absolute(key K, bias Bias) (int, error) {
	if err := t.usable(); err != nil {
		return 0, err
	}
	if err := t.requireKeyed("rank lookup"); err != nil {
		return 0, err
	}
	rank, found, err := t.locateAbsolute(key, bias)
	if err != nil {
		return 0, err
	}
	if bias != InsertionPoint && !found {
		return 0, fmt.Errorf("%w: %v", ErrNotFound, key)
	}
	return rank, nil
}

// Clear removes all elements. Statistics counters are kept.
func (t *Tree[K, V]) Clear() {
	if t == nil {
		return
	}
	t.nodes = arena[K, V]{}
	t.root = none
	t.broken = nil
}

// Clone returns a deep copy of the tree. The copy shares no nodes with the
// original; keys and values are copied by assignment.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	if t == nil {
		return nil
	}
	return &Tree[K, V]{
		cfg:    t.cfg,
		nodes:  t.nodes.clone(),
		root:   t.root,
		broken: t.broken,
		stats:  t.stats,
	}
}
