package btree

// Ascend walks elements in rank order, starting at rank from, following the
// ultra chain of data nodes.
//
// Iteration stops early if callback returns false.
func (t *Tree[K, V]) Ascend(from int, fn func(rank int, key K, val V) bool) error {
	if err := t.usable(); err != nil {
		return err
	}
	if fn == nil || t.root.isNone() || from == t.Len() {
		return nil
	}
	r, slot, err := t.locatePosition(from, false)
	if err != nil {
		return err
	}
	rank := from
	for !r.isNone() {
		nd, err := t.node(r)
		if err != nil {
			return err
		}
		for ; slot < nd.n; slot++ {
			if !fn(rank, nd.keys[slot], nd.vals[slot]) {
				return nil
			}
			rank++
		}
		r, slot = nd.ultra, 0
	}
	return nil
}

// NodeInfo describes a node for structural visitors.
type NodeInfo[K any] struct {
	ID     int  // arena slot, stable while the node lives
	Parent int  // arena slot of the parent, 0 for the root
	Leaf   bool // data node
	Depth  int  // 0 for data nodes
	Usage  int  // number of elements or children
	Count  int  // cumulative element count
	Keys   []K  // keys of a data node
}

// Walk visits all nodes in pre-order, children left to right.
//
// Walking stops early if callback returns false.
func (t *Tree[K, V]) Walk(fn func(info NodeInfo[K]) bool) error {
	if err := t.usable(); err != nil {
		return err
	}
	if fn == nil || t.root.isNone() {
		return nil
	}
	_, err := t.walkNode(t.root, fn)
	return err
}

func (t *Tree[K, V]) walkNode(r ref, fn func(info NodeInfo[K]) bool) (bool, error) {
	nd, err := t.node(r)
	if err != nil {
		return false, err
	}
	info := NodeInfo[K]{
		ID:     int(r.slot),
		Parent: int(nd.parent.slot),
		Leaf:   nd.leaf,
		Depth:  nd.depth,
		Usage:  nd.n,
		Count:  nd.cum,
	}
	if nd.leaf {
		info.Keys = append([]K(nil), nd.keys[:nd.n]...)
	}
	if !fn(info) {
		return false, nil
	}
	if nd.leaf {
		return true, nil
	}
	for i := 0; i < nd.n; i++ {
		cont, err := t.walkNode(nd.kids[i], fn)
		if err != nil || !cont {
			return cont, err
		}
	}
	return true, nil
}
