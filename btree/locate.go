package btree

import "fmt"

// locatePosition translates an absolute rank into a data node and slot by
// descending from the root and subtracting the children's cumulative counts.
// With onePastEnd, rank may equal the element count, resolving to the slot
// after the last element of the rightmost data node.
func (t *Tree[K, V]) locatePosition(rank int, onePastEnd bool) (ref, int, error) {
	if t.root.isNone() {
		return none, 0, fmt.Errorf("%w: rank %d in empty tree", ErrOutOfRange, rank)
	}
	r := t.root
	nd, err := t.node(r)
	if err != nil {
		return none, 0, err
	}
	limit := nd.cum
	if onePastEnd {
		limit++
	}
	if rank < 0 || rank >= limit {
		return none, 0, fmt.Errorf("%w: rank %d, count %d", ErrOutOfRange, rank, nd.cum)
	}
	for !nd.leaf {
		if nd.n == 0 {
			return none, 0, t.corrupt("empty index node %v", r)
		}
		for i := 0; i < nd.n; i++ {
			child, err := t.node(nd.kids[i])
			if err != nil {
				return none, 0, err
			}
			if rank < child.cum || i == nd.n-1 {
				r, nd = nd.kids[i], child
				break
			}
			rank -= child.cum
		}
	}
	if rank > nd.n || (rank == nd.n && !onePastEnd) {
		return none, 0, t.corrupt("rank %d exceeds data node %v holding %d", rank, r, nd.n)
	}
	return r, rank, nil
}

// rankOf is the reverse of locatePosition: the absolute rank of slot in
// node r, summing the cumulative counts of all preceding siblings up the
// parent chain.
func (t *Tree[K, V]) rankOf(r ref, slot int) (int, error) {
	rank := slot
	for steps := 0; ; steps++ {
		if steps > maxDepth {
			return 0, t.corrupt("parent chain of %v does not terminate", r)
		}
		nd, err := t.node(r)
		if err != nil {
			return 0, err
		}
		if nd.parent.isNone() {
			return rank, nil
		}
		parent, err := t.node(nd.parent)
		if err != nil {
			return 0, err
		}
		i := parent.slotOfKid(r)
		if i < 0 {
			return 0, t.corrupt("node %v is missing from its parent %v", r, nd.parent)
		}
		for j := 0; j < i; j++ {
			sib, err := t.node(parent.kids[j])
			if err != nil {
				return 0, err
			}
			rank += sib.cum
		}
		r = nd.parent
	}
}

// lowest returns the representative of a subtree: the key of its leftmost
// element, found by following the leftmost descendant chain.
func (t *Tree[K, V]) lowest(r ref) (K, error) {
	var zero K
	for steps := 0; steps <= maxDepth; steps++ {
		nd, err := t.node(r)
		if err != nil {
			return zero, err
		}
		if nd.n == 0 {
			return zero, t.corrupt("empty node %v below an index node", r)
		}
		if nd.leaf {
			return nd.keys[0], nil
		}
		r = nd.kids[0]
	}
	return zero, t.corrupt("leftmost chain of %v does not reach a data node", r)
}

// locateKey descends to the data node a key search resolves to, using
// representative forwarding at index nodes and a binary chop within the data
// node. found reports whether an element equal to key exists at the position
// the bias asks for; for InsertionPoint it reports whether the slot just
// before the returned one holds an equal key.
//
// On an empty tree locateKey returns the none reference.
func (t *Tree[K, V]) locateKey(key K, bias Bias) (r ref, slot int, found bool, err error) {
	if t.root.isNone() {
		return none, 0, false, nil
	}
	cmp := t.cfg.Compare
	r = t.root
	nd, err := t.node(r)
	if err != nil {
		return none, 0, false, err
	}
	for !nd.leaf {
		// First: last child whose representative is < key.
		// Last, InsertionPoint: last child whose representative is <= key.
		// Child 0 is the fallback and is never compared.
		lo, hi := 1, nd.n
		for lo < hi {
			mid := int(uint(lo+hi) >> 1)
			rep, err := t.lowest(nd.kids[mid])
			if err != nil {
				return none, 0, false, err
			}
			c := cmp(rep, key)
			if c < 0 || (c == 0 && bias != First) {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		r = nd.kids[lo-1]
		if nd, err = t.node(r); err != nil {
			return none, 0, false, err
		}
	}
	if bias == First {
		i := lowerBound(nd, key, cmp)
		if i == nd.n && !nd.ultra.isNone() {
			// every element after this node is >= key
			r = nd.ultra
			if nd, err = t.node(r); err != nil {
				return none, 0, false, err
			}
			i = 0
		}
		return r, i, i < nd.n && cmp(nd.keys[i], key) == 0, nil
	}
	u := upperBound(nd, key, cmp)
	hit := u > 0 && cmp(nd.keys[u-1], key) == 0
	if bias == InsertionPoint {
		return r, u, hit, nil
	}
	if u == 0 {
		return r, 0, false, nil
	}
	return r, u - 1, hit, nil
}

// lowerBound returns the first slot whose key is >= key.
func lowerBound[K, V any](nd *node[K, V], key K, cmp Compare[K]) int {
	lo, hi := 0, nd.n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(nd.keys[mid], key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// upperBound returns the first slot whose key is > key.
func upperBound[K, V any](nd *node[K, V], key K, cmp Compare[K]) int {
	lo, hi := 0, nd.n
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(nd.keys[mid], key) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// locateAbsolute performs a key search and returns the result as an
// absolute rank.
func (t *Tree[K, V]) locateAbsolute(key K, bias Bias) (int, bool, error) {
	r, slot, found, err := t.locateKey(key, bias)
	if err != nil {
		return 0, false, err
	}
	if r.isNone() {
		return 0, false, nil
	}
	rank, err := t.rankOf(r, slot)
	if err != nil {
		return 0, false, err
	}
	return rank, found, nil
}
