package btree

// arena owns all nodes of a tree. Slots are recycled through a free list;
// every reuse bumps the slot's generation, so references to a released node
// never resolve again.
type arena[K, V any] struct {
	nodes []*node[K, V] // slot s lives at nodes[s-1]
	free  []uint32
	live  int
}

func (a *arena[K, V]) alloc(leaf bool, depth int) ref {
	var slot uint32
	if k := len(a.free); k > 0 {
		slot = a.free[k-1]
		a.free = a.free[:k-1]
	} else {
		a.nodes = append(a.nodes, &node[K, V]{})
		slot = uint32(len(a.nodes))
	}
	nd := a.nodes[slot-1]
	gen := nd.gen + 1
	*nd = node[K, V]{gen: gen, live: true, leaf: leaf, depth: depth}
	a.live++
	return ref{slot: slot, gen: gen}
}

// release drops a node. The node's contents are cleared so that keys and
// values may be garbage collected.
func (a *arena[K, V]) release(r ref) {
	nd, ok := a.get(r)
	assert(ok, "release of a dead node reference")
	*nd = node[K, V]{gen: nd.gen}
	a.free = append(a.free, r.slot)
	a.live--
}

func (a *arena[K, V]) get(r ref) (*node[K, V], bool) {
	if r.slot == 0 || int(r.slot) > len(a.nodes) {
		return nil, false
	}
	nd := a.nodes[r.slot-1]
	if !nd.live || nd.gen != r.gen {
		return nil, false
	}
	return nd, true
}

// clone returns a deep copy. References stay valid because slots and
// generations are copied unchanged.
func (a *arena[K, V]) clone() arena[K, V] {
	c := arena[K, V]{
		nodes: make([]*node[K, V], len(a.nodes)),
		free:  append([]uint32(nil), a.free...),
		live:  a.live,
	}
	for i, nd := range a.nodes {
		cp := *nd
		c.nodes[i] = &cp
	}
	return c
}
