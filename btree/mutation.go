package btree

// Insert and delete maintenance. Both accept and expel work on either level:
// on data nodes an entry is a key/value pair of weight 1, on index nodes it is
// a child reference weighted by the child's cumulative count.

// maxDepth bounds parent-chain walks. A tree of fanout Order cannot reach it
// with addressable element counts, so exceeding it means a cycle.
const maxDepth = 64

// node resolves a reference, reporting a dangling one as integrity violation.
func (t *Tree[K, V]) node(r ref) (*node[K, V], error) {
	nd, ok := t.nodes.get(r)
	if !ok {
		return nil, t.corrupt("dangling node reference %v", r)
	}
	return nd, nil
}

// weight is the number of elements an entry contributes to its node.
func (t *Tree[K, V]) weight(leaf bool, e entry[K, V]) (int, error) {
	if leaf {
		return 1, nil
	}
	child, err := t.node(e.kid)
	if err != nil {
		return 0, err
	}
	return child.cum, nil
}

// propagate adds delta to the cumulative count of r and all of its ancestors.
func (t *Tree[K, V]) propagate(r ref, delta int) error {
	if delta == 0 {
		return nil
	}
	for steps := 0; !r.isNone(); steps++ {
		if steps > maxDepth {
			return t.corrupt("parent chain of %v does not terminate", r)
		}
		nd, err := t.node(r)
		if err != nil {
			return err
		}
		nd.cum += delta
		if nd.cum < 0 {
			return t.corrupt("negative cumulative count at %v", r)
		}
		r = nd.parent
	}
	return nil
}

// put writes e into slot i of node r (shifting up), adopts a child entry and
// adds the entry's weight along the ancestor chain.
func (t *Tree[K, V]) put(r ref, nd *node[K, V], i int, e entry[K, V]) error {
	w, err := t.weight(nd.leaf, e)
	if err != nil {
		return err
	}
	nd.insertEntry(i, e)
	if !nd.leaf {
		child, err := t.node(e.kid)
		if err != nil {
			return err
		}
		child.parent = r
	}
	return t.propagate(r, w)
}

// take removes slot i of node r (shifting down) and subtracts the entry's
// weight along the ancestor chain.
func (t *Tree[K, V]) take(r ref, nd *node[K, V], i int) (entry[K, V], error) {
	e := nd.entryAt(i)
	w, err := t.weight(nd.leaf, e)
	if err != nil {
		return e, err
	}
	nd.removeEntry(i)
	return e, t.propagate(r, -w)
}

// plant creates a data root holding a single element.
func (t *Tree[K, V]) plant(e entry[K, V]) ref {
	r := t.nodes.alloc(true, 0)
	nd, _ := t.nodes.get(r)
	nd.insertEntry(0, e)
	nd.cum = 1
	t.root = r
	tracer().Debugf("isam: planted root %v", r)
	return r
}

// accept inserts e at slot of node r and returns where e actually landed.
//
// Policy: room here; else room on the infra sibling (the first element moves
// there, or e itself if slot is 0); else room on an ultra sibling, spawning
// one if it is missing or full (the last element moves there, or e itself if
// slot is one past the last slot).
func (t *Tree[K, V]) accept(r ref, slot int, e entry[K, V]) (ref, int, error) {
	nd, err := t.node(r)
	if err != nil {
		return none, 0, err
	}
	if slot < 0 || slot > nd.n {
		return none, 0, t.corrupt("insert slot %d outside [0,%d] at %v", slot, nd.n, r)
	}
	if nd.n < Order {
		return r, slot, t.put(r, nd, slot, e)
	}
	if !nd.infra.isNone() {
		infra, err := t.node(nd.infra)
		if err != nil {
			return none, 0, err
		}
		if infra.n < Order {
			if slot == 0 {
				at := infra.n
				return nd.infra, at, t.put(nd.infra, infra, at, e)
			}
			first, err := t.take(r, nd, 0)
			if err != nil {
				return none, 0, err
			}
			if err := t.put(nd.infra, infra, infra.n, first); err != nil {
				return none, 0, err
			}
			t.stats.Migrations++
			slot--
			return r, slot, t.put(r, nd, slot, e)
		}
	}
	ur, err := t.roomyUltra(r)
	if err != nil {
		return none, 0, err
	}
	ultra, err := t.node(ur)
	if err != nil {
		return none, 0, err
	}
	if slot == Order {
		return ur, 0, t.put(ur, ultra, 0, e)
	}
	last, err := t.take(r, nd, nd.n-1)
	if err != nil {
		return none, 0, err
	}
	if err := t.put(ur, ultra, 0, last); err != nil {
		return none, 0, err
	}
	t.stats.Migrations++
	return r, slot, t.put(r, nd, slot, e)
}

// roomyUltra returns the ultra sibling of r if it has spare capacity, or a
// freshly spawned one.
func (t *Tree[K, V]) roomyUltra(r ref) (ref, error) {
	nd, err := t.node(r)
	if err != nil {
		return none, err
	}
	if !nd.ultra.isNone() {
		ultra, err := t.node(nd.ultra)
		if err != nil {
			return none, err
		}
		if ultra.n < Order {
			return nd.ultra, nil
		}
	}
	return t.spawn(r)
}

// spawn creates an empty ultra sibling of r, links it into the sibling chain
// and registers it with r's parent. If r is the root, a new root is placed
// above r holding r and the new sibling.
func (t *Tree[K, V]) spawn(r ref) (ref, error) {
	nd, err := t.node(r)
	if err != nil {
		return none, err
	}
	sr := t.nodes.alloc(nd.leaf, nd.depth)
	sib, _ := t.nodes.get(sr)
	sib.infra = r
	sib.ultra = nd.ultra
	if !nd.ultra.isNone() {
		next, err := t.node(nd.ultra)
		if err != nil {
			return none, err
		}
		next.infra = sr
	}
	nd.ultra = sr
	t.notify(EventSpawn, nd.depth)
	if nd.parent.isNone() {
		return sr, t.grow(r, sr)
	}
	pslot, err := t.slotOf(nd.parent, r)
	if err != nil {
		return none, err
	}
	if _, _, err := t.accept(nd.parent, pslot+1, entry[K, V]{kid: sr}); err != nil {
		return none, err
	}
	return sr, nil
}

// grow places a new root above the current root left and its new sibling
// right. This is the only way the tree's depth increases.
func (t *Tree[K, V]) grow(left, right ref) error {
	l, err := t.node(left)
	if err != nil {
		return err
	}
	rt, err := t.node(right)
	if err != nil {
		return err
	}
	rr := t.nodes.alloc(false, l.depth+1)
	root, _ := t.nodes.get(rr)
	root.kids[0], root.kids[1] = left, right
	root.n = 2
	root.cum = l.cum + rt.cum
	l.parent, rt.parent = rr, rr
	t.root = rr
	tracer().Debugf("isam: tree grows to depth %d", root.depth)
	t.notify(EventGrow, root.depth)
	return nil
}

// slotOf finds the slot of child c in index node p.
func (t *Tree[K, V]) slotOf(p, c ref) (int, error) {
	parent, err := t.node(p)
	if err != nil {
		return 0, err
	}
	i := parent.slotOfKid(c)
	if i < 0 {
		return 0, t.corrupt("node %v is missing from its parent %v", c, p)
	}
	return i, nil
}

// expel removes slot of node r. A node left with fewer than Low entries
// migrates them into its siblings if both together can absorb them; a node
// left empty is unlinked and removed from its parent.
func (t *Tree[K, V]) expel(r ref, slot int) error {
	nd, err := t.node(r)
	if err != nil {
		return err
	}
	if slot < 0 || slot >= nd.n {
		return t.corrupt("remove slot %d outside [0,%d) at %v", slot, nd.n, r)
	}
	if _, err := t.take(r, nd, slot); err != nil {
		return err
	}
	if nd.n > 0 && nd.n < Low {
		if err := t.migrate(r, nd); err != nil {
			return err
		}
	}
	if nd.n == 0 {
		return t.discard(r, nd)
	}
	if nd.parent.isNone() && !nd.leaf && nd.n == 1 {
		return t.shrink()
	}
	return nil
}

// migrate moves all entries of an underfull node into its siblings: as many
// as fit to the top of infra, the rest to the bottom of ultra. Nothing moves
// unless both siblings together have enough spare capacity.
func (t *Tree[K, V]) migrate(r ref, nd *node[K, V]) error {
	var infra, ultra *node[K, V]
	spareInfra, spareUltra := 0, 0
	var err error
	if !nd.infra.isNone() {
		if infra, err = t.node(nd.infra); err != nil {
			return err
		}
		spareInfra = Order - infra.n
	}
	if !nd.ultra.isNone() {
		if ultra, err = t.node(nd.ultra); err != nil {
			return err
		}
		spareUltra = Order - ultra.n
	}
	if spareInfra+spareUltra < nd.n {
		return nil
	}
	toInfra := min(spareInfra, nd.n)
	for range toInfra {
		e, err := t.take(r, nd, 0)
		if err != nil {
			return err
		}
		if err := t.put(nd.infra, infra, infra.n, e); err != nil {
			return err
		}
		t.stats.Migrations++
	}
	for nd.n > 0 {
		e, err := t.take(r, nd, nd.n-1)
		if err != nil {
			return err
		}
		if err := t.put(nd.ultra, ultra, 0, e); err != nil {
			return err
		}
		t.stats.Migrations++
	}
	return nil
}

// discard unlinks an empty node from its sibling chain, removes it from its
// parent and drops it. An empty root leaves the tree empty.
func (t *Tree[K, V]) discard(r ref, nd *node[K, V]) error {
	if nd.cum != 0 {
		return t.corrupt("discarding node %v with cumulative count %d", r, nd.cum)
	}
	if !nd.infra.isNone() {
		infra, err := t.node(nd.infra)
		if err != nil {
			return err
		}
		infra.ultra = nd.ultra
	}
	if !nd.ultra.isNone() {
		ultra, err := t.node(nd.ultra)
		if err != nil {
			return err
		}
		ultra.infra = nd.infra
	}
	depth, parent := nd.depth, nd.parent
	if parent.isNone() {
		if t.root != r {
			return t.corrupt("parentless node %v is not the root", r)
		}
		t.nodes.release(r)
		t.root = none
		tracer().Debugf("isam: tree is empty")
		return nil
	}
	pslot, err := t.slotOf(parent, r)
	if err != nil {
		return err
	}
	if err := t.expel(parent, pslot); err != nil {
		return err
	}
	t.nodes.release(r)
	t.notify(EventDissolve, depth)
	return nil
}

// shrink replaces index roots with a single child by that child. This is the
// only way the tree's depth decreases.
func (t *Tree[K, V]) shrink() error {
	for {
		root, err := t.node(t.root)
		if err != nil {
			return err
		}
		if root.leaf || root.n != 1 {
			return nil
		}
		cr := root.kids[0]
		child, err := t.node(cr)
		if err != nil {
			return err
		}
		if !child.infra.isNone() || !child.ultra.isNone() {
			return t.corrupt("only child %v of root has siblings", cr)
		}
		child.parent = none
		t.nodes.release(t.root)
		t.root = cr
		tracer().Debugf("isam: tree shrinks to depth %d", child.depth)
		t.notify(EventShrink, child.depth)
	}
}
