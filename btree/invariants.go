package btree

import "fmt"

// Check validates the structural invariants of the tree:
//   - parent back-references, uniform data-node depth and depth markers,
//   - occupancy: 1..Order for every node, at least 2 children for an index root,
//   - cumulative counts equal the sum over the children,
//   - infra/ultra chains link the nodes of each depth in order,
//   - ascending keys along the data level (strictly for Unique trees),
//   - no node of the arena is unreachable.
//
// Violations are reported like any other integrity violation: they latch the
// tree and panic in strict mode.
func (t *Tree[K, V]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.broken != nil {
		return t.broken
	}
	if t.root.isNone() {
		if t.nodes.live != 0 {
			return t.corrupt("empty tree holds %d live nodes", t.nodes.live)
		}
		return nil
	}
	root, err := t.node(t.root)
	if err != nil {
		return err
	}
	if !root.infra.isNone() || !root.ultra.isNone() {
		return t.corrupt("root %v has siblings", t.root)
	}
	levels := make([][]ref, root.depth+1)
	if _, err := t.checkNode(t.root, none, root.depth, levels); err != nil {
		return err
	}
	reachable := 0
	for depth, level := range levels {
		reachable += len(level)
		if err := t.checkChain(depth, level); err != nil {
			return err
		}
	}
	if reachable != t.nodes.live {
		return t.corrupt("%d live nodes, %d reachable", t.nodes.live, reachable)
	}
	if t.cfg.Policy.keyed() {
		return t.checkKeyOrder(levels[0])
	}
	return nil
}

func (t *Tree[K, V]) checkNode(r, parent ref, depth int, levels [][]ref) (int, error) {
	nd, err := t.node(r)
	if err != nil {
		return 0, err
	}
	if nd.parent != parent {
		return 0, t.corrupt("node %v has parent %v, expected %v", r, nd.parent, parent)
	}
	if nd.depth != depth || nd.leaf != (depth == 0) {
		return 0, t.corrupt("node %v at depth %d is marked depth=%d leaf=%v", r, depth, nd.depth, nd.leaf)
	}
	if nd.n < 1 || nd.n > Order {
		return 0, t.corrupt("node %v holds %d entries", r, nd.n)
	}
	if parent.isNone() && !nd.leaf && nd.n < 2 {
		return 0, t.corrupt("index root %v has a single child", r)
	}
	levels[depth] = append(levels[depth], r)
	if nd.leaf {
		if nd.cum != nd.n {
			return 0, t.corrupt("data node %v: cumulative count %d, usage %d", r, nd.cum, nd.n)
		}
		return nd.n, nil
	}
	sum := 0
	for i := 0; i < nd.n; i++ {
		c, err := t.checkNode(nd.kids[i], r, depth-1, levels)
		if err != nil {
			return 0, err
		}
		sum += c
	}
	if sum != nd.cum {
		return 0, t.corrupt("index node %v: cumulative count %d, children hold %d", r, nd.cum, sum)
	}
	return sum, nil
}

// checkChain verifies that the nodes of one depth, in order, are linked
// exactly by their infra/ultra references.
func (t *Tree[K, V]) checkChain(depth int, level []ref) error {
	for i, r := range level {
		nd, err := t.node(r)
		if err != nil {
			return err
		}
		prev, next := none, none
		if i > 0 {
			prev = level[i-1]
		}
		if i+1 < len(level) {
			next = level[i+1]
		}
		if nd.infra != prev || nd.ultra != next {
			return t.corrupt("depth %d node %v: infra=%v ultra=%v, expected %v and %v",
				depth, r, nd.infra, nd.ultra, prev, next)
		}
	}
	return nil
}

func (t *Tree[K, V]) checkKeyOrder(leaves []ref) error {
	var prev K
	first := true
	for _, r := range leaves {
		nd, err := t.node(r)
		if err != nil {
			return err
		}
		for i := 0; i < nd.n; i++ {
			if !first {
				c := t.cfg.Compare(prev, nd.keys[i])
				if c > 0 || (c == 0 && t.cfg.Policy == Unique) {
					return t.corrupt("keys out of order at data node %v slot %d", r, i)
				}
			}
			prev, first = nd.keys[i], false
		}
	}
	return nil
}
