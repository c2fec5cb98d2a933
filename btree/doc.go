/*
Package btree provides the in-memory order-statistics tree behind every
collection of package isam.

The tree is a B+ tree of fixed fanout (Order) which supports two addressing
modes at the same time: lookup by absolute rank, as for a dynamic array, and
lookup by key, as for a sorted set or map. Keys may repeat for trees with
policy Multi; a search bias (First, Last, InsertionPoint) selects which element
of a run of equal keys a search resolves to.

Nodes live in an arena owned by the tree and are addressed by generational
references. Parent and sibling links (infra = previous node at the same depth,
ultra = next node at the same depth) are plain reference values. A reference
which does not resolve to a live node is reported as ErrIntegrity.

Structure:
  - data nodes hold up to Order elements (key plus optional value),
  - index nodes hold up to Order children and cache the number of elements
    reachable beneath them (cumulative count),
  - inserts into a full node shift an element to the infra or ultra sibling,
    spawning a new ultra sibling (and eventually a new root) if needed,
  - removals leaving fewer than Low elements migrate the remainder into the
    siblings if both can absorb it; emptied nodes are unlinked and dropped.

Integrity violations latch the tree: every later operation returns the first
detected error. With Config.Strict set to StrictOn (the default when built
with tag `isam_strict`), violations panic instead.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package btree

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'isam'
func tracer() tracing.Trace {
	return tracing.Select("isam")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
