package btree

import "fmt"

// ref addresses a node in the arena. Slots are numbered from 1; the zero ref
// means "no node".
type ref struct {
	slot uint32
	gen  uint32
}

var none ref

func (r ref) isNone() bool { return r.slot == 0 }

func (r ref) String() string {
	if r.isNone() {
		return "-"
	}
	return fmt.Sprintf("#%d.%d", r.slot, r.gen)
}

// node is either a data node (leaf) holding keys and values, or an index node
// holding child references. Both kinds share one layout so that insert and
// delete maintenance can run on either level.
type node[K, V any] struct {
	gen  uint32
	live bool
	leaf bool
	// depth is 0 for data nodes and child depth+1 for index nodes.
	depth int
	// n is the usage; valid slots are [0,n).
	n int
	// cum is the number of elements reachable beneath this node. For data
	// nodes it equals n.
	cum    int
	keys   [Order]K
	vals   [Order]V
	kids   [Order]ref
	parent ref
	infra  ref
	ultra  ref
}

// entry is the unit moved between slots: a key/value pair on data nodes, a
// child reference on index nodes.
type entry[K, V any] struct {
	key K
	val V
	kid ref
}

func (nd *node[K, V]) entryAt(i int) entry[K, V] {
	return entry[K, V]{key: nd.keys[i], val: nd.vals[i], kid: nd.kids[i]}
}

func (nd *node[K, V]) setEntry(i int, e entry[K, V]) {
	nd.keys[i] = e.key
	nd.vals[i] = e.val
	nd.kids[i] = e.kid
}

// insertEntry shifts slots [i,n) up by one and writes e into slot i.
func (nd *node[K, V]) insertEntry(i int, e entry[K, V]) {
	assert(nd.n < Order, "insertEntry called on a full node")
	assert(i >= 0 && i <= nd.n, "insertEntry slot out of range")
	copy(nd.keys[i+1:nd.n+1], nd.keys[i:nd.n])
	copy(nd.vals[i+1:nd.n+1], nd.vals[i:nd.n])
	copy(nd.kids[i+1:nd.n+1], nd.kids[i:nd.n])
	nd.setEntry(i, e)
	nd.n++
}

// removeEntry removes slot i, shifting slots (i,n) down by one. The vacated
// top slot is cleared.
func (nd *node[K, V]) removeEntry(i int) entry[K, V] {
	assert(i >= 0 && i < nd.n, "removeEntry slot out of range")
	e := nd.entryAt(i)
	copy(nd.keys[i:nd.n-1], nd.keys[i+1:nd.n])
	copy(nd.vals[i:nd.n-1], nd.vals[i+1:nd.n])
	copy(nd.kids[i:nd.n-1], nd.kids[i+1:nd.n])
	nd.n--
	nd.setEntry(nd.n, entry[K, V]{})
	return e
}

// slotOfKid returns the slot holding child c, or -1.
func (nd *node[K, V]) slotOfKid(c ref) int {
	for i := 0; i < nd.n; i++ {
		if nd.kids[i] == c {
			return i
		}
	}
	return -1
}
