package btree

import "fmt"

// EventKind classifies structural changes of a tree.
type EventKind uint8

const (
	// EventSpawn: a node spawned a new ultra sibling.
	EventSpawn EventKind = iota + 1
	// EventDissolve: an emptied node was unlinked and dropped.
	EventDissolve
	// EventGrow: a new root was placed above the old one.
	EventGrow
	// EventShrink: a root with a single child was replaced by that child.
	EventShrink
)

func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventDissolve:
		return "dissolve"
	case EventGrow:
		return "grow"
	case EventShrink:
		return "shrink"
	}
	return fmt.Sprintf("event(%d)", uint8(k))
}

// Event describes a structural change.
type Event struct {
	Kind  EventKind
	Depth int // depth of the node concerned; 0 is the data level
	Len   int // number of elements in the tree when the event fired
}

func (e Event) String() string {
	return fmt.Sprintf("%s@%d", e.Kind, e.Depth)
}

// Stats holds gauges and counters of a tree.
type Stats struct {
	Len        int    // number of elements
	Height     int    // 0 for an empty tree, 1 for a data root
	Nodes      int    // live nodes in the arena
	Spawns     uint64 // nodes spawned as ultra siblings
	Dissolves  uint64 // nodes unlinked after being emptied
	Grows      uint64 // roots added on top
	Shrinks    uint64 // roots collapsed into their single child
	Migrations uint64 // entries moved to a sibling by insert or delete maintenance
}

func (t *Tree[K, V]) notify(kind EventKind, depth int) {
	switch kind {
	case EventSpawn:
		t.stats.Spawns++
	case EventDissolve:
		t.stats.Dissolves++
	case EventGrow:
		t.stats.Grows++
	case EventShrink:
		t.stats.Shrinks++
	}
	if t.cfg.Observer != nil {
		t.cfg.Observer(Event{Kind: kind, Depth: depth, Len: t.Len()})
	}
}
