package btree

import (
	"cmp"
	"fmt"
)

const (
	// Order is the maximum number of elements of a data node and the maximum
	// number of children of an index node.
	Order = 8
	// Low is the occupancy below which a non-root node tries to dissolve into
	// its siblings.
	Low = 5
)

// Policy selects how a tree addresses and orders its elements.
type Policy uint8

const (
	// Positional trees are plain sequences, addressed by rank only.
	Positional Policy = iota
	// Unique trees keep keys ascending and reject duplicate keys.
	Unique
	// Multi trees keep keys ascending and allow runs of equal keys. New
	// duplicates are placed after existing ones.
	Multi
)

func (p Policy) String() string {
	switch p {
	case Positional:
		return "positional"
	case Unique:
		return "unique"
	case Multi:
		return "multi"
	}
	return fmt.Sprintf("policy(%d)", uint8(p))
}

func (p Policy) keyed() bool {
	return p == Unique || p == Multi
}

// Bias selects the slot a key search resolves to when keys may repeat.
type Bias uint8

const (
	// First resolves to the first element equal to the key.
	First Bias = iota
	// Last resolves to the last element equal to the key.
	Last
	// InsertionPoint resolves to the position after the last element equal
	// to the key, or to the first greater element. It never fails.
	InsertionPoint
)

func (b Bias) String() string {
	switch b {
	case First:
		return "first"
	case Last:
		return "last"
	case InsertionPoint:
		return "insertion-point"
	}
	return fmt.Sprintf("bias(%d)", uint8(b))
}

// Compare is a three-way comparison of keys: negative if a < b, zero if
// a == b, positive if a > b.
type Compare[K any] func(a, b K) int

// Natural returns the natural ordering of an ordered key type.
func Natural[K cmp.Ordered]() Compare[K] {
	return cmp.Compare[K]
}

// Strictness controls how integrity violations are reported.
type Strictness uint8

const (
	// StrictDefault selects StrictOn for builds with tag `isam_strict` and
	// StrictOff otherwise.
	StrictDefault Strictness = iota
	// StrictOff returns integrity violations as errors wrapping ErrIntegrity.
	StrictOff
	// StrictOn panics on integrity violations.
	StrictOn
)

// Config configures a tree.
type Config[K any] struct {
	// Policy selects positional, unique-key or multi-key addressing.
	Policy Policy
	// Compare orders keys. Required for keyed policies, ignored otherwise.
	Compare Compare[K]
	// Strict selects error or panic reporting of integrity violations.
	Strict Strictness
	// OnIntegrity, if set, is called once for every detected integrity
	// violation, before it is returned (or raised).
	OnIntegrity func(error)
	// Observer, if set, receives structural events (spawn, dissolve, grow,
	// shrink). It is called synchronously during mutation and must not call
	// back into the tree.
	Observer func(Event)
}

func (cfg Config[K]) normalized() Config[K] {
	if cfg.Strict == StrictDefault {
		if strictByDefault {
			cfg.Strict = StrictOn
		} else {
			cfg.Strict = StrictOff
		}
	}
	return cfg
}

func (cfg Config[K]) validate() error {
	cfg = cfg.normalized()
	if cfg.Policy > Multi {
		return fmt.Errorf("%w: unknown policy %d", ErrInvalidConfig, cfg.Policy)
	}
	if cfg.Strict > StrictOn {
		return fmt.Errorf("%w: unknown strictness %d", ErrInvalidConfig, cfg.Strict)
	}
	if cfg.Policy.keyed() && cfg.Compare == nil {
		return fmt.Errorf("%w: %s tree requires a comparator", ErrInvalidConfig, cfg.Policy)
	}
	return nil
}
