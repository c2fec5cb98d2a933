package isam

import (
	"strings"

	"github.com/npillmayer/isam/btree"
	"golang.org/x/text/cases"
)

// StringMap is a Map with string keys. A case-folding string map treats keys
// which differ only in case as equal; it keeps the spelling of the key which
// was inserted first.
type StringMap[V any] struct {
	*Map[string, V]
	folding bool
}

// NewStringMap creates an empty string map. With foldCase, keys are compared
// case-insensitively, using Unicode case folding.
func NewStringMap[V any](foldCase bool, opts ...Option) (*StringMap[V], error) {
	compare := btree.Natural[string]()
	if foldCase {
		compare = CompareFolded
	}
	m, err := NewMapFunc[string, V](compare, opts...)
	if err != nil {
		return nil, err
	}
	return &StringMap[V]{Map: m, folding: foldCase}, nil
}

// FoldsCase reports whether keys are compared case-insensitively.
func (m *StringMap[V]) FoldsCase() bool {
	return m.folding
}

// Key returns the stored spelling of key.
func (m *StringMap[V]) Key(key string) (string, error) {
	if err := m.rlock(); err != nil {
		return "", err
	}
	defer m.unlock()
	rank, err := m.tree.FirstOf(key)
	if err != nil {
		return "", err
	}
	k, _, err := m.tree.At(rank)
	return k, err
}

// CompareFolded orders strings by their Unicode case folding, breaking no
// ties: "Straße" and "STRASSE" compare equal.
func CompareFolded(a, b string) int {
	// a Caser is stateful and must not be shared between concurrent readers
	return strings.Compare(cases.Fold().String(a), cases.Fold().String(b))
}
