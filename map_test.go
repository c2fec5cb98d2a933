package isam

import (
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMapPutAndInsert(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	m, err := NewMap[string, int]()
	if err != nil {
		t.Fatal(err)
	}
	m.Put("one", 1)
	m.Put("two", 2)
	m.Put("one", 11)
	if v, _ := m.Get("one"); v != 11 {
		t.Errorf("Put did not update, have %d", v)
	}
	if err := m.Insert("two", 22); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if v, _ := m.Get("two"); v != 2 {
		t.Errorf("rejected insert changed value to %d", v)
	}
	if _, err := m.Get("three"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("expected 2 entries, have %d", m.Len())
	}
}

func TestMapOrderAndRank(t *testing.T) {
	m, _ := NewMap[int, string]()
	for i := 20; i > 0; i-- {
		m.Insert(i*5, "x")
	}
	keys := slices.Collect(m.Keys())
	if !slices.IsSorted(keys) || len(keys) != 20 {
		t.Errorf("keys not in ascending order: %v", keys)
	}
	if r, _ := m.Rank(50); r != 9 {
		t.Errorf("Rank(50) = %d, expected 9", r)
	}
	k, _, err := m.At(19)
	if err != nil || k != 100 {
		t.Errorf("At(19) = %d, %v", k, err)
	}
	v, err := m.Delete(50)
	if err != nil || v != "x" {
		t.Errorf("Delete(50) = %q, %v", v, err)
	}
	n := 0
	for k := range m.All() {
		if k == 50 {
			t.Errorf("deleted key still present")
		}
		n++
	}
	if n != 19 {
		t.Errorf("expected 19 entries, iterated %d", n)
	}
}

func TestStringMapFoldsCase(t *testing.T) {
	m, err := NewStringMap[int](true)
	if err != nil {
		t.Fatal(err)
	}
	m.Put("Hello", 1)
	m.Put("HELLO", 2)
	if m.Len() != 1 {
		t.Errorf("expected keys differing in case to collide, have %d entries", m.Len())
	}
	if v, _ := m.Get("hello"); v != 2 {
		t.Errorf("expected updated value 2, have %d", v)
	}
	if k, _ := m.Key("hELLo"); k != "Hello" {
		t.Errorf("expected first spelling to be kept, have %q", k)
	}
	plain, _ := NewStringMap[int](false)
	plain.Put("Hello", 1)
	plain.Put("HELLO", 2)
	if plain.Len() != 2 || plain.FoldsCase() {
		t.Errorf("case-sensitive map merged keys")
	}
}
