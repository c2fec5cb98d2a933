package isam

import (
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMultiMapRuns(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	m, err := NewMultiMap[string, int]()
	if err != nil {
		t.Fatal(err)
	}
	m.Add("b", 100)
	for i := range 5 {
		m.Add("a", i)
	}
	m.Add("c", 200)
	first, _ := m.FirstOf("a")
	last, _ := m.LastOf("a")
	if last-first != 4 {
		t.Errorf("expected run of 5 for 'a', have [%d,%d]", first, last)
	}
	vals, err := m.GetAll("a")
	if err != nil || !slices.Equal(vals, []int{0, 1, 2, 3, 4}) {
		t.Errorf("GetAll(a) = %v, %v", vals, err)
	}
	if n, _ := m.Count("a"); n != 5 {
		t.Errorf("Count(a) = %d", n)
	}
	if n, _ := m.Count("x"); n != 0 {
		t.Errorf("Count(x) = %d", n)
	}
	if r, _ := m.InsertionRank("a"); r != 5 {
		t.Errorf("InsertionRank(a) = %d, expected 5", r)
	}
	ranks := []int{}
	for r, v := range m.Range("a") {
		if v != r {
			t.Errorf("rank %d holds value %d", r, v)
		}
		ranks = append(ranks, r)
	}
	if len(ranks) != 5 {
		t.Errorf("Range(a) yielded %d values", len(ranks))
	}
	if v, _ := m.Get("a"); v != 0 {
		t.Errorf("Get(a) = %d, expected first value", v)
	}
}

func TestMultiMapRemove(t *testing.T) {
	m, _ := NewMultiMap[int, int]()
	for i := range 60 {
		m.Add(i%3, i)
	}
	v, err := m.RemoveFirst(1)
	if err != nil || v != 1 {
		t.Errorf("RemoveFirst(1) = %d, %v", v, err)
	}
	n, err := m.RemoveAll(0)
	if err != nil || n != 20 {
		t.Errorf("RemoveAll(0) = %d, %v", n, err)
	}
	if m.Len() != 39 {
		t.Errorf("expected 39 entries left, have %d", m.Len())
	}
	if _, err := m.Get(0); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if n, _ := m.RemoveAll(0); n != 0 {
		t.Errorf("second RemoveAll removed %d", n)
	}
	k, _, _ := m.At(0)
	if k != 1 {
		t.Errorf("expected key 1 at rank 0, have %d", k)
	}
	if err := m.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestMultiMapEachStopsAtError(t *testing.T) {
	m, _ := NewMultiMap[int, string]()
	m.Add(2, "b")
	m.Add(1, "a")
	m.Add(1, "aa")
	var seen []string
	stop := errors.New("stop")
	err := m.Each(func(k int, v string) error {
		seen = append(seen, v)
		if k == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("expected callback error, got %v", err)
	}
	if !slices.Equal(seen, []string{"a", "aa", "b"}) {
		t.Errorf("Each visited %v", seen)
	}
}
