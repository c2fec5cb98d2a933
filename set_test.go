package isam

import (
	"errors"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestSetRandomInsert(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelInfo)
	//
	s, err := NewSet[int]()
	if err != nil {
		t.Fatal(err)
	}
	r := rand.New(rand.NewSource(1))
	for _, k := range r.Perm(100) {
		if err := s.Add(k); err != nil {
			t.Fatal(err)
		}
	}
	for i := range 100 {
		if k, err := s.At(i); err != nil || k != i {
			t.Fatalf("At(%d) = %d, %v", i, k, err)
		}
	}
	if err := s.Add(42); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	if s.Len() != 100 {
		t.Errorf("duplicate changed length to %d", s.Len())
	}
	if err := s.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestSetLookups(t *testing.T) {
	s, _ := NewSet[int]()
	for _, k := range []int{40, 10, 30, 20} {
		s.Add(k)
	}
	if ok, _ := s.Contains(30); !ok {
		t.Errorf("expected set to contain 30")
	}
	if ok, _ := s.Contains(35); ok {
		t.Errorf("expected set not to contain 35")
	}
	if r, err := s.Rank(30); err != nil || r != 2 {
		t.Errorf("Rank(30) = %d, %v", r, err)
	}
	if _, err := s.Rank(35); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if r, _ := s.Seek(35); r != 3 {
		t.Errorf("Seek(35) = %d, expected 3", r)
	}
	if r, _ := s.Seek(50); r != 4 {
		t.Errorf("Seek(50) = %d, expected 4", r)
	}
	lo, _ := s.Min()
	hi, _ := s.Max()
	if lo != 10 || hi != 40 {
		t.Errorf("Min/Max = %d/%d", lo, hi)
	}
	if err := s.Remove(10); err != nil {
		t.Fatal(err)
	}
	if err := s.Remove(10); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second removal, got %v", err)
	}
	if keys := slices.Collect(s.All()); !slices.Equal(keys, []int{20, 30, 40}) {
		t.Errorf("unexpected keys %v", keys)
	}
}

func TestSetEmptyMinMax(t *testing.T) {
	s, _ := NewSet[string]()
	if _, err := s.Min(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Max(); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSetWithComparator(t *testing.T) {
	byLength := func(a, b string) int { return len(a) - len(b) }
	s, err := NewSetFunc[string](byLength)
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range strings.Fields("ccc a bb dddd") {
		s.Add(w)
	}
	if err := s.Add("zz"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected words of equal length to collide, got %v", err)
	}
	if keys := slices.Collect(s.All()); strings.Join(keys, " ") != "a bb ccc dddd" {
		t.Errorf("unexpected order %v", keys)
	}
	if _, err := NewSetFunc[int](nil); !errors.Is(err, ErrIllegalArguments) {
		t.Errorf("expected ErrIllegalArguments for missing comparator, got %v", err)
	}
}
