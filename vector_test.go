package isam

import (
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestVectorAppendAndInsert(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	v, err := NewVector[string]()
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []string{"b", "d", "e"} {
		if err := v.Append(s); err != nil {
			t.Fatal(err)
		}
	}
	v.InsertAt(0, "a")
	v.InsertAt(2, "c")
	v.InsertAt(5, "f")
	var got []string
	for i, s := range v.All() {
		if i != len(got) {
			t.Fatalf("iteration reports position %d, expected %d", i, len(got))
		}
		got = append(got, s)
	}
	if !slices.Equal(got, []string{"a", "b", "c", "d", "e", "f"}) {
		t.Errorf("unexpected vector contents %v", got)
	}
	if v.Len() != 6 {
		t.Errorf("expected length 6, have %d", v.Len())
	}
	if err := v.InsertAt(7, "x"); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestVectorRemoveAndSet(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	v, err := VectorOf(items)
	if err != nil {
		t.Fatal(err)
	}
	x, err := v.RemoveAt(50)
	if err != nil || x != 50 {
		t.Fatalf("RemoveAt(50) = %d, %v", x, err)
	}
	if err := v.Set(0, -1); err != nil {
		t.Fatal(err)
	}
	if x, _ := v.At(0); x != -1 {
		t.Errorf("Set did not replace element, have %d", x)
	}
	if x, _ := v.At(50); x != 51 {
		t.Errorf("expected 51 after removal, have %d", x)
	}
	if _, err := v.At(99); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
	if err := v.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestVectorSlice(t *testing.T) {
	v, _ := VectorOf([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11})
	s, err := v.Slice(3, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(s, []int{3, 4, 5, 6, 7, 8, 9}) {
		t.Errorf("unexpected slice %v", s)
	}
	if s, _ = v.Slice(12, 12); len(s) != 0 {
		t.Errorf("expected empty slice at end, have %v", s)
	}
	if _, err = v.Slice(5, 13); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Errorf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestVectorEachStopsAtError(t *testing.T) {
	v, _ := VectorOf([]int{1, 2, 3, 4})
	stop := errors.New("stop")
	visited := 0
	err := v.Each(func(_ int, x int) error {
		visited++
		if x == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || visited != 2 {
		t.Errorf("expected Each to stop at second element, visited=%d err=%v", visited, err)
	}
}

func TestVectorClone(t *testing.T) {
	v, _ := VectorOf([]int{1, 2, 3})
	c, err := v.Clone(WithName("copy"))
	if err != nil {
		t.Fatal(err)
	}
	c.Append(4)
	if v.Len() != 3 || c.Len() != 4 || c.Name() != "copy" {
		t.Errorf("clone not independent: %d / %d, name %q", v.Len(), c.Len(), c.Name())
	}
}
