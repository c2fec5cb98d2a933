package isam

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/npillmayer/isam/btree"
	"github.com/npillmayer/isam/rwlock"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestLockTimeout(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	l := rwlock.New(10 * time.Millisecond)
	v, err := NewVector[int](WithLock(l))
	if err != nil {
		t.Fatal(err)
	}
	v.Append(1)
	if err := l.AcquireWrite(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := v.Append(2); !errors.Is(err, ErrLockTimeout) {
		t.Errorf("expected ErrLockTimeout for writer, got %v", err)
	}
	if _, err := v.At(0); !errors.Is(err, ErrLockTimeout) {
		t.Errorf("expected ErrLockTimeout for reader, got %v", err)
	}
	l.Release()
	if err := v.Append(2); err != nil {
		t.Errorf("expected append to succeed after release, got %v", err)
	}
	if v.Len() != 2 {
		t.Errorf("timed-out append must not change the vector, len=%d", v.Len())
	}
}

func TestReadersShareCollectionLock(t *testing.T) {
	s, _ := NewSet[int](WithLockTimeout(time.Second))
	s.Add(1)
	n := 0
	for range s.All() {
		if ok, err := s.Contains(1); err != nil || !ok { // nested read
			t.Fatalf("nested read failed: %v", err)
		}
		n++
	}
	if n != 1 {
		t.Errorf("expected one element, iterated %d", n)
	}
}

func TestWatchEvents(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	v, _ := NewVector[int](WithEvents())
	defer v.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, err := v.Watch(ctx, 64)
	if err != nil {
		t.Fatal(err)
	}
	deadline := time.After(5 * time.Second)
	for i := 0; ; i++ {
		if err := v.Append(i); err != nil {
			t.Fatal(err)
		}
		select {
		case e := <-events:
			if e.Kind != btree.EventSpawn && e.Kind != btree.EventGrow {
				t.Errorf("unexpected first event %v", e)
			}
			return
		case <-deadline:
			t.Fatalf("no event received after %d appends", i+1)
		default:
			if i%btree.Order == 0 {
				time.Sleep(time.Millisecond)
			}
		}
	}
}

func TestWatchRequiresEvents(t *testing.T) {
	m, _ := NewMap[int, int]()
	if _, err := m.Watch(context.Background(), 1); !errors.Is(err, ErrNoEvents) {
		t.Errorf("expected ErrNoEvents, got %v", err)
	}
}

func TestSharedHandles(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	m, _ := NewMultiMap[string, int](WithEvents(), WithName("shared"))
	events, err := m.Watch(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	h1 := Share(m)
	h2, err := h1.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	if h1.Refs() != 2 {
		t.Errorf("expected 2 references, have %d", h1.Refs())
	}
	mm, _ := h2.Get()
	mm.Add("x", 1)
	if err := h1.Release(); err != nil {
		t.Fatal(err)
	}
	if err := h1.Release(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased on double release, got %v", err)
	}
	if _, err := h1.Get(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased from released handle, got %v", err)
	}
	if mm, err = h2.Get(); err != nil || mm.Len() != 1 {
		t.Errorf("second handle lost the collection: %v", err)
	}
	h2.Release()
	if h2.Refs() != 0 {
		t.Errorf("expected no references, have %d", h2.Refs())
	}
	if _, err := h2.Acquire(); !errors.Is(err, ErrReleased) {
		t.Errorf("expected ErrReleased when acquiring from released handle, got %v", err)
	}
	select { // closing the collection ends subscriptions
	case _, ok := <-events:
		for ok {
			_, ok = <-events
		}
	case <-time.After(5 * time.Second):
		t.Errorf("subscription not closed after last release")
	}
}

func TestHealthySetPassesCheck(t *testing.T) {
	var reported error
	s, _ := NewSet[int](WithStrict(false), WithIntegrityHandler(func(err error) { reported = err }))
	for i := range 20 {
		s.Add(i)
	}
	if err := s.Check(); err != nil || reported != nil {
		t.Fatalf("healthy set reported %v / %v", err, reported)
	}
	var sb strings.Builder
	if err := s.WriteDot(&sb); err != nil || !strings.Contains(sb.String(), "digraph") {
		t.Errorf("unexpected DOT output %q, %v", sb.String(), err)
	}
}
