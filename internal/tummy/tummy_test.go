package tummy

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/numbercruncher/numbercruncher/pkg/types"
)

func fact(n int) types.Fact {
	return types.Fact{Number: n, Fact: fmt.Sprintf("%d is a number.", n)}
}

func TestPush_UntilFull(t *testing.T) {
	tm := New(3)
	for i, n := range []int{2, 4, 6} {
		if _, ok := tm.Push(fact(n)); ok {
			t.Fatalf("Push #%d evicted with room left", i+1)
		}
	}
	if !tm.Full() {
		t.Error("Full() = false after 3 pushes into capacity 3")
	}
	want := []types.Fact{fact(2), fact(4), fact(6)}
	if diff := cmp.Diff(want, tm.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}

func TestPush_EvictsOldest(t *testing.T) {
	tm := New(3)
	for _, n := range []int{2, 4, 6} {
		tm.Push(fact(n))
	}

	evicted, ok := tm.Push(fact(8))
	if !ok {
		t.Fatal("Push into full tummy: expected eviction")
	}
	if evicted != fact(2) {
		t.Errorf("evicted = %+v, want %+v", evicted, fact(2))
	}
	if tm.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tm.Len())
	}
	want := []types.Fact{fact(4), fact(6), fact(8)}
	if diff := cmp.Diff(want, tm.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}

func TestPush_WrapsManyTimes(t *testing.T) {
	tm := New(4)
	for n := 0; n < 50; n += 2 {
		tm.Push(fact(n))
		if tm.Len() > tm.Cap() {
			t.Fatalf("Len() %d exceeds Cap() %d", tm.Len(), tm.Cap())
		}
	}
	want := []types.Fact{fact(42), fact(44), fact(46), fact(48)}
	if diff := cmp.Diff(want, tm.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}

func TestCapacityOne(t *testing.T) {
	tm := New(1)
	tm.Push(fact(42))
	evicted, ok := tm.Push(fact(10))
	if !ok || evicted.Number != 42 {
		t.Fatalf("Push: evicted %+v ok=%v, want 42 true", evicted, ok)
	}
	if diff := cmp.Diff([]types.Fact{fact(10)}, tm.Items()); diff != "" {
		t.Errorf("Items() mismatch (-want +got):\n%s", diff)
	}
}

func TestItems_IsACopy(t *testing.T) {
	tm := New(2)
	tm.Push(fact(2))
	items := tm.Items()
	items[0].Number = 99
	if got := tm.Items()[0].Number; got != 2 {
		t.Errorf("mutating Items() leaked into tummy: got %d", got)
	}
}

func TestItems_Empty(t *testing.T) {
	if got := New(2).Items(); len(got) != 0 {
		t.Errorf("Items() on empty tummy = %v", got)
	}
}

func TestNew_PanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(0) did not panic")
		}
	}()
	New(0)
}
