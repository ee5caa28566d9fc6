package segtree

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func makeDeletable(t *testing.T, values ...int) *Deletable[int] {
	t.Helper()
	d, err := NewDeletable(values, Monoid[int](Sum[int]{}))
	if err != nil {
		t.Fatalf("NewDeletable failed: %v", err)
	}
	return d
}

func assertDeletableMatches(t *testing.T, d *Deletable[int], model []int) {
	t.Helper()
	if err := d.Check(); err != nil {
		t.Fatalf("invariants: %v", err)
	}
	if d.Len() != len(model) {
		t.Fatalf("Len() = %d, want %d", d.Len(), len(model))
	}
	for i, want := range model {
		got, err := d.Get(i)
		if err != nil {
			t.Fatalf("Get(%d) failed: %v", i, err)
		}
		if got != want {
			t.Fatalf("Get(%d) = %d, want %d (model %v)", i, got, want, model)
		}
	}
	if len(model) > 0 {
		if got, want := d.Query(0, len(model)-1), fold[int](Sum[int]{}, model); got != want {
			t.Fatalf("Query(0,%d) = %d, want %d", len(model)-1, got, want)
		}
	}
}

func TestNewDeletableRejectsNilMonoid(t *testing.T) {
	if _, err := NewDeletable[int](nil, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestDeletableScenarioSum(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "segtree")
	defer teardown()
	//
	d := makeDeletable(t, 3, 4, 5)
	if q := d.Query(0, 2); q != 12 {
		t.Fatalf("Query(0,2) = %d, want 12", q)
	}
	d.Add(10)
	if d.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", d.Len())
	}
	if q := d.Query(0, 3); q != 22 {
		t.Fatalf("Query(0,3) = %d, want 22", q)
	}
	if err := d.Remove(0); err != nil {
		t.Fatalf("Remove(0) failed: %v", err)
	}
	if d.Len() != 3 {
		t.Fatalf("Len() = %d after Remove, want 3", d.Len())
	}
	if v, _ := d.Get(0); v != 4 {
		t.Fatalf("Get(0) = %d after Remove, want 4", v)
	}
	if q := d.Query(0, 2); q != 19 {
		t.Fatalf("Query(0,2) = %d after Remove, want 19", q)
	}
	assertDeletableMatches(t, d, []int{4, 5, 10})
}

func TestDeletableScenarioMin(t *testing.T) {
	d, err := NewDeletable([]int{5, 3, 8, 1}, Monoid[int](Min[int]{Top: math.MaxInt}))
	if err != nil {
		t.Fatalf("NewDeletable failed: %v", err)
	}
	if q := d.Query(0, 3); q != 1 {
		t.Fatalf("Query(0,3) = %d, want 1", q)
	}
	if err := d.Remove(3); err != nil {
		t.Fatalf("Remove(3) failed: %v", err)
	}
	if q := d.Query(0, 2); q != 3 {
		t.Fatalf("Query(0,2) = %d after Remove, want 3", q)
	}
	if err := d.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestDeletableRemoveShiftsLogicalIndices(t *testing.T) {
	model := []int{10, 11, 12, 13, 14, 15, 16, 17}
	for i := range model {
		d := makeDeletable(t, model...)
		if err := d.Remove(i); err != nil {
			t.Fatalf("Remove(%d) failed: %v", i, err)
		}
		want := append(append([]int{}, model[:i]...), model[i+1:]...)
		assertDeletableMatches(t, d, want)
	}
}

func TestDeletableOutOfBounds(t *testing.T) {
	d := makeDeletable(t, 1, 2, 3)
	if err := d.Remove(1); err != nil {
		t.Fatal(err)
	}
	for _, i := range []int{-1, 2, 3} {
		if _, err := d.Get(i); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Fatalf("Get(%d): expected ErrIndexOutOfBounds, got %v", i, err)
		}
		if err := d.Set(i, 0); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Fatalf("Set(%d): expected ErrIndexOutOfBounds, got %v", i, err)
		}
		if err := d.Remove(i); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Fatalf("Remove(%d): expected ErrIndexOutOfBounds, got %v", i, err)
		}
	}
	if d.Len() != 2 {
		t.Fatalf("failed removals changed Len() to %d", d.Len())
	}
}

func TestDeletableSetTranslatesIndex(t *testing.T) {
	d := makeDeletable(t, 1, 2, 3, 4)
	if err := d.Remove(0); err != nil {
		t.Fatal(err)
	}
	if err := d.Remove(1); err != nil { // removes 3
		t.Fatal(err)
	}
	if err := d.Set(1, 40); err != nil {
		t.Fatal(err)
	}
	assertDeletableMatches(t, d, []int{2, 40})
}

func TestDeletableCapacity(t *testing.T) {
	d := makeDeletable(t, 1, 2, 3)
	if d.Cap() != 3 || d.PhysicalCap() != 3 {
		t.Fatalf("cap=%d physical=%d, want 3/3", d.Cap(), d.PhysicalCap())
	}
	_ = d.Remove(0)
	_ = d.Remove(0)
	if d.Cap() != 1 || d.Tombstones() != 2 || d.PhysicalLen() != 3 {
		t.Fatalf("cap=%d tombstones=%d physical len=%d, want 1/2/3",
			d.Cap(), d.Tombstones(), d.PhysicalLen())
	}
	d.Add(4)
	if d.PhysicalCap() != 7 || d.Cap() != 5 {
		t.Fatalf("after Add: physical cap=%d cap=%d, want 7/5", d.PhysicalCap(), d.Cap())
	}
}

func TestDeletableLockstepGrowth(t *testing.T) {
	d := makeDeletable(t)
	var model []int
	for i := 0; i < 100; i++ {
		d.Add(i)
		model = append(model, i)
		if i%3 == 0 {
			if err := d.Remove(0); err != nil {
				t.Fatal(err)
			}
			model = model[1:]
		}
		if d.values.Cap() != d.deleted.Cap() {
			t.Fatalf("step %d: value cap %d != deletion cap %d", i, d.values.Cap(), d.deleted.Cap())
		}
	}
	assertDeletableMatches(t, d, model)
}

func TestDeletableRemoveAll(t *testing.T) {
	d := makeDeletable(t, 1, 2, 3)
	for d.Len() > 0 {
		if err := d.Remove(d.Len() - 1); err != nil {
			t.Fatal(err)
		}
	}
	if s := d.Summary(); s != 0 {
		t.Fatalf("Summary() = %d with only tombstones, want 0", s)
	}
	assertDeletableMatches(t, d, nil)
	d.Add(7)
	assertDeletableMatches(t, d, []int{7})
}

func TestDeletableCompact(t *testing.T) {
	d := makeDeletable(t, 1, 2, 3, 4, 5, 6)
	_ = d.Remove(0)
	_ = d.Remove(2)
	_ = d.Remove(3)
	model := []int{2, 3, 5}
	assertDeletableMatches(t, d, model)
	d.Compact()
	if d.Tombstones() != 0 || d.PhysicalLen() != 3 || d.PhysicalCap() != 3 {
		t.Fatalf("after Compact: tombstones=%d physical len=%d cap=%d",
			d.Tombstones(), d.PhysicalLen(), d.PhysicalCap())
	}
	assertDeletableMatches(t, d, model)
	d.Add(9)
	assertDeletableMatches(t, d, []int{2, 3, 5, 9})
}

func TestDeletableCompactEmpty(t *testing.T) {
	d := makeDeletable(t, 1)
	_ = d.Remove(0)
	d.Compact()
	if d.PhysicalCap() != 0 {
		t.Fatalf("PhysicalCap() = %d, want 0", d.PhysicalCap())
	}
	if q := d.Query(0, 0); q != 0 {
		t.Fatalf("Query on empty tree = %d, want identity", q)
	}
	d.Add(3)
	assertDeletableMatches(t, d, []int{3})
}

func TestDeletableSlots(t *testing.T) {
	d := makeDeletable(t, 1, 2, 3)
	_ = d.Remove(1)
	var flags []bool
	d.Slots(func(p int, _ int, deleted bool) bool {
		flags = append(flags, deleted)
		return true
	})
	if len(flags) != 3 || flags[0] || !flags[1] || flags[2] {
		t.Fatalf("slot flags = %v, want [false true false]", flags)
	}
}
