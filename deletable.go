package segtree

import "fmt"

// Deletable is a segment tree which supports removal of values.
//
// Removed values are not cut out of the underlying buffer. Instead they are
// replaced by a tombstone holding the neutral element of the monoid, and a
// second tree counts tombstones. All indices of the API are logical indices,
// i.e. they count live values only, and are translated to physical buffer
// positions internally.
//
// Physical capacity never shrinks by removal. Clients with long-running
// add/remove cycles may call Compact from time to time.
//
// A Deletable is not safe for concurrent use.
type Deletable[T any] struct {
	values  *Tree[T]
	deleted *Tree[int] // 1 for a tombstone, 0 otherwise
	length  int
}

// NewDeletable creates a deletable tree holding a copy of values, aggregated by m.
func NewDeletable[T any](values []T, m Monoid[T]) (*Deletable[T], error) {
	vt, err := New(values, m)
	if err != nil {
		return nil, err
	}
	dt, err := New[int](make([]int, len(values)), Sum[int]{})
	if err != nil {
		return nil, err
	}
	return &Deletable[T]{
		values:  vt,
		deleted: dt,
		length:  len(values),
	}, nil
}

// Len returns the number of live values.
func (d *Deletable[T]) Len() int {
	if d == nil {
		return 0
	}
	return d.length
}

// Cap returns the apparent capacity: allocated slots minus tombstones.
func (d *Deletable[T]) Cap() int {
	return d.values.Cap() - d.Tombstones()
}

// Tombstones returns the number of removed values still occupying a slot.
func (d *Deletable[T]) Tombstones() int {
	return d.deleted.Summary()
}

// PhysicalLen returns the number of occupied slots, live or removed.
func (d *Deletable[T]) PhysicalLen() int {
	return d.values.Len()
}

// PhysicalCap returns the number of allocated slots.
func (d *Deletable[T]) PhysicalCap() int {
	return d.values.Cap()
}

// Monoid returns the monoid the tree aggregates with.
func (d *Deletable[T]) Monoid() Monoid[T] {
	return d.values.Monoid()
}

// Identity returns the neutral element of the tree's monoid.
func (d *Deletable[T]) Identity() T {
	return d.values.Identity()
}

// Summary returns the aggregate over all live values.
func (d *Deletable[T]) Summary() T {
	return d.values.Summary()
}

// Get returns the value at logical index.
func (d *Deletable[T]) Get(index int) (T, error) {
	if err := d.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	return d.values.Get(d.trueIndex(index))
}

// Set replaces the value at logical index.
func (d *Deletable[T]) Set(index int, value T) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	return d.values.Set(d.trueIndex(index), value)
}

// Query returns the aggregate of the live values at logical positions
// [start, end], both inclusive. Clients are expected to call it with
// 0 <= start <= end < Len(); see Tree.Query.
func (d *Deletable[T]) Query(start, end int) T {
	if d.values.Cap() == 0 {
		return d.values.Identity()
	}
	return d.values.Query(d.trueIndex(start), d.trueIndex(end))
}

// Add appends a value.
func (d *Deletable[T]) Add(value T) {
	d.values.Add(value)
	d.deleted.Add(0)
	assert(d.values.Cap() == d.deleted.Cap(), "value tree and deletion tree out of lockstep")
	d.length++
}

// Remove removes the value at logical index. Subsequent values move one
// logical position to the front.
func (d *Deletable[T]) Remove(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	p := d.trueIndex(index)
	d.deleted.set(p, 1)
	d.values.set(p, d.values.Identity())
	d.length--
	tracer().P("segtree", "remove").Debugf("logical %d = physical %d, %d tombstones", index, p, d.Tombstones())
	return nil
}

// Values returns a copy of the live values, in logical order.
func (d *Deletable[T]) Values() []T {
	values := make([]T, 0, d.length)
	d.Slots(func(_ int, value T, deleted bool) bool {
		if !deleted {
			values = append(values, value)
		}
		return true
	})
	return values
}

// Slots calls fn for every occupied physical slot in order, including
// tombstones, until fn returns false.
func (d *Deletable[T]) Slots(fn func(physical int, value T, deleted bool) bool) {
	for p := 0; p < d.values.Len(); p++ {
		if !fn(p, d.values.Query(p, p), d.deleted.Query(p, p) != 0) {
			return
		}
	}
}

// Compact drops all tombstones and rebuilds both internal trees from the live
// values. Capacity afterwards equals Len(). Compact is never called
// implicitly.
func (d *Deletable[T]) Compact() {
	live := d.Values()
	tombstones := d.Tombstones()
	d.values.rebuild(live, len(live))
	d.values.length = len(live)
	d.deleted.rebuild(make([]int, len(live)), len(live))
	d.deleted.length = len(live)
	tracer().P("segtree", "compact").Debugf("dropped %d tombstones, capacity now %d", tombstones, len(live))
}

func (d *Deletable[T]) checkIndex(index int) error {
	if index < 0 || index >= d.length {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, index, d.length)
	}
	return nil
}

// trueIndex maps a logical index to its physical position.
//
// It finds the smallest physical position p with exactly logical+1 live slots
// in [0, p]. The number of tombstones in [0, mid] is read from the deletion
// tree; if it exceeds mid-logical, the live slot of rank logical lies beyond
// mid. For indices >= Len() the result is a position past the last live slot.
func (d *Deletable[T]) trueIndex(logical int) int {
	low, high := logical, d.values.Len()-1
	for low <= high {
		mid := low + (high-low)/2
		if mid-logical < d.deleted.Query(0, mid) {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return low
}
