package segtree

import (
	"fmt"
	"reflect"
)

// Check validates the structural invariants of the tree: buffer shape, and
// every internal node holding the aggregate of its children. Values are
// compared with reflect.DeepEqual; use CheckFunc for types where this is not
// appropriate (e.g. floats with rounding).
//
// This checker is intended for tests and debugging. It visits every node.
func (t *Tree[T]) Check() error {
	return t.CheckFunc(func(a, b T) bool { return reflect.DeepEqual(a, b) })
}

// CheckFunc validates tree invariants like Check, comparing values with eq.
func (t *Tree[T]) CheckFunc(eq func(a, b T) bool) error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.length < 0 || t.length > t.capacity {
		return fmt.Errorf("%w: length %d exceeds capacity %d", ErrInvariant, t.length, t.capacity)
	}
	if t.capacity == 0 {
		if len(t.buf) != 0 {
			return fmt.Errorf("%w: empty tree has buffer of size %d", ErrInvariant, len(t.buf))
		}
		return nil
	}
	if len(t.buf) != 2*t.capacity-1 {
		return fmt.Errorf("%w: buffer size %d for capacity %d", ErrInvariant, len(t.buf), t.capacity)
	}
	if err := t.checkNode(eq, 0, t.capacity-1, 0); err != nil {
		return err
	}
	for i := t.length; i < t.capacity; i++ {
		if v := t.Query(i, i); !eq(v, t.identity) {
			return fmt.Errorf("%w: unused slot %d holds %v", ErrInvariant, i, v)
		}
	}
	return nil
}

func (t *Tree[T]) checkNode(eq func(a, b T) bool, start, end, node int) error {
	if start == end {
		return nil
	}
	mid := midpoint(start, end)
	left, right := leftChild(node), rightChild(node, start, mid)
	if err := t.checkNode(eq, start, mid, left); err != nil {
		return err
	}
	if err := t.checkNode(eq, mid+1, end, right); err != nil {
		return err
	}
	if want := t.monoid.Add(t.buf[left], t.buf[right]); !eq(t.buf[node], want) {
		return fmt.Errorf("%w: node %d for [%d,%d] holds %v, children aggregate to %v",
			ErrInvariant, node, start, end, t.buf[node], want)
	}
	return nil
}

// Check validates both internal trees, their lockstep capacity, the length
// bookkeeping and the contents of tombstones.
func (d *Deletable[T]) Check() error {
	return d.CheckFunc(func(a, b T) bool { return reflect.DeepEqual(a, b) })
}

// CheckFunc validates invariants like Check, comparing values with eq.
func (d *Deletable[T]) CheckFunc(eq func(a, b T) bool) error {
	if d == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if err := d.values.CheckFunc(eq); err != nil {
		return err
	}
	if err := d.deleted.Check(); err != nil {
		return err
	}
	if d.values.Cap() != d.deleted.Cap() || d.values.Len() != d.deleted.Len() {
		return fmt.Errorf("%w: value tree %d/%d and deletion tree %d/%d differ in len/cap",
			ErrInvariant, d.values.Len(), d.values.Cap(), d.deleted.Len(), d.deleted.Cap())
	}
	if d.length != d.values.Len()-d.Tombstones() {
		return fmt.Errorf("%w: length %d, but %d slots with %d tombstones",
			ErrInvariant, d.length, d.values.Len(), d.Tombstones())
	}
	var err error
	d.Slots(func(p int, value T, deleted bool) bool {
		if flag := d.deleted.Query(p, p); flag != 0 && flag != 1 {
			err = fmt.Errorf("%w: deletion flag %d at slot %d", ErrInvariant, flag, p)
			return false
		}
		if deleted && !eq(value, d.values.Identity()) {
			err = fmt.Errorf("%w: tombstone at slot %d holds %v", ErrInvariant, p, value)
			return false
		}
		return true
	})
	return err
}
