package segtree

import "fmt"

// Tree is a segment tree over a monoid.
//
// The tree is stored in a single buffer of 2*Cap()-1 slots. A node covering
// leaves [start, end] holds the aggregate of these leaves; a leaf holds the
// raw value. Slots [Len(), Cap()) are unused leaves and hold the neutral
// element.
//
// A Tree is not safe for concurrent use.
type Tree[T any] struct {
	monoid   Monoid[T]
	identity T
	buf      []T
	length   int
	capacity int
}

// New creates a tree holding a copy of values, aggregated by m.
// values may be empty. Capacity and length of the new tree equal len(values).
func New[T any](values []T, m Monoid[T]) (*Tree[T], error) {
	if err := validateMonoid(m); err != nil {
		return nil, err
	}
	t := &Tree[T]{
		monoid:   m,
		identity: m.Zero(),
	}
	t.rebuild(values, len(values))
	t.length = len(values)
	return t, nil
}

func validateMonoid[T any](m Monoid[T]) error {
	if m == nil {
		return fmt.Errorf("%w: monoid is required", ErrInvalidConfig)
	}
	switch f := m.(type) {
	case Func[T]:
		if f.Apply == nil {
			return fmt.Errorf("%w: monoid function is nil", ErrInvalidConfig)
		}
	case *Func[T]:
		if f == nil || f.Apply == nil {
			return fmt.Errorf("%w: monoid function is nil", ErrInvalidConfig)
		}
	}
	return nil
}

// Len returns the number of values in the tree.
func (t *Tree[T]) Len() int {
	if t == nil {
		return 0
	}
	return t.length
}

// Cap returns the number of leaf slots currently allocated.
func (t *Tree[T]) Cap() int {
	if t == nil {
		return 0
	}
	return t.capacity
}

// Monoid returns the monoid the tree aggregates with.
func (t *Tree[T]) Monoid() Monoid[T] {
	return t.monoid
}

// Identity returns the neutral element of the tree's monoid.
func (t *Tree[T]) Identity() T {
	return t.identity
}

// Summary returns the aggregate over all values, or the neutral element for an
// empty tree.
func (t *Tree[T]) Summary() T {
	if t.capacity == 0 {
		return t.identity
	}
	return t.buf[0]
}

// Get returns the value at index.
func (t *Tree[T]) Get(index int) (T, error) {
	if index < 0 || index >= t.length {
		var zero T
		return zero, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, index, t.length)
	}
	return t.Query(index, index), nil
}

// Set replaces the value at index and updates all aggregates covering it.
func (t *Tree[T]) Set(index int, value T) error {
	if index < 0 || index >= t.length {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfBounds, index, t.length)
	}
	t.set(index, value)
	return nil
}

// Query returns the aggregate of the values in [start, end], both inclusive.
//
// Clients are expected to call Query with 0 <= start <= end < Cap(). Query
// does not check this. Parts of the range outside of the allocated leaves
// contribute the neutral element, as do unused slots beyond Len(); a range
// with start > end yields an unspecified result.
func (t *Tree[T]) Query(start, end int) T {
	if t.capacity == 0 {
		return t.identity
	}
	return t.query(start, end, 0, t.capacity-1, 0)
}

// Add appends a value to the tree. If the tree is full, its buffer is rebuilt
// with capacity 2*Cap()+1.
func (t *Tree[T]) Add(value T) {
	if t.length == t.capacity {
		t.resize(2*t.capacity + 1)
	}
	t.length++
	t.set(t.length-1, value)
}

// Values returns a copy of the values of the tree, in order.
func (t *Tree[T]) Values() []T {
	values := make([]T, 0, t.length)
	t.Each(func(_ int, value T) bool {
		values = append(values, value)
		return true
	})
	return values
}

// Each calls fn for every value in order, until fn returns false.
func (t *Tree[T]) Each(fn func(index int, value T) bool) {
	for i := 0; i < t.length; i++ {
		if !fn(i, t.Query(i, i)) {
			return
		}
	}
}

// --- Buffer management -----------------------------------------------------

// resize re-reads all values and builds them into a fresh buffer of
// newCapacity leaves. Aggregates are recomputed from scratch.
func (t *Tree[T]) resize(newCapacity int) {
	assert(newCapacity >= t.length, "resize would drop values")
	values := make([]T, newCapacity)
	for i := 0; i < t.length; i++ {
		v, err := t.Get(i)
		assert(err == nil, "resize could not read value")
		values[i] = v
	}
	for i := t.length; i < newCapacity; i++ {
		values[i] = t.identity
	}
	tracer().P("segtree", "resize").Debugf("capacity %d -> %d", t.capacity, newCapacity)
	t.rebuild(values, newCapacity)
}

// rebuild replaces the buffer by one holding values as leaves. The old buffer
// is dropped only after the new one is complete.
func (t *Tree[T]) rebuild(values []T, capacity int) {
	var buf []T
	if capacity > 0 {
		buf = make([]T, 2*capacity-1)
	}
	next := Tree[T]{monoid: t.monoid, identity: t.identity, buf: buf, capacity: capacity}
	if capacity > 0 {
		next.build(values, 0, capacity-1, 0)
	}
	t.buf, t.capacity = next.buf, next.capacity
}

// --- Tree algorithms -------------------------------------------------------

func (t *Tree[T]) build(values []T, start, end, node int) {
	if start == end {
		t.buf[node] = values[start]
		return
	}
	mid := midpoint(start, end)
	left, right := leftChild(node), rightChild(node, start, mid)
	t.build(values, start, mid, left)
	t.build(values, mid+1, end, right)
	t.buf[node] = t.monoid.Add(t.buf[left], t.buf[right])
}

// set overwrites the leaf at index without bounds checking against Len().
// index has to be in [0, Cap()).
func (t *Tree[T]) set(index int, value T) {
	t.setNode(index, value, 0, t.capacity-1, 0)
}

func (t *Tree[T]) setNode(index int, value T, start, end, node int) {
	if start == end {
		t.buf[node] = value
		return
	}
	mid := midpoint(start, end)
	left, right := leftChild(node), rightChild(node, start, mid)
	if index <= mid {
		t.setNode(index, value, start, mid, left)
	} else {
		t.setNode(index, value, mid+1, end, right)
	}
	t.buf[node] = t.monoid.Add(t.buf[left], t.buf[right])
}

func (t *Tree[T]) query(qstart, qend, start, end, node int) T {
	if qstart <= start && end <= qend { // node range fully inside query
		return t.buf[node]
	}
	if qstart > end || start > qend { // disjoint
		return t.identity
	}
	mid := midpoint(start, end)
	l := t.query(qstart, qend, start, mid, leftChild(node))
	r := t.query(qstart, qend, mid+1, end, rightChild(node, start, mid))
	return t.monoid.Add(l, r)
}

// --- Implicit addressing ---------------------------------------------------

func midpoint(start, end int) int {
	return start + (end-start)/2
}

func leftChild(node int) int {
	return node + 1
}

// rightChild skips over the left subtree, which for leaves [start, mid]
// occupies 2*(mid-start+1)-1 slots.
func rightChild(node, start, mid int) int {
	return node + 2*(mid-start+1)
}
