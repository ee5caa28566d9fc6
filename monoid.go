package segtree

import "golang.org/x/exp/constraints"

// Monoid defines how values are aggregated up the tree.
//
// For values s, t, u, Add should be associative:
//
//	Add(Add(s, t), u) == Add(s, Add(t, u))
//
// and Zero should be the neutral element:
//
//	Add(Zero(), s) == s == Add(s, Zero())
//
// Neither law is checked. Trees built over an operation violating them will
// answer queries with meaningless aggregates.
type Monoid[T any] interface {
	Zero() T
	Add(left, right T) T
}

// Number is the set of types Sum is defined for.
type Number interface {
	constraints.Integer | constraints.Float
}

// Sum aggregates by addition, with neutral element 0.
type Sum[N Number] struct{}

// Zero returns 0.
func (Sum[N]) Zero() N { return 0 }

// Add returns left + right.
func (Sum[N]) Add(left, right N) N { return left + right }

// Min aggregates by taking the minimum of two values.
//
// Go has no generic notion of +∞, so clients have to supply a top element
// which is greater than or equal to any value ever stored, e.g.
//
//	segtree.Min[int]{Top: math.MaxInt}
type Min[N constraints.Ordered] struct {
	Top N
}

// Zero returns the top element.
func (m Min[N]) Zero() N { return m.Top }

// Add returns the smaller of left and right.
func (Min[N]) Add(left, right N) N {
	if left > right {
		return right
	}
	return left
}

// Max aggregates by taking the maximum of two values. Bottom has to be less
// than or equal to any value ever stored.
type Max[N constraints.Ordered] struct {
	Bottom N
}

// Zero returns the bottom element.
func (m Max[N]) Zero() N { return m.Bottom }

// Add returns the greater of left and right.
func (Max[N]) Add(left, right N) N {
	if left < right {
		return right
	}
	return left
}

// Concat aggregates strings by concatenation. It is associative but not
// commutative, which makes it handy for checking that aggregation respects
// the order of elements.
type Concat struct{}

// Zero returns the empty string.
func (Concat) Zero() string { return "" }

// Add returns left followed by right.
func (Concat) Add(left, right string) string { return left + right }

// Func adapts a plain combining function and its neutral element to Monoid.
type Func[T any] struct {
	Apply    func(left, right T) T
	Identity T
}

// Zero returns f.Identity.
func (f Func[T]) Zero() T { return f.Identity }

// Add calls f.Apply.
func (f Func[T]) Add(left, right T) T { return f.Apply(left, right) }
