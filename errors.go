package segtree

import "errors"

var (
	// ErrIndexOutOfBounds signals a (logical) index outside of [0, Len()).
	ErrIndexOutOfBounds = errors.New("segtree: index out of bounds")
	// ErrInvalidConfig signals an invalid tree configuration, e.g. a missing monoid.
	ErrInvalidConfig = errors.New("segtree: invalid configuration")
	// ErrInvariant signals a violated structural invariant, as reported by Check.
	ErrInvariant = errors.New("segtree: invariant violated")
)
