/*
Package segtree provides an array-backed segment tree over an arbitrary monoid,
together with a deletion-aware variant built from two such trees.

A segment tree answers aggregate queries over index ranges of a sequence.
Clients supply the aggregation as a Monoid: an associative Add together with
its neutral element Zero. The tree never assumes anything else about the
operation, so the same code serves sums, minima, maxima, string
concatenation and the like.

# Tree

Tree keeps a complete binary tree in a single flat buffer of 2n-1 slots for n
leaves. Child positions are computed from the parent's position and the size
of its left subtree, so there are no node pointers at all. Point updates and
range queries visit O(log n) nodes. Appending beyond the current capacity
rebuilds the buffer at roughly twice the size.

	t, _ := segtree.New([]int{3, 4, 5}, segtree.Sum[int]{})
	t.Query(0, 2)   // 12
	t.Add(10)
	t.Query(0, 3)   // 22

# Deletable

Deletable adds logical removal. Removed elements stay in the buffer as
tombstones holding the monoid's neutral element, and a second tree of 0/1
flags counts removals per prefix. Logical indices, as seen by clients, are
mapped to physical buffer positions by a binary search over that second
tree. Physical storage therefore only ever grows; clients may call Compact
to drop tombstones explicitly.

# Concurrency

Neither tree type is safe for concurrent use. Package watch offers a
lock-guarded wrapper.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package segtree

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'segtree'.
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
