/*
Package formatter renders the internal state of segment trees for debugging.

A tree is first captured as a Snapshot, which lists every physical slot of
the tree's buffer: live values, tombstones left behind by removal, and
allocated but unused capacity. Snapshots may then be output to a console
with a fixed width font, or as an HTML table.

	d, _ := segtree.NewDeletable([]int{3, 4, 5}, segtree.Sum[int]{})
	d.Add(10)
	d.Remove(0)
	formatter.Print(formatter.Snap(d), nil)

prints something like

	slots    [  _  4  5 10 __ __ __ ]
	removed  [  1  0  0  0 ]
	apparent [  4  5 10 ]

Cells are padded to a common display width, measured according to UAX#11,
so values rendered with wide characters still line up.

Output of this package is a debugging aid and its exact layout is not
stable.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package formatter

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'segtree'.
func tracer() tracing.Trace {
	return tracing.Select("segtree")
}
