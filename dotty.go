package segtree

import (
	"fmt"
	"io"
)

// Tree2Dot outputs the internal structure of a Tree in Graphviz DOT format
// (for debugging purposes). Nodes are labelled with their buffer position,
// the leaf range they cover and their aggregate.
func Tree2Dot[T any](tree *Tree[T], w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	if tree.Cap() > 0 {
		tree.walk(0, tree.capacity-1, 0, func(node, start, end, parent int) {
			isleaf := start == end
			unused := isleaf && start >= tree.length
			label := fmt.Sprintf("#%d [%d..%d]\\n%v", node, start, end, tree.buf[node])
			nodelist += fmt.Sprintf("\"%d\" [label=\"%s\" %s];\n", node, label, nodeDotStyles(isleaf, unused))
			if parent >= 0 {
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", parent, node)
			}
		})
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

// walk visits nodes in pre-order, reporting each node's buffer position, the
// leaf range it covers and its parent's position (-1 for the root).
func (t *Tree[T]) walk(start, end, node int, fn func(node, start, end, parent int)) {
	var rec func(start, end, node, parent int)
	rec = func(start, end, node, parent int) {
		fn(node, start, end, parent)
		if start == end {
			return
		}
		mid := midpoint(start, end)
		rec(start, mid, leftChild(node), node)
		rec(mid+1, end, rightChild(node, start, mid), node)
	}
	rec(start, end, node, -1)
}

func nodeDotStyles(isleaf bool, unused bool) string {
	s := ",style=filled"
	if isleaf {
		s += ",shape=box"
		if unused {
			s += ",fillcolor=\"#dddddd\""
		} else {
			s += ",fillcolor=\"#a3d7e4\""
		}
	} else {
		s += ",color=black,fillcolor=white"
		s += ",shape=ellipse"
	}
	return s
}
