package formatter

/*
BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

import (
	"errors"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CSS classes of table rows
const (
	ClassLive      = "live"
	ClassTombstone = "tombstone"
	ClassUnused    = "unused"
)

// HTML renders a snapshot as an HTML table, one row per physical slot:
//
//	<table class="segtree">
//	<tr><th>slot</th><th>value</th><th>removed</th></tr>
//	<tr class="live"><td>0</td><td>3</td><td>0</td></tr>
//	…
//
// Tombstones and unused slots get their own row classes, so stylesheets may
// hide or highlight them.
func HTML(s *Snapshot, w io.Writer) error {
	if s == nil || w == nil {
		return errors.New("illegal argument: nil")
	}
	return html.Render(w, TableNode(s))
}

// TableNode builds the HTML table for a snapshot as a node tree, for clients
// which want to embed it into a larger document.
func TableNode(s *Snapshot) *html.Node {
	table := element(atom.Table, "segtree")
	table.AppendChild(tableRow(atom.Th, "", "slot", "value", "removed"))
	for i, slot := range s.Slots {
		if slot.Deleted {
			table.AppendChild(tableRow(atom.Td, ClassTombstone, strconv.Itoa(i), "", "1"))
		} else {
			table.AppendChild(tableRow(atom.Td, ClassLive, strconv.Itoa(i), slot.Text, "0"))
		}
	}
	for i := 0; i < s.Unused; i++ {
		pos := len(s.Slots) + i
		table.AppendChild(tableRow(atom.Td, ClassUnused, strconv.Itoa(pos), "", ""))
	}
	return table
}

func tableRow(cellType atom.Atom, class string, texts ...string) *html.Node {
	tr := element(atom.Tr, class)
	for _, text := range texts {
		td := element(cellType, "")
		if text != "" {
			td.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		}
		tr.AppendChild(td)
	}
	return tr
}

func element(a atom.Atom, class string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
	}
	if class != "" {
		n.Attr = []html.Attribute{{Key: "class", Val: class}}
	}
	return n
}
