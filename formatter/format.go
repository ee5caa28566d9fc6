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
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/npillmayer/segtree"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

// Kind classifies a cell of output.
type Kind int8

// Kinds of cells
const (
	Live      Kind = iota // a live value
	Tombstone             // a removed value, still occupying its slot
	Unused                // allocated capacity without a value
	Flag                  // a deletion flag (0 or 1)
)

// Slot is a physical slot of a tree's buffer.
type Slot struct {
	Text    string // value formatted with %v
	Deleted bool
}

// Snapshot captures the physical layout of a tree.
type Snapshot struct {
	Slots  []Slot // occupied slots, in physical order
	Unused int    // number of allocated, unoccupied slots
}

// Snap captures the physical layout of a deletable tree.
func Snap[T any](d *segtree.Deletable[T]) *Snapshot {
	s := &Snapshot{}
	d.Slots(func(_ int, value T, deleted bool) bool {
		s.Slots = append(s.Slots, Slot{Text: fmt.Sprintf("%v", value), Deleted: deleted})
		return true
	})
	s.Unused = d.PhysicalCap() - d.PhysicalLen()
	return s
}

// SnapTree captures the layout of a plain tree. There are no tombstones.
func SnapTree[T any](t *segtree.Tree[T]) *Snapshot {
	s := &Snapshot{}
	t.Each(func(_ int, value T) bool {
		s.Slots = append(s.Slots, Slot{Text: fmt.Sprintf("%v", value)})
		return true
	})
	s.Unused = t.Cap() - t.Len()
	return s
}

// Live returns the texts of all live slots, in order.
func (s *Snapshot) Live() []string {
	live := make([]string, 0, len(s.Slots))
	for _, slot := range s.Slots {
		if !slot.Deleted {
			live = append(live, slot.Text)
		}
	}
	return live
}

// Config represents a set of configuration parameters for formatting.
type Config struct {
	LineWidth int            // wrap rows longer than this, in ‘en’s; 0 means no wrapping
	Context   *uax11.Context // context for width calculation; may be nil
}

// Format is an interface for formatting drivers, given an io.Writer.
type Format interface {
	Preamble(io.Writer)
	Postamble(io.Writer)
	Label(string, io.Writer)
	Cell(string, Kind, io.Writer)
	Newline(io.Writer)
}

// Placeholders for cells without a value
const (
	TombstoneText = "_"
	UnusedText    = "__"
)

const labelWidth = 9

// Output formats a snapshot using a given formatter. It outputs three rows:
// the physical slots, the deletion flags of occupied slots, and the apparent
// (live) values.
//
// Neither of the arguments may be nil. However, it is safe to have config.Context
// set to nil. In this case, uax11.LatinContext is used.
func Output(s *Snapshot, out io.Writer, config *Config, format Format) error {
	if s == nil || out == nil || config == nil || format == nil {
		return errors.New("illegal argument: nil")
	} else if config.Context == nil {
		config.Context = uax11.LatinContext
	}
	width := 1
	measure := func(text string) {
		if w := displayWidth(text, config.Context); w > width {
			width = w
		}
	}
	for _, slot := range s.Slots {
		measure(slot.Text)
	}
	measure(UnusedText)
	tracer().P("format", "output").Debugf("%d slots, cell width %d", len(s.Slots), width)
	//
	slots := make([]cell, 0, len(s.Slots)+s.Unused)
	flags := make([]cell, 0, len(s.Slots))
	live := make([]cell, 0, len(s.Slots))
	for _, slot := range s.Slots {
		if slot.Deleted {
			slots = append(slots, cell{TombstoneText, Tombstone})
			flags = append(flags, cell{"1", Flag})
		} else {
			slots = append(slots, cell{slot.Text, Live})
			flags = append(flags, cell{"0", Flag})
			live = append(live, cell{slot.Text, Live})
		}
	}
	for i := 0; i < s.Unused; i++ {
		slots = append(slots, cell{UnusedText, Unused})
	}
	format.Preamble(out)
	r := row{width: width, linewidth: config.LineWidth, ctx: config.Context, format: format, w: out}
	r.output("slots", slots)
	r.output("removed", flags)
	r.output("apparent", live)
	format.Postamble(out)
	return nil
}

// Print outputs a snapshot to stdout.
//
// If parameter config is nil,
// a heuristic will create a config from the current terminal's properties (if
// stdout is interactive). Config.Context will also be created based on heuristics
// from the user environment.
func Print(s *Snapshot, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return Output(s, os.Stdout, config, NewConsole(nil))
}

// --- Rows ------------------------------------------------------------------

type cell struct {
	text string
	kind Kind
}

type row struct {
	width     int
	linewidth int
	ctx       *uax11.Context
	format    Format
	w         io.Writer
}

// output writes a labelled row of cells as "label [ c c c ]", continuing on
// indented lines whenever the line width would be exceeded.
func (r row) output(label string, cells []cell) {
	perLine := len(cells)
	if r.linewidth > 0 {
		perLine = (r.linewidth - labelWidth - 4) / (r.width + 1)
		if perLine < 1 {
			perLine = 1
		}
	}
	r.format.Label(pad(label, labelWidth, r.ctx, false)+"[", r.w)
	for i, c := range cells {
		if i > 0 && i%perLine == 0 {
			r.format.Newline(r.w)
			r.format.Label(strings.Repeat(" ", labelWidth+1), r.w)
		}
		r.format.Label(" ", r.w)
		r.format.Cell(pad(c.text, r.width, r.ctx, true), c.kind, r.w)
	}
	r.format.Label(" ]", r.w)
	r.format.Newline(r.w)
}

var setupGraphemes sync.Once

func displayWidth(text string, ctx *uax11.Context) int {
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(text)
	w := 0
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		// uax11 reports digits as wide, as they may start an emoji sequence
		if len(g) == 1 && g[0] >= 0x20 && g[0] < 0x7f {
			w++
			continue
		}
		w += uax11.Width([]byte(g), ctx)
	}
	return w
}

// pad fills text with spaces up to width display positions, either in front
// (right-aligned) or at the end.
func pad(text string, width int, ctx *uax11.Context, alignRight bool) string {
	n := width - displayWidth(text, ctx)
	if n <= 0 {
		return text
	}
	if alignRight {
		return strings.Repeat(" ", n) + text
	}
	return text + strings.Repeat(" ", n)
}
