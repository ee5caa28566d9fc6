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
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Console is a format for outputting snapshots to a console with
// a fixed width font. Cells are colored by kind.
type Console struct {
	colors map[Kind]*color.Color
}

// NewConsole creates a new console formatter.
//
// colors is a map from cell kinds to colors, used for display. It may contain
// just a subset of the kinds; cells of other kinds are output uncolored.
// If colors is nil, a default palette is used.
func NewConsole(colors map[Kind]*color.Color) *Console {
	if colors == nil {
		colors = makeDefaultPalette()
	}
	return &Console{colors: colors}
}

func makeDefaultPalette() map[Kind]*color.Color {
	palette := map[Kind]*color.Color{
		Live:      color.New(color.FgBlue),
		Tombstone: color.New(color.FgRed),
		Unused:    color.New(color.FgHiBlack),
	}
	return palette
}

// Preamble is part of interface Format. Console has nothing to output.
func (c *Console) Preamble(w io.Writer) {}

// Postamble is part of interface Format. Console has nothing to output.
func (c *Console) Postamble(w io.Writer) {}

// Label outputs uncolored text.
// (Part of interface Format)
func (c *Console) Label(s string, w io.Writer) {
	io.WriteString(w, s)
}

// Cell outputs a cell, colored according to its kind.
// (Part of interface Format)
func (c *Console) Cell(s string, kind Kind, w io.Writer) {
	if col, ok := c.colors[kind]; ok {
		col.Fprint(w, s)
		return
	}
	io.WriteString(w, s)
}

// Newline ends a line of output.
// (Part of interface Format)
func (c *Console) Newline(w io.Writer) {
	io.WriteString(w, "\n")
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating a formatting Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's width
// and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		w, _, err := term.GetSize(fd)
		if err != nil || w <= 20 {
			config.LineWidth = 80
		} else {
			config.LineWidth = w
		}
	} else {
		config.LineWidth = 0
	}
	tracer().P("format", "console").Infof("setting line length to %d en", config.LineWidth)
	return config
}
