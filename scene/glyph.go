// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/aclements/go-plotkit/style"

// Kind is the type of mark drawn by a glyph.
type Kind string

const (
	Scatter Kind = "scatter"
	Line    Kind = "line"
	VSpan   Kind = "vspan"   // x
	HSpan   Kind = "hspan"   // y
	Segment Kind = "segment" // x0, y0, x1, y1
	Ray     Kind = "ray"     // x, y; angle (degrees), length
	Step    Kind = "step"    // x, y; mode
	VBar    Kind = "vbar"    // x, top; bottom, width
	HBar    Kind = "hbar"    // y, right; left, height
	Quad    Kind = "quad"    // left, right, top, bottom
	VArea   Kind = "varea"   // x, y1, y2
	HArea   Kind = "harea"   // y, x1, x2
	Text    Kind = "text"    // x, y, text
)

// A Glyph describes the mark drawn for each row of a renderer's
// source.
//
// Fields maps channels to source columns. Values maps channels to
// constants. A channel may appear in either but not both. Style holds
// visual properties; a style value of type FieldRef names a source
// column holding per-row values.
type Glyph struct {
	Kind   Kind
	Fields map[string]string
	Values map[string]interface{}
	Style  style.Props
}

// Glyph value keys understood by every kind.
const (
	// JitterValue holds a Jitter.
	JitterValue = "jitter"

	// DodgeValue shifts categorical positions by a fraction of a
	// category's width.
	DodgeValue = "dodge"

	// LowerHead and UpperHead give the width, in pixels, of a tee
	// drawn across the start and end of a segment.
	LowerHead = "lower_head"
	UpperHead = "upper_head"
)

// FieldRef is a style value that refers to a source column.
type FieldRef string

// Clone returns a deep copy of g.
func (g Glyph) Clone() Glyph {
	c := Glyph{Kind: g.Kind, Style: g.Style.Merge()}
	c.Fields = make(map[string]string, len(g.Fields))
	for k, v := range g.Fields {
		c.Fields[k] = v
	}
	c.Values = make(map[string]interface{}, len(g.Values))
	for k, v := range g.Values {
		c.Values[k] = v
	}
	return c
}

// Channel returns the column or constant bound to channel ch.
func (g Glyph) Channel(ch string) (col string, val interface{}, ok bool) {
	if col, ok := g.Fields[ch]; ok {
		return col, nil, true
	}
	if val, ok := g.Values[ch]; ok {
		return "", val, true
	}
	return "", nil, false
}

// GlyphRenderer draws a glyph for every row of a source.
type GlyphRenderer struct {
	Model
	Source  *Source
	Glyph   Glyph
	Level   Level
	Visible bool
}

// RendererOptions are the options of Figure.AddGlyph.
type RendererOptions struct {
	Name  string
	Tags  []string
	Level Level
}

// Jitter displaces the points of a scatter glyph along a categorical
// axis by a random offset, in category widths.
type Jitter struct {
	Width        float64
	Mean         float64
	Distribution string // "uniform" or "normal"
}
