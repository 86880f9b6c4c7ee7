// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/aclements/go-plotkit/style"

// Placed is a layout element attached to a side of a figure.
type Placed struct {
	Place Place
	Elem  Item
}

// Figure is a single plot area with its axes, titles, legends and
// glyph renderers.
type Figure struct {
	Model
	Width, Height int
	MinBorder     int
	Margin        int
	Background    string

	XRange, YRange *Range
	XScale, YScale Scale

	Renderers []*GlyphRenderer
	Elements  []Placed
	Toolbar   *Toolbar
}

// NewFigure returns an empty figure with data ranges and linear
// scales.
func NewFigure() *Figure {
	return &Figure{
		Model:      newModel(),
		MinBorder:  2,
		Background: style.Background,
		XRange:     NewDataRange(),
		YRange:     NewDataRange(),
		XScale:     ScaleLinear,
		YScale:     ScaleLinear,
		Toolbar:    NewToolbar(),
	}
}

// AddGlyph adds a renderer drawing glyph for every row of src.
func (f *Figure) AddGlyph(src *Source, glyph Glyph, opts RendererOptions) *GlyphRenderer {
	r := &GlyphRenderer{
		Model:   newModel(),
		Source:  src,
		Glyph:   glyph,
		Level:   opts.Level,
		Visible: true,
	}
	r.Name = opts.Name
	r.Tags = append([]string(nil), opts.Tags...)
	f.Renderers = append(f.Renderers, r)
	return r
}

// AddLayout attaches elem to the given side of f. elem is typically
// an *Axis, *GridLines, *Legend or *Title.
func (f *Figure) AddLayout(elem Item, place Place) {
	f.Elements = append(f.Elements, Placed{place, elem})
}

// At returns the elements attached to place, in the order they were
// added.
func (f *Figure) At(place Place) []Item {
	var out []Item
	for _, p := range f.Elements {
		if p.Place == place {
			out = append(out, p.Elem)
		}
	}
	return out
}

// Axes returns f's axes along dim.
func (f *Figure) Axes(dim Dim) []*Axis {
	var out []*Axis
	for _, p := range f.Elements {
		if a, ok := p.Elem.(*Axis); ok && a.Dim == dim {
			out = append(out, a)
		}
	}
	return out
}

// Legends returns f's legends.
func (f *Figure) Legends() []*Legend {
	var out []*Legend
	for _, p := range f.Elements {
		if l, ok := p.Elem.(*Legend); ok {
			out = append(out, l)
		}
	}
	return out
}

// Select returns every renderer, layout element and tool of f tagged
// with tag.
func (f *Figure) Select(tag string) []Item {
	var out []Item
	if f.HasTag(tag) {
		out = append(out, f)
	}
	for _, r := range f.Renderers {
		if r.HasTag(tag) {
			out = append(out, r)
		}
	}
	for _, p := range f.Elements {
		if p.Elem.Base().HasTag(tag) {
			out = append(out, p.Elem)
		}
	}
	if f.Toolbar != nil {
		for _, t := range f.Toolbar.Tools {
			if t.HasTag(tag) {
				out = append(out, t)
			}
		}
	}
	return out
}

// SelectRenderers returns f's renderers tagged with tag.
func (f *Figure) SelectRenderers(tag string) []*GlyphRenderer {
	var out []*GlyphRenderer
	for _, r := range f.Renderers {
		if r.HasTag(tag) {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns a shallow copy of f with a new identity. Renderers,
// elements and ranges are shared with f; the slices holding them are
// not.
func (f *Figure) Clone() *Figure {
	c := *f
	c.Model = f.Model.clone()
	c.Renderers = append([]*GlyphRenderer(nil), f.Renderers...)
	c.Elements = append([]Placed(nil), f.Elements...)
	if f.Toolbar != nil {
		tb := *f.Toolbar
		tb.Tools = append([]*Tool(nil), f.Toolbar.Tools...)
		c.Toolbar = &tb
	}
	return &c
}

// GridChild is a cell of a GridBox. Item is a *Figure, a *GridBox or
// nil for an empty cell.
type GridChild struct {
	Item             Item
	Row, Col         int
	RowSpan, ColSpan int
}

// GridBox lays out figures and nested grids in rows and columns.
type GridBox struct {
	Model
	Children   []GridChild
	Toolbar    *Toolbar
	Spacing    int
	Width      int
	Height     int
	Background string
}

// NewGridBox returns a grid holding children.
func NewGridBox(children ...GridChild) *GridBox {
	return &GridBox{Model: newModel(), Children: children, Background: style.Background}
}

// Size returns the number of rows and columns spanned by g's
// children.
func (g *GridBox) Size() (rows, cols int) {
	for _, c := range g.Children {
		rs, cs := c.RowSpan, c.ColSpan
		if rs < 1 {
			rs = 1
		}
		if cs < 1 {
			cs = 1
		}
		if c.Row+rs > rows {
			rows = c.Row + rs
		}
		if c.Col+cs > cols {
			cols = c.Col + cs
		}
	}
	return
}

// Figures returns every figure in g, recursively, in child order.
func (g *GridBox) Figures() []*Figure {
	var out []*Figure
	for _, c := range g.Children {
		switch it := c.Item.(type) {
		case *Figure:
			out = append(out, it)
		case *GridBox:
			out = append(out, it.Figures()...)
		}
	}
	return out
}

// Select returns every item in g tagged with tag, searching nested
// figures and grids.
func (g *GridBox) Select(tag string) []Item {
	var out []Item
	if g.HasTag(tag) {
		out = append(out, g)
	}
	for _, c := range g.Children {
		switch it := c.Item.(type) {
		case *Figure:
			out = append(out, it.Select(tag)...)
		case *GridBox:
			out = append(out, it.Select(tag)...)
		}
	}
	if g.Toolbar != nil {
		for _, t := range g.Toolbar.Tools {
			if t.HasTag(tag) {
				out = append(out, t)
			}
		}
	}
	return out
}
