// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"github.com/aclements/go-gg/gg/layout"
	"github.com/aclements/go-plotkit/plot"
	"github.com/aclements/go-plotkit/scene"
	"github.com/aclements/go-plotkit/style"
)

type box struct {
	x, y, w, h float64
}

func (b box) inset(d float64) box {
	return box{b.x + d, b.y + d, b.w - 2*d, b.h - 2*d}
}

// fixed is a layout element with a preferred size.
type fixed struct {
	layout.Leaf
	w, h         float64
	flexw, flexh bool
}

func (f *fixed) SizeHint() (w, h float64, flexw, flexh bool) {
	return f.w, f.h, f.flexw, f.flexh
}

// node is an item of the scene together with its layout element.
type node struct {
	item scene.Item
	elem layout.Element
	kids []*node
}

// buildLayout returns the layout tree of item. Figures are leaves of
// fixed size; grid boxes are go-gg layout grids.
func buildLayout(item scene.Item) *node {
	switch it := item.(type) {
	case *scene.Figure:
		w, h := figureSize(it)
		return &node{item: it, elem: &fixed{w: w, h: h}}
	case *scene.GridBox:
		g := new(layout.Grid)
		n := &node{item: it, elem: g}
		for _, c := range it.Children {
			if c.Item == nil {
				continue
			}
			k := buildLayout(c.Item)
			g.Add(k.elem, c.Col, c.Row, max(c.ColSpan, 1), max(c.RowSpan, 1))
			n.kids = append(n.kids, k)
		}
		return n
	}
	return &node{item: item, elem: &fixed{}}
}

// place lays out the tree rooted at n at its preferred size and
// returns that size.
func (n *node) place() (w, h float64) {
	w, h, _, _ = n.elem.SizeHint()
	n.elem.SetLayout(0, 0, w, h)
	return w, h
}

// visit calls f for n and each of its descendants with the item's
// absolute box. Layout positions are relative to the parent.
func (n *node) visit(ox, oy float64, f func(scene.Item, box)) {
	x, y, w, h := n.elem.Layout()
	b := box{ox + x, oy + y, w, h}
	f(n.item, b)
	for _, k := range n.kids {
		k.visit(b.x, b.y, f)
	}
}

// auxiliary reports whether fig is an axis strip or legend panel,
// which size themselves to their contents.
func auxiliary(fig *scene.Figure) bool {
	return fig.HasTag(plot.AxisStripTag) || fig.HasTag(plot.LegendPanelTag)
}

// figureSize returns the outer size of fig: its plot size, or the
// default size, plus margins, grown to fit its side elements.
func figureSize(fig *scene.Figure) (w, h float64) {
	var sideW, sideH float64
	for _, p := range fig.Elements {
		ew, eh, ok := sideHint(p.Elem, p.Place)
		if !ok {
			continue
		}
		switch p.Place {
		case scene.PlaceLeft, scene.PlaceRight:
			sideW += ew
			sideH = max(sideH, eh)
		case scene.PlaceAbove, scene.PlaceBelow:
			sideH += eh
			sideW = max(sideW, ew)
		}
	}
	w, h = float64(fig.Width), float64(fig.Height)
	if w == 0 && !auxiliary(fig) {
		w = DefaultWidth
	}
	if h == 0 && !auxiliary(fig) {
		h = DefaultHeight
	}
	pad := 2 * float64(fig.Margin+fig.MinBorder)
	return max(w, sideW) + pad, max(h, sideH) + pad
}

// sideHint returns the size of a layout element attached to a side
// of a figure. The size across the side is only a minimum. ok is
// false for elements that take no space.
func sideHint(item scene.Item, place scene.Place) (w, h float64, ok bool) {
	vertical := place == scene.PlaceLeft || place == scene.PlaceRight
	switch it := item.(type) {
	case *scene.Axis:
		if !it.Visible || place == scene.PlaceCenter {
			return 0, 0, false
		}
		depth := float64(tickLength + 2)
		if tf := fontSize(it.Style[scene.MajorLabelTextFontSize], 11); tf > 0 {
			if it.Dim == scene.Y {
				depth += tf*0.55*6 + 6
			} else {
				depth += tf + 4
			}
		}
		if it.Label != "" {
			depth += labelSize(it) + float64(it.LabelStandoff) + 6
		}
		if it.Dim == scene.Y {
			return depth, 0, true
		}
		return 0, depth, true

	case *scene.Title:
		if place == scene.PlaceCenter || place == scene.PlaceNone || it.Text == "" {
			return 0, 0, false
		}
		size := fontSize(it.Style[style.TextFontSize], 13) + 10
		length := textWidth(it.Text, size) + 10
		if vertical {
			return size, length, true
		}
		return length, size, true

	case *scene.Legend:
		if !it.Visible || len(it.Items) == 0 || place == scene.PlaceCenter || place == scene.PlaceNone {
			return 0, 0, false
		}
		lw, lh := legendSize(it)
		return lw, lh, true
	}
	return 0, 0, false
}

func labelSize(a *scene.Axis) float64 {
	if v, ok := a.LabelStyle[style.TextFontSize]; ok {
		return fontSize(v, 13)
	}
	return fontSize(a.Style[scene.AxisLabelFontSize], 13)
}

// Legend geometry.
const (
	legendRow    = 20
	legendGlyph  = 20
	legendPad    = 10
	legendFontSz = 12
)

func legendSize(l *scene.Legend) (w, h float64) {
	size := fontSize(l.LabelStyle[style.TextFontSize], legendFontSz)
	var widths []float64
	for _, it := range l.Items {
		widths = append(widths, legendGlyph+6+textWidth(legendText(it), size))
	}
	head := 0.0
	if l.Title != "" {
		head = legendRow
	}
	if l.Orientation == "horizontal" {
		for _, x := range widths {
			w += x + legendPad
		}
		return w + legendPad, legendRow + head + 2*legendPad
	}
	for _, x := range widths {
		w = max(w, x)
	}
	w = max(w, textWidth(l.Title, size))
	return w + 2*legendPad, float64(len(l.Items))*legendRow + head + 2*legendPad
}

// side is a layout element of a figure with its absolute box.
type side struct {
	item  scene.Item
	place scene.Place
	box   box
}

// figLayout is the geometry of one figure.
type figLayout struct {
	outer, plot box
	sides       []side
}

// layoutFigure lays out fig's side elements around its plot area
// within b. The first element attached to a side is nearest the plot
// area.
func layoutFigure(fig *scene.Figure, b box) figLayout {
	inner := b.inset(float64(fig.Margin + fig.MinBorder))
	counts := make(map[scene.Place]int)
	for _, p := range fig.Elements {
		if _, _, ok := sideHint(p.Elem, p.Place); ok {
			counts[p.Place]++
		}
	}
	nl, na := counts[scene.PlaceLeft], counts[scene.PlaceAbove]

	g := new(layout.Grid)
	center := &fixed{flexw: true, flexh: true}
	g.Add(center, nl, na, 1, 1)
	type placed struct {
		item  scene.Item
		place scene.Place
		elem  *fixed
	}
	var elems []placed
	seen := make(map[scene.Place]int)
	for _, p := range fig.Elements {
		w, h, ok := sideHint(p.Elem, p.Place)
		if !ok {
			continue
		}
		e := &fixed{w: w, h: h}
		i := seen[p.Place]
		seen[p.Place]++
		switch p.Place {
		case scene.PlaceLeft:
			e.flexh = true
			g.Add(e, nl-1-i, na, 1, 1)
		case scene.PlaceRight:
			e.flexh = true
			g.Add(e, nl+1+i, na, 1, 1)
		case scene.PlaceAbove:
			e.flexw = true
			g.Add(e, nl, na-1-i, 1, 1)
		case scene.PlaceBelow:
			e.flexw = true
			g.Add(e, nl, na+1+i, 1, 1)
		}
		elems = append(elems, placed{p.Elem, p.Place, e})
	}
	g.SetLayout(0, 0, inner.w, inner.h)

	abs := func(e layout.Element) box {
		x, y, w, h := e.Layout()
		return box{inner.x + x, inner.y + y, w, h}
	}
	fl := figLayout{outer: b, plot: abs(center)}
	for _, p := range fig.Elements {
		if p.Place == scene.PlaceCenter {
			fl.sides = append(fl.sides, side{p.Elem, p.Place, fl.plot})
		}
	}
	for _, e := range elems {
		fl.sides = append(fl.sides, side{e.item, e.place, abs(e.elem)})
	}
	return fl
}
