// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import "github.com/aclements/go-plotkit/style"

// A Label is the text of a legend item. Labels compare by value: two
// items with equal labels describe the same entry.
type Label struct {
	// Field is true if Text names a source column whose values
	// label the item, rather than being the label itself.
	Field bool
	Text  string
}

// ValueLabel returns a literal label.
func ValueLabel(text string) Label { return Label{Text: text} }

// LegendItem binds a label to the renderers it describes.
type LegendItem struct {
	Model
	Label     Label
	Renderers []*GlyphRenderer

	// Index is the row of the first renderer's source the item
	// was created from, or -1.
	Index int
}

// NewLegendItem returns an item for label drawn with renderers.
func NewLegendItem(label Label, renderers ...*GlyphRenderer) *LegendItem {
	return &LegendItem{Model: newModel(), Label: label, Renderers: renderers, Index: -1}
}

// Legend is an ordered list of items.
type Legend struct {
	Model
	Items       []*LegendItem
	Location    string
	Orientation string
	NCols       int
	NRows       int
	Title       string
	TitleStyle  style.Props
	LabelStyle  style.Props
	Background  string
	Visible     bool
}

// NewLegend returns an empty, visible legend.
func NewLegend() *Legend {
	return &Legend{
		Model:       newModel(),
		Location:    "top_left",
		Orientation: "vertical",
		TitleStyle:  style.Props{},
		LabelStyle:  style.Props{},
		Background:  style.Background,
		Visible:     true,
	}
}

// Find returns the item with the given label, or nil.
func (l *Legend) Find(label Label) *LegendItem {
	for _, it := range l.Items {
		if it.Label == label {
			return it
		}
	}
	return nil
}

// Add appends r to the item labeled label, creating the item if
// needed.
func (l *Legend) Add(label Label, r *GlyphRenderer, index int) *LegendItem {
	if it := l.Find(label); it != nil {
		it.Renderers = append(it.Renderers, r)
		return it
	}
	it := NewLegendItem(label, r)
	it.Index = index
	l.Items = append(l.Items, it)
	return it
}

// Clone returns a copy of l with copies of its items. Renderers are
// shared.
func (l *Legend) Clone() *Legend {
	c := *l
	c.Model = l.Model.clone()
	c.TitleStyle = l.TitleStyle.Merge()
	c.LabelStyle = l.LabelStyle.Merge()
	c.Items = make([]*LegendItem, len(l.Items))
	for i, it := range l.Items {
		ci := *it
		ci.Model = it.Model.clone()
		ci.Renderers = append([]*GlyphRenderer(nil), it.Renderers...)
		c.Items[i] = &ci
	}
	return &c
}
