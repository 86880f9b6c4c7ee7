// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"strings"

	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/internal/frame"
	"github.com/aclements/go-plotkit/scene"
)

type facetKind int

const (
	facetWrap facetKind = iota
	facetGrid
)

type facet struct {
	kind facetKind

	// by lists the wrap columns.
	by    []string
	nCols int

	// col and row are the grid columns.
	col, row string

	layout GridLayout
}

// WithFacetNone removes p's facet.
func (p Plot) WithFacetNone() Plot {
	p.facet = nil
	return p
}

// WithFacetWrap facets p by the distinct combinations of columns by.
// The facets are laid out in row-major order in nCols columns; if
// nCols is 0 it is the smaller of 3 and the number of facets. Each
// facet is titled with its values joined by commas.
func (p Plot) WithFacetWrap(by []string, nCols int, layout GridLayout) Plot {
	p.facet = &facet{kind: facetWrap, by: append([]string(nil), by...), nCols: nCols, layout: layout}
	return p
}

// WithFacetGrid facets p by the values of two columns: one grid
// column per distinct value of col and one grid row per distinct
// value of row. The top row is titled "col=value" and the rightmost
// column carries a secondary title "row=value".
//
// If layout is nil, the grid is 600 by 600 with shared x and y axes.
func (p Plot) WithFacetGrid(col, row string, layout *GridLayout) Plot {
	l := GridLayout{Width: 600, Height: 600, SharedX: true, SharedY: true}
	if layout != nil {
		l = *layout
	}
	p.facet = &facet{kind: facetGrid, col: col, row: row, layout: l}
	return p
}

// child returns p restricted to the rows matching filter.
func (p Plot) child(filter map[string]interface{}) Plot {
	c := p
	c.facet = nil
	c.filter = filter
	return c
}

// facetGrid expands p's facet into a GridPlot.
func (p Plot) facetGrid() (GridPlot, error) {
	if p.data == nil {
		return GridPlot{}, ErrNoData
	}
	f := p.facet
	switch f.kind {
	case facetGrid:
		return p.facetByGrid(f)
	}
	return p.facetByWrap(f)
}

func (p Plot) facetByWrap(f *facet) (GridPlot, error) {
	for _, col := range f.by {
		if p.data.Column(col) == nil {
			return GridPlot{}, &field.MissingColumnError{Name: col}
		}
	}
	var children []Renderable
	for _, combo := range frame.Distinct(p.data, f.by...) {
		filter := make(map[string]interface{}, len(f.by))
		labels := make([]string, len(f.by))
		for i, col := range f.by {
			filter[col] = combo[i]
			labels[i] = frame.Format(combo[i])
		}
		c := p.child(filter).WithTitle(TitleSpec{Text: strings.Join(labels, ",")})
		children = append(children, c)
	}
	nCols := f.nCols
	if nCols == 0 {
		nCols = min(len(children), 3)
	}
	return NewGrid(children, nCols, f.layout), nil
}

func (p Plot) facetByGrid(f *facet) (GridPlot, error) {
	colVals, err := p.sortedValues(f.col)
	if err != nil {
		return GridPlot{}, err
	}
	rowVals, err := p.sortedValues(f.row)
	if err != nil {
		return GridPlot{}, err
	}

	rows := make([][]Renderable, len(rowVals))
	for i, rv := range rowVals {
		rows[i] = make([]Renderable, len(colVals))
		for j, cv := range colVals {
			c := p.child(map[string]interface{}{f.row: rv, f.col: cv})
			// Cleared titles must be cleared explicitly, or the
			// parent's title would show through.
			if i == 0 {
				c.title = c.title.merge(TitleSpec{Text: f.col + "=" + frame.Format(cv), Placement: scene.PlaceAbove})
			} else {
				c.title.Placement = scene.PlaceNone
			}
			if j == len(colVals)-1 {
				c.secondary = c.secondary.merge(TitleSpec{Text: f.row + "=" + frame.Format(rv), Placement: scene.PlaceRight})
			} else {
				c.secondary.Placement = scene.PlaceNone
			}
			rows[i][j] = c
		}
	}
	return NewGrid(flatten(rows), len(colVals), f.layout), nil
}

func (p Plot) sortedValues(col string) ([]interface{}, error) {
	c := p.data.Column(col)
	if c == nil {
		return nil, &field.MissingColumnError{Name: col}
	}
	return frame.SortedUnique(c), nil
}
