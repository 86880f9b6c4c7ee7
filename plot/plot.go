// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot composes glyphs into figures and grids of figures.
//
// A Plot is a template: it holds a data table, a list of glyphs, an
// optional facet and the configuration of its axes, titles, legend
// and layout. Every builder method returns a modified copy, and
// Render produces a fresh scene each time it is called.
//
// A faceted Plot renders as a GridPlot with one child per facet. Each
// child shares the plot's table and restricts its glyphs to its facet
// with a filter.
package plot

import (
	"errors"
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/glyph"
	"github.com/aclements/go-plotkit/scene"
)

// ErrNoData is returned when a plot without data is faceted.
var ErrNoData = errors.New("faceting requires a data table")

// HoverTooltips is the tooltip template of the hover tool. It shows
// the per-row tooltips computed by the glyph renderer.
const HoverTooltips = "<div>@{" + glyph.TooltipColumn + "}</div>"

// A Renderable renders to a figure or a grid of figures.
type Renderable interface {
	Render() (*Rendered, error)
}

// Rendered is the result of rendering a Plot or GridPlot.
type Rendered struct {
	// Item is a *scene.Figure or a *scene.GridBox.
	Item scene.Item

	// Legend holds the legend items of the rendered glyphs. For a
	// grid it is the merged legend of all children, or nil.
	Legend *scene.Legend
}

// Figure returns the rendered figure, or nil if r is a grid.
func (r *Rendered) Figure() *scene.Figure {
	f, _ := r.Item.(*scene.Figure)
	return f
}

// Plot is a plot template. The zero Plot is an empty plot with no
// data.
type Plot struct {
	data   *table.Table
	glyphs []glyph.Glyph
	facet  *facet

	// filter restricts the rows of a facet child.
	filter map[string]interface{}

	// parent is borrowed, never copied. Render clones it.
	parent *scene.Figure

	layout           Layout
	title, secondary TitleSpec
	xAxis, yAxis     AxisSpec
	xGrid, yGrid     *GridLineSpec
	legend           LegendSpec

	before []func(*scene.Figure)
	after  []func(*Rendered)
}

// New returns an empty plot of data. data may be nil.
func New(data *table.Table) Plot {
	return Plot{data: data}
}

// Data returns p's table.
func (p Plot) Data() *table.Table { return p.data }

// Glyphs returns p's glyphs.
func (p Plot) Glyphs() []glyph.Glyph {
	return append([]glyph.Glyph(nil), p.glyphs...)
}

// Add returns p with glyphs appended. Nil glyphs are skipped, so
// optional glyphs can be written inline.
func (p Plot) Add(glyphs ...glyph.Glyph) Plot {
	gs := append([]glyph.Glyph(nil), p.glyphs...)
	for _, g := range glyphs {
		if g != nil {
			gs = append(gs, g)
		}
	}
	p.glyphs = gs
	return p
}

// WithData returns p drawing data.
func (p Plot) WithData(data *table.Table) Plot {
	p.data = data
	return p
}

// WithParent returns p drawing into a clone of fig rather than a new
// figure. fig itself is never modified.
func (p Plot) WithParent(fig *scene.Figure) Plot {
	p.parent = fig
	return p
}

// WithTitle merges s into p's title. Non-zero fields of s replace
// those of the current title.
func (p Plot) WithTitle(s TitleSpec) Plot {
	p.title = p.title.merge(s)
	return p
}

// WithSecondaryTitle merges s into p's secondary title, which is
// hidden unless given a placement.
func (p Plot) WithSecondaryTitle(s TitleSpec) Plot {
	p.secondary = p.secondary.merge(s)
	return p
}

// WithLegendLayout sets p's legend configuration.
func (p Plot) WithLegendLayout(s LegendSpec) Plot {
	p.legend = s
	return p
}

// WithXAxis sets p's x axis configuration.
func (p Plot) WithXAxis(s AxisSpec) Plot {
	p.xAxis = s
	return p
}

// WithYAxis sets p's y axis configuration.
func (p Plot) WithYAxis(s AxisSpec) Plot {
	p.yAxis = s
	return p
}

// WithXGrid shows x grid lines.
func (p Plot) WithXGrid(s GridLineSpec) Plot {
	p.xGrid = &s
	return p
}

// WithYGrid shows y grid lines.
func (p Plot) WithYGrid(s GridLineSpec) Plot {
	p.yGrid = &s
	return p
}

// WithLayout sets p's figure layout.
func (p Plot) WithLayout(l Layout) Plot {
	p.layout = l
	return p
}

// OnBeforeRender returns p with f called on each new figure after its
// grid lines are added and before its axes and glyphs.
func (p Plot) OnBeforeRender(f func(*scene.Figure)) Plot {
	p.before = append(append(([]func(*scene.Figure))(nil), p.before...), f)
	return p
}

// OnAfterRender returns p with f called on each rendered figure.
// Faceted plots call f once per facet.
func (p Plot) OnAfterRender(f func(*Rendered)) Plot {
	p.after = append(append(([]func(*Rendered))(nil), p.after...), f)
	return p
}

// Validate reports configuration errors that Render would fail on.
func (p Plot) Validate() error {
	if p.facet != nil && p.data == nil {
		return ErrNoData
	}
	if err := p.xAxis.validate(); err != nil {
		return fmt.Errorf("x axis: %w", err)
	}
	if err := p.yAxis.validate(); err != nil {
		return fmt.Errorf("y axis: %w", err)
	}
	for _, g := range p.glyphs {
		if v, ok := g.(interface{ Validate() error }); ok {
			if err := v.Validate(); err != nil {
				return err
			}
		}
	}
	if p.facet != nil {
		if err := p.facet.layout.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Render renders p to a figure, or to a grid if p is faceted.
func (p Plot) Render() (*Rendered, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if p.facet != nil {
		g, err := p.facetGrid()
		if err != nil {
			return nil, err
		}
		return g.Render()
	}
	return p.renderFigure()
}

// Draw draws p's glyphs onto c. If p has data, its glyphs are
// resolved against it instead of c.Data. This lets a Plot be used as
// a layer of another Plot.
func (p Plot) Draw(c *glyph.Canvas) error {
	if p.data != nil {
		cc := *c
		cc.Data = p.data
		c = &cc
	}
	for _, g := range p.glyphs {
		if err := g.Draw(c); err != nil {
			return err
		}
	}
	return nil
}

func (p Plot) renderFigure() (*Rendered, error) {
	var fig *scene.Figure
	if p.parent != nil {
		fig = p.parent.Clone()
	} else {
		fig = scene.NewFigure()
	}
	p.layout.apply(fig)

	if g := makeGridLines(p.xGrid, scene.X); g != nil {
		fig.AddLayout(g, scene.PlaceCenter)
	}
	if g := makeGridLines(p.yGrid, scene.Y); g != nil {
		fig.AddLayout(g, scene.PlaceCenter)
	}

	for _, f := range p.before {
		f(fig)
	}

	var err error
	xa, xm := makeAxis(p.xAxis, scene.X)
	if xa != nil {
		fig.AddLayout(xa, scene.PlaceBelow)
	}
	if xm != nil {
		fig.AddLayout(xm, scene.PlaceAbove)
	}
	fig.XScale = makeScale(p.xAxis)
	if fig.XRange, err = makeRange(p.xAxis); err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}

	ya, ym := makeAxis(p.yAxis, scene.Y)
	if ya != nil {
		fig.AddLayout(ya, scene.PlaceLeft)
	}
	if ym != nil {
		fig.AddLayout(ym, scene.PlaceRight)
	}
	fig.YScale = makeScale(p.yAxis)
	if fig.YRange, err = makeRange(p.yAxis); err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}

	if t, place := makeTitle(p.title, scene.PlaceAbove); t != nil {
		fig.AddLayout(t, place)
	}
	if t, place := makeTitle(p.secondary, scene.PlaceNone); t != nil {
		fig.AddLayout(t, place)
	}

	legend := scene.NewLegend()
	c := &glyph.Canvas{Figure: fig, Legend: legend, Data: p.data, Filter: p.filter}
	for _, g := range p.glyphs {
		if err := g.Draw(c); err != nil {
			return nil, err
		}
	}

	applyLegend(p.legend, legend)
	if place := p.legend.placement(); place != scene.PlaceNone {
		fig.AddLayout(legend, place)
	}

	fig.Toolbar = figureToolbar(fig)

	r := &Rendered{Item: fig, Legend: legend}
	for _, f := range p.after {
		f(r)
	}
	return r, nil
}

func figureToolbar(fig *scene.Figure) *scene.Toolbar {
	hover := scene.NewTool(scene.Hover)
	hover.Tooltips = HoverTooltips
	hover.Renderers = fig.SelectRenderers(glyph.TooltipTag)
	zoom := scene.NewTool(scene.BoxZoom)

	tb := scene.NewToolbar()
	tb.Tools = []*scene.Tool{
		hover,
		zoom,
		scene.NewTool(scene.Copy),
		scene.NewTool(scene.Reset),
		scene.NewTool(scene.Pan),
	}
	tb.ActiveDrag = zoom
	tb.Location = scene.PlaceLeft
	return tb
}
