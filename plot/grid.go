// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"errors"
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/glyph"
	"github.com/aclements/go-plotkit/scene"
	"github.com/aclements/go-plotkit/style"
)

// ErrNestedGrid is returned when a grid cell renders to a grid.
var ErrNestedGrid = errors.New("grid cells must render to a single figure")

// Tags of the synthetic figures added around a grid.
const (
	AxisStripTag   = "__plotkit.grid.axis_strip__"
	LegendPanelTag = "__plotkit.grid.legend_panel__"
)

// axisReserve is the space, in pixels, an auto-sized grid reserves
// for the tick labels of a shared axis.
const axisReserve = 20

// Sizes gives the size of each row or column of a grid as a fraction
// of the grid's size. The zero Sizes sizes rows or columns
// automatically.
type Sizes struct {
	// Fraction, if non-zero, is the size of every row or column.
	Fraction float64

	// List, if non-nil, gives each row or column its own size.
	List []float64
}

// Uniform returns Sizes giving every row or column fraction f.
func Uniform(f float64) Sizes { return Sizes{Fraction: f} }

// Fractions returns Sizes giving row or column i fraction fs[i].
func Fractions(fs ...float64) Sizes { return Sizes{List: fs} }

// IsAuto reports whether s is automatic.
func (s Sizes) IsAuto() bool { return s.Fraction == 0 && s.List == nil }

// A SizeError is an invalid row or column size.
type SizeError struct {
	// What is "rows" or "cols".
	What string

	// Fraction is the invalid uniform fraction. If it is zero,
	// the error is a list of Got sizes for Want rows or columns.
	Fraction  float64
	Got, Want int
}

func (e *SizeError) Error() string {
	if e.Fraction != 0 {
		return fmt.Sprintf("grid %s fraction %v must be in (0, 1)", e.What, e.Fraction)
	}
	return fmt.Sprintf("grid has %d %s but %d %s sizes", e.Want, e.What, e.Got, e.What)
}

func (s Sizes) checkFraction(what string) error {
	if s.List == nil && s.Fraction != 0 && (s.Fraction <= 0 || s.Fraction >= 1) {
		return &SizeError{What: what, Fraction: s.Fraction}
	}
	return nil
}

func (s Sizes) resolve(what string, n int) ([]float64, error) {
	if err := s.checkFraction(what); err != nil {
		return nil, err
	}
	if s.List != nil {
		if len(s.List) != n {
			return nil, &SizeError{What: what, Got: len(s.List), Want: n}
		}
		return append([]float64(nil), s.List...), nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Fraction
	}
	return out, nil
}

// GridLayout configures a GridPlot. Zero Width and Height default to
// 600 and a zero Margin defaults to DefaultMargin.
type GridLayout struct {
	Width, Height int
	Rows, Cols    Sizes

	// SharedX shares x ranges down each column and SharedY shares
	// y ranges across each row. Only one cell of each shared line
	// keeps its tick labels.
	SharedX, SharedY bool

	// Margin is the space around each cell.
	Margin int
}

func (l GridLayout) withDefaults() GridLayout {
	if l.Width == 0 {
		l.Width = 600
	}
	if l.Height == 0 {
		l.Height = 600
	}
	if l.Margin == 0 {
		l.Margin = DefaultMargin
	}
	return l
}

func (l GridLayout) validate() error {
	if err := l.Rows.checkFraction("rows"); err != nil {
		return err
	}
	return l.Cols.checkFraction("cols")
}

// AutoRows returns the row size fractions of a grid of nRows rows and
// nCols columns holding nEls cells, height pixels high.
//
// With a shared x axis, the bottom row of each column carries the
// axis's tick labels and gets extra room for them. If the last row is
// partly empty, the columns above its gaps end one row higher, so the
// second-to-last row gets the same extra room.
func AutoRows(nEls, nRows, nCols, height int, sharedX bool) []float64 {
	if nRows == 0 {
		return nil
	}
	fr := make([]float64, nRows)
	if !sharedX {
		for i := range fr {
			fr[i] = 1 / float64(nRows)
		}
		return fr
	}
	axis := axisReserve / float64(height)
	if nEls%nCols == 0 || nRows < 2 {
		for i := range fr {
			fr[i] = (1 - axis) / float64(nRows)
		}
		fr[nRows-1] += axis
		return fr
	}
	for i := range fr {
		fr[i] = (1 - 2*axis) / float64(nRows)
	}
	fr[nRows-1] += axis
	fr[nRows-2] += axis
	return fr
}

// AutoCols returns the column size fractions of a grid of nCols
// columns, width pixels wide. With a shared y axis, the first column
// gets extra room for the axis's tick labels.
func AutoCols(nCols, width int, sharedY bool) []float64 {
	if nCols == 0 {
		return nil
	}
	fr := make([]float64, nCols)
	if !sharedY {
		for i := range fr {
			fr[i] = 1 / float64(nCols)
		}
		return fr
	}
	axis := axisReserve / float64(width)
	for i := range fr {
		fr[i] = (1 - axis) / float64(nCols)
	}
	fr[0] += axis
	return fr
}

// GridPlot lays out renderables in a grid. Cells are filled in
// row-major order; nil children leave their cell empty.
type GridPlot struct {
	children []Renderable
	nCols    int
	layout   GridLayout
}

// NewGrid returns a grid of children in nCols columns.
func NewGrid(children []Renderable, nCols int, layout GridLayout) GridPlot {
	return GridPlot{children: append([]Renderable(nil), children...), nCols: nCols, layout: layout}
}

// GridOf returns a grid of the given rows. The number of columns is
// the length of the first row.
func GridOf(rows [][]Renderable, sharedX, sharedY bool, height, width int) GridPlot {
	nCols := 0
	if len(rows) > 0 {
		nCols = len(rows[0])
	}
	return NewGrid(flatten(rows), nCols, GridLayout{
		Width:   width,
		Height:  height,
		SharedX: sharedX,
		SharedY: sharedY,
	})
}

func flatten(rows [][]Renderable) []Renderable {
	var out []Renderable
	for _, r := range rows {
		out = append(out, r...)
	}
	return out
}

// Children returns g's children.
func (g GridPlot) Children() []Renderable {
	return append([]Renderable(nil), g.children...)
}

// NCols returns the number of columns of g.
func (g GridPlot) NCols() int { return g.nCols }

// NRows returns the number of rows of g.
func (g GridPlot) NRows() int {
	if g.nCols <= 0 {
		return 0
	}
	return (len(g.children) + g.nCols - 1) / g.nCols
}

// Reshape returns g laid out in nCols columns.
func (g GridPlot) Reshape(nCols int) GridPlot {
	g.nCols = nCols
	return g
}

// WithLayout returns g with layout l.
func (g GridPlot) WithLayout(l GridLayout) GridPlot {
	g.layout = l
	return g
}

// Layout returns g's layout.
func (g GridPlot) Layout() GridLayout { return g.layout }

// Validate reports layout errors that Render would fail on.
func (g GridPlot) Validate() error {
	if g.nCols < 0 || g.nCols == 0 && len(g.children) > 0 {
		return fmt.Errorf("grid of %d cells has %d columns", len(g.children), g.nCols)
	}
	for _, c := range g.children {
		switch c := c.(type) {
		case GridPlot, *GridPlot:
			return ErrNestedGrid
		case Plot:
			if c.facet != nil {
				return ErrNestedGrid
			}
		}
	}
	if _, err := g.layout.Rows.resolve("rows", g.NRows()); err != nil {
		return err
	}
	_, err := g.layout.Cols.resolve("cols", g.nCols)
	return err
}

// Render renders g's children into a grid box.
//
// Each child's legend is removed from its figure and merged into a
// single legend beside the grid, and the children's tools are merged
// into one grid toolbar. If an axis is shared, the axis label is
// moved to a strip alongside the grid.
func (g GridPlot) Render() (*Rendered, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	l := g.layout.withDefaults()
	nRows, nCols := g.NRows(), g.nCols

	cells := make([]*scene.Figure, nRows*nCols)
	var figs []*scene.Figure
	var legends []*scene.Legend
	var tools []*scene.Tool
	for i, c := range g.children {
		if c == nil {
			continue
		}
		r, err := c.Render()
		if err != nil {
			return nil, fmt.Errorf("grid cell %d: %w", i, err)
		}
		fig := r.Figure()
		if fig == nil {
			return nil, ErrNestedGrid
		}
		if r.Legend != nil && detach(fig, r.Legend) {
			legends = append(legends, r.Legend)
		}
		if fig.Toolbar != nil {
			fig.Toolbar.Location = scene.PlaceNone
			tools = append(tools, fig.Toolbar.Tools...)
		}
		cells[i] = fig
		figs = append(figs, fig)
	}

	rowFr, err := l.Rows.resolve("rows", nRows)
	if err != nil {
		return nil, err
	}
	if l.Rows.IsAuto() {
		rowFr = AutoRows(len(figs), nRows, nCols, l.Height, l.SharedX)
	}
	colFr, err := l.Cols.resolve("cols", nCols)
	if err != nil {
		return nil, err
	}
	if l.Cols.IsAuto() {
		colFr = AutoCols(nCols, l.Width, l.SharedY)
	}
	for idx, fig := range cells {
		if fig == nil {
			continue
		}
		fig.Margin = l.Margin
		fig.Height = int(float64(l.Height)*rowFr[idx/nCols]) - 2*l.Margin
		fig.Width = int(float64(l.Width)*colFr[idx%nCols]) - 2*l.Margin
	}

	// The axis strips copy the first cell's axes before sharing
	// clears their labels.
	var xProto, yProto *scene.Axis
	if len(figs) > 0 {
		xProto = onlyAxis(figs[0], scene.PlaceBelow)
		yProto = onlyAxis(figs[0], scene.PlaceLeft)
	}
	if l.SharedX {
		for j := 0; j < nCols; j++ {
			var line []*scene.Figure
			for i := nRows - 1; i >= 0; i-- {
				line = append(line, cells[i*nCols+j])
			}
			shareLine(line, scene.X)
		}
	}
	if l.SharedY {
		for i := 0; i < nRows; i++ {
			shareLine(cells[i*nCols:(i+1)*nCols], scene.Y)
		}
	}

	var kids []scene.GridChild
	for idx, fig := range cells {
		if fig != nil {
			kids = append(kids, cell(fig, idx/nCols, idx%nCols))
		}
	}
	inner := scene.NewGridBox(kids...)
	inner.Toolbar = copyToolbar()
	inner.Width = l.Width + 30
	inner.Height = l.Height
	box := inner

	var strips []scene.GridChild
	if l.SharedX && xProto != nil {
		strips = append(strips, cell(axisStrip(xProto, scene.PlaceBelow, inner.Width, 0), 1, 1))
	}
	if l.SharedY && yProto != nil {
		strips = append(strips, cell(axisStrip(yProto, scene.PlaceLeft, 0, inner.Height), 0, 0))
	}
	if len(strips) > 0 {
		box = wrap(append(strips, cell(inner, 0, 1))...)
	}

	var merged *scene.Legend
	if len(legends) > 0 {
		base := legends[0].Clone()
		base.Items = nil
		merged = MergeLegends(base, legends...)
		if len(merged.Items) > 0 {
			box = wrap(cell(box, 0, 0), cell(legendPanel(inner, merged), 0, 1))
		}
	}

	box.Toolbar = MergeTools(tools...)
	return &Rendered{Item: box, Legend: merged}, nil
}

func cell(it scene.Item, row, col int) scene.GridChild {
	return scene.GridChild{Item: it, Row: row, Col: col, RowSpan: 1, ColSpan: 1}
}

// wrap returns a grid box around children. Nested grid boxes hand
// their toolbars to the outermost box.
func wrap(children ...scene.GridChild) *scene.GridBox {
	for _, c := range children {
		if b, ok := c.Item.(*scene.GridBox); ok && b.Toolbar != nil {
			b.Toolbar.Location = scene.PlaceNone
		}
	}
	box := scene.NewGridBox(children...)
	box.Toolbar = copyToolbar()
	return box
}

func copyToolbar() *scene.Toolbar {
	tb := scene.NewToolbar()
	tb.Tools = []*scene.Tool{scene.NewTool(scene.Copy)}
	return tb
}

// detach removes l from fig's layout and reports whether it was
// there.
func detach(fig *scene.Figure, l *scene.Legend) bool {
	found := false
	els := fig.Elements[:0:0]
	for _, p := range fig.Elements {
		if p.Elem == scene.Item(l) {
			found = true
			continue
		}
		els = append(els, p)
	}
	fig.Elements = els
	return found
}

// onlyAxis returns a copy of the axis at place if fig has exactly one
// element there and it is an axis.
func onlyAxis(fig *scene.Figure, place scene.Place) *scene.Axis {
	els := fig.At(place)
	if len(els) != 1 {
		return nil
	}
	a, ok := els[0].(*scene.Axis)
	if !ok {
		return nil
	}
	return a.Clone()
}

// shareLine shares the range and scale of the first non-nil figure in
// line with the others and suppresses their tick labels. The anchor
// keeps its tick labels. Axis labels are moved to the axis strip, so
// they are cleared on every figure.
func shareLine(line []*scene.Figure, dim scene.Dim) {
	place := scene.PlaceBelow
	if dim == scene.Y {
		place = scene.PlaceLeft
	}
	var anchor *scene.Figure
	for _, fig := range line {
		if fig == nil {
			continue
		}
		isAnchor := anchor == nil
		if isAnchor {
			anchor = fig
		} else if dim == scene.X {
			fig.XRange, fig.XScale = anchor.XRange, anchor.XScale
		} else {
			fig.YRange, fig.YScale = anchor.YRange, anchor.YScale
		}
		for _, el := range fig.At(place) {
			a, ok := el.(*scene.Axis)
			if !ok {
				continue
			}
			a.Label = ""
			if !isAnchor {
				a.Suppress()
			}
		}
	}
}

// axisStrip returns a figure carrying only the label of proto.
func axisStrip(proto *scene.Axis, place scene.Place, width, height int) *scene.Figure {
	fig := bareFigure()
	fig.Tags = []string{AxisStripTag}
	fig.Width, fig.Height = width, height

	ax := scene.NewAxis(proto.Kind, proto.Dim)
	ax.Label = proto.Label
	ax.LabelStyle = proto.LabelStyle.Merge()
	ax.Style = style.Props{
		scene.MajorTickLineColor:     style.None,
		scene.MinorTickLineColor:     style.None,
		scene.AxisLineColor:          style.None,
		scene.MajorLabelTextFontSize: "0pt",
	}
	fig.AddLayout(ax, place)

	// An axis is only drawn for a figure with a renderer.
	dummy := new(table.Builder).Add("_x", []float64{0}).Add("_y", []float64{0}).Done()
	r := fig.AddGlyph(scene.NewSource(dummy), scene.Glyph{
		Kind:   scene.Line,
		Fields: map[string]string{"x": "_x", "y": "_y"},
	}, scene.RendererOptions{Level: scene.LevelGlyph})
	r.Visible = false
	return fig
}

// legendPanel returns a figure showing l. It holds the renderers of
// grid so the legend items can refer to them.
func legendPanel(grid *scene.GridBox, l *scene.Legend) *scene.Figure {
	fig := bareFigure()
	fig.Tags = []string{LegendPanelTag}
	for _, it := range grid.Select(glyph.RendererTag) {
		if r, ok := it.(*scene.GlyphRenderer); ok {
			fig.Renderers = append(fig.Renderers, r)
		}
	}
	fig.AddLayout(l, scene.PlaceLeft)
	return fig
}

func bareFigure() *scene.Figure {
	fig := scene.NewFigure()
	fig.Background = style.Background
	fig.MinBorder = 0
	fig.Margin = 0
	fig.Toolbar = copyToolbar()
	fig.Toolbar.Location = scene.PlaceNone
	return fig
}
