// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-plotkit/field"
	"github.com/aclements/go-plotkit/glyph"
	"github.com/aclements/go-plotkit/scene"
)

func facetTable() *table.Table {
	return new(table.Builder).
		Add("x", []float64{1, 2, 3, 4, 5, 6, 7, 8}).
		Add("y", []float64{2, 4, 6, 8, 1, 3, 5, 7}).
		Add("g", []string{"d", "c", "b", "a", "a", "b", "c", "d"}).
		Add("h", []string{"u", "u", "v", "v", "u", "u", "v", "v"}).
		Done()
}

func linePlot() Plot {
	return New(facetTable()).Add(glyph.Line(field.Col("x"), field.Col("y")))
}

// cells returns the figures of the cells of a rendered grid.
func cells(t *testing.T, r *Rendered) []*scene.Figure {
	box, ok := r.Item.(*scene.GridBox)
	if !ok {
		t.Fatalf("want a grid; got %T", r.Item)
	}
	var out []*scene.Figure
	for _, f := range box.Figures() {
		if !f.HasTag(AxisStripTag) && !f.HasTag(LegendPanelTag) {
			out = append(out, f)
		}
	}
	return out
}

func titleText(fig *scene.Figure, place scene.Place) string {
	for _, el := range fig.At(place) {
		if t, ok := el.(*scene.Title); ok {
			return t.Text
		}
	}
	return ""
}

func TestRenderFigure(t *testing.T) {
	r, err := linePlot().WithTitle(TitleSpec{Text: "T"}).Render()
	if err != nil {
		t.Fatal(err)
	}
	fig := r.Figure()
	if fig == nil {
		t.Fatalf("want a figure; got %T", r.Item)
	}
	if fig.Margin != DefaultMargin || fig.MinBorder != DefaultMinBorder {
		t.Errorf("want default margin and border; got %d, %d", fig.Margin, fig.MinBorder)
	}

	below, above := fig.Axes(scene.X), fig.At(scene.PlaceAbove)
	if len(below) != 2 {
		t.Fatalf("want axis and mirror along x; got %d", len(below))
	}
	if fig.At(scene.PlaceBelow)[0].(*scene.Axis).Suppressed() {
		t.Errorf("primary x axis should show tick labels")
	}
	if m := above[0].(*scene.Axis); !m.Suppressed() {
		t.Errorf("mirror axis should be suppressed")
	}
	if got := titleText(fig, scene.PlaceAbove); got != "T" {
		t.Errorf("want title above; got %q", got)
	}
	if got := fig.At(scene.PlaceCenter); len(got) != 1 || got[0] != scene.Item(r.Legend) {
		t.Errorf("legend should be placed in the center")
	}

	var kinds []scene.ToolKind
	for _, tool := range fig.Toolbar.Tools {
		kinds = append(kinds, tool.Kind)
	}
	want := []scene.ToolKind{scene.Hover, scene.BoxZoom, scene.Copy, scene.Reset, scene.Pan}
	if !reflect.DeepEqual(kinds, want) {
		t.Errorf("want tools %v; got %v", want, kinds)
	}
	if fig.Toolbar.ActiveDrag.Kind != scene.BoxZoom || fig.Toolbar.Location != scene.PlaceLeft {
		t.Errorf("box zoom should be the active drag of a left toolbar")
	}
	if hover := fig.Toolbar.Find(scene.Hover); len(hover.Renderers) != 1 || hover.Tooltips != HoverTooltips {
		t.Errorf("hover should target the tooltip renderer")
	}
}

func TestAxisSpecs(t *testing.T) {
	for _, test := range []struct {
		spec       AxisSpec
		axis, mirr bool
		scale      scene.Scale
	}{
		{AxisSpec{}, true, true, scene.ScaleLinear},
		{AxisSpec{Mirror: MirrorOff}, true, false, scene.ScaleLinear},
		{AxisSpec{Hidden: true}, false, false, scene.ScaleLinear},
		{AxisSpec{Hidden: true, Mirror: MirrorOn}, false, true, scene.ScaleLinear},
		{AxisSpec{Scale: scene.ScaleLog}, true, true, scene.ScaleLog},
		{AxisSpec{Type: Categorical, Factors: []string{"a"}}, true, true, scene.ScaleCategorical},
	} {
		a, m := makeAxis(test.spec, scene.X)
		if (a != nil) != test.axis || (m != nil) != test.mirr {
			t.Errorf("%+v: want axis %v mirror %v; got %v, %v", test.spec, test.axis, test.mirr, a != nil, m != nil)
		}
		if s := makeScale(test.spec); s != test.scale {
			t.Errorf("%+v: want scale %s; got %s", test.spec, test.scale, s)
		}
	}

	r, _ := makeRange(AxisSpec{Start: Bound(1)})
	if r.Kind != scene.DataRange || *r.Start != 1 || r.End != nil {
		t.Errorf("half-fixed range should be a data range with a fixed start")
	}
	r, _ = makeRange(AxisSpec{Start: Bound(1), End: Bound(2)})
	if r.Kind != scene.FixedRange {
		t.Errorf("fully fixed range should be fixed")
	}

	err := New(nil).WithXAxis(AxisSpec{Type: Categorical}).Validate()
	if !errors.Is(err, ErrNoFactors) {
		t.Errorf("categorical axis without factors: want ErrNoFactors; got %v", err)
	}
}

func TestBuildersCopy(t *testing.T) {
	base := linePlot()
	titled := base.WithTitle(TitleSpec{Text: "a"}).WithTitle(TitleSpec{Placement: scene.PlaceBelow})
	if base.title.Text != "" {
		t.Fatalf("WithTitle modified its receiver")
	}
	if titled.title.Text != "a" || titled.title.Placement != scene.PlaceBelow {
		t.Fatalf("WithTitle should merge; got %+v", titled.title)
	}
	more := base.Add(nil, glyph.Scatter(field.Col("x"), field.Col("y")))
	if len(base.Glyphs()) != 1 || len(more.Glyphs()) != 2 {
		t.Fatalf("Add should skip nil and copy")
	}
}

func TestHooks(t *testing.T) {
	var order []string
	p := linePlot().
		OnBeforeRender(func(fig *scene.Figure) {
			if len(fig.Renderers) != 0 || len(fig.Axes(scene.X)) != 0 {
				t.Errorf("before hook should run before axes and glyphs")
			}
			order = append(order, "before")
		}).
		OnAfterRender(func(r *Rendered) {
			if len(r.Figure().Renderers) != 1 {
				t.Errorf("after hook should see rendered glyphs")
			}
			order = append(order, "after")
		})
	if _, err := p.Render(); err != nil {
		t.Fatal(err)
	}
	if want := []string{"before", "after"}; !reflect.DeepEqual(order, want) {
		t.Fatalf("want hooks %v; got %v", want, order)
	}
}

func TestHooksCopy(t *testing.T) {
	var calls []string
	hook := func(name string) func(*scene.Figure) {
		return func(*scene.Figure) { calls = append(calls, name) }
	}
	base := linePlot().OnBeforeRender(hook("a"))
	p1 := base.OnBeforeRender(hook("b"))
	p2 := base.OnBeforeRender(hook("c"))
	if _, err := p1.Render(); err != nil {
		t.Fatal(err)
	}
	if _, err := p2.Render(); err != nil {
		t.Fatal(err)
	}
	if want := []string{"a", "b", "a", "c"}; !reflect.DeepEqual(calls, want) {
		t.Fatalf("want hooks %v; got %v", want, calls)
	}
}

func TestValidateLegendConflict(t *testing.T) {
	p := linePlot().Add(glyph.Scatter(field.Col("x"), field.Col("y")).WithLegendBinding("pts", "g"))
	if err := p.Validate(); err != glyph.ErrLegendConflict {
		t.Fatalf("Validate: want ErrLegendConflict; got %v", err)
	}
}

func TestParentNotModified(t *testing.T) {
	parent := scene.NewFigure()
	r, err := linePlot().WithParent(parent).Render()
	if err != nil {
		t.Fatal(err)
	}
	if len(parent.Renderers) != 0 || len(parent.Elements) != 0 {
		t.Fatalf("parent figure was modified")
	}
	if r.Figure() == parent {
		t.Fatalf("render should clone the parent")
	}
}

func TestFacetWrap(t *testing.T) {
	p := linePlot().WithFacetWrap([]string{"g"}, 0, GridLayout{})
	g, err := p.facetGrid()
	if err != nil {
		t.Fatal(err)
	}
	if g.NCols() != 3 || g.NRows() != 2 {
		t.Fatalf("4 facets should wrap into 3 columns and 2 rows; got %d, %d", g.NCols(), g.NRows())
	}

	r, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	figs := cells(t, r)
	var titles []string
	for _, f := range figs {
		titles = append(titles, titleText(f, scene.PlaceAbove))
		if n := f.Renderers[0].Source.Table.Len(); n != 2 {
			t.Errorf("facet should hold 2 rows; got %d", n)
		}
	}
	if want := []string{"a", "b", "c", "d"}; !reflect.DeepEqual(titles, want) {
		t.Fatalf("want facet titles %v; got %v", want, titles)
	}
}

func TestFacetNoData(t *testing.T) {
	p := New(nil).WithFacetWrap([]string{"g"}, 0, GridLayout{})
	if err := p.Validate(); err != ErrNoData {
		t.Fatalf("Validate: want ErrNoData; got %v", err)
	}
	if _, err := p.Render(); err != ErrNoData {
		t.Fatalf("Render: want ErrNoData; got %v", err)
	}
	_, err := linePlot().WithFacetWrap([]string{"nope"}, 0, GridLayout{}).Render()
	var mc *field.MissingColumnError
	if !errors.As(err, &mc) {
		t.Fatalf("want a missing column error; got %v", err)
	}
}

func TestFacetGrid(t *testing.T) {
	p := linePlot().
		WithTitle(TitleSpec{Text: "stale"}).
		WithFacetGrid("h", "g", nil)
	r, err := p.Render()
	if err != nil {
		t.Fatal(err)
	}
	figs := cells(t, r)
	if len(figs) != 8 {
		t.Fatalf("want 4x2 cells; got %d", len(figs))
	}
	for i, f := range figs {
		row, col := i/2, i%2
		top, side := titleText(f, scene.PlaceAbove), titleText(f, scene.PlaceRight)
		switch {
		case row == 0 && top != []string{"h=u", "h=v"}[col]:
			t.Errorf("cell %d: want column title; got %q", i, top)
		case row > 0 && top != "":
			t.Errorf("cell %d: title should be cleared; got %q", i, top)
		}
		switch {
		case col == 1 && side != "g="+[]string{"a", "b", "c", "d"}[row]:
			t.Errorf("cell %d: want row title; got %q", i, side)
		case col == 0 && side != "":
			t.Errorf("cell %d: secondary title should be cleared; got %q", i, side)
		}
	}
}

func TestSharedX(t *testing.T) {
	r, err := linePlot().WithFacetWrap([]string{"g"}, 2, GridLayout{SharedX: true}).Render()
	if err != nil {
		t.Fatal(err)
	}
	figs := cells(t, r)
	if len(figs) != 4 {
		t.Fatalf("want 4 cells; got %d", len(figs))
	}
	for i, f := range figs {
		ax := f.At(scene.PlaceBelow)[0].(*scene.Axis)
		if want := i < 2; ax.Suppressed() != want {
			t.Errorf("cell %d: want suppressed %v", i, want)
		}
		if ax.Label != "" {
			t.Errorf("cell %d: axis label should move to the strip", i)
		}
	}
	if figs[0].XRange != figs[2].XRange || figs[1].XRange != figs[3].XRange {
		t.Errorf("cells in a column should share the anchor's x range")
	}
	if figs[0].YRange == figs[1].YRange {
		t.Errorf("y ranges should not be shared")
	}

	var strips int
	for _, f := range r.Item.(*scene.GridBox).Figures() {
		if f.HasTag(AxisStripTag) {
			strips++
			if f.Renderers[0].Visible {
				t.Errorf("strip dummy renderer should be invisible")
			}
		}
	}
	if strips != 1 {
		t.Errorf("want one axis strip; got %d", strips)
	}
}

func TestAutoSizes(t *testing.T) {
	near := func(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
	a := 20.0 / 600

	fr := AutoRows(4, 2, 2, 600, true)
	if !near(fr[0], (1-a)/2) || !near(fr[1], (1-a)/2+a) {
		t.Errorf("full grid: got %v", fr)
	}
	fr = AutoRows(5, 2, 3, 600, true)
	if !near(fr[0], (1-2*a)/2+a) || !near(fr[0], fr[1]) {
		t.Errorf("ragged grid: got %v", fr)
	}
	if fr := AutoRows(4, 2, 2, 600, false); !reflect.DeepEqual(fr, []float64{0.5, 0.5}) {
		t.Errorf("unshared rows: got %v", fr)
	}
	fr = AutoCols(2, 600, true)
	if !near(fr[0], (1-a)/2+a) || !near(fr[1], (1-a)/2) {
		t.Errorf("shared cols: got %v", fr)
	}
}

func TestSizeErrors(t *testing.T) {
	kids := []Renderable{linePlot(), linePlot(), linePlot()}
	for _, l := range []GridLayout{
		{Rows: Fractions(0.5)},
		{Cols: Fractions(0.5, 0.5, 0.5)},
		{Rows: Uniform(1.5)},
		{Cols: Uniform(-0.2)},
	} {
		var se *SizeError
		if err := NewGrid(kids, 2, l).Validate(); !errors.As(err, &se) {
			t.Errorf("%+v: want a SizeError; got %v", l, err)
		}
	}
	if err := NewGrid(kids, 2, GridLayout{Rows: Fractions(0.4, 0.6), Cols: Uniform(0.5)}).Validate(); err != nil {
		t.Errorf("valid sizes: %v", err)
	}
	nested := NewGrid([]Renderable{NewGrid(kids, 1, GridLayout{})}, 1, GridLayout{})
	if err := nested.Validate(); err != ErrNestedGrid {
		t.Errorf("want ErrNestedGrid; got %v", err)
	}
}

func TestMergeLegends(t *testing.T) {
	fig := scene.NewFigure()
	src := scene.NewSource(nil)
	r1 := fig.AddGlyph(src, scene.Glyph{Kind: scene.Line}, scene.RendererOptions{})
	r2 := fig.AddGlyph(src, scene.Glyph{Kind: scene.Line}, scene.RendererOptions{})
	r3 := fig.AddGlyph(src, scene.Glyph{Kind: scene.Line}, scene.RendererOptions{})
	r3.Visible = false

	a, b := scene.NewLegend(), scene.NewLegend()
	a.Add(scene.ValueLabel("A"), r1, -1)
	b.Add(scene.ValueLabel("A"), r2, -1)
	b.Add(scene.ValueLabel("A"), r3, -1)
	b.Add(scene.ValueLabel("B"), r2, -1)

	m := MergeLegends(a, b, a)
	if len(m.Items) != 2 {
		t.Fatalf("want items A and B; got %d", len(m.Items))
	}
	if got := m.Items[0].Renderers; len(got) != 2 || got[0] != r1 || got[1] != r2 {
		t.Fatalf("A should hold r1 and r2 once each; got %d renderers", len(got))
	}
	if len(a.Items[0].Renderers) != 1 {
		t.Fatalf("MergeLegends modified its input")
	}
}

func TestMergeTools(t *testing.T) {
	r1, _ := linePlot().Render()
	r2, _ := linePlot().Render()
	tools := append(r1.Figure().Toolbar.Tools, r2.Figure().Toolbar.Tools...)
	tb := MergeTools(tools...)

	var kinds []scene.ToolKind
	for _, tool := range tb.Tools {
		kinds = append(kinds, tool.Kind)
		if tool.Kind != scene.Copy && len(tool.Members) != 2 {
			t.Errorf("%s proxy should have 2 members; got %d", tool.Kind, len(tool.Members))
		}
	}
	want := []scene.ToolKind{scene.Hover, scene.BoxZoom, scene.Reset, scene.Pan, scene.Copy}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("want tools %v; got %v", want, kinds)
	}
	if tb.ActiveDrag == nil || tb.ActiveDrag.Kind != scene.BoxZoom || !tb.ActiveDrag.IsProxy() {
		t.Fatalf("box zoom proxy should be the active drag")
	}
}

func TestGridLegend(t *testing.T) {
	p := New(facetTable()).Add(glyph.Line(field.Col("x"), field.Col("y")).WithLegend("A"))
	r, err := NewGrid([]Renderable{p, nil, p}, 2, GridLayout{}).Render()
	if err != nil {
		t.Fatal(err)
	}
	if r.Legend == nil || len(r.Legend.Items) != 1 || len(r.Legend.Items[0].Renderers) != 2 {
		t.Fatalf("want one merged item with two renderers")
	}
	for _, f := range cells(t, r) {
		if len(f.Legends()) != 0 {
			t.Errorf("cell legends should move to the legend panel")
		}
		if f.Toolbar.Location != scene.PlaceNone {
			t.Errorf("cell toolbars should be hidden")
		}
	}
	if box := r.Item.(*scene.GridBox); box.Toolbar.Location != scene.PlaceLeft {
		t.Errorf("grid toolbar should be on the left")
	}
}
